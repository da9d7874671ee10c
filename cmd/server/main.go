package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opentariff/tariff/internal/config"
	"github.com/opentariff/tariff/internal/database"
	"github.com/opentariff/tariff/internal/middleware"
	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/repository"
	"github.com/opentariff/tariff/internal/tariff/router"
	"github.com/opentariff/tariff/internal/tariff/service"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded successfully",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"db_sslmode", cfg.Database.SSLMode,
	)

	slog.Info("duty configuration",
		"gst_rate_percent", cfg.Duty.GSTRatePercent,
		"round_places", cfg.Duty.RoundPlaces,
	)

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Perform health check
	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}

	// Wire up stores, engine and services
	rateStore := repository.NewRateStore(db)
	classificationStore := repository.NewClassificationStore(db)

	calculator := engine.New(rateStore, engine.Config{
		GSTRatePercent: cfg.Duty.GSTRatePercent,
		RoundPlaces:    cfg.Duty.RoundPlaces,
	})

	tariffService := service.NewTariffService(classificationStore, rateStore)
	calculationService := service.NewCalculationService(classificationStore, calculator)
	tariffRouter := router.NewTariffRouter(tariffService, calculationService)

	// Set up HTTP routes
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		if err := database.HealthCheck(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tariffRouter.Register(r.Group("/api"))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown of HTTP server
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("server stopped")
}
