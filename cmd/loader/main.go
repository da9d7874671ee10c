// Command loader populates the tariff database from a set of rate data
// files held in a local directory or an S3 bucket.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/opentariff/tariff/internal/config"
	"github.com/opentariff/tariff/internal/database"
	"github.com/opentariff/tariff/internal/ratedata"
)

func main() {
	files := ratedata.DefaultFileSet()
	flag.StringVar(&files.Classifications, "classifications", files.Classifications, "classification codes file name")
	flag.StringVar(&files.GeneralRates, "general-rates", files.GeneralRates, "general duty rates file name")
	flag.StringVar(&files.PreferentialRates, "preferential-rates", files.PreferentialRates, "preferential rates file name")
	flag.StringVar(&files.AntiDumping, "anti-dumping", files.AntiDumping, "anti-dumping measures file name")
	flag.StringVar(&files.ConcessionOrders, "concession-orders", files.ConcessionOrders, "concession orders file name")
	flag.StringVar(&files.GstProvisions, "gst-provisions", files.GstProvisions, "gst exemption provisions file name")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall load timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	source, err := ratedata.NewSourceFromConfig(ctx, cfg.RateSource)
	if err != nil {
		log.Fatalf("failed to create rate data source: %v", err)
	}

	importer := ratedata.NewImporter(db, source)
	start := time.Now()
	if err := importer.ImportAll(ctx, files); err != nil {
		log.Fatalf("rate data load failed: %v", err)
	}

	slog.Info("rate data load complete", "elapsed", time.Since(start))
}
