package router

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/model"
	"github.com/opentariff/tariff/internal/tariff/repository"
	"github.com/opentariff/tariff/internal/tariff/service"
)

// TariffRouter exposes the tariff browse and duty calculation API.
type TariffRouter struct {
	tariffs      *service.TariffService
	calculations *service.CalculationService
}

func NewTariffRouter(tariffs *service.TariffService, calculations *service.CalculationService) *TariffRouter {
	return &TariffRouter{tariffs: tariffs, calculations: calculations}
}

// Register attaches the API routes to a gin router group.
func (tr *TariffRouter) Register(api *gin.RouterGroup) {
	api.GET("/tariff/codes", tr.HandleListCodes)
	api.GET("/tariff/codes/:code", tr.HandleGetCode)
	api.GET("/tariff/codes/:code/children", tr.HandleGetChildren)
	api.POST("/duty/calculations", tr.HandleCalculate)
}

// HandleListCodes handles GET /api/tariff/codes
// Optional query filters: prefix, q, level, offset, limit
func (tr *TariffRouter) HandleListCodes(c *gin.Context) {
	var filter model.ClassificationFilter

	if prefix := c.Query("prefix"); prefix != "" {
		filter.Prefix = &prefix
	}
	if q := c.Query("q"); q != "" {
		filter.Query = &q
	}
	if level := c.Query("level"); level != "" {
		l := model.ClassificationLevel(level)
		filter.Level = &l
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'offset' query parameter, must be an integer"})
			return
		}
		filter.Offset = &offset
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit' query parameter, must be an integer"})
			return
		}
		filter.Limit = &limit
	}

	result, err := tr.tariffs.Search(c.Request.Context(), filter)
	if err != nil {
		tr.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleGetCode handles GET /api/tariff/codes/:code
func (tr *TariffRouter) HandleGetCode(c *gin.Context) {
	detail, err := tr.tariffs.GetCodeDetail(c.Request.Context(), c.Param("code"))
	if err != nil {
		tr.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// HandleGetChildren handles GET /api/tariff/codes/:code/children
func (tr *TariffRouter) HandleGetChildren(c *gin.Context) {
	children, err := tr.tariffs.Children(c.Request.Context(), c.Param("code"))
	if err != nil {
		tr.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, children)
}

// HandleCalculate handles POST /api/duty/calculations
func (tr *TariffRouter) HandleCalculate(c *gin.Context) {
	var in engine.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := tr.calculations.Calculate(c.Request.Context(), in)
	if err != nil {
		tr.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError maps error classes to HTTP statuses: invalid input to 400,
// unknown codes to 404, failed rate lookups to 502, the rest to 500.
func (tr *TariffRouter) writeError(c *gin.Context, err error) {
	var invalid *engine.InvalidInputError
	var dep *engine.DependencyFailureError

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrCodeNotFound), errors.Is(err, repository.ErrClassificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &dep):
		slog.Error("rate lookup failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "rate data unavailable"})
	default:
		slog.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
