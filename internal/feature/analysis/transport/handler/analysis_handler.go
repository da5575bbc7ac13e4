// Package handler provides the HTTP handlers for the analysis feature.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/feature/analysis/domain/entity"
	"crypto_dashboard/internal/feature/analysis/usecase"
)

// AnalysisUsecase is the analysis surface the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AnalysisUsecase interface {
	GenerateMarketAnalysis(ctx context.Context, symbol string) *entity.MarketAnalysis
}

// AnalysisHandler handles HTTP requests for combined market analyses and
// forecasts.
type AnalysisHandler struct {
	uc         AnalysisUsecase
	forecaster usecase.Forecaster
}

// NewAnalysisHandler creates a new AnalysisHandler. forecaster may be nil;
// the forecast endpoint then reports the capability as unavailable.
func NewAnalysisHandler(uc AnalysisUsecase, forecaster usecase.Forecaster) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, forecaster: forecaster}
}

// GetAnalysisHandler returns the combined analysis for a symbol.
//
// Endpoint:
// GET /analysis/:symbol
func (h *AnalysisHandler) GetAnalysisHandler(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	analysis := h.uc.GenerateMarketAnalysis(c.Request.Context(), symbol)
	if analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no market data available for " + symbol})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GetForecastHandler projects future closing prices for a symbol through the
// configured forecaster.
//
// Endpoint:
// GET /forecast/:symbol?horizon=14
func (h *AnalysisHandler) GetForecastHandler(c *gin.Context) {
	if h.forecaster == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no forecaster configured"})
		return
	}

	symbol := strings.ToUpper(c.Param("symbol"))
	horizon, _ := strconv.Atoi(c.DefaultQuery("horizon", "0"))
	if horizon <= 0 {
		horizon = usecase.DefaultForecastHorizon
	}

	values, err := h.forecaster.Forecast(c.Request.Context(), symbol, horizon)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "horizon": horizon, "forecast": values})
}
