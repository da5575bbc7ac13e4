// Package handler provides the HTTP handlers for the market data feature.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
	"crypto_dashboard/internal/feature/marketdata/transport/http/dto"
	"crypto_dashboard/internal/feature/marketdata/usecase"
)

// MarketDataUsecase is the market data surface the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type MarketDataUsecase interface {
	GetHistoricalData(ctx context.Context, symbol, market string, forceUpdate bool) []entity.EnrichedCandle
	GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *entity.MarketSummary
	GetMultiSummary(ctx context.Context, symbols []string, forceUpdate bool) map[string]*entity.MarketSummary
}

// MarketHandler handles HTTP requests for candles and summaries.
type MarketHandler struct {
	uc MarketDataUsecase
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(uc MarketDataUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetCandlesHandler returns the enriched daily series for a symbol.
//
// Endpoint:
// GET /candles/:symbol?market=USD&force=false
//
// The usecase degrades internally, so an empty series means every tier
// failed: that maps to 503.
func (h *MarketHandler) GetCandlesHandler(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	market := c.DefaultQuery("market", usecase.DefaultMarket)
	force := c.Query("force") == "true"

	series := h.uc.GetHistoricalData(c.Request.Context(), symbol, market, force)
	if len(series) == 0 {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "no market data available for " + symbol})
		return
	}

	out := make([]dto.CandleRow, 0, len(series))
	for _, row := range series {
		out = append(out, toCandleRow(row))
	}
	c.JSON(http.StatusOK, out)
}

// GetSummaryHandler returns the reduced market view for a symbol.
//
// Endpoint:
// GET /summary/:symbol?force=false
func (h *MarketHandler) GetSummaryHandler(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	force := c.Query("force") == "true"

	summary := h.uc.GetMarketSummary(c.Request.Context(), symbol, force)
	if summary == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "no market data available for " + symbol})
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetMultiSummaryHandler returns summaries for a comma-separated symbol list.
// Symbols with no data map to null entries rather than failing the batch.
//
// Endpoint:
// GET /summaries?symbols=BTC,ETH&force=false
func (h *MarketHandler) GetMultiSummaryHandler(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbols query parameter is required"})
		return
	}
	force := c.Query("force") == "true"

	symbols := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}

	summaries := h.uc.GetMultiSummary(c.Request.Context(), symbols, force)
	out := make(map[string]*dto.SummaryResponse, len(summaries))
	for symbol, summary := range summaries {
		if summary == nil {
			out[symbol] = nil
			continue
		}
		resp := toSummaryResponse(summary)
		out[symbol] = &resp
	}
	c.JSON(http.StatusOK, out)
}

func toCandleRow(row entity.EnrichedCandle) dto.CandleRow {
	return dto.CandleRow{
		Date:       row.Date.Format(entity.SnapshotDateLayout),
		Open:       row.Open,
		High:       row.High,
		Low:        row.Low,
		Close:      row.Close,
		Volume:     row.Volume,
		RSI:        row.RSI,
		MACD:       row.MACD,
		MACDSignal: row.MACDSignal,
		MACDHist:   row.MACDHist,
		MA20:       row.MA20,
		MA50:       row.MA50,
		MA200:      row.MA200,
		BBUpper:    row.BBUpper,
		BBMiddle:   row.BBMiddle,
		BBLower:    row.BBLower,
	}
}

func toSummaryResponse(s *entity.MarketSummary) dto.SummaryResponse {
	return dto.SummaryResponse{
		Symbol:         s.Symbol,
		Price:          s.Price,
		PriceChange24h: s.PriceChange24h,
		RSI:            s.RSI,
		MACDSignal:     string(s.MACDSignal),
		MASignal:       string(s.MASignal),
		Volume24h:      s.Volume24h,
		Timestamp:      s.Timestamp.UTC().Format(time.RFC3339),
	}
}
