// Package router assembles the HTTP routes of the dashboard backend.
package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "crypto_dashboard/internal/feature/analysis/transport/handler"
	markethandler "crypto_dashboard/internal/feature/marketdata/transport/handler"
	newshandler "crypto_dashboard/internal/feature/news/transport/handler"
	watchlisthandler "crypto_dashboard/internal/feature/watchlist/transport/handler"
	"crypto_dashboard/internal/platform/http/handler"
)

// NewRouter wires all feature handlers into one gin engine.
func NewRouter(
	market *markethandler.MarketHandler,
	news *newshandler.NewsHandler,
	analysis *analysishandler.AnalysisHandler,
	watchlist *watchlisthandler.SymbolHandler,
) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	r.GET("/candles/:symbol", market.GetCandlesHandler)
	r.GET("/summary/:symbol", market.GetSummaryHandler)
	r.GET("/summaries", market.GetMultiSummaryHandler)
	r.GET("/news/:symbol", news.GetNewsHandler)
	r.GET("/analysis/:symbol", analysis.GetAnalysisHandler)
	r.GET("/forecast/:symbol", analysis.GetForecastHandler)
	r.GET("/symbols", watchlist.List)

	return r
}
