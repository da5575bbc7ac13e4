// Package usecase combines the market summary and scored news for one symbol
// into a single analysis, optionally narrated by a language model.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"crypto_dashboard/internal/feature/analysis/domain/entity"
	mdentity "crypto_dashboard/internal/feature/marketdata/domain/entity"
	newsentity "crypto_dashboard/internal/feature/news/domain/entity"
)

// RSI condition thresholds.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0

	// latestNewsCount is how many headlines the analysis carries verbatim.
	latestNewsCount = 3

	// DefaultForecastHorizon is the number of daily steps a forecast covers
	// when the caller does not name one.
	DefaultForecastHorizon = 14
)

// SummarySource provides the reduced market view for a symbol.
type SummarySource interface {
	GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *mdentity.MarketSummary
}

// NewsSource provides scored news and its aggregate label.
type NewsSource interface {
	GetNews(ctx context.Context, symbol string, limit int, forceUpdate bool) []newsentity.NewsItem
	OverallSentiment(items []newsentity.NewsItem) string
}

// Analyzer generates a free-form narrative from an assembled prompt.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Forecaster projects future closing prices from recent history. No
// implementation ships with the server; deployments plug their own model in.
type Forecaster interface {
	Forecast(ctx context.Context, symbol string, horizon int) ([]float64, error)
}

// AnalysisUsecase assembles a MarketAnalysis from its sources.
type AnalysisUsecase struct {
	summaries SummarySource
	news      NewsSource
	analyzer  Analyzer
	now       func() time.Time
}

// NewAnalysisUsecase creates an AnalysisUsecase. analyzer may be nil, in
// which case analyses carry no narrative.
func NewAnalysisUsecase(summaries SummarySource, news NewsSource, analyzer Analyzer) *AnalysisUsecase {
	return &AnalysisUsecase{
		summaries: summaries,
		news:      news,
		analyzer:  analyzer,
		now:       time.Now,
	}
}

// GenerateMarketAnalysis builds the combined analysis for symbol. A symbol
// with no market data yields nil. Analyzer failures degrade to an analysis
// without a narrative.
func (u *AnalysisUsecase) GenerateMarketAnalysis(ctx context.Context, symbol string) *entity.MarketAnalysis {
	summary := u.summaries.GetMarketSummary(ctx, symbol, false)
	if summary == nil {
		slog.Warn("no market data for analysis", "symbol", symbol)
		return nil
	}
	items := u.news.GetNews(ctx, symbol, 0, false)

	latest := items
	if len(latest) > latestNewsCount {
		latest = latest[:latestNewsCount]
	}

	analysis := &entity.MarketAnalysis{
		Symbol:    symbol,
		Timestamp: u.now(),
		Price: entity.PriceAnalysis{
			CurrentPrice:   summary.Price,
			PriceChange24h: summary.PriceChange24h,
			Trend:          string(summary.MASignal),
		},
		Technical: entity.TechnicalIndicators{
			RSICondition: rsiCondition(summary.RSI),
			MACDSignal:   string(summary.MACDSignal),
		},
		Sentiment: entity.MarketSentiment{
			NewsSentiment: u.news.OverallSentiment(items),
			NewsCount:     len(items),
			LatestNews:    latest,
		},
	}

	if u.analyzer != nil {
		narrative, err := u.analyzer.Analyze(ctx, buildPrompt(summary, latest))
		if err != nil {
			slog.Error("narrative generation failed", "symbol", symbol, "error", err)
		} else {
			analysis.LLMAnalysis = narrative
		}
	}
	return analysis
}

// rsiCondition buckets an RSI value. An undefined RSI reads as neutral.
func rsiCondition(rsi *float64) string {
	switch {
	case rsi == nil:
		return entity.RSINeutral
	case *rsi > rsiOverbought:
		return entity.RSIOverbought
	case *rsi < rsiOversold:
		return entity.RSIOversold
	default:
		return entity.RSINeutral
	}
}

// buildPrompt assembles the analyst prompt from the summary and the latest
// headlines.
func buildPrompt(summary *mdentity.MarketSummary, latest []newsentity.NewsItem) string {
	var b strings.Builder
	b.WriteString("As a cryptocurrency market analyst, provide a comprehensive analysis based on the following data.\n\n")
	fmt.Fprintf(&b, "Symbol: %s\n", summary.Symbol)
	fmt.Fprintf(&b, "Current Price: $%.2f\n", summary.Price)
	fmt.Fprintf(&b, "24h Change: %.2f%%\n", summary.PriceChange24h)
	fmt.Fprintf(&b, "24h Volume: $%.2f\n", summary.Volume24h)
	if summary.RSI != nil {
		fmt.Fprintf(&b, "RSI: %.2f\n", *summary.RSI)
	}
	fmt.Fprintf(&b, "MACD Signal: %s\n", summary.MACDSignal)
	fmt.Fprintf(&b, "Trend: %s\n", summary.MASignal)

	if len(latest) > 0 {
		b.WriteString("\nRecent News:\n")
		for _, it := range latest {
			fmt.Fprintf(&b, "- %s (Sentiment: %s)\n", it.Title, it.Label)
		}
	}

	b.WriteString("\nCover current market sentiment, technical interpretation, key price levels and risk factors. Keep the analysis professional and data-driven.")
	return b.String()
}
