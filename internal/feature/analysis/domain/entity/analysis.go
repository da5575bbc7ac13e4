// Package entity defines the domain models for the analysis feature.
package entity

import (
	"time"

	newsentity "crypto_dashboard/internal/feature/news/domain/entity"
)

// RSI condition buckets.
const (
	RSIOverbought = "Overbought"
	RSIOversold   = "Oversold"
	RSINeutral    = "Neutral"
)

// PriceAnalysis summarizes the price side of an analysis.
type PriceAnalysis struct {
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	Trend          string  `json:"trend"`
}

// TechnicalIndicators summarizes the indicator side of an analysis.
type TechnicalIndicators struct {
	RSICondition string `json:"rsi_condition"`
	MACDSignal   string `json:"macd_signal"`
}

// MarketSentiment summarizes the news side of an analysis.
type MarketSentiment struct {
	NewsSentiment string                `json:"news_sentiment"`
	NewsCount     int                   `json:"news_count"`
	LatestNews    []newsentity.NewsItem `json:"latest_news"`
}

// MarketAnalysis is the combined market view for one symbol: price, technical
// condition, aggregated news sentiment and an optional generated narrative.
type MarketAnalysis struct {
	Symbol      string              `json:"symbol"`
	Timestamp   time.Time           `json:"timestamp"`
	Price       PriceAnalysis       `json:"price_analysis"`
	Technical   TechnicalIndicators `json:"technical_indicators"`
	Sentiment   MarketSentiment     `json:"market_sentiment"`
	LLMAnalysis string              `json:"llm_analysis,omitempty"`
}
