package entity

import "time"

// Signal is a two-state market signal derived from the latest row of an
// enriched series. There is deliberately no third state: an undefined
// indicator resolves to bearish.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
)

// MarketSummary is a flat, non-persisted snapshot of the latest market state
// for one symbol. It is recomputed on demand from the most recent enriched
// series and consumed by the dashboard and the analysis feature.
type MarketSummary struct {
	Symbol         string    `json:"symbol"`
	Price          float64   `json:"price"`
	PriceChange24h float64   `json:"price_change_24h"`
	RSI            *float64  `json:"rsi"`
	MACDSignal     Signal    `json:"macd_signal"`
	MASignal       Signal    `json:"ma_signal"`
	Volume24h      float64   `json:"volume_24h"`
	Timestamp      time.Time `json:"timestamp"`
}
