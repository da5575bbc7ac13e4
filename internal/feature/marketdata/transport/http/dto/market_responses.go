// Package dto defines data transfer objects for the market data HTTP API.
package dto

// ErrorResponse is the error body returned by all market data endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CandleRow is one enriched OHLCV row in a candles response. Indicator fields
// are null during their warm-up windows.
type CandleRow struct {
	Date       string   `json:"date"`
	Open       float64  `json:"open"`
	High       float64  `json:"high"`
	Low        float64  `json:"low"`
	Close      float64  `json:"close"`
	Volume     float64  `json:"volume"`
	RSI        *float64 `json:"rsi"`
	MACD       *float64 `json:"macd"`
	MACDSignal *float64 `json:"macd_signal"`
	MACDHist   *float64 `json:"macd_hist"`
	MA20       *float64 `json:"ma20"`
	MA50       *float64 `json:"ma50"`
	MA200      *float64 `json:"ma200"`
	BBUpper    *float64 `json:"bb_upper"`
	BBMiddle   *float64 `json:"bb_middle"`
	BBLower    *float64 `json:"bb_lower"`
}

// SummaryResponse is the reduced market view for one symbol.
type SummaryResponse struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	PriceChange24h float64  `json:"price_change_24h"`
	RSI            *float64 `json:"rsi"`
	MACDSignal     string   `json:"macd_signal"`
	MASignal       string   `json:"ma_signal"`
	Volume24h      float64  `json:"volume_24h"`
	Timestamp      string   `json:"timestamp"`
}
