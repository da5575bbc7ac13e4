// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// Candle represents one daily OHLCV (Open, High, Low, Close, Volume) record
// for a crypto symbol. The date is carried outside the serialized row: persisted
// snapshots key rows by date string, so the field is rebuilt on load.
type Candle struct {
	Date   time.Time `json:"-" bson:"-"`
	Open   float64   `json:"open" bson:"open"`
	High   float64   `json:"high" bson:"high"`
	Low    float64   `json:"low" bson:"low"`
	Close  float64   `json:"close" bson:"close"`
	Volume float64   `json:"volume" bson:"volume"`
}

// EnrichedCandle is a Candle plus derived technical indicator columns.
// Indicator fields are nil during an indicator's warm-up window, where not
// enough history exists to compute it. Consumers must treat nil as
// "insufficient history", never as zero.
type EnrichedCandle struct {
	Candle `bson:",inline"`

	RSI        *float64 `json:"RSI" bson:"RSI"`
	MACD       *float64 `json:"MACD" bson:"MACD"`
	MACDSignal *float64 `json:"MACD_Signal" bson:"MACD_Signal"`
	MACDHist   *float64 `json:"MACD_Hist" bson:"MACD_Hist"`
	MA20       *float64 `json:"MA20" bson:"MA20"`
	MA50       *float64 `json:"MA50" bson:"MA50"`
	MA200      *float64 `json:"MA200" bson:"MA200"`
	BBUpper    *float64 `json:"BB_Upper" bson:"BB_Upper"`
	BBMiddle   *float64 `json:"BB_Middle" bson:"BB_Middle"`
	BBLower    *float64 `json:"BB_Lower" bson:"BB_Lower"`
}
