package indicator

import (
	"log/slog"
	"math"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
)

// Enrich derives the full indicator column set from the close prices of an
// OHLCV series. Warm-up rows carry nil for the affected indicators. An empty
// series is a logged no-op: there is no close column to work from.
func Enrich(series []entity.Candle) []entity.EnrichedCandle {
	if len(series) == 0 {
		slog.Warn("enrich skipped: series has no close prices")
		return nil
	}

	closes := make([]float64, len(series))
	for i, c := range series {
		closes[i] = c.Close
	}

	rsi := RSI(closes, RSIPeriod)
	macd, macdSignal, macdHist := MACD(closes)
	ma20 := SMA(closes, 20)
	ma50 := SMA(closes, 50)
	ma200 := SMA(closes, 200)
	bbUpper, bbMiddle, bbLower := Bollinger(closes)

	out := make([]entity.EnrichedCandle, len(series))
	for i, c := range series {
		out[i] = entity.EnrichedCandle{
			Candle:     c,
			RSI:        floatPtr(rsi[i]),
			MACD:       floatPtr(macd[i]),
			MACDSignal: floatPtr(macdSignal[i]),
			MACDHist:   floatPtr(macdHist[i]),
			MA20:       floatPtr(ma20[i]),
			MA50:       floatPtr(ma50[i]),
			MA200:      floatPtr(ma200[i]),
			BBUpper:    floatPtr(bbUpper[i]),
			BBMiddle:   floatPtr(bbMiddle[i]),
			BBLower:    floatPtr(bbLower[i]),
		}
	}
	return out
}

// floatPtr converts the NaN warm-up marker into an explicit nil.
func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
