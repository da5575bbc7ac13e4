package entity

import (
	"sort"
	"time"
)

// SnapshotDateLayout is the format of the row keys in a persisted snapshot.
const SnapshotDateLayout = "2006-01-02 15:04:05"

// LastIndicators holds the most recent indicator values of a processed
// snapshot, stored alongside it so consumers can read the latest state
// without reshaping the whole series.
type LastIndicators struct {
	LastRSI        *float64 `json:"last_rsi" bson:"last_rsi"`
	LastMACD       *float64 `json:"last_macd" bson:"last_macd"`
	LastMACDSignal *float64 `json:"last_macd_signal" bson:"last_macd_signal"`
}

// Snapshot is a persisted, timestamped capture of a symbol's series.
// Snapshots are append-only: every fetch cycle inserts a new one and the most
// recent CapturedAt wins. Rows are keyed by date string so the document form
// mirrors the tabular form losslessly.
type Snapshot struct {
	Symbol     string                    `json:"symbol" bson:"symbol"`
	Market     string                    `json:"market,omitempty" bson:"market,omitempty"`
	Rows       map[string]EnrichedCandle `json:"data" bson:"data"`
	Indicators *LastIndicators           `json:"indicators,omitempty" bson:"indicators,omitempty"`
	CapturedAt time.Time                 `json:"timestamp" bson:"timestamp"`
}

// NewSnapshot builds a Snapshot from an ordered series. The capture timestamp
// is stamped by the store on save.
func NewSnapshot(symbol, market string, series []EnrichedCandle) Snapshot {
	rows := make(map[string]EnrichedCandle, len(series))
	for _, row := range series {
		rows[row.Date.Format(SnapshotDateLayout)] = row
	}
	snap := Snapshot{Symbol: symbol, Market: market, Rows: rows}
	if n := len(series); n > 0 {
		last := series[n-1]
		snap.Indicators = &LastIndicators{
			LastRSI:        last.RSI,
			LastMACD:       last.MACD,
			LastMACDSignal: last.MACDSignal,
		}
	}
	return snap
}

// Series reshapes the snapshot's date-keyed rows back into an ordered series,
// sorted ascending by date. Rows with unparseable keys are dropped.
func (s Snapshot) Series() []EnrichedCandle {
	out := make([]EnrichedCandle, 0, len(s.Rows))
	for key, row := range s.Rows {
		d, err := time.Parse(SnapshotDateLayout, key)
		if err != nil {
			// Legacy records may key rows by bare date.
			d, err = time.Parse("2006-01-02", key)
			if err != nil {
				continue
			}
		}
		row.Date = d
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
