package adapters

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
	"crypto_dashboard/internal/feature/marketdata/usecase"
)

// csvHeader is the column order of the mirror files. Indicator cells are
// empty during warm-up, mirroring the nil markers of the enriched rows.
var csvHeader = []string{
	"date", "open", "high", "low", "close", "volume",
	"RSI", "MACD", "MACD_Signal", "MACD_Hist",
	"MA20", "MA50", "MA200",
	"BB_Upper", "BB_Middle", "BB_Lower",
}

// snapshotCSV implements the SnapshotMirror interface on flat files: one file
// per symbol per kind, rewritten on every successful fetch, read only as a
// last-resort fallback.
type snapshotCSV struct {
	rawDir       string
	processedDir string
}

var _ usecase.SnapshotMirror = (*snapshotCSV)(nil)

// NewSnapshotMirror creates the flat-file mirror rooted at baseDir, creating
// the raw and processed directories as needed.
func NewSnapshotMirror(baseDir string) (*snapshotCSV, error) {
	m := &snapshotCSV{
		rawDir:       filepath.Join(baseDir, "raw"),
		processedDir: filepath.Join(baseDir, "processed"),
	}
	for _, dir := range []string{m.rawDir, m.processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create mirror dir %s: %w", dir, err)
		}
	}
	return m, nil
}

// WriteRaw mirrors the raw series for symbol.
func (m *snapshotCSV) WriteRaw(symbol string, series []entity.EnrichedCandle) error {
	return writeSeries(filepath.Join(m.rawDir, symbol+"_historical.csv"), series)
}

// WriteProcessed mirrors the enriched series for symbol.
func (m *snapshotCSV) WriteProcessed(symbol string, series []entity.EnrichedCandle) error {
	return writeSeries(filepath.Join(m.processedDir, symbol+"_processed.csv"), series)
}

// ReadProcessed loads the mirrored enriched series for symbol. A missing
// file yields an empty series.
func (m *snapshotCSV) ReadProcessed(symbol string) ([]entity.EnrichedCandle, error) {
	path := filepath.Join(m.processedDir, symbol+"_processed.csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mirror %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	out := make([]entity.EnrichedCandle, 0, len(records)-1)
	for _, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("parse mirror %s: %w", path, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func writeSeries(path string, series []entity.EnrichedCandle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mirror %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range series {
		rec := []string{
			row.Date.Format(entity.SnapshotDateLayout),
			formatFloat(row.Open),
			formatFloat(row.High),
			formatFloat(row.Low),
			formatFloat(row.Close),
			formatFloat(row.Volume),
			formatPtr(row.RSI),
			formatPtr(row.MACD),
			formatPtr(row.MACDSignal),
			formatPtr(row.MACDHist),
			formatPtr(row.MA20),
			formatPtr(row.MA50),
			formatPtr(row.MA200),
			formatPtr(row.BBUpper),
			formatPtr(row.BBMiddle),
			formatPtr(row.BBLower),
		}
		if err := w.Write(rec); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parseRow(rec []string) (entity.EnrichedCandle, error) {
	var row entity.EnrichedCandle
	if len(rec) != len(csvHeader) {
		return row, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(rec))
	}

	date, err := time.Parse(entity.SnapshotDateLayout, rec[0])
	if err != nil {
		date, err = time.Parse("2006-01-02", rec[0])
		if err != nil {
			return row, err
		}
	}
	row.Date = date

	fields := []*float64{&row.Open, &row.High, &row.Low, &row.Close, &row.Volume}
	for i, dst := range fields {
		v, err := strconv.ParseFloat(rec[1+i], 64)
		if err != nil {
			return row, err
		}
		*dst = v
	}

	ptrs := []**float64{
		&row.RSI, &row.MACD, &row.MACDSignal, &row.MACDHist,
		&row.MA20, &row.MA50, &row.MA200,
		&row.BBUpper, &row.BBMiddle, &row.BBLower,
	}
	for i, dst := range ptrs {
		cell := rec[6+i]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return row, err
		}
		*dst = &v
	}
	return row, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
