package adapters

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"crypto_dashboard/internal/feature/news/domain/entity"
	"crypto_dashboard/internal/feature/news/usecase"
)

var newsHeader = []string{"title", "summary", "url", "source", "timestamp", "sentiment", "sentiment_label"}

// newsCSV implements the NewsMirror interface on flat files: one file per
// symbol, rewritten on every successful fetch, read only as a last-resort
// fallback.
type newsCSV struct {
	dir string
}

var _ usecase.NewsMirror = (*newsCSV)(nil)

// NewNewsMirror creates the flat-file news mirror rooted at baseDir, creating
// the news directory as needed.
func NewNewsMirror(baseDir string) (*newsCSV, error) {
	dir := filepath.Join(baseDir, "news")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror dir %s: %w", dir, err)
	}
	return &newsCSV{dir: dir}, nil
}

// Write mirrors the scored items for symbol.
func (m *newsCSV) Write(symbol string, items []entity.NewsItem) error {
	path := m.path(symbol)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mirror %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(newsHeader); err != nil {
		_ = f.Close()
		return err
	}
	for _, it := range items {
		rec := []string{
			it.Title,
			it.Summary,
			it.URL,
			it.Source,
			it.PublishedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(it.Sentiment, 'f', -1, 64),
			it.Label,
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

// Read loads the mirrored items for symbol. A missing file yields an empty
// slice.
func (m *newsCSV) Read(symbol string) ([]entity.NewsItem, error) {
	path := m.path(symbol)
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

	items := make([]entity.NewsItem, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(newsHeader) {
			return nil, fmt.Errorf("parse mirror %s: expected %d columns, got %d", path, len(newsHeader), len(rec))
		}
		published, err := time.Parse(time.RFC3339, rec[4])
		if err != nil {
			return nil, fmt.Errorf("parse mirror %s: %w", path, err)
		}
		score, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("parse mirror %s: %w", path, err)
		}
		items = append(items, entity.NewsItem{
			Title:       rec[0],
			Summary:     rec[1],
			URL:         rec[2],
			Source:      rec[3],
			PublishedAt: published,
			Sentiment:   score,
			Label:       rec[6],
		})
	}
	return items, nil
}

func (m *newsCSV) path(symbol string) string {
	return filepath.Join(m.dir, symbol+"_news.csv")
}
