// Package usecase implements the news fetch, sentiment scoring and caching
// flow. It mirrors the market data pipeline with a shorter freshness window.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"crypto_dashboard/internal/feature/news/domain/entity"
	"crypto_dashboard/internal/shared/sentiment"
)

const (
	// DefaultLimit is the number of articles requested when the caller does
	// not name one.
	DefaultLimit = 10
	// MaxLimit caps a single request.
	MaxLimit = 50
	// DefaultMaxAge is how long a cached news batch stays fresh.
	DefaultMaxAge = 60 * time.Minute
)

// NewsFetcher retrieves recent raw articles for a symbol from the news API.
type NewsFetcher interface {
	GetNewsFeed(ctx context.Context, symbol string, limit int) ([]entity.Article, error)
}

// NewsStore is the primary, document-oriented persistence tier for news
// batches. A missing record is (nil, nil), not an error.
type NewsStore interface {
	Save(ctx context.Context, batch entity.NewsBatch) error
	Latest(ctx context.Context, symbol string) (*entity.NewsBatch, error)
}

// NewsMirror is the flat-file fallback tier, consulted only when both the
// API and the primary store fail.
type NewsMirror interface {
	Write(symbol string, items []entity.NewsItem) error
	Read(symbol string) ([]entity.NewsItem, error)
}

// NewsUsecase drives the freshness-gated news flow for one symbol at a time.
type NewsUsecase struct {
	fetcher NewsFetcher
	store   NewsStore
	mirror  NewsMirror
	maxAge  time.Duration
	now     func() time.Time
}

// NewNewsUsecase creates a NewsUsecase. A non-positive maxAge falls back to
// DefaultMaxAge; store and mirror may be nil.
func NewNewsUsecase(fetcher NewsFetcher, store NewsStore, mirror NewsMirror, maxAge time.Duration) *NewsUsecase {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &NewsUsecase{
		fetcher: fetcher,
		store:   store,
		mirror:  mirror,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// IsStale reports whether the cached news batch for symbol needs a refresh.
// Same boundary as market data: strictly older than maxAge is stale.
func (u *NewsUsecase) IsStale(ctx context.Context, symbol string) bool {
	batch := u.latest(ctx, symbol)
	if batch == nil {
		return true
	}
	return u.now().Sub(batch.CapturedAt) > u.maxAge
}

// GetNews returns recent scored news for symbol. Fresh cached batches skip
// the network; on total failure (API and both cache tiers empty) it returns
// an empty slice, never an error.
func (u *NewsUsecase) GetNews(ctx context.Context, symbol string, limit int, forceUpdate bool) []entity.NewsItem {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	if !forceUpdate && !u.IsStale(ctx, symbol) {
		if batch := u.latest(ctx, symbol); batch != nil {
			slog.Info("serving cached news", "symbol", symbol)
			return batch.Items
		}
	}

	articles, err := u.fetcher.GetNewsFeed(ctx, symbol, limit)
	if err != nil {
		slog.Error("news fetch failed, falling back to cache", "symbol", symbol, "error", err)
		return u.fallbackItems(ctx, symbol)
	}

	items := make([]entity.NewsItem, 0, len(articles))
	for _, a := range articles {
		score := sentiment.Score(a.Title + " " + a.Summary)
		items = append(items, entity.NewsItem{
			Title:       a.Title,
			Summary:     a.Summary,
			URL:         a.URL,
			Source:      a.Source,
			PublishedAt: a.PublishedAt,
			Sentiment:   score,
			Label:       sentiment.Label(score),
		})
	}

	u.persist(ctx, symbol, items)
	return items
}

// OverallSentiment aggregates a batch of items to a single label using the
// mean-score ±0.2 band.
func (u *NewsUsecase) OverallSentiment(items []entity.NewsItem) string {
	scores := make([]float64, len(items))
	for i, it := range items {
		scores[i] = it.Sentiment
	}
	return sentiment.AggregateLabel(scores)
}

// persist appends the batch to the primary store and rewrites the flat-file
// mirror. Write failures are logged and dropped.
func (u *NewsUsecase) persist(ctx context.Context, symbol string, items []entity.NewsItem) {
	if u.store != nil {
		if err := u.store.Save(ctx, entity.NewsBatch{Symbol: symbol, Items: items}); err != nil {
			slog.Error("failed to save news batch", "symbol", symbol, "error", err)
		}
	}
	if u.mirror != nil {
		if err := u.mirror.Write(symbol, items); err != nil {
			slog.Error("failed to mirror news batch", "symbol", symbol, "error", err)
		}
	}
}

// fallbackItems walks the degradation ladder after a failed fetch: primary
// store, then mirror, then empty.
func (u *NewsUsecase) fallbackItems(ctx context.Context, symbol string) []entity.NewsItem {
	if batch := u.latest(ctx, symbol); batch != nil {
		return batch.Items
	}
	if u.mirror != nil {
		items, err := u.mirror.Read(symbol)
		if err != nil {
			slog.Error("failed to read mirrored news", "symbol", symbol, "error", err)
		} else if len(items) > 0 {
			slog.Info("serving flat-file news mirror", "symbol", symbol)
			return items
		}
	}
	return []entity.NewsItem{}
}

// latest reads the most recent batch, degrading a read failure to "no
// record".
func (u *NewsUsecase) latest(ctx context.Context, symbol string) *entity.NewsBatch {
	if u.store == nil {
		return nil
	}
	batch, err := u.store.Latest(ctx, symbol)
	if err != nil {
		slog.Error("failed to read news batch", "symbol", symbol, "error", err)
		return nil
	}
	return batch
}
