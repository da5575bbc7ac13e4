// Package usecase implements the historical market data cache and indicator
// pipeline: freshness-gated fetching, enrichment and dual-store persistence.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
	"crypto_dashboard/internal/feature/marketdata/domain/indicator"
)

const (
	// DefaultMarket is the quote currency used when the caller does not name one.
	DefaultMarket = "USD"
	// DefaultMaxAge is how long a processed snapshot stays fresh.
	DefaultMaxAge = 24 * time.Hour
)

// MarketFetcher retrieves the raw daily OHLCV series for a symbol from the
// external quote API. Following Go convention: interfaces are defined by the
// consumer (usecase), not the provider (adapters).
type MarketFetcher interface {
	GetDailySeries(ctx context.Context, symbol, market string) ([]entity.Candle, error)
}

// SnapshotStore is the primary, document-oriented persistence tier.
// Implementations append timestamped snapshots and answer "most recent for
// symbol" queries; a missing record is (nil, nil), not an error.
type SnapshotStore interface {
	SaveRaw(ctx context.Context, snap entity.Snapshot) error
	SaveProcessed(ctx context.Context, snap entity.Snapshot) error
	LatestRaw(ctx context.Context, symbol string) (*entity.Snapshot, error)
	LatestProcessed(ctx context.Context, symbol string) (*entity.Snapshot, error)
}

// SnapshotMirror is the flat-file fallback tier. It is written on every
// successful fetch and read only when the primary store fails entirely.
type SnapshotMirror interface {
	WriteRaw(symbol string, series []entity.EnrichedCandle) error
	WriteProcessed(symbol string, series []entity.EnrichedCandle) error
	ReadProcessed(symbol string) ([]entity.EnrichedCandle, error)
}

// MarketDataUsecase drives the fetch-or-cache pipeline for one request at a
// time. Two concurrent callers for the same stale symbol may both fetch; the
// append-only stores make that harmless.
type MarketDataUsecase struct {
	fetcher MarketFetcher
	store   SnapshotStore
	mirror  SnapshotMirror
	maxAge  time.Duration
	now     func() time.Time
}

// NewMarketDataUsecase creates a MarketDataUsecase. A non-positive maxAge
// falls back to DefaultMaxAge. store and mirror may be nil; the pipeline then
// degrades to live fetches without persistence.
func NewMarketDataUsecase(fetcher MarketFetcher, store SnapshotStore, mirror SnapshotMirror, maxAge time.Duration) *MarketDataUsecase {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &MarketDataUsecase{
		fetcher: fetcher,
		store:   store,
		mirror:  mirror,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// IsStale reports whether the cached processed snapshot for symbol needs a
// refresh. No snapshot, or a failed read, counts as stale. The boundary is
// inclusive of "not yet stale": a record exactly maxAge old is still fresh,
// one second older is not.
func (u *MarketDataUsecase) IsStale(ctx context.Context, symbol string) bool {
	snap := u.latestProcessed(ctx, symbol)
	if snap == nil {
		return true
	}
	return u.now().Sub(snap.CapturedAt) > u.maxAge
}

// GetHistoricalData returns the enriched daily series for symbol. Fresh
// cached snapshots are reshaped without touching the network; stale or absent
// ones trigger a fetch-enrich-persist cycle. On total failure it returns an
// empty series, never an error: the caller renders "data unavailable".
func (u *MarketDataUsecase) GetHistoricalData(ctx context.Context, symbol, market string, forceUpdate bool) []entity.EnrichedCandle {
	if market == "" {
		market = DefaultMarket
	}

	if !forceUpdate && !u.IsStale(ctx, symbol) {
		if snap := u.latestProcessed(ctx, symbol); snap != nil {
			slog.Info("serving cached market data", "symbol", symbol)
			return snap.Series()
		}
	}

	raw, err := u.fetcher.GetDailySeries(ctx, symbol, market)
	if err != nil {
		slog.Error("market data fetch failed, falling back to cache", "symbol", symbol, "error", err)
		return u.fallbackSeries(ctx, symbol)
	}

	enriched := indicator.Enrich(raw)
	if len(enriched) == 0 {
		return u.fallbackSeries(ctx, symbol)
	}

	// Raw rows share the enriched type with indicator columns left nil.
	rawRows := make([]entity.EnrichedCandle, len(raw))
	for i, c := range raw {
		rawRows[i] = entity.EnrichedCandle{Candle: c}
	}
	u.persist(ctx, symbol, market, rawRows, enriched)

	return enriched
}

// persist writes both snapshot forms to the primary store and the flat-file
// mirror. Write failures are logged and dropped: losing a cache write is
// acceptable, losing the fetched data is not.
func (u *MarketDataUsecase) persist(ctx context.Context, symbol, market string, raw, processed []entity.EnrichedCandle) {
	if u.store != nil {
		if err := u.store.SaveRaw(ctx, entity.NewSnapshot(symbol, market, raw)); err != nil {
			slog.Error("failed to save raw snapshot", "symbol", symbol, "error", err)
		}
		if err := u.store.SaveProcessed(ctx, entity.NewSnapshot(symbol, market, processed)); err != nil {
			slog.Error("failed to save processed snapshot", "symbol", symbol, "error", err)
		}
	}
	if u.mirror != nil {
		if err := u.mirror.WriteRaw(symbol, raw); err != nil {
			slog.Error("failed to mirror raw series", "symbol", symbol, "error", err)
		}
		if err := u.mirror.WriteProcessed(symbol, processed); err != nil {
			slog.Error("failed to mirror processed series", "symbol", symbol, "error", err)
		}
	}
}

// fallbackSeries walks the degradation ladder after a failed fetch:
// processed snapshot, then raw snapshot re-enriched, then the flat-file
// mirror, then empty.
func (u *MarketDataUsecase) fallbackSeries(ctx context.Context, symbol string) []entity.EnrichedCandle {
	if snap := u.latestProcessed(ctx, symbol); snap != nil {
		return snap.Series()
	}
	if u.store != nil {
		snap, err := u.store.LatestRaw(ctx, symbol)
		if err != nil {
			slog.Error("failed to read raw snapshot", "symbol", symbol, "error", err)
		} else if snap != nil {
			rows := snap.Series()
			candles := make([]entity.Candle, len(rows))
			for i, r := range rows {
				candles[i] = r.Candle
			}
			return indicator.Enrich(candles)
		}
	}
	if u.mirror != nil {
		series, err := u.mirror.ReadProcessed(symbol)
		if err != nil {
			slog.Error("failed to read mirrored series", "symbol", symbol, "error", err)
		} else if len(series) > 0 {
			slog.Info("serving flat-file mirror", "symbol", symbol)
			return series
		}
	}
	return nil
}

// latestProcessed reads the most recent processed snapshot, degrading a read
// failure to "no record".
func (u *MarketDataUsecase) latestProcessed(ctx context.Context, symbol string) *entity.Snapshot {
	if u.store == nil {
		return nil
	}
	snap, err := u.store.LatestProcessed(ctx, symbol)
	if err != nil {
		slog.Error("failed to read processed snapshot", "symbol", symbol, "error", err)
		return nil
	}
	return snap
}
