package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
	"crypto_dashboard/internal/feature/marketdata/domain/indicator"
)

// mockFetcher is a test double for the MarketFetcher interface.
type mockFetcher struct {
	getDailySeriesFn func(ctx context.Context, symbol, market string) ([]entity.Candle, error)
	calls            int
}

func (m *mockFetcher) GetDailySeries(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
	m.calls++
	if m.getDailySeriesFn != nil {
		return m.getDailySeriesFn(ctx, symbol, market)
	}
	return nil, nil
}

// mockStore is a test double for the SnapshotStore interface.
type mockStore struct {
	saveRawFn         func(ctx context.Context, snap entity.Snapshot) error
	saveProcessedFn   func(ctx context.Context, snap entity.Snapshot) error
	latestRawFn       func(ctx context.Context, symbol string) (*entity.Snapshot, error)
	latestProcessedFn func(ctx context.Context, symbol string) (*entity.Snapshot, error)

	savedRaw       []entity.Snapshot
	savedProcessed []entity.Snapshot
}

func (m *mockStore) SaveRaw(ctx context.Context, snap entity.Snapshot) error {
	m.savedRaw = append(m.savedRaw, snap)
	if m.saveRawFn != nil {
		return m.saveRawFn(ctx, snap)
	}
	return nil
}

func (m *mockStore) SaveProcessed(ctx context.Context, snap entity.Snapshot) error {
	m.savedProcessed = append(m.savedProcessed, snap)
	if m.saveProcessedFn != nil {
		return m.saveProcessedFn(ctx, snap)
	}
	return nil
}

func (m *mockStore) LatestRaw(ctx context.Context, symbol string) (*entity.Snapshot, error) {
	if m.latestRawFn != nil {
		return m.latestRawFn(ctx, symbol)
	}
	return nil, nil
}

func (m *mockStore) LatestProcessed(ctx context.Context, symbol string) (*entity.Snapshot, error) {
	if m.latestProcessedFn != nil {
		return m.latestProcessedFn(ctx, symbol)
	}
	return nil, nil
}

// mockMirror is a test double for the SnapshotMirror interface.
type mockMirror struct {
	readProcessedFn func(symbol string) ([]entity.EnrichedCandle, error)

	wroteRaw       [][]entity.EnrichedCandle
	wroteProcessed [][]entity.EnrichedCandle
}

func (m *mockMirror) WriteRaw(symbol string, series []entity.EnrichedCandle) error {
	m.wroteRaw = append(m.wroteRaw, series)
	return nil
}

func (m *mockMirror) WriteProcessed(symbol string, series []entity.EnrichedCandle) error {
	m.wroteProcessed = append(m.wroteProcessed, series)
	return nil
}

func (m *mockMirror) ReadProcessed(symbol string) ([]entity.EnrichedCandle, error) {
	if m.readProcessedFn != nil {
		return m.readProcessedFn(symbol)
	}
	return nil, nil
}

func testCandles(n int) []entity.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.Candle, n)
	for i := range out {
		price := 100 + float64(i)
		out[i] = entity.Candle{Date: base.AddDate(0, 0, i), Open: price, High: price + 2, Low: price - 2, Close: price, Volume: 500}
	}
	return out
}

func processedSnapshot(symbol string, n int, capturedAt time.Time) *entity.Snapshot {
	snap := entity.NewSnapshot(symbol, "USD", indicator.Enrich(testCandles(n)))
	snap.CapturedAt = capturedAt
	return &snap
}

// TestIsStale verifies the freshness boundary: absent or failed reads are
// stale, a record exactly at maxAge is still fresh, one second over is not.
func TestIsStale(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 24 * time.Hour

	tests := []struct {
		name     string
		latestFn func(ctx context.Context, symbol string) (*entity.Snapshot, error)
		want     bool
	}{
		{
			name:     "no record is stale",
			latestFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) { return nil, nil },
			want:     true,
		},
		{
			name:     "read failure degrades to stale",
			latestFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) { return nil, errors.New("down") },
			want:     true,
		},
		{
			name: "record exactly at max age is fresh",
			latestFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
				return processedSnapshot("BTC", 5, now.Add(-24*time.Hour)), nil
			},
			want: false,
		},
		{
			name: "record one second over max age is stale",
			latestFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
				return processedSnapshot("BTC", 5, now.Add(-24*time.Hour-time.Second)), nil
			},
			want: true,
		},
		{
			name: "recent record is fresh",
			latestFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
				return processedSnapshot("BTC", 5, now.Add(-time.Hour)), nil
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := NewMarketDataUsecase(&mockFetcher{}, &mockStore{latestProcessedFn: tt.latestFn}, nil, maxAge)
			u.now = func() time.Time { return now }

			assert.Equal(t, tt.want, u.IsStale(context.Background(), "BTC"))
		})
	}
}

// TestGetHistoricalData_FreshCacheSkipsNetwork verifies that a fresh snapshot
// is reshaped from the store without any fetch.
func TestGetHistoricalData_FreshCacheSkipsNetwork(t *testing.T) {
	t.Parallel()

	now := time.Now()
	fetcher := &mockFetcher{}
	store := &mockStore{
		latestProcessedFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return processedSnapshot("BTC", 10, now.Add(-time.Hour)), nil
		},
	}

	u := NewMarketDataUsecase(fetcher, store, &mockMirror{}, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	assert.Len(t, series, 10)
	assert.Equal(t, 0, fetcher.calls, "fresh cache must not trigger a fetch")
	// Reshaped series comes back date-ascending.
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Date.After(series[i-1].Date))
	}
}

// TestGetHistoricalData_StaleTriggersFetchAndDualWrite verifies the full
// fetch-enrich-persist cycle: both forms written to both tiers.
func TestGetHistoricalData_StaleTriggersFetchAndDualWrite(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return testCandles(30), nil
		},
	}
	store := &mockStore{}
	mirror := &mockMirror{}

	u := NewMarketDataUsecase(fetcher, store, mirror, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	require.Len(t, series, 30)
	assert.Equal(t, 1, fetcher.calls)
	require.Len(t, store.savedRaw, 1)
	require.Len(t, store.savedProcessed, 1)
	require.Len(t, mirror.wroteRaw, 1)
	require.Len(t, mirror.wroteProcessed, 1)

	// Raw rows carry no indicator columns; processed rows do.
	for _, row := range store.savedRaw[0].Rows {
		assert.Nil(t, row.RSI)
	}
	assert.NotNil(t, store.savedProcessed[0].Indicators)

	// Both tiers received identical processed rows.
	processed := store.savedProcessed[0].Series()
	require.Len(t, mirror.wroteProcessed[0], len(processed))
	for i := range processed {
		assert.InDelta(t, processed[i].Close, mirror.wroteProcessed[0][i].Close, 1e-9)
	}
}

// TestGetHistoricalData_ForceUpdateBypassesFreshCache verifies that
// forceUpdate refetches even when the snapshot is fresh.
func TestGetHistoricalData_ForceUpdateBypassesFreshCache(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return testCandles(5), nil
		},
	}
	store := &mockStore{
		latestProcessedFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return processedSnapshot("BTC", 10, time.Now()), nil
		},
	}

	u := NewMarketDataUsecase(fetcher, store, nil, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", true)

	assert.Len(t, series, 5)
	assert.Equal(t, 1, fetcher.calls)
}

// TestGetHistoricalData_FetchFailureFallsBackToStore verifies graceful
// degradation: a total API outage with an existing snapshot serves the cache.
func TestGetHistoricalData_FetchFailureFallsBackToStore(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return nil, errors.New("api outage")
		},
	}
	store := &mockStore{
		latestProcessedFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return processedSnapshot("BTC", 8, time.Now().Add(-48*time.Hour)), nil
		},
	}

	u := NewMarketDataUsecase(fetcher, store, nil, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	assert.Len(t, series, 8, "outage with cached snapshot must serve the cache")
}

// TestGetHistoricalData_FetchFailureFallsBackToRawSnapshot verifies the
// second rung of the ladder: a raw snapshot is re-enriched when no processed
// one exists.
func TestGetHistoricalData_FetchFailureFallsBackToRawSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return nil, errors.New("api outage")
		},
	}
	rawRows := make([]entity.EnrichedCandle, 0, 30)
	for _, c := range testCandles(30) {
		rawRows = append(rawRows, entity.EnrichedCandle{Candle: c})
	}
	rawSnap := entity.NewSnapshot("BTC", "USD", rawRows)
	store := &mockStore{
		latestRawFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return &rawSnap, nil
		},
	}

	u := NewMarketDataUsecase(fetcher, store, nil, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	require.Len(t, series, 30)
	assert.NotNil(t, series[len(series)-1].RSI, "raw fallback should be re-enriched")
}

// TestGetHistoricalData_FetchFailureFallsBackToMirror verifies the flat-file
// mirror serves when the primary store fails entirely.
func TestGetHistoricalData_FetchFailureFallsBackToMirror(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return nil, errors.New("api outage")
		},
	}
	store := &mockStore{
		latestProcessedFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return nil, errors.New("store down")
		},
		latestRawFn: func(ctx context.Context, symbol string) (*entity.Snapshot, error) {
			return nil, errors.New("store down")
		},
	}
	mirrored := indicator.Enrich(testCandles(6))
	mirror := &mockMirror{
		readProcessedFn: func(symbol string) ([]entity.EnrichedCandle, error) {
			return mirrored, nil
		},
	}

	u := NewMarketDataUsecase(fetcher, store, mirror, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	assert.Len(t, series, 6)
}

// TestGetHistoricalData_TotalFailureReturnsEmpty verifies that with every
// tier down the pipeline returns empty instead of panicking or erroring.
func TestGetHistoricalData_TotalFailureReturnsEmpty(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		getDailySeriesFn: func(ctx context.Context, symbol, market string) ([]entity.Candle, error) {
			return nil, errors.New("api outage")
		},
	}

	u := NewMarketDataUsecase(fetcher, nil, nil, 0)
	series := u.GetHistoricalData(context.Background(), "BTC", "USD", false)

	assert.Empty(t, series)
}
