package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/feature/analysis/domain/entity"
	mdentity "crypto_dashboard/internal/feature/marketdata/domain/entity"
	newsentity "crypto_dashboard/internal/feature/news/domain/entity"
	"crypto_dashboard/internal/shared/sentiment"
)

type mockSummarySource struct {
	GetMarketSummaryFn func(ctx context.Context, symbol string, forceUpdate bool) *mdentity.MarketSummary
}

func (m *mockSummarySource) GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *mdentity.MarketSummary {
	return m.GetMarketSummaryFn(ctx, symbol, forceUpdate)
}

type mockNewsSource struct {
	GetNewsFn func(ctx context.Context, symbol string, limit int, forceUpdate bool) []newsentity.NewsItem
}

func (m *mockNewsSource) GetNews(ctx context.Context, symbol string, limit int, forceUpdate bool) []newsentity.NewsItem {
	return m.GetNewsFn(ctx, symbol, limit, forceUpdate)
}

func (m *mockNewsSource) OverallSentiment(items []newsentity.NewsItem) string {
	scores := make([]float64, len(items))
	for i, it := range items {
		scores[i] = it.Sentiment
	}
	return sentiment.AggregateLabel(scores)
}

type mockAnalyzer struct {
	AnalyzeFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	return m.AnalyzeFn(ctx, prompt)
}

func f64(v float64) *float64 { return &v }

func testSummary() *mdentity.MarketSummary {
	return &mdentity.MarketSummary{
		Symbol:         "BTC",
		Price:          50000,
		PriceChange24h: 2.5,
		RSI:            f64(55),
		MACDSignal:     mdentity.SignalBullish,
		MASignal:       mdentity.SignalBullish,
		Volume24h:      12345,
		Timestamp:      time.Now(),
	}
}

func testItems(n int) []newsentity.NewsItem {
	items := make([]newsentity.NewsItem, n)
	for i := range items {
		items[i] = newsentity.NewsItem{
			Title:     "headline",
			Sentiment: 0.5,
			Label:     newsentity.SentimentPositive,
		}
	}
	return items
}

func TestGenerateMarketAnalysis_CombinesSources(t *testing.T) {
	t.Parallel()

	summaries := &mockSummarySource{
		GetMarketSummaryFn: func(_ context.Context, symbol string, _ bool) *mdentity.MarketSummary {
			assert.Equal(t, "BTC", symbol)
			return testSummary()
		},
	}
	news := &mockNewsSource{
		GetNewsFn: func(_ context.Context, _ string, _ int, _ bool) []newsentity.NewsItem {
			return testItems(5)
		},
	}

	u := NewAnalysisUsecase(summaries, news, nil)
	got := u.GenerateMarketAnalysis(context.Background(), "BTC")

	require.NotNil(t, got)
	assert.Equal(t, "BTC", got.Symbol)
	assert.Equal(t, 50000.0, got.Price.CurrentPrice)
	assert.Equal(t, string(mdentity.SignalBullish), got.Price.Trend)
	assert.Equal(t, entity.RSINeutral, got.Technical.RSICondition)
	assert.Equal(t, newsentity.SentimentPositive, got.Sentiment.NewsSentiment)
	assert.Equal(t, 5, got.Sentiment.NewsCount)
	assert.Len(t, got.Sentiment.LatestNews, latestNewsCount)
	assert.Empty(t, got.LLMAnalysis)
}

func TestGenerateMarketAnalysis_NoMarketData(t *testing.T) {
	t.Parallel()

	summaries := &mockSummarySource{
		GetMarketSummaryFn: func(_ context.Context, _ string, _ bool) *mdentity.MarketSummary {
			return nil
		},
	}
	news := &mockNewsSource{
		GetNewsFn: func(_ context.Context, _ string, _ int, _ bool) []newsentity.NewsItem {
			t.Fatal("news should not be fetched without market data")
			return nil
		},
	}

	u := NewAnalysisUsecase(summaries, news, nil)
	assert.Nil(t, u.GenerateMarketAnalysis(context.Background(), "NOPE"))
}

func TestGenerateMarketAnalysis_RSIConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rsi  *float64
		want string
	}{
		{name: "overbought", rsi: f64(75), want: entity.RSIOverbought},
		{name: "oversold", rsi: f64(25), want: entity.RSIOversold},
		{name: "neutral", rsi: f64(50), want: entity.RSINeutral},
		{name: "boundary 70 is neutral", rsi: f64(70), want: entity.RSINeutral},
		{name: "boundary 30 is neutral", rsi: f64(30), want: entity.RSINeutral},
		{name: "undefined is neutral", rsi: nil, want: entity.RSINeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			summaries := &mockSummarySource{
				GetMarketSummaryFn: func(_ context.Context, _ string, _ bool) *mdentity.MarketSummary {
					s := testSummary()
					s.RSI = tt.rsi
					return s
				},
			}
			news := &mockNewsSource{
				GetNewsFn: func(_ context.Context, _ string, _ int, _ bool) []newsentity.NewsItem {
					return nil
				},
			}

			u := NewAnalysisUsecase(summaries, news, nil)
			got := u.GenerateMarketAnalysis(context.Background(), "BTC")
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Technical.RSICondition)
		})
	}
}

func TestGenerateMarketAnalysis_NarrativeIncluded(t *testing.T) {
	t.Parallel()

	summaries := &mockSummarySource{
		GetMarketSummaryFn: func(_ context.Context, _ string, _ bool) *mdentity.MarketSummary {
			return testSummary()
		},
	}
	news := &mockNewsSource{
		GetNewsFn: func(_ context.Context, _ string, _ int, _ bool) []newsentity.NewsItem {
			items := testItems(1)
			items[0].Title = "Bitcoin surges past resistance"
			return items
		},
	}
	analyzer := &mockAnalyzer{
		AnalyzeFn: func(_ context.Context, prompt string) (string, error) {
			assert.True(t, strings.Contains(prompt, "Bitcoin surges past resistance"))
			assert.True(t, strings.Contains(prompt, "Current Price: $50000.00"))
			return "looks constructive", nil
		},
	}

	u := NewAnalysisUsecase(summaries, news, analyzer)
	got := u.GenerateMarketAnalysis(context.Background(), "BTC")
	require.NotNil(t, got)
	assert.Equal(t, "looks constructive", got.LLMAnalysis)
}

func TestGenerateMarketAnalysis_AnalyzerFailureDegrades(t *testing.T) {
	t.Parallel()

	summaries := &mockSummarySource{
		GetMarketSummaryFn: func(_ context.Context, _ string, _ bool) *mdentity.MarketSummary {
			return testSummary()
		},
	}
	news := &mockNewsSource{
		GetNewsFn: func(_ context.Context, _ string, _ int, _ bool) []newsentity.NewsItem {
			return nil
		},
	}
	analyzer := &mockAnalyzer{
		AnalyzeFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	u := NewAnalysisUsecase(summaries, news, analyzer)
	got := u.GenerateMarketAnalysis(context.Background(), "BTC")
	require.NotNil(t, got)
	assert.Empty(t, got.LLMAnalysis)
	assert.Equal(t, 0, got.Sentiment.NewsCount)
}
