package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	mdentity "crypto_dashboard/internal/feature/marketdata/domain/entity"
	mdusecase "crypto_dashboard/internal/feature/marketdata/usecase"
	newsentity "crypto_dashboard/internal/feature/news/domain/entity"
	newsusecase "crypto_dashboard/internal/feature/news/usecase"
	"crypto_dashboard/internal/platform/externalapi/alphavantage/dto"
)

const (
	functionDailySeries   = "DIGITAL_CURRENCY_DAILY"
	functionNewsSentiment = "NEWS_SENTIMENT"

	// timePublishedLayout is the compact timestamp of the news feed.
	timePublishedLayout = "20060102T150405"

	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// Client fetches daily digital currency series and news from Alpha Vantage.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time checks that Client implements both fetcher interfaces.
var (
	_ mdusecase.MarketFetcher = (*Client)(nil)
	_ newsusecase.NewsFetcher = (*Client)(nil)
)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetDailySeries fetches the full daily OHLCV series for symbol against the
// given quote market, coerced to numbers and sorted ascending by date.
// Rows that fail to parse are skipped.
func (c *Client) GetDailySeries(ctx context.Context, symbol, market string) ([]mdentity.Candle, error) {
	q := url.Values{}
	q.Set("function", functionDailySeries)
	q.Set("symbol", symbol)
	q.Set("market", market)
	q.Set("apikey", c.cfg.APIKey)

	var body dto.DailySeriesResponse
	if err := c.getJSON(ctx, q, &body); err != nil {
		return nil, err
	}
	if msg := apiError(body.ErrorMessage, body.Note, body.Information); msg != "" {
		return nil, fmt.Errorf("alphavantage: %s", msg)
	}
	if body.TimeSeries == nil {
		return nil, fmt.Errorf("alphavantage: response has no daily time series for %s", symbol)
	}

	candles := make([]mdentity.Candle, 0, len(body.TimeSeries))
	for date, row := range body.TimeSeries {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			slog.Warn("skipping row with unparseable date", "symbol", symbol, "date", date)
			continue
		}
		o, err1 := strconv.ParseFloat(row.Open, 64)
		h, err2 := strconv.ParseFloat(row.High, 64)
		l, err3 := strconv.ParseFloat(row.Low, 64)
		cl, err4 := strconv.ParseFloat(row.Close, 64)
		v, err5 := strconv.ParseFloat(row.Volume, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			slog.Warn("skipping row with non-numeric fields", "symbol", symbol, "date", date)
			continue
		}
		candles = append(candles, mdentity.Candle{Date: d, Open: o, High: h, Low: l, Close: cl, Volume: v})
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })
	return candles, nil
}

// GetNewsFeed fetches up to limit recent articles for a crypto symbol.
func (c *Client) GetNewsFeed(ctx context.Context, symbol string, limit int) ([]newsentity.Article, error) {
	q := url.Values{}
	q.Set("function", functionNewsSentiment)
	q.Set("tickers", "CRYPTO:"+symbol)
	q.Set("apikey", c.cfg.APIKey)
	q.Set("limit", strconv.Itoa(limit))

	var body dto.NewsResponse
	if err := c.getJSON(ctx, q, &body); err != nil {
		return nil, err
	}
	if msg := apiError(body.ErrorMessage, body.Note, body.Information); msg != "" {
		return nil, fmt.Errorf("alphavantage: %s", msg)
	}

	articles := make([]newsentity.Article, 0, len(body.Feed))
	for _, a := range body.Feed {
		published, err := time.Parse(timePublishedLayout, a.TimePublished)
		if err != nil {
			published = time.Time{}
		}
		articles = append(articles, newsentity.Article{
			Title:       a.Title,
			Summary:     a.Summary,
			URL:         a.URL,
			Source:      a.Source,
			PublishedAt: published,
		})
	}
	return articles, nil
}

// getJSON issues a GET with bounded retries. Transient failures (network
// errors, HTTP 429 and 5xx) back off and retry; anything else fails fast.
func (c *Client) getJSON(ctx context.Context, params url.Values, out any) error {
	u := fmt.Sprintf("%s?%s", c.cfg.BaseURL, params.Encode())

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		res, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("alphavantage request failed", "attempt", attempt, "error", err)
			continue
		}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			_ = res.Body.Close()
			lastErr = fmt.Errorf("alphavantage http %d", res.StatusCode)
			slog.Warn("alphavantage transient status", "attempt", attempt, "status", res.StatusCode)
			continue
		}
		if res.StatusCode >= 400 {
			_ = res.Body.Close()
			return fmt.Errorf("alphavantage http %d", res.StatusCode)
		}

		err = json.NewDecoder(res.Body).Decode(out)
		if cerr := res.Body.Close(); cerr != nil {
			slog.Warn("failed to close response body", "error", cerr)
		}
		return err
	}
	return fmt.Errorf("alphavantage: giving up after %d attempts: %w", maxAttempts, lastErr)
}

// apiError extracts the error surface Alpha Vantage hides inside 200
// responses: explicit errors, rate-limit notes and plan information.
func apiError(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}
