package usecase

import (
	"context"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
)

// GetMarketSummary reduces the latest enriched series for symbol to a flat
// snapshot. Fewer than two rows of history yield nil: a percent change needs
// a previous day.
func (u *MarketDataUsecase) GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *entity.MarketSummary {
	series := u.GetHistoricalData(ctx, symbol, DefaultMarket, forceUpdate)
	if len(series) < 2 {
		return nil
	}

	last := series[len(series)-1]
	prev := series[len(series)-2]

	summary := &entity.MarketSummary{
		Symbol:         symbol,
		Price:          last.Close,
		PriceChange24h: (last.Close - prev.Close) / prev.Close * 100,
		RSI:            last.RSI,
		MACDSignal:     entity.SignalBearish,
		MASignal:       entity.SignalBearish,
		Volume24h:      last.Volume,
		Timestamp:      u.now(),
	}
	// Both signals are strictly two-state; an undefined indicator reads as
	// bearish, same as a non-positive one.
	if last.MACDHist != nil && *last.MACDHist > 0 {
		summary.MACDSignal = entity.SignalBullish
	}
	if last.MA50 != nil && last.Close > *last.MA50 {
		summary.MASignal = entity.SignalBullish
	}
	return summary
}

// GetMultiSummary computes summaries for several symbols in one pass. Symbols
// with no data map to nil entries.
func (u *MarketDataUsecase) GetMultiSummary(ctx context.Context, symbols []string, forceUpdate bool) map[string]*entity.MarketSummary {
	out := make(map[string]*entity.MarketSummary, len(symbols))
	for _, s := range symbols {
		out[s] = u.GetMarketSummary(ctx, s, forceUpdate)
	}
	return out
}
