package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mdadapters "crypto_dashboard/internal/feature/marketdata/adapters"
	mdusecase "crypto_dashboard/internal/feature/marketdata/usecase"
	newsadapters "crypto_dashboard/internal/feature/news/adapters"
	newsusecase "crypto_dashboard/internal/feature/news/usecase"
	watchlistadapters "crypto_dashboard/internal/feature/watchlist/adapters"
	"crypto_dashboard/internal/platform/externalapi/alphavantage"
	infrahttp "crypto_dashboard/internal/platform/http"
	platformmongo "crypto_dashboard/internal/platform/mongo"
	"crypto_dashboard/internal/shared/ratelimiter"
)

// apiCallsPerMinute matches the Alpha Vantage free-tier budget.
const apiCallsPerMinute = 5

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// An ingest run exists to persist, so MongoDB being down is fatal here,
	// unlike in the server.
	db, err := platformmongo.NewMongoDatabase(ctx)
	if err != nil {
		log.Fatal("MongoDB unavailable:", err)
	}
	snapStore := mdadapters.NewSnapshotStore(db)
	if err := snapStore.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to ensure snapshot indexes:", err)
	}
	newsStore := newsadapters.NewNewsStore(db)
	if err := newsStore.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to ensure news indexes:", err)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	snapMirror, err := mdadapters.NewSnapshotMirror(dataDir)
	if err != nil {
		log.Fatal("failed to create snapshot mirror:", err)
	}
	newsMirror, err := newsadapters.NewNewsMirror(dataDir)
	if err != nil {
		log.Fatal("failed to create news mirror:", err)
	}

	avCfg := alphavantage.LoadConfig()
	avClient := alphavantage.NewClient(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout))

	marketUC := mdusecase.NewMarketDataUsecase(avClient, snapStore, snapMirror, 0)
	newsUC := newsusecase.NewNewsUsecase(avClient, newsStore, newsMirror, 0)

	dbPath := os.Getenv("WATCHLIST_DB")
	if dbPath == "" {
		dbPath = "./crypto.db"
	}
	wdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open watchlist database:", err)
	}
	symbolRepo := watchlistadapters.NewSymbolRepository(wdb)
	if err := symbolRepo.Migrate(); err != nil {
		log.Fatal("failed to migrate watchlist:", err)
	}
	if err := symbolRepo.SeedDefaults(ctx); err != nil {
		log.Fatal("failed to seed watchlist:", err)
	}

	symbols, err := symbolRepo.ListActiveCodes(ctx)
	if err != nil {
		log.Fatal("failed to load watchlist:", err)
	}

	rl := ratelimiter.NewRateLimiter(apiCallsPerMinute, time.Minute)
	for _, symbol := range symbols {
		rl.WaitIfNeeded()
		series := marketUC.GetHistoricalData(ctx, symbol, mdusecase.DefaultMarket, true)
		slog.Info("ingested market data", "symbol", symbol, "rows", len(series))

		rl.WaitIfNeeded()
		items := newsUC.GetNews(ctx, symbol, newsusecase.DefaultLimit, true)
		slog.Info("ingested news", "symbol", symbol, "items", len(items))
	}
	slog.Info("ingest complete", "symbols", len(symbols))
}
