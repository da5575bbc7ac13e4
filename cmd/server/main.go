package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crypto_dashboard/internal/app/router"
	analysisgemini "crypto_dashboard/internal/feature/analysis/adapters/gemini"
	analysishandler "crypto_dashboard/internal/feature/analysis/transport/handler"
	analysisusecase "crypto_dashboard/internal/feature/analysis/usecase"
	mdadapters "crypto_dashboard/internal/feature/marketdata/adapters"
	mdhandler "crypto_dashboard/internal/feature/marketdata/transport/handler"
	mdusecase "crypto_dashboard/internal/feature/marketdata/usecase"
	newsadapters "crypto_dashboard/internal/feature/news/adapters"
	newshandler "crypto_dashboard/internal/feature/news/transport/handler"
	newsusecase "crypto_dashboard/internal/feature/news/usecase"
	watchlistadapters "crypto_dashboard/internal/feature/watchlist/adapters"
	watchlisthandler "crypto_dashboard/internal/feature/watchlist/transport/handler"
	watchlistusecase "crypto_dashboard/internal/feature/watchlist/usecase"
	"crypto_dashboard/internal/platform/cache"
	"crypto_dashboard/internal/platform/externalapi/alphavantage"
	infrahttp "crypto_dashboard/internal/platform/http"
	platformmongo "crypto_dashboard/internal/platform/mongo"
	platformredis "crypto_dashboard/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx := context.Background()

	// MongoDB: the primary persistence tier. The usecases degrade to the
	// flat-file mirror when it is down, so the server still starts.
	var snapStore mdusecase.SnapshotStore
	var newsStore newsusecase.NewsStore
	if db, err := platformmongo.NewMongoDatabase(ctx); err != nil {
		slog.Warn("MongoDB unavailable, running on the flat-file mirror only")
	} else {
		store := mdadapters.NewSnapshotStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			slog.Warn("failed to ensure snapshot indexes", "error", err)
		}
		snapStore = store

		ns := newsadapters.NewNewsStore(db)
		if err := ns.EnsureIndexes(ctx); err != nil {
			slog.Warn("failed to ensure news indexes", "error", err)
		}
		newsStore = ns
	}

	// Flat-file mirrors under ./data
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	var snapMirror mdusecase.SnapshotMirror
	if m, err := mdadapters.NewSnapshotMirror(dataDir); err != nil {
		slog.Warn("snapshot mirror unavailable", "error", err)
	} else {
		snapMirror = m
	}
	var newsMirror newsusecase.NewsMirror
	if m, err := newsadapters.NewNewsMirror(dataDir); err != nil {
		slog.Warn("news mirror unavailable", "error", err)
	} else {
		newsMirror = m
	}

	// Alpha Vantage client, shared by market data and news
	avCfg := alphavantage.LoadConfig()
	avClient := alphavantage.NewClient(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout))

	// Redis: short-lived summary cache, optional
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable, running without summary cache")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Usecases
	marketUC := mdusecase.NewMarketDataUsecase(avClient, snapStore, snapMirror, 0)
	cachedMarket := cache.NewCachingSummarySource(rdb, 0, marketUC, "summary")
	newsUC := newsusecase.NewNewsUsecase(avClient, newsStore, newsMirror, 0)

	// Gemini narrative generator, optional
	var analyzer analysisusecase.Analyzer
	if g, err := analysisgemini.NewGeminiAnalyzer(ctx); err != nil {
		slog.Warn("Gemini unavailable, analyses will carry no narrative", "error", err)
	} else {
		analyzer = g
	}
	analysisUC := analysisusecase.NewAnalysisUsecase(cachedMarket, newsUC, analyzer)

	// Watchlist on local SQLite
	dbPath := os.Getenv("WATCHLIST_DB")
	if dbPath == "" {
		dbPath = "./crypto.db"
	}
	wdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open watchlist database: %v", err)
	}
	symbolRepo := watchlistadapters.NewSymbolRepository(wdb)
	if err := symbolRepo.Migrate(); err != nil {
		log.Fatalf("failed to migrate watchlist: %v", err)
	}
	if err := symbolRepo.SeedDefaults(ctx); err != nil {
		log.Fatalf("failed to seed watchlist: %v", err)
	}
	symbolUC := watchlistusecase.NewSymbolUsecase(symbolRepo)

	// Handlers
	marketH := mdhandler.NewMarketHandler(cachedMarket)
	newsH := newshandler.NewNewsHandler(newsUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC, nil)
	watchlistH := watchlisthandler.NewSymbolHandler(symbolUC)

	r := router.NewRouter(marketH, newsH, analysisH, watchlistH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
