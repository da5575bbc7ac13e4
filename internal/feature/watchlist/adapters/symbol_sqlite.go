// Package adapters provides the repository implementation for the watchlist
// feature.
package adapters

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"crypto_dashboard/internal/feature/watchlist/domain/entity"
	"crypto_dashboard/internal/feature/watchlist/usecase"
)

// defaultSymbols seeds a fresh watchlist.
var defaultSymbols = []entity.Symbol{
	{Code: "BTC", Name: "Bitcoin", IsActive: true, SortKey: 1},
	{Code: "ETH", Name: "Ethereum", IsActive: true, SortKey: 2},
	{Code: "BNB", Name: "BNB", IsActive: true, SortKey: 3},
	{Code: "XRP", Name: "XRP", IsActive: true, SortKey: 4},
	{Code: "ADA", Name: "Cardano", IsActive: true, SortKey: 5},
}

// symbolSQLite is the SQLite implementation of the SymbolRepository
// interface.
type symbolSQLite struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolSQLite)(nil)

// NewSymbolRepository creates a new symbolSQLite repository on the given DB
// connection.
func NewSymbolRepository(db *gorm.DB) *symbolSQLite {
	return &symbolSQLite{db: db}
}

// Migrate creates the symbols table.
func (r *symbolSQLite) Migrate() error {
	return r.db.AutoMigrate(&entity.Symbol{})
}

// SeedDefaults inserts the default watchlist when the table is empty.
func (r *symbolSQLite) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// Copy so gorm's ID backfill does not mutate the package-level defaults.
	seed := make([]entity.Symbol, len(defaultSymbols))
	copy(seed, defaultSymbols)
	if err := r.db.WithContext(ctx).Create(&seed).Error; err != nil {
		return err
	}
	slog.Info("seeded default watchlist", "count", len(seed))
	return nil
}

// ListActive returns all active symbols ordered by sort_key.
func (r *symbolSQLite) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes returns only the codes of the active symbols ordered by
// sort_key.
func (r *symbolSQLite) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
