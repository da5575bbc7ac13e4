// Package adapters provides the persistence implementations for the
// marketdata feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
	"crypto_dashboard/internal/feature/marketdata/usecase"
)

const (
	rawCollection       = "historical_data"
	processedCollection = "processed_data"
)

// snapshotMongo implements the SnapshotStore interface against the document
// store. Writes are append-only inserts; reads take the most recent record
// per symbol.
type snapshotMongo struct {
	raw       *mongo.Collection
	processed *mongo.Collection
}

var _ usecase.SnapshotStore = (*snapshotMongo)(nil)

// NewSnapshotStore creates the Mongo-backed snapshot store on the raw and
// processed collections.
func NewSnapshotStore(db *mongo.Database) *snapshotMongo {
	return &snapshotMongo{
		raw:       db.Collection(rawCollection),
		processed: db.Collection(processedCollection),
	}
}

// EnsureIndexes creates the symbol+timestamp indexes backing the
// latest-per-symbol queries.
func (s *snapshotMongo) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "symbol", Value: 1}, {Key: "timestamp", Value: -1}},
	}
	if _, err := s.raw.Indexes().CreateOne(ctx, model); err != nil {
		return err
	}
	_, err := s.processed.Indexes().CreateOne(ctx, model)
	return err
}

// SaveRaw appends a raw snapshot, stamping the capture time.
func (s *snapshotMongo) SaveRaw(ctx context.Context, snap entity.Snapshot) error {
	return insertSnapshot(ctx, s.raw, snap)
}

// SaveProcessed appends a processed snapshot, stamping the capture time.
func (s *snapshotMongo) SaveProcessed(ctx context.Context, snap entity.Snapshot) error {
	return insertSnapshot(ctx, s.processed, snap)
}

// LatestRaw returns the most recent raw snapshot for symbol, or (nil, nil)
// when none exists.
func (s *snapshotMongo) LatestRaw(ctx context.Context, symbol string) (*entity.Snapshot, error) {
	return latestSnapshot(ctx, s.raw, symbol)
}

// LatestProcessed returns the most recent processed snapshot for symbol, or
// (nil, nil) when none exists.
func (s *snapshotMongo) LatestProcessed(ctx context.Context, symbol string) (*entity.Snapshot, error) {
	return latestSnapshot(ctx, s.processed, symbol)
}

func insertSnapshot(ctx context.Context, coll *mongo.Collection, snap entity.Snapshot) error {
	snap.CapturedAt = time.Now()
	_, err := coll.InsertOne(ctx, snap)
	return err
}

func latestSnapshot(ctx context.Context, coll *mongo.Collection, symbol string) (*entity.Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var snap entity.Snapshot
	err := coll.FindOne(ctx, bson.M{"symbol": symbol}, opts).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
