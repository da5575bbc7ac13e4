// Package adapters provides the persistence implementations for the news
// feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"crypto_dashboard/internal/feature/news/domain/entity"
	"crypto_dashboard/internal/feature/news/usecase"
)

const newsCollection = "news_data"

// newsMongo implements the NewsStore interface against the document store.
// Writes are append-only inserts; reads take the most recent batch per
// symbol.
type newsMongo struct {
	coll *mongo.Collection
}

var _ usecase.NewsStore = (*newsMongo)(nil)

// NewNewsStore creates the Mongo-backed news store.
func NewNewsStore(db *mongo.Database) *newsMongo {
	return &newsMongo{coll: db.Collection(newsCollection)}
}

// EnsureIndexes creates the symbol+timestamp index backing the
// latest-per-symbol query.
func (s *newsMongo) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "symbol", Value: 1}, {Key: "timestamp", Value: -1}},
	}
	_, err := s.coll.Indexes().CreateOne(ctx, model)
	return err
}

// Save appends a news batch, stamping the capture time.
func (s *newsMongo) Save(ctx context.Context, batch entity.NewsBatch) error {
	batch.CapturedAt = time.Now()
	_, err := s.coll.InsertOne(ctx, batch)
	return err
}

// Latest returns the most recent batch for symbol, or (nil, nil) when none
// exists.
func (s *newsMongo) Latest(ctx context.Context, symbol string) (*entity.NewsBatch, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var batch entity.NewsBatch
	err := s.coll.FindOne(ctx, bson.M{"symbol": symbol}, opts).Decode(&batch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
