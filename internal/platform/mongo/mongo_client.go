// Package mongo wires the connection to the document store.
package mongo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultDatabase = "crypto_dashboard"

// NewMongoDatabase connects to the document store and verifies the
// connection with a ping. MONGO_URI and MONGO_DB override the localhost
// defaults.
func NewMongoDatabase(ctx context.Context) (*mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = defaultDatabase
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		slog.Error("MongoDB connection failed", "uri", uri, "error", err)
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		slog.Error("MongoDB ping failed", "uri", uri, "error", err)
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("MongoDB connection successful", "uri", uri, "database", name)
	return client.Database(name), nil
}
