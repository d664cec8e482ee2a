package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-courses/internal/model"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collections lists every collection the service owns.
var Collections = []string{model.CourseCollection}

// EnsureCollections creates the owned collections that do not exist yet.
// Existing collections and their documents are left untouched.
func EnsureCollections(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, collection := range Collections {
		if present[collection] {
			logger.Debug().Str("collection", collection).Msg("collection exists")
			continue
		}

		if err := db.CreateCollection(ctx, collection); err != nil {
			return fmt.Errorf("creating %s collection: %w", collection, err)
		}
		logger.Info().Str("collection", collection).Msg("created collection")
	}

	return nil
}
