// internal/app/system/indexes/indexes.go

// Package indexes declares the MongoDB indexes the stores rely on and
// creates them at startup. Index definitions live here, next to each other,
// so the full query surface of the database is visible in one place.
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// all lists every index by collection. Discipline documents live in the
// courses_disciplines collection scoped by parent_id, so every discipline
// query filters on that field first.
var all = []collectionIndexes{
	{
		collection: "users",
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name_ci", Value: 1}}},
		},
	},
	{
		collection: "courses",
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "name_ci", Value: 1}}},
		},
	},
	{
		collection: "courses_disciplines",
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "parent_id", Value: 1}}},
			{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "name_ci", Value: 1}}},
		},
	},
	{
		collection: "audit_events",
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	},
}

// EnsureAll creates every declared index. Creation is idempotent; Mongo
// ignores indexes that already exist with the same definition.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, ci := range all {
		if _, err := db.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models); err != nil {
			return fmt.Errorf("indexes for %s: %w", ci.collection, err)
		}
		logger.Debug("indexes ensured",
			zap.String("collection", ci.collection), zap.Int("count", len(ci.models)))
	}
	return nil
}
