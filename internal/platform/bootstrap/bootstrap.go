// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Package bootstrap provisions the document-store schema: collections and
// the indexes that back search, uniqueness, and overdue scans.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It enforces schema
// idempotency during application startup, ensuring the store is always in
// the correct state before traffic is served. Index creation in MongoDB is
// itself idempotent, so running this on every boot is safe.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcodallan/biblio/internal/platform/schema"
)

// EnsureSchema creates all collections and indexes used by the application.
//
// # Parameters
//   - ctx: Context bounding the whole provisioning run.
//   - db: Handle to the target database.
//   - logger: Structured logger for provisioning events.
func EnsureSchema(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	if err := ensureCollections(ctx, db, logger); err != nil {
		return err
	}

	if err := ensureIndexes(ctx, db, logger); err != nil {
		return err
	}

	logger.Info("schema_provisioned")
	return nil
}

// ensureCollections explicitly creates every collection that is missing.
func ensureCollections(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("bootstrap: failed to list collections: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	collections := []string{
		schema.RefAuthor.Collection,
		schema.RefCategory.Collection,
		schema.RefBook.Collection,
		schema.RefMember.Collection,
		schema.RefLoan.Collection,
		schema.RefReservation.Collection,
	}

	for _, name := range collections {
		if present[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("bootstrap: failed to create collection %q: %w", name, err)
		}
		logger.Info("collection_created", slog.String("collection", name))
	}

	return nil
}

// ensureIndexes declares every index the query paths rely on.
func ensureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	type indexSet struct {
		collection string
		models     []mongo.IndexModel
	}

	sets := []indexSet{
		{
			collection: schema.RefAuthor.Collection,
			models: []mongo.IndexModel{
				{Keys: bson.D{
					{Key: schema.RefAuthor.FamilyName, Value: 1},
					{Key: schema.RefAuthor.GivenName, Value: 1},
				}},
			},
		},
		{
			collection: schema.RefBook.Collection,
			models: []mongo.IndexModel{
				// Text index backing the title search.
				{Keys: bson.D{{Key: schema.RefBook.Title, Value: "text"}}},
				// ISBN is unique when present; sparse so books without one are allowed.
				{
					Keys:    bson.D{{Key: schema.RefBook.ISBN, Value: 1}},
					Options: options.Index().SetUnique(true).SetSparse(true),
				},
				// Supports the category + availability search path.
				{Keys: bson.D{
					{Key: schema.RefBook.CategoryID, Value: 1},
					{Key: schema.RefBook.Available, Value: 1},
				}},
			},
		},
		{
			collection: schema.RefMember.Collection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: schema.RefMember.Email, Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: schema.RefLoan.Collection,
			models: []mongo.IndexModel{
				// Supports per-member loan state lookups.
				{Keys: bson.D{
					{Key: schema.RefLoan.MemberID, Value: 1},
					{Key: schema.RefLoan.State, Value: 1},
				}},
				// Supports overdue scans.
				{Keys: bson.D{{Key: schema.RefLoan.DueAt, Value: 1}}},
			},
		},
		{
			collection: schema.RefReservation.Collection,
			models: []mongo.IndexModel{
				{Keys: bson.D{
					{Key: schema.RefReservation.MemberID, Value: 1},
					{Key: schema.RefReservation.State, Value: 1},
				}},
			},
		},
	}

	for _, set := range sets {
		names, err := db.Collection(set.collection).Indexes().CreateMany(ctx, set.models)
		if err != nil {
			return fmt.Errorf("bootstrap: failed to create indexes on %q: %w", set.collection, err)
		}
		logger.Info("indexes_ensured",
			slog.String("collection", set.collection),
			slog.Int("count", len(names)),
		)
	}

	return nil
}
