// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Package mongodb provides a managed MongoDB client for the Biblio application.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It manages the physical
// connection pool and hands out *mongo.Database handles for the concrete
// repository implementations defined in the domain packages. Lifecycle
// (connect/disconnect) is owned by the caller, never by the repositories.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/marcodallan/biblio/internal/platform/constants"
)

// Opinionated pool settings for the Biblio workload.
const (
	// maxPoolSize is the maximum number of connections in the driver pool.
	maxPoolSize = 25
	// minPoolSize keeps a warm set of connections to avoid cold-start latency.
	minPoolSize = 5
	// maxConnIdleTime closes connections that have been idle too long.
	maxConnIdleTime = 10 * time.Minute
	// connectTimeout is the maximum time allowed to establish a new connection.
	connectTimeout = 5 * time.Second
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// Connect creates and validates a new MongoDB client.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// connection string.
//   - logger: Structured logger for client-level events.
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetConnectTimeout(connectTimeout).
		// Cap every server round trip; runaway queries must not outlive the request.
		SetTimeout(constants.GlobalRequestTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to create client: %w", err)
	}

	// Validate that we can actually reach the server.
	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("mongodb client connected",
		slog.Int("max_pool_size", maxPoolSize),
		slog.Int("min_pool_size", minPoolSize),
	)

	return client, nil
}

// Ping verifies that the MongoDB client is healthy.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	return nil
}

// Disconnect closes the client, logging any error instead of returning it.
// Intended for use in deferred shutdown paths.
func Disconnect(ctx context.Context, client *mongo.Client, logger *slog.Logger) {
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("mongodb disconnect error", slog.Any("error", err))
	}
}
