// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/platform/constants"
)

// RedisCache implements Cache on a shared Redis instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed statistics cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get retrieves the cached summary snapshot.

Description: Returns apperr.NotFound if no snapshot is cached or the TTL expired.

Parameters:
  - context: context.Context

Returns:
  - *Stats: The cached summary
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisCache) Get(context context.Context) (*Stats, error) {

	// Get the snapshot from Redis
	payload, err := cache.client.Get(context, constants.RedisKeyStatsSummary).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Statistics snapshot")
		}
		return nil, fmt.Errorf("redis_stats_get_failed: %w", err)
	}

	// Decode the snapshot
	stats := &Stats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("redis_stats_decode_failed: %w", err)
	}

	// Return the snapshot
	return stats, nil
}

/*
Set stores the summary snapshot with a TTL.

Parameters:
  - context: context.Context
  - stats: *Stats
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (cache *RedisCache) Set(context context.Context, stats *Stats, ttl time.Duration) error {

	// Encode the snapshot
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis_stats_encode_failed: %w", err)
	}

	// Set the snapshot with TTL
	if err := cache.client.Set(context, constants.RedisKeyStatsSummary, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_stats_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}
