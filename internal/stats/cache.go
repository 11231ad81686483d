package stats

import (
	"context"
	"time"
)

// Cache is a short-lived snapshot store for the computed summary. A miss is
// reported as apperr.NotFound; any other error means the cache itself is
// unhealthy and the caller should fall through to the store.
type Cache interface {
	Get(context context.Context) (*Stats, error)
	Set(context context.Context, stats *Stats, ttl time.Duration) error
}
