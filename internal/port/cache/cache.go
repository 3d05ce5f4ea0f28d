// Package cache defines the port for the process-local cache. The
// sweep uses it to hold the manager roster between ticks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-value cache with per-entry TTLs.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
