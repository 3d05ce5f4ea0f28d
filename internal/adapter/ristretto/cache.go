// Package ristretto implements the cache port with an in-process
// ristretto cache. The service uses it for small, frequently re-read
// snapshots such as the manager roster the escalation sweep fans out
// to, so the cache is sized for a handful of short JSON blobs rather
// than a large byte budget.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/garzadist/fieldops/internal/config"
)

// expectedEntries is generous for this workload; ristretto wants the
// counter space sized ahead of time.
const expectedEntries = 1024

// Cache is the process-local cache backing roster lookups between
// sweep ticks.
type Cache struct {
	rc         *ristretto.Cache[string, []byte]
	defaultTTL time.Duration
}

// New builds a cache from config. Entries written with a non-positive
// TTL fall back to cfg.ManagerTTL so a miswired caller cannot pin a
// stale roster forever.
func New(cfg config.Cache) (*Cache, error) {
	maxCost := cfg.MaxSizeMB << 20
	rc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: expectedEntries * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{rc: rc, defaultTTL: cfg.ManagerTTL}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := c.rc.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key. A non-positive ttl uses the configured
// default.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.rc.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Delete evicts key. Callers invalidate the manager roster here when
// user roles change.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.rc.Del(key)
	return nil
}

// Close releases the cache's internal goroutines.
func (c *Cache) Close() {
	c.rc.Close()
}
