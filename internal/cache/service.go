// Package cache is the process-wide cache service. Every cache in the
// system lives here: construct one Service, inject it where it is needed,
// and throw it away for test isolation. Nothing is ever persisted.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTL is a timestamped key/value cache. Entries are valid until their TTL
// elapses; there is no size-bounded eviction, these caches stay small for
// the lifetime of a process.
type TTL struct {
	cache *gocache.Cache
}

// NewTTL creates a cache whose entries expire after ttl. A non-positive
// ttl means entries never expire (manual invalidation only).
func NewTTL(ttl time.Duration) *TTL {
	exp := ttl
	if ttl <= 0 {
		exp = gocache.NoExpiration
	}
	return &TTL{cache: gocache.New(exp, 2*time.Minute)}
}

func (t *TTL) Get(key string) (any, bool) {
	return t.cache.Get(key)
}

func (t *TTL) Set(key string, value any) {
	t.cache.SetDefault(key, value)
}

func (t *TTL) Delete(key string) {
	t.cache.Delete(key)
}

func (t *TTL) Flush() {
	t.cache.Flush()
}

// Service groups the named caches used across the resolution layer.
type Service struct {
	// WorldState holds one snapshot per platform.
	WorldState *TTL
	// Items holds resolved item names for the lifetime of the process.
	Items *TTL
	// Rotations holds resolved arbitration rotations.
	Rotations *TTL
}

// Options sizes the TTL windows of the individual caches.
type Options struct {
	WorldStateTTL time.Duration
	RotationTTL   time.Duration
}

// NewService builds a fresh cache service, lazily populated on first use.
func NewService(opts Options) *Service {
	if opts.WorldStateTTL <= 0 {
		opts.WorldStateTTL = time.Minute
	}
	if opts.RotationTTL <= 0 {
		opts.RotationTTL = 5 * time.Minute
	}
	return &Service{
		WorldState: NewTTL(opts.WorldStateTTL),
		Items:      NewTTL(0),
		Rotations:  NewTTL(opts.RotationTTL),
	}
}
