package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Options configures a Cache.
type Options struct {
	// TTL is how long an entry lives. Zero disables caching entirely.
	TTL time.Duration
	// MaxEntries bounds the cache with least-recently-used eviction. Zero means unbounded.
	MaxEntries int
	// RefreshOnAccess extends an entry's lifetime by TTL every time it is read.
	RefreshOnAccess bool
}

// Cache is a read-through TTL cache with optional LRU bound. Loads for the same key
// are collapsed into one call. Zero values (nil, empty slices) are cached like any
// other value, so negative lookups are not repeated.
type Cache[K comparable, V any] struct {
	opts  Options
	items *ttlcache.Cache[K, V]
	sf    singleflight.Group
}

// New creates an empty cache.
func New[K comparable, V any](opts Options) *Cache[K, V] {
	cacheOpts := []ttlcache.Option[K, V]{ttlcache.WithTTL[K, V](opts.TTL)}
	if opts.MaxEntries > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[K, V](uint64(opts.MaxEntries)))
	}
	if !opts.RefreshOnAccess {
		cacheOpts = append(cacheOpts, ttlcache.WithDisableTouchOnHit[K, V]())
	}
	return &Cache[K, V]{
		opts:  opts,
		items: ttlcache.New[K, V](cacheOpts...),
	}
}

// Get returns the cached value if present and fresh.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	if c.opts.TTL <= 0 {
		return
	}
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

// GetOrLoad returns the cached value or calls load once for all concurrent callers of
// the same key and caches its result. Errors are not cached.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(fmt.Sprint(key), func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := result.(V)
	return v, nil
}

// Delete removes key.
func (c *Cache[K, V]) Delete(key K) {
	c.items.Delete(key)
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.items.DeleteAll()
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.items.DeleteExpired()
	return c.items.Len()
}
