// Package cache provides a generic in-memory read-through cache on top of
// github.com/jellydator/ttlcache/v3.
//
// Entries expire after a fixed TTL. The cache can be bounded to a number of entries
// with least-recently-used eviction, and can extend an entry's lifetime whenever it is
// read. Concurrent misses for the same key are collapsed with singleflight so a slow
// upstream is only asked once.
//
// # Usage
//
//	games := cache.New[int64, *igdb.Game](cache.Options{TTL: 24 * time.Hour, MaxEntries: 10000})
//	game, err := games.GetOrLoad(ctx, id, func(ctx context.Context) (*igdb.Game, error) {
//	    return client.GetGameByID(ctx, id)
//	})
package cache
