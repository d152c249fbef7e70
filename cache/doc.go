// Package cache provides a bounded, time-aware in-memory cache for
// memoizing results of expensive or unreliable operations.
//
// The cache holds at most MaxSize entries, evicting the least-recently-used
// entry when an insert would exceed capacity. An optional TTL expires
// entries by age. Expiry is lazy: it is enforced by the read that discovers
// it rather than a background sweeper, trading strict memory bounds for
// simplicity and predictable read latency. An expired entry is never
// returned. Hit, miss and eviction counters describe the cache's lifetime
// behavior and survive Clear.
//
// The cache is strictly local to one process: no invalidation broadcast, no
// cross-instance coordination.
package cache
