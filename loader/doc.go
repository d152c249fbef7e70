// Package loader composes the cache and retry packages into the canonical
// read-through flow: check the cache first; on miss, run the expensive or
// unreliable load under the retry policy; on success, cache the result.
//
// Concurrent misses for the same key are merged into a single in-flight load
// via singleflight, so a burst of callers after an expiry produces one
// downstream call instead of a stampede. Failed loads are never cached.
//
// Keys are strings; the Keyer derives deterministic keys from an operation
// name and arbitrary JSON-encodable input.
package loader
