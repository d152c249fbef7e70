package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/resilicache/cache"
)

// CacheCheckerConfig configures the cache health checker.
type CacheCheckerConfig struct {
	// MinHitRate is the hit rate below which the cache reports degraded.
	// Value should be between 0 and 1. Default: 0 (hit rate never degrades).
	MinHitRate float64

	// MinSamples is the number of lookups required before MinHitRate
	// applies; a cold cache is not a sick cache. Default: 100.
	MinSamples uint64

	// Capacity, when positive, marks the cache degraded once occupancy
	// reaches it. Default: 0 (occupancy never degrades).
	Capacity int
}

// CacheChecker reports the effectiveness of a cache from its statistics
// snapshot. An in-process cache has no failure mode of its own, so the
// checker only distinguishes healthy from degraded.
type CacheChecker struct {
	name   string
	config CacheCheckerConfig
	stats  func() cache.Stats
}

// NewCacheChecker creates a health checker over a cache statistics source.
func NewCacheChecker(name string, config CacheCheckerConfig, stats func() cache.Stats) *CacheChecker {
	if config.MinSamples == 0 {
		config.MinSamples = 100
	}

	return &CacheChecker{
		name:   name,
		config: config,
		stats:  stats,
	}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return c.name
}

// Check performs the cache health check.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	stats := c.stats()
	details := map[string]any{
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"evictions": stats.Evictions,
		"size":      stats.Size,
		"hit_rate":  stats.HitRate(),
	}

	lookups := stats.Hits + stats.Misses
	if c.config.MinHitRate > 0 && lookups >= c.config.MinSamples {
		if rate := stats.HitRate(); rate < c.config.MinHitRate {
			msg := fmt.Sprintf("hit rate %.2f below floor %.2f", rate, c.config.MinHitRate)
			return Degraded(msg).WithDetails(details)
		}
	}

	if c.config.Capacity > 0 && stats.Size >= c.config.Capacity {
		msg := fmt.Sprintf("cache full: %d of %d entries", stats.Size, c.config.Capacity)
		return Degraded(msg).WithDetails(details)
	}

	return Healthy("cache operating normally").WithDetails(details)
}

// Ensure CacheChecker implements Checker
var _ Checker = (*CacheChecker)(nil)
