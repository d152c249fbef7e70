package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RetryMetrics records retry behavior: how often operations are retried and
// how long the backoff waits are.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording must not panic.
type RetryMetrics struct {
	retryCount metric.Int64Counter
	delayHist  metric.Float64Histogram
	name       string
}

// NewRetryMetrics creates retry instruments on the given meter. The name
// labels every data point, distinguishing executors that share a meter.
func NewRetryMetrics(meter metric.Meter, name string) (*RetryMetrics, error) {
	retryCount, err := meter.Int64Counter(
		"retry.attempts.total",
		metric.WithDescription("Total number of failed attempts that were retried"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	delayHist, err := meter.Float64Histogram(
		"retry.backoff.delay_ms",
		metric.WithDescription("Backoff delay before each retry in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &RetryMetrics{
		retryCount: retryCount,
		delayHist:  delayHist,
		name:       name,
	}, nil
}

// Record records one retried failure and its backoff delay.
func (m *RetryMetrics) Record(ctx context.Context, attempt int, delay time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("retry.executor", m.name),
		attribute.Int("retry.attempt", attempt),
	)

	m.retryCount.Add(ctx, 1, opt)
	m.delayHist.Record(ctx, float64(delay.Milliseconds()), opt)
}

// Hook adapts the metrics into a retry OnRetry callback.
func (m *RetryMetrics) Hook() func(attempt int, err error, delay time.Duration) {
	return func(attempt int, _ error, delay time.Duration) {
		m.Record(context.Background(), attempt, delay)
	}
}

// CacheSnapshot is a point-in-time view of cache accounting, observed by
// the registered callback gauges. HitRate is hits/(hits+misses), 0 when no
// lookups were recorded.
type CacheSnapshot struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	HitRate   float64
}

// SnapshotFunc returns the current cache statistics. It is called from the
// metrics collection path and must be cheap and safe for concurrent use.
type SnapshotFunc func() CacheSnapshot

// RegisterCacheMetrics registers observable instruments that report cache
// statistics on every metrics collection. The returned registration
// unregisters the callback when closed.
func RegisterCacheMetrics(meter metric.Meter, cacheName string, snapshot SnapshotFunc) (metric.Registration, error) {
	hits, err := meter.Int64ObservableCounter(
		"cache.hits.total",
		metric.WithDescription("Total number of cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64ObservableCounter(
		"cache.misses.total",
		metric.WithDescription("Total number of cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64ObservableCounter(
		"cache.evictions.total",
		metric.WithDescription("Total number of LRU evictions"),
		metric.WithUnit("{eviction}"),
	)
	if err != nil {
		return nil, err
	}

	entries, err := meter.Int64ObservableGauge(
		"cache.entries",
		metric.WithDescription("Current number of live cache entries"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	hitRate, err := meter.Float64ObservableGauge(
		"cache.hit_rate",
		metric.WithDescription("Lifetime cache hit rate"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			s := snapshot()
			opt := metric.WithAttributes(attribute.String("cache.name", cacheName))

			o.ObserveInt64(hits, int64(s.Hits), opt)
			o.ObserveInt64(misses, int64(s.Misses), opt)
			o.ObserveInt64(evictions, int64(s.Evictions), opt)
			o.ObserveInt64(entries, int64(s.Size), opt)
			o.ObserveFloat64(hitRate, s.HitRate, opt)
			return nil
		},
		hits, misses, evictions, entries, hitRate,
	)
}
