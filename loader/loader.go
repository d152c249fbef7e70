package loader

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/resilicache/cache"
	"github.com/jonwraymond/resilicache/observe"
	"github.com/jonwraymond/resilicache/retry"
)

// LoadFunc produces a value for a key, typically by calling a downstream
// dependency. It may have side effects; the loader itself does not.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Loader memoizes the results of unreliable operations: a cache lookup
// first, and on miss a single retried load shared among all concurrent
// callers of the same key. Errors are never cached.
type Loader[V any] struct {
	name   string
	cache  *cache.Cache[string, V]
	exec   *retry.Executor
	group  singleflight.Group
	logger observe.Logger
	tracer observe.LoadTracer
}

// Option configures a Loader.
type Option[V any] func(*Loader[V])

// WithName sets the operation name used in load spans and log fields.
// Default: "loader".
func WithName[V any](name string) Option[V] {
	return func(l *Loader[V]) {
		l.name = name
	}
}

// WithLogger attaches a logger for hit/miss/load events.
func WithLogger[V any](logger observe.Logger) Option[V] {
	return func(l *Loader[V]) {
		l.logger = logger
	}
}

// WithTracer attaches a tracer that spans every GetOrLoad call.
func WithTracer[V any](tracer observe.LoadTracer) Option[V] {
	return func(l *Loader[V]) {
		l.tracer = tracer
	}
}

// New creates a Loader over the given cache and retry executor.
func New[V any](c *cache.Cache[string, V], exec *retry.Executor, opts ...Option[V]) *Loader[V] {
	l := &Loader[V]{
		name:   "loader",
		cache:  c,
		exec:   exec,
		logger: observe.NopLogger(),
		tracer: observe.NewNoopLoadTracer(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GetOrLoad returns the cached value for key, or runs load under the retry
// policy and caches the result. Concurrent misses for the same key share one
// in-flight load instead of each dialing the downstream.
func (l *Loader[V]) GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, error) {
	ctx, span := l.tracer.StartLoad(ctx, l.name, key)

	if v, ok := l.cache.Get(key); ok {
		l.logger.Debug(ctx, "cache hit", observe.Field{Key: "cache.key", Value: key})
		l.tracer.EndLoad(span, true, nil)
		return v, nil
	}

	l.logger.Debug(ctx, "cache miss", observe.Field{Key: "cache.key", Value: key})

	result, err, shared := l.group.Do(key, func() (any, error) {
		// A caller queued behind the flight leader may arrive after the
		// leader already cached the value.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}

		v, err := retry.Do(ctx, l.exec, load)
		if err != nil {
			return nil, err
		}

		l.cache.Set(key, v)
		return v, nil
	})
	if err != nil {
		l.logger.Warn(ctx, "load failed",
			observe.Field{Key: "cache.key", Value: key},
			observe.Field{Key: "error", Value: err.Error()},
		)
		l.tracer.EndLoad(span, false, err)
		var zero V
		return zero, err
	}

	if shared {
		l.logger.Debug(ctx, "load shared with concurrent callers",
			observe.Field{Key: "cache.key", Value: key})
	}

	l.tracer.EndLoad(span, false, nil)
	return result.(V), nil
}

// Invalidate removes a key so the next GetOrLoad reloads it. Returns whether
// an entry was removed.
func (l *Loader[V]) Invalidate(key string) bool {
	return l.cache.Delete(key)
}

// Stats returns the underlying cache statistics snapshot.
func (l *Loader[V]) Stats() cache.Stats {
	return l.cache.Stats()
}
