package loader

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonwraymond/resilicache/cache"
	"github.com/jonwraymond/resilicache/retry"
)

func newBenchLoader(b *testing.B) *Loader[string] {
	b.Helper()

	c, err := cache.New[string, string](cache.Config{MaxSize: 4096})
	if err != nil {
		b.Fatalf("cache.New() error = %v", err)
	}
	exec, err := retry.New(retry.Config{InitialDelay: time.Millisecond})
	if err != nil {
		b.Fatalf("retry.New() error = %v", err)
	}
	return New(c, exec)
}

// BenchmarkGetOrLoad_Hit measures the cached fast path.
func BenchmarkGetOrLoad_Hit(b *testing.B) {
	l := newBenchLoader(b)
	ctx := context.Background()
	load := func(ctx context.Context) (string, error) { return "value", nil }

	_, _ = l.GetOrLoad(ctx, "key", load)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.GetOrLoad(ctx, "key", load)
	}
}

// BenchmarkGetOrLoad_Miss measures miss-load-store on distinct keys.
func BenchmarkGetOrLoad_Miss(b *testing.B) {
	l := newBenchLoader(b)
	ctx := context.Background()
	load := func(ctx context.Context) (string, error) { return "value", nil }

	keys := make([]string, 8192)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.GetOrLoad(ctx, keys[i%len(keys)], load)
	}
}

// BenchmarkDefaultKeyer measures key derivation cost.
func BenchmarkDefaultKeyer(b *testing.B) {
	k := NewDefaultKeyer()
	input := map[string]any{"id": 42, "region": "us-east-1", "flags": []any{"a", "b"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = k.Key("fetch-user", input)
	}
}
