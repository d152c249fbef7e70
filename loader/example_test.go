package loader_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/resilicache/cache"
	"github.com/jonwraymond/resilicache/loader"
	"github.com/jonwraymond/resilicache/retry"
)

func ExampleLoader_GetOrLoad() {
	c, _ := cache.New[string, string](cache.Config{
		MaxSize: 100,
		TTL:     time.Minute,
	})
	exec, _ := retry.New(retry.Config{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	})

	l := loader.New(c, exec)
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient failure")
		}
		return "profile-data", nil
	}

	// First call misses, retries the flaky fetch, then caches.
	v, _ := l.GetOrLoad(ctx, "user:42", fetch)
	fmt.Println("loaded:", v)

	// Second call never touches the downstream.
	v, _ = l.GetOrLoad(ctx, "user:42", fetch)
	fmt.Println("cached:", v)
	fmt.Println("downstream calls:", calls)
	// Output:
	// loaded: profile-data
	// cached: profile-data
	// downstream calls: 2
}

func ExampleDefaultKeyer() {
	k := loader.NewDefaultKeyer()

	// Equal inputs derive equal keys regardless of map iteration order.
	a, _ := k.Key("fetch-user", map[string]any{"id": 42, "region": "us-east-1"})
	b, _ := k.Key("fetch-user", map[string]any{"region": "us-east-1", "id": 42})

	fmt.Println("deterministic:", a == b)
	fmt.Println("prefix:", a[:16])
	// Output:
	// deterministic: true
	// prefix: load:fetch-user:
}
