package observe_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonwraymond/resilicache/observe"
)

func ExampleNewObserver() {
	ctx := context.Background()

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "resilicache-demo",
		Version:     "0.1.0",
		// Subsystems default to disabled; enable per environment.
	})
	if err != nil {
		fmt.Println("setup failed:", err)
		return
	}
	defer obs.Shutdown(ctx)

	fmt.Println("observer ready")
	// Output:
	// observer ready
}

func ExampleNewLoggerWithWriter() {
	logger := observe.NewLoggerWithWriter("debug", os.Stdout)

	scoped := logger.With(observe.Field{Key: "cache.name", Value: "results"})
	_ = scoped // Every entry from scoped carries cache.name=results.
}

func ExampleRetryMetrics_Hook() {
	ctx := context.Background()

	obs, _ := observe.NewObserver(ctx, observe.Config{ServiceName: "demo"})
	defer obs.Shutdown(ctx)

	m, err := observe.NewRetryMetrics(obs.Meter(), "downstream")
	if err != nil {
		fmt.Println("metrics failed:", err)
		return
	}

	// Wire the hook into retry.Config.OnRetry.
	hook := m.Hook()
	hook(0, nil, 100*time.Millisecond)

	fmt.Println("retry recorded")
	// Output:
	// retry recorded
}
