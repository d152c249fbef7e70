package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Config configures the retry behavior. All fields are optional; zero values
// take the documented defaults. Invalid values (negative counts or durations,
// a multiplier below 1) are rejected by New.
type Config struct {
	// MaxRetries is the number of retries after the first attempt,
	// so total attempts = MaxRetries + 1. Zero means the operation
	// runs exactly once.
	MaxRetries int

	// InitialDelay is the delay before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the exponential backoff factor applied per attempt.
	// Must be >= 1. Default: 2.0
	Multiplier float64

	// Jitter scales each delay by a uniform random factor in [0.5, 1.0)
	// to avoid synchronized retry storms across independent callers.
	// Default: false
	Jitter bool

	// RetryIf determines if an error should trigger a retry.
	// Default: all non-nil errors trigger retry.
	RetryIf func(err error) bool

	// OnRetry is called before each retry wait with the 0-indexed attempt
	// that just failed, its error, and the computed delay.
	OnRetry func(attempt int, err error, delay time.Duration)

	// Rand is the source of jitter randomness, returning values in [0, 1).
	// Inject a seeded source in tests for deterministic delays.
	// Default: math/rand/v2 global source.
	Rand func() float64
}

// Executor runs operations under a bounded-retry policy with exponential
// backoff. The executor holds no state across calls; a single Executor is
// safe for concurrent use by multiple goroutines.
type Executor struct {
	config Config
}

// New creates an Executor, applying defaults and failing fast on
// configuration that cannot describe a valid retry policy.
func New(config Config) (*Executor, error) {
	if config.MaxRetries < 0 {
		return nil, fmt.Errorf("retry: MaxRetries must be non-negative, got %d", config.MaxRetries)
	}
	if config.InitialDelay < 0 {
		return nil, fmt.Errorf("retry: InitialDelay must be positive, got %v", config.InitialDelay)
	}
	if config.MaxDelay < 0 {
		return nil, fmt.Errorf("retry: MaxDelay must be positive, got %v", config.MaxDelay)
	}
	if config.Multiplier != 0 && config.Multiplier < 1 {
		return nil, fmt.Errorf("retry: Multiplier must be >= 1, got %f", config.Multiplier)
	}

	// Apply defaults
	if config.InitialDelay == 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.Multiplier == 0 {
		config.Multiplier = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	if config.Rand == nil {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		config.Rand = rand.Float64
	}

	return &Executor{config: config}, nil
}

// Execute runs the operation, retrying failures under the configured policy.
//
// Attempts are numbered 0..MaxRetries. On success the result is returned
// immediately. On failure at attempt i, the executor fails immediately when
// i == MaxRetries or RetryIf rejects the error, surfacing the operation's
// last error unchanged. Otherwise it waits for the backoff delay and runs
// attempt i+1. Cancelling the context aborts the wait and returns ctx.Err().
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		err := op(ctx)

		if err == nil {
			return nil
		}

		lastErr = err

		if !e.config.RetryIf(err) {
			return err
		}

		if attempt == e.config.MaxRetries {
			break
		}

		delay := e.delayFor(attempt)

		if e.config.OnRetry != nil {
			e.config.OnRetry(attempt, err, delay)
		}

		if err := e.wait(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// Do runs a value-returning operation through the executor. On terminal
// failure the zero value of T is returned alongside the last error.
func Do[T any](ctx context.Context, e *Executor, op func(context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// delayFor computes the backoff delay after a failure at the 0-indexed
// attempt: min(InitialDelay * Multiplier^attempt, MaxDelay), then scaled
// into [0.5, 1.0) of itself when jitter is enabled.
func (e *Executor) delayFor(attempt int) time.Duration {
	backoff := float64(e.config.InitialDelay) * math.Pow(e.config.Multiplier, float64(attempt))

	delay := time.Duration(backoff)
	if backoff >= float64(e.config.MaxDelay) {
		delay = e.config.MaxDelay
	}

	if e.config.Jitter && delay > 0 {
		factor := 0.5 + e.config.Rand()/2
		delay = time.Duration(float64(delay) * factor)
	}

	return delay
}

// wait suspends until the delay elapses or the context is cancelled. The
// timer wait cooperates with the scheduler; it never blocks other goroutines.
func (e *Executor) wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Config returns the executor's configuration after defaults were applied.
func (e *Executor) Config() Config {
	return e.config
}
