// Package retry executes operations against unreliable dependencies under a
// bounded-retry policy with exponential backoff and optional jitter.
//
// The executor is a transparent control-flow wrapper: it defines no error
// kind of its own and surfaces the wrapped operation's last failure unchanged
// once retries are exhausted or the RetryIf predicate rejects retrying.
// Callers that need attempt counts instrument RetryIf or OnRetry.
//
// # Usage
//
//	exec, err := retry.New(retry.Config{
//	    MaxRetries:   3,
//	    InitialDelay: 100 * time.Millisecond,
//	    MaxDelay:     5 * time.Second,
//	    Multiplier:   2.0,
//	    Jitter:       true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	err = exec.Execute(ctx, func(ctx context.Context) error {
//	    return callDownstream(ctx)
//	})
//
// Value-returning operations use the generic form:
//
//	result, err := retry.Do(ctx, exec, func(ctx context.Context) (string, error) {
//	    return fetchValue(ctx)
//	})
//
// The wait between attempts is a timer select, not a blocking sleep, so
// concurrent Execute calls never stall each other. Cancelling the context
// aborts the wait and the call returns ctx.Err() rather than the last
// operation error.
package retry
