package orchestration

import (
	"context"
	"fmt"
)

type workerRun func(context.Context) error

func panicSafeNamedWorker(name string, run func(context.Context) error) workerRun {
	return func(ctx context.Context) (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%s worker panicked: %v", name, recovered)
			}
		}()

		if err = run(ctx); err != nil {
			return fmt.Errorf("%s worker failed: %w", name, err)
		}

		return nil
	}
}

// callUntilDone runs call on its own goroutine and stops waiting for it once
// ctx is done, so a client that ignores its context cannot hold the turn.
func callUntilDone[T any](ctx context.Context, name string, call func(context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	results := make(chan result, 1)
	go func() {
		var r result
		r.err = panicSafeNamedWorker(name, func(ctx context.Context) error {
			var err error
			r.value, err = call(ctx)
			return err
		})(ctx)
		results <- r
	}()

	select {
	case r := <-results:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%s worker abandoned: %w", name, context.Cause(ctx))
	}
}
