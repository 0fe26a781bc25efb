package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor suspends the caller for d or until ctx is done.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Poll evaluates cond until it reports true, the timeout elapses or ctx is
// done. cond is always evaluated at least once, even with a zero timeout.
// It returns whether cond was satisfied.
func Poll(ctx context.Context, interval, timeout time.Duration, cond func() (bool, error)) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil || ok {
			return ok, err
		}

		if !time.Now().Before(deadline) {
			return false, nil
		}

		step := interval
		if remaining := time.Until(deadline); step <= 0 || step > remaining {
			step = remaining
		}

		if err := WaitFor(ctx, step); err != nil {
			return false, err
		}
	}
}
