package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := WaitFor(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for zero duration, got %v", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPollEvaluatesAtLeastOnce(t *testing.T) {
	calls := 0
	ok, err := Poll(context.Background(), 0, 0, func() (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || calls != 1 {
		t.Fatalf("expected a single satisfied call, got ok=%v calls=%d", ok, calls)
	}
}

func TestPollTimesOut(t *testing.T) {
	calls := 0
	ok, err := Poll(context.Background(), time.Millisecond, 5*time.Millisecond, func() (bool, error) {
		calls++
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected condition to stay unsatisfied")
	}
	if calls < 2 {
		t.Fatalf("expected several attempts, got %d", calls)
	}
}

func TestPollStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Poll(context.Background(), time.Millisecond, time.Second, func() (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPollBecomesTrue(t *testing.T) {
	calls := 0
	ok, err := Poll(context.Background(), time.Millisecond, time.Second, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
