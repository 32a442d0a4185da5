package subscription_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/subscription"
)

func TestSweeperRunsImmediatelyAndOnTicks(t *testing.T) {
	calls := make(chan time.Time, 16)
	sweeper := subscription.NewSweeper(20*time.Millisecond, func(ctx context.Context, now time.Time) (int64, error) {
		calls <- now
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d never ran", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestSweeperKeepsGoingAfterFailure(t *testing.T) {
	var count atomic.Int64
	ok := make(chan struct{}, 1)
	sweeper := subscription.NewSweeper(10*time.Millisecond, func(ctx context.Context, now time.Time) (int64, error) {
		if count.Add(1) == 1 {
			return 0, errors.New("storage unavailable")
		}
		select {
		case ok <- struct{}{}:
		default:
		}
		return 0, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	select {
	case <-ok:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper stopped after a failed sweep")
	}
	require.GreaterOrEqual(t, count.Load(), int64(2))
}
