package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/notification"

	"github.com/stretchr/testify/assert"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := notification.RetryPolicy{MaxAttempts: 3, BackoffBase: 200 * time.Millisecond}

	assert.Equal(t, 200*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 400*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 600*time.Millisecond, p.Backoff(3))
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	policy := notification.RetryPolicy{MaxAttempts: 3, BackoffBase: time.Second}

	t.Run("first attempt succeeds", func(t *testing.T) {
		s := &recordingSleeper{}
		res := notification.Deliver(ctx, policy, s.sleep, func(ctx context.Context, attempt int) (bool, error) {
			return true, nil
		})

		assert.Equal(t, notification.Delivered, res.Outcome)
		assert.Equal(t, 1, res.Attempts)
		assert.Empty(t, s.waits)
	})

	t.Run("soft failures exhaust after max attempts with linear waits", func(t *testing.T) {
		s := &recordingSleeper{}
		calls := 0
		res := notification.Deliver(ctx, policy, s.sleep, func(ctx context.Context, attempt int) (bool, error) {
			calls++
			return false, nil
		})

		assert.Equal(t, notification.Exhausted, res.Outcome)
		assert.Equal(t, 3, res.Attempts)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, s.waits)
	})

	t.Run("transport errors are retried", func(t *testing.T) {
		s := &recordingSleeper{}
		res := notification.Deliver(ctx, policy, s.sleep, func(ctx context.Context, attempt int) (bool, error) {
			if attempt < 3 {
				return false, errors.New("connection reset")
			}
			return true, nil
		})

		assert.Equal(t, notification.Delivered, res.Outcome)
		assert.Equal(t, 3, res.Attempts)
		assert.NoError(t, res.LastErr)
	})

	t.Run("last error is kept on exhaustion", func(t *testing.T) {
		res := notification.Deliver(ctx, policy, (&recordingSleeper{}).sleep, func(ctx context.Context, attempt int) (bool, error) {
			return false, errors.New("timeout")
		})

		assert.Equal(t, notification.Exhausted, res.Outcome)
		assert.EqualError(t, res.LastErr, "timeout")
	})

	t.Run("cancelled context stops between attempts", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		calls := 0
		res := notification.Deliver(cctx, policy, notification.SleepContext, func(ctx context.Context, attempt int) (bool, error) {
			calls++
			return false, nil
		})

		assert.Equal(t, notification.Exhausted, res.Outcome)
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, res.LastErr, context.Canceled)
	})

	t.Run("zero max attempts still tries once", func(t *testing.T) {
		calls := 0
		res := notification.Deliver(ctx, notification.RetryPolicy{}, nil, func(ctx context.Context, attempt int) (bool, error) {
			calls++
			return false, nil
		})

		assert.Equal(t, 1, calls)
		assert.Equal(t, notification.Exhausted, res.Outcome)
	})
}
