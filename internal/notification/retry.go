package notification

import (
	"context"
	"time"
)

type Outcome int

const (
	Exhausted Outcome = iota
	Delivered
)

func (o Outcome) String() string {
	if o == Delivered {
		return "delivered"
	}
	return "exhausted"
}

type RetryPolicy struct {
	MaxAttempts int
	BackoffBase time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BackoffBase: time.Second}
}

// Backoff is the wait after the given failed attempt (1-based). It grows
// linearly: base, 2*base, 3*base...
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return time.Duration(attempt) * p.BackoffBase
}

// AttemptFunc performs one delivery attempt. (false, nil) is a soft failure.
type AttemptFunc func(ctx context.Context, attempt int) (bool, error)

type Sleeper func(ctx context.Context, d time.Duration) error

type Result struct {
	Outcome  Outcome
	Attempts int
	LastErr  error
}

// Deliver runs attempt until it reports success or the policy runs out.
// Soft failures and errors are both retried. A cancelled context stops the
// loop early and counts as exhausted.
func Deliver(ctx context.Context, policy RetryPolicy, sleep Sleeper, attempt AttemptFunc) Result {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if sleep == nil {
		sleep = SleepContext
	}

	var res Result
	for n := 1; n <= maxAttempts; n++ {
		res.Attempts = n

		ok, err := attempt(ctx, n)
		if err == nil && ok {
			res.Outcome = Delivered
			res.LastErr = nil
			return res
		}
		res.LastErr = err

		if n == maxAttempts {
			break
		}
		if err := sleep(ctx, policy.Backoff(n)); err != nil {
			res.LastErr = err
			break
		}
	}

	res.Outcome = Exhausted
	return res
}

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
