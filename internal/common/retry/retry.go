package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Policy bounds a retried operation: MaxRetries+1 attempts in total with a
// fixed Delay between consecutive attempts.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Executor runs operations under a retry policy.
type Executor struct {
	policy Policy
	sleep  SleepFunc
	logger zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithSleeper replaces the inter-attempt wait, mainly for tests.
func WithSleeper(sleep SleepFunc) Option {
	return func(e *Executor) {
		e.sleep = sleep
	}
}

// NewExecutor creates a new retry executor
func NewExecutor(policy Policy, logger zerolog.Logger, opts ...Option) *Executor {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.Delay < 0 {
		policy.Delay = 0
	}

	e := &Executor{
		policy: policy,
		sleep:  Sleep,
		logger: logger.With().Str("component", "RetryExecutor").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the executor's policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Do runs op until it succeeds or the policy is exhausted, returning the last
// error on exhaustion. Cancellation of ctx before an attempt or during a wait
// returns ctx.Err() immediately.
func Do[T any](ctx context.Context, e *Executor, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := e.policy.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		e.logger.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Msg("Retry attempt failed")

		if attempt == attempts-1 {
			break
		}
		if err := e.sleep(ctx, e.policy.Delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

// Run is Do for operations without a result.
func (e *Executor) Run(ctx context.Context, operation string, op func(ctx context.Context) error) error {
	_, err := Do(ctx, e, operation, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Sleep waits for d, returning early with ctx.Err() when ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
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
