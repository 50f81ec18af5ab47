package retry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	sleeper := &recordingSleeper{}
	exec := NewExecutor(Policy{MaxRetries: 3, Delay: time.Second}, zerolog.Nop(), WithSleeper(sleeper.sleep))

	calls := 0
	got, err := Do(context.Background(), exec, "list", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.waits)
}

func TestDo_RecoversAfterTransientFailure(t *testing.T) {
	sleeper := &recordingSleeper{}
	exec := NewExecutor(Policy{MaxRetries: 3, Delay: 5 * time.Second}, zerolog.Nop(), WithSleeper(sleeper.sleep))

	calls := 0
	got, err := Do(context.Background(), exec, "size", func(ctx context.Context) (int64, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("sharing violation")
		}
		return 1024, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1024), got)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeper.waits)
}

func TestDo_ExhaustionSurfacesLastError(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	sleeper := &recordingSleeper{}
	exec := NewExecutor(Policy{MaxRetries: 2, Delay: time.Second}, logger, WithSleeper(sleeper.sleep))

	calls := 0
	_, err := Do(context.Background(), exec, "list", func(ctx context.Context) ([]string, error) {
		calls++
		return nil, fmt.Errorf("failure %d", calls)
	})

	require.Error(t, err)
	assert.EqualError(t, err, "failure 3")
	assert.Equal(t, 3, calls)
	assert.Len(t, sleeper.waits, 2, "no wait after the final attempt")
	assert.Equal(t, 3, strings.Count(logs.String(), "Retry attempt failed"))
	assert.Contains(t, logs.String(), `"attempt":3`)
}

func TestDo_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	sleeper := &recordingSleeper{}
	exec := NewExecutor(Policy{MaxRetries: 0, Delay: time.Second}, zerolog.Nop(), WithSleeper(sleeper.sleep))

	calls := 0
	err := exec.Run(context.Background(), "noop", func(ctx context.Context) error {
		calls++
		return errors.New("nope")
	})

	assert.EqualError(t, err, "nope")
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.waits)
}

func TestDo_CancelledBeforeAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := NewExecutor(Policy{MaxRetries: 3}, zerolog.Nop())
	calls := 0
	err := exec.Run(ctx, "list", func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDo_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exec := NewExecutor(Policy{MaxRetries: 5, Delay: time.Hour}, zerolog.Nop())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- exec.Run(ctx, "list", func(ctx context.Context) error {
			calls++
			return errors.New("transient")
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not observe cancellation")
	}
}

func TestNewExecutor_ClampsNegativePolicy(t *testing.T) {
	exec := NewExecutor(Policy{MaxRetries: -1, Delay: -time.Second}, zerolog.Nop())
	assert.Equal(t, Policy{}, exec.Policy())
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
	assert.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
