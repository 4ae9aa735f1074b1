package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCappedExponential(t *testing.T) {
	backoff := CappedExponential(time.Second, 30*time.Second)

	var prev time.Duration
	for attempt := 0; attempt < 10; attempt++ {
		d := backoff(attempt)
		assert.GreaterOrEqual(t, d, prev, "delays must be non-decreasing")
		assert.LessOrEqual(t, d, 30*time.Second, "delays must be capped")
		prev = d
	}

	assert.Equal(t, time.Second, backoff(0))
	assert.Equal(t, 2*time.Second, backoff(1))
	assert.Equal(t, 4*time.Second, backoff(2))
	assert.Equal(t, 30*time.Second, backoff(5))
	assert.Equal(t, 30*time.Second, backoff(63))
}

func TestDoWithResult_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	cfg := Config{
		MaxAttempts: 3,
		Backoff:     CappedExponential(time.Millisecond, 10*time.Millisecond),
	}

	got, err := DoWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("boom")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cfg := Config{
		MaxAttempts: 3,
		Backoff:     CappedExponential(time.Millisecond, 10*time.Millisecond),
	}

	_, err := DoWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_NonRetryableStopsImmediately(t *testing.T) {
	fatal := errors.New("bad request")
	calls := 0
	cfg := Config{
		MaxAttempts: 5,
		Backoff:     CappedExponential(time.Millisecond, 10*time.Millisecond),
		ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
	}

	_, err := DoWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoWithResult(ctx, Config{MaxAttempts: 3}, func() (int, error) {
		t.Fatal("fn must not run on a canceled context")
		return 0, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_CancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{
		MaxAttempts: 3,
		Backoff:     CappedExponential(time.Hour, time.Hour),
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func() error { return errors.New("boom") })
	assert.ErrorIs(t, err, context.Canceled)
}
