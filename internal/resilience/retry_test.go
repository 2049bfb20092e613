package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := Do(context.Background(), fastRetry(3), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransient(t *testing.T) {
	calls := 0
	val, err := Do(context.Background(), fastRetry(3), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(eris.New("flaky"), 503)
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := eris.New("bad request")
	_, err := Do(context.Background(), fastRetry(5), func(ctx context.Context) (int, error) {
		calls++
		return 0, permanent
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastRetry(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(eris.New("still down"), 502)
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, fastRetry(5), func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(eris.New("down"), 500)
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoCallsOnRetry(t *testing.T) {
	cfg := fastRetry(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}
	_, _ = Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		return 0, NewTransientError(eris.New("down"), 500)
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestComputeBackoffCapped(t *testing.T) {
	cfg := applyDefaults(RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     2 * time.Second,
		Multiplier:     10,
		JitterFraction: -1, // normalized to 0
	})
	assert.Equal(t, time.Second, computeBackoff(0, cfg))
	assert.Equal(t, 2*time.Second, computeBackoff(1, cfg))
	assert.Equal(t, 2*time.Second, computeBackoff(5, cfg))
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(5, 100, 1000, 3.0)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, time.Second, cfg.MaxBackoff)
	assert.Equal(t, 3.0, cfg.Multiplier)

	// Zero values keep defaults.
	cfg = FromConfig(0, 0, 0, 0)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialBackoff)
}
