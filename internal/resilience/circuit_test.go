package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(err error) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) { return 0, err }
}

func succeeding(v int) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) { return v, nil }
}

func TestCircuitOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	boom := eris.New("backend down")

	for i := 0; i < 3; i++ {
		_, err := Call(context.Background(), cb, failing(boom))
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, CircuitOpen, cb.State())

	// Further calls are rejected without invoking fn.
	called := false
	_, err := Call(context.Background(), cb, func(ctx context.Context) (int, error) {
		called = true
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitSuccessResetsCounter(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	boom := eris.New("down")

	_, _ = Call(context.Background(), cb, failing(boom))
	_, _ = Call(context.Background(), cb, failing(boom))
	_, _ = Call(context.Background(), cb, succeeding(1))
	_, _ = Call(context.Background(), cb, failing(boom))
	_, _ = Call(context.Background(), cb, failing(boom))

	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitHalfOpenRecovery(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, ResetTimeout: 30 * time.Second})
	cb.nowFunc = func() time.Time { return now }

	boom := eris.New("down")
	_, _ = Call(context.Background(), cb, failing(boom))
	assert.Equal(t, CircuitOpen, cb.State())

	// After the reset timeout a probe is allowed; success closes the circuit.
	now = now.Add(31 * time.Second)
	assert.Equal(t, CircuitHalfOpen, cb.State())

	val, err := Call(context.Background(), cb, succeeding(7))
	require.NoError(t, err)
	assert.Equal(t, 7, val)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitHalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, ResetTimeout: 30 * time.Second})
	cb.nowFunc = func() time.Time { return now }

	boom := eris.New("down")
	_, _ = Call(context.Background(), cb, failing(boom))

	now = now.Add(31 * time.Second)
	_, err := Call(context.Background(), cb, failing(boom))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, CircuitOpen, cb.State())
}

func TestCircuitStateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_, _ = Call(context.Background(), cb, failing(eris.New("down")))
	cb.Reset()

	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
}
