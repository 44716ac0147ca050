package httpx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func TestCircuitBreaker_PassesResults(t *testing.T) {
	breaker := NewCircuitBreaker("openai", time.Minute, 3)

	assert.NoError(t, breaker.Execute(func() error { return nil }))

	err := breaker.Execute(func() error { return errUpstream })
	assert.ErrorIs(t, err, errUpstream)
	assert.Contains(t, err.Error(), "breaker (openai)")
	assert.Equal(t, gobreaker.StateClosed.String(), breaker.State())
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := NewCircuitBreaker("openai", time.Minute, 2)

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, breaker.Execute(func() error { return errUpstream }), errUpstream)
	}

	calls := 0
	err := breaker.Execute(func() error { calls++; return nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Zero(t, calls)
	assert.Equal(t, gobreaker.StateOpen.String(), breaker.State())
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	breaker := NewCircuitBreaker("openai", time.Minute, 2)

	_ = breaker.Execute(func() error { return errUpstream })
	_ = breaker.Execute(func() error { return nil })
	_ = breaker.Execute(func() error { return errUpstream })

	assert.Equal(t, gobreaker.StateClosed.String(), breaker.State())
}

func TestCircuitBreaker_CancellationDoesNotTrip(t *testing.T) {
	breaker := NewCircuitBreaker("openai", time.Minute, 1)

	err := breaker.Execute(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, gobreaker.StateClosed.String(), breaker.State())
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	breaker := NewCircuitBreaker("local", 50*time.Millisecond, 1)
	_ = breaker.Execute(func() error { return errUpstream })
	require.Equal(t, gobreaker.StateOpen.String(), breaker.State())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen.String(), breaker.State())

	require.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed.String(), breaker.State())
}
