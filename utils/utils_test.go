package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Circuit Breaker Tests

func TestCircuitBreaker_SuccessKeepsClosed(t *testing.T) {
	cb := NewCircuitBreaker("test")

	for i := 0; i < 10; i++ {
		err := cb.Do(func() error { return nil })
		assert.NoError(t, err)
	}

	assert.False(t, cb.Open())
}

func TestCircuitBreaker_PassesThroughErrors(t *testing.T) {
	cb := NewCircuitBreaker("test")

	want := errors.New("publish failed")
	err := cb.Do(func() error { return want })

	assert.ErrorIs(t, err, want)
	assert.False(t, cb.Open(), "a single failure must not open the breaker")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	cb.maxFailures = 3

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = cb.Do(func() error { return boom })
	}

	assert.True(t, cb.Open())

	calls := 0
	err := cb.Do(func() error { calls++; return nil })
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Zero(t, calls, "open breaker must not invoke the call")
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("test")
	cb.maxFailures = 3

	boom := errors.New("boom")
	_ = cb.Do(func() error { return boom })
	_ = cb.Do(func() error { return boom })
	require.NoError(t, cb.Do(func() error { return nil }))
	_ = cb.Do(func() error { return boom })
	_ = cb.Do(func() error { return boom })

	assert.False(t, cb.Open())
}

func TestCircuitBreaker_ProbesAfterCooldown(t *testing.T) {
	cb := NewCircuitBreaker("test")
	cb.maxFailures = 1
	cb.cooldown = 10 * time.Millisecond

	_ = cb.Do(func() error { return errors.New("boom") })
	require.True(t, cb.Open())

	time.Sleep(15 * time.Millisecond)

	err := cb.Do(func() error { return nil })
	assert.NoError(t, err)
	assert.False(t, cb.Open())
}

// Reference Code Tests

func TestGenerateReference_Format(t *testing.T) {
	ref, err := GenerateReference()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "BK-"))
	assert.Len(t, ref, 3+referenceBytes*2)

	for _, c := range ref[3:] {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestGenerateReference_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref, err := GenerateReference()
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
