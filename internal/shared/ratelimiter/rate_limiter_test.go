package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRateLimiter_UnderBudgetDoesNotBlock verifies that calls within the
// budget return immediately.
func TestRateLimiter_UnderBudgetDoesNotBlock(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestRateLimiter_BlocksOverBudget verifies that exceeding the budget sleeps
// until the interval rolls over.
func TestRateLimiter_BlocksOverBudget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, 200*time.Millisecond)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

// TestRateLimiter_ResetsAfterInterval verifies the budget refills once the
// interval has elapsed.
func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50*time.Millisecond)

	rl.WaitIfNeeded()
	time.Sleep(60 * time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	assert.Less(t, time.Since(start), 30*time.Millisecond)
}
