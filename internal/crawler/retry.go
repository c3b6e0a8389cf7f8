package crawler

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy decides whether a failed fetch is attempted again and how long
// to wait before the next attempt.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}

// FixedDelayRetryPolicy retries a bounded number of times with the same fixed
// delay between attempts. The remote site is small and static, so jittered
// exponential backoff buys nothing here.
type FixedDelayRetryPolicy struct {
	maxRetries int
	delay      time.Duration
}

// NewFixedDelayRetryPolicy builds a policy allowing maxRetries retries after
// the initial attempt, waiting delay before each one.
func NewFixedDelayRetryPolicy(maxRetries int, delay time.Duration) *FixedDelayRetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &FixedDelayRetryPolicy{
		maxRetries: maxRetries,
		delay:      delay,
	}
}

// ShouldRetry reports whether the error is worth another attempt. Attempt is
// zero-based: attempt 0 is the first retry decision.
func (p *FixedDelayRetryPolicy) ShouldRetry(err error, attempt int) bool {
	if err == nil {
		return false
	}
	if attempt >= p.maxRetries {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Backoff returns the wait duration before the next attempt.
func (p *FixedDelayRetryPolicy) Backoff(int) time.Duration {
	return p.delay
}
