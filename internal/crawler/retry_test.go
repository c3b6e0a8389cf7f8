package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedDelayRetryPolicy(t *testing.T) {
	t.Parallel()

	p := NewFixedDelayRetryPolicy(2, 200*time.Millisecond)
	err := errors.New("boom")

	require.True(t, p.ShouldRetry(err, 0))
	require.True(t, p.ShouldRetry(err, 1))
	require.False(t, p.ShouldRetry(err, 2), "retry budget exhausted")
	require.False(t, p.ShouldRetry(nil, 0))

	require.Equal(t, 200*time.Millisecond, p.Backoff(0))
	require.Equal(t, 200*time.Millisecond, p.Backoff(5), "delay is fixed, not exponential")
}

func TestFixedDelayRetryPolicyNeverRetriesCancellation(t *testing.T) {
	t.Parallel()

	p := NewFixedDelayRetryPolicy(5, time.Millisecond)
	require.False(t, p.ShouldRetry(context.Canceled, 0))
	require.False(t, p.ShouldRetry(context.DeadlineExceeded, 0))
}

func TestFixedDelayRetryPolicyClampsNegativeBudget(t *testing.T) {
	t.Parallel()

	p := NewFixedDelayRetryPolicy(-1, time.Millisecond)
	require.False(t, p.ShouldRetry(errors.New("boom"), 0))
}
