package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsAfterFailure(t *testing.T) {
	attempts := []int{}
	err := withRetry(context.Background(), 3, func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt == 1 {
			return errors.New("smtp connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestWithRetry_ReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 1, func(attempt int) error {
		calls++
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, calls)
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, 3, func(attempt int) error {
		calls++
		return errors.New("still failing")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no further attempts after cancellation")
}
