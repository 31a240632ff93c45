package helpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"index-observer/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	h := NewErrorHandler(logger.NewNopLogger())
	h.BaseDelay = time.Millisecond
	return h
}

func TestExecuteWithRetrySucceedsAfterFailures(t *testing.T) {
	h := newTestHandler()
	calls := 0

	err := h.ExecuteWithRetry(context.Background(), "load", 3, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetryWrapsLastError(t *testing.T) {
	h := newTestHandler()
	cause := errors.New("disk gone")

	err := h.ExecuteWithRetry(context.Background(), "load", 2, func() error { return cause })

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestExecuteWithRetryStopsOnCancel(t *testing.T) {
	h := newTestHandler()
	h.BaseDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := h.ExecuteWithRetry(ctx, "load", 5, func() error {
		calls++
		return errors.New("fail")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestTypedErrorsUnwrap(t *testing.T) {
	cause := errors.New("bad header")
	err := NewDataSourceError("parse csv", cause)

	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "parse csv: bad header", err.Error())
	assert.ErrorIs(t, err, cause)
}
