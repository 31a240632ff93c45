package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"index-observer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ObserverError struct {
	Message string
	Cause   error
}

func (e *ObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types so callers can use errors.As on the failing layer.
type ConfigurationError struct{ ObserverError }
type DataSourceError struct{ ObserverError }
type ValidationError struct{ ObserverError }
type AnalysisError struct{ ObserverError }

func NewDataSourceError(msg string, cause error) error {
	return &DataSourceError{ObserverError{Message: msg, Cause: cause}}
}

func NewValidationError(msg string, cause error) error {
	return &ValidationError{ObserverError{Message: msg, Cause: cause}}
}

func NewConfigurationError(msg string, cause error) error {
	return &ConfigurationError{ObserverError{Message: msg, Cause: cause}}
}

func NewAnalysisError(msg string, cause error) error {
	return &AnalysisError{ObserverError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Sentinels
// -----------------------------------------------------------------------------

var (
	ErrIndexNotFound    = errors.New("index not found")
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrAnalysisDisabled = errors.New("analysis is disabled")
)

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger    *logger.Logger
	BaseDelay time.Duration
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger:    log,
		BaseDelay: time.Second,
	}
}

// -----------------------------------------------------------------------------

// ExecuteWithRetry runs fn up to maxRetries times with exponential backoff.
// A cancelled context stops the loop between attempts.
func (e *ErrorHandler) ExecuteWithRetry(ctx context.Context, operation string, maxRetries int, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries-1 {
			e.Logger.Error("%s failed (attempt %d/%d): %v", operation, attempt+1, maxRetries, err)
			break
		}

		delay := e.BaseDelay * (1 << attempt)
		e.Logger.Warning("%s failed (attempt %d/%d): %v. Retrying in %v", operation, attempt+1, maxRetries, err, delay)

		select {
		case <-ctx.Done():
			return &ObserverError{Message: fmt.Sprintf("%s cancelled", operation), Cause: ctx.Err()}
		case <-time.After(delay):
		}
	}

	return &ObserverError{Message: fmt.Sprintf("%s failed after %d attempts", operation, maxRetries), Cause: lastErr}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
