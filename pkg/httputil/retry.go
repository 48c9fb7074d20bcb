package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures with this type when no classifier is passed to
// [Retry].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Classifier reports whether err is transient and worth another attempt.
type Classifier func(err error) bool

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors for which retryable returns true; other errors are
// returned immediately. A nil retryable matches errors wrapped in
// [RetryableError]. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, retryable Classifier, fn func() error) error {
	attempts = max(attempts, 1)
	if retryable == nil {
		retryable = isRetryable
	}
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !retryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
