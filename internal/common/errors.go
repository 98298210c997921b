// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrIngestion = errors.New("ingestion failed")

	// Classification errors.
	ErrClassificationFailed = errors.New("classification failed")
	ErrEmptyResponse        = errors.New("empty classification response")

	// Checkpoint errors.
	ErrCheckpointIO = errors.New("checkpoint I/O failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
