package resilience

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a policy's MaxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRetriesExhausted wraps the last rate-limit error after all attempts fail.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
