// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy configures the retry behavior of Call.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles after
	// every further retryable failure (baseDelay * 2^(attempt-1)).
	BaseDelay time.Duration

	// Retryable reports whether an error should be retried. Errors it
	// rejects propagate immediately without a delay.
	Retryable func(error) bool
}

// DefaultPolicy returns the retry policy shared by every language-model
// call site: three attempts, one-second base delay, retrying only on
// rate-limit errors.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   IsRateLimit,
	}
}

// Call executes operation, retrying retryable failures with exponential
// backoff. Non-retryable errors are returned immediately. Exhausting all
// attempts returns the last retryable error wrapped with the attempt count.
// The backoff sleep is context-aware: cancellation aborts the wait.
func Call[T any](ctx context.Context, policy Policy, operation func() (T, error)) (T, error) {
	var zero T
	if policy.MaxAttempts <= 0 {
		return zero, ErrInvalidMaxAttempts
	}
	retryable := policy.Retryable
	if retryable == nil {
		retryable = IsRateLimit
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := operation()
		if err == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, err
		}

		slog.Debug("rate limited, will retry",
			"attempt", attempt,
			"maxAttempts", policy.MaxAttempts,
			"error", err)

		// Don't sleep after the last attempt
		if attempt == policy.MaxAttempts {
			break
		}

		// Exponential backoff: baseDelay * 2^(attempt-1)
		delay := policy.BaseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, policy.MaxAttempts, lastErr)
}
