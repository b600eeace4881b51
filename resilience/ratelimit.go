package resilience

import (
	"errors"
	"fmt"
	"strings"
)

// Rate-limit signals recognized in error messages from providers that
// surface HTTP failures as plain errors.
var rateLimitPhrases = []string{
	"rate limit",
	"rate_limit",
	"too many requests",
	"status code: 429",
	"429",
}

// RateLimitError is a transient remote failure signaling the caller should
// slow down and retry. Providers that expose structured failures wrap them
// in this type; unstructured failures are recognized by message.
type RateLimitError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rate limited (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("rate limited (%d %s)", e.StatusCode, e.Code)
}

// IsRateLimit reports whether err is a rate-limit signal: a RateLimitError,
// a 429 status code, the rate_limit_exceeded error code, or a message
// containing a rate-limit phrase.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate_limit_exceeded") {
		return true
	}
	for _, phrase := range rateLimitPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
