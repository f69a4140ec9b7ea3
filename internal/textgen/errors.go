package textgen

import (
	"errors"
	"strings"
)

var (
	// ErrRateLimited marks quota and throttling failures.
	ErrRateLimited = errors.New("rate limited")
	// ErrAuth marks credential failures; never retried.
	ErrAuth = errors.New("authentication failed")
	// ErrEmptyResponse marks a successful call that produced no text.
	ErrEmptyResponse = errors.New("empty response")
)

var rateLimitSignatures = []string{
	"rate limit",
	"too many requests",
	"429",
	"quota",
	"resource_exhausted",
}

var authSignatures = []string{
	"api key",
	"api_key",
	"unauthorized",
	"permission denied",
	"401",
	"403",
}

// IsRateLimited reports whether err carries a rate-limit signature, either
// as a tagged sentinel or in the backend's message text.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	return containsAny(err.Error(), rateLimitSignatures)
}

// IsAuth reports whether err is a credential failure.
func IsAuth(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuth) {
		return true
	}
	return containsAny(err.Error(), authSignatures)
}

func containsAny(message string, tokens []string) bool {
	message = strings.ToLower(message)
	for _, token := range tokens {
		if strings.Contains(message, token) {
			return true
		}
	}
	return false
}
