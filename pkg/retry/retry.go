// Package retry wraps external calls with bounded retries and exponential
// backoff. Rate-limit failures get an aggressive doubling schedule; other
// transient failures use a milder capped schedule with jitter;
// non-retryable failures propagate immediately.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Kind classifies a failure for retry purposes.
type Kind int

const (
	// KindTransient is retried with the mild capped backoff.
	KindTransient Kind = iota
	// KindRateLimited is retried with uncapped doubling backoff.
	KindRateLimited
	// KindFatal propagates immediately without retrying.
	KindFatal
)

// Classifier maps an error to its retry Kind.
type Classifier func(error) Kind

// Policy controls how Do retries an operation.
type Policy struct {
	// MaxRetries is the total number of attempts. Values below 1 mean a
	// single attempt.
	MaxRetries int
	BaseDelay  time.Duration
	// MaxDelay caps the transient backoff path. The rate-limited path is
	// bounded only by MaxRetries.
	MaxDelay time.Duration
	// Classify defaults to DefaultClassify.
	Classify Classifier
	// Sleep defaults to SleepWithContext; tests override it to record
	// delays without waiting.
	Sleep func(context.Context, time.Duration) error
	// Jitter returns a value in [0, 1), scaled to at most +10% of the
	// transient delay. Defaults to rand.Float64.
	Jitter func() float64
}

// ExhaustedError is the terminal failure after MaxRetries consecutive
// attempts. It carries the attempt count and the last underlying error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// IsExhausted reports whether err is a retry exhaustion.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}

// Do runs op under the policy, returning nil on the first success, the
// error itself for fatal failures, a context error on cancellation, or an
// *ExhaustedError once every attempt has failed.
func Do(ctx context.Context, p Policy, op func() error) error {
	attempts := p.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	classify := p.Classify
	if classify == nil {
		classify = DefaultClassify
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepWithContext
	}
	jitter := p.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op()
		if err == nil {
			return nil
		}

		kind := classify(err)
		if kind == KindFatal {
			return err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		var delay time.Duration
		if kind == KindRateLimited {
			// base * 2^attempt: 10s, 20s, 40s, ...
			delay = p.BaseDelay * (1 << attempt)
		} else {
			// base * 1.5^attempt, capped, with up to +10% jitter.
			d := float64(p.BaseDelay) * math.Pow(1.5, float64(attempt))
			if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
				d = float64(p.MaxDelay)
			}
			d *= 1 + jitter()*0.1
			delay = time.Duration(d)
		}

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: attempts, Err: lastErr}
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	var result T
	err := Do(ctx, p, func() error {
		value, err := op()
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	return result, err
}

var rateLimitTokens = []string{
	"rate limit",
	"too many requests",
	"429",
	"quota",
	"resource_exhausted",
}

var fatalTokens = []string{
	"api key",
	"unauthorized",
	"permission denied",
	"401",
	"403",
}

// DefaultClassify inspects the error message: rate-limit signatures get
// the aggressive path, auth signatures are fatal, everything else is
// treated as transient.
func DefaultClassify(err error) Kind {
	if err == nil {
		return KindTransient
	}
	message := strings.ToLower(err.Error())
	for _, token := range rateLimitTokens {
		if strings.Contains(message, token) {
			return KindRateLimited
		}
	}
	for _, token := range fatalTokens {
		if strings.Contains(message, token) {
			return KindFatal
		}
	}
	return KindTransient
}

// IsRateLimited reports whether the error carries a rate-limit signature.
func IsRateLimited(err error) bool {
	return err != nil && DefaultClassify(err) == KindRateLimited
}

// SleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
