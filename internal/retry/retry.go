// Package retry implements exponential-backoff retry for the corpus API
// client.
package retry

import (
	"context"
	"log"
	"math"
	"time"
)

// Config holds the backoff schedule.
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns the schedule used by the corpus API client.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// delay computes the backoff for the given zero-based attempt.
func (c Config) delay(attempt int) time.Duration {
	d := time.Duration(float64(c.BaseDelay) * math.Pow(c.BackoffMultiple, float64(attempt)))
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Func performs one attempt of an HTTP call, returning the status code and
// response body alongside any transport error.
type Func func() (statusCode int, body []byte, err error)

// Checker reports whether a failed attempt should be retried.
type Checker func(statusCode int, body []byte, err error) bool

// Options configures one retried call.
type Options struct {
	Config    Config
	Retryable Checker
	APIName   string
}

// Do runs fn with the configured retries. It honors ctx cancellation during
// backoff waits and returns the last attempt's outcome once retries are
// exhausted or the failure is not retryable.
func Do(ctx context.Context, opts Options, fn Func) (int, []byte, error) {
	var (
		status int
		body   []byte
		err    error
	)

	for attempt := 0; attempt <= opts.Config.MaxRetries; attempt++ {
		if attempt > 0 {
			d := opts.Config.delay(attempt - 1)
			log.Printf("%s: retry %d/%d after %v", opts.APIName, attempt, opts.Config.MaxRetries, d)

			select {
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			case <-time.After(d):
			}
		}

		status, body, err = fn()
		if err == nil && status < 400 {
			return status, body, nil
		}
		if opts.Retryable != nil && !opts.Retryable(status, body, err) {
			break
		}
	}
	return status, body, err
}
