package pkg

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// RetryPolicy unifies the retry loops used against the remote surfaces:
// a bounded number of attempts, a backoff schedule between them, and a
// predicate deciding which errors are worth another attempt. A nil
// Retryable treats every error as retryable.
type RetryPolicy struct {
	Name        string
	MaxAttempts uint64
	NewBackOff  func() backoff.BackOff
	Retryable   func(error) bool
}

// ConstantRetry waits the same interval between attempts. Used for the
// stale-element races in the browser client.
func ConstantRetry(name string, maxAttempts uint64, interval time.Duration, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		Name:        name,
		MaxAttempts: maxAttempts,
		NewBackOff: func() backoff.BackOff {
			return backoff.NewConstantBackOff(interval)
		},
		Retryable: retryable,
	}
}

// ExponentialRetry doubles the wait between attempts, starting at initialInterval.
// Used for rate-limited spreadsheet calls.
func ExponentialRetry(name string, maxAttempts uint64, initialInterval time.Duration, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		Name:        name,
		MaxAttempts: maxAttempts,
		NewBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = initialInterval
			bo.RandomizationFactor = 0
			return bo
		},
		Retryable: retryable,
	}
}

// Do runs op until it succeeds, a non-retryable error occurs, the attempts
// are exhausted, or ctx is done. Every failed attempt is logged.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = 1
	}

	attempt := uint64(0)
	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		log.Warnf("%s: attempt %d/%d failed: %s", p.Name, attempt, p.MaxAttempts, err)
		return err
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(p.NewBackOff(), p.MaxAttempts-1),
		ctx,
	)
	return backoff.Retry(wrapped, bo)
}
