// Package retry provides a small retry helper with exponential backoff
// and jitter, shared by the lookup and classifier clients.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy describes how an operation is retried after failures.
type Policy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // delay before the second attempt
	Multiplier  float64       // growth factor per attempt, 0 means constant delay
	Jitter      time.Duration // max random extra delay added to each wait
	Cap         time.Duration // upper bound on a single wait, 0 means uncapped
}

// Do runs fn until it succeeds, the policy is exhausted, or ctx is done.
// It returns the last error from fn, or the context error if that fired first.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		wait := p.delay(attempt)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (p Policy) delay(attempt int) time.Duration {
	wait := p.BaseDelay
	if p.Multiplier > 0 {
		for i := 0; i < attempt; i++ {
			wait = time.Duration(float64(wait) * p.Multiplier)
		}
	}
	if p.Jitter > 0 {
		wait += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	if p.Cap > 0 && wait > p.Cap {
		wait = p.Cap
	}
	return wait
}
