package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quizforge/quizforge/internal/logging"
)

// RetryProvider re-sends requests that failed for a transient reason. Waits
// grow by Multiplier per attempt with ±20% jitter; a rate limit carrying
// RetryAfter waits exactly that long.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. With MaxAttempts of 1 every request is sent once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

// retryVerdict says what to do with a failed attempt.
type retryVerdict int

const (
	giveUp retryVerdict = iota
	retry
	retryOnce // malformed replies get a single second chance
)

func classifyFailure(err error) retryVerdict {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
		limited *ErrRateLimit
		down    *ErrProviderUnavailable
		status  *ErrServiceStatus
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &maxTok):
		return giveUp
	case errors.As(err, &invalid):
		return retryOnce
	case errors.As(err, &limited), errors.As(err, &down):
		return retry
	case errors.As(err, &status):
		// What is left are 4xx replies such as a bad key.
		return giveUp
	default:
		return retry
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr     error
		usedRetryOn bool
	)

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classifyFailure(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if usedRetryOn {
				return nil, err
			}
			usedRetryOn = true
		}

		if attempt+1 == r.config.MaxAttempts {
			break
		}

		wait := r.wait(attempt, err)
		logging.WithContext(ctx).WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait_ms": wait.Milliseconds(),
		}).WithError(err).Debug("retrying llm request")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait returns how long to sleep after the given zero-based attempt failed.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
		if d >= float64(r.config.MaxWait) {
			d = float64(r.config.MaxWait)
			break
		}
	}

	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}
