package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// RetryPolicy bounds each upstream attempt and retries failures with exponential backoff
type RetryPolicy struct {
	Timeout        time.Duration // Per-attempt timeout
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy returns a policy of 3s attempts retried twice
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Timeout:        3 * time.Second,
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialBackoff
	b.MaxInterval = p.MaxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// withRetry runs op under the policy. NotFound and InvalidInput are not retried.
func withRetry[T any](
	ctx context.Context,
	policy RetryPolicy,
	logger zerolog.Logger,
	source string,
	op func(ctx context.Context) (T, error),
) (T, error) {
	var result T
	attempt := func() error {
		attemptCtx := ctx
		if policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
			defer cancel()
		}

		v, err := op(attemptCtx)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidInput) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn().
			Err(err).
			Str("source", source).
			Dur("retry_in", wait).
			Msg("upstream call failed, retrying")
	}

	if err := backoff.RetryNotify(attempt, policy.backOff(ctx), notify); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
