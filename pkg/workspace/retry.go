package workspace

import (
	"context"
	"errors"
	"time"

	"ai-renamer-be/pkg/naming"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy controls automatic retries of one AI call. MaxAttempts of 1
// or less means a single attempt.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (p RetryPolicy) do(ctx context.Context, op func() (*naming.Result, error), onRetry func(err error, wait time.Duration)) (*naming.Result, error) {
	if p.MaxAttempts <= 1 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialBackoff > 0 {
		b.InitialInterval = p.InitialBackoff
	}
	if p.MaxBackoff > 0 {
		b.MaxInterval = p.MaxBackoff
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
	}
	if onRetry != nil {
		opts = append(opts, backoff.WithNotify(onRetry))
	}

	res, err := backoff.Retry(ctx, func() (*naming.Result, error) {
		res, err := op()
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return res, err
	}, opts...)

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	return res, err
}

// Only transport failures, quota and 5xx replies are worth repeating.
func retryable(err error) bool {
	var ne *naming.Error
	if errors.As(err, &ne) {
		return ne.Retryable()
	}
	return false
}
