package rpc

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

type RetryPolicy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 are treated as 1.
	Attempts int

	// Delay is the initial backoff between tries. It doubles on every retry.
	Delay time.Duration
}

// NewRetrying wraps client so that calls failing with a ConnectionError are
// retried according to policy. Other failures are returned immediately.
func NewRetrying(client Client, policy RetryPolicy, log *zap.Logger) Client {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &retrying{
		client: client,
		policy: policy,
		log:    log,
	}
}

type retrying struct {
	client Client
	policy RetryPolicy
	log    *zap.Logger
}

func (r *retrying) Send(ctx context.Context, method Method, params ...any) (result Result, err error) {
	err = retry.Do(
		func() (err error) {
			result, err = r.client.Send(ctx, method, params...)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.policy.Attempts)),
		retry.Delay(r.policy.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(ConnectionError.Has),
		retry.OnRetry(func(n uint, err error) {
			// also called after the final attempt
			if int(n)+1 >= r.policy.Attempts {
				return
			}
			r.log.Warn("Retrying RPC call",
				zap.Stringer("method", method),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
