package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for delivery failures.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher sends submissions for one form. It is safe for concurrent use,
// but only one submission is in flight at a time; build one per form.
type Dispatcher struct {
	transport Transport
	logger    *zap.Logger
	inFlight  atomic.Bool
}

// New returns a Dispatcher posting through transport.
func New(transport Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{transport: transport, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// InFlight reports whether a submission has not settled yet.
func (d *Dispatcher) InFlight() bool {
	return d != nil && d.inFlight.Load()
}

// Dispatch encodes payload as JSON and posts it once to path. It never retries.
// Delivery failures are returned inside the Result; under OptimisticAdvance
// they are also logged because nobody else will see them.
func (d *Dispatcher) Dispatch(ctx context.Context, policy Policy, path string, payload any) Result {
	if d == nil || d.transport == nil {
		return Result{Status: StatusError, Policy: policy, Err: ErrNoTransport}
	}
	if !d.inFlight.CompareAndSwap(false, true) {
		return Result{Status: StatusSubmitting, Policy: policy, Err: ErrInFlight}
	}
	defer d.inFlight.Store(false)

	body, err := json.Marshal(payload)
	if err != nil {
		return d.settle(policy, path, fmt.Errorf("dispatch: encode payload: %w", err))
	}
	return d.settle(policy, path, d.transport.Post(ctx, path, body))
}

func (d *Dispatcher) settle(policy Policy, path string, err error) Result {
	if err == nil {
		d.logger.Debug("submission delivered", zap.String("path", path), zap.Stringer("policy", policy))
		return Result{Status: StatusSuccess, Policy: policy}
	}
	if policy == OptimisticAdvance {
		d.logger.Warn("submission failed, advancing anyway",
			zap.String("path", path), zap.Error(err))
	} else {
		d.logger.Info("submission failed", zap.String("path", path), zap.Error(err))
	}
	return Result{Status: StatusError, Policy: policy, Err: err}
}
