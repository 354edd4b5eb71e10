// Package waitlist implements the single-address capture forms: the light
// paper subscription and the cluster waitlist. Both validate the address
// before any network call and surface delivery failures so the user can
// retry.
package waitlist

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/validation"
)

const (
	SubscribePath       = "/api/subscribe"
	ClusterWaitlistPath = "/api/cluster-waitlist"
)

// ErrInvalidEmail is returned before any network call when the address does
// not look like local@domain.tld.
var ErrInvalidEmail = errors.New("waitlist: invalid email address")

// Kind selects the endpoint and the fields a form submits.
type Kind int

const (
	// Subscribe requests the light paper.
	Subscribe Kind = iota
	// Cluster joins the cluster waitlist and may carry an agent DID.
	Cluster
)

// Path returns the endpoint for k.
func (k Kind) Path() string {
	if k == Cluster {
		return ClusterWaitlistPath
	}
	return SubscribePath
}

// Request is the JSON body posted by a form.
type Request struct {
	Email    string `json:"email"`
	AgentDID string `json:"agentDid,omitempty"`
}

// Form is one waitlist form instance with its own status.
type Form struct {
	kind       Kind
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger

	mu     sync.Mutex
	status dispatch.Status
	err    error
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the form logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New returns an idle form of the given kind.
func New(kind Kind, dispatcher *dispatch.Dispatcher, opts ...Option) *Form {
	f := &Form{
		kind:       kind,
		dispatcher: dispatcher,
		logger:     zap.NewNop(),
		status:     dispatch.StatusIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Status returns the current status and the last failure, if any.
func (f *Form) Status() (dispatch.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.err
}

// Submit validates email and posts it. agentDID is only sent by cluster forms
// and may be empty. A failed delivery leaves the form in the error status and
// returns the error; calling Submit again retries.
func (f *Form) Submit(ctx context.Context, email, agentDID string) (dispatch.Result, error) {
	req := Request{Email: strings.TrimSpace(email)}
	if f.kind == Cluster {
		req.AgentDID = strings.TrimSpace(agentDID)
	}

	if !validation.Email(req.Email) {
		f.set(dispatch.StatusError, ErrInvalidEmail)
		return dispatch.Result{Status: dispatch.StatusError, Policy: dispatch.FailVisible, Err: ErrInvalidEmail}, ErrInvalidEmail
	}

	f.mu.Lock()
	if f.status == dispatch.StatusSubmitting {
		f.mu.Unlock()
		return dispatch.Result{Status: dispatch.StatusSubmitting, Policy: dispatch.FailVisible, Err: dispatch.ErrInFlight}, dispatch.ErrInFlight
	}
	f.status, f.err = dispatch.StatusSubmitting, nil
	f.mu.Unlock()

	result := f.dispatcher.Dispatch(ctx, dispatch.FailVisible, f.kind.Path(), req)
	f.set(result.Status, result.Err)
	if result.Failed() {
		f.logger.Info("waitlist submission failed", zap.String("path", f.kind.Path()), zap.Error(result.Err))
		return result, result.Err
	}
	return result, nil
}

// Reset returns the form to idle.
func (f *Form) Reset() {
	f.set(dispatch.StatusIdle, nil)
}

func (f *Form) set(status dispatch.Status, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.err = status, err
}
