package wizard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/validation"
)

// DefaultEndpoint is the path onboarding payloads are posted to.
const DefaultEndpoint = "/api/onboarding"

// Option configures a Wizard.
type Option func(*Wizard)

// WithThresholds overrides the step 2 and step 4 minimum lengths.
func WithThresholds(t Thresholds) Option {
	return func(w *Wizard) {
		w.validator = NewValidator(t)
	}
}

// WithLogger sets the logger used for navigation and submission events.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithPolicy overrides the submission policy. Onboarding defaults to
// dispatch.OptimisticAdvance.
func WithPolicy(p dispatch.Policy) Option {
	return func(w *Wizard) {
		w.policy = p
	}
}

// WithEndpoint overrides the submission path.
func WithEndpoint(path string) Option {
	return func(w *Wizard) {
		if path != "" {
			w.endpoint = path
		}
	}
}

// WithState resumes from an existing state, typically rebuilt by FromValues.
func WithState(s State) Option {
	return func(w *Wizard) {
		if !s.Step.Valid() {
			s.Step = FirstStep
		}
		if s.Status == "" {
			s.Status = dispatch.StatusIdle
		}
		w.state = s
	}
}

// Outcome describes a successful Advance.
type Outcome struct {
	From Step
	To   Step
	// Submission is set when the advance left the confirm step.
	Submission *dispatch.Result
}

// Wizard owns one onboarding session. Methods are safe for concurrent use;
// the lock is released while a submission is in flight.
type Wizard struct {
	mu         sync.Mutex
	state      State
	validator  Validator
	dispatcher *dispatch.Dispatcher
	policy     dispatch.Policy
	endpoint   string
	logger     *zap.Logger
	// generation changes on Close so late submissions cannot touch a new session
	generation uint64
}

// New returns a wizard on the first step that submits through dispatcher.
func New(dispatcher *dispatch.Dispatcher, opts ...Option) *Wizard {
	w := &Wizard{
		state:      NewState(),
		validator:  NewValidator(DefaultThresholds()),
		dispatcher: dispatcher,
		policy:     dispatch.OptimisticAdvance,
		endpoint:   DefaultEndpoint,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Step returns the current screen.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step
}

// Validator returns the step gate in use.
func (w *Wizard) Validator() Validator {
	return w.validator
}

// Validate evaluates the current step without moving.
func (w *Wizard) Validate() validation.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validator.Validate(w.state.Step, w.state)
}

// Update applies fn to the state under the lock. Navigation fields (Step,
// Status) changed by fn are discarded.
func (w *Wizard) Update(fn func(*State) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.state
	if err := fn(&next); err != nil {
		return err
	}
	next.Step, next.Status = w.state.Step, w.state.Status
	w.state = next
	return nil
}

// Set assigns a value by path. See State.Set.
func (w *Wizard) Set(path, value string) error {
	return w.Update(func(s *State) error { return s.Set(path, value) })
}

// Advance moves to the next step when the current one validates. From the
// confirm step it submits the payload once and moves to the status screen
// according to the wizard's policy.
func (w *Wizard) Advance(ctx context.Context) (Outcome, error) {
	w.mu.Lock()
	from := w.state.Step

	switch {
	case from >= StepStatus:
		w.mu.Unlock()
		return Outcome{From: from, To: from}, ErrTerminal
	case w.state.Status == dispatch.StatusSubmitting:
		w.mu.Unlock()
		return Outcome{From: from, To: from}, dispatch.ErrInFlight
	}

	if from < ConfirmStep {
		result := w.validator.Validate(from, w.state)
		if !result.Valid {
			w.mu.Unlock()
			return Outcome{From: from, To: from}, &StepError{Step: from, Issues: result.Issues}
		}
		w.state.Step = from + 1
		w.mu.Unlock()
		w.logger.Debug("wizard advanced", zap.Stringer("from", from), zap.Stringer("to", from+1))
		return Outcome{From: from, To: from + 1}, nil
	}

	// a state rebuilt from form values may skip earlier screens, so check all
	if failed, result := w.validator.ValidateThrough(ConfirmStep, w.state); !result.Valid {
		w.mu.Unlock()
		return Outcome{From: from, To: from}, &StepError{Step: failed, Issues: result.Issues}
	}
	payload, err := w.state.Payload()
	if err != nil {
		w.mu.Unlock()
		return Outcome{From: from, To: from}, err
	}
	w.state.Status = dispatch.StatusSubmitting
	generation := w.generation
	w.mu.Unlock()

	submission := w.dispatcher.Dispatch(ctx, w.policy, w.endpoint, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	out := Outcome{From: from, To: from, Submission: &submission}
	if w.generation != generation {
		w.logger.Info("onboarding submission settled after close",
			zap.String("status", string(submission.Status)),
		)
		return out, ErrClosed
	}
	w.state.Status = submission.Status
	if !submission.Proceed() {
		return out, submission.Err
	}
	w.state.Step = StepStatus
	out.To = StepStatus
	w.logger.Info("onboarding submitted",
		zap.String("accountType", string(payload.AccountType)),
		zap.String("role", string(payload.Role)),
		zap.String("status", string(submission.Status)),
		zap.Stringer("policy", w.policy),
	)
	return out, nil
}

// Retreat moves back one step, never below the first. It does not validate.
func (w *Wizard) Retreat() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.state.Step >= StepStatus:
		return w.state.Step, ErrTerminal
	case w.state.Status == dispatch.StatusSubmitting:
		return w.state.Step, dispatch.ErrInFlight
	case w.state.Step > FirstStep:
		w.state.Step--
	}
	return w.state.Step, nil
}

// Close discards every answer and returns to a fresh first step. A
// submission still in flight settles into nothing.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = NewState()
	w.generation++
}
