package dispatch

import (
	"errors"
	"fmt"
)

// Status is the submission lifecycle shown by forms.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Policy decides what a form does once a submission settles.
type Policy int

const (
	// OptimisticAdvance moves on whatever the delivery outcome. Failures are
	// logged and kept on the Result.
	OptimisticAdvance Policy = iota
	// FailVisible stays put on failure so the user can retry.
	FailVisible
)

func (p Policy) String() string {
	switch p {
	case OptimisticAdvance:
		return "optimistic-advance"
	case FailVisible:
		return "fail-visible"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

var (
	// ErrInFlight is reported when a submission is attempted while another one
	// from the same form has not settled.
	ErrInFlight = errors.New("dispatch: submission already in flight")
	// ErrNoTransport is reported by a Dispatcher built without a Transport.
	ErrNoTransport = errors.New("dispatch: no transport configured")
)

// Result is the settled outcome of a submission.
type Result struct {
	Status Status
	Policy Policy
	Err    error
}

// Failed reports whether the delivery did not succeed.
func (r Result) Failed() bool {
	return r.Status != StatusSuccess
}

// Proceed reports whether the form should move past the submission screen.
// A rejected duplicate never proceeds.
func (r Result) Proceed() bool {
	if errors.Is(r.Err, ErrInFlight) {
		return false
	}
	if r.Policy == OptimisticAdvance {
		return true
	}
	return r.Status == StatusSuccess
}
