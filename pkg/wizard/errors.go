package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-syntrophic/pkg/validation"
)

var (
	// ErrTerminal is returned when navigating away from the status screen.
	ErrTerminal = errors.New("wizard: status screen is terminal")
	// ErrInvalidChoice is returned for enum values outside the known set.
	ErrInvalidChoice = errors.New("wizard: invalid choice")
	// ErrNoVariant is returned when setting a variant field before the enum
	// that selects the variant has been chosen.
	ErrNoVariant = errors.New("wizard: variant not selected")
	// ErrFieldNotInVariant is returned when a field name does not belong to the
	// selected variant.
	ErrFieldNotInVariant = errors.New("wizard: field not in selected variant")
	// ErrIncomplete is returned when a payload is requested before every
	// choice has been made.
	ErrIncomplete = errors.New("wizard: answers incomplete")
	// ErrClosed is returned by an Advance whose submission settled after the
	// session was closed. The settled result is dropped.
	ErrClosed = errors.New("wizard: session closed during submission")
)

// StepError reports why the current step cannot be left forwards.
type StepError struct {
	Step   Step
	Issues []validation.Issue
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return fmt.Sprintf("wizard: step %d (%s) incomplete: %s", int(e.Step), e.Step, strings.Join(parts, "; "))
}

// FieldMessages groups the issues by field for inline display.
func (e *StepError) FieldMessages() map[string][]string {
	if e == nil {
		return nil
	}
	return validation.Result{Issues: e.Issues}.FieldMessages()
}
