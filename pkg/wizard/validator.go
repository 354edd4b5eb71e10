package wizard

import (
	"fmt"

	"github.com/goliatone/go-syntrophic/pkg/validation"
)

// Thresholds are the product-tunable minimum lengths used by the step rules.
type Thresholds struct {
	// NameMinLength applies to the full name or organisation name.
	NameMinLength int
	// ProfileMinLength applies to both profile answers.
	ProfileMinLength int
}

// DefaultThresholds returns the shipped minimums.
func DefaultThresholds() Thresholds {
	return Thresholds{NameMinLength: 2, ProfileMinLength: 10}
}

// Validator is the pure per-step gate. The zero value uses DefaultThresholds.
type Validator struct {
	thresholds Thresholds
}

// NewValidator returns a validator using t. Non-positive thresholds fall back
// to the defaults.
func NewValidator(t Thresholds) Validator {
	def := DefaultThresholds()
	if t.NameMinLength <= 0 {
		t.NameMinLength = def.NameMinLength
	}
	if t.ProfileMinLength <= 0 {
		t.ProfileMinLength = def.ProfileMinLength
	}
	return Validator{thresholds: t}
}

// Thresholds returns the minimums in effect.
func (v Validator) Thresholds() Thresholds {
	if v.thresholds == (Thresholds{}) {
		return DefaultThresholds()
	}
	return v.thresholds
}

// Valid reports whether step may be left forwards.
func (v Validator) Valid(step Step, s State) bool {
	return v.Validate(step, s).Valid
}

// Validate evaluates the rule for step and returns the inline issues. Issue
// fields use the State.Set paths.
func (v Validator) Validate(step Step, s State) validation.Result {
	t := v.Thresholds()
	result := validation.NewResult()

	switch step {
	case StepAccountType:
		if !s.AccountType.Valid() {
			result.Fail("accountType", "Select an account type")
		}
	case StepIdentity:
		switch id := s.Identity.(type) {
		case Individual:
			checkName(&result, "identity.fullName", id.FullName, t.NameMinLength)
			checkEmail(&result, "identity.email", id.Email)
		case Organization:
			checkName(&result, "identity.organizationName", id.OrganizationName, t.NameMinLength)
			checkEmail(&result, "identity.workEmail", id.WorkEmail)
		default:
			result.Fail("accountType", "Select an account type")
		}
	case StepRole:
		if !s.Role.Valid() {
			result.Fail("role", "Select a role")
		}
	case StepProfile:
		if s.Profile == nil {
			result.Fail("role", "Select a role")
			break
		}
		for _, name := range s.Profile.FieldNames() {
			value, _ := s.Profile.Field(name)
			if !validation.MinLength(value, t.ProfileMinLength) {
				result.Fail("profile."+name, fmt.Sprintf("Please enter at least %d characters", t.ProfileMinLength))
			}
		}
	case StepDeployment:
		if !s.Deployment.Valid() {
			result.Fail("deployment", "Select a hosting environment")
		}
	case StepMemoryTier:
		if !s.MemoryTier.Valid() {
			result.Fail("memoryTier", "Select a performance tier")
		}
	case StepPricing:
		if !s.PricingPlan.Valid() {
			result.Fail("pricingPlan", "Select a plan")
		}
	default:
		result.Fail("step", fmt.Sprintf("%s has no forward transition", step))
	}
	return result
}

// ValidateThrough runs every rule from the first step up to and including
// last and returns the first failing step, or zero when all pass.
func (v Validator) ValidateThrough(last Step, s State) (Step, validation.Result) {
	for step := FirstStep; step <= last; step++ {
		if result := v.Validate(step, s); !result.Valid {
			return step, result
		}
	}
	return 0, validation.NewResult()
}

func checkName(result *validation.Result, field, value string, min int) {
	if !validation.MinLength(value, min) {
		result.Fail(field, fmt.Sprintf("Please enter at least %d characters", min))
	}
}

func checkEmail(result *validation.Result, field, value string) {
	if !validation.Email(value) {
		result.Fail(field, "Please enter a valid email address")
	}
}
