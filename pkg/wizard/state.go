package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
)

// State is every answer the wizard has collected plus the current screen. A
// zero State is not valid; use NewState.
type State struct {
	Step        Step
	AccountType AccountType
	Identity    Identity
	Role        Role
	Profile     Profile
	Deployment  Deployment
	MemoryTier  MemoryTier
	PricingPlan PricingPlan
	Status      dispatch.Status
}

// NewState returns a state on the first screen with nothing chosen.
func NewState() State {
	return State{Step: FirstStep, Status: dispatch.StatusIdle}
}

// SetAccountType selects the identity variant. Choosing a different type
// replaces the identity with an empty value of the new variant.
func (s *State) SetAccountType(t AccountType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: account type %q", ErrInvalidChoice, t)
	}
	if s.AccountType == t && s.Identity != nil {
		return nil
	}
	s.AccountType = t
	s.Identity = NewIdentity(t)
	return nil
}

// SetIdentityField sets a field of the selected identity variant by its JSON
// name, for example "fullName" or "workEmail".
func (s *State) SetIdentityField(name, value string) error {
	if s.Identity == nil {
		return fmt.Errorf("%w: choose an account type first", ErrNoVariant)
	}
	next, ok := s.Identity.withField(name, value)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrFieldNotInVariant, s.AccountType, name)
	}
	s.Identity = next
	return nil
}

// SetRole selects the profile variant. Choosing a different role replaces the
// profile with an empty value of the new variant.
func (s *State) SetRole(r Role) error {
	if !r.Valid() {
		return fmt.Errorf("%w: role %q", ErrInvalidChoice, r)
	}
	if s.Role == r && s.Profile != nil {
		return nil
	}
	s.Role = r
	s.Profile = NewProfile(r)
	return nil
}

// SetProfileField sets a field of the selected profile variant by its JSON
// name.
func (s *State) SetProfileField(name, value string) error {
	if s.Profile == nil {
		return fmt.Errorf("%w: choose a role first", ErrNoVariant)
	}
	next, ok := s.Profile.withField(name, value)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrFieldNotInVariant, s.Role, name)
	}
	s.Profile = next
	return nil
}

// SetDeployment records the step 5 choice.
func (s *State) SetDeployment(d Deployment) error {
	if !d.Valid() {
		return fmt.Errorf("%w: deployment %q", ErrInvalidChoice, d)
	}
	s.Deployment = d
	return nil
}

// SetMemoryTier records the step 6 choice.
func (s *State) SetMemoryTier(m MemoryTier) error {
	if !m.Valid() {
		return fmt.Errorf("%w: memory tier %q", ErrInvalidChoice, m)
	}
	s.MemoryTier = m
	return nil
}

// SetPricingPlan records the step 7 choice.
func (s *State) SetPricingPlan(p PricingPlan) error {
	if !p.Valid() {
		return fmt.Errorf("%w: pricing plan %q", ErrInvalidChoice, p)
	}
	s.PricingPlan = p
	return nil
}

// Set assigns a value by its path: a choice key ("accountType", "role",
// "deployment", "memoryTier", "pricingPlan") or a variant field
// ("identity.email", "profile.idealClient").
func (s *State) Set(path, value string) error {
	switch path {
	case "accountType":
		return s.SetAccountType(AccountType(value))
	case "role":
		return s.SetRole(Role(value))
	case "deployment":
		return s.SetDeployment(Deployment(value))
	case "memoryTier":
		return s.SetMemoryTier(MemoryTier(value))
	case "pricingPlan":
		return s.SetPricingPlan(PricingPlan(value))
	}
	if name, ok := strings.CutPrefix(path, "identity."); ok {
		return s.SetIdentityField(name, value)
	}
	if name, ok := strings.CutPrefix(path, "profile."); ok {
		return s.SetProfileField(name, value)
	}
	return fmt.Errorf("wizard: unknown field %q", path)
}

// Get returns the value stored under path, using the same paths as Set.
func (s State) Get(path string) string {
	switch path {
	case "accountType":
		return string(s.AccountType)
	case "role":
		return string(s.Role)
	case "deployment":
		return string(s.Deployment)
	case "memoryTier":
		return string(s.MemoryTier)
	case "pricingPlan":
		return string(s.PricingPlan)
	}
	if name, ok := strings.CutPrefix(path, "identity."); ok && s.Identity != nil {
		v, _ := s.Identity.Field(name)
		return v
	}
	if name, ok := strings.CutPrefix(path, "profile."); ok && s.Profile != nil {
		v, _ := s.Profile.Field(name)
		return v
	}
	return ""
}

// Values returns a nested view of the state for rule evaluation and
// templates. Unset choices are empty strings; variants are maps keyed by JSON
// field name.
func (s State) Values() map[string]any {
	values := map[string]any{
		"step":        int(s.Step),
		"accountType": string(s.AccountType),
		"role":        string(s.Role),
		"deployment":  string(s.Deployment),
		"memoryTier":  string(s.MemoryTier),
		"pricingPlan": string(s.PricingPlan),
		"status":      string(s.Status),
	}
	if s.Identity != nil {
		identity := make(map[string]any, 3)
		for _, name := range s.Identity.FieldNames() {
			identity[name], _ = s.Identity.Field(name)
		}
		values["identity"] = identity
	}
	if s.Profile != nil {
		profile := make(map[string]any, 2)
		for _, name := range s.Profile.FieldNames() {
			profile[name], _ = s.Profile.Field(name)
		}
		values["profile"] = profile
	}
	return values
}

// FlatValues returns the set answers keyed by path plus "step". It is the
// inverse of FromValues and feeds hidden form fields.
func (s State) FlatValues() map[string]string {
	out := map[string]string{"step": strconv.Itoa(int(s.Step))}
	put := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	put("accountType", string(s.AccountType))
	put("role", string(s.Role))
	put("deployment", string(s.Deployment))
	put("memoryTier", string(s.MemoryTier))
	put("pricingPlan", string(s.PricingPlan))
	if s.Identity != nil {
		for _, name := range s.Identity.FieldNames() {
			v, _ := s.Identity.Field(name)
			put("identity."+name, v)
		}
	}
	if s.Profile != nil {
		for _, name := range s.Profile.FieldNames() {
			v, _ := s.Profile.Field(name)
			put("profile."+name, v)
		}
	}
	return out
}

// FromValues rebuilds a state from flat values as produced by FlatValues and
// submitted by HTML forms. Variant fields that do not belong to the chosen
// variant are dropped. Unknown keys are ignored; invalid choices and steps are
// errors.
func FromValues(values map[string]string) (State, error) {
	state := NewState()
	if raw := strings.TrimSpace(values["step"]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !Step(n).Valid() {
			return State{}, fmt.Errorf("wizard: invalid step %q", raw)
		}
		state.Step = Step(n)
	}

	for _, key := range []string{"accountType", "role", "deployment", "memoryTier", "pricingPlan"} {
		if v := strings.TrimSpace(values[key]); v != "" {
			if err := state.Set(key, v); err != nil {
				return State{}, err
			}
		}
	}

	if state.Identity != nil {
		for _, name := range state.Identity.FieldNames() {
			if v, ok := values["identity."+name]; ok {
				_ = state.SetIdentityField(name, v)
			}
		}
	}
	if state.Profile != nil {
		for _, name := range state.Profile.FieldNames() {
			if v, ok := values["profile."+name]; ok {
				_ = state.SetProfileField(name, v)
			}
		}
	}
	return state, nil
}
