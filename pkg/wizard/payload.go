package wizard

import (
	"encoding/json"
	"fmt"
)

// Payload is the nested onboarding submission. Only the selected identity and
// profile variants are present.
type Payload struct {
	AccountType AccountType `json:"accountType"`
	Identity    Identity    `json:"identity"`
	Role        Role        `json:"role"`
	Profile     Profile     `json:"profile"`
	Deployment  Deployment  `json:"deployment"`
	MemoryTier  MemoryTier  `json:"memoryTier"`
	PricingPlan PricingPlan `json:"pricingPlan"`
}

// Payload builds the submission from s. Every choice must be made; text
// lengths are not checked here.
func (s State) Payload() (Payload, error) {
	switch {
	case s.Identity == nil || !s.AccountType.Valid():
		return Payload{}, fmt.Errorf("%w: account type", ErrIncomplete)
	case s.Profile == nil || !s.Role.Valid():
		return Payload{}, fmt.Errorf("%w: role", ErrIncomplete)
	case !s.Deployment.Valid():
		return Payload{}, fmt.Errorf("%w: deployment", ErrIncomplete)
	case !s.MemoryTier.Valid():
		return Payload{}, fmt.Errorf("%w: memory tier", ErrIncomplete)
	case !s.PricingPlan.Valid():
		return Payload{}, fmt.Errorf("%w: pricing plan", ErrIncomplete)
	}
	return Payload{
		AccountType: s.AccountType,
		Identity:    s.Identity,
		Role:        s.Role,
		Profile:     s.Profile,
		Deployment:  s.Deployment,
		MemoryTier:  s.MemoryTier,
		PricingPlan: s.PricingPlan,
	}, nil
}

// State returns a state on the confirm step holding the payload answers.
func (p Payload) State() State {
	s := NewState()
	s.Step = ConfirmStep
	s.AccountType = p.AccountType
	s.Identity = p.Identity
	s.Role = p.Role
	s.Profile = p.Profile
	s.Deployment = p.Deployment
	s.MemoryTier = p.MemoryTier
	s.PricingPlan = p.PricingPlan
	return s
}

// UnmarshalJSON decodes the variant objects according to accountType and
// role. Keys that belong to other variants are ignored.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccountType AccountType     `json:"accountType"`
		Identity    json.RawMessage `json:"identity"`
		Role        Role            `json:"role"`
		Profile     json.RawMessage `json:"profile"`
		Deployment  Deployment      `json:"deployment"`
		MemoryTier  MemoryTier      `json:"memoryTier"`
		PricingPlan PricingPlan     `json:"pricingPlan"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	identity, err := decodeIdentity(raw.AccountType, raw.Identity)
	if err != nil {
		return err
	}
	profile, err := decodeProfile(raw.Role, raw.Profile)
	if err != nil {
		return err
	}

	*p = Payload{
		AccountType: raw.AccountType,
		Identity:    identity,
		Role:        raw.Role,
		Profile:     profile,
		Deployment:  raw.Deployment,
		MemoryTier:  raw.MemoryTier,
		PricingPlan: raw.PricingPlan,
	}
	return nil
}

func decodeIdentity(t AccountType, raw json.RawMessage) (Identity, error) {
	var target any
	switch t {
	case AccountIndividual:
		target = &Individual{}
	case AccountOrganization:
		target = &Organization{}
	default:
		return nil, fmt.Errorf("%w: account type %q", ErrInvalidChoice, t)
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("wizard: decode identity: %w", err)
		}
	}
	switch v := target.(type) {
	case *Individual:
		return *v, nil
	default:
		return *target.(*Organization), nil
	}
}

func decodeProfile(r Role, raw json.RawMessage) (Profile, error) {
	var target any
	switch r {
	case RoleFounder:
		target = &FounderProfile{}
	case RoleInvestor:
		target = &InvestorProfile{}
	case RoleServicePartner:
		target = &ServicePartnerProfile{}
	default:
		return nil, fmt.Errorf("%w: role %q", ErrInvalidChoice, r)
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("wizard: decode profile: %w", err)
		}
	}
	switch v := target.(type) {
	case *FounderProfile:
		return *v, nil
	case *InvestorProfile:
		return *v, nil
	default:
		return *target.(*ServicePartnerProfile), nil
	}
}
