package wizard

import "fmt"

// Step is a wizard screen, numbered 1..8.
type Step int

const (
	StepAccountType Step = iota + 1
	StepIdentity
	StepRole
	StepProfile
	StepDeployment
	StepMemoryTier
	StepPricing
	StepStatus
)

const (
	// FirstStep is where every wizard starts.
	FirstStep = StepAccountType
	// ConfirmStep is the last input screen; advancing from it submits.
	ConfirmStep = StepPricing
	// TotalSteps counts every screen including the status screen.
	TotalSteps = int(StepStatus)
)

var stepNames = [...]string{
	StepAccountType: "account-type",
	StepIdentity:    "identity",
	StepRole:        "role",
	StepProfile:     "profile",
	StepDeployment:  "deployment",
	StepMemoryTier:  "memory-tier",
	StepPricing:     "pricing",
	StepStatus:      "status",
}

func (s Step) String() string {
	if s.Valid() {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is within 1..8.
func (s Step) Valid() bool {
	return s >= StepAccountType && s <= StepStatus
}

// AccountType selects the identity variant.
type AccountType string

const (
	AccountIndividual   AccountType = "individual"
	AccountOrganization AccountType = "organization"
)

// Valid reports whether a is a known account type.
func (a AccountType) Valid() bool {
	return a == AccountIndividual || a == AccountOrganization
}

// Role selects the profile variant.
type Role string

const (
	RoleFounder        Role = "founder"
	RoleInvestor       Role = "investor"
	RoleServicePartner Role = "service-partner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleFounder, RoleInvestor, RoleServicePartner:
		return true
	}
	return false
}

// Deployment is where the agent runs.
type Deployment string

const (
	DeploymentCloud   Deployment = "cloud"
	DeploymentPrivate Deployment = "private"
)

// Valid reports whether d is a known deployment.
func (d Deployment) Valid() bool {
	return d == DeploymentCloud || d == DeploymentPrivate
}

// Label is the human readable name used in notifications.
func (d Deployment) Label() string {
	switch d {
	case DeploymentCloud:
		return "Cloud Managed (AWS)"
	case DeploymentPrivate:
		return "Private Vault (Local)"
	}
	return string(d)
}

// MemoryTier is the agent's context depth.
type MemoryTier string

const (
	MemoryStandard     MemoryTier = "standard"
	MemoryProfessional MemoryTier = "professional"
)

// Valid reports whether m is a known tier.
func (m MemoryTier) Valid() bool {
	return m == MemoryStandard || m == MemoryProfessional
}

// Label is the human readable name used in notifications.
func (m MemoryTier) Label() string {
	switch m {
	case MemoryStandard:
		return "Standard"
	case MemoryProfessional:
		return "Professional"
	}
	return string(m)
}

// PricingPlan is the chosen subscription tier.
type PricingPlan string

const (
	PlanCore          PricingPlan = "core"
	PlanProfessional  PricingPlan = "professional"
	PlanInstitutional PricingPlan = "institutional"
)

// Valid reports whether p is a known plan.
func (p PricingPlan) Valid() bool {
	switch p {
	case PlanCore, PlanProfessional, PlanInstitutional:
		return true
	}
	return false
}
