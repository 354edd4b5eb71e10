package wizard

// Identity is the step 2 answer set. Implementations are Individual and
// Organization.
type Identity interface {
	AccountType() AccountType
	// DisplayName is the person or organisation name.
	DisplayName() string
	// ContactEmail is the address the step 2 email rule applies to.
	ContactEmail() string
	// Field returns the value for a JSON field name of this variant.
	Field(name string) (string, bool)
	// FieldNames lists the JSON field names in display order.
	FieldNames() []string

	withField(name, value string) (Identity, bool)
}

// Individual is the identity of a sole operator.
type Individual struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedinUrl"`
}

func (Individual) AccountType() AccountType { return AccountIndividual }
func (i Individual) DisplayName() string    { return i.FullName }
func (i Individual) ContactEmail() string   { return i.Email }
func (Individual) FieldNames() []string     { return []string{"fullName", "email", "linkedinUrl"} }

func (i Individual) Field(name string) (string, bool) {
	switch name {
	case "fullName":
		return i.FullName, true
	case "email":
		return i.Email, true
	case "linkedinUrl":
		return i.LinkedInURL, true
	}
	return "", false
}

func (i Individual) withField(name, value string) (Identity, bool) {
	switch name {
	case "fullName":
		i.FullName = value
	case "email":
		i.Email = value
	case "linkedinUrl":
		i.LinkedInURL = value
	default:
		return i, false
	}
	return i, true
}

// Organization is the identity of a fund, company or institution.
type Organization struct {
	OrganizationName string `json:"organizationName"`
	WorkEmail        string `json:"workEmail"`
	WebsiteURL       string `json:"websiteUrl"`
}

func (Organization) AccountType() AccountType { return AccountOrganization }
func (o Organization) DisplayName() string    { return o.OrganizationName }
func (o Organization) ContactEmail() string   { return o.WorkEmail }
func (Organization) FieldNames() []string {
	return []string{"organizationName", "workEmail", "websiteUrl"}
}

func (o Organization) Field(name string) (string, bool) {
	switch name {
	case "organizationName":
		return o.OrganizationName, true
	case "workEmail":
		return o.WorkEmail, true
	case "websiteUrl":
		return o.WebsiteURL, true
	}
	return "", false
}

func (o Organization) withField(name, value string) (Identity, bool) {
	switch name {
	case "organizationName":
		o.OrganizationName = value
	case "workEmail":
		o.WorkEmail = value
	case "websiteUrl":
		o.WebsiteURL = value
	default:
		return o, false
	}
	return o, true
}

// NewIdentity returns the empty identity variant for t, or nil when t is not
// a known account type.
func NewIdentity(t AccountType) Identity {
	switch t {
	case AccountIndividual:
		return Individual{}
	case AccountOrganization:
		return Organization{}
	}
	return nil
}

// Profile is the step 4 answer pair. Implementations are FounderProfile,
// InvestorProfile and ServicePartnerProfile.
type Profile interface {
	Role() Role
	// Answers returns both free text answers in display order.
	Answers() [2]string
	Field(name string) (string, bool)
	FieldNames() []string

	withField(name, value string) (Profile, bool)
}

// FounderProfile is collected when the role is founder.
type FounderProfile struct {
	UniqueValueProposition string `json:"uniqueValueProposition"`
	CurrentTraction        string `json:"currentTraction"`
}

func (FounderProfile) Role() Role { return RoleFounder }
func (p FounderProfile) Answers() [2]string {
	return [2]string{p.UniqueValueProposition, p.CurrentTraction}
}
func (FounderProfile) FieldNames() []string {
	return []string{"uniqueValueProposition", "currentTraction"}
}

func (p FounderProfile) Field(name string) (string, bool) {
	switch name {
	case "uniqueValueProposition":
		return p.UniqueValueProposition, true
	case "currentTraction":
		return p.CurrentTraction, true
	}
	return "", false
}

func (p FounderProfile) withField(name, value string) (Profile, bool) {
	switch name {
	case "uniqueValueProposition":
		p.UniqueValueProposition = value
	case "currentTraction":
		p.CurrentTraction = value
	default:
		return p, false
	}
	return p, true
}

// InvestorProfile is collected when the role is investor.
type InvestorProfile struct {
	SectorsAndGeographies string `json:"sectorsAndGeographies"`
	CheckSizeAndStage     string `json:"checkSizeAndStage"`
}

func (InvestorProfile) Role() Role { return RoleInvestor }
func (p InvestorProfile) Answers() [2]string {
	return [2]string{p.SectorsAndGeographies, p.CheckSizeAndStage}
}
func (InvestorProfile) FieldNames() []string {
	return []string{"sectorsAndGeographies", "checkSizeAndStage"}
}

func (p InvestorProfile) Field(name string) (string, bool) {
	switch name {
	case "sectorsAndGeographies":
		return p.SectorsAndGeographies, true
	case "checkSizeAndStage":
		return p.CheckSizeAndStage, true
	}
	return "", false
}

func (p InvestorProfile) withField(name, value string) (Profile, bool) {
	switch name {
	case "sectorsAndGeographies":
		p.SectorsAndGeographies = value
	case "checkSizeAndStage":
		p.CheckSizeAndStage = value
	default:
		return p, false
	}
	return p, true
}

// ServicePartnerProfile is collected when the role is service-partner.
type ServicePartnerProfile struct {
	IdealClient     string `json:"idealClient"`
	ServicesOffered string `json:"servicesOffered"`
}

func (ServicePartnerProfile) Role() Role { return RoleServicePartner }
func (p ServicePartnerProfile) Answers() [2]string {
	return [2]string{p.IdealClient, p.ServicesOffered}
}
func (ServicePartnerProfile) FieldNames() []string {
	return []string{"idealClient", "servicesOffered"}
}

func (p ServicePartnerProfile) Field(name string) (string, bool) {
	switch name {
	case "idealClient":
		return p.IdealClient, true
	case "servicesOffered":
		return p.ServicesOffered, true
	}
	return "", false
}

func (p ServicePartnerProfile) withField(name, value string) (Profile, bool) {
	switch name {
	case "idealClient":
		p.IdealClient = value
	case "servicesOffered":
		p.ServicesOffered = value
	default:
		return p, false
	}
	return p, true
}

// NewProfile returns the empty profile variant for r, or nil when r is not a
// known role.
func NewProfile(r Role) Profile {
	switch r {
	case RoleFounder:
		return FounderProfile{}
	case RoleInvestor:
		return InvestorProfile{}
	case RoleServicePartner:
		return ServicePartnerProfile{}
	}
	return nil
}
