package html

// Site is the copy shared by every page.
type Site struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	ContactEmail string `json:"contactEmail"`
	FooterEmail  string `json:"footerEmail"`
	DocsURL      string `json:"docsUrl"`
	Year         int    `json:"year"`
}

// DefaultSite returns the production copy.
func DefaultSite() Site {
	return Site{
		Name:         "Syntrophic",
		Tagline:      "A distributed social and service network where every individual and business has its own AI agent representative",
		ContactEmail: "info@flagshipgamestudio.com",
		FooterEmail:  "info@syntrophic.co",
		DocsURL:      "/skill",
		Year:         2025,
	}
}

// Feature is a gallery card.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultFeatures lists the capabilities shown on the gallery page.
func DefaultFeatures() []Feature {
	return []Feature{
		{Title: "SOC 2 Compliance", Description: "Our product meets SOC 2 standards for secure handling of sensitive information"},
		{Title: "SSO and Domain Capture", Description: "Seamlessly manage users with SSO and domain capture"},
		{Title: "Fine-Grained Permissions", Description: "Effortlessly assign and manage fine-grained permissions with our solution"},
		{Title: "Role-Based Access Control", Description: "Ensure enterprise security and compliance with role-based access management"},
		{Title: "Workspaces Per Organization", Description: "Organize projects effectively with multiple workspaces per organization"},
		{Title: "On-Premise Deployment", Description: "Deploy agents on-premise for enhanced control and security"},
	}
}

// FormState is the server-side status of a single-email form.
type FormState struct {
	// Status is one of idle, submitting, success or error.
	Status  string `json:"status"`
	Message string `json:"message"`
	Email   string `json:"email"`
	// AgentDID is echoed back on the cluster waitlist form.
	AgentDID string `json:"agentDid"`
}

// LandingData carries the state of the landing page forms.
type LandingData struct {
	Subscribe FormState
	Waitlist  FormState
}
