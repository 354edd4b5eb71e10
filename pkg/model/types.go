package model

// Kind selects how a step is drawn.
type Kind string

const (
	KindSelect  Kind = "select"
	KindFields  Kind = "fields"
	KindPricing Kind = "pricing"
	KindStatus  Kind = "status"
)

// InputType mirrors the HTML input types the wizard uses.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputURL      InputType = "url"
	InputTextArea InputType = "textarea"
)

// Catalog is the full description of the wizard screens.
type Catalog struct {
	Steps       []Step     `json:"steps" yaml:"steps"`
	Plans       []Plan     `json:"plans" yaml:"plans"`
	BillingNote string     `json:"billingNote,omitempty" yaml:"billingNote,omitempty"`
	Status      StatusCopy `json:"status" yaml:"status"`
	Navigation  Navigation `json:"navigation" yaml:"navigation"`
}

// Step describes one screen. Key names the state field a select or pricing
// step writes to.
type Step struct {
	Number   int      `json:"number" yaml:"number"`
	Key      string   `json:"key,omitempty" yaml:"key,omitempty"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Fields   []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Option is a selection card.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Field is a free text input.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Input       InputType `json:"input,omitempty" yaml:"input,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Rows        int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	VisibleWhen string    `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
}

// Plan is a pricing tier. Prices are whole US dollars.
type Plan struct {
	Value        string `json:"value" yaml:"value"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Features     string `json:"features" yaml:"features"`
	MonthlyPrice int    `json:"monthlyPrice" yaml:"monthlyPrice"`
	YearlyPrice  int    `json:"yearlyPrice" yaml:"yearlyPrice"`
}

// StatusCopy holds the text of the terminal screen.
type StatusCopy struct {
	Messages []string `json:"messages" yaml:"messages"`
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"body" yaml:"body"`
	Notice   string   `json:"notice,omitempty" yaml:"notice,omitempty"`
	HomeText string   `json:"homeText,omitempty" yaml:"homeText,omitempty"`
}

// Navigation holds button labels.
type Navigation struct {
	Back    string `json:"back" yaml:"back"`
	Next    string `json:"next" yaml:"next"`
	Confirm string `json:"confirm" yaml:"confirm"`
}

// Step returns the step with the given number.
func (c *Catalog) Step(number int) (Step, bool) {
	if c == nil {
		return Step{}, false
	}
	for _, step := range c.Steps {
		if step.Number == number {
			return step, true
		}
	}
	return Step{}, false
}

// Plan returns the plan with the given value.
func (c *Catalog) Plan(value string) (Plan, bool) {
	if c == nil {
		return Plan{}, false
	}
	for _, plan := range c.Plans {
		if plan.Value == value {
			return plan, true
		}
	}
	return Plan{}, false
}

// OptionTitle returns the display title for value on the given step, or value
// itself when unknown.
func (s Step) OptionTitle(value string) string {
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt.Title
		}
	}
	return value
}
