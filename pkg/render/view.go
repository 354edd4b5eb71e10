package render

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-syntrophic/pkg/model"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/visibility"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

// View is the renderer-neutral description of the current wizard screen.
type View struct {
	Step     int
	Total    int
	Percent  int
	Kind     model.Kind
	Key      string
	Title    string
	Subtitle string

	Options     []OptionView
	Fields      []FieldView
	Plans       []PlanView
	BillingNote string
	Status      *StatusView

	Nav        NavView
	Hidden     []HiddenField
	FormErrors []string
	// Valid reports whether the current step would pass validation.
	Valid bool
}

// OptionView is a selection card.
type OptionView struct {
	Value       string
	Title       string
	Description string
	Icon        string
	Selected    bool
}

// FieldView is a visible text input with its current value and issues.
type FieldView struct {
	Name        string
	Label       string
	Placeholder string
	Input       model.InputType
	Required    bool
	Rows        int
	Value       string
	Errors      []string
}

// PlanView is a pricing card with formatted prices.
type PlanView struct {
	Value       string
	Name        string
	Description string
	Features    string
	Monthly     string
	Yearly      string
	Selected    bool
}

// StatusView is the terminal screen copy.
type StatusView struct {
	Messages []string
	Title    string
	Body     string
	Notice   string
	HomeText string
	// Submission is the delivery status recorded on the state.
	Submission string
}

// NavView describes the back/continue buttons.
type NavView struct {
	Hidden       bool
	BackLabel    string
	BackDisabled bool
	NextLabel    string
	Confirm      bool
}

// BuildOptions tune BuildView.
type BuildOptions struct {
	// Validator evaluates the current step; zero value uses default thresholds.
	Validator wizard.Validator
	// ShowIssues attaches validation issues to fields. Servers enable it after
	// a rejected advance so untouched forms are not covered in errors.
	ShowIssues bool
	// Issues are placed with MapIssues: on a visible field, on the step's
	// choice, or above the step. Callers pass the issues of a rejected advance.
	Issues []validation.Issue
	// Extras feed `extras.` lookups in visibility rules.
	Extras map[string]any
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders whole dollars with thousands separators, e.g. $1,490.
func FormatPrice(dollars int) string {
	return pricePrinter.Sprintf("$%d", dollars)
}

// BuildView selects the screen for s.Step from catalog and fills it with the
// state's answers. Variant fields are kept only when their visibility rule
// holds for the current answers.
func BuildView(catalog *model.Catalog, s wizard.State, eval visibility.Evaluator, opts BuildOptions) (View, error) {
	if catalog == nil {
		return View{}, fmt.Errorf("render: catalog is required")
	}
	if eval == nil {
		eval = visibility.Always
	}
	step, ok := catalog.Step(int(s.Step))
	if !ok {
		return View{}, fmt.Errorf("render: catalog has no step %d", int(s.Step))
	}

	result := opts.Validator.Validate(s.Step, s)
	issues := map[string][]string{}
	if opts.ShowIssues {
		for path, messages := range result.FieldMessages() {
			issues[path] = messages
		}
	}

	view := View{
		Step:     step.Number,
		Total:    wizard.TotalSteps,
		Percent:  (step.Number*100 + wizard.TotalSteps/2) / wizard.TotalSteps,
		Kind:     step.Kind,
		Key:      step.Key,
		Title:    step.Title,
		Subtitle: step.Subtitle,
		Valid:    result.Valid,
		Nav: NavView{
			Hidden:       s.Step == wizard.StepStatus,
			BackLabel:    catalog.Navigation.Back,
			BackDisabled: s.Step == wizard.FirstStep,
			NextLabel:    catalog.Navigation.Next,
			Confirm:      s.Step == wizard.ConfirmStep,
		},
	}
	if view.Nav.Confirm {
		view.Nav.NextLabel = catalog.Navigation.Confirm
	}

	visible := map[string]struct{}{}
	ctx := visibility.Context{Values: s.Values(), Extras: opts.Extras}

	switch step.Kind {
	case model.KindSelect:
		current := s.Get(step.Key)
		for _, opt := range step.Options {
			view.Options = append(view.Options, OptionView{
				Value:       opt.Value,
				Title:       opt.Title,
				Description: opt.Description,
				Icon:        opt.Icon,
				Selected:    opt.Value == current,
			})
		}
		visible[step.Key] = struct{}{}
	case model.KindFields:
		for _, field := range step.Fields {
			show, err := eval.Eval(field.Name, field.VisibleWhen, ctx)
			if err != nil {
				return View{}, fmt.Errorf("render: field %s: %w", field.Name, err)
			}
			if !show {
				continue
			}
			view.Fields = append(view.Fields, FieldView{
				Name:        field.Name,
				Label:       field.Label,
				Placeholder: field.Placeholder,
				Input:       field.Input,
				Required:    field.Required,
				Rows:        field.Rows,
				Value:       s.Get(field.Name),
				Errors:      issues[field.Name],
			})
			visible[field.Name] = struct{}{}
		}
	case model.KindPricing:
		current := s.Get(step.Key)
		for _, plan := range catalog.Plans {
			view.Plans = append(view.Plans, PlanView{
				Value:       plan.Value,
				Name:        plan.Name,
				Description: plan.Description,
				Features:    plan.Features,
				Monthly:     FormatPrice(plan.MonthlyPrice),
				Yearly:      FormatPrice(plan.YearlyPrice),
				Selected:    plan.Value == current,
			})
		}
		view.BillingNote = catalog.BillingNote
		visible[step.Key] = struct{}{}
	case model.KindStatus:
		view.Status = &StatusView{
			Messages:   append([]string(nil), catalog.Status.Messages...),
			Title:      catalog.Status.Title,
			Body:       catalog.Status.Body,
			Notice:     catalog.Status.Notice,
			HomeText:   catalog.Status.HomeText,
			Submission: string(s.Status),
		}
	}

	if step.Key != "" && opts.ShowIssues {
		view.FormErrors = append(view.FormErrors, issues[step.Key]...)
	}
	if len(opts.Issues) > 0 {
		mapped := MapIssues(view, opts.Issues)
		for i := range view.Fields {
			field := &view.Fields[i]
			field.Errors = MergeFormErrors(field.Errors, mapped.Fields[field.Name]...)
		}
		view.FormErrors = MergeFormErrors(view.FormErrors, mapped.Fields[view.Key]...)
		view.FormErrors = MergeFormErrors(view.FormErrors, mapped.Form...)
	}

	hidden := map[string]string{}
	for key, value := range s.FlatValues() {
		if _, shown := visible[key]; !shown {
			hidden[key] = value
		}
	}
	view.Hidden = SortedHiddenFields(hidden)
	return view, nil
}
