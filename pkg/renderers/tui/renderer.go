// Package tui drives the onboarding wizard in a terminal. Each screen is
// built with render.BuildView, so the terminal flow shows the same steps,
// variant fields and validation messages as the HTML wizard.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/catalog"
	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/model"
	"github.com/goliatone/go-syntrophic/pkg/render"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/visibility"
	"github.com/goliatone/go-syntrophic/pkg/visibility/expr"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

// Renderer implements render.Renderer for terminal sessions and runs the
// interactive wizard loop.
type Renderer struct {
	driver  PromptDriver
	catalog *model.Catalog
	eval    visibility.Evaluator
	theme   Theme
	logger  *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver on stdout, the
// embedded catalog).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		theme:  DefaultTheme(),
		eval:   expr.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("tui: load catalog: %w", err)
		}
		r.catalog = c
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format produced by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints a plain-text summary of view, useful for logs and
// non-interactive terminals.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "Step %d of %d (%d%%)\n", view.Step, view.Total, view.Percent)
	fmt.Fprintln(&b, view.Title)
	if view.Subtitle != "" {
		fmt.Fprintln(&b, view.Subtitle)
	}
	for _, msg := range render.MergeFormErrors(view.FormErrors, opts.FormErrors...) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, msg)
	}

	for _, option := range view.Options {
		fmt.Fprintf(&b, "  %s %s\n", marker(option.Selected), optionLabel(option.Title, option.Description))
	}
	for _, field := range view.Fields {
		value := field.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "  %s: %s\n", fieldLabel(field), value)
		for _, msg := range field.Errors {
			fmt.Fprintf(&b, "    %s%s\n", r.theme.ErrorPrefix, msg)
		}
	}
	for _, plan := range view.Plans {
		fmt.Fprintf(&b, "  %s %s\n", marker(plan.Selected), planLabel(plan))
	}
	if view.BillingNote != "" {
		fmt.Fprintln(&b, view.BillingNote)
	}
	if view.Status != nil {
		writeStatus(&b, view.Status)
	}
	if !view.Nav.Hidden {
		back := "[" + view.Nav.BackLabel + "]"
		if view.Nav.BackDisabled {
			back = "(" + view.Nav.BackLabel + ")"
		}
		fmt.Fprintf(&b, "%s [%s]\n", back, view.Nav.NextLabel)
	}
	return b.Bytes(), nil
}

// Run prompts for each step until the wizard reaches the status screen, then
// prints it. It returns the submission result of the confirm step, if any.
func (r *Renderer) Run(ctx context.Context, w *wizard.Wizard) (*dispatch.Result, error) {
	if w == nil {
		return nil, errors.New("tui: wizard is nil")
	}
	if r.catalog == nil {
		return nil, ErrNoCatalog
	}

	var (
		submission *dispatch.Result
		issues     []validation.Issue
	)
	for {
		if err := ctx.Err(); err != nil {
			return submission, err
		}
		state := w.State()
		view, err := render.BuildView(r.catalog, state, r.eval, render.BuildOptions{
			Validator: w.Validator(),
			Issues:    issues,
		})
		if err != nil {
			return submission, err
		}
		issues = nil

		if err := r.info(ctx, fmt.Sprintf("\nStep %d of %d: %s", view.Step, view.Total, view.Title)); err != nil {
			return submission, err
		}
		if view.Subtitle != "" {
			if err := r.info(ctx, view.Subtitle); err != nil {
				return submission, err
			}
		}
		for _, msg := range view.FormErrors {
			if err := r.info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return submission, err
			}
		}

		var nav navigation
		switch view.Kind {
		case model.KindStatus:
			return submission, r.showStatus(ctx, view.Status)
		case model.KindSelect:
			nav, err = r.promptOptions(ctx, w, view)
		case model.KindFields:
			nav, err = r.promptFields(ctx, w, view)
		case model.KindPricing:
			nav, err = r.promptPlans(ctx, w, view)
		default:
			err = fmt.Errorf("tui: unsupported step kind %q", view.Kind)
		}
		if err != nil {
			return submission, err
		}

		switch nav {
		case navBack:
			if _, err := w.Retreat(); err != nil {
				return submission, err
			}
		case navStay:
		case navNext:
			outcome, err := w.Advance(ctx)
			if outcome.Submission != nil {
				submission = outcome.Submission
			}
			var stepErr *wizard.StepError
			switch {
			case errors.As(err, &stepErr):
				issues = stepErr.Issues
			case err != nil:
				return submission, err
			case submission != nil && submission.Failed():
				r.logger.Warn("onboarding submission failed",
					zap.Stringer("policy", submission.Policy),
					zap.Error(submission.Err),
				)
			}
		}
	}
}

type navigation int

const (
	navNext navigation = iota
	navBack
	navStay
)

func (r *Renderer) promptOptions(ctx context.Context, w *wizard.Wizard, view render.View) (navigation, error) {
	labels := make([]string, 0, len(view.Options)+1)
	selected := 0
	for i, option := range view.Options {
		labels = append(labels, optionLabel(option.Title, option.Description))
		if option.Selected {
			selected = i
		}
	}
	idx, back, err := r.selectWithBack(ctx, view, labels, selected)
	if err != nil || back {
		return navBack, err
	}
	if err := w.Set(view.Key, view.Options[idx].Value); err != nil {
		return navStay, err
	}
	return navNext, nil
}

func (r *Renderer) promptPlans(ctx context.Context, w *wizard.Wizard, view render.View) (navigation, error) {
	labels := make([]string, 0, len(view.Plans)+1)
	selected := 0
	for i, plan := range view.Plans {
		labels = append(labels, planLabel(plan))
		if plan.Selected {
			selected = i
		}
	}
	if view.BillingNote != "" {
		if err := r.info(ctx, view.BillingNote); err != nil {
			return navStay, err
		}
	}
	idx, back, err := r.selectWithBack(ctx, view, labels, selected)
	if err != nil || back {
		return navBack, err
	}
	if err := w.Set(view.Key, view.Plans[idx].Value); err != nil {
		return navStay, err
	}
	if !view.Nav.Confirm {
		return navNext, nil
	}
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: view.Nav.NextLabel + "?",
		Default: true,
	})
	if err != nil {
		return navStay, err
	}
	if !ok {
		return navStay, nil
	}
	return navNext, nil
}

func (r *Renderer) promptFields(ctx context.Context, w *wizard.Wizard, view render.View) (navigation, error) {
	for _, field := range view.Fields {
		for _, msg := range field.Errors {
			if err := r.info(ctx, r.theme.ErrorPrefix+field.Label+": "+msg); err != nil {
				return navStay, err
			}
		}
		help := strings.Join(field.Errors, "; ")
		var (
			value string
			err   error
		)
		if field.Input == model.InputTextArea {
			value, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: fieldLabel(field),
				Default: field.Value,
				Help:    help,
			})
		} else {
			value, err = r.driver.Input(ctx, InputConfig{
				Message: fieldLabel(field),
				Default: field.Value,
				Help:    help,
			})
		}
		if err != nil {
			return navStay, err
		}
		if err := w.Set(field.Name, strings.TrimSpace(value)); err != nil {
			return navStay, err
		}
	}

	if view.Nav.BackDisabled {
		return navNext, nil
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Next",
		Options: []string{view.Nav.NextLabel, r.theme.BackLabel},
	})
	if err != nil {
		return navStay, err
	}
	if idx == 1 {
		return navBack, nil
	}
	return navNext, nil
}

// selectWithBack appends the back entry unless the step is the first one.
func (r *Renderer) selectWithBack(ctx context.Context, view render.View, labels []string, selected int) (int, bool, error) {
	options := labels
	if !view.Nav.BackDisabled {
		options = append(append([]string(nil), labels...), r.theme.BackLabel)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      view.Title,
		Options:      options,
		DefaultIndex: selected,
		Help:         view.Subtitle,
	})
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(options) {
		return 0, false, fmt.Errorf("tui: selection %d out of range", idx)
	}
	if idx >= len(labels) {
		return 0, true, nil
	}
	return idx, false, nil
}

func (r *Renderer) showStatus(ctx context.Context, status *render.StatusView) error {
	if status == nil {
		return nil
	}
	var b bytes.Buffer
	writeStatus(&b, status)
	return r.info(ctx, strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func writeStatus(b *bytes.Buffer, status *render.StatusView) {
	for _, msg := range status.Messages {
		fmt.Fprintf(b, "> %s\n", msg)
	}
	fmt.Fprintln(b, status.Title)
	fmt.Fprintln(b, status.Body)
	fmt.Fprintln(b, status.Notice)
}

func marker(selected bool) string {
	if selected {
		return "(x)"
	}
	return "( )"
}

func optionLabel(title, description string) string {
	if description == "" {
		return title
	}
	return title + ": " + description
}

func planLabel(plan render.PlanView) string {
	return fmt.Sprintf("%s %s/mo or %s/yr: %s", plan.Name, plan.Monthly, plan.Yearly, plan.Description)
}

func fieldLabel(field render.FieldView) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}
