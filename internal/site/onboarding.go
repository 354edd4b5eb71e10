package site

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/render"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

const (
	navBack = "back"

	// formatParam selects the wizard renderer by name; html when absent.
	formatParam = "format"

	msgStaleForm = "Your answers could not be read. Please start again."
)

// handleOnboarding serves the wizard one screen per request. GET starts a
// fresh session; POST rebuilds the state from the submitted fields and applies
// the nav button that was pressed.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	if _, err := s.wizardRenderer(r); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	state := wizard.NewState()
	var screen wizardScreen

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		values := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			values[key] = r.PostForm.Get(key)
		}

		restored, err := wizard.FromValues(values)
		if err != nil {
			s.logger.Info("discarding unreadable wizard state", zap.Error(err))
			s.renderWizard(w, r, http.StatusBadRequest, wizard.NewState(), wizardScreen{formErrors: []string{msgStaleForm}})
			return
		}

		wz := wizard.New(
			dispatch.New(s.transport, dispatch.WithLogger(s.logger)),
			wizard.WithState(restored),
			wizard.WithThresholds(s.thresholds),
			wizard.WithLogger(s.logger),
		)
		screen = s.navigate(r, wz, values["nav"])
		state = wz.State()
	}

	code := http.StatusOK
	if len(screen.issues) > 0 {
		code = http.StatusUnprocessableEntity
	}
	s.renderWizard(w, r, code, state, screen)
}

// wizardScreen is the feedback shown with the next screen.
type wizardScreen struct {
	issues     []validation.Issue
	formErrors []string
}

// navigate applies nav to wz. Issues from a screen other than the current one
// are labelled with that screen's title.
func (s *Server) navigate(r *http.Request, wz *wizard.Wizard, nav string) wizardScreen {
	if nav == navBack {
		if _, err := wz.Retreat(); err != nil && !errors.Is(err, wizard.ErrTerminal) {
			s.logger.Warn("wizard retreat", zap.Error(err))
		}
		return wizardScreen{}
	}
	// anything else, including enter in a text field, continues
	current := wz.Step()
	_, err := wz.Advance(r.Context())
	var stepErr *wizard.StepError
	switch {
	case err == nil, errors.Is(err, wizard.ErrTerminal):
		return wizardScreen{}
	case errors.As(err, &stepErr):
		if stepErr.Step == current {
			return wizardScreen{issues: stepErr.Issues}
		}
		label := fmt.Sprintf("Step %d", int(stepErr.Step))
		if step, ok := s.catalog.Step(int(stepErr.Step)); ok {
			label = step.Title
		}
		issues := make([]validation.Issue, 0, len(stepErr.Issues))
		for _, issue := range stepErr.Issues {
			issue.Message = label + ": " + issue.Message
			issues = append(issues, issue)
		}
		return wizardScreen{issues: issues}
	default:
		s.logger.Error("wizard advance", zap.Error(err))
		return wizardScreen{formErrors: []string{msgDeliveryFailed}}
	}
}

func (s *Server) renderWizard(w http.ResponseWriter, r *http.Request, code int, state wizard.State, screen wizardScreen) {
	renderer, err := s.wizardRenderer(r)
	if err != nil {
		s.writePage(w, code, nil, err)
		return
	}
	view, err := render.BuildView(s.catalog, state, s.eval, render.BuildOptions{
		Validator: wizard.NewValidator(s.thresholds),
		Issues:    screen.issues,
	})
	if err != nil {
		s.writePage(w, code, nil, err)
		return
	}
	body, err := renderer.Render(r.Context(), view, render.RenderOptions{
		Action:     "/onboarding",
		FormErrors: screen.formErrors,
	})
	s.write(w, code, renderer.ContentType(), body, err)
}

func (s *Server) wizardRenderer(r *http.Request) (render.Renderer, error) {
	name := r.URL.Query().Get(formatParam)
	if name == "" {
		name = s.pages.Name()
	}
	return s.views.Get(name)
}
