package render

// RenderOptions carry per-request data that does not belong to the wizard
// state itself.
type RenderOptions struct {
	// Action is the form target for HTML renderers. Defaults to "/onboarding".
	Action string
	// HiddenFields are extra inputs (for example a CSRF token) merged with the
	// state fields already present on the View.
	HiddenFields map[string]string
	// FormErrors are messages not tied to a field, shown above the step.
	FormErrors []string
}
