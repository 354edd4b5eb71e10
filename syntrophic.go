// Package syntrophic is the top-level entry point for embedding the
// onboarding wizard: it re-exports the common types and wires the default
// catalog, visibility rules and HTML renderer together.
package syntrophic

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-syntrophic/pkg/catalog"
	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/render"
	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
	"github.com/goliatone/go-syntrophic/pkg/visibility/expr"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

// State is the wizard answer set; alias exported via the root package for
// convenience.
type State = wizard.State

// Payload is the JSON body posted to /api/onboarding.
type Payload = wizard.Payload

// RenderOptions describes per-request overrides such as the form action and
// extra hidden fields.
type RenderOptions = render.RenderOptions

// NewWizard returns a wizard that submits through transport with the
// optimistic policy. Use dispatch.NewHTTPTransport to talk to a running site.
func NewWizard(transport dispatch.Transport, options ...wizard.Option) *wizard.Wizard {
	return wizard.New(dispatch.New(transport), options...)
}

// RenderHTML renders the current screen of state as an HTML page using the
// embedded catalog. It is the simplest entry point for callers that serve the
// wizard from their own handlers.
func RenderHTML(ctx context.Context, state State, opts RenderOptions, options ...htmlrenderer.Option) ([]byte, error) {
	c, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	view, err := render.BuildView(c, state, expr.New(), render.BuildOptions{})
	if err != nil {
		return nil, err
	}
	renderer, err := htmlrenderer.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, view, opts)
}

// WithThemeSelector resolves name/variant through a go-theme selector and
// returns the renderer option carrying the result.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) (htmlrenderer.Option, error) {
	cfg, err := htmlrenderer.SelectTheme(selector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("syntrophic: %w", err)
	}
	return htmlrenderer.WithTheme(cfg), nil
}
