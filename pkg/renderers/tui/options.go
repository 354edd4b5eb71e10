package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/model"
	"github.com/goliatone/go-syntrophic/pkg/visibility"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
	BackLabel   string
}

// DefaultTheme returns plain prefixes.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:  "",
		ErrorPrefix: "! ",
		BackLabel:   "< Back",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithCatalog sets the step catalog driving the prompts.
func WithCatalog(catalog *model.Catalog) Option {
	return func(r *Renderer) {
		if catalog != nil {
			r.catalog = catalog
		}
	}
}

// WithEvaluator overrides the visibility evaluator for variant fields.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(r *Renderer) {
		if eval != nil {
			r.eval = eval
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the logger used for failed submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
