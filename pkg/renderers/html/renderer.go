// Package html renders the marketing pages and the server-side onboarding
// wizard with pongo2 templates embedded in the binary.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-syntrophic/pkg/render"
	rendertemplate "github.com/goliatone/go-syntrophic/pkg/render/template"
	"github.com/goliatone/go-syntrophic/pkg/render/template/pongo"
)

const (
	pageLayout  = "layout"
	pageLanding = "landing"
	pageGallery = "gallery"
	pageWizard  = "wizard"
	pageSkill   = "skill"

	defaultAction = "/onboarding"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	site             Site
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme sets the resolved brand theme. Defaults to the dark variant of
// DefaultManifest.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		if cfg != nil {
			c.theme = cfg
		}
	}
}

// WithSite overrides the site copy shared by every page.
func WithSite(site Site) Option {
	return func(cfg *config) {
		cfg.site = site
	}
}

// Renderer renders wizard views and the static marketing pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     themeContext
	site      Site
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{site: DefaultSite()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.theme == nil {
		resolved, err := ResolveTheme(DefaultManifest(), VariantDark)
		if err != nil {
			return nil, err
		}
		cfg.theme = resolved
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     buildThemeContext(cfg.theme),
		site:      cfg.site,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the wizard page for view.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	action := options.Action
	if action == "" {
		action = defaultAction
	}

	hidden := render.SortedHiddenFields(render.MergeHiddenFields(options.HiddenFields, view.Hidden...))
	view.FormErrors = render.MergeFormErrors(view.FormErrors, options.FormErrors...)
	return r.page(ctx, pageWizard, map[string]any{
		"title":  view.Title,
		"view":   view,
		"action": action,
		"hidden": hidden,
	})
}

// Landing renders the home page with its subscribe and waitlist forms.
func (r *Renderer) Landing(ctx context.Context, data LandingData) ([]byte, error) {
	return r.page(ctx, pageLanding, map[string]any{
		"title":     r.site.Name + " Agent Network",
		"subscribe": data.Subscribe,
		"waitlist":  data.Waitlist,
	})
}

// Gallery renders the feature gallery.
func (r *Renderer) Gallery(ctx context.Context, features []Feature) ([]byte, error) {
	if features == nil {
		features = DefaultFeatures()
	}
	return r.page(ctx, pageGallery, map[string]any{
		"title":    "Our Focus",
		"features": features,
	})
}

// Skill wraps pre-rendered SKILL.md markup in the site layout. body must
// already be sanitized.
func (r *Renderer) Skill(ctx context.Context, body string) ([]byte, error) {
	return r.page(ctx, pageSkill, map[string]any{
		"title": "Agent Skill",
		"body":  body,
	})
}

func (r *Renderer) page(ctx context.Context, name string, data map[string]any) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data["site"] = r.site
	data["theme"] = r.theme

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}
