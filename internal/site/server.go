// Package site assembles the public HTTP surface: marketing pages, the
// server-rendered onboarding wizard, the signup API and the agent skill
// document.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/components/signup"
	"github.com/goliatone/go-syntrophic/components/skill"
	"github.com/goliatone/go-syntrophic/pkg/catalog"
	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/model"
	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/render"
	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
	"github.com/goliatone/go-syntrophic/pkg/renderers/tui"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/visibility"
	"github.com/goliatone/go-syntrophic/pkg/visibility/expr"
	"github.com/goliatone/go-syntrophic/pkg/waitlist"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

// Server holds the dependencies shared by every page. It keeps no per-visitor
// state: wizard answers travel in hidden form fields.
type Server struct {
	catalog    *model.Catalog
	eval       visibility.Evaluator
	pages      *htmlrenderer.Renderer
	// views renders wizard screens by format name ("html", "tui")
	views      *render.Registry
	composer   *notify.Composer
	schema     *validation.SchemaValidator
	thresholds wizard.Thresholds
	skillPath  string
	logger     *zap.Logger

	signup    *signup.Component
	transport dispatch.Transport
}

// Option configures a Server.
type Option func(*Server)

func WithCatalog(c *model.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

func WithEvaluator(e visibility.Evaluator) Option {
	return func(s *Server) { s.eval = e }
}

// WithRenderer sets the page renderer, e.g. one built with a light theme.
func WithRenderer(r *htmlrenderer.Renderer) Option {
	return func(s *Server) { s.pages = r }
}

func WithComposer(c *notify.Composer) Option {
	return func(s *Server) { s.composer = c }
}

func WithSchema(v *validation.SchemaValidator) Option {
	return func(s *Server) { s.schema = v }
}

func WithThresholds(t wizard.Thresholds) Option {
	return func(s *Server) { s.thresholds = t }
}

func WithSkillPath(path string) Option {
	return func(s *Server) { s.skillPath = path }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Server that delivers notifications through mailer.
func New(mailer notify.Mailer, opts ...Option) (*Server, error) {
	if mailer == nil {
		return nil, errors.New("site: mailer is required")
	}
	s := &Server{
		thresholds: wizard.DefaultThresholds(),
		skillPath:  skill.DefaultPath,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	var err error
	if s.catalog == nil {
		if s.catalog, err = catalog.Default(); err != nil {
			return nil, fmt.Errorf("site: load catalog: %w", err)
		}
	}
	if s.eval == nil {
		s.eval = expr.New()
	}
	if s.pages == nil {
		if s.pages, err = htmlrenderer.New(); err != nil {
			return nil, fmt.Errorf("site: page renderer: %w", err)
		}
	}
	text, err := tui.New(
		tui.WithCatalog(s.catalog),
		tui.WithEvaluator(s.eval),
		tui.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("site: text renderer: %w", err)
	}
	s.views = render.NewRegistry()
	for _, renderer := range []render.Renderer{s.pages, text} {
		if err := s.views.Register(renderer); err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
	}

	if s.schema == nil {
		if s.schema, err = validation.DefaultSchemaValidator(); err != nil {
			return nil, fmt.Errorf("site: request schema: %w", err)
		}
	}

	s.signup = signup.New(
		signup.WithMailer(mailer),
		signup.WithComposer(s.composer),
		signup.WithSchema(s.schema),
		signup.WithLogger(s.logger.Named("signup")),
	)
	if s.transport, err = s.signup.Transport(); err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /features", s.handleGallery)
	mux.HandleFunc("GET /onboarding", s.handleOnboarding)
	mux.HandleFunc("POST /onboarding", s.handleOnboarding)
	mux.HandleFunc("POST /subscribe", s.handleForm(waitlist.Subscribe))
	mux.HandleFunc("POST /waitlist", s.handleForm(waitlist.Cluster))
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(htmlrenderer.StaticFS())))
	mux.HandleFunc("GET /openapi.yaml", s.handleOpenAPI)
	mux.HandleFunc("GET /healthz", handleHealth)

	if _, err := s.signup.RegisterRoutes(mux, ""); err != nil {
		return nil, err
	}
	if _, err := skill.RegisterRoutes(mux,
		skill.WithPath(s.skillPath),
		skill.WithRenderer(s.pages),
		skill.WithLogger(s.logger.Named("skill")),
	); err != nil {
		return nil, err
	}
	return logRequests(s.logger, mux), nil
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(s.schema.Spec())
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) writePage(w http.ResponseWriter, code int, body []byte, err error) {
	s.write(w, code, s.pages.ContentType(), body, err)
}

func (s *Server) write(w http.ResponseWriter, code int, contentType string, body []byte, err error) {
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
