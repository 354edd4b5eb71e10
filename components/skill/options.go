package skill

import (
	"go.uber.org/zap"

	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
)

const (
	DefaultPath      = "public/SKILL.md"
	DefaultRawRoute  = "/SKILL.md"
	DefaultPageRoute = "/skill"
)

type Options struct {
	// Path is the markdown file on disk. It is read on every request so the
	// document can be edited without a restart.
	Path      string
	RawRoute  string
	PageRoute string

	Renderer *htmlrenderer.Renderer
	Logger   *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Path:      DefaultPath,
		RawRoute:  DefaultRawRoute,
		PageRoute: DefaultPageRoute,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.RawRoute == "" {
		opts.RawRoute = DefaultRawRoute
	}
	if opts.PageRoute == "" {
		opts.PageRoute = DefaultPageRoute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithPath(path string) OptionFn {
	return func(o *Options) { o.Path = path }
}

func WithRawRoute(route string) OptionFn {
	return func(o *Options) { o.RawRoute = route }
}

func WithPageRoute(route string) OptionFn {
	return func(o *Options) { o.PageRoute = route }
}

// WithRenderer enables the HTML page. Without it only the raw route is
// registered.
func WithRenderer(r *htmlrenderer.Renderer) OptionFn {
	return func(o *Options) { o.Renderer = r }
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) { o.Logger = logger }
}
