package signup

import "net/http"

// Component bundles the three signup handlers with shared configuration.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handlers returns the handlers keyed by their route path.
func (c *Component) Handlers() map[string]http.Handler {
	opts := c.Options()
	return map[string]http.Handler{
		opts.OnboardingPath: newHandler(opts, onboardingRoute),
		opts.SubscribePath:  newHandler(opts, subscribeRoute),
		opts.WaitlistPath:   newHandler(opts, waitlistRoute),
	}
}

// RegisterRoutes registers every handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}
