package skill

import (
	"fmt"
	"net/http"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the raw document and, when a renderer is configured,
// the HTML page. It returns the registered patterns.
func RegisterRoutes(mux Mux, fns ...OptionFn) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("skill: missing mux")
	}
	opts := NewOptions(fns...)
	if opts.RawRoute == opts.PageRoute {
		return nil, fmt.Errorf("skill: raw and page routes must differ")
	}
	reuse := func(o *Options) { *o = opts }

	mux.Handle(opts.RawRoute, RawHandler(reuse))
	patterns := []string{opts.RawRoute}
	if opts.Renderer != nil {
		mux.Handle(opts.PageRoute, PageHandler(reuse))
		patterns = append(patterns, opts.PageRoute)
	}
	return patterns, nil
}
