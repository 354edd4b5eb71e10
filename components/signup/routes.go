package signup

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the full mount paths of the signup routes under basePath.
func MountPaths(basePath string, fns ...OptionFn) []string {
	opts := NewOptions(fns...)
	paths := []string{
		mountPath(basePath, opts.OnboardingPath),
		mountPath(basePath, opts.SubscribePath),
		mountPath(basePath, opts.WaitlistPath),
	}
	sort.Strings(paths)
	return paths
}

// RegisterRoutes registers the signup handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers handlers using a pre-built Options value
// and returns the sorted patterns.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("signup: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	if err := resolveDefaults(&opts); err != nil {
		return nil, err
	}

	routes := map[string]route{
		opts.OnboardingPath: onboardingRoute,
		opts.SubscribePath:  subscribeRoute,
		opts.WaitlistPath:   waitlistRoute,
	}
	if len(routes) != 3 {
		return nil, fmt.Errorf("signup: route paths must be distinct")
	}

	patterns := make([]string, 0, len(routes))
	for path, rt := range routes {
		pattern := mountPath(basePath, path)
		mux.Handle(pattern, newHandler(opts, rt))
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
