package signup

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
)

// Transport returns a dispatch.Transport that runs posted bodies through the
// same schema check, composition and delivery as the HTTP routes, without a
// network hop. Non-200 outcomes become *dispatch.ResponseError.
func (c *Component) Transport() (dispatch.Transport, error) {
	opts := c.Options()
	if err := resolveDefaults(&opts); err != nil {
		return nil, err
	}
	routes := map[string]route{
		opts.OnboardingPath: onboardingRoute,
		opts.SubscribePath:  subscribeRoute,
		opts.WaitlistPath:   waitlistRoute,
	}
	return dispatch.TransportFunc(func(ctx context.Context, path string, body []byte) error {
		rt, ok := routes[path]
		if !ok {
			return fmt.Errorf("signup: no route for %s", path)
		}
		logger := opts.Logger.With(zap.String("route", rt.name), zap.Bool("inProcess", true))
		code, resp := serve(ctx, opts, rt, bytes.NewReader(body), logger)
		if code == http.StatusOK {
			return nil
		}
		statusErr := &dispatch.ResponseError{Path: path, Code: code}
		if e, ok := resp.(errorResponse); ok {
			statusErr.Message = e.Error
		}
		return statusErr
	}), nil
}
