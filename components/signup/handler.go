package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/waitlist"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

const (
	schemaOnboarding = "OnboardingRequest"
	schemaSubscribe  = "SubscribeRequest"
	schemaWaitlist   = "ClusterWaitlistRequest"

	msgInvalidEmail     = "Invalid email address"
	msgOnboardingFailed = "Failed to process onboarding request"
	msgSubscribeFailed  = "Failed to process subscription"
	msgWaitlistFailed   = "Failed to process request"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// route is the per-endpoint part of a handler: the schema the body must
// satisfy and how a valid body becomes an email.
type route struct {
	name    string
	schema  string
	failure string
	// invalid is the 400 message. Routes without one answer schema
	// violations with their failure message and a 500.
	invalid string
	compose func(c *notify.Composer, body []byte) (notify.Message, error)
}

var (
	onboardingRoute = route{
		name:    "onboarding",
		schema:  schemaOnboarding,
		failure: msgOnboardingFailed,
		compose: func(c *notify.Composer, body []byte) (notify.Message, error) {
			var payload wizard.Payload
			if err := json.Unmarshal(body, &payload); err != nil {
				return notify.Message{}, StatusError{Code: http.StatusBadRequest, Err: err}
			}
			return c.Onboarding(payload)
		},
	}
	subscribeRoute = route{
		name:    "subscribe",
		schema:  schemaSubscribe,
		failure: msgSubscribeFailed,
		invalid: msgInvalidEmail,
		compose: func(c *notify.Composer, body []byte) (notify.Message, error) {
			var req waitlist.Request
			if err := json.Unmarshal(body, &req); err != nil {
				return notify.Message{}, err
			}
			return c.Subscribe(req.Email)
		},
	}
	waitlistRoute = route{
		name:    "cluster-waitlist",
		schema:  schemaWaitlist,
		failure: msgWaitlistFailed,
		invalid: msgInvalidEmail,
		compose: func(c *notify.Composer, body []byte) (notify.Message, error) {
			var req waitlist.Request
			if err := json.Unmarshal(body, &req); err != nil {
				return notify.Message{}, err
			}
			return c.ClusterWaitlist(req.Email, req.AgentDID)
		},
	}
)

// OnboardingHandler handles POST /api/onboarding.
func OnboardingHandler(fns ...OptionFn) http.Handler {
	return newHandler(NewOptions(fns...), onboardingRoute)
}

// SubscribeHandler handles POST /api/subscribe.
func SubscribeHandler(fns ...OptionFn) http.Handler {
	return newHandler(NewOptions(fns...), subscribeRoute)
}

// WaitlistHandler handles POST /api/cluster-waitlist.
func WaitlistHandler(fns ...OptionFn) http.Handler {
	return newHandler(NewOptions(fns...), waitlistRoute)
}

func newHandler(opts Options, rt route) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	setupErr := resolveDefaults(&opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		logger := opts.Logger.With(zap.String("route", rt.name))
		if setupErr != nil {
			logger.Error("signup handler misconfigured", zap.Error(setupErr))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: rt.failure})
			return
		}
		code, resp := serve(r.Context(), opts, rt, http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes), logger)
		writeJSON(w, code, resp)
	})
}

func serve(ctx context.Context, opts Options, rt route, body io.Reader, logger *zap.Logger) (int, any) {
	raw, err := io.ReadAll(body)
	if err != nil {
		logger.Warn("read request body", zap.Error(err))
		return http.StatusInternalServerError, errorResponse{Error: rt.failure}
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&decoded); err != nil {
		logger.Warn("decode request body", zap.Error(err))
		return http.StatusInternalServerError, errorResponse{Error: rt.failure}
	}

	if result := opts.Schema.Validate(rt.schema, decoded); !result.Valid {
		logger.Info("rejected request", zap.Any("issues", result.Issues))
		return rt.reject()
	}

	msg, err := rt.compose(opts.Composer, raw)
	if err != nil {
		var httpErr HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode() == http.StatusBadRequest {
			logger.Info("rejected request", zap.Error(err))
			return rt.reject()
		}
		logger.Error("compose notification", zap.Error(err))
		return http.StatusInternalServerError, errorResponse{Error: rt.failure}
	}

	id, err := opts.Mailer.Send(ctx, msg)
	if err != nil {
		logger.Error("send notification", zap.String("reference", msg.Reference), zap.Error(err))
		return http.StatusInternalServerError, errorResponse{Error: rt.failure}
	}
	logger.Info("notification sent",
		zap.String("subject", msg.Subject),
		zap.String("reference", msg.Reference),
		zap.String("messageId", id),
	)
	return http.StatusOK, successResponse{Success: true}
}

func (rt route) reject() (int, any) {
	if rt.invalid == "" {
		return http.StatusInternalServerError, errorResponse{Error: rt.failure}
	}
	return http.StatusBadRequest, errorResponse{Error: rt.invalid}
}

// resolveDefaults fills the schema and composer once per handler.
func resolveDefaults(opts *Options) error {
	if opts.Mailer == nil {
		return errors.New("signup: mailer is required")
	}
	if opts.Schema == nil {
		schema, err := validation.DefaultSchemaValidator()
		if err != nil {
			return fmt.Errorf("signup: load request schema: %w", err)
		}
		opts.Schema = schema
	}
	if opts.Composer == nil {
		composer, err := notify.NewComposer()
		if err != nil {
			return fmt.Errorf("signup: default composer: %w", err)
		}
		opts.Composer = composer
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	writeJSON(w, code, errorResponse{Error: http.StatusText(code)})
}
