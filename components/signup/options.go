package signup

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/validation"
	"github.com/goliatone/go-syntrophic/pkg/waitlist"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

const defaultMaxBodyBytes = 64 << 10

type GuardFunc func(r *http.Request) error

type Options struct {
	OnboardingPath string
	SubscribePath  string
	WaitlistPath   string
	MaxBodyBytes   int64
	Guard          GuardFunc

	Mailer   notify.Mailer
	Composer *notify.Composer
	Schema   *validation.SchemaValidator
	Logger   *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		OnboardingPath: wizard.DefaultEndpoint,
		SubscribePath:  waitlist.SubscribePath,
		WaitlistPath:   waitlist.ClusterWaitlistPath,
		MaxBodyBytes:   defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.OnboardingPath == "" {
		opts.OnboardingPath = wizard.DefaultEndpoint
	}
	if opts.SubscribePath == "" {
		opts.SubscribePath = waitlist.SubscribePath
	}
	if opts.WaitlistPath == "" {
		opts.WaitlistPath = waitlist.ClusterWaitlistPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithOnboardingPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnboardingPath = path
	}
}

func WithSubscribePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubscribePath = path
	}
}

func WithWaitlistPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.WaitlistPath = path
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithMailer sets the delivery backend. Required.
func WithMailer(m notify.Mailer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Mailer = m
	}
}

// WithComposer sets the email composer. Defaults to notify.NewComposer().
func WithComposer(c *notify.Composer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Composer = c
	}
}

// WithSchema sets the request body validator. Defaults to the embedded
// OpenAPI document.
func WithSchema(v *validation.SchemaValidator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schema = v
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
