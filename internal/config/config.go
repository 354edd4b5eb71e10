// Package config loads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

const (
	MailDriverResend = "resend"
	MailDriverLog    = "log"
)

// Config is the process configuration. Every field has an environment
// variable; cobra flags may override Addr and Endpoint afterwards.
type Config struct {
	Addr          string        `env:"SYNTROPHIC_ADDR" envDefault:":8080"`
	Endpoint      string        `env:"SYNTROPHIC_ENDPOINT" envDefault:"http://localhost:8080"`
	ShutdownGrace time.Duration `env:"SYNTROPHIC_SHUTDOWN_GRACE" envDefault:"10s"`

	LogLevel string `env:"SYNTROPHIC_LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"SYNTROPHIC_LOG_DEV"`

	MailDriver   string   `env:"SYNTROPHIC_MAIL_DRIVER" envDefault:"resend"`
	ResendAPIKey string   `env:"RESEND_API_KEY"`
	MailFrom     string   `env:"SYNTROPHIC_MAIL_FROM" envDefault:"Syntrophic Notifications <info@flagshipgamestudio.com>"`
	MailTo       []string `env:"SYNTROPHIC_MAIL_TO" envDefault:"info@flagshipgamestudio.com" envSeparator:","`

	NameMinLength    int `env:"SYNTROPHIC_NAME_MIN_LENGTH" envDefault:"2"`
	ProfileMinLength int `env:"SYNTROPHIC_PROFILE_MIN_LENGTH" envDefault:"10"`

	SkillPath    string `env:"SYNTROPHIC_SKILL_PATH" envDefault:"public/SKILL.md"`
	ThemeVariant string `env:"SYNTROPHIC_THEME_VARIANT" envDefault:"dark"`
}

// Parse reads the environment into a Config without validating it. Client
// commands use it since they never send mail.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.MailDriver = strings.ToLower(strings.TrimSpace(cfg.MailDriver))
	return cfg, nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	var errs []error
	switch c.MailDriver {
	case MailDriverResend:
		if strings.TrimSpace(c.ResendAPIKey) == "" {
			errs = append(errs, errors.New("config: RESEND_API_KEY is required for the resend mail driver"))
		}
	case MailDriverLog:
	default:
		errs = append(errs, fmt.Errorf("config: unknown mail driver %q", c.MailDriver))
	}
	if c.NameMinLength < 1 {
		errs = append(errs, fmt.Errorf("config: name minimum length must be positive, got %d", c.NameMinLength))
	}
	if c.ProfileMinLength < 1 {
		errs = append(errs, fmt.Errorf("config: profile minimum length must be positive, got %d", c.ProfileMinLength))
	}
	if c.ShutdownGrace < 0 {
		errs = append(errs, errors.New("config: shutdown grace must not be negative"))
	}
	return errors.Join(errs...)
}

// Thresholds returns the wizard minimum lengths.
func (c Config) Thresholds() wizard.Thresholds {
	return wizard.Thresholds{
		NameMinLength:    c.NameMinLength,
		ProfileMinLength: c.ProfileMinLength,
	}
}
