package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendOption configures a ResendMailer.
type ResendOption func(*resendConfig)

type resendConfig struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient sets the HTTP client used to reach the Resend API.
func WithHTTPClient(client *http.Client) ResendOption {
	return func(cfg *resendConfig) {
		if client != nil {
			cfg.httpClient = client
		}
	}
}

// WithBaseURL points the mailer at a different API host.
func WithBaseURL(raw string) ResendOption {
	return func(cfg *resendConfig) {
		cfg.baseURL = strings.TrimSpace(raw)
	}
}

// ResendMailer sends through the Resend transactional email API.
type ResendMailer struct {
	client *resend.Client
}

var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer builds a mailer for apiKey.
func NewResendMailer(apiKey string, opts ...ResendOption) (*ResendMailer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("notify: resend api key is required")
	}
	cfg := resendConfig{httpClient: http.DefaultClient}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	client := resend.NewCustomClient(cfg.httpClient, apiKey)
	if cfg.baseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("notify: parse base url: %w", err)
		}
		client.BaseURL = base
	}
	return &ResendMailer{client: client}, nil
}

// Send delivers msg and returns the Resend message id.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	if msg.Reference != "" {
		req.Headers = map[string]string{"X-Entity-Ref-ID": msg.Reference}
	}

	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("notify: resend: %w", err)
	}
	if sent == nil {
		return "", errors.New("notify: resend returned no message")
	}
	return sent.Id, nil
}
