// Package notify composes and delivers the notification emails sent to the
// team when someone signs up.
package notify

import (
	"context"
	"errors"
	"strings"
)

const (
	// DefaultFrom is the sender used for every notification.
	DefaultFrom = "Syntrophic Notifications <info@flagshipgamestudio.com>"
	// DefaultRecipient receives every notification.
	DefaultRecipient = "info@flagshipgamestudio.com"
)

// ErrNoRecipients is returned when a message has no To address.
var ErrNoRecipients = errors.New("notify: message has no recipients")

// Message is a rendered email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	// Reference is a unique id included in the body and the provider headers.
	Reference string
}

// Validate checks the fields every provider requires.
func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return errors.New("notify: message has no sender")
	}
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("notify: message has no subject")
	}
	return nil
}

// Mailer delivers a message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// MailerFunc adapts a function into a Mailer.
type MailerFunc func(ctx context.Context, msg Message) (string, error)

// Send delegates to the underlying function.
func (fn MailerFunc) Send(ctx context.Context, msg Message) (string, error) {
	return fn(ctx, msg)
}
