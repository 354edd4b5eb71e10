package notify

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	rendertemplate "github.com/goliatone/go-syntrophic/pkg/render/template"
	"github.com/goliatone/go-syntrophic/pkg/render/template/pongo"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplatesFS returns the embedded email templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

const (
	templateOnboarding = "onboarding"
	templateSubscribe  = "subscribe"
	templateWaitlist   = "cluster_waitlist"

	subjectOnboarding = "New Agent Onboarding Request - "
	subjectSubscribe  = "New Light Paper Request"
	subjectWaitlist   = "New Cluster Waitlist Signup"
)

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithSender overrides the From address.
func WithSender(from string) ComposerOption {
	return func(c *Composer) {
		if strings.TrimSpace(from) != "" {
			c.from = from
		}
	}
}

// WithRecipients overrides the To addresses.
func WithRecipients(to ...string) ComposerOption {
	return func(c *Composer) {
		var out []string
		for _, addr := range to {
			if addr = strings.TrimSpace(addr); addr != "" {
				out = append(out, addr)
			}
		}
		if len(out) > 0 {
			c.to = out
		}
	}
}

// WithClock sets the time source for submission timestamps.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithReferenceGenerator sets the reference id source.
func WithReferenceGenerator(fn func() string) ComposerOption {
	return func(c *Composer) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithTemplates replaces the email templates.
func WithTemplates(files fs.FS) ComposerOption {
	return func(c *Composer) {
		if files != nil {
			c.templateFS = files
		}
	}
}

// Composer renders notification emails. User supplied values are escaped by
// the templates and the final markup is passed through a bluemonday policy.
type Composer struct {
	from       string
	to         []string
	now        func() time.Time
	newID      func() string
	templateFS fs.FS
	templates  rendertemplate.TemplateRenderer
	policy     *bluemonday.Policy
}

// NewComposer constructs a Composer with the embedded templates.
func NewComposer(opts ...ComposerOption) (*Composer, error) {
	c := &Composer{
		from:  DefaultFrom,
		to:    []string{DefaultRecipient},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.templateFS == nil {
		c.templateFS = TemplatesFS()
	}

	engine, err := pongo.New(pongo.WithFS(c.templateFS), pongo.WithExtension(".html"))
	if err != nil {
		return nil, fmt.Errorf("notify: configure templates: %w", err)
	}
	c.templates = engine
	c.policy = bluemonday.UGCPolicy()
	return c, nil
}

// Onboarding renders the notification for a completed wizard.
func (c *Composer) Onboarding(p wizard.Payload) (Message, error) {
	if p.Identity == nil || p.Profile == nil {
		return Message{}, errors.New("notify: onboarding payload is incomplete")
	}
	return c.compose(subjectOnboarding+p.Identity.DisplayName(), templateOnboarding, map[string]any{
		"payload":    p,
		"deployment": p.Deployment.Label(),
		"memoryTier": p.MemoryTier.Label(),
	})
}

// Subscribe renders the light paper request notification.
func (c *Composer) Subscribe(email string) (Message, error) {
	return c.compose(subjectSubscribe, templateSubscribe, map[string]any{
		"email": strings.TrimSpace(email),
	})
}

// ClusterWaitlist renders the cluster waitlist notification. agentDID is
// optional.
func (c *Composer) ClusterWaitlist(email, agentDID string) (Message, error) {
	return c.compose(subjectWaitlist, templateWaitlist, map[string]any{
		"email":    strings.TrimSpace(email),
		"agentDid": strings.TrimSpace(agentDID),
	})
}

func (c *Composer) compose(subject, name string, data map[string]any) (Message, error) {
	reference := c.newID()
	data["reference"] = reference
	data["submitted"] = c.now().UTC().Format(time.RFC3339)

	body, err := c.templates.RenderTemplate(name, data)
	if err != nil {
		return Message{}, fmt.Errorf("notify: render %s: %w", name, err)
	}
	return Message{
		From:      c.from,
		To:        append([]string(nil), c.to...),
		Subject:   subject,
		HTML:      c.policy.Sanitize(body),
		Reference: reference,
	}, nil
}
