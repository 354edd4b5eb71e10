package notify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/testsupport"
)

func fixedComposer(t *testing.T, opts ...notify.ComposerOption) *notify.Composer {
	t.Helper()
	base := []notify.ComposerOption{
		notify.WithClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }),
		notify.WithReferenceGenerator(func() string { return "ref-123" }),
	}
	c, err := notify.NewComposer(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	return c
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected %q in:\n%s", fragment, output)
		}
	}
}

func TestComposer_OnboardingIndividual(t *testing.T) {
	payload, err := testsupport.FounderState(t).Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	msg, err := fixedComposer(t).Onboarding(payload)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if msg.Subject != "New Agent Onboarding Request - Jo Example" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.From != notify.DefaultFrom || len(msg.To) != 1 || msg.To[0] != notify.DefaultRecipient {
		t.Fatalf("unexpected addressing %q -> %v", msg.From, msg.To)
	}
	if msg.Reference != "ref-123" {
		t.Fatalf("unexpected reference %q", msg.Reference)
	}
	assertContains(t, msg.HTML,
		"2025-03-01T12:00:00Z",
		"ref-123",
		"Jo Example",
		"jo@x.co",
		"<strong>LinkedIn:</strong> Not provided",
		"Agents that negotiate term sheets",
		"Cloud Managed (AWS)",
		"<strong>Memory Tier:</strong> Professional",
		"<strong>Pricing Plan:</strong> core",
	)
	if strings.Contains(msg.HTML, "Organization:") {
		t.Fatalf("organization fields leaked into an individual request")
	}
}

func TestComposer_OnboardingOrganization(t *testing.T) {
	payload, err := testsupport.OrganizationState(t).Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	msg, err := fixedComposer(t).Onboarding(payload)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if msg.Subject != "New Agent Onboarding Request - Acme Capital Partners" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	assertContains(t, msg.HTML,
		"deals@acmecapital.com",
		"https://acmecapital.com",
		"Fintech and AI across Europe",
		"Private Vault (Local)",
		"<strong>Memory Tier:</strong> Standard",
	)
}

func TestComposer_EscapesUserInput(t *testing.T) {
	msg, err := fixedComposer(t).Subscribe(`<script>alert(1)</script>@x.co`)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("expected script tag to be neutralised:\n%s", msg.HTML)
	}
	if msg.Subject != "New Light Paper Request" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
}

func TestComposer_ClusterWaitlist(t *testing.T) {
	c := fixedComposer(t, notify.WithRecipients(" ops@example.com ", ""), notify.WithSender("Bot <bot@example.com>"))

	msg, err := c.ClusterWaitlist("a@b.co", "")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if msg.Subject != "New Cluster Waitlist Signup" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.From != "Bot <bot@example.com>" || len(msg.To) != 1 || msg.To[0] != "ops@example.com" {
		t.Fatalf("unexpected addressing %q -> %v", msg.From, msg.To)
	}
	assertContains(t, msg.HTML, "a@b.co", "<strong>Agent DID:</strong> Not provided")

	msg, err = c.ClusterWaitlist("a@b.co", "did:example:42")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	assertContains(t, msg.HTML, "did:example:42")
}

func TestComposer_DefaultReferenceIsUnique(t *testing.T) {
	c, err := notify.NewComposer()
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	first, err := c.Subscribe("a@b.co")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	second, err := c.Subscribe("a@b.co")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if first.Reference == "" || first.Reference == second.Reference {
		t.Fatalf("expected distinct references, got %q and %q", first.Reference, second.Reference)
	}
}
