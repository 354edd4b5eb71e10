package site

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/testsupport"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

type stubMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg notify.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return "id", m.err
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestServer(t *testing.T, mailer notify.Mailer, opts ...Option) *httptest.Server {
	t.Helper()
	skillPath := filepath.Join(t.TempDir(), "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("# Skill\n"), 0o644); err != nil {
		t.Fatalf("write skill: %v", err)
	}
	srv, err := New(mailer, append([]Option{WithSkillPath(skillPath)}, opts...)...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	handler, err := srv.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func postForm(t *testing.T, ts *httptest.Server, path string, values url.Values) (int, string) {
	t.Helper()
	resp, err := ts.Client().PostForm(ts.URL+path, values)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(data)
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
}

func formValues(s wizard.State, nav string) url.Values {
	values := url.Values{}
	for key, value := range s.FlatValues() {
		values.Set(key, value)
	}
	values.Set("nav", nav)
	return values
}

func TestNew_RequiresMailer(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected missing mailer to fail")
	}
}

func TestStaticRoutes(t *testing.T) {
	ts := newTestServer(t, &stubMailer{})

	code, body := get(t, ts, "/")
	if code != http.StatusOK {
		t.Fatalf("landing: expected 200, got %d", code)
	}
	assertContains(t, body, `action="/subscribe"`, `action="/waitlist"`, `href="/onboarding"`)

	code, body = get(t, ts, "/features")
	if code != http.StatusOK {
		t.Fatalf("gallery: expected 200, got %d", code)
	}

	code, body = get(t, ts, "/healthz")
	if code != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("healthz: got %d %s", code, body)
	}

	code, body = get(t, ts, "/openapi.yaml")
	if code != http.StatusOK {
		t.Fatalf("openapi: expected 200, got %d", code)
	}
	assertContains(t, body, "/api/onboarding", "/api/cluster-waitlist")

	if code, _ = get(t, ts, "/assets/site.css"); code != http.StatusOK {
		t.Fatalf("assets: expected 200, got %d", code)
	}
	if code, body = get(t, ts, "/SKILL.md"); code != http.StatusOK || body != "# Skill\n" {
		t.Fatalf("skill: got %d %q", code, body)
	}
	if code, _ = get(t, ts, "/skill"); code != http.StatusOK {
		t.Fatalf("skill page: expected 200, got %d", code)
	}
	if code, _ = get(t, ts, "/nope"); code != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", code)
	}
}

func TestOnboarding_StepByStep(t *testing.T) {
	ts := newTestServer(t, &stubMailer{})

	code, body := get(t, ts, "/onboarding")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	assertContains(t, body, "Step 1 of 8", `name="accountType"`)

	code, body = postForm(t, ts, "/onboarding", url.Values{"step": {"1"}, "nav": {"next"}})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an empty step, got %d", code)
	}
	assertContains(t, body, "Step 1 of 8", "Select an account type")

	code, body = postForm(t, ts, "/onboarding", url.Values{"step": {"1"}, "accountType": {"organization"}, "nav": {"next"}})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	assertContains(t, body, "Step 2 of 8", `name="identity.organizationName"`, `type="hidden" name="accountType" value="organization"`)

	_, body = postForm(t, ts, "/onboarding", url.Values{"step": {"2"}, "accountType": {"organization"}, "nav": {"back"}})
	assertContains(t, body, "Step 1 of 8")
}

func TestOnboarding_TextFormat(t *testing.T) {
	ts := newTestServer(t, &stubMailer{})

	resp, err := ts.Client().Get(ts.URL + "/onboarding?format=tui")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	code, body := readBody(t, resp)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	assertContains(t, body, "Step 1 of 8 (13%)")

	code, body = postForm(t, ts, "/onboarding?format=tui", url.Values{"step": {"1"}, "nav": {"next"}})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	assertContains(t, body, "! Select an account type")

	if code, _ = get(t, ts, "/onboarding?format=pdf"); code != http.StatusNotFound {
		t.Fatalf("unknown format: expected 404, got %d", code)
	}
}

func TestOnboarding_ConfirmSubmitsAndShowsStatus(t *testing.T) {
	mailer := &stubMailer{}
	ts := newTestServer(t, mailer)

	code, body := postForm(t, ts, "/onboarding", formValues(testsupport.FounderState(t), "next"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d:\n%s", code, body)
	}
	assertContains(t, body, "Step 8 of 8", "Network Capacity Reached", `data-submission="success"`)
	if mailer.count() != 1 {
		t.Fatalf("expected one email, got %d", mailer.count())
	}
}

func TestOnboarding_DeliveryFailureStillAdvances(t *testing.T) {
	mailer := &stubMailer{err: errors.New("provider down")}
	ts := newTestServer(t, mailer)

	code, body := postForm(t, ts, "/onboarding", formValues(testsupport.OrganizationState(t), "next"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	assertContains(t, body, "Network Capacity Reached", `data-submission="error"`)
}

func TestOnboarding_ConfirmReportsEarlierSteps(t *testing.T) {
	mailer := &stubMailer{}
	ts := newTestServer(t, mailer)

	values := formValues(testsupport.FounderState(t), "next")
	values.Set("identity.email", "not-an-email")

	code, body := postForm(t, ts, "/onboarding", values)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	assertContains(t, body, "Step 7 of 8", "Identity Details: Please enter a valid email address")
	if mailer.count() != 0 {
		t.Fatalf("expected no email for an invalid submission")
	}
}

func TestOnboarding_UnreadableState(t *testing.T) {
	ts := newTestServer(t, &stubMailer{})

	code, body := postForm(t, ts, "/onboarding", url.Values{"step": {"42"}})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	assertContains(t, body, "Step 1 of 8", "could not be read")
}

func TestLandingForms(t *testing.T) {
	mailer := &stubMailer{}
	ts := newTestServer(t, mailer)

	code, body := postForm(t, ts, "/subscribe", url.Values{"email": {"bad"}})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	assertContains(t, body, "Please enter a valid email address.", "Retry")
	if mailer.count() != 0 {
		t.Fatalf("expected no email for an invalid address")
	}

	code, body = postForm(t, ts, "/subscribe", url.Values{"email": {"reader@example.com"}})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	assertContains(t, body, "Thanks! Check your inbox.")

	failing := newTestServer(t, &stubMailer{err: errors.New("provider down")})
	code, body = postForm(t, failing, "/waitlist", url.Values{"email": {"agent@example.com"}, "agentDid": {"did:example:9"}})
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
	assertContains(t, body, "Something went wrong.", "Retry", `value="did:example:9"`)
}

func TestSignupAPIIsMounted(t *testing.T) {
	mailer := &stubMailer{}
	ts := newTestServer(t, mailer)

	resp, err := ts.Client().Post(ts.URL+"/api/subscribe", "application/json", strings.NewReader(`{"email":"a@b.co"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	code, body := readBody(t, resp)
	if code != http.StatusOK || !strings.Contains(body, `"success":true`) {
		t.Fatalf("unexpected response %d %s", code, body)
	}
}
