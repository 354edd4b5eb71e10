package signup

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	want := []string{"/v1/api/cluster-waitlist", "/v1/api/onboarding", "/v1/api/subscribe"}
	if diff := cmp.Diff(want, MountPaths("v1/")); diff != "" {
		t.Fatalf("mount paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	mailer := &captureMailer{}
	patterns, err := RegisterRoutes(mux, "", WithMailer(mailer))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"/api/cluster-waitlist", "/api/onboarding", "/api/subscribe"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(`{"email":"a@b.co"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Errors(t *testing.T) {
	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected missing mux to fail")
	}
	if _, err := RegisterRoutes(http.NewServeMux(), ""); err == nil {
		t.Fatalf("expected missing mailer to fail")
	}
	_, err := RegisterRoutes(http.NewServeMux(), "", WithMailer(&captureMailer{}), WithSubscribePath("/api/cluster-waitlist"))
	if err == nil {
		t.Fatalf("expected duplicate paths to fail")
	}
}

func TestComponent_Handlers(t *testing.T) {
	c := New(WithMailer(&captureMailer{}), WithOnboardingPath("/api/onboard"))
	handlers := c.Handlers()
	if _, ok := handlers["/api/onboard"]; !ok {
		t.Fatalf("expected custom onboarding path, got %v", handlers)
	}
	if got := c.Options().SubscribePath; got != "/api/subscribe" {
		t.Fatalf("unexpected default subscribe path %q", got)
	}
}
