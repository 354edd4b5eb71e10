// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

// FounderState returns a state on the confirm step for an individual founder
// with every answer filled in.
func FounderState(t testing.TB) wizard.State {
	t.Helper()
	s := wizard.NewState()
	s.Step = wizard.ConfirmStep
	mustSet(t, &s, map[string]string{
		"accountType":                    "individual",
		"identity.fullName":              "Jo Example",
		"identity.email":                 "jo@x.co",
		"role":                           "founder",
		"profile.uniqueValueProposition": "Agents that negotiate term sheets",
		"profile.currentTraction":        "Twelve pilots, two paying customers",
		"deployment":                     "cloud",
		"memoryTier":                     "professional",
		"pricingPlan":                    "core",
	})
	return s
}

// OrganizationState returns a state on the confirm step for an investor
// organisation.
func OrganizationState(t testing.TB) wizard.State {
	t.Helper()
	s := wizard.NewState()
	s.Step = wizard.ConfirmStep
	mustSet(t, &s, map[string]string{
		"accountType":                   "organization",
		"identity.organizationName":     "Acme Capital Partners",
		"identity.workEmail":            "deals@acmecapital.com",
		"identity.websiteUrl":           "https://acmecapital.com",
		"role":                          "investor",
		"profile.sectorsAndGeographies": "Fintech and AI across Europe",
		"profile.checkSizeAndStage":     "$500K-$2M, Seed to Series A",
		"deployment":                    "private",
		"memoryTier":                    "standard",
		"pricingPlan":                   "institutional",
	})
	return s
}

// PayloadJSON encodes the onboarding payload of s.
func PayloadJSON(t testing.TB, s wizard.State) []byte {
	t.Helper()
	payload, err := s.Payload()
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	return data
}

func mustSet(t testing.TB, s *wizard.State, values map[string]string) {
	t.Helper()
	// choices first so the variants exist before their fields are set
	for _, key := range []string{"accountType", "role", "deployment", "memoryTier", "pricingPlan"} {
		if v, ok := values[key]; ok {
			if err := s.Set(key, v); err != nil {
				t.Fatalf("set %s: %v", key, err)
			}
		}
	}
	for key, v := range values {
		if err := s.Set(key, v); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
