package validation

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestDefaultSchemaValidator_Subscribe(t *testing.T) {
	v, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("default validator: %v", err)
	}

	if result := v.Validate("SubscribeRequest", decode(t, `{"email":"a@b.co"}`)); !result.Valid {
		t.Fatalf("expected valid subscribe payload, got %#v", result.Issues)
	}

	result := v.Validate("SubscribeRequest", decode(t, `{"email":"bad"}`))
	if result.Valid {
		t.Fatalf("expected bad email to fail")
	}
	if got := result.Issues[0].Field; got != "email" {
		t.Fatalf("expected issue on email, got %q", got)
	}

	if result := v.Validate("SubscribeRequest", decode(t, `{}`)); result.Valid {
		t.Fatalf("expected missing email to fail")
	}
}

func TestDefaultSchemaValidator_Onboarding(t *testing.T) {
	v, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("default validator: %v", err)
	}

	valid := `{
		"accountType": "individual",
		"identity":    {"fullName": "Jo", "email": "jo@x.co", "linkedinUrl": ""},
		"role":        "founder",
		"profile":     {"uniqueValueProposition": "long enough text", "currentTraction": "long enough text"},
		"deployment":  "cloud",
		"memoryTier":  "standard",
		"pricingPlan": "core"
	}`
	if result := v.Validate("OnboardingRequest", decode(t, valid)); !result.Valid {
		t.Fatalf("expected valid onboarding payload, got %#v", result.Issues)
	}

	invalid := strings.Replace(valid, `"cloud"`, `"moon"`, 1)
	result := v.Validate("OnboardingRequest", decode(t, invalid))
	if result.Valid {
		t.Fatalf("expected unknown deployment to fail")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Field == "deployment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an issue for deployment, got %#v", result.Issues)
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("default validator: %v", err)
	}
	if v.HasSchema("Nope") {
		t.Fatalf("expected unknown schema to be reported missing")
	}
	if result := v.Validate("Nope", map[string]any{}); result.Valid {
		t.Fatalf("expected unknown schema to be invalid")
	}
}

func TestNewSchemaValidator_RejectsEmpty(t *testing.T) {
	if _, err := NewSchemaValidator(context.Background(), []byte("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestSchemaValidator_SpecIsCopy(t *testing.T) {
	v, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("default validator: %v", err)
	}
	spec := v.Spec()
	if !strings.Contains(string(spec), "/api/onboarding") {
		t.Fatalf("expected onboarding path in spec")
	}
	spec[0] = 'X'
	if v.Spec()[0] == 'X' {
		t.Fatalf("expected Spec to return a copy")
	}
}
