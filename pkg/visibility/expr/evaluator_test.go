package expr

import (
	"testing"

	"github.com/goliatone/go-syntrophic/pkg/visibility"
)

func TestEvaluatorVariantRules(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{Values: map[string]any{
		"accountType": "individual",
		"role":        "service-partner",
		"identity":    map[string]any{"fullName": "Jo"},
	}}

	cases := []struct {
		rule string
		want bool
	}{
		{`accountType == "individual"`, true},
		{`accountType == 'organization'`, false},
		{`accountType != "organization"`, true},
		{`role == service-partner`, true},
		{`role == "founder" || role == "service-partner"`, true},
		{`accountType == "individual" && role == "investor"`, false},
		{`!(accountType == "organization")`, true},
		{`identity.fullName == "Jo"`, true},
		{`identity.email`, false},
		{`identity`, true},
		{`   `, true},
		{`deployment == ""`, true},
		{`(role == "founder" || role == "investor") && !role`, false},
	}
	for _, tc := range cases {
		got, err := eval.Eval("field", tc.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Errorf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestEvaluatorExtras(t *testing.T) {
	t.Parallel()

	eval := New()
	ok, err := eval.Eval("field", `extras.preview == "on"`, visibility.Context{
		Extras: map[string]any{"preview": "on"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras lookup to match")
	}
}

func TestEvaluatorRejectsMalformedRules(t *testing.T) {
	t.Parallel()

	eval := New()
	for _, rule := range []string{
		`role = "founder"`,
		`role == "founder`,
		`(role == "founder"`,
		`role ==`,
		`role & other`,
		`role == "a" extra`,
		`#`,
	} {
		if err := eval.Check(rule); err == nil {
			t.Errorf("expected Check(%q) to fail", rule)
		}
		if _, err := eval.Eval("field", rule, visibility.Context{}); err == nil {
			t.Errorf("expected Eval(%q) to fail", rule)
		}
	}
}

func TestEvaluatorCachesCompiledRules(t *testing.T) {
	t.Parallel()

	eval := New()
	rule := `role == "investor"`
	if _, err := eval.Eval("field", rule, visibility.Context{}); err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if _, ok := eval.cache.Load(rule); !ok {
		t.Fatalf("expected compiled rule to be cached")
	}
}
