package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":           true,
		"jo@x.co":          true,
		"first.last@a.b.c": true,
		"a@b":              false,
		"@b.co":            false,
		"a@b.":             false,
		"":                 false,
		"a b@c.co":         false,
		"a@@b.co":          false,
	}
	for input, want := range cases {
		if got := Email(input); got != want {
			t.Errorf("Email(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestMinLength(t *testing.T) {
	if !MinLength("Jo", 2) {
		t.Fatalf("expected two characters to satisfy a minimum of 2")
	}
	if MinLength("J", 2) {
		t.Fatalf("expected one character to fail a minimum of 2")
	}
	if !MinLength("éé", 2) {
		t.Fatalf("expected characters to be counted, not bytes")
	}
	if !MinLength("😀", 2) {
		t.Fatalf("expected an emoji to count as two UTF-16 units")
	}
	if MinLength("😀", 3) {
		t.Fatalf("expected an emoji to fall short of 3 units")
	}
	if got := UTF16Length("a😀é"); got != 4 {
		t.Fatalf("expected 4 code units, got %d", got)
	}
	if !MinLength("", 0) {
		t.Fatalf("expected zero threshold to always pass")
	}
}

func TestResultFieldMessages(t *testing.T) {
	result := NewResult()
	result.Fail(" identity.email ", "Valid email is required")
	result.Fail("identity.email", "second")
	result.Issues = append(result.Issues, Issue{Path: "/role", Message: "missing"})

	if result.Valid {
		t.Fatalf("expected result to be invalid")
	}
	want := map[string][]string{
		"identity.email": {"Valid email is required", "second"},
		"/role":          {"missing"},
	}
	if diff := cmp.Diff(want, result.FieldMessages()); diff != "" {
		t.Fatalf("field messages mismatch (-want +got):\n%s", diff)
	}
}
