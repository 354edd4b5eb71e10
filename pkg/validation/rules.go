package validation

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// emailPattern is the deliberately loose local@domain.tld check shared by the
// wizard, the waitlist forms, and the API handlers.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailPattern exposes the expression so renderers can mirror it in HTML
// pattern attributes.
func EmailPattern() string {
	return emailPattern.String()
}

// Email reports whether value looks like local@domain.tld.
func Email(value string) bool {
	if value == "" {
		return false
	}
	return emailPattern.MatchString(value)
}

// MinLength reports whether value holds at least n characters. Characters are
// UTF-16 code units, the length browsers report for form input, so a rune
// outside the BMP counts twice. The value is not trimmed.
func MinLength(value string, n int) bool {
	if n <= 0 {
		return true
	}
	return UTF16Length(value) >= n
}

// UTF16Length returns the number of UTF-16 code units needed for value.
func UTF16Length(value string) int {
	units := 0
	for _, r := range value {
		if size := utf16.RuneLen(r); size > 0 {
			units += size
		} else {
			units++
		}
	}
	return units
}

// Issue represents a validation message with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes. The zero value is invalid; use
// NewResult for a passing baseline.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// NewResult returns a passing result.
func NewResult() Result {
	return Result{Valid: true}
}

// Fail records an issue against field and marks the result invalid.
func (r *Result) Fail(field, message string) {
	if r == nil {
		return
	}
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Field:   strings.TrimSpace(field),
		Message: strings.TrimSpace(message),
	})
}

// FieldMessages groups issue messages by field path, the shape renderers use
// for inline errors.
func (r Result) FieldMessages() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		key := issue.Field
		if key == "" {
			key = issue.Path
		}
		out[key] = append(out[key], issue.Message)
	}
	return out
}
