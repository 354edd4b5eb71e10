package render

import (
	"strings"

	"github.com/goliatone/go-syntrophic/pkg/validation"
)

// IssueMapping is the placement of a set of issues on one screen.
type IssueMapping struct {
	// Fields holds messages for the view's fields and for its choice key.
	Fields map[string][]string
	// Form holds everything that has no home on the screen.
	Form []string
}

// MergeFormErrors appends extras to existing, trimmed and without repeats.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return uniqueMessages(combined)
}

// MapIssues places issues on the fields shown by view or on its choice key.
// An issue is addressed by its dotted Field, or by its JSON pointer Path when
// it comes from schema validation. Issues for answers on another screen
// become form messages.
func MapIssues(view View, issues []validation.Issue) IssueMapping {
	onScreen := make(map[string]struct{}, len(view.Fields)+1)
	for _, field := range view.Fields {
		onScreen[field.Name] = struct{}{}
	}
	if view.Key != "" {
		onScreen[view.Key] = struct{}{}
	}

	var mapping IssueMapping
	for _, issue := range issues {
		message := strings.TrimSpace(issue.Message)
		if message == "" {
			continue
		}
		target := issueTarget(issue)
		if _, ok := onScreen[target]; !ok {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[target] = append(mapping.Fields[target], message)
	}
	mapping.Form = uniqueMessages(mapping.Form)
	return mapping
}

func issueTarget(issue validation.Issue) string {
	if field := strings.TrimSpace(issue.Field); field != "" {
		return field
	}
	pointer := strings.Trim(strings.TrimSpace(issue.Path), "#/")
	return strings.ReplaceAll(pointer, "/", ".")
}

func uniqueMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, dup := seen[message]; dup {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}
