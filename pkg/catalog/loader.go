package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-syntrophic/pkg/model"
	"github.com/goliatone/go-syntrophic/pkg/visibility/expr"
)

// TotalSteps is the number of screens in the wizard, including the terminal
// status screen.
const TotalSteps = 8

// LoadFS reads and parses a catalog file from fsys.
func LoadFS(fsys fs.FS, path string) (*model.Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML catalog document and normalises it. source is
// used in error messages only.
func Parse(data []byte, source string) (*model.Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var doc model.Catalog
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = model.Catalog{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := normalise(&doc, source); err != nil {
		return nil, err
	}
	return &doc, nil
}

func normalise(doc *model.Catalog, source string) error {
	if len(doc.Steps) != TotalSteps {
		return fmt.Errorf("catalog: %s defines %d steps, want %d", source, len(doc.Steps), TotalSteps)
	}
	sort.SliceStable(doc.Steps, func(i, j int) bool { return doc.Steps[i].Number < doc.Steps[j].Number })

	checker := expr.New()
	for i := range doc.Steps {
		step := &doc.Steps[i]
		if step.Number != i+1 {
			return fmt.Errorf("catalog: %s step numbers must run 1..%d, found %d at position %d", source, TotalSteps, step.Number, i+1)
		}
		step.Title = strings.TrimSpace(step.Title)
		if step.Title == "" {
			return fmt.Errorf("catalog: %s step %d has no title", source, step.Number)
		}

		switch step.Kind {
		case model.KindSelect:
			if step.Key == "" || len(step.Options) == 0 {
				return fmt.Errorf("catalog: %s select step %d needs a key and options", source, step.Number)
			}
		case model.KindPricing:
			if step.Key == "" {
				return fmt.Errorf("catalog: %s pricing step %d needs a key", source, step.Number)
			}
		case model.KindFields:
			if len(step.Fields) == 0 {
				return fmt.Errorf("catalog: %s fields step %d has no fields", source, step.Number)
			}
		case model.KindStatus:
		default:
			return fmt.Errorf("catalog: %s step %d has unknown kind %q", source, step.Number, step.Kind)
		}

		seen := make(map[string]struct{}, len(step.Options))
		for j := range step.Options {
			opt := &step.Options[j]
			if _, dup := seen[opt.Value]; dup {
				return fmt.Errorf("catalog: %s step %d duplicates option %q", source, step.Number, opt.Value)
			}
			seen[opt.Value] = struct{}{}
			opt.Icon = sanitizeIconMarkup(opt.Icon)
		}

		for j := range step.Fields {
			field := &step.Fields[j]
			field.Name = strings.TrimSpace(field.Name)
			if field.Name == "" {
				return fmt.Errorf("catalog: %s step %d has a field without a name", source, step.Number)
			}
			if field.Input == "" {
				field.Input = model.InputText
			}
			if err := checker.Check(field.VisibleWhen); err != nil {
				return fmt.Errorf("catalog: %s field %s: %w", source, field.Name, err)
			}
		}
	}

	if doc.Steps[TotalSteps-1].Kind != model.KindStatus {
		return fmt.Errorf("catalog: %s step %d must be the status screen", source, TotalSteps)
	}
	if len(doc.Plans) == 0 {
		return fmt.Errorf("catalog: %s defines no pricing plans", source)
	}

	if doc.Navigation.Back == "" {
		doc.Navigation.Back = "Back"
	}
	if doc.Navigation.Next == "" {
		doc.Navigation.Next = "Continue"
	}
	if doc.Navigation.Confirm == "" {
		doc.Navigation.Confirm = "Confirm & Request Access"
	}
	return nil
}
