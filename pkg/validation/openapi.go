package validation

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed spec/openapi.yaml
var embeddedSpec []byte

// SchemaValidator checks decoded JSON request bodies against the component
// schemas of an OpenAPI 3 document.
type SchemaValidator struct {
	raw []byte
	doc *openapi3.T
}

var (
	defaultOnce      sync.Once
	defaultValidator *SchemaValidator
	defaultErr       error
)

// DefaultSchemaValidator returns the validator for the embedded site API
// document. The document is parsed once per process.
func DefaultSchemaValidator() (*SchemaValidator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewSchemaValidator(context.Background(), embeddedSpec)
	})
	return defaultValidator, defaultErr
}

// NewSchemaValidator loads and validates an OpenAPI document from raw YAML or
// JSON bytes.
func NewSchemaValidator(ctx context.Context, raw []byte) (*SchemaValidator, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("validation: openapi document is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("validation: load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validation: invalid openapi document: %w", err)
	}

	return &SchemaValidator{
		raw: append([]byte(nil), raw...),
		doc: doc,
	}, nil
}

// Spec returns a copy of the raw document so it can be served verbatim.
func (v *SchemaValidator) Spec() []byte {
	if v == nil {
		return nil
	}
	return append([]byte(nil), v.raw...)
}

// HasSchema reports whether the document declares the named component schema.
func (v *SchemaValidator) HasSchema(name string) bool {
	_, ok := v.schema(name)
	return ok
}

// Validate checks value (as produced by json.Unmarshal into any) against the
// named component schema. Every violation is reported as an Issue.
func (v *SchemaValidator) Validate(name string, value any) Result {
	result := NewResult()
	schema, ok := v.schema(name)
	if !ok {
		result.Valid = false
		result.Issues = []Issue{{Message: fmt.Sprintf("unknown schema %q", name)}}
		return result
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return result
	}

	result.Valid = false
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			result.Issues = append(result.Issues, issueFromError(item))
		}
	} else {
		result.Issues = append(result.Issues, issueFromError(err))
	}
	return result
}

func (v *SchemaValidator) schema(name string) (*openapi3.Schema, bool) {
	if v == nil || v.doc == nil || v.doc.Components == nil {
		return nil, false
	}
	ref, ok := v.doc.Components.Schemas[strings.TrimSpace(name)]
	if !ok || ref == nil || ref.Value == nil {
		return nil, false
	}
	return ref.Value, true
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		message := strings.TrimSpace(schemaErr.Reason)
		if message == "" {
			message = strings.TrimSpace(schemaErr.Error())
		}
		return Issue{
			Path:    pointerString(pointer),
			Field:   strings.Join(pointer, "."),
			Message: message,
		}
	}

	return Issue{Message: strings.TrimSpace(err.Error())}
}

func pointerString(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		escaped[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
