package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptySchema is returned when a document declares no properties.
	ErrEmptySchema = errors.New("schema: document declares no properties")
	// ErrComponentNotFound is returned when an OpenAPI document lacks the
	// requested component schema.
	ErrComponentNotFound = errors.New("schema: component schema not found")
)

// Parse decodes a bare JSON Schema object written in JSON or YAML.
func Parse(data []byte) (*Schema, error) {
	raw, err := toJSON(data)
	if err != nil {
		return nil, err
	}
	var src openapi3.Schema
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	return FromOpenAPISchema(&src)
}

// FromOpenAPI loads an OpenAPI document and converts the named component
// schema. An empty component selects the only component when exactly one is
// declared.
func FromOpenAPI(ctx context.Context, data []byte, component string) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("%w: document has no components", ErrComponentNotFound)
	}

	schemas := doc.Components.Schemas
	if component == "" {
		if len(schemas) != 1 {
			names := make([]string, 0, len(schemas))
			for name := range schemas {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("%w: choose one of %s", ErrComponentNotFound, strings.Join(names, ", "))
		}
		for name := range schemas {
			component = name
		}
	}
	ref, ok := schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}

	out, err := FromOpenAPISchema(ref.Value)
	if err != nil {
		return nil, fmt.Errorf("schema: component %q: %w", component, err)
	}
	if out.Title == "" {
		out.Title = component
	}
	return out, nil
}

// IsOpenAPI reports whether data is an OpenAPI document rather than a bare
// schema.
func IsOpenAPI(data []byte) bool {
	var probe struct {
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.OpenAPI != ""
}

// toJSON normalises a JSON or YAML payload to JSON.
func toJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("schema: decode yaml: %w", err)
	}
	if decoded == nil {
		return nil, ErrEmptySchema
	}
	raw, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("schema: convert yaml: %w", err)
	}
	return raw, nil
}
