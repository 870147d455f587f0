package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// ExtensionKey is the vendor extension carrying form hints.
const ExtensionKey = "x-formkit"

// Schema is a form description: its top-level field specs in display order.
type Schema struct {
	Title       string
	Description string
	Fields      []field.Spec
}

// Field returns the top-level spec named name.
func (s *Schema) Field(name string) (field.Spec, bool) {
	if s == nil {
		return field.Spec{}, false
	}
	for _, spec := range s.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return field.Spec{}, false
}

// FromOpenAPISchema converts a decoded object schema.
func FromOpenAPISchema(src *openapi3.Schema) (*Schema, error) {
	if src == nil {
		return nil, ErrEmptySchema
	}
	if len(src.Properties) == 0 {
		return nil, ErrEmptySchema
	}
	out := &Schema{
		Title:       src.Title,
		Description: src.Description,
	}
	fields, err := convertProperties(src, "")
	if err != nil {
		return nil, err
	}
	out.Fields = fields
	return out, nil
}

func convertProperties(src *openapi3.Schema, parent string) ([]field.Spec, error) {
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	type ordered struct {
		order float64
		spec  field.Spec
	}
	items := make([]ordered, 0, len(src.Properties))
	for name, ref := range src.Properties {
		spec, err := convertProperty(name, ref, required[name], parent)
		if err != nil {
			return nil, err
		}
		order, _ := toFloat(extension(ref)["order"])
		items = append(items, ordered{order: order, spec: spec})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].order != items[j].order {
			return items[i].order < items[j].order
		}
		return items[i].spec.Name < items[j].spec.Name
	})

	specs := make([]field.Spec, 0, len(items))
	for _, item := range items {
		specs = append(specs, item.spec)
	}
	return specs, nil
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool, parent string) (field.Spec, error) {
	path := joinPath(parent, name)
	if ref == nil || ref.Value == nil {
		if ref != nil && ref.Ref != "" {
			return field.Spec{}, fmt.Errorf("schema: %s: unresolved reference %q", path, ref.Ref)
		}
		return field.Spec{Name: name, Label: name, Type: field.TypeString, Required: required}, nil
	}
	src := ref.Value
	ext := extension(ref)

	spec := field.Spec{
		Name:        name,
		Label:       firstNonEmpty(stringValue(ext["label"]), src.Title, name),
		Description: src.Description,
		Type:        kindOf(src, ext),
		Required:    required,
		MustBeTrue:  boolValue(ext["mustBeTrue"]),
		Pattern:     src.Pattern,
		Default:     src.Default,
		Widget:      stringValue(ext["widget"]),
		Attributes:  stringMap(ext["attributes"]),
	}
	if len(src.Enum) > 0 {
		spec.Choices = append([]any(nil), src.Enum...)
	}
	if messages := stringMap(ext["messages"]); len(messages) > 0 {
		spec.Messages = validators.Messages(messages)
	}

	switch spec.Type {
	case field.TypeArray:
		spec.MinLength = int(src.MinItems)
		if src.MaxItems != nil {
			spec.MaxLength = int(*src.MaxItems)
		}
		if src.Items != nil {
			item, err := convertProperty("", src.Items, false, path)
			if err != nil {
				return field.Spec{}, err
			}
			spec.Items = &item
		}
	case field.TypeObject:
		if len(src.Properties) > 0 {
			children, err := convertProperties(src, path)
			if err != nil {
				return field.Spec{}, err
			}
			spec.Properties = children
		}
	default:
		spec.MinLength = int(src.MinLength)
		if src.MaxLength != nil {
			spec.MaxLength = int(*src.MaxLength)
		}
	}
	return spec, nil
}

func kindOf(src *openapi3.Schema, ext map[string]any) string {
	if typ := stringValue(ext["type"]); typ != "" {
		return typ
	}
	if len(src.Enum) > 0 {
		return field.TypeEnum
	}
	switch firstSchemaType(src.Type) {
	case openapi3.TypeString:
		switch src.Format {
		case "date":
			return field.TypeDate
		case "date-time":
			return field.TypeDateTime
		}
		return field.TypeString
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return field.TypeInteger
	case openapi3.TypeBoolean:
		return field.TypeBoolean
	case openapi3.TypeArray:
		return field.TypeArray
	case openapi3.TypeObject:
		return field.TypeObject
	}
	if len(src.Properties) > 0 {
		return field.TypeObject
	}
	if src.Items != nil {
		return field.TypeArray
	}
	return field.TypeString
}

// firstSchemaType returns the first non-null type of a possibly multi-typed
// schema.
func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, typ := range types.Slice() {
		if typ != openapi3.TypeNull {
			return typ
		}
	}
	return ""
}

func extension(ref *openapi3.SchemaRef) map[string]any {
	if ref == nil || ref.Value == nil {
		return nil
	}
	raw, ok := ref.Value.Extensions[ExtensionKey].(map[string]any)
	if !ok {
		return nil
	}
	return raw
}

func joinPath(parent, name string) string {
	switch {
	case parent == "":
		return name
	case name == "":
		return parent + "[]"
	default:
		return parent + "." + name
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	}
	return 0, false
}

func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, val := range raw {
		if val == nil {
			continue
		}
		out[key] = fmt.Sprint(val)
	}
	return out
}
