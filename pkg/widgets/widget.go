package widgets

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ClassBase prefixes every widget class name.
const ClassBase = "mutt-field"

// Source is the read-only view of a field that widgets render from.
type Source interface {
	Name() string
	Kind() string
	Label() string
	Value() any
	Errors() []string
	Attributes() map[string]string
	Choices() []any
}

// RenderContext carries per-render presentation hints supplied by the form.
type RenderContext struct {
	// ExtraClasses are appended to the widget's own class name, typically from
	// resolved theme tokens.
	ExtraClasses []string
}

// Widget renders a field. Render must be a pure function of the source and
// context; ClassName is stable per widget kind.
type Widget interface {
	Render(src Source, rc RenderContext) (*html.Node, error)
	ClassName() string
}

// Factory builds a widget instance.
type Factory func() Widget

// ClassFor returns the class name for a widget kind, e.g.
// "mutt-field mutt-field-button".
func ClassFor(kind string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return ClassBase
	}
	return ClassBase + " " + ClassBase + "-" + kind
}

func classList(base string, rc RenderContext) string {
	parts := []string{base}
	for _, extra := range rc.ExtraClasses {
		if trimmed := strings.TrimSpace(extra); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// sortedAttrs converts a field's attribute map into html attributes ordered by
// key so output is deterministic. Reserved keys are skipped.
func sortedAttrs(attrs map[string]string, reserved ...string) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(reserved))
	for _, key := range reserved {
		skip[key] = struct{}{}
	}
	out := make([]html.Attribute, 0, len(attrs))
	for key, val := range attrs {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if _, ok := skip[key]; ok {
			continue
		}
		out = append(out, html.Attribute{Key: key, Val: val})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
