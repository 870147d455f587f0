package widgets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Template is a widget whose markup comes from a pongo2 template. The template
// receives name, label, value, errors, attributes, choices and class; its
// output is parsed and wrapped in a <div> carrying the widget class.
type Template struct {
	kind string
	tpl  *pongo2.Template
}

// NewTemplate compiles source into a template widget of the given kind.
func NewTemplate(kind, source string) (*Template, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, errors.New("widgets: template widget kind is required")
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("widgets: parse template %q: %w", kind, err)
	}
	return &Template{kind: kind, tpl: tpl}, nil
}

// TemplateFactory compiles source once and returns a factory sharing the
// compiled template.
func TemplateFactory(kind, source string) (Factory, error) {
	widget, err := NewTemplate(kind, source)
	if err != nil {
		return nil, err
	}
	return func() Widget { return widget }, nil
}

// ClassName implements Widget.
func (t *Template) ClassName() string { return ClassFor(t.kind) }

// Render implements Widget.
func (t *Template) Render(src Source, rc RenderContext) (*html.Node, error) {
	if t == nil || t.tpl == nil {
		return nil, errors.New("widgets: template widget is not initialised")
	}
	class := classList(t.ClassName(), rc)
	out, err := t.tpl.Execute(pongo2.Context{
		"name":       src.Name(),
		"label":      src.Label(),
		"value":      src.Value(),
		"errors":     src.Errors(),
		"attributes": src.Attributes(),
		"choices":    src.Choices(),
		"class":      class,
	})
	if err != nil {
		return nil, fmt.Errorf("widgets: execute template %q: %w", t.kind, err)
	}

	wrapper := element(atom.Div, html.Attribute{Key: "class", Val: class})
	nodes, err := html.ParseFragment(strings.NewReader(out), wrapper)
	if err != nil {
		return nil, fmt.Errorf("widgets: parse template %q output: %w", t.kind, err)
	}
	for _, node := range nodes {
		wrapper.AppendChild(node)
	}
	return wrapper, nil
}

var _ Widget = (*Template)(nil)
