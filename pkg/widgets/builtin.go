package widgets

import (
	"fmt"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Built-in widget names.
const (
	NameButton   = "button"
	NameText     = "text"
	NameCheckbox = "checkbox"
	NameSelect   = "select"
)

var builtins = map[string]Factory{
	NameButton:   func() Widget { return Button{} },
	NameText:     func() Widget { return Text{} },
	NameCheckbox: func() Widget { return Checkbox{} },
	NameSelect:   func() Widget { return Select{} },
}

// Builtins returns a fresh map of the built-in widget factories, suitable for
// registering through a plugin.
func Builtins() map[string]Factory {
	out := make(map[string]Factory, len(builtins))
	for name, factory := range builtins {
		out[name] = factory
	}
	return out
}

// BuiltinNames returns the sorted built-in widget names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in factory for name.
func Lookup(name string) (Factory, bool) {
	factory, ok := builtins[name]
	return factory, ok
}

// Button renders a plain <button type="button">.
type Button struct{}

// ClassName implements Widget.
func (Button) ClassName() string { return ClassFor(NameButton) }

// Render implements Widget.
func (b Button) Render(src Source, rc RenderContext) (*html.Node, error) {
	node := element(atom.Button,
		html.Attribute{Key: "type", Val: "button"},
		html.Attribute{Key: "value", Val: "false"},
		html.Attribute{Key: "class", Val: classList(b.ClassName(), rc)},
	)
	if name := src.Name(); name != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "name", Val: name})
	}
	node.Attr = append(node.Attr, sortedAttrs(src.Attributes(), "type", "class", "name")...)
	if label := src.Label(); label != "" {
		node.AppendChild(text(label))
	}
	return node, nil
}

// Text renders an <input type="text">.
type Text struct{}

// ClassName implements Widget.
func (Text) ClassName() string { return ClassFor(NameText) }

// Render implements Widget.
func (w Text) Render(src Source, rc RenderContext) (*html.Node, error) {
	node := element(atom.Input,
		html.Attribute{Key: "type", Val: "text"},
		html.Attribute{Key: "name", Val: src.Name()},
		html.Attribute{Key: "class", Val: classList(w.ClassName(), rc)},
	)
	if value := src.Value(); value != nil {
		node.Attr = append(node.Attr, html.Attribute{Key: "value", Val: fmt.Sprint(value)})
	}
	node.Attr = append(node.Attr, sortedAttrs(src.Attributes(), "name", "class", "value")...)
	return labelled(src, node), nil
}

// Checkbox renders an <input type="checkbox">, checked when the value is true.
type Checkbox struct{}

// ClassName implements Widget.
func (Checkbox) ClassName() string { return ClassFor(NameCheckbox) }

// Render implements Widget.
func (w Checkbox) Render(src Source, rc RenderContext) (*html.Node, error) {
	node := element(atom.Input,
		html.Attribute{Key: "type", Val: "checkbox"},
		html.Attribute{Key: "name", Val: src.Name()},
		html.Attribute{Key: "class", Val: classList(w.ClassName(), rc)},
	)
	if checked, ok := src.Value().(bool); ok && checked {
		node.Attr = append(node.Attr, html.Attribute{Key: "checked", Val: "checked"})
	}
	node.Attr = append(node.Attr, sortedAttrs(src.Attributes(), "type", "name", "class", "checked")...)
	return labelled(src, node), nil
}

// Select renders a <select> with one <option> per choice.
type Select struct{}

// ClassName implements Widget.
func (Select) ClassName() string { return ClassFor(NameSelect) }

// Render implements Widget.
func (w Select) Render(src Source, rc RenderContext) (*html.Node, error) {
	node := element(atom.Select,
		html.Attribute{Key: "name", Val: src.Name()},
		html.Attribute{Key: "class", Val: classList(w.ClassName(), rc)},
	)
	node.Attr = append(node.Attr, sortedAttrs(src.Attributes(), "name", "class")...)

	current := ""
	if value := src.Value(); value != nil {
		current = fmt.Sprint(value)
	}
	for _, choice := range src.Choices() {
		label := fmt.Sprint(choice)
		option := element(atom.Option, html.Attribute{Key: "value", Val: label})
		if label == current {
			option.Attr = append(option.Attr, html.Attribute{Key: "selected", Val: "selected"})
		}
		option.AppendChild(text(label))
		node.AppendChild(option)
	}
	return labelled(src, node), nil
}

// labelled wraps control in a <label> when the source carries one.
func labelled(src Source, control *html.Node) *html.Node {
	label := src.Label()
	if label == "" {
		return control
	}
	wrapper := element(atom.Label)
	wrapper.AppendChild(text(label))
	wrapper.AppendChild(control)
	return wrapper
}

func element(tag atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

var (
	_ Widget = Button{}
	_ Widget = Text{}
	_ Widget = Checkbox{}
	_ Widget = Select{}
)
