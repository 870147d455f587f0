package widgets

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fieldset renders the container used by composite fields: a <fieldset>
// carrying the kind class, an optional <legend> and the rendered children in
// order. Nil children are skipped.
func Fieldset(src Source, rc RenderContext, children ...*html.Node) *html.Node {
	node := element(atom.Fieldset,
		html.Attribute{Key: "class", Val: classList(ClassFor(src.Kind()), rc)},
	)
	if name := src.Name(); name != "" {
		node.Attr = append(node.Attr, html.Attribute{Key: "name", Val: name})
	}
	node.Attr = append(node.Attr, sortedAttrs(src.Attributes(), "class", "name")...)
	if label := src.Label(); label != "" {
		legend := element(atom.Legend)
		legend.AppendChild(text(label))
		node.AppendChild(legend)
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		node.AppendChild(child)
	}
	return node
}
