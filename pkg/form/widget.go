package form

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

const tokenClassPrefix = "class."

// attachWidget resolves the widget for a freshly built field. An explicit
// spec.Widget must resolve; otherwise the resolver's choice is used when it
// names an available widget. Registry bindings shadow the built-ins.
func (f *Form) attachWidget(fld field.Field, spec field.Spec) error {
	name := strings.TrimSpace(spec.Widget)
	explicit := name != ""
	if !explicit {
		resolved, ok := f.resolver.Resolve(fld)
		if !ok {
			return nil
		}
		name = resolved
	}

	factory := f.reg.GetWidget(name)
	if factory == nil {
		factory, _ = widgets.Lookup(name)
	}
	if factory == nil {
		if explicit {
			return fmt.Errorf("%w: %q (field %q)", ErrUnknownWidget, name, spec.Name)
		}
		return nil
	}

	widget := factory()
	if widget == nil {
		return fmt.Errorf("form: widget %q for field %q: factory returned nil", name, spec.Name)
	}
	if extra := f.tokenClasses(name); len(extra) > 0 {
		widget = themed{Widget: widget, extra: extra}
	}
	fld.SetWidget(widget)
	return nil
}

// themed adds theme classes to every render of the wrapped widget.
type themed struct {
	widgets.Widget
	extra []string
}

func (t themed) Render(src widgets.Source, rc widgets.RenderContext) (*html.Node, error) {
	merged := rc
	merged.ExtraClasses = append(append([]string(nil), rc.ExtraClasses...), t.extra...)
	return t.Widget.Render(src, merged)
}

func (f *Form) tokenClasses(name string) []string {
	if len(f.tokens) == 0 {
		return nil
	}
	return strings.Fields(f.tokens[tokenClassPrefix+name])
}

func resolveTokens(selector theme.ThemeSelector, name, variant string) (map[string]string, error) {
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("form: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Tokens {
				tokens[key] = value
			}
		}
	}
	return tokens, nil
}
