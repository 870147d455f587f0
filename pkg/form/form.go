package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/registry"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var (
	// ErrUnknownFieldType is returned when a spec names a type the registry
	// does not bind.
	ErrUnknownFieldType = errors.New("form: unknown field type")
	// ErrUnknownWidget is returned when a spec names a widget that is neither
	// registered nor built in.
	ErrUnknownWidget = errors.New("form: unknown widget")
	// ErrUnknownExtension is returned by Call for names no plugin installed.
	ErrUnknownExtension = errors.New("form: unknown extension")
)

// ClassForm is the class carried by the rendered form element.
const ClassForm = "mutt-form"

// Form is a schema bound to a registry.
type Form struct {
	reg           *registry.Registry
	schema        *schema.Schema
	fields        []field.Field
	extensions    map[string]registry.Extension
	resolver      *widgets.Resolver
	renderContext widgets.RenderContext

	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	tokens        map[string]string
}

// New builds a form for s. Extensions installed on reg are snapshotted here;
// plugins applied afterwards do not affect this form.
func New(reg *registry.Registry, s *schema.Schema, opts ...Option) (*Form, error) {
	if reg == nil {
		return nil, errors.New("form: registry is required")
	}
	if s == nil {
		return nil, errors.New("form: schema is required")
	}

	f := &Form{
		reg:        reg,
		schema:     s,
		extensions: reg.Extensions(),
		resolver:   widgets.NewResolver(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	if f.themeSelector != nil {
		tokens, err := resolveTokens(f.themeSelector, f.themeName, f.themeVariant)
		if err != nil {
			return nil, err
		}
		f.tokens = tokens
	}

	for _, spec := range s.Fields {
		built, err := f.Build(spec)
		if err != nil {
			return nil, err
		}
		f.fields = append(f.fields, built)
	}
	return f, nil
}

// Build implements field.Builder: it resolves spec.Type through the registry,
// constructs the field and attaches its widget. Composite fields call back
// into Build for their children.
func (f *Form) Build(spec field.Spec) (field.Field, error) {
	factory := f.reg.GetField(spec.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q (field %q)", ErrUnknownFieldType, spec.Type, spec.Name)
	}
	built, err := factory(spec, f)
	if err != nil {
		return nil, fmt.Errorf("form: build %q: %w", spec.Name, err)
	}
	if built == nil {
		return nil, fmt.Errorf("form: build %q: factory for %q returned no field", spec.Name, spec.Type)
	}
	if err := f.attachWidget(built, spec); err != nil {
		return nil, err
	}
	return built, nil
}

// Registry returns the registry the form was built through.
func (f *Form) Registry() *registry.Registry {
	return f.reg
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// Fields returns the top-level fields in schema order.
func (f *Form) Fields() []field.Field {
	return append([]field.Field(nil), f.fields...)
}

// Field resolves a dotted path such as "address.city" or "tags.0".
func (f *Form) Field(path string) (field.Field, bool) {
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	current := f.fields
	var found field.Field
	for _, segment := range segments {
		found = nil
		for _, candidate := range current {
			if candidate.Name() == segment {
				found = candidate
				break
			}
		}
		if found == nil {
			return nil, false
		}
		if composite, ok := found.(field.Composite); ok {
			current = composite.Children()
		} else {
			current = nil
		}
	}
	return found, true
}

// SetValues assigns values to the top-level fields named by the map keys.
// Fields without a key keep their value; unknown keys are ignored.
func (f *Form) SetValues(values map[string]any) {
	for _, fld := range f.fields {
		if value, ok := values[fld.Name()]; ok {
			fld.SetValue(value)
		}
	}
}

// Values returns the current value of every top-level field except buttons.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.fields))
	for _, fld := range f.fields {
		if fld.Kind() == field.TypeButton {
			continue
		}
		out[fld.Name()] = fld.Value()
	}
	return out
}

// HasExtension reports whether name is callable on the form.
func (f *Form) HasExtension(name string) bool {
	_, ok := f.extensions[name]
	return ok
}

// Extensions returns the callable extension names sorted.
func (f *Form) Extensions() []string {
	names := make([]string, 0, len(f.extensions))
	for name := range f.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named extension with the form as its host.
func (f *Form) Call(name string, args ...any) (any, error) {
	ext, ok := f.extensions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
	}
	return ext(f, args...)
}

// Render renders every field inside a form element and returns sanitised
// HTML.
func (f *Form) Render() (string, error) {
	classes := []string{ClassForm}
	classes = append(classes, f.tokenClasses("form")...)
	root := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Form,
		Data:     atom.Form.String(),
		Attr:     []html.Attribute{{Key: "class", Val: strings.Join(classes, " ")}},
	}
	for _, fld := range f.fields {
		node, err := fld.Render(f.renderContext)
		if err != nil {
			return "", fmt.Errorf("form: render %q: %w", fld.Name(), err)
		}
		if node != nil {
			root.AppendChild(node)
		}
	}
	return widgets.RenderHTML(root)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

var _ registry.Host = (*Form)(nil)
var _ field.Builder = (*Form)(nil)
