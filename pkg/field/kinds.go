package field

import (
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Type identifiers of the built-in field kinds.
const (
	TypeString   = "string"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeEnum     = "enum"
	TypeDate     = "date"
	TypeDateTime = "datetime"
	TypeObject   = "object"
	TypeArray    = "array"
	TypeButton   = "button"
)

// String is a free-text field.
type String struct {
	*Base
}

// NewString builds a String field. Required, length and pattern rules come
// from the spec; length and pattern only apply to supplied values unless the
// field is required.
func NewString(spec Spec, _ Builder) (Field, error) {
	f := &String{Base: NewBase(spec)}
	opts := spec.validatorOptions()

	var defaults []validators.Validator
	if spec.Required {
		defaults = append(defaults, validators.NewRequired(opts...))
	}
	if spec.MinLength > 0 || spec.MaxLength > 0 {
		defaults = append(defaults, f.optionalUnlessRequired(validators.NewLength(spec.MinLength, spec.MaxLength, opts...)))
	}
	if spec.Pattern != "" {
		re, err := validators.CompileRegex(spec.Pattern, opts...)
		if err != nil {
			return nil, fmt.Errorf("field: %s: %w", spec.Name, err)
		}
		defaults = append(defaults, f.optionalUnlessRequired(re))
	}
	f.attach(defaults...)
	return f, nil
}

// Integer accepts any value that coerces to a number.
type Integer struct {
	*Base
}

// NewInteger builds an Integer field.
func NewInteger(spec Spec, _ Builder) (Field, error) {
	f := &Integer{Base: NewBase(spec)}
	opts := spec.validatorOptions()

	var defaults []validators.Validator
	if spec.Required {
		defaults = append(defaults, validators.NewRequired(opts...))
	}
	defaults = append(defaults, validators.NewInteger(opts...))
	f.attach(defaults...)
	return f, nil
}

// Boolean holds true or false.
type Boolean struct {
	*Base
}

// NewBoolean builds a Boolean field. A required boolean must hold a boolean
// value; MustBeTrue additionally demands true.
func NewBoolean(spec Spec, _ Builder) (Field, error) {
	f := &Boolean{Base: NewBase(spec)}
	opts := spec.validatorOptions()

	var defaults []validators.Validator
	switch {
	case spec.MustBeTrue:
		defaults = append(defaults, validators.NewBooleanTrue(opts...))
	case spec.Required:
		defaults = append(defaults, validators.NewBooleanRequired(opts...))
	}
	f.attach(defaults...)
	return f, nil
}

// Choice restricts the value to the spec's choices.
type Choice struct {
	*Base
}

// NewChoice builds a Choice field.
func NewChoice(spec Spec, _ Builder) (Field, error) {
	f := &Choice{Base: NewBase(spec)}
	opts := spec.validatorOptions()

	var defaults []validators.Validator
	if spec.Required {
		defaults = append(defaults, validators.NewRequired(opts...))
	}
	if len(spec.Choices) > 0 {
		defaults = append(defaults, validators.NewChoice(spec.Choices, opts...))
	}
	f.attach(defaults...)
	return f, nil
}

// Button is a value-less action field.
type Button struct {
	*Base
}

// NewButton builds a Button field. Buttons carry no default validators.
func NewButton(spec Spec, _ Builder) (Field, error) {
	f := &Button{Base: NewBase(spec)}
	f.attach()
	return f, nil
}

// Object groups named child fields. Its value is a map keyed by child name.
type Object struct {
	*Base
	children []Field
}

// NewObject builds an Object field and its children through builder.
func NewObject(spec Spec, builder Builder) (Field, error) {
	f := &Object{Base: NewBase(spec)}
	if len(spec.Properties) > 0 && builder == nil {
		return nil, fmt.Errorf("field: %s: %w", spec.Name, ErrBuilderRequired)
	}
	for _, child := range spec.Properties {
		built, err := builder.Build(child)
		if err != nil {
			return nil, fmt.Errorf("field: %s.%s: %w", spec.Name, child.Name, err)
		}
		f.children = append(f.children, built)
	}
	if spec.Required {
		f.attach(validators.NewRequired(spec.validatorOptions()...))
	} else {
		f.attach()
	}
	if spec.Default != nil {
		f.SetValue(spec.Default)
	}
	return f, nil
}

// Children returns the child fields in declaration order.
func (f *Object) Children() []Field {
	return append([]Field(nil), f.children...)
}

// Value returns the children's values keyed by name.
func (f *Object) Value() any {
	out := make(map[string]any, len(f.children))
	for _, child := range f.children {
		out[child.Name()] = child.Value()
	}
	return out
}

// SetValue distributes a string-keyed map across the children. Keys without
// a matching child are ignored; children without a key are reset to nil.
func (f *Object) SetValue(value any) {
	values := toMap(value)
	for _, child := range f.children {
		child.SetValue(values[child.Name()])
	}
}

// Validate runs the object's own validators and then every child, so each
// child records its errors even after an earlier one fails.
func (f *Object) Validate() bool {
	ok := f.validateValue(f.Value())
	for _, child := range f.children {
		if !child.Validate() {
			ok = false
		}
	}
	return ok
}

// Render renders the children inside a fieldset. A widget attached to the
// object itself takes precedence.
func (f *Object) Render(rc widgets.RenderContext) (*html.Node, error) {
	if f.widget != nil {
		return f.widget.Render(f, rc)
	}
	nodes, err := renderAll(f.children, rc)
	if err != nil {
		return nil, err
	}
	return widgets.Fieldset(f, rc, nodes...), nil
}

// Array holds a list of values, each backed by a field built from the item
// spec. Items are named by their index.
type Array struct {
	*Base
	builder  Builder
	items    []Field
	set      bool
	buildErr error
}

// NewArray builds an Array field. Items are created through builder whenever a
// value is set.
func NewArray(spec Spec, builder Builder) (Field, error) {
	if builder == nil {
		return nil, fmt.Errorf("field: %s: %w", spec.Name, ErrBuilderRequired)
	}
	f := &Array{Base: NewBase(spec), builder: builder}
	opts := spec.validatorOptions()

	var defaults []validators.Validator
	if spec.Required {
		defaults = append(defaults, validators.NewRequired(opts...))
	}
	if spec.MinLength > 0 || spec.MaxLength > 0 {
		defaults = append(defaults, f.optionalUnlessRequired(validators.NewLength(spec.MinLength, spec.MaxLength, opts...)))
	}
	f.attach(defaults...)
	if spec.Default != nil {
		f.SetValue(spec.Default)
	}
	return f, nil
}

// ItemSpec returns the spec each item is built from.
func (f *Array) ItemSpec() Spec {
	if f.spec.Items != nil {
		return *f.spec.Items
	}
	return Spec{Type: TypeString}
}

// Children returns the item fields in order.
func (f *Array) Children() []Field {
	return append([]Field(nil), f.items...)
}

// Value returns the item values, or nil when no value has been set.
func (f *Array) Value() any {
	if !f.set {
		return nil
	}
	out := make([]any, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item.Value())
	}
	return out
}

// SetValue rebuilds the items from a slice or array. Nil clears the field; a
// non-list value is treated as a single item.
func (f *Array) SetValue(value any) {
	f.items = nil
	f.buildErr = nil
	f.set = value != nil
	if !f.set {
		return
	}
	for i, item := range toSlice(value) {
		spec := f.ItemSpec()
		spec.Name = strconv.Itoa(i)
		built, err := f.builder.Build(spec)
		if err != nil {
			f.buildErr = fmt.Errorf("field: %s[%d]: %w", f.spec.Name, i, err)
			f.items = nil
			return
		}
		built.SetValue(item)
		f.items = append(f.items, built)
	}
}

// Validate runs the array's own validators and then every item.
func (f *Array) Validate() bool {
	if f.buildErr != nil {
		f.errors = []string{f.buildErr.Error()}
		return false
	}
	ok := f.validateValue(f.Value())
	for _, item := range f.items {
		if !item.Validate() {
			ok = false
		}
	}
	return ok
}

// Render renders the items inside a fieldset.
func (f *Array) Render(rc widgets.RenderContext) (*html.Node, error) {
	if f.widget != nil {
		return f.widget.Render(f, rc)
	}
	nodes, err := renderAll(f.items, rc)
	if err != nil {
		return nil, err
	}
	return widgets.Fieldset(f, rc, nodes...), nil
}

func renderAll(fields []Field, rc widgets.RenderContext) ([]*html.Node, error) {
	nodes := make([]*html.Node, 0, len(fields))
	for _, child := range fields {
		node, err := child.Render(rc)
		if err != nil {
			return nil, fmt.Errorf("field: render %s: %w", child.Name(), err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func toMap(value any) map[string]any {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return typed
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func toSlice(value any) []any {
	if typed, ok := value.([]any); ok {
		return typed
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

var (
	_ Field     = (*String)(nil)
	_ Field     = (*Integer)(nil)
	_ Field     = (*Boolean)(nil)
	_ Field     = (*Choice)(nil)
	_ Field     = (*Button)(nil)
	_ Composite = (*Object)(nil)
	_ Composite = (*Array)(nil)
)
