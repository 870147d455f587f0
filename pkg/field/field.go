package field

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ErrBuilderRequired is returned when a composite field is constructed without
// a Builder to create its children.
var ErrBuilderRequired = errors.New("field: builder is required for composite fields")

// Field is the runtime object binding a value, its validators and its widget.
type Field interface {
	widgets.Source

	Spec() Spec
	SetValue(value any)
	Validators() []validators.Validator
	AddValidators(v ...validators.Validator)
	Validate() bool
	Widget() widgets.Widget
	SetWidget(w widgets.Widget)
	Render(rc widgets.RenderContext) (*html.Node, error)
}

// Composite is implemented by fields that own child fields.
type Composite interface {
	Field
	Children() []Field
}

// Builder constructs a field from a spec, resolving the spec type through
// whatever catalog the caller uses. Composite fields use it for children.
type Builder interface {
	Build(spec Spec) (Field, error)
}

// BuilderFunc adapts a function into a Builder.
type BuilderFunc func(spec Spec) (Field, error)

// Build calls the underlying function.
func (fn BuilderFunc) Build(spec Spec) (Field, error) {
	return fn(spec)
}

// Factory creates a field for a spec. It is the unit registered per field type.
type Factory func(spec Spec, builder Builder) (Field, error)
