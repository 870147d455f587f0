package field

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Base carries the state every field kind shares. Concrete kinds embed it and
// attach their default validators at construction.
type Base struct {
	spec   Spec
	value  any
	chain  *validators.Chain
	widget widgets.Widget
	errors []string
}

// NewBase constructs a Base holding spec.Default as the initial value and an
// empty fail-fast chain.
func NewBase(spec Spec) *Base {
	return &Base{
		spec:  spec,
		value: spec.Default,
		chain: validators.NewChain(validators.FailFast),
	}
}

// Name implements widgets.Source.
func (b *Base) Name() string { return b.spec.Name }

// Kind implements widgets.Source.
func (b *Base) Kind() string { return b.spec.Type }

// Label implements widgets.Source.
func (b *Base) Label() string { return b.spec.Label }

// Value implements widgets.Source.
func (b *Base) Value() any { return b.value }

// SetValue replaces the current value.
func (b *Base) SetValue(value any) { b.value = value }

// Errors returns the messages recorded by the last Validate call.
func (b *Base) Errors() []string { return append([]string(nil), b.errors...) }

// Attributes implements widgets.Source.
func (b *Base) Attributes() map[string]string { return cloneAttributes(b.spec.Attributes) }

// Choices implements widgets.Source.
func (b *Base) Choices() []any { return append([]any(nil), b.spec.Choices...) }

// Spec returns the spec the field was built from.
func (b *Base) Spec() Spec { return b.spec }

// Validators returns the validator chain in order.
func (b *Base) Validators() []validators.Validator { return b.chain.Validators() }

// AddValidators appends validators to the chain.
func (b *Base) AddValidators(v ...validators.Validator) { b.chain.Add(v...) }

// Validate runs the chain against the current value.
func (b *Base) Validate() bool {
	return b.validateValue(b.value)
}

func (b *Base) validateValue(value any) bool {
	ok, messages := b.chain.Validate(value)
	b.errors = messages
	return ok
}

// Widget returns the widget presenting the field, or nil.
func (b *Base) Widget() widgets.Widget { return b.widget }

// SetWidget attaches the widget presenting the field.
func (b *Base) SetWidget(w widgets.Widget) { b.widget = w }

// Render renders the field through its widget. Fields without a widget render
// nothing.
func (b *Base) Render(rc widgets.RenderContext) (*html.Node, error) {
	if b.widget == nil {
		return nil, nil
	}
	return b.widget.Render(b, rc)
}

// attach appends the kind's default validators followed by the spec's custom
// ones.
func (b *Base) attach(defaults ...validators.Validator) {
	b.chain.Add(defaults...)
	b.chain.Add(b.spec.Validators...)
}

// optionalUnlessRequired wraps v when the field may be left empty.
func (b *Base) optionalUnlessRequired(v validators.Validator) validators.Validator {
	if b.spec.Required {
		return v
	}
	return validators.Optional(v)
}
