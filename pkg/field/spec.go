package field

import "github.com/goliatone/go-formkit/pkg/validators"

// Spec describes one field to construct.
type Spec struct {
	Name        string
	Label       string
	Description string
	// Type is the registry type identifier the field was resolved through
	// (e.g. "string", "date", "enum").
	Type       string
	Required   bool
	MustBeTrue bool
	MinLength  int
	MaxLength  int
	Pattern    string
	Choices    []any
	Default    any
	Properties []Spec
	Items      *Spec
	// Widget names the widget explicitly; empty defers to the form's resolver.
	Widget     string
	Attributes map[string]string
	Validators []validators.Validator
	Messages   validators.Messages
}

func (s Spec) validatorOptions() []validators.Option {
	if len(s.Messages) == 0 {
		return nil
	}
	return []validators.Option{validators.WithMessages(s.Messages)}
}

func cloneAttributes(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
