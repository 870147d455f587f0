package validators

import (
	"fmt"
	"regexp"
	"strings"
)

// Required fails on absent values. The number zero is a present value.
type Required struct {
	Base
}

// NewRequired constructs a Required validator.
func NewRequired(options ...Option) *Required {
	return &Required{Base: NewBase(options...)}
}

// Validate implements Validator.
func (v *Required) Validate(value any) bool {
	v.reset()
	if IsAbsent(value) && !isNumericZero(value) {
		return v.fail(KindRequired)
	}
	return true
}

// BooleanRequired fails unless the value is a boolean, true or false.
type BooleanRequired struct {
	Base
}

// NewBooleanRequired constructs a BooleanRequired validator.
func NewBooleanRequired(options ...Option) *BooleanRequired {
	return &BooleanRequired{Base: NewBase(options...)}
}

// Validate implements Validator.
func (v *BooleanRequired) Validate(value any) bool {
	v.reset()
	if _, ok := isBool(value); !ok {
		return v.fail(KindRequired)
	}
	return true
}

// BooleanTrue fails unless the value is the boolean true.
type BooleanTrue struct {
	Base
}

// NewBooleanTrue constructs a BooleanTrue validator.
func NewBooleanTrue(options ...Option) *BooleanTrue {
	return &BooleanTrue{Base: NewBase(options...)}
}

// Validate implements Validator.
func (v *BooleanTrue) Validate(value any) bool {
	v.reset()
	if b, ok := isBool(value); !ok || !b {
		return v.fail(KindRequired)
	}
	return true
}

// Length bounds the length of strings and collections. A zero Min or Max
// disables that bound.
type Length struct {
	Base
	Min int
	Max int
}

// NewLength constructs a Length validator. The minLength/maxLength messages
// are derived from the bounds unless supplied through options.
func NewLength(minLen, maxLen int, options ...Option) *Length {
	v := &Length{Base: NewBase(options...), Min: minLen, Max: maxLen}
	v.setDefault(KindMinLength, fmt.Sprintf("Length must be at least %d!", minLen))
	v.setDefault(KindMaxLength, fmt.Sprintf("Length must be no more than %d!", maxLen))
	return v
}

// Validate implements Validator. Absent values fail with the required message;
// present values without a length pass.
func (v *Length) Validate(value any) bool {
	v.reset()
	if IsAbsent(value) {
		return v.fail(KindRequired)
	}
	n, ok := lengthOf(value)
	if !ok {
		return true
	}
	if v.Min > 0 && n < v.Min {
		return v.fail(KindMinLength)
	}
	if v.Max > 0 && n > v.Max {
		return v.fail(KindMaxLength)
	}
	return true
}

// Integer fails when a value is supplied but does not coerce to a number.
// Absent values pass; pair it with Required for mandatory inputs.
type Integer struct {
	Base
}

// NewInteger constructs an Integer validator.
func NewInteger(options ...Option) *Integer {
	v := &Integer{Base: NewBase(options...)}
	v.setDefault(KindIntRequired, "Value must be an integer")
	return v
}

// Validate implements Validator.
func (v *Integer) Validate(value any) bool {
	v.reset()
	if !IsAbsent(value) && !IsNumeric(value) {
		return v.fail(KindIntRequired)
	}
	return true
}

// Regex requires a present value matching Pattern.
type Regex struct {
	Base
	Pattern *regexp.Regexp
}

// NewRegex constructs a Regex validator around a compiled pattern.
func NewRegex(pattern *regexp.Regexp, options ...Option) *Regex {
	v := &Regex{Base: NewBase(options...), Pattern: pattern}
	v.setDefault(KindInvalidPattern, fmt.Sprintf("Value must match the pattern: %s", pattern))
	return v
}

// CompileRegex compiles expr and constructs a Regex validator.
func CompileRegex(expr string, options ...Option) (*Regex, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validators: compile pattern %q: %w", expr, err)
	}
	return NewRegex(pattern, options...), nil
}

// MustRegex is CompileRegex that panics on an invalid expression.
func MustRegex(expr string, options ...Option) *Regex {
	v, err := CompileRegex(expr, options...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate implements Validator. Non-string values are matched against their
// fmt.Sprint form.
func (v *Regex) Validate(value any) bool {
	v.reset()
	if IsAbsent(value) {
		return v.fail(KindRequired)
	}
	if v.Pattern == nil {
		return true
	}
	text, ok := indirect(value).(string)
	if !ok {
		text = fmt.Sprint(indirect(value))
	}
	if !v.Pattern.MatchString(text) {
		return v.fail(KindInvalidPattern)
	}
	return true
}

// Choice fails when a supplied value is not one of Choices. Values are compared
// by their fmt.Sprint form so decoded JSON numbers match integer choices.
// Absent values pass.
type Choice struct {
	Base
	Choices []any
}

// NewChoice constructs a Choice validator.
func NewChoice(choices []any, options ...Option) *Choice {
	v := &Choice{Base: NewBase(options...), Choices: append([]any(nil), choices...)}
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, fmt.Sprint(choice))
	}
	v.setDefault(KindInvalidChoice, fmt.Sprintf("Value must be one of: %s", strings.Join(labels, ", ")))
	return v
}

// Validate implements Validator.
func (v *Choice) Validate(value any) bool {
	v.reset()
	if IsAbsent(value) && !isNumericZero(value) {
		return true
	}
	want := fmt.Sprint(indirect(value))
	for _, choice := range v.Choices {
		if fmt.Sprint(choice) == want {
			return true
		}
	}
	return v.fail(KindInvalidChoice)
}

var (
	_ Validator = (*Base)(nil)
	_ Validator = (*Required)(nil)
	_ Validator = (*BooleanRequired)(nil)
	_ Validator = (*BooleanTrue)(nil)
	_ Validator = (*Length)(nil)
	_ Validator = (*Integer)(nil)
	_ Validator = (*Regex)(nil)
	_ Validator = (*Choice)(nil)
)
