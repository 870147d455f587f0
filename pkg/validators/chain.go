package validators

// Mode selects how a Chain reacts to a failing validator.
type Mode int

const (
	// FailFast stops at the first failing validator.
	FailFast Mode = iota
	// CollectAll runs every validator and reports each failure.
	CollectAll
)

// Chain runs validators in registration order.
type Chain struct {
	mode       Mode
	validators []Validator
}

// NewChain builds a chain. Nil validators are skipped.
func NewChain(mode Mode, validators ...Validator) *Chain {
	c := &Chain{mode: mode}
	c.Add(validators...)
	return c
}

// Add appends validators to the end of the chain.
func (c *Chain) Add(validators ...Validator) {
	for _, v := range validators {
		if v == nil {
			continue
		}
		c.validators = append(c.validators, v)
	}
}

// Validators returns the chain members in order.
func (c *Chain) Validators() []Validator {
	return append([]Validator(nil), c.validators...)
}

// Len reports the number of validators.
func (c *Chain) Len() int {
	return len(c.validators)
}

// Validate runs the chain against value, returning whether it passed and the
// failure messages in order. FailFast chains return at most one message.
func (c *Chain) Validate(value any) (bool, []string) {
	var messages []string
	for _, v := range c.validators {
		if v.Validate(value) {
			continue
		}
		messages = append(messages, v.Message())
		if c.mode == FailFast {
			break
		}
	}
	return len(messages) == 0, messages
}

// Optional wraps v so that absent values pass without consulting it. Fields
// use it for rules such as Length or Regex that would otherwise reject an
// empty, non-mandatory input.
func Optional(v Validator) Validator {
	if v == nil {
		return nil
	}
	return &optional{inner: v}
}

type optional struct {
	inner   Validator
	skipped bool
}

func (o *optional) Validate(value any) bool {
	if IsAbsent(value) && !isNumericZero(value) {
		o.skipped = true
		return true
	}
	o.skipped = false
	return o.inner.Validate(value)
}

func (o *optional) Message() string {
	if o.skipped {
		return ""
	}
	return o.inner.Message()
}
