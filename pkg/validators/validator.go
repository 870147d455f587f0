package validators

// Message kinds understood by the built-in validators.
const (
	KindRequired       = "required"
	KindMinLength      = "minLength"
	KindMaxLength      = "maxLength"
	KindIntRequired    = "intRequired"
	KindInvalidPattern = "invalidPattern"
	KindInvalidChoice  = "invalidChoice"
)

// DefaultRequiredMessage seeds the required message of every validator.
const DefaultRequiredMessage = "This field is required."

// Messages maps a message kind to the text surfaced on failure.
type Messages map[string]string

// Clone returns an independent copy of the message table.
func (m Messages) Clone() Messages {
	if m == nil {
		return nil
	}
	out := make(Messages, len(m))
	for kind, msg := range m {
		out[kind] = msg
	}
	return out
}

// Validator checks a single value. Message returns the failure text recorded
// by the most recent Validate call, or "" when that call passed.
type Validator interface {
	Validate(value any) bool
	Message() string
}

// Option customises a validator's message table.
type Option func(*Base)

// WithMessages merges caller supplied messages, overriding defaults per kind.
func WithMessages(messages Messages) Option {
	return func(b *Base) {
		for kind, msg := range messages {
			b.messages[kind] = msg
		}
	}
}

// WithMessage overrides a single message kind.
func WithMessage(kind, message string) Option {
	return func(b *Base) {
		b.messages[kind] = message
	}
}

// Base holds the error slot and message table shared by the concrete
// validators. The zero value is not usable; construct with NewBase.
type Base struct {
	message  string
	messages Messages
}

// NewBase seeds the required message and applies the options on top.
func NewBase(options ...Option) Base {
	b := Base{
		messages: Messages{KindRequired: DefaultRequiredMessage},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&b)
	}
	return b
}

// Validate accepts every value. Concrete validators shadow it.
func (b *Base) Validate(any) bool {
	b.reset()
	return true
}

// Message returns the last failure message.
func (b *Base) Message() string {
	return b.message
}

// Messages returns a copy of the configured message table.
func (b *Base) Messages() Messages {
	return b.messages.Clone()
}

func (b *Base) reset() {
	b.message = ""
}

func (b *Base) fail(kind string) bool {
	b.message = b.messages[kind]
	return false
}

// setDefault installs msg for kind unless the caller already supplied one.
func (b *Base) setDefault(kind, msg string) {
	if b.messages == nil {
		b.messages = Messages{}
	}
	if _, ok := b.messages[kind]; ok {
		return
	}
	b.messages[kind] = msg
}
