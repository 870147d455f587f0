package form

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// Result collects validation messages keyed by dotted field path.
type Result struct {
	Errors map[string][]string
}

// OK reports whether no field failed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Paths returns the failing field paths sorted.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Errors))
	for path := range r.Errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Messages returns the messages recorded for path.
func (r Result) Messages(path string) []string {
	return append([]string(nil), r.Errors[path]...)
}

func (r *Result) add(path string, messages []string) {
	messages = normalizeMessages(messages)
	if len(messages) == 0 {
		return
	}
	if r.Errors == nil {
		r.Errors = make(map[string][]string)
	}
	r.Errors[path] = normalizeMessages(append(r.Errors[path], messages...))
}

// Validate runs every field's validators, fail-fast per field, and gathers
// the messages of each field including nested ones.
func (f *Form) Validate() Result {
	var result Result
	for _, fld := range f.fields {
		fld.Validate()
		collect(&result, fld, "")
	}
	return result
}

// ValidateAll is Validate but reports every failing validator of each field
// rather than only the first. Field error state is left as Validate sets it.
func (f *Form) ValidateAll() Result {
	result := f.Validate()
	for _, fld := range f.fields {
		collectAll(&result, fld, "")
	}
	return result
}

func collect(result *Result, fld field.Field, parent string) {
	path := joinPath(parent, fld.Name())
	result.add(path, fld.Errors())
	if composite, ok := fld.(field.Composite); ok {
		for _, child := range composite.Children() {
			collect(result, child, path)
		}
	}
}

func collectAll(result *Result, fld field.Field, parent string) {
	path := joinPath(parent, fld.Name())
	if composite, ok := fld.(field.Composite); ok {
		for _, child := range composite.Children() {
			collectAll(result, child, path)
		}
		return
	}
	_, messages := validators.NewChain(validators.CollectAll, fld.Validators()...).Validate(fld.Value())
	result.add(path, messages)
}

// normalizeMessages trims messages and drops blanks and duplicates while
// preserving order.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
