package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Matcher decides whether a widget should present the supplied field.
type Matcher func(src Source) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Resolver picks a default widget name for fields that do not request one.
// Higher priority wins; ties fall back to registration order. An empty
// resolver never resolves a widget.
type Resolver struct {
	mu    sync.RWMutex
	rules []rule
}

// NewResolver constructs a resolver with the built-in matchers registered.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.registerBuiltins()
	return r
}

// Register adds a matcher with the provided name and priority. The latest
// registration wins between equal names at equal priority.
func (r *Resolver) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Resolver) Resolve(src Source) (string, bool) {
	if r == nil || src == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(src) {
			return entry.name, true
		}
	}
	return "", false
}

func (r *Resolver) registerBuiltins() {
	r.Register(NameButton, 90, func(src Source) bool {
		return src.Kind() == "button"
	})

	r.Register(NameCheckbox, 80, func(src Source) bool {
		return src.Kind() == "boolean"
	})

	r.Register(NameSelect, 70, func(src Source) bool {
		return len(src.Choices()) > 0
	})

	r.Register(NameText, 0, func(src Source) bool {
		switch src.Kind() {
		case "object", "array":
			return false
		}
		return true
	})
}
