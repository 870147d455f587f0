package registry

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// SettingDebug toggles registry debug logging.
const SettingDebug = "debug"

// Option customises a Registry at construction.
type Option func(*Registry)

// WithLogger routes registry diagnostics to logger. Nil keeps the registry
// silent.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSettings seeds settings on top of the defaults.
func WithSettings(settings map[string]any) Option {
	return func(r *Registry) {
		for name, value := range settings {
			r.settings[name] = value
		}
	}
}

// Registry is the composition root for field types, widgets, settings and
// form extensions.
type Registry struct {
	mu         sync.RWMutex
	settings   map[string]any
	fields     map[string]field.Factory
	widgets    map[string]widgets.Factory
	extensions map[string]Extension
	logger     *slog.Logger
}

// New constructs a registry in the default bootstrap state: settings
// {debug: false}, the nine default field bindings and no widgets.
func New(opts ...Option) *Registry {
	r := &Registry{
		settings:   DefaultSettings(),
		fields:     DefaultFields(),
		widgets:    make(map[string]widgets.Factory),
		extensions: make(map[string]Extension),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// GetSetting returns the stored value, or nil when name was never set.
// Stored falsy values such as false or 0 are returned as-is.
func (r *Registry) GetSetting(name string) any {
	value, _ := r.LookupSetting(name)
	return value
}

// LookupSetting returns the stored value and whether name is present.
func (r *Registry) LookupSetting(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.settings[name]
	return value, ok
}

// SetSetting upserts a setting.
func (r *Registry) SetSetting(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.settings[name]
	r.settings[name] = value
	r.debug("setting", name, replaced)
}

// Settings returns a copy of all settings.
func (r *Registry) Settings() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]any, len(r.settings))
	for name, value := range r.settings {
		out[name] = value
	}
	return out
}

// RegisterField binds a type identifier to a field factory, replacing any
// previous binding.
func (r *Registry) RegisterField(typ string, factory field.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registerField(typ, factory)
}

// RegisterFields binds every entry of factories. A nil map is a no-op.
func (r *Registry) RegisterFields(factories map[string]field.Factory) {
	if len(factories) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, typ := range sortedKeys(factories) {
		r.registerField(typ, factories[typ])
	}
}

func (r *Registry) registerField(typ string, factory field.Factory) {
	_, replaced := r.fields[typ]
	r.fields[typ] = factory
	r.debug("field", typ, replaced)
}

// HasField reports whether typ is bound.
func (r *Registry) HasField(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.fields[typ]
	return ok
}

// GetField returns the factory bound to typ, or nil.
func (r *Registry) GetField(typ string) field.Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fields[typ]
}

// Fields returns the bound type identifiers sorted.
func (r *Registry) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.fields)
}

// RegisterWidget binds a widget name to a factory, replacing any previous
// binding.
func (r *Registry) RegisterWidget(name string, factory widgets.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registerWidget(name, factory)
}

// RegisterWidgets binds every entry of factories. A nil map is a no-op.
func (r *Registry) RegisterWidgets(factories map[string]widgets.Factory) {
	if len(factories) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range sortedKeys(factories) {
		r.registerWidget(name, factories[name])
	}
}

func (r *Registry) registerWidget(name string, factory widgets.Factory) {
	_, replaced := r.widgets[name]
	r.widgets[name] = factory
	r.debug("widget", name, replaced)
}

// HasWidget reports whether name is bound.
func (r *Registry) HasWidget(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.widgets[name]
	return ok
}

// GetWidget returns the factory bound to name, or nil.
func (r *Registry) GetWidget(name string) widgets.Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.widgets[name]
}

// GetWidgets returns the live widget map. It is not a copy: later
// registrations show through, and callers must not mutate it or read it while
// another goroutine registers widgets.
func (r *Registry) GetWidgets() map[string]widgets.Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.widgets
}

// Widgets returns the bound widget names sorted.
func (r *Registry) Widgets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.widgets)
}

// Extensions returns a copy of the installed form extensions.
func (r *Registry) Extensions() map[string]Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Extension, len(r.extensions))
	for name, ext := range r.extensions {
		out[name] = ext
	}
	return out
}

// Clone returns an independent registry with the same bindings, settings,
// extensions and logger.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := &Registry{
		settings:   make(map[string]any, len(r.settings)),
		fields:     make(map[string]field.Factory, len(r.fields)),
		widgets:    make(map[string]widgets.Factory, len(r.widgets)),
		extensions: make(map[string]Extension, len(r.extensions)),
		logger:     r.logger,
	}
	for k, v := range r.settings {
		clone.settings[k] = v
	}
	for k, v := range r.fields {
		clone.fields[k] = v
	}
	for k, v := range r.widgets {
		clone.widgets[k] = v
	}
	for k, v := range r.extensions {
		clone.extensions[k] = v
	}
	return clone
}

// debug logs a registration when the debug setting is truthy. Callers hold
// the lock.
func (r *Registry) debug(kind, name string, replaced bool) {
	if validators.IsAbsent(r.settings[SettingDebug]) {
		return
	}
	r.logger.Debug("registry: registered",
		slog.String("kind", kind),
		slog.String("name", name),
		slog.Bool("replaced", replaced),
	)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
