package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

var (
	// ErrInvalidPlugin is returned by Use when the plugin has no install
	// capability.
	ErrInvalidPlugin = errors.New("registry: invalid plugin: install is required")
	// ErrInvalidFeatures is returned when a plugin contribution has an
	// unsupported shape.
	ErrInvalidFeatures = errors.New("registry: invalid plugin features")
)

// Host is the surface an extension sees when called on a form.
type Host interface {
	Registry() *Registry
	Field(path string) (field.Field, bool)
	Values() map[string]any
}

// Extension is a named behaviour plugins install onto every form.
type Extension func(host Host, args ...any) (any, error)

// Plugin contributes field types, widgets, settings and extensions. Install
// receives the registry being extended so contributions can depend on what is
// already registered.
type Plugin interface {
	Install(reg *Registry) (Features, error)
}

// PluginFunc adapts a function into a Plugin.
type PluginFunc func(reg *Registry) (Features, error)

// Install calls the underlying function.
func (fn PluginFunc) Install(reg *Registry) (Features, error) {
	return fn(reg)
}

// Features is a plugin contribution: either a LegacyTriple or a Bundle, by
// value or by pointer. A nil Features contributes nothing.
type Features interface {
	features()
}

// LegacyTriple is the positional contribution older plugins return:
// fields, widgets and settings in that order.
type LegacyTriple struct {
	Fields   map[string]field.Factory
	Widgets  map[string]widgets.Factory
	Settings map[string]any
}

func (LegacyTriple) features() {}

// Triple builds a LegacyTriple from its positional members.
func Triple(fields map[string]field.Factory, widgetSet map[string]widgets.Factory, settings map[string]any) LegacyTriple {
	return LegacyTriple{Fields: fields, Widgets: widgetSet, Settings: settings}
}

// Bundle is the named contribution. Every member is optional.
type Bundle struct {
	Fields     map[string]field.Factory
	Widgets    map[string]widgets.Factory
	Settings   map[string]any
	Extensions map[string]Extension
}

func (Bundle) features() {}

// Normalize converts any supported Features shape into a Bundle.
func Normalize(feats Features) (Bundle, error) {
	switch typed := feats.(type) {
	case nil:
		return Bundle{}, nil
	case Bundle:
		return typed, nil
	case *Bundle:
		if typed == nil {
			return Bundle{}, nil
		}
		return *typed, nil
	case LegacyTriple:
		return Bundle{Fields: typed.Fields, Widgets: typed.Widgets, Settings: typed.Settings}, nil
	case *LegacyTriple:
		if typed == nil {
			return Bundle{}, nil
		}
		return Bundle{Fields: typed.Fields, Widgets: typed.Widgets, Settings: typed.Settings}, nil
	default:
		return Bundle{}, fmt.Errorf("%w: %T", ErrInvalidFeatures, feats)
	}
}

// Use installs plugin. The contribution is merged under a single write lock
// once Install returns; an Install error or an invalid contribution leaves the
// registry untouched. Later contributions override earlier ones by name.
func (r *Registry) Use(plugin Plugin) error {
	if isNilPlugin(plugin) {
		return ErrInvalidPlugin
	}

	feats, err := plugin.Install(r)
	if err != nil {
		return fmt.Errorf("registry: install %s: %w", pluginName(plugin), err)
	}
	bundle, err := Normalize(feats)
	if err != nil {
		return err
	}

	r.apply(pluginName(plugin), bundle)
	return nil
}

// MustUse panics when Use fails. Useful for init-time wiring.
func (r *Registry) MustUse(plugin Plugin) {
	if err := r.Use(plugin); err != nil {
		panic(err)
	}
}

func (r *Registry) apply(name string, b Bundle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, typ := range sortedKeys(b.Fields) {
		r.registerField(typ, b.Fields[typ])
	}
	for _, widget := range sortedKeys(b.Widgets) {
		r.registerWidget(widget, b.Widgets[widget])
	}
	for _, key := range sortedKeys(b.Settings) {
		_, replaced := r.settings[key]
		r.settings[key] = b.Settings[key]
		r.debug("setting", key, replaced)
	}
	for _, ext := range sortedKeys(b.Extensions) {
		_, replaced := r.extensions[ext]
		r.extensions[ext] = b.Extensions[ext]
		r.debug("extension", ext, replaced)
	}

	if !validators.IsAbsent(r.settings[SettingDebug]) {
		r.logger.Debug("registry: plugin applied",
			slog.String("plugin", name),
			slog.Int("fields", len(b.Fields)),
			slog.Int("widgets", len(b.Widgets)),
			slog.Int("settings", len(b.Settings)),
			slog.Int("extensions", len(b.Extensions)),
		)
	}
}

// Named is implemented by plugins that report a name for diagnostics.
type Named interface {
	PluginName() string
}

func pluginName(plugin Plugin) string {
	if named, ok := plugin.(Named); ok && named.PluginName() != "" {
		return named.PluginName()
	}
	return fmt.Sprintf("%T", plugin)
}

func isNilPlugin(plugin Plugin) bool {
	if plugin == nil {
		return true
	}
	rv := reflect.ValueOf(plugin)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// BuiltinWidgets is a plugin registering the built-in widgets under their
// default names.
func BuiltinWidgets() Plugin {
	return builtinWidgets{}
}

type builtinWidgets struct{}

func (builtinWidgets) PluginName() string { return "builtin-widgets" }

func (builtinWidgets) Install(*Registry) (Features, error) {
	return Bundle{Widgets: widgets.Builtins()}, nil
}
