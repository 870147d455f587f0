package form

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/registry"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Option customises a Form at construction.
type Option func(*Form)

// WithExtensions adds extensions visible only to this form. They take
// precedence over registry extensions of the same name.
func WithExtensions(extensions map[string]registry.Extension) Option {
	return func(f *Form) {
		for name, ext := range extensions {
			if ext == nil {
				continue
			}
			f.extensions[name] = ext
		}
	}
}

// WithWidgetResolver replaces the resolver that picks a widget for fields
// without an explicit one.
func WithWidgetResolver(resolver *widgets.Resolver) Option {
	return func(f *Form) {
		if resolver != nil {
			f.resolver = resolver
		}
	}
}

// WithThemeSelector resolves a go-theme selection at construction. Tokens
// named "class.<widget>" add classes to that widget; "class.form" adds classes
// to the form element.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(f *Form) {
		f.themeSelector = selector
		f.themeName = name
		f.themeVariant = variant
	}
}

// WithRenderContext sets the base render context passed to every widget.
func WithRenderContext(rc widgets.RenderContext) Option {
	return func(f *Form) {
		f.renderContext = rc
	}
}
