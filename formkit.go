// Package formkit is the quick-start entry point: it wires a registry with the
// built-in widgets and builds forms from schema files.
package formkit

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/registry"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Form aliases form.Form for callers that only import the root package.
type Form = form.Form

// Registry aliases registry.Registry.
type Registry = registry.Registry

// Result aliases form.Result.
type Result = form.Result

// NewRegistry returns a registry in the default bootstrap state with the
// built-in widgets registered and every plugin applied in order.
func NewRegistry(plugins []registry.Plugin, options ...registry.Option) (*Registry, error) {
	reg := registry.New(options...)
	if err := reg.Use(registry.BuiltinWidgets()); err != nil {
		return nil, err
	}
	for i, plugin := range plugins {
		if err := reg.Use(plugin); err != nil {
			return nil, fmt.Errorf("formkit: plugin %d: %w", i, err)
		}
	}
	return reg, nil
}

// NewForm builds a form for s through reg.
func NewForm(reg *Registry, s *schema.Schema, options ...form.Option) (*Form, error) {
	return form.New(reg, s, options...)
}

// LoadForm loads the schema at path and builds a form for it through reg.
func LoadForm(ctx context.Context, reg *Registry, path string, schemaOptions []schema.Option, options ...form.Option) (*Form, error) {
	s, err := schema.LoadFile(ctx, path, schemaOptions...)
	if err != nil {
		return nil, err
	}
	return form.New(reg, s, options...)
}
