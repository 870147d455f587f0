// Package form binds a schema to a registry: it builds one field per schema
// property through the registry's field factories, attaches widgets, and
// exposes validation, rendering and the extensions plugins installed.
package form
