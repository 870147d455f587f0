// Package registry holds the catalog forms are built through: field factories
// keyed by type identifier, widget factories keyed by name, free-form
// settings, and the extensions plugins contribute to forms.
//
// Registration is last-write-wins. Plugins are installed with Use, which
// accepts both the legacy positional contribution (LegacyTriple) and the named
// Bundle, normalises them to one shape and merges the result atomically.
//
// A Registry is safe for concurrent use.
package registry
