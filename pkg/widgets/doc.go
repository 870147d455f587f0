// Package widgets defines how a field is presented. A Widget turns the current
// state of a field (exposed through Source) into an HTML node tree; widgets
// never mutate the field. Factories build widget instances so registries can
// hand out fresh widgets per field.
//
// The built-in widgets (button, text, checkbox, select) are available through
// Builtins and Lookup, and a Resolver picks a default widget name for fields
// that do not request one explicitly. Rendered fragments pass through a
// restrictive bluemonday policy in RenderHTML before they leave the package.
package widgets
