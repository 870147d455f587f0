// Package field defines the Field contract and the concrete field kinds bound
// by a default registry. A field owns a value, an ordered validator list and
// the widget that presents it.
//
// Validation policy: a field runs its validators in registration order and
// stops at the first failure, so each field reports at most one message of its
// own. Composite fields (object, array) additionally validate their children;
// callers walk Children to collect nested messages by path.
package field
