// Package validators implements the synchronous validation rules attached to
// form fields. Every validator reports pass/fail through Validate and exposes
// the message of its most recent failure through Message. Values are checked
// with the loose presence rules form inputs follow: nil, "", false, NaN and
// nil pointers count as absent, while the number zero counts as present for
// Required.
//
// Validators keep per-call state (the last failure message) and are not safe
// for concurrent use; give each field its own instances.
package validators
