// Package forms normalizes untyped, string-keyed form input into the typed
// parameter structs the application layer works with.
//
// Each parser returns either a normalized struct or a FieldErrors map; it
// never performs I/O. Create and update parsers deliberately use distinct
// output types: on create an omitted optional field is simply absent, on
// update an empty field is an explicit instruction to clear the stored
// value.
package forms

import "net/url"

// Values is a loosely-typed string-keyed record, as submitted by a form or
// query string. Only the first value per key is considered.
type Values map[string]string

// Get returns the raw value for key, or "" when absent.
func (v Values) Get(key string) string {
	return v[key]
}

// FromURLValues flattens url.Values into a Values record.
func FromURLValues(u url.Values) Values {
	v := make(Values, len(u))
	for key, vals := range u {
		if len(vals) > 0 {
			v[key] = vals[0]
		}
	}
	return v
}

// FieldErrors maps an input field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for the named field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Validation messages surfaced next to individual form fields.
const (
	MsgTitleRequired  = "title is required"
	MsgTitleTooLong   = "title must be 255 characters or less"
	MsgMinutesInteger = "estimated minutes must be a whole number"
	MsgMinutesTooLow  = "estimated minutes must be at least 1"
	MsgInvalidDate    = "invalid date"
	MsgInvalidID      = "invalid id"
	MsgInvalidChoice  = "invalid value"
)
