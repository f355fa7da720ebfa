// Package resource implements the generic synchronization controller that
// every entity screen shares: one in-memory collection, one form buffer, an
// edit-mode toggle, and CRUD round-trips against a single REST endpoint.
// Per-entity quirks live in injected normalization hooks, not in the
// controller.
package resource

// FieldKind drives how the shell renders and edits a field.
type FieldKind int

const (
	Text FieldKind = iota
	Number
	Date     // edited as YYYY-MM-DD, transmitted as an ISO-8601 timestamp
	Select   // one of Options
	Password // masked input, never pre-filled from a record
	Multiline
	List // comma-separated in the form, array on the wire
)

// Field describes one editable field of a resource.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string // Select only
	Default  string
}

// Form is the in-progress editable representation of one record, keyed by
// field name. All values are strings; the submit hook converts them to
// their wire types.
type Form map[string]string

// Clone returns an independent copy of the form.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// DefaultForm builds a form pre-seeded with each field's default value.
func DefaultForm(fields []Field) Form {
	f := make(Form, len(fields))
	for _, field := range fields {
		f[field.Name] = field.Default
	}
	return f
}

// Equal reports whether two forms hold the same values.
func (f Form) Equal(other Form) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if other[k] != v {
			return false
		}
	}
	return true
}
