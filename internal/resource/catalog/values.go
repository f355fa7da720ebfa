// Package catalog defines the eight resource variants the shop backend
// manages and their field-level quirks: ISO date expansion, comma-separated
// list fields, and password handling on user updates. Everything here is
// per-entity field lists; the shared state machine lives in package
// resource.
package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/spoke-dev/spoke/internal/resource"
)

// isoTimestamp expands a date-only form value ("2024-01-10") to the full
// ISO-8601 timestamp for midnight UTC of that date, matching what the
// browser client transmitted. Empty input maps to JSON null; anything
// unparseable passes through for the backend to reject.
func isoTimestamp(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// dateOnly truncates an ISO-8601 timestamp to its date part for the edit
// buffer.
func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// numberValue converts a numeric form value to its wire type. Empty input
// maps to JSON null; unparseable input passes through as the raw string.
func numberValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// intString renders an integer for the edit buffer, blank for zero so
// optional ids show as empty inputs.
func intString(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// floatString renders a float for the edit buffer, blank for zero.
func floatString(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// csvList splits a comma-separated form value into the wire array.
func csvList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// csvJoin renders a wire array as the comma-separated edit value.
func csvJoin(items []string) string {
	return strings.Join(items, ", ")
}

// baseBody converts a form to an outbound body using each field's kind.
// Per-resource hooks adjust the result afterwards.
func baseBody(fields []resource.Field, f resource.Form) map[string]any {
	body := make(map[string]any, len(fields))
	for _, field := range fields {
		v := f[field.Name]
		switch field.Kind {
		case resource.Number:
			body[field.Name] = numberValue(v)
		case resource.Date:
			body[field.Name] = isoTimestamp(v)
		case resource.List:
			body[field.Name] = csvList(v)
		default:
			body[field.Name] = v
		}
	}
	return body
}
