// Package account models the tenant identity every stored point belongs to.
//
// An account id is a normalized string: alphanumerics, underscores, and
// hyphens survive, every other character becomes an underscore. Blank input
// is rejected at construction so a Service can never be built without a
// real tenant. The id is both a payload field written on every upsert and
// a mandatory filter term on every read.
package account

import (
	"strings"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

// ID is a normalized, non-blank tenant identifier.
type ID string

// New validates and normalizes a raw account identifier.
// Blank or whitespace-only input fails with a validation error.
func New(raw string) (ID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &vectordb.ValidationError{Field: "account_id", Reason: "must not be blank"}
	}
	return ID(Normalize(raw)), nil
}

// MustNew is New for static ids known to be valid, panicking otherwise.
// Intended for tests and wiring code, not for request handling.
func MustNew(raw string) ID {
	id, err := New(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// Normalize replaces every character outside [A-Za-z0-9_-] with an
// underscore. Normalization is deliberately lossy but stable: the same
// input always maps to the same id.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// String returns the id as a plain string for payloads and filters.
func (id ID) String() string { return string(id) }
