package vectordb

import (
	"errors"
	"fmt"
	"strings"
)

// The error taxonomy every vector backend adapter translates into.
// Each error carries enough context (collection name, expected vs actual
// dimension, missing slot names) for an operator to self-diagnose without
// reading logs.

// NotFoundError is returned when a point id is absent from the collection
// or belongs to a different account.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vectordb: point %q not found in collection %q", e.ID, e.Collection)
}

// DimensionMismatchError is returned when a vector's length disagrees with
// the resolved collection dimension. It is raised both proactively by the
// client-side shape check and reactively when the backend rejects a write.
type DimensionMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf(
		"vectordb: vector dimension mismatch: expected %d, got %d (recreate the collection or change the configured dimension)",
		e.Expected, e.Actual)
}

// ConfigurationError is returned when an existing collection does not carry
// the required named-vector schema. It is never auto-healed: the collection
// must be recreated by an operator.
type ConfigurationError struct {
	Collection string
	Missing    []Slot
	Reason     string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "vectordb: collection %q has an invalid vector schema", e.Collection)
	if len(e.Missing) > 0 {
		names := make([]string, len(e.Missing))
		for i, s := range e.Missing {
			names[i] = string(s)
		}
		fmt.Fprintf(&b, ": missing named vector(s) %s", strings.Join(names, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	b.WriteString("; recreate the collection with named image and text vectors")
	return b.String()
}

// ValidationError is returned for malformed input: a vector of the wrong
// shape, a missing required slot, or a blank id.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "vectordb: " + e.Reason
	}
	return fmt.Sprintf("vectordb: %s %s", e.Field, e.Reason)
}

// TransportError wraps a network or backend-side failure that did not match
// any known pattern. The underlying error is preserved unchanged.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("vectordb: %s: backend unavailable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ── Classification helpers ───────────────────────────────────────────────────

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsDimensionMismatch reports whether err is a DimensionMismatchError.
func IsDimensionMismatch(err error) bool {
	var target *DimensionMismatchError
	return errors.As(err, &target)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
