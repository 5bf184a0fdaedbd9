package products

import (
	"fmt"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

//
// ──────────────────────────────────────────────────────────────
//   VECTOR VALIDATOR
// ──────────────────────────────────────────────────────────────
//
// Shape-checks caller-supplied vectors against the resolved dimension.
// Dispatch is on the vector variant tag: flat, single-named, or the
// per-slot map form. Inference is one-directional: the first accepted
// vector of unknown dimension sets the resolved dimension for the rest
// of the instance's life.
//

// ValidateVector checks a vector of any variant against the resolved
// dimension. The map form additionally requires every named slot to be
// present; a missing slot fails with a per-slot validation error.
func (s *Service) ValidateVector(v vectordb.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked(v)
}

func (s *Service) validateLocked(v vectordb.Vector) error {
	switch vec := v.(type) {
	case vectordb.FlatVector:
		return s.validateValues([]float32(vec), "vector")

	case vectordb.NamedVector:
		if !validSlot(vec.Slot) {
			return &vectordb.ValidationError{
				Field:  "name",
				Reason: fmt.Sprintf("unknown vector slot %q", vec.Slot),
			}
		}
		return s.validateValues(vec.Values, string(vec.Slot))

	case vectordb.MultiVector:
		for _, slot := range vectordb.Slots() {
			values, ok := vec[slot]
			if !ok {
				return &vectordb.ValidationError{
					Field:  string(slot),
					Reason: "must be provided",
				}
			}
			if err := s.validateValues(values, string(slot)); err != nil {
				return err
			}
		}
		return nil

	case nil:
		return &vectordb.ValidationError{Field: "vector", Reason: "must not be nil"}

	default:
		return &vectordb.ValidationError{
			Field:  "vector",
			Reason: fmt.Sprintf("unsupported vector variant %T", v),
		}
	}
}

// validateValues checks one flat array: non-empty, and its length must
// equal the resolved dimension once one is authoritative. An unknown
// dimension adopts the array's length.
func (s *Service) validateValues(values []float32, field string) error {
	if len(values) == 0 {
		return &vectordb.ValidationError{Field: field, Reason: "must be a non-empty numeric array"}
	}

	next, err := s.dim.Reconcile(vectordb.DimensionResolution{
		Size:   uint64(len(values)),
		Source: vectordb.SourceInferred,
	})
	s.dim = next
	return err
}

func validSlot(slot vectordb.Slot) bool {
	for _, known := range vectordb.Slots() {
		if slot == known {
			return true
		}
	}
	return false
}
