package vectordb

// DefaultDimension is the fallback embedding dimension when nothing is
// configured, observed, or inferred.
const DefaultDimension uint64 = 512

// DimensionSource tags where a resolved dimension came from. Higher values
// take precedence when two resolutions agree on size; when they disagree,
// an observed (backend) size is always authoritative.
type DimensionSource int

const (
	// SourceDefault - the hardcoded fallback, weakest claim
	SourceDefault DimensionSource = iota
	// SourceInferred - taken from the first vector a caller supplied
	SourceInferred
	// SourceConfigured - explicitly set via configuration or a caller hint
	SourceConfigured
	// SourceObserved - read from an existing backend collection, authoritative
	SourceObserved
)

// String returns the source name for error messages and logs.
func (s DimensionSource) String() string {
	switch s {
	case SourceInferred:
		return "inferred"
	case SourceConfigured:
		return "configured"
	case SourceObserved:
		return "observed"
	default:
		return "default"
	}
}

// DimensionResolution is the explicit state of dimension negotiation: a
// size and where it came from. Reconciliation is a pure function of the
// existing resolution and new evidence, so there is no hidden mutable
// field being overwritten from scattered call sites.
type DimensionResolution struct {
	Size   uint64
	Source DimensionSource
}

// DefaultResolution returns the weakest resolution: the hardcoded fallback.
func DefaultResolution() DimensionResolution {
	return DimensionResolution{Size: DefaultDimension, Source: SourceDefault}
}

// ConfiguredResolution returns a resolution for an explicitly configured
// dimension, or the default resolution when size is not positive.
func ConfiguredResolution(size uint64) DimensionResolution {
	if size == 0 {
		return DefaultResolution()
	}
	return DimensionResolution{Size: size, Source: SourceConfigured}
}

// Reconcile merges new evidence into an existing resolution and returns
// the winner. Rules:
//
//   - Zero-size evidence changes nothing.
//   - Evidence always replaces the default fallback.
//   - Matching sizes keep the stronger source.
//   - An observed size wins any conflict; conflicting asserted sizes
//     (configured or inferred) additionally raise DimensionMismatchError
//     with expected = the observed size, actual = the losing claim.
//   - A conflicting weaker claim against an already-observed size raises
//     DimensionMismatchError without changing the resolution.
//   - Otherwise a stronger source replaces a weaker one; an equal-or-weaker
//     conflicting claim is rejected with DimensionMismatchError.
//
// The returned resolution is valid even when an error is returned, so the
// caller can keep the authoritative state while failing the operation.
func (r DimensionResolution) Reconcile(evidence DimensionResolution) (DimensionResolution, error) {
	if evidence.Size == 0 {
		return r, nil
	}
	if r.Size == 0 || r.Source == SourceDefault {
		return evidence, nil
	}
	if evidence.Size == r.Size {
		if evidence.Source > r.Source {
			return evidence, nil
		}
		return r, nil
	}

	switch {
	case r.Source == SourceObserved:
		return r, &DimensionMismatchError{Expected: r.Size, Actual: evidence.Size}
	case evidence.Source == SourceObserved:
		// The existing collection wins; the previously asserted size was wrong.
		return evidence, &DimensionMismatchError{Expected: evidence.Size, Actual: r.Size}
	case evidence.Source > r.Source:
		return evidence, nil
	default:
		return r, &DimensionMismatchError{Expected: r.Size, Actual: evidence.Size}
	}
}
