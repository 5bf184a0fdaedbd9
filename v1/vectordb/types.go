package vectordb

// Slot identifies one of the fixed embedding channels stored per point.
// Every product point carries one vector per slot; the set of slots is
// fixed at collection-creation time and never grows at runtime.
type Slot string

const (
	// SlotImage holds the image embedding of a product.
	SlotImage Slot = "image"

	// SlotText holds the text embedding of a product.
	SlotText Slot = "text"
)

// Slots returns the full set of named vector slots every collection
// and every stored point must provide.
func Slots() []Slot {
	return []Slot{SlotImage, SlotText}
}

// ── Vector Variants ──────────────────────────────────────────────────────────

// Vector is the tagged union of the three vector shapes callers may supply:
//
//   - FlatVector  — a bare embedding with no slot attached
//   - NamedVector — an embedding targeting a single named slot
//   - MultiVector — one embedding per named slot (upsert form)
//
// Validation and search dispatch on the concrete type rather than on
// structural inspection of an untyped value.
type Vector interface {
	isVector()
}

// FlatVector is a bare embedding. Searches using a FlatVector run against
// the text slot by default.
type FlatVector []float32

func (FlatVector) isVector() {}

// NamedVector is an embedding addressed to a single named slot,
// the search form for "find by image" / "find by text".
type NamedVector struct {
	Slot   Slot      `json:"name"`
	Values []float32 `json:"vector"`
}

func (NamedVector) isVector() {}

// MultiVector carries one embedding per named slot. Upserts require a
// MultiVector with every slot present.
type MultiVector map[Slot][]float32

func (MultiVector) isVector() {}

// ── Points and Requests ──────────────────────────────────────────────────────

// Point is one product record: an opaque external id, a payload, and
// (optionally, when requested) the stored per-slot vectors.
type Point struct {
	// ID is the caller-facing product identifier.
	ID string `json:"id"`

	// Payload contains the product attributes, always including the
	// owning account id.
	Payload Payload `json:"payload"`

	// Vectors holds the stored embeddings per slot, only populated when
	// the operation requested vectors.
	Vectors MultiVector `json:"vectors,omitempty"`
}

// SearchRequest is a single similarity query against the collection.
type SearchRequest struct {
	// Vector is the query embedding: a NamedVector selects the slot to
	// search; a FlatVector searches the text slot.
	Vector Vector `json:"vector"`

	// Limit is the maximum number of results to return. Required.
	Limit int `json:"limit"`

	// Filter is optional payload filtering, combined (AND) with the
	// enforced account filter.
	Filter *FilterSet `json:"filter,omitempty"`

	// WithVectors requests the stored embeddings in the results.
	WithVectors bool `json:"withVectors,omitempty"`
}

// SearchResult is one similarity match.
type SearchResult struct {
	Point

	// Score is the cosine similarity of the match (higher is closer).
	Score float32 `json:"score"`
}

// ScrollRequest pages through the collection without a query vector.
type ScrollRequest struct {
	// Limit is the page size. Required.
	Limit int `json:"limit"`

	// Offset is the cursor returned by a previous scroll, empty for the
	// first page.
	Offset string `json:"offset,omitempty"`

	// Filter is optional payload filtering, combined (AND) with the
	// enforced account filter.
	Filter *FilterSet `json:"filter,omitempty"`
}

// ScrollResult is one page of points plus the cursor for the next page.
type ScrollResult struct {
	Points []Point `json:"points"`

	// NextOffset is the cursor for the following page, empty when the
	// scroll is exhausted.
	NextOffset string `json:"nextOffset,omitempty"`
}

// UpsertRequest creates or fully replaces one product point. The storage
// layer does not patch: callers merge payloads themselves before calling.
type UpsertRequest struct {
	// ID is the external product id. When blank, an id is generated and
	// returned by Upsert.
	ID string `json:"id"`

	// Payload holds the product attributes. The owning account id is
	// force-written by the service regardless of what the caller set.
	Payload Payload `json:"payload"`

	// Vectors must provide an embedding for every named slot.
	Vectors MultiVector `json:"vectors"`
}
