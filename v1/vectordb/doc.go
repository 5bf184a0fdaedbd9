// Package vectordb defines the backend-agnostic data model for the product
// vector store: named vector slots, tagged vector variants, typed payloads,
// dimension resolution, filter trees, and the error taxonomy adapters
// translate into.
//
// # Vector Variants
//
// Callers supply vectors in one of three shapes, modeled as a tagged union
// instead of duck-typed structural inspection:
//
//	vectordb.FlatVector{0.1, 0.2, ...}                       // bare embedding
//	vectordb.NamedVector{Slot: vectordb.SlotImage, Values: v} // one named slot
//	vectordb.MultiVector{vectordb.SlotImage: vi, vectordb.SlotText: vt}
//
// Validation and search dispatch on the concrete type. Upserts require a
// MultiVector covering every slot returned by [Slots].
//
// # Payloads
//
// Product attributes are dynamic by name but closed by kind: string, number,
// integer, bool, or list of strings, expressed as [Value]. The owning tenant
// lives in the [FieldAccountID] payload field, enforced by the service
// layer rather than by convention.
//
//	payload := vectordb.Payload{
//	    "name":  vectordb.String("Shirt"),
//	    "price": vectordb.Integer(200),
//	    "tags":  vectordb.StringList("cotton", "summer"),
//	}
//
// # Dimension Resolution
//
// The embedding dimension all slots must share is negotiated once per
// service instance. [DimensionResolution] pairs the size with a source tag
// (configured, observed, inferred, default) and [DimensionResolution.Reconcile]
// merges new evidence as a pure function: the backend's observed size is
// always authoritative, asserted conflicts raise [DimensionMismatchError],
// and inference from first-seen data is one-directional.
//
// # Errors
//
// Adapters surface exactly five error classes: [NotFoundError],
// [DimensionMismatchError], [ConfigurationError], [ValidationError], and
// [TransportError]. All are errors.As-friendly and carry the context
// (collection name, expected vs actual, missing slots) needed to act on
// them without reading logs.
package vectordb
