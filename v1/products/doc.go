// Package products is the multi-tenant product vector store: a
// tenant-scoped layer over Qdrant that owns collection lifecycle,
// vector-dimension negotiation, account isolation, and backend error
// translation.
//
// # Overview
//
// One Service instance serves exactly one account. Every public operation
// composes four concerns in sequence:
//
//  1. Collection Manager — EnsureCollection creates the named multi-vector
//     collection (image + text slots, cosine distance) when absent, and
//     validates the schema of an existing one. Idempotent per instance.
//  2. Vector Validator — ValidateVector shape-checks flat, single-named,
//     and per-slot map vectors against the resolved dimension, inferring
//     the dimension from the first vector seen when nothing stronger is
//     known.
//  3. Tenant-Scoped Query Builder — every search, scroll, and find carries
//     an account_id filter; every upsert stamps the stored payload with
//     the owning account. Isolation is by filter, not by collection.
//  4. Error Translator — backend rejections matching the wrong-dimension
//     pattern become vectordb.DimensionMismatchError; transport-class
//     failures become vectordb.TransportError; everything else passes
//     through unchanged.
//
// # Usage
//
//	cfg := products.FromEnv()
//	client, err := products.NewClient(cfg, log)
//	if err != nil { ... }
//
//	svc, err := products.New(cfg, account.MustNew("shop-1"), client.Backend())
//	if err != nil { ... }
//
//	id, err := svc.Upsert(ctx, vectordb.UpsertRequest{
//	    ID:      "p1",
//	    Payload: vectordb.Payload{"name": vectordb.String("Shirt")},
//	    Vectors: vectordb.MultiVector{
//	        vectordb.SlotImage: imageVec,
//	        vectordb.SlotText:  textVec,
//	    },
//	})
//
//	results, err := svc.Search(ctx, vectordb.SearchRequest{
//	    Vector: vectordb.NamedVector{Slot: vectordb.SlotImage, Values: queryVec},
//	    Limit:  10,
//	})
//
// # Dimension Resolution
//
// The embedding dimension is resolved in priority order: explicitly
// configured (PRODUCTS_VECTOR_DIMENSION, legacy alias QDRANT_VECTOR_SIZE),
// observed from an existing backend collection, inferred from the first
// vector a caller supplies, hardcoded fallback of 512. An existing
// collection's dimension is authoritative: a conflicting configured value
// or size hint fails with a DimensionMismatchError instead of silently
// coercing.
//
// # Configuration
//
// products.FromEnv reads QDRANT_ENDPOINT, QDRANT_PORT, QDRANT_API_KEY,
// PRODUCTS_COLLECTION (default "products"), and the dimension override
// aliases. Nothing outside FromEnv touches the environment.
//
// # Errors
//
// All failures use the vectordb taxonomy (NotFoundError,
// DimensionMismatchError, ConfigurationError, ValidationError,
// TransportError). HTTPStatus maps the taxonomy for HTTP handlers:
// 404, 422, 422, 502 respectively, 500 for everything else.
package products
