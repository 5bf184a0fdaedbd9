package products

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

//
// ──────────────────────────────────────────────────────────────
//   TENANT-SCOPED QUERY BUILDER
// ──────────────────────────────────────────────────────────────
//
// Injects the account-identity filter into every search, scroll and find,
// and stamps every stored payload with the owning account. Isolation is
// by filter, not by physical partition: all tenants share one collection.
//

// FieldProductID is the payload field carrying the caller-facing product
// id. Point ids in the backend are UUIDs derived from it.
const FieldProductID = "product_id"

// scopedFilter returns the account-equality condition AND (when present)
// the caller's filter. The caller's filter is nested as a sub-filter so
// its Should/MustNot clauses cannot widen the query beyond the tenant.
func (s *Service) scopedFilter(callerFilter *vectordb.FilterSet) *vectordb.FilterSet {
	scope := vectordb.NewFilterSet(
		vectordb.Must(vectordb.NewMatch(vectordb.FieldAccountID, s.account.String())),
	)
	if callerFilter == nil {
		return scope
	}
	return &vectordb.FilterSet{
		Must: &vectordb.ConditionSet{
			Conditions: append(scope.Must.Conditions, &nestedFilterCondition{Filter: callerFilter}),
		},
	}
}

// nestedFilterCondition wraps a whole FilterSet as a single condition of
// an outer clause. Only the backend converter understands it.
type nestedFilterCondition struct {
	Filter *vectordb.FilterSet
}

func (c *nestedFilterCondition) IsFilterCondition() {}

// stampPayload copies the payload and force-overwrites its account and
// product-id fields. Callers cannot spoof another tenant's ownership.
func (s *Service) stampPayload(payload vectordb.Payload, productID string) vectordb.Payload {
	stamped := payload.Clone()
	if stamped == nil {
		stamped = vectordb.Payload{}
	}
	stamped[vectordb.FieldAccountID] = vectordb.String(s.account.String())
	stamped[FieldProductID] = vectordb.String(productID)
	return stamped
}

// ownedBy reports whether a returned payload belongs to this service's
// tenant. Applied on id-based lookups as defense in depth against
// encoding or backend drift.
func (s *Service) ownedBy(payload vectordb.Payload) bool {
	return payload.AccountID() == s.account.String()
}

// normalizeID trims and validates an external product id.
func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &vectordb.ValidationError{Field: "id", Reason: "must not be blank"}
	}
	return id, nil
}

// pointUUID derives the backend point id from the tenant and the external
// product id. The derivation is deterministic, so the same product id
// always maps to the same point, and the same external id under two
// tenants maps to two distinct points.
func (s *Service) pointUUID(productID string) string {
	name := s.account.String() + "/" + productID
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
