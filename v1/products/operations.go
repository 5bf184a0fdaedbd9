package products

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

// Every public operation runs the same sequence: ensure the collection,
// validate the vector (when one is involved), scope the query to the
// tenant, issue the backend call, translate the error.

// Search performs a similarity query against one named slot. A FlatVector
// query runs against the text slot; a NamedVector selects its slot. The
// account filter is always injected on top of the caller's filter.
func (s *Service) Search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	start := time.Now()
	results, err := s.search(ctx, req)
	s.observe("search", start, err)
	return results, err
}

func (s *Service) search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	ctx, done := s.span(ctx, "products.search")
	defer done()

	if err := s.EnsureCollection(ctx, 0); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		return nil, &vectordb.ValidationError{Field: "limit", Reason: "must be greater than 0"}
	}

	slot, values, err := s.queryVector(req.Vector)
	if err != nil {
		return nil, err
	}

	resp, err := s.backend.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.cfg.Collection,
		Query:          qdrant.NewQuery(values...),
		Using:          qdrant.PtrOf(string(slot)),
		Limit:          qdrant.PtrOf(uint64(req.Limit)),
		Filter:         toQdrantFilter(s.scopedFilter(req.Filter)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(req.WithVectors),
	})
	if err != nil {
		return nil, translate("search", err)
	}

	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, p := range resp {
		r, err := fromScoredPoint(p)
		if err != nil {
			return nil, translate("search", err)
		}
		results = append(results, r)
	}
	return results, nil
}

// queryVector resolves the slot and values of a search query. The map
// form is rejected: a similarity query targets exactly one slot.
func (s *Service) queryVector(v vectordb.Vector) (vectordb.Slot, []float32, error) {
	if err := s.ValidateVector(v); err != nil {
		return "", nil, err
	}
	switch vec := v.(type) {
	case vectordb.FlatVector:
		return vectordb.SlotText, []float32(vec), nil
	case vectordb.NamedVector:
		return vec.Slot, vec.Values, nil
	default:
		return "", nil, &vectordb.ValidationError{
			Field:  "vector",
			Reason: "search requires a flat or single-named vector",
		}
	}
}

// Scroll pages through the tenant's points without a query vector. The
// offset cursor is the one returned by the previous page, empty for the
// first page.
func (s *Service) Scroll(ctx context.Context, req vectordb.ScrollRequest) (*vectordb.ScrollResult, error) {
	start := time.Now()
	page, err := s.scroll(ctx, req)
	s.observe("scroll", start, err)
	return page, err
}

func (s *Service) scroll(ctx context.Context, req vectordb.ScrollRequest) (*vectordb.ScrollResult, error) {
	ctx, done := s.span(ctx, "products.scroll")
	defer done()

	if err := s.EnsureCollection(ctx, 0); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		return nil, &vectordb.ValidationError{Field: "limit", Reason: "must be greater than 0"}
	}

	offset, err := parseOffset(req.Offset)
	if err != nil {
		return nil, err
	}

	points, next, err := s.backend.ScrollAndOffset(ctx, &qdrant.ScrollPoints{
		CollectionName: s.cfg.Collection,
		Limit:          qdrant.PtrOf(uint32(req.Limit)),
		Offset:         offset,
		Filter:         toQdrantFilter(s.scopedFilter(req.Filter)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, translate("scroll", err)
	}

	result := &vectordb.ScrollResult{Points: make([]vectordb.Point, 0, len(points))}
	for _, p := range points {
		point, err := fromRetrievedPoint(p)
		if err != nil {
			return nil, translate("scroll", err)
		}
		result.Points = append(result.Points, point)
	}
	if next != nil {
		cursor, err := extractPointID(next)
		if err != nil {
			return nil, translate("scroll", err)
		}
		result.NextOffset = cursor
	}
	return result, nil
}

// parseOffset turns a cursor string back into a backend point id.
func parseOffset(cursor string) (*qdrant.PointId, error) {
	if cursor == "" {
		return nil, nil
	}
	if err := uuid.Validate(cursor); err == nil {
		return qdrant.NewIDUUID(cursor), nil
	}
	if n, err := strconv.ParseUint(cursor, 10, 64); err == nil {
		return qdrant.NewIDNum(n), nil
	}
	return nil, &vectordb.ValidationError{Field: "offset", Reason: "is not a valid scroll cursor"}
}

// Upsert creates or fully replaces one product point. The payload is
// cloned and stamped with the service's account id; the vectors must
// cover every named slot. A blank id generates one; the effective id is
// returned either way.
func (s *Service) Upsert(ctx context.Context, req vectordb.UpsertRequest) (string, error) {
	start := time.Now()
	id, err := s.upsert(ctx, req)
	s.observe("upsert", start, err)
	return id, err
}

func (s *Service) upsert(ctx context.Context, req vectordb.UpsertRequest) (string, error) {
	ctx, done := s.span(ctx, "products.upsert")
	defer done()

	if err := s.EnsureCollection(ctx, 0); err != nil {
		return "", err
	}
	if err := s.ValidateVector(req.Vectors); err != nil {
		return "", err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	id, err := normalizeID(id)
	if err != nil {
		return "", err
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(s.pointUUID(id)),
		Vectors: toQdrantVectors(req.Vectors),
		Payload: toQdrantPayload(s.stampPayload(req.Payload, id)),
	}

	_, err = s.backend.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.cfg.Collection,
		Points:         []*qdrant.PointStruct{point},
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return "", translate("upsert", err)
	}

	if s.metrics != nil {
		s.metrics.AddPointsUpserted(1)
	}
	s.logDebug("product upserted", map[string]interface{}{"id": id})
	return id, nil
}

// Find returns the tenant's point with the given id, or found=false when
// it is absent or belongs to a different account.
func (s *Service) Find(ctx context.Context, id string) (*vectordb.Point, bool, error) {
	start := time.Now()
	point, found, err := s.find(ctx, id)
	s.observe("find", start, err)
	return point, found, err
}

// FindX is Find that fails with a NotFoundError when the point is absent.
func (s *Service) FindX(ctx context.Context, id string) (*vectordb.Point, error) {
	point, found, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &vectordb.NotFoundError{Collection: s.cfg.Collection, ID: id}
	}
	return point, nil
}

func (s *Service) find(ctx context.Context, id string) (*vectordb.Point, bool, error) {
	ctx, done := s.span(ctx, "products.find")
	defer done()

	if err := s.EnsureCollection(ctx, 0); err != nil {
		return nil, false, err
	}
	id, err := normalizeID(id)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.backend.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.cfg.Collection,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(s.pointUUID(id))},
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, false, translate("find", err)
	}
	if len(resp) == 0 {
		return nil, false, nil
	}

	point, err := fromRetrievedPoint(resp[0])
	if err != nil {
		return nil, false, translate("find", err)
	}

	// Defense in depth: the id-derived lookup already scopes to the
	// tenant, but a point written by another producer must still never
	// cross the account boundary.
	if !s.ownedBy(point.Payload) {
		return nil, false, nil
	}
	return &point, true, nil
}

// Delete removes the tenant's point with the given id. Ownership is
// verified first, so an id held by a different account fails with a
// NotFoundError instead of deleting the other tenant's point.
func (s *Service) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.delete(ctx, id)
	s.observe("delete", start, err)
	return err
}

func (s *Service) delete(ctx context.Context, id string) error {
	ctx, done := s.span(ctx, "products.delete")
	defer done()

	point, err := s.FindX(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.backend.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewIDUUID(s.pointUUID(point.ID))},
				},
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return translate("delete", err)
	}

	s.logDebug("product deleted", map[string]interface{}{"id": point.ID})
	return nil
}

// VectorDimension returns the currently resolved embedding dimension.
func (s *Service) VectorDimension() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dim.Size
}

// CollectionName returns the collection this service operates on.
func (s *Service) CollectionName() string {
	return s.cfg.Collection
}

// Account returns the tenant this service is bound to.
func (s *Service) Account() string {
	return s.account.String()
}
