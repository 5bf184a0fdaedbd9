package products

import (
	"context"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

func multiVector(size int) vectordb.MultiVector {
	return vectordb.MultiVector{
		vectordb.SlotImage: vectorOf(size, 0.1),
		vectordb.SlotText:  vectorOf(size, 0.2),
	}
}

func TestUpsertStampsPayloadAndDerivesPointID(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	id, err := svc.Upsert(context.Background(), vectordb.UpsertRequest{
		ID: "p1",
		Payload: vectordb.Payload{
			"name":                  vectordb.String("Shirt"),
			"price":                 vectordb.Integer(200),
			vectordb.FieldAccountID: vectordb.String("shop-2"),
		},
		Vectors: multiVector(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	require.NotNil(t, backend.lastUpsert)
	require.Len(t, backend.lastUpsert.Points, 1)
	point := backend.lastUpsert.Points[0]

	assert.Equal(t, svc.pointUUID("p1"), point.Id.GetUuid())
	assert.Equal(t, "shop-1", point.Payload[vectordb.FieldAccountID].GetStringValue(),
		"caller-supplied account id must be overwritten")
	assert.Equal(t, "p1", point.Payload[FieldProductID].GetStringValue())
	assert.Equal(t, int64(200), point.Payload["price"].GetIntegerValue())

	named := point.Vectors.GetVectors()
	require.NotNil(t, named, "upsert must write named vectors")
	assert.Len(t, named.Vectors["image"].GetDense().GetData(), 4)
	assert.Len(t, named.Vectors["text"].GetDense().GetData(), 4)
	require.NotNil(t, backend.lastUpsert.Wait)
	assert.True(t, *backend.lastUpsert.Wait)
}

func TestUpsertGeneratesIDWhenBlank(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	id, err := svc.Upsert(context.Background(), vectordb.UpsertRequest{
		Payload: vectordb.Payload{"name": vectordb.String("Shirt")},
		Vectors: multiVector(4),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestUpsertRejectsMissingSlotWithoutBackendCall(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	_, err := svc.Upsert(context.Background(), vectordb.UpsertRequest{
		ID:      "p1",
		Vectors: vectordb.MultiVector{vectordb.SlotText: vectorOf(4, 0.2)},
	})
	require.True(t, vectordb.IsValidation(err))
	assert.Nil(t, backend.lastUpsert)
}

func TestSearchInjectsAccountFilterAndSlot(t *testing.T) {
	backend := &fakeBackend{
		queryFn: func(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
			return []*qdrant.ScoredPoint{
				{
					Id:    qdrant.NewIDUUID("8c2b12c7-24b4-5abf-9b20-1f9e8f6a1d30"),
					Score: 0.93,
					Payload: qdrant.NewValueMap(map[string]any{
						vectordb.FieldAccountID: "shop-1",
						FieldProductID:          "p1",
						"name":                  "Shirt",
					}),
				},
			}, nil
		},
	}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	results, err := svc.Search(context.Background(), vectordb.SearchRequest{
		Vector: vectordb.NamedVector{Slot: vectordb.SlotImage, Values: vectorOf(4, 0.3)},
		Limit:  10,
		Filter: vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("category", "apparel"))),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
	assert.Equal(t, float32(0.93), results[0].Score)
	assert.Equal(t, "Shirt", results[0].Payload["name"].Str())

	req := backend.lastQuery
	require.NotNil(t, req)
	require.NotNil(t, req.Using)
	assert.Equal(t, "image", *req.Using)
	require.NotNil(t, req.Limit)
	assert.Equal(t, uint64(10), *req.Limit)

	// The Must clause carries the account condition first, then the
	// caller's filter nested as a sub-filter.
	require.NotNil(t, req.Filter)
	require.Len(t, req.Filter.Must, 2)
	accountCond := req.Filter.Must[0].GetField()
	require.NotNil(t, accountCond)
	assert.Equal(t, vectordb.FieldAccountID, accountCond.Key)
	assert.Equal(t, "shop-1", accountCond.Match.GetKeyword())
	nested := req.Filter.Must[1].GetFilter()
	require.NotNil(t, nested)
	require.Len(t, nested.Must, 1)
	assert.Equal(t, "category", nested.Must[0].GetField().Key)
}

func TestSearchFlatVectorTargetsTextSlot(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	_, err := svc.Search(context.Background(), vectordb.SearchRequest{
		Vector: vectordb.FlatVector(vectorOf(4, 0.3)),
		Limit:  5,
	})
	require.NoError(t, err)
	require.NotNil(t, backend.lastQuery)
	assert.Equal(t, "text", *backend.lastQuery.Using)
}

func TestSearchRequiresLimitAndSingleVector(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	_, err := svc.Search(context.Background(), vectordb.SearchRequest{
		Vector: vectordb.FlatVector(vectorOf(4, 0.3)),
	})
	require.True(t, vectordb.IsValidation(err))

	_, err = svc.Search(context.Background(), vectordb.SearchRequest{
		Vector: multiVector(4),
		Limit:  5,
	})
	require.True(t, vectordb.IsValidation(err))
	assert.Nil(t, backend.lastQuery)
}

func TestScrollPagesWithCursor(t *testing.T) {
	next := qdrant.NewIDUUID("a5ef2f07-9b1a-52a3-8c5b-3d0d0f2b9f11")
	backend := &fakeBackend{
		scrollFn: func(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error) {
			return []*qdrant.RetrievedPoint{
				{
					Id: qdrant.NewIDUUID("8c2b12c7-24b4-5abf-9b20-1f9e8f6a1d30"),
					Payload: qdrant.NewValueMap(map[string]any{
						vectordb.FieldAccountID: "shop-1",
						FieldProductID:          "p1",
					}),
				},
			}, next, nil
		},
	}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	page, err := svc.Scroll(context.Background(), vectordb.ScrollRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Points, 1)
	assert.Equal(t, "p1", page.Points[0].ID)
	assert.Equal(t, "a5ef2f07-9b1a-52a3-8c5b-3d0d0f2b9f11", page.NextOffset)

	// Second page resumes from the cursor and carries the account filter.
	_, err = svc.Scroll(context.Background(), vectordb.ScrollRequest{Limit: 1, Offset: page.NextOffset})
	require.NoError(t, err)
	require.NotNil(t, backend.lastScroll.Offset)
	assert.Equal(t, "a5ef2f07-9b1a-52a3-8c5b-3d0d0f2b9f11", backend.lastScroll.Offset.GetUuid())
	require.NotNil(t, backend.lastScroll.Filter)
	assert.Equal(t, vectordb.FieldAccountID, backend.lastScroll.Filter.Must[0].GetField().Key)
}

func TestScrollRejectsMalformedCursor(t *testing.T) {
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), &fakeBackend{})

	_, err := svc.Scroll(context.Background(), vectordb.ScrollRequest{Limit: 1, Offset: "not-a-cursor"})
	require.True(t, vectordb.IsValidation(err))
}

func TestFindChecksOwnership(t *testing.T) {
	otherTenant := qdrant.NewValueMap(map[string]any{
		vectordb.FieldAccountID: "shop-2",
		FieldProductID:          "p1",
	})
	backend := &fakeBackend{
		getFn: func(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
			return []*qdrant.RetrievedPoint{{
				Id:      req.Ids[0],
				Payload: otherTenant,
			}}, nil
		},
	}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	// A point whose payload names another account is treated as absent.
	point, found, err := svc.Find(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, point)

	_, err = svc.FindX(context.Background(), "p1")
	var notFound *vectordb.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "p1", notFound.ID)
	assert.Equal(t, "products", notFound.Collection)
}

func TestFindReturnsOwnedPoint(t *testing.T) {
	backend := &fakeBackend{
		getFn: func(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
			return []*qdrant.RetrievedPoint{{
				Id: req.Ids[0],
				Payload: qdrant.NewValueMap(map[string]any{
					vectordb.FieldAccountID: "shop-1",
					FieldProductID:          "p1",
					"name":                  "Shirt",
				}),
			}}, nil
		},
	}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	point, found, err := svc.Find(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "p1", point.ID)
	assert.Equal(t, "shop-1", point.Payload.AccountID())
	assert.Equal(t, "Shirt", point.Payload["name"].Str())

	require.NotNil(t, backend.lastGet)
	assert.Equal(t, svc.pointUUID("p1"), backend.lastGet.Ids[0].GetUuid())
}

func TestDeleteVerifiesOwnershipFirst(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	// Absent id: the delete never reaches the backend.
	err := svc.Delete(context.Background(), "ghost")
	require.True(t, vectordb.IsNotFound(err))
	assert.Equal(t, 0, backend.deleteCalls)
}

func TestDeleteRemovesOwnedPoint(t *testing.T) {
	backend := &fakeBackend{
		getFn: func(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
			return []*qdrant.RetrievedPoint{{
				Id: req.Ids[0],
				Payload: qdrant.NewValueMap(map[string]any{
					vectordb.FieldAccountID: "shop-1",
					FieldProductID:          "p1",
				}),
			}}, nil
		},
	}
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4), backend)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	require.Equal(t, 1, backend.deleteCalls)

	ids := backend.lastDelete.Points.GetPoints().Ids
	require.Len(t, ids, 1)
	assert.Equal(t, svc.pointUUID("p1"), ids[0].GetUuid())
}

func TestAccessors(t *testing.T) {
	svc := newTestService(t, DefaultConfig().WithVectorDimension(4).WithCollection("catalog"), &fakeBackend{})

	assert.Equal(t, uint64(4), svc.VectorDimension())
	assert.Equal(t, "catalog", svc.CollectionName())
	assert.Equal(t, "shop-1", svc.Account())
}
