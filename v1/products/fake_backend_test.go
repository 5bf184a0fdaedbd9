package products

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// fakeBackend is a hand-written Backend double. Each method delegates to
// an overridable function field; unset fields fall back to a benign
// in-memory default so tests only wire the behavior they exercise.
type fakeBackend struct {
	listFn   func(ctx context.Context) ([]string, error)
	createFn func(ctx context.Context, req *qdrant.CreateCollection) error
	infoFn   func(ctx context.Context, name string) (*qdrant.CollectionInfo, error)
	upsertFn func(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	queryFn  func(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	scrollFn func(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error)
	getFn    func(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error)
	deleteFn func(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error)

	listCalls   int
	createCalls int
	deleteCalls int

	lastCreate *qdrant.CreateCollection
	lastUpsert *qdrant.UpsertPoints
	lastQuery  *qdrant.QueryPoints
	lastScroll *qdrant.ScrollPoints
	lastGet    *qdrant.GetPoints
	lastDelete *qdrant.DeletePoints
}

func (f *fakeBackend) ListCollections(ctx context.Context) ([]string, error) {
	f.listCalls++
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []string{"products"}, nil
}

func (f *fakeBackend) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	f.createCalls++
	f.lastCreate = req
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return nil
}

func (f *fakeBackend) GetCollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if f.infoFn != nil {
		return f.infoFn(ctx, name)
	}
	return namedSchemaInfo(4), nil
}

func (f *fakeBackend) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.lastUpsert = req
	if f.upsertFn != nil {
		return f.upsertFn(ctx, req)
	}
	return &qdrant.UpdateResult{}, nil
}

func (f *fakeBackend) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.lastQuery = req
	if f.queryFn != nil {
		return f.queryFn(ctx, req)
	}
	return nil, nil
}

func (f *fakeBackend) ScrollAndOffset(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error) {
	f.lastScroll = req
	if f.scrollFn != nil {
		return f.scrollFn(ctx, req)
	}
	return nil, nil, nil
}

func (f *fakeBackend) Get(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
	f.lastGet = req
	if f.getFn != nil {
		return f.getFn(ctx, req)
	}
	return nil, nil
}

func (f *fakeBackend) Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error) {
	f.deleteCalls++
	f.lastDelete = req
	if f.deleteFn != nil {
		return f.deleteFn(ctx, req)
	}
	return &qdrant.UpdateResult{}, nil
}

// namedSchemaInfo builds collection info carrying the required
// named-vector schema at the given size.
func namedSchemaInfo(size uint64) *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: &qdrant.VectorsConfig{
					Config: &qdrant.VectorsConfig_ParamsMap{
						ParamsMap: &qdrant.VectorParamsMap{
							Map: map[string]*qdrant.VectorParams{
								"image": {Size: size, Distance: qdrant.Distance_Cosine},
								"text":  {Size: size, Distance: qdrant.Distance_Cosine},
							},
						},
					},
				},
			},
		},
	}
}

// legacySchemaInfo builds collection info in the single-unnamed-vector form.
func legacySchemaInfo(size uint64) *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: &qdrant.VectorsConfig{
					Config: &qdrant.VectorsConfig_Params{
						Params: &qdrant.VectorParams{Size: size, Distance: qdrant.Distance_Cosine},
					},
				},
			},
		},
	}
}

func vectorOf(size int, fill float32) []float32 {
	v := make([]float32, size)
	for i := range v {
		v[i] = fill
	}
	return v
}
