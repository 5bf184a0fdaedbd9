package products

import (
	"context"
	"sync"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/search-store/v1/account"
	"github.com/Aleph-Alpha/search-store/v1/logger"
	"github.com/Aleph-Alpha/search-store/v1/metrics"
	"github.com/Aleph-Alpha/search-store/v1/tracer"
	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

// Backend is the slice of the Qdrant SDK surface the Service consumes.
// *qdrant.Client satisfies it; unit tests swap in a fake.
type Backend interface {
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	ScrollAndOffset(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error)
	Get(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error)
	Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error)
}

// Service is the tenant-scoped product vector store. One instance serves
// exactly one account; every read carries the account filter and every
// write stamps the account id into the stored payload.
//
// The collection-checked latch and the resolved dimension are per
// instance and guarded by a mutex, so a single instance is safe to share
// across goroutines.
type Service struct {
	cfg     *Config
	account account.ID
	backend Backend

	log     *logger.Logger
	metrics *metrics.Metrics
	tracer  *tracer.Tracer

	mu      sync.Mutex
	checked bool
	dim     vectordb.DimensionResolution
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics attaches the per-operation metrics observer.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer attaches the tracer; every public operation then opens a span.
func WithTracer(t *tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New constructs a Service for one tenant. A nil cfg falls back to
// DefaultConfig. The configured dimension override, when positive, seeds
// the dimension resolution; otherwise the resolution starts at the
// default and is refined by observation or inference.
func New(cfg *Config, acct account.ID, backend Backend, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if backend == nil {
		return nil, &vectordb.ValidationError{Field: "backend", Reason: "must not be nil"}
	}
	if _, err := account.New(acct.String()); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:     cfg,
		account: acct,
		backend: backend,
		dim:     vectordb.ConfiguredResolution(cfg.VectorDimension),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Factory builds per-tenant Service instances over a shared backend
// connection and shared observability collaborators.
type Factory struct {
	cfg     *Config
	backend Backend
	opts    []Option
}

// NewFactory wires the shared collaborators once; For then stamps out one
// Service per tenant.
func NewFactory(cfg *Config, backend Backend, opts ...Option) *Factory {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Factory{cfg: cfg, backend: backend, opts: opts}
}

// For returns a Service bound to the given account.
func (f *Factory) For(acct account.ID) (*Service, error) {
	return New(f.cfg, acct, f.backend, f.opts...)
}
