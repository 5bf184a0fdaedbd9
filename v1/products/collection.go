package products

import (
	"context"
	"slices"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

//
// ──────────────────────────────────────────────────────────────
//   COLLECTION MANAGER
// ──────────────────────────────────────────────────────────────
//
// Ensures the named multi-vector collection exists with the correct
// per-slot dimensionality before any read or write, and reconciles the
// configured or inferred dimension against the backend's actual stored
// configuration. An existing collection's dimension is authoritative.
//

// EnsureCollection verifies the collection exists and carries the required
// named-vector schema, creating it when absent. It is idempotent per
// Service instance: after the first success it is a no-op until process
// restart.
//
// A positive sizeHint is tentatively adopted as the resolved dimension
// before the backend is consulted. When the collection already exists,
// its stored dimension wins; a positive hint that disagrees with it fails
// with a DimensionMismatchError carrying expected (existing) and actual
// (hint) rather than silently coercing.
//
// A transport failure during the read-only configuration fetch is
// swallowed (the backend schema stays unknown and the resolved dimension
// stands); failure during list or create propagates.
func (s *Service) EnsureCollection(ctx context.Context, sizeHint uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(ctx, sizeHint)
}

func (s *Service) ensureLocked(ctx context.Context, sizeHint uint64) error {
	if s.checked {
		return nil
	}

	start := time.Now()
	err := s.reconcileCollection(ctx, sizeHint)
	s.observe("ensure_collection", start, err)
	return err
}

func (s *Service) reconcileCollection(ctx context.Context, sizeHint uint64) error {
	if sizeHint > 0 {
		next, err := s.dim.Reconcile(vectordb.ConfiguredResolution(sizeHint))
		s.dim = next
		if err != nil {
			return err
		}
	}

	names, err := s.backend.ListCollections(ctx)
	if err != nil {
		return translate("list_collections", err)
	}

	if !slices.Contains(names, s.cfg.Collection) {
		if err := s.createCollection(ctx); err != nil {
			// Concurrent instances may race to create the same missing
			// collection; the backend's "already exists" is a benign outcome.
			if !isAlreadyExists(err) {
				return translate("create_collection", err)
			}
			s.logDebug("collection created concurrently, adopting it", nil)
		}
		// The collection now exists at the resolved size, so that size is
		// as authoritative as one read back from the backend. Weaker
		// sources must not re-infer it afterwards.
		s.dim = vectordb.DimensionResolution{
			Size:   s.dim.Size,
			Source: vectordb.SourceObserved,
		}
		s.checked = true
		return nil
	}

	info, err := s.backend.GetCollectionInfo(ctx, s.cfg.Collection)
	if err != nil {
		// Read-only fetch: the schema stays unknown and the resolved
		// dimension stands.
		s.logWarn("could not fetch collection config, keeping resolved dimension", err)
		s.checked = true
		return nil
	}

	observed, err := s.observedDimension(info)
	if err != nil {
		return err
	}

	next, err := s.dim.Reconcile(vectordb.DimensionResolution{
		Size:   observed,
		Source: vectordb.SourceObserved,
	})
	s.dim = next
	if err != nil {
		return err
	}

	s.checked = true
	return nil
}

// createCollection creates the collection with both named slots at the
// resolved dimension and cosine distance.
func (s *Service) createCollection(ctx context.Context) error {
	params := make(map[string]*qdrant.VectorParams, len(vectordb.Slots()))
	for _, slot := range vectordb.Slots() {
		params[string(slot)] = &qdrant.VectorParams{
			Size:     s.dim.Size,
			Distance: qdrant.Distance_Cosine,
		}
	}

	return s.backend.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.cfg.Collection,
		VectorsConfig:  qdrant.NewVectorsConfigMap(params),
	})
}

// observedDimension extracts the per-slot dimension from an existing
// collection's configuration. The schema must be the named-vector map
// containing every required slot with equal positive sizes; a legacy
// single-unnamed-vector collection or a missing slot is rejected with a
// ConfigurationError, never silently degraded.
func (s *Service) observedDimension(info *qdrant.CollectionInfo) (uint64, error) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, &vectordb.ConfigurationError{
			Collection: s.cfg.Collection,
			Reason:     "no vector configuration",
		}
	}

	switch cfg := info.Config.Params.VectorsConfig.Config.(type) {
	case *qdrant.VectorsConfig_Params:
		return 0, &vectordb.ConfigurationError{
			Collection: s.cfg.Collection,
			Missing:    vectordb.Slots(),
			Reason:     "legacy single-unnamed-vector schema",
		}

	case *qdrant.VectorsConfig_ParamsMap:
		if cfg.ParamsMap == nil {
			return 0, &vectordb.ConfigurationError{
				Collection: s.cfg.Collection,
				Missing:    vectordb.Slots(),
			}
		}
		return s.dimensionFromParamsMap(cfg.ParamsMap.Map)

	default:
		return 0, &vectordb.ConfigurationError{
			Collection: s.cfg.Collection,
			Reason:     "unrecognized vector configuration",
		}
	}
}

func (s *Service) dimensionFromParamsMap(params map[string]*qdrant.VectorParams) (uint64, error) {
	var missing []vectordb.Slot
	var size uint64

	for _, slot := range vectordb.Slots() {
		p, ok := params[string(slot)]
		if !ok || p == nil || p.Size == 0 {
			missing = append(missing, slot)
			continue
		}
		if size == 0 {
			size = p.Size
			continue
		}
		if p.Size != size {
			return 0, &vectordb.ConfigurationError{
				Collection: s.cfg.Collection,
				Reason:     "named vectors have differing sizes",
			}
		}
	}

	if len(missing) > 0 {
		return 0, &vectordb.ConfigurationError{
			Collection: s.cfg.Collection,
			Missing:    missing,
		}
	}
	return size, nil
}
