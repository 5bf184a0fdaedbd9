package products

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/search-store/v1/vectordb"
)

// ── Payload Conversion ───────────────────────────────────────────────────────

// toQdrantPayload converts a typed payload into Qdrant's protobuf value map.
func toQdrantPayload(p vectordb.Payload) map[string]*qdrant.Value {
	if len(p) == 0 {
		return nil
	}
	plain := make(map[string]any, len(p))
	for k, v := range p {
		plain[k] = v.Any()
	}
	return qdrant.NewValueMap(plain)
}

// fromQdrantPayload converts Qdrant's protobuf value map back into the
// closed payload kind set. Values outside the closed set are dropped
// rather than failing the whole read.
func fromQdrantPayload(payload map[string]*qdrant.Value) vectordb.Payload {
	if len(payload) == 0 {
		return vectordb.Payload{}
	}
	result := make(vectordb.Payload, len(payload))
	for k, v := range payload {
		parsed, err := vectordb.ValueOf(extractValue(v))
		if err != nil {
			continue
		}
		result[k] = parsed
	}
	return result
}

// extractValue converts a single Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}

// ── Filter Conversion ────────────────────────────────────────────────────────

// toQdrantFilter converts a FilterSet to a Qdrant filter.
func toQdrantFilter(filters *vectordb.FilterSet) *qdrant.Filter {
	if filters == nil {
		return nil
	}

	filter := &qdrant.Filter{
		Must:    toQdrantConditions(filters.Must),
		Should:  toQdrantConditions(filters.Should),
		MustNot: toQdrantConditions(filters.MustNot),
	}

	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil
	}
	return filter
}

func toQdrantConditions(cs *vectordb.ConditionSet) []*qdrant.Condition {
	if cs == nil {
		return nil
	}
	var conditions []*qdrant.Condition
	for _, c := range cs.Conditions {
		if cond := toQdrantCondition(c); cond != nil {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}

func toQdrantCondition(c vectordb.FilterCondition) *qdrant.Condition {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return toQdrantMatch(cond)
	case *vectordb.MatchAnyCondition:
		return toQdrantMatchAny(cond)
	case *vectordb.NumericRangeCondition:
		return toQdrantRange(cond)
	case *nestedFilterCondition:
		inner := toQdrantFilter(cond.Filter)
		if inner == nil {
			return nil
		}
		return &qdrant.Condition{
			ConditionOneOf: &qdrant.Condition_Filter{Filter: inner},
		}
	default:
		return nil
	}
}

func toQdrantMatch(c *vectordb.MatchCondition) *qdrant.Condition {
	switch v := c.Value.(type) {
	case string:
		return qdrant.NewMatch(c.Field, v)
	case bool:
		return qdrant.NewMatchBool(c.Field, v)
	case int:
		return qdrant.NewMatchInt(c.Field, int64(v))
	case int64:
		return qdrant.NewMatchInt(c.Field, v)
	case float64:
		// JSON numbers arrive as float64.
		return qdrant.NewMatchInt(c.Field, int64(v))
	default:
		return nil
	}
}

func toQdrantMatchAny(c *vectordb.MatchAnyCondition) *qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			if s, ok := v.(string); ok {
				strs = append(strs, s)
			}
		}
		return qdrant.NewMatchKeywords(c.Field, strs...)
	case int, int64, float64:
		ints := make([]int64, 0, len(c.Values))
		for _, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints = append(ints, int64(n))
			case int64:
				ints = append(ints, n)
			case float64:
				ints = append(ints, int64(n))
			}
		}
		return qdrant.NewMatchInts(c.Field, ints...)
	default:
		return nil
	}
}

func toQdrantRange(c *vectordb.NumericRangeCondition) *qdrant.Condition {
	r := &qdrant.Range{
		Gt:  c.Range.Gt,
		Gte: c.Range.Gte,
		Lt:  c.Range.Lt,
		Lte: c.Range.Lte,
	}
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return nil
	}
	return qdrant.NewRange(c.Field, r)
}

// ── Point Conversion ─────────────────────────────────────────────────────────

// toQdrantVectors converts the per-slot vector map into named vectors.
func toQdrantVectors(vectors vectordb.MultiVector) *qdrant.Vectors {
	named := make(map[string]*qdrant.Vector, len(vectors))
	for slot, values := range vectors {
		named[string(slot)] = qdrant.NewVector(values...)
	}
	return qdrant.NewVectorsMap(named)
}

// externalID resolves the caller-facing product id of a stored payload,
// falling back to the raw point id for points written outside this service.
func externalID(payload vectordb.Payload, pointID string) string {
	if v, ok := payload[FieldProductID]; ok && v.Str() != "" {
		return v.Str()
	}
	return pointID
}

// extractPointID extracts a string id from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point id")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// fromScoredPoint converts one search hit.
func fromScoredPoint(p *qdrant.ScoredPoint) (vectordb.SearchResult, error) {
	id, err := extractPointID(p.Id)
	if err != nil {
		return vectordb.SearchResult{}, err
	}
	payload := fromQdrantPayload(p.Payload)
	return vectordb.SearchResult{
		Point: vectordb.Point{
			ID:      externalID(payload, id),
			Payload: payload,
			Vectors: fromQdrantVectorsOutput(p.Vectors),
		},
		Score: p.Score,
	}, nil
}

// fromRetrievedPoint converts one scroll or get hit.
func fromRetrievedPoint(p *qdrant.RetrievedPoint) (vectordb.Point, error) {
	id, err := extractPointID(p.Id)
	if err != nil {
		return vectordb.Point{}, err
	}
	payload := fromQdrantPayload(p.Payload)
	return vectordb.Point{
		ID:      externalID(payload, id),
		Payload: payload,
		Vectors: fromQdrantVectorsOutput(p.Vectors),
	}, nil
}

// fromQdrantVectorsOutput extracts named vectors from a point, when the
// operation requested them. Unnamed single vectors are ignored: this
// service only ever writes the named form.
func fromQdrantVectorsOutput(v *qdrant.VectorsOutput) vectordb.MultiVector {
	if v == nil {
		return nil
	}
	named, ok := v.VectorsOptions.(*qdrant.VectorsOutput_Vectors)
	if !ok || named.Vectors == nil {
		return nil
	}
	out := make(vectordb.MultiVector, len(named.Vectors.Vectors))
	for name, vec := range named.Vectors.Vectors {
		if vec == nil {
			continue
		}
		out[vectordb.Slot(name)] = vec.Data
	}
	return out
}
