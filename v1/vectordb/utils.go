package vectordb

import (
	"encoding/json"
	"fmt"
)

// ── FilterSet Constructors ───────────────────────────────────────────────────

// NewFilterSet creates a FilterSet from the given clauses.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("category", "apparel")),
//	    vectordb.Should(vectordb.NewMatch("brand", "acme"), vectordb.NewMatch("brand", "zeta")),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND) with the given conditions.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR) with the given conditions.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT) with the given conditions.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// NewMatch creates an exact-match condition.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny creates an IN condition.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewNumericRange creates a numeric range condition.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

// ── JSON Serialization ───────────────────────────────────────────────────────

// MarshalJSON flattens the condition set to a JSON array.
func (cs *ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Conditions)
}

// UnmarshalJSON detects each condition's type from its JSON keys and
// deserializes into the matching concrete condition.
func (cs *ConditionSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cs.Conditions = make([]FilterCondition, 0, len(raw))
	for _, r := range raw {
		cond, err := parseCondition(r)
		if err != nil {
			return err
		}
		cs.Conditions = append(cs.Conditions, cond)
	}
	return nil
}

// parseCondition sniffs the discriminating key:
//   - "equalTo" → MatchCondition
//   - "anyOf"   → MatchAnyCondition
//   - any range bound → NumericRangeCondition
func parseCondition(data []byte) (FilterCondition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	hasKey := func(key string) bool {
		_, ok := fields[key]
		return ok
	}

	switch {
	case hasKey("equalTo"):
		var c MatchCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey("anyOf"):
		var c MatchAnyCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey("greaterThan"), hasKey("greaterThanOrEqualTo"),
		hasKey("lessThan"), hasKey("lessThanOrEqualTo"):
		var c NumericRangeCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	default:
		return nil, fmt.Errorf("unknown filter condition type: %s", string(data))
	}
}
