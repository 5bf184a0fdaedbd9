package vectordb

import (
	"encoding/json"
)

// FilterCondition is the interface all filter conditions implement.
// Each backend adapter converts these to its native filter format.
type FilterCondition interface {
	// IsFilterCondition is a marker method to seal the condition set.
	IsFilterCondition()
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with SearchRequest.Filter / ScrollRequest.Filter. The account filter
// is injected by the service on top of whatever the caller supplies; a
// FilterSet can never widen a query beyond the calling tenant.
//
// Example:
//
//	filter := vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("category", "apparel")),
//	    vectordb.MustNot(vectordb.NewMatch("discontinued", true)),
//	)
type FilterSet struct {
	// Must: all conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: at least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: none of the conditions may match (NOT)
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds the conditions of a single clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions,omitempty"`
}

// MatchCondition is an exact match (WHERE field = value).
// Supported value kinds: string, bool, int64.
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) IsFilterCondition() {}

// MatchAnyCondition matches if the field equals any of the values (IN).
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) IsFilterCondition() {}

// NumericRange defines bounds for numeric filtering (price, stock, ...).
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// NumericRangeCondition filters by numeric range.
type NumericRangeCondition struct {
	Field string       `json:"field"`
	Range NumericRange `json:"-"`
}

func (c *NumericRangeCondition) IsFilterCondition() {}

func (c *NumericRangeCondition) MarshalJSON() ([]byte, error) {
	type alias struct {
		Field string `json:"field"`
		NumericRange
	}
	return json.Marshal(alias{Field: c.Field, NumericRange: c.Range})
}

func (c *NumericRangeCondition) UnmarshalJSON(data []byte) error {
	type alias struct {
		Field string `json:"field"`
		NumericRange
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	c.Field = a.Field
	c.Range = a.NumericRange
	return nil
}
