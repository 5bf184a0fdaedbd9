package vectordb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf_ClosedKindSet(t *testing.T) {
	v, err := ValueOf("shirt")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "shirt", v.Str())

	v, err = ValueOf(199.99)
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind())

	// Integral JSON numbers stay integers so match filters behave.
	v, err = ValueOf(float64(200))
	require.NoError(t, err)
	assert.Equal(t, KindInteger, v.Kind())
	assert.Equal(t, int64(200), v.Int())

	v, err = ValueOf([]any{"red", "blue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "blue"}, v.List())

	_, err = ValueOf(map[string]any{"nested": true})
	assert.Error(t, err)

	_, err = ValueOf([]any{"red", 7})
	assert.Error(t, err)
}

func TestPayload_CloneIsIndependent(t *testing.T) {
	p := Payload{
		"name":         String("Shirt"),
		FieldAccountID: String("shop-1"),
	}

	clone := p.Clone()
	clone[FieldAccountID] = String("shop-2")

	assert.Equal(t, "shop-1", p.AccountID())
	assert.Equal(t, "shop-2", clone.AccountID())
}

func TestPayload_JSONRoundTrip(t *testing.T) {
	p := Payload{
		"name":  String("Shirt"),
		"price": Integer(200),
		"sale":  Bool(true),
		"tags":  StringList("cotton", "summer"),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestFilterSet_JSONConditionDetection(t *testing.T) {
	raw := `{
		"must": [
			{"field": "category", "equalTo": "apparel"},
			{"field": "price", "lessThan": 500}
		],
		"should": [
			{"field": "brand", "anyOf": ["acme", "zeta"]}
		]
	}`

	var fs FilterSet
	require.NoError(t, json.Unmarshal([]byte(raw), &fs))

	require.NotNil(t, fs.Must)
	require.Len(t, fs.Must.Conditions, 2)
	assert.IsType(t, &MatchCondition{}, fs.Must.Conditions[0])
	assert.IsType(t, &NumericRangeCondition{}, fs.Must.Conditions[1])

	require.NotNil(t, fs.Should)
	require.Len(t, fs.Should.Conditions, 1)
	assert.IsType(t, &MatchAnyCondition{}, fs.Should.Conditions[0])
}

func TestFilterSet_UnknownConditionFails(t *testing.T) {
	raw := `{"must": [{"field": "x", "like": "abc"}]}`

	var fs FilterSet
	assert.Error(t, json.Unmarshal([]byte(raw), &fs))
}
