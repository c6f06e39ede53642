package converter

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEntity_NumericAndStringIDs(t *testing.T) {
	var models []ProductModel
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "name": "Widget", "price": 10.5, "description": "d"},
		{"id": "3f2b", "name": "Gizmo", "price": 2, "description": "g"}
	]`), &models))

	products, err := NewProductConverterImpl().ToArrEntity(models)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, domain.ProductID("1"), products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, domain.ProductID("3f2b"), products[1].ID)
}

func TestToEntity_RejectsBadPrice(t *testing.T) {
	_, err := NewProductConverterImpl().ToEntity(&ProductModel{ID: json.RawMessage(`1`), Price: "abc"})
	assert.Error(t, err)
}

func TestToModel_WireFormat(t *testing.T) {
	conv := NewProductConverterImpl()

	draft := domain.NewProduct("", "Widget", decimal.RequireFromString("10.50"), "d")
	data, err := json.Marshal(conv.ToModel(draft))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget","price":10.5,"description":"d"}`, string(data))

	numeric := domain.NewProduct("7", "Widget", decimal.NewFromInt(3), "d")
	data, err = json.Marshal(conv.ToModel(numeric))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Widget","price":3,"description":"d"}`, string(data))

	opaque := domain.NewProduct("a-1", "Widget", decimal.NewFromInt(3), "d")
	data, err = json.Marshal(conv.ToModel(opaque))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a-1","name":"Widget","price":3,"description":"d"}`, string(data))
}

func TestDecodeID_Null(t *testing.T) {
	id, quoted, err := DecodeID(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.True(t, id.IsZero())
	assert.False(t, quoted)
}

func TestToModel_KeepsReceivedIDForm(t *testing.T) {
	conv := NewProductConverterImpl()

	var models []ProductModel
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "42", "name": "Quoted", "price": 1, "description": "d"},
		{"id": "007", "name": "Padded", "price": 1, "description": "d"},
		{"id": 43, "name": "Number", "price": 1, "description": "d"}
	]`), &models))

	products, err := conv.ToArrEntity(models)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, domain.ProductID("42"), products[0].ID)
	assert.Equal(t, domain.ProductID("007"), products[1].ID)
	assert.Equal(t, domain.ProductID("43"), products[2].ID)

	for i, want := range []string{`"42"`, `"007"`, `43`} {
		data, err := json.Marshal(conv.ToModel(&products[i]))
		require.NoError(t, err)

		var got struct {
			ID json.RawMessage `json:"id"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, want, string(got.ID))
	}
}

func TestEncodeID(t *testing.T) {
	tests := []struct {
		id     domain.ProductID
		quoted bool
		want   string
	}{
		{id: "7", want: `7`},
		{id: "7", quoted: true, want: `"7"`},
		{id: "007", want: `"007"`},
		{id: "+5", want: `"+5"`},
		{id: "-3", want: `-3`},
		{id: "a-1", want: `"a-1"`},
	}

	for _, tt := range tests {
		raw := EncodeID(tt.id, tt.quoted)
		assert.Equal(t, tt.want, string(raw), "id %q quoted=%v", tt.id, tt.quoted)
		assert.True(t, json.Valid(raw))
	}

	assert.Nil(t, EncodeID("", false))
}
