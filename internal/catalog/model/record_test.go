package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalLenient(t *testing.T) {
	data := `{
		"product_id": 1042,
		"name": "Vitamin C Serum",
		"brand": "Genosys",
		"price": "1.250,00 TL",
		"ingredients": "Water, Ascorbic Acid",
		"features": ["brightening", "", 3],
		"image_paths": [],
		"scraped_at": "2024-05-01",
		"rating": 4.5
	}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))

	assert.Equal(t, "1042", r.ID)
	assert.Equal(t, "1042", r.Key())
	assert.Equal(t, "Vitamin C Serum", r.Name)
	require.NotNil(t, r.Price)
	assert.InDelta(t, 1250.0, *r.Price, 1e-9)
	assert.Equal(t, []string{"Water, Ascorbic Acid"}, r.Ingredients)
	assert.Equal(t, []string{"brightening", "", "3"}, r.Features)
	assert.Empty(t, r.ImagePaths)
	assert.JSONEq(t, `"2024-05-01"`, string(r.Extra["scraped_at"]))
	assert.JSONEq(t, `4.5`, string(r.Extra["rating"]))
}

func TestRecordUnparseablePrice(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","price":"call us"}`), &r))
	assert.Nil(t, r.Price)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":"call us"`)
}

func TestRecordMarshalKeepsUnknownFields(t *testing.T) {
	in := `{"product_id":"A1","name":"Toner","custom":{"a":1},"price":19.9}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(in), &r))
	r.ImagePaths = []string{"/public/images/products/A1-main.jpg"}

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"product_id": "A1",
		"name": "Toner",
		"custom": {"a": 1},
		"price": 19.9,
		"image_paths": ["/public/images/products/A1-main.jpg"]
	}`, string(out))
}

func TestRecordMarshalTypedPrice(t *testing.T) {
	p := 12.5
	out, err := json.Marshal(Record{Name: "Gel", Price: &p})
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"","name":"Gel","price":12.5}`, string(out))
}

func TestRecordMarshalReportsEncodingErrors(t *testing.T) {
	nan := math.NaN()
	out, err := json.Marshal(Record{ID: "A1", Name: "Gel", Price: &nan})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &r))
}

func TestOptionsWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.WithDefaults())

	o := Options{NearDuplicateThreshold: 0.9, IDWeight: 1}.WithDefaults()
	assert.Equal(t, 0.9, o.NearDuplicateThreshold)
	assert.Equal(t, 1.0, o.IDWeight)
	assert.Equal(t, 0.0, o.NameWeight)
	assert.Equal(t, "-main.jpg", o.ImageSuffix)
}

func TestMatchResultHelpers(t *testing.T) {
	res := MatchResult{
		Assignments:   []Assignment{{ProductKey: "a", ImageKey: "a.jpg"}, {ProductKey: "b", ImageKey: "b.jpg"}},
		TotalProducts: 4,
	}
	assert.InDelta(t, 50.0, res.MatchRate(), 1e-9)
	assert.Equal(t, "b.jpg", res.ByProduct()["b"].ImageKey)
	assert.Equal(t, 0.0, MatchResult{}.MatchRate())
}
