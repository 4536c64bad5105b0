package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKey(t *testing.T) {
	headers := []string{"Marka", "Product Name", "SKU", "Ürün Açıklaması", "fiyat (TL)"}

	assert.Equal(t, "SKU", resolveKey(headers, "SKU"))
	assert.Equal(t, "SKU", resolveKey(headers, "product_id|id|sku"))
	assert.Equal(t, "Marka", resolveKey(headers, "brand|marka"))
	assert.Equal(t, "Product Name", resolveKey(headers, "name|product name"))
	assert.Equal(t, "fiyat (TL)", resolveKey(headers, "price|fiyat"))
	assert.Equal(t, "", resolveKey(headers, ""))
	assert.Equal(t, "", resolveKey(headers, "barcode"))
}

func TestNormHeaderKey(t *testing.T) {
	assert.Equal(t, "urun kodu", strings.ReplaceAll(normHeaderKey("  ÜRÜN   KODU: "), "ü", "u"))
	assert.Equal(t, "image url", normHeaderKey("Image_URL"))
	assert.Equal(t, "istanbul", normHeaderKey("İSTANBUL"))
}

func TestToRecords(t *testing.T) {
	rows := []map[string]string{
		{"SKU": "G-1", "Ürün Adı": "Vitamin C Serum", "Marka": "Genosys", "Fiyat": "1.250,00", "Görsel": "a.jpg; b.jpg", "Notes": "restock"},
		{"SKU": "", "Ürün Adı": "", "Marka": "Genosys", "Fiyat": "", "Görsel": "", "Notes": ""},
		{"SKU": "G-2", "Ürün Adı": "Toner", "Marka": "Genosys", "Fiyat": "", "Görsel": "", "Notes": ""},
	}
	recs := ToRecords(rows, DefaultMapping())
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, "G-1", r.ID)
	assert.Equal(t, "Vitamin C Serum", r.Name)
	assert.Equal(t, "Genosys", r.Brand)
	require.NotNil(t, r.Price)
	assert.InDelta(t, 1250.0, *r.Price, 1e-9)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, r.Images)
	assert.JSONEq(t, `"restock"`, string(r.Extra["Notes"]))

	assert.Nil(t, recs[1].Price)
	assert.Empty(t, recs[1].Extra)
}

func TestMappingMerge(t *testing.T) {
	m := Mapping{Name: "Title"}.Merge(DefaultMapping())
	assert.Equal(t, "Title", m.Name)
	assert.Equal(t, DefaultMapping().ID, m.ID)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a; b\nc ;"))
}
