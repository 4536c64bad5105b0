package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses punctuation and spaces", "  Vitamin   C  Serum! ", "vitamin c serum"},
		{"turkish letters", "Çiçek Yağı 100ml", "cicek yagi 100ml"},
		{"dotted capital i", "İnci Özü", "inci ozu"},
		{"latin accents", "Crème Brûlée", "creme brulee"},
		{"only separators", " -- / ", ""},
		{"digits kept", "SPF 50+ Fluid", "spf 50 fluid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "gx-100-50ml", NormalizeSlug("GX 100 / 50ml"))
	assert.Equal(t, "vitamin-c-serum", NormalizeSlug("Vitamin C Serum"))
	assert.Equal(t, "gul-suyu", NormalizeSlug("--Gül_Suyu--"))
}

func TestNormalizeFoldsTurkishToAscii(t *testing.T) {
	assert.Equal(t, NormalizeName("cicek yagi 100ml"), NormalizeName("Çiçek Yağı 100ml"))
	assert.Equal(t, NormalizeName("SAMPUAN"), NormalizeName("Şampuan"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Aqua Serum 30 ml", "Çiçek Yağı 100ml", "İnci-Özü__", "Crème Brûlée!!",
		"  ", "a-b c_d", "ΑΒΓ δέλτα", "日本語 テキスト", "x́y",
	}
	for _, s := range inputs {
		once := NormalizeName(s)
		assert.Equal(t, once, NormalizeName(once), "name %q", s)
		slug := NormalizeSlug(s)
		assert.Equal(t, slug, NormalizeSlug(slug), "slug %q", s)
	}
}
