package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/fileio"
)

func mappingFromForm(r *http.Request) fileio.Mapping {
	return fileio.Mapping{
		ID:          r.FormValue("id"),
		Name:        r.FormValue("name"),
		Brand:       r.FormValue("brand"),
		Size:        r.FormValue("size"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Images:      r.FormValue("images_column"),
	}.Merge(fileio.DefaultMapping())
}

// optionsFromForm overrides the configured defaults with valid form values.
func optionsFromForm(r *http.Request, base model.Options) model.Options {
	o := base
	o.NearDuplicateThreshold = toThreshold(r.FormValue("near_threshold"), o.NearDuplicateThreshold)
	o.VariantThreshold = toThreshold(r.FormValue("variant_threshold"), o.VariantThreshold)
	o.FuzzyThreshold = toThreshold(r.FormValue("fuzzy_threshold"), o.FuzzyThreshold)
	o.IDWeight = toUnit(r.FormValue("id_weight"), o.IDWeight)
	o.NameWeight = toUnit(r.FormValue("name_weight"), o.NameWeight)
	if s := strings.TrimSpace(r.FormValue("suffix")); s != "" {
		o.ImageSuffix = s
	}
	return o.WithDefaults()
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// toUnit parses a value in [0,1]; anything else keeps def.
func toUnit(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 1 {
		return def
	}
	return f
}

// toThreshold is toUnit without 0, which Options treats as unset.
func toThreshold(s string, def float64) float64 {
	if f := toUnit(s, def); f > 0 {
		return f
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
