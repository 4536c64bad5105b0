package service

import (
	"encoding/json"
	"slices"
	"strings"

	"catalog-recon/internal/catalog/model"
)

// mergeKey is the normalized name with a leading brand word removed, so
// "Genosys Snow Cell Serum" and "Snow Cell Serum" line up.
func mergeKey(r model.Record) string {
	k := NormalizeName(r.Name)
	if b := NormalizeName(r.Brand); b != "" && strings.HasPrefix(k, b+" ") {
		k = k[len(b)+1:]
	}
	return k
}

// Merge folds incoming records (a fresh scrape of one brand) into current
// (the catalog's records of that brand). Each current record takes at most
// one incoming record: an equal merge key first, then the containment
// candidate with the highest Similarity, first one on ties. Incoming records
// nobody took are appended in input order. Neither input is modified.
func Merge(current, incoming []model.Record) (model.MergeResult, error) {
	if current == nil || incoming == nil {
		return model.MergeResult{}, model.ErrNoRecords
	}

	inKeys := make([]string, len(incoming))
	for i, r := range incoming {
		inKeys[i] = mergeKey(r)
	}
	taken := make([]bool, len(incoming))

	res := model.MergeResult{Records: make([]model.Record, 0, len(current)+len(incoming))}
	for _, cur := range current {
		ck := mergeKey(cur)
		j, score := pickIncoming(ck, inKeys, taken)
		if j < 0 {
			res.Records = append(res.Records, cur)
			res.Kept++
			continue
		}
		taken[j] = true
		merged := MergeRecord(cur, incoming[j])
		res.Records = append(res.Records, merged)
		res.Updates = append(res.Updates, model.MergeUpdate{
			ID:           merged.ID,
			CurrentName:  cur.Name,
			IncomingName: incoming[j].Name,
			Score:        score,
			Before:       Completeness(cur),
			After:        Completeness(merged),
		})
	}
	for j, r := range incoming {
		if !taken[j] {
			res.Records = append(res.Records, r)
			res.Added++
		}
	}
	return res, nil
}

func pickIncoming(key string, inKeys []string, taken []bool) (int, float64) {
	if key == "" {
		return -1, 0
	}
	for j, k := range inKeys {
		if !taken[j] && k == key {
			return j, 1
		}
	}
	best, bestScore := -1, 0.0
	for j, k := range inKeys {
		if taken[j] || k == "" {
			continue
		}
		if !strings.Contains(k, key) && !strings.Contains(key, k) {
			continue
		}
		if s := Similarity(key, k); best < 0 || s > bestScore {
			best, bestScore = j, s
		}
	}
	return best, bestScore
}

// MergeRecord refreshes cur from in: non-empty url, category, size and meta
// fields win, the longer description wins, list attributes are unioned in
// order (current first), and extra attributes from in overwrite. The
// identifier and price stay unless cur has none.
func MergeRecord(cur, in model.Record) model.Record {
	m := cur
	pick := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	pick(&m.URL, in.URL)
	pick(&m.Category, in.Category)
	pick(&m.Size, in.Size)
	pick(&m.MetaTitle, in.MetaTitle)
	pick(&m.MetaDescription, in.MetaDescription)
	pick(&m.Usage, in.Usage)
	if strings.TrimSpace(m.ID) == "" {
		m.ID = in.ID
	}
	if strings.TrimSpace(m.Brand) == "" {
		m.Brand = in.Brand
	}
	if len([]rune(in.Description)) > len([]rune(cur.Description)) {
		m.Description = in.Description
	}
	if m.Price == nil && in.Price != nil {
		m.SetPrice(*in.Price)
	}

	m.Ingredients = union(cur.Ingredients, in.Ingredients)
	m.Features = union(cur.Features, in.Features)
	m.Benefits = union(cur.Benefits, in.Benefits)
	m.Images = union(cur.Images, in.Images)
	m.ImagePaths = union(cur.ImagePaths, in.ImagePaths)

	if len(in.Extra) > 0 {
		extra := make(map[string]json.RawMessage, len(cur.Extra)+len(in.Extra))
		for k, v := range cur.Extra {
			extra[k] = v
		}
		for k, v := range in.Extra {
			extra[k] = v
		}
		m.Extra = extra
	}
	return m
}

func union(a, b []string) []string {
	if len(b) == 0 {
		return slices.Clone(a)
	}
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// MergeBrand splits catalog into the brand's records and the rest, merges
// incoming into the brand part and returns the rest followed by the merged
// part. Incoming records without a brand get it.
func MergeBrand(catalog, incoming []model.Record, brand string) (model.MergeResult, error) {
	if catalog == nil || incoming == nil {
		return model.MergeResult{}, model.ErrNoRecords
	}
	want := NormalizeName(brand)
	part := make([]model.Record, 0, len(catalog))
	var others []model.Record
	for _, r := range catalog {
		if NormalizeName(r.Brand) == want {
			part = append(part, r)
		} else {
			others = append(others, r)
		}
	}
	in := make([]model.Record, len(incoming))
	for i, r := range incoming {
		if strings.TrimSpace(r.Brand) == "" {
			r.Brand = brand
		}
		in[i] = r
	}

	res, err := Merge(part, in)
	if err != nil {
		return model.MergeResult{}, err
	}
	res.Brand = brand
	res.Others = len(others)
	res.Records = append(others, res.Records...)
	return res, nil
}
