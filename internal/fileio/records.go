package fileio

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/utils"
)

// Mapping names the spreadsheet columns for each record attribute. A value
// may list alternatives separated by "|".
type Mapping struct {
	ID          string
	Name        string
	Brand       string
	Size        string
	Description string
	Price       string
	Images      string
	Ingredients string
	Features    string
	Benefits    string
}

func DefaultMapping() Mapping {
	return Mapping{
		ID:          "product_id|id|sku|ürün kodu|stok kodu",
		Name:        "name|product name|ürün adı|başlık|title",
		Brand:       "brand|marka",
		Size:        "size|boyut|hacim|gramaj",
		Description: "description|açıklama",
		Price:       "price|fiyat",
		Images:      "images|image|görsel|resim",
		Ingredients: "ingredients|içindekiler",
		Features:    "features|özellikler",
		Benefits:    "benefits|faydalar",
	}
}

// Merge keeps m's non-empty columns and fills the rest from def.
func (m Mapping) Merge(def Mapping) Mapping {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) != "" {
			return a
		}
		return b
	}
	return Mapping{
		ID:          pick(m.ID, def.ID),
		Name:        pick(m.Name, def.Name),
		Brand:       pick(m.Brand, def.Brand),
		Size:        pick(m.Size, def.Size),
		Description: pick(m.Description, def.Description),
		Price:       pick(m.Price, def.Price),
		Images:      pick(m.Images, def.Images),
		Ingredients: pick(m.Ingredients, def.Ingredients),
		Features:    pick(m.Features, def.Features),
		Benefits:    pick(m.Benefits, def.Benefits),
	}
}

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: lower case, punctuation and repeated spaces collapsed.
func normHeaderKey(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ı", "i", "İ", "i").Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the real column for a wanted name: exact, then
// normalized, then the longest containment match. Headers are scanned in
// sorted order so the pick is stable.
func resolveKey(headers []string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}
	for _, a := range alts {
		for _, h := range headers {
			if h == a {
				return h
			}
		}
	}
	norms := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			norms = append(norms, n)
		}
	}
	for _, n := range norms {
		for _, h := range headers {
			if normHeaderKey(h) == n {
				return h
			}
		}
	}
	best, bestScore := "", 0
	for _, h := range headers {
		nk := normHeaderKey(h)
		if nk == "" {
			continue
		}
		for _, n := range norms {
			if (strings.Contains(nk, n) || strings.Contains(n, nk)) && len(n) > bestScore {
				best, bestScore = h, len(n)
			}
		}
	}
	return best
}

func headersOf(maps []map[string]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ToRecords converts spreadsheet rows into records. Rows without a name and
// an id are dropped; unmapped columns go to Extra.
func ToRecords(maps []map[string]string, m Mapping) []model.Record {
	headers := headersOf(maps)
	col := func(want string) string { return resolveKey(headers, want) }
	idK, nameK, brandK, sizeK := col(m.ID), col(m.Name), col(m.Brand), col(m.Size)
	descK, priceK, imgK := col(m.Description), col(m.Price), col(m.Images)
	ingK, featK, benK := col(m.Ingredients), col(m.Features), col(m.Benefits)

	used := map[string]bool{}
	for _, k := range []string{idK, nameK, brandK, sizeK, descK, priceK, imgK, ingK, featK, benK} {
		if k != "" {
			used[k] = true
		}
	}

	get := func(row map[string]string, k string) string {
		if k == "" {
			return ""
		}
		return strings.TrimSpace(row[k])
	}

	out := make([]model.Record, 0, len(maps))
	for _, row := range maps {
		r := model.Record{
			ID:          get(row, idK),
			Name:        get(row, nameK),
			Brand:       get(row, brandK),
			Size:        get(row, sizeK),
			Description: get(row, descK),
			Images:      splitList(get(row, imgK)),
			Ingredients: splitList(get(row, ingK)),
			Features:    splitList(get(row, featK)),
			Benefits:    splitList(get(row, benK)),
		}
		if r.ID == "" && r.Name == "" {
			continue
		}
		if p, ok := utils.ParsePrice(get(row, priceK)); ok {
			r.Price = &p
		}
		for k, v := range row {
			if used[k] || strings.TrimSpace(v) == "" {
				continue
			}
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			b, _ := json.Marshal(v)
			r.Extra[k] = b
		}
		out = append(out, r)
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
