package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"catalog-recon/internal/utils"
)

// Record is one catalog entry. Only the attributes the engine inspects are
// typed; everything else rides along in Extra and is written back untouched.
type Record struct {
	ID              string   `json:"product_id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Size            string   `json:"size,omitempty"`
	URL             string   `json:"url,omitempty"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Usage           string   `json:"usage_instructions,omitempty"`
	Features        []string `json:"features,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
	Images          []string `json:"images,omitempty"`
	ImagePaths      []string `json:"image_paths,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`

	Extra    map[string]json.RawMessage `json:"-" yaml:"-"`
	rawPrice json.RawMessage
}

var textFields = map[string]func(*Record) *string{
	"product_id":         func(r *Record) *string { return &r.ID },
	"name":               func(r *Record) *string { return &r.Name },
	"brand":              func(r *Record) *string { return &r.Brand },
	"size":               func(r *Record) *string { return &r.Size },
	"url":                func(r *Record) *string { return &r.URL },
	"category":           func(r *Record) *string { return &r.Category },
	"description":        func(r *Record) *string { return &r.Description },
	"usage_instructions": func(r *Record) *string { return &r.Usage },
	"meta_title":         func(r *Record) *string { return &r.MetaTitle },
	"meta_description":   func(r *Record) *string { return &r.MetaDescription },
}

var listFields = map[string]func(*Record) *[]string{
	"ingredients": func(r *Record) *[]string { return &r.Ingredients },
	"features":    func(r *Record) *[]string { return &r.Features },
	"benefits":    func(r *Record) *[]string { return &r.Benefits },
	"images":      func(r *Record) *[]string { return &r.Images },
	"image_paths": func(r *Record) *[]string { return &r.ImagePaths },
}

// UnmarshalJSON is lenient: scraped catalogs mix strings and numbers for ids
// and prices, and sometimes store a single string where a list is expected.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{}
	for k, v := range raw {
		switch {
		case textFields[k] != nil:
			*textFields[k](r) = scalarText(v)
		case listFields[k] != nil:
			*listFields[k](r) = listText(v)
		case k == "price":
			r.rawPrice = append(json.RawMessage(nil), v...)
			if f, ok := utils.ParsePrice(scalarText(v)); ok {
				r.Price = &f
			}
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return nil
}

// MarshalJSON writes typed fields and Extra back as one flat object with
// sorted keys.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+16)
	for k, v := range r.Extra {
		out[k] = v
	}
	put := func(k string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[k] = b
		return nil
	}
	for k, get := range textFields {
		rr := r
		if v := *get(&rr); v != "" || k == "product_id" || k == "name" {
			if err := put(k, v); err != nil {
				return nil, err
			}
		}
	}
	for k, get := range listFields {
		rr := r
		if v := *get(&rr); len(v) > 0 {
			if err := put(k, v); err != nil {
				return nil, err
			}
		}
	}
	switch {
	case len(r.rawPrice) > 0:
		out["price"] = r.rawPrice
	case r.Price != nil:
		if err := put("price", *r.Price); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(out[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func scalarText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func listText(v json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		if s := scalarText(v); strings.TrimSpace(s) != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err == nil {
			out = append(out, s)
			continue
		}
		if s = scalarText(it); s != "" {
			out = append(out, s)
			continue
		}
		out = append(out, string(it))
	}
	return out
}

// Key is the identifier used by the matcher.
func (r Record) Key() string { return strings.TrimSpace(r.ID) }

// SetPrice replaces the price and drops the raw value read from JSON.
func (r *Record) SetPrice(p float64) {
	r.Price = &p
	r.rawPrice = nil
}
