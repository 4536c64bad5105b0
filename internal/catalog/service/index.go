package service

import (
	"path/filepath"
	"strings"
)

type imageEntry struct {
	key  string // filename as given
	base string // size-free slug of the stem
	pos  int    // enumeration order
}

// imageIndex answers the direct and base-name lookups over the image keys.
type imageIndex struct {
	entries  []imageEntry
	byKey    map[string]int
	byBase   map[string][]int // base key -> entry positions, input order
	suffix   string
	consumed []bool
}

func buildImageIndex(keys []string, suffix string) *imageIndex {
	idx := &imageIndex{
		byKey:  make(map[string]int, len(keys)),
		byBase: make(map[string][]int),
		suffix: suffix,
	}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := idx.byKey[k]; dup {
			continue
		}
		e := imageEntry{key: k, base: BaseKey(stem(k, suffix)), pos: len(idx.entries)}
		idx.byKey[k] = e.pos
		idx.entries = append(idx.entries, e)
		if e.base != "" {
			idx.byBase[e.base] = append(idx.byBase[e.base], e.pos)
		}
	}
	idx.consumed = make([]bool, len(idx.entries))
	return idx
}

// stem drops the primary-image suffix, or the extension when the key does
// not carry the suffix.
func stem(key, suffix string) string {
	if suffix != "" && strings.HasSuffix(key, suffix) {
		return strings.TrimSuffix(key, suffix)
	}
	return strings.TrimSuffix(key, filepath.Ext(key))
}

func (idx *imageIndex) direct(id string) (int, bool) {
	pos, ok := idx.byKey[id+idx.suffix]
	if !ok || idx.consumed[pos] {
		return 0, false
	}
	return pos, true
}

// shortestFree picks the unconsumed candidate with the shortest filename;
// the first one seen wins on equal length.
func (idx *imageIndex) shortestFree(base string) (int, bool) {
	best, found := 0, false
	for _, pos := range idx.byBase[base] {
		if idx.consumed[pos] {
			continue
		}
		if !found || len(idx.entries[pos].key) < len(idx.entries[best].key) {
			best, found = pos, true
		}
	}
	return best, found
}

func (idx *imageIndex) free() []imageEntry {
	out := make([]imageEntry, 0, len(idx.entries))
	for _, e := range idx.entries {
		if !idx.consumed[e.pos] {
			out = append(out, e)
		}
	}
	return out
}
