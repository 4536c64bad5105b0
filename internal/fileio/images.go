package fileio

import (
	"os"
	"sort"
	"strings"
)

var imageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// ListImages returns the primary image filenames in dir: image extension
// and, when suffix is set, the primary-image suffix. Sorted by name.
func ListImages(dir, suffix string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if IsPrimaryImage(e.Name(), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func IsPrimaryImage(name, suffix string) bool {
	lower := strings.ToLower(name)
	ok := false
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			ok = true
			break
		}
	}
	return ok && (suffix == "" || strings.HasSuffix(name, suffix))
}

// SplitImageList parses a pasted list of filenames: one per line or comma
// separated. Empty entries are dropped, order is kept.
func SplitImageList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' || r == '\r' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
