package fileio

import (
	"path"
	"slices"

	"catalog-recon/internal/catalog/model"
)

// WithImagePaths returns a copy of records where every matched product has
// basePath/<image> first in ImagePaths. Inputs are not modified; the
// second return is how many records changed.
func WithImagePaths(records []model.Record, res model.MatchResult, basePath string) ([]model.Record, int) {
	byProduct := res.ByProduct()
	out := make([]model.Record, len(records))
	updated := 0
	for i, r := range records {
		out[i] = r
		a, ok := byProduct[r.Key()]
		if !ok {
			continue
		}
		p := path.Join(basePath, a.ImageKey)
		if slices.Contains(r.ImagePaths, p) {
			continue
		}
		paths := make([]string, 0, len(r.ImagePaths)+1)
		paths = append(paths, p)
		paths = append(paths, r.ImagePaths...)
		out[i].ImagePaths = paths
		updated++
	}
	return out, updated
}
