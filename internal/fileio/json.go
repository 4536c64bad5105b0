package fileio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"catalog-recon/internal/catalog/model"
)

type catalogDoc struct {
	Products []model.Record `json:"products"`
}

// ReadRecordsJSON accepts {"products": [...]} or a bare array. A document
// without a products list is an error, not an empty catalog.
func ReadRecordsJSON(r io.Reader) ([]model.Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []model.Record
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		if list == nil {
			list = []model.Record{}
		}
		return list, nil
	}
	var doc struct {
		Products *[]model.Record `json:"products"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("%w: no \"products\" list", model.ErrNoRecords)
	}
	if *doc.Products == nil {
		return []model.Record{}, nil
	}
	return *doc.Products, nil
}

// LoadRecords opens a catalog file by path.
func LoadRecords(path string, headerRow int, m Mapping) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNoRecords, err)
	}
	defer f.Close()
	return ReadRecords(f, filepath.Base(path), headerRow, m)
}

// WriteRecordsJSON writes {"products": [...]} with two-space indent and
// unescaped non-ASCII text.
func WriteRecordsJSON(w io.Writer, records []model.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(catalogDoc{Products: records})
}
