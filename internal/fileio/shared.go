package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catalog-recon/internal/catalog/model"
)

// ReadAnyMaps picks a parser by extension and returns rows as header->value maps.
// headerRow is 1-based.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) ([]map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedFile, filename)
	}
}

// ReadRecords loads a catalog from a JSON document or a spreadsheet. A
// collection that cannot be read is an error; an empty one is not.
func ReadRecords(r io.Reader, filename string, headerRow int, m Mapping) ([]model.Record, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return ReadRecordsJSON(r)
	}
	maps, err := ReadAnyMaps(r, filename, headerRow)
	if err != nil {
		return nil, err
	}
	return ToRecords(maps, m), nil
}

// pickHeader takes the header row and fills blanks with "Column N".
func pickHeader(rows [][]string, headerRow int) []string {
	if len(rows) == 0 {
		return nil
	}
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps turns rows below the header into maps, skipping blank rows.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow
	if start < 1 {
		start = 1
	}
	out := make([]map[string]string, 0, len(rows))
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell trims and replaces non-breaking spaces.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
