package fileio

import (
	"bytes"
	"io"
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX reads the sheet named like "products"/"ürünler" when present,
// otherwise the first sheet.
func readXLSX(r io.Reader, headerRow int) ([]map[string]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for _, name := range f.GetSheetList() {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "products" || n == "ürünler" || n == "urunler" {
			sheet = name
			break
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = normalizeCell(rows[i][j])
		}
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}
