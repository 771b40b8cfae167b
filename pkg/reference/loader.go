package reference

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var requiredColumns = []string{"region", "commune", "village"}

// LoadFile reads the reference spreadsheet at path and builds a Set.
// The first row must be a header containing the region, commune and village
// columns (case-insensitive, any order). Rows with a blank member are
// skipped. A missing file, missing column or empty sheet is an error: the
// caller is expected to treat that as a fatal configuration problem.
func LoadFile(path string) (*Set, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("reference file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference file %s is empty", path)
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("reference file %s: %w", path, err)
	}

	var locations []Location
	for _, row := range rows[1:] {
		loc := Location{
			Region:  cell(row, columns["region"]),
			Commune: cell(row, columns["commune"]),
			Village: cell(row, columns["village"]),
		}
		if loc.Region == "" || loc.Commune == "" || loc.Village == "" {
			continue
		}
		locations = append(locations, loc)
	}

	set := NewSet(locations)
	if set.Len() == 0 {
		return nil, fmt.Errorf("reference file %s contains no usable rows", path)
	}
	return set, nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	return columns, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
