package dataset

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"popcli/internal/errors"
)

// LoadExcel reads the first sheet of an xlsx workbook into a Dataset. The
// first row is taken as the header; blank header cells get a positional
// placeholder name so row widths stay aligned.
func LoadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("sheet %s is empty", sheets[0]), nil)
	}

	ds := New(headerNames(rows[0]))
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		values := make([]Value, len(row))
		for i, cell := range row {
			values[i] = parseCell(cell)
		}
		ds.AppendRow(values)
	}
	ds.Seal()

	slog.Debug("loaded excel dataset",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", ds.NumRows()),
		slog.Int("columns", len(ds.Columns)))

	return ds, nil
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
