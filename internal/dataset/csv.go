package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"popcli/internal/errors"
)

// LoadCSV reads a CSV file into a Dataset. The first record is the header.
// A UTF-8 BOM, if present, is stripped so the first column name survives
// spreadsheet round-trips.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open csv %s", path), err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads CSV data from r into a Dataset.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError("failed to read csv header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	ds := New(headerNames(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read csv record", err)
		}
		if isBlankRow(record) {
			continue
		}
		values := make([]Value, len(record))
		for i, cell := range record {
			values[i] = parseCell(cell)
		}
		ds.AppendRow(values)
	}
	ds.Seal()

	return ds, nil
}
