// Package bulkupload turns uploaded tabular files into validated
// entity-create operations: parse, normalize, stage for interactive
// correction, then dispatch row-by-row with a partial-success summary.
package bulkupload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile rejects uploads that are neither CSV nor XLSX.
var ErrUnsupportedFile = errors.New("please upload a .csv or .xlsx file")

// RawRow is one header-mapped row as parsed from a file, values untyped.
type RawRow map[string]string

// ParseFile reads an uploaded file into ordered header-mapped rows. The
// format is chosen by file extension; anything else fails outright with a
// single error.
func ParseFile(filename string, r io.Reader) ([]RawRow, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return parseCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return parseXLSX(r)
	default:
		return nil, ErrUnsupportedFile
	}
}

func parseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows shorter than the header are padded by mapRow and defaulted during
	// normalization, so ragged files reach per-row validation instead of
	// failing the whole parse.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file has no header row")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, mapRow(header, record))
	}

	return rows, nil
}

func parseXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, errors.New("file has no header row")
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for _, record := range records[1:] {
		rows = append(rows, mapRow(header, record))
	}

	return rows, nil
}

func mapRow(header, record []string) RawRow {
	row := make(RawRow, len(header))
	for i, column := range header {
		if column == "" {
			continue
		}
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		row[column] = value
	}
	return row
}

// isEmpty reports whether every cell of the row is blank. Fully-empty rows
// are filtered out before staging, so row numbers in error messages refer to
// positions in the filtered list.
func (r RawRow) isEmpty() bool {
	for _, value := range r {
		if value != "" {
			return false
		}
	}
	return true
}
