package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Fatal errors abort the whole import before any row is applied.
// Everything else is reported per row and the batch continues.
var (
	ErrEmptyFile     = errors.New("import file is empty or unreadable")
	ErrMissingColumn = errors.New("missing required column")
)

// headerIndex maps expected column names to their position in the
// uploaded header. Column order is free and unknown columns are
// ignored; names must match case-sensitively.
type headerIndex struct {
	fieldCount int
	positions  map[string]int
}

// readHeader consumes the first CSV record and validates that every
// required column is present. A missing required column is fatal.
func readHeader(cr *csv.Reader, required []string) (*headerIndex, error) {
	record, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyFile, err)
	}

	idx := &headerIndex{
		fieldCount: len(record),
		positions:  make(map[string]int, len(record)),
	}
	for i, name := range record {
		name = strings.TrimSpace(name)
		if _, seen := idx.positions[name]; !seen {
			idx.positions[name] = i
		}
	}

	for _, col := range required {
		if _, ok := idx.positions[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

// get returns the trimmed value of the named column, or "" when the
// column was not part of the uploaded header.
func (idx *headerIndex) get(record []string, col string) string {
	pos, ok := idx.positions[col]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// scanRows streams the data lines after the header. Each well-formed
// record is handed to apply with its 1-based data row number; a line
// whose field count does not match the header is reported as a
// row-level error and skipped. Only a broken reader is fatal.
func scanRows(cr *csv.Reader, idx *headerIndex, apply func(rowNum int, record []string) *RowError) ([]RowError, error) {
	var rowErrors []RowError
	rowNum := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rowErrors, nil
		}
		rowNum++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrors = append(rowErrors, RowError{
					Row:     rowNum,
					Message: fmt.Sprintf("malformed line: %v", parseErr.Err),
				})
				continue
			}
			return rowErrors, fmt.Errorf("reading row %d: %w", rowNum, err)
		}

		if len(record) != idx.fieldCount {
			rowErrors = append(rowErrors, RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("expected %d fields, got %d", idx.fieldCount, len(record)),
			})
			continue
		}

		if rowErr := apply(rowNum, record); rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
		}
	}
}

// newCSVReader configures the shared reader settings. Quoted fields
// with embedded delimiters and newlines are handled by encoding/csv;
// field-count checking is done in scanRows so a bad line stays a
// row-level error instead of aborting the read.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}
