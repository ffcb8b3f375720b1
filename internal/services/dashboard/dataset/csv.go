package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCSV reads a header row followed by data rows and infers each column's
// kind: a column is numeric when it has at least one non-empty cell and every
// non-empty cell parses as a float. Rows with a different cell count than the
// header are rejected.
func ParseCSV(name string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset %s: missing header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset %s: read header: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: read row %d: %w", name, len(rows)+1, err)
		}
		rows = append(rows, record)
	}

	columns := make([]Column, len(header))
	for i, h := range header {
		columns[i] = Column{Name: strings.TrimSpace(h), Kind: inferKind(rows, i)}
	}
	return New(name, columns, rows)
}

func inferKind(rows [][]string, col int) Kind {
	seen := false
	for _, row := range rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return Categorical
		}
		seen = true
	}
	if !seen {
		return Categorical
	}
	return Numeric
}
