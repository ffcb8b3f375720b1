package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind classifies a column's values.
type Kind int

const (
	// Categorical columns hold labels.
	Categorical Kind = iota
	// Numeric columns hold numbers; empty cells are missing values.
	Numeric
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column describes one named column.
type Column struct {
	Name string
	Kind Kind
	// Categories fixes the order of a categorical column's levels. Values
	// outside the list are treated as missing.
	Categories []string
}

// Table is the read-only view shared by datasets and derived tables.
type Table interface {
	Name() string
	Len() int
	Columns() []Column
	Column(name string) (Column, bool)
	Value(row int, column string) string
	Float(row int, column string) (float64, bool)
	Levels(column string) []string
	SortedLevels(column string) []string
}

// Dataset is an immutable named table of rows.
type Dataset struct {
	name    string
	columns []Column
	index   map[string]int
	rows    [][]string
	numbers map[int][]float64
	present map[int][]bool
}

// New builds a dataset from string rows. Every row must have one cell per
// column and numeric columns must parse, with empty cells as missing.
func New(name string, columns []Column, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset %s: at least one column is required", name)
	}
	ds := &Dataset{
		name:    name,
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, len(rows)),
		numbers: map[int][]float64{},
		present: map[int][]bool{},
	}
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("dataset %s: column %d has no name", name, i)
		}
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("dataset %s: duplicate column %q", name, col.Name)
		}
		col.Categories = append([]string(nil), col.Categories...)
		ds.columns[i] = col
		ds.index[col.Name] = i
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("dataset %s: row %d has %d cells, want %d", name, r, len(row), len(columns))
		}
		ds.rows[r] = append([]string(nil), row...)
	}
	for i, col := range ds.columns {
		switch {
		case col.Kind == Numeric:
			values := make([]float64, len(ds.rows))
			present := make([]bool, len(ds.rows))
			for r, row := range ds.rows {
				if row[i] == "" {
					continue
				}
				v, err := strconv.ParseFloat(row[i], 64)
				if err != nil {
					return nil, fmt.Errorf("dataset %s: column %s row %d: %q is not numeric", name, col.Name, r, row[i])
				}
				values[r] = v
				present[r] = true
			}
			ds.numbers[i] = values
			ds.present[i] = present
		case len(col.Categories) > 0:
			allowed := make(map[string]bool, len(col.Categories))
			for _, c := range col.Categories {
				allowed[c] = true
			}
			for _, row := range ds.rows {
				if !allowed[row[i]] {
					row[i] = ""
				}
			}
		}
	}
	return ds, nil
}

// Name returns the dataset name.
func (d *Dataset) Name() string { return d.name }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns returns a copy of the column descriptors in file order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Value returns the raw cell text, or "" for a missing cell or unknown column.
func (d *Dataset) Value(row int, column string) string {
	i, ok := d.index[column]
	if !ok {
		return ""
	}
	return d.rows[row][i]
}

// Float returns the numeric value of a cell. The bool is false for missing
// cells, unknown columns and categorical columns.
func (d *Dataset) Float(row int, column string) (float64, bool) {
	i, ok := d.index[column]
	if !ok {
		return 0, false
	}
	present, ok := d.present[i]
	if !ok || !present[row] {
		return 0, false
	}
	return d.numbers[i][row], true
}

// Levels returns the distinct non-missing values of column: declared
// categories that occur, in declared order, otherwise first-appearance order.
func (d *Dataset) Levels(column string) []string {
	i, ok := d.index[column]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var appearance []string
	for _, row := range d.rows {
		v := row[i]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		appearance = append(appearance, v)
	}
	if cats := d.columns[i].Categories; len(cats) > 0 {
		out := make([]string, 0, len(cats))
		for _, c := range cats {
			if seen[c] {
				out = append(out, c)
			}
		}
		return out
	}
	return appearance
}

// SortedLevels returns the levels of column in sort order: declared category
// order when present, numeric order for numeric columns, lexical otherwise.
func (d *Dataset) SortedLevels(column string) []string {
	levels := d.Levels(column)
	col, ok := d.Column(column)
	if !ok || len(col.Categories) > 0 {
		return levels
	}
	if col.Kind == Numeric {
		sort.SliceStable(levels, func(a, b int) bool {
			x, _ := strconv.ParseFloat(levels[a], 64)
			y, _ := strconv.ParseFloat(levels[b], 64)
			return x < y
		})
		return levels
	}
	sort.Strings(levels)
	return levels
}

var _ Table = (*Dataset)(nil)
