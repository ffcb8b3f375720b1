package derive

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
)

// PivotTable is a wide table with one row per index level and one numeric
// column per column level.
type PivotTable struct {
	*dataset.Dataset
	index     string
	rowLabels []string
	colLabels []string
	cells     [][]float64
	present   [][]bool
}

// Pivot reshapes src so each distinct index value becomes a row, each
// distinct columns value becomes a column, and each cell holds the values
// entry for that pair. Rows and columns follow SortedLevels. A pair seen
// twice, a missing column, a non-numeric values column or an empty source
// fails with TRANSFORM_FAILED.
func Pivot(src dataset.Table, index, columns, values string) (*PivotTable, error) {
	if src == nil {
		return nil, transformError("pivot", "", "source table is required", nil)
	}
	name := src.Name()
	for _, col := range []string{index, columns, values} {
		if _, ok := src.Column(col); !ok {
			return nil, transformError("pivot", name, fmt.Sprintf("column %q not found", col), nil)
		}
	}
	if col, _ := src.Column(values); col.Kind != dataset.Numeric {
		return nil, transformError("pivot", name, fmt.Sprintf("values column %q is not numeric", values), nil)
	}
	if src.Len() == 0 {
		return nil, transformError("pivot", name, "source table is empty", nil)
	}

	rowLabels := src.SortedLevels(index)
	colLabels := src.SortedLevels(columns)
	rowPos := positions(rowLabels)
	colPos := positions(colLabels)

	cells := make([][]float64, len(rowLabels))
	present := make([][]bool, len(rowLabels))
	seen := make([][]bool, len(rowLabels))
	for r := range rowLabels {
		cells[r] = make([]float64, len(colLabels))
		present[r] = make([]bool, len(colLabels))
		seen[r] = make([]bool, len(colLabels))
	}

	for i := 0; i < src.Len(); i++ {
		rv, cv := src.Value(i, index), src.Value(i, columns)
		if rv == "" || cv == "" {
			continue
		}
		r, c := rowPos[rv], colPos[cv]
		if seen[r][c] {
			return nil, transformError("pivot", name,
				fmt.Sprintf("duplicate entry for %s=%s, %s=%s", index, rv, columns, cv), nil)
		}
		seen[r][c] = true
		if v, ok := src.Float(i, values); ok {
			cells[r][c] = v
			present[r][c] = true
		}
	}

	indexCol, _ := src.Column(index)
	tableCols := []dataset.Column{{Name: index, Kind: dataset.Categorical, Categories: rowLabels}}
	if indexCol.Kind == dataset.Numeric {
		tableCols[0] = dataset.Column{Name: index, Kind: dataset.Numeric}
	}
	for _, label := range colLabels {
		tableCols = append(tableCols, dataset.Column{Name: label, Kind: dataset.Numeric})
	}
	rows := make([][]string, len(rowLabels))
	for r, label := range rowLabels {
		row := make([]string, 0, len(colLabels)+1)
		row = append(row, label)
		for c := range colLabels {
			if present[r][c] {
				row = append(row, strconv.FormatFloat(cells[r][c], 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		rows[r] = row
	}
	wide, err := dataset.New(name+"_pivot", tableCols, rows)
	if err != nil {
		return nil, transformError("pivot", name, "build pivot table", err)
	}

	return &PivotTable{
		Dataset:   wide,
		index:     index,
		rowLabels: rowLabels,
		colLabels: colLabels,
		cells:     cells,
		present:   present,
	}, nil
}

// Index returns the name of the column holding row labels.
func (p *PivotTable) Index() string { return p.index }

// RowLabels returns the row labels in order.
func (p *PivotTable) RowLabels() []string { return append([]string(nil), p.rowLabels...) }

// ColumnLabels returns the column labels in order.
func (p *PivotTable) ColumnLabels() []string { return append([]string(nil), p.colLabels...) }

// Cell returns the value at row r, column c. The bool is false when the
// source had no value for the pair.
func (p *PivotTable) Cell(r, c int) (float64, bool) {
	return p.cells[r][c], p.present[r][c]
}

func positions(labels []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l] = i
	}
	return out
}

func transformError(op, source, message string, cause error) error {
	return apperrors.WrapWithMetadata(
		apperrors.CodeTransformFailed,
		fmt.Sprintf("%s %s: %s", op, source, message),
		map[string]string{"transform": op, "source": source},
		cause,
	)
}

var _ dataset.Table = (*PivotTable)(nil)
