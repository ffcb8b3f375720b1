package derive

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
)

// CountColumn names the column holding counts in a CountTable.
const CountColumn = "count"

// CountTable holds one row per distinct value of a column and its frequency.
type CountTable struct {
	*dataset.Dataset
	column string
	total  int
}

// ValueCounts counts the occurrences of each non-missing value of column,
// ordered by count descending and then by first appearance. The result has
// the columns <column> and count.
func ValueCounts(src dataset.Table, column string) (*CountTable, error) {
	if src == nil {
		return nil, transformError("value_counts", "", "source table is required", nil)
	}
	name := src.Name()
	col, ok := src.Column(column)
	if !ok {
		return nil, transformError("value_counts", name, fmt.Sprintf("column %q not found", column), nil)
	}
	if column == CountColumn {
		return nil, transformError("value_counts", name, "column name collides with count column", nil)
	}
	if src.Len() == 0 {
		return nil, transformError("value_counts", name, "source table is empty", nil)
	}

	levels := src.Levels(column)
	first := make(map[string]int, len(levels))
	for i := 0; i < src.Len(); i++ {
		if v := src.Value(i, column); v != "" {
			if _, ok := first[v]; !ok {
				first[v] = i
			}
		}
	}
	counts := make(map[string]int, len(levels))
	total := 0
	for i := 0; i < src.Len(); i++ {
		if v := src.Value(i, column); v != "" {
			counts[v]++
			total++
		}
	}
	sort.SliceStable(levels, func(a, b int) bool {
		if counts[levels[a]] != counts[levels[b]] {
			return counts[levels[a]] > counts[levels[b]]
		}
		return first[levels[a]] < first[levels[b]]
	})

	rows := make([][]string, len(levels))
	for i, level := range levels {
		rows[i] = []string{level, strconv.Itoa(counts[level])}
	}
	table, err := dataset.New(column+"_counts", []dataset.Column{
		{Name: column, Kind: col.Kind},
		{Name: CountColumn, Kind: dataset.Numeric},
	}, rows)
	if err != nil {
		return nil, transformError("value_counts", name, "build count table", err)
	}
	return &CountTable{Dataset: table, column: column, total: total}, nil
}

// LabelColumn returns the name of the counted column.
func (c *CountTable) LabelColumn() string { return c.column }

// Total returns the number of counted (non-missing) source rows.
func (c *CountTable) Total() int { return c.total }

var _ dataset.Table = (*CountTable)(nil)
