package dataset

import (
	"fmt"
)

// Profile normalizes one dataset after parsing.
type Profile struct {
	// Rewrites maps a column to a function applied to every non-empty cell.
	Rewrites map[string]func(string) string
	// Categories fixes the level order of categorical columns.
	Categories map[string][]string
	// AppearanceOrder lists columns whose first-appearance order becomes
	// their declared category order.
	AppearanceOrder []string
}

var profiles = map[string]Profile{
	"tips": {
		Categories: map[string][]string{
			"day":    {"Thur", "Fri", "Sat", "Sun"},
			"sex":    {"Male", "Female"},
			"time":   {"Lunch", "Dinner"},
			"smoker": {"Yes", "No"},
		},
	},
	"flights": {
		Rewrites: map[string]func(string) string{
			"month": truncateRunes(3),
		},
		AppearanceOrder: []string{"month"},
	},
	"titanic": {
		Categories: map[string][]string{
			"class": {"First", "Second", "Third"},
			"deck":  {"A", "B", "C", "D", "E", "F", "G"},
		},
	},
}

// ProfileFor returns the normalization profile for a dataset name. Unknown
// names get an empty profile.
func ProfileFor(name string) Profile {
	return profiles[name]
}

// Apply returns a new dataset with the profile's rewrites and category
// orders applied. Columns named by the profile must exist.
func (p Profile) Apply(ds *Dataset) (*Dataset, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	columns := ds.Columns()
	rows := make([][]string, ds.Len())
	for r := range rows {
		rows[r] = append([]string(nil), ds.rows[r]...)
	}

	for colName, rewrite := range p.Rewrites {
		i, ok := ds.index[colName]
		if !ok {
			return nil, fmt.Errorf("dataset %s: profile column %q not found", ds.name, colName)
		}
		for _, row := range rows {
			if row[i] != "" {
				row[i] = rewrite(row[i])
			}
		}
	}
	for colName, cats := range p.Categories {
		i, ok := ds.index[colName]
		if !ok {
			return nil, fmt.Errorf("dataset %s: profile column %q not found", ds.name, colName)
		}
		columns[i].Kind = Categorical
		columns[i].Categories = cats
	}
	for _, colName := range p.AppearanceOrder {
		i, ok := ds.index[colName]
		if !ok {
			return nil, fmt.Errorf("dataset %s: profile column %q not found", ds.name, colName)
		}
		seen := map[string]bool{}
		var cats []string
		for _, row := range rows {
			if v := row[i]; v != "" && !seen[v] {
				seen[v] = true
				cats = append(cats, v)
			}
		}
		columns[i].Kind = Categorical
		columns[i].Categories = cats
	}
	return New(ds.name, columns, rows)
}

func truncateRunes(n int) func(string) string {
	return func(s string) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n])
	}
}
