package report

import (
	"fmt"

	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
)

// Names of the derived sources.
const (
	SourceFlightsPivot   = "flights_pivot"
	SourceSurvivedCounts = "survived_counts"
)

// DatasetNames lists the example datasets the report loads, in load order.
var DatasetNames = []string{"tips", "iris", "titanic", "flights"}

// Sources is the registry of named tables charts resolve against.
type Sources struct {
	tables map[string]dataset.Table
	order  []string
}

// NewSources returns an empty registry.
func NewSources() *Sources {
	return &Sources{tables: map[string]dataset.Table{}}
}

// Register adds a named table. Names are unique.
func (s *Sources) Register(name string, table dataset.Table) error {
	if name == "" || table == nil {
		return fmt.Errorf("source name and table are required")
	}
	if _, exists := s.tables[name]; exists {
		return fmt.Errorf("source %q already registered", name)
	}
	s.tables[name] = table
	s.order = append(s.order, name)
	return nil
}

// Table returns the named table.
func (s *Sources) Table(name string) (dataset.Table, bool) {
	if s == nil {
		return nil, false
	}
	table, ok := s.tables[name]
	return table, ok
}

// Names returns registered names in registration order.
func (s *Sources) Names() []string {
	return append([]string(nil), s.order...)
}
