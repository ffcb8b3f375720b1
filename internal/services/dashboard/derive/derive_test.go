package derive

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
	"github.com/louisbranch/insightboard/internal/testkit/datasetfixtures"
)

func loadFixture(t *testing.T, name string) *dataset.Dataset {
	t.Helper()
	raw, err := dataset.ParseCSV(name, strings.NewReader(string(datasetfixtures.Bytes(name))))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	ds, err := dataset.ProfileFor(name).Apply(raw)
	if err != nil {
		t.Fatalf("profile %s: %v", name, err)
	}
	return ds
}

func parse(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ParseCSV("src", strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ds
}

func TestPivotFlights(t *testing.T) {
	t.Parallel()
	flights := loadFixture(t, "flights")

	pivot, err := Pivot(flights, "month", "year", "passengers")
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	wantRows := strings.Fields("Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec")
	if diff := cmp.Diff(wantRows, pivot.RowLabels()); diff != "" {
		t.Fatalf("row labels mismatch (-want +got):\n%s", diff)
	}
	cols := pivot.ColumnLabels()
	if len(cols) != 12 || cols[0] != "1949" || cols[11] != "1960" {
		t.Fatalf("column labels = %v", cols)
	}
	if got, ok := pivot.Cell(0, 0); !ok || got != 112 {
		t.Fatalf("Cell(Jan, 1949) = %v, %t, want 112", got, ok)
	}
	if got, ok := pivot.Cell(6, 11); !ok || got != 622 {
		t.Fatalf("Cell(Jul, 1960) = %v, %t, want 622", got, ok)
	}
	if pivot.Name() != "flights_pivot" || pivot.Index() != "month" {
		t.Fatalf("pivot name/index = %s/%s", pivot.Name(), pivot.Index())
	}
	if pivot.Len() != 12 || len(pivot.Columns()) != 13 {
		t.Fatalf("pivot shape = %dx%d, want 12x13", pivot.Len(), len(pivot.Columns()))
	}
	if got, ok := pivot.Float(1, "1950"); !ok || got != 126 {
		t.Fatalf("Float(Feb, 1950) = %v, %t, want 126", got, ok)
	}
}

func TestPivotMissingPairIsMissingCell(t *testing.T) {
	t.Parallel()
	src := parse(t, "k,c,v\na,x,1\nb,y,2\n")
	pivot, err := Pivot(src, "k", "c", "v")
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if _, ok := pivot.Cell(0, 1); ok {
		t.Fatal("expected missing cell for (a, y)")
	}
	if got := pivot.Value(0, "y"); got != "" {
		t.Fatalf("Value(a, y) = %q, want empty", got)
	}
}

func TestPivotFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		values  string
	}{
		{name: "duplicate pair", content: "k,c,v\na,x,1\na,x,2\n", values: "v"},
		{name: "missing column", content: "k,c,v\na,x,1\n", values: "nope"},
		{name: "non numeric values", content: "k,c,v\na,x,one\n", values: "v"},
		{name: "empty source", content: "k,c,v\n", values: "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pivot(parse(t, tt.content), "k", "c", tt.values)
			if got := apperrors.CodeOf(err); got != apperrors.CodeTransformFailed {
				t.Fatalf("CodeOf(%v) = %v, want %v", err, got, apperrors.CodeTransformFailed)
			}
		})
	}
}

func TestValueCountsTitanicSurvived(t *testing.T) {
	t.Parallel()
	titanic := loadFixture(t, "titanic")

	counts, err := ValueCounts(titanic, "survived")
	if err != nil {
		t.Fatalf("value counts: %v", err)
	}
	got := [][]string{}
	for i := 0; i < counts.Len(); i++ {
		got = append(got, []string{counts.Value(i, "survived"), counts.Value(i, CountColumn)})
	}
	want := [][]string{{"1", "6"}, {"0", "5"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if counts.Total() != titanic.Len() {
		t.Fatalf("Total() = %d, want %d", counts.Total(), titanic.Len())
	}
	sum := 0.0
	for i := 0; i < counts.Len(); i++ {
		n, ok := counts.Float(i, CountColumn)
		if !ok {
			t.Fatalf("row %d has no count", i)
		}
		sum += n
	}
	if sum != float64(titanic.Len()) {
		t.Fatalf("sum of counts = %v, want %d", sum, titanic.Len())
	}
	if counts.Name() != "survived_counts" || counts.LabelColumn() != "survived" {
		t.Fatalf("name/label = %s/%s", counts.Name(), counts.LabelColumn())
	}
}

func TestValueCountsTiesKeepFirstAppearance(t *testing.T) {
	t.Parallel()
	src := parse(t, "v\nb\na\nc\na\nb\n\n")
	counts, err := ValueCounts(src, "v")
	if err != nil {
		t.Fatalf("value counts: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, counts.Levels("v")); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	sum := 0.0
	for i := 0; i < counts.Len(); i++ {
		v, _ := counts.Float(i, CountColumn)
		sum += v
	}
	if sum != 5 || counts.Total() != 5 {
		t.Fatalf("sum = %v, total = %d, want 5", sum, counts.Total())
	}
}

func TestValueCountsFailures(t *testing.T) {
	t.Parallel()
	if _, err := ValueCounts(parse(t, "v\n1\n"), "nope"); apperrors.CodeOf(err) != apperrors.CodeTransformFailed {
		t.Fatalf("missing column err = %v", err)
	}
	if _, err := ValueCounts(parse(t, "v\n"), "v"); apperrors.CodeOf(err) != apperrors.CodeTransformFailed {
		t.Fatalf("empty source err = %v", err)
	}
	if _, err := ValueCounts(nil, "v"); apperrors.CodeOf(err) != apperrors.CodeTransformFailed {
		t.Fatalf("nil source err = %v", err)
	}
}
