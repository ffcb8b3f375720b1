package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/insightboard/internal/testkit/datasetfixtures"
)

func TestTipsProfileDeclaresCategoryOrder(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "tips", string(datasetfixtures.Bytes("tips")))
	ds, err := ProfileFor("tips").Apply(raw)
	if err != nil {
		t.Fatalf("apply profile: %v", err)
	}

	if diff := cmp.Diff([]string{"Thur", "Fri", "Sat", "Sun"}, ds.Levels("day")); diff != "" {
		t.Fatalf("day levels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Male", "Female"}, ds.Levels("sex")); diff != "" {
		t.Fatalf("sex levels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Lunch", "Dinner"}, ds.SortedLevels("time")); diff != "" {
		t.Fatalf("time levels mismatch (-want +got):\n%s", diff)
	}
	if got, ok := ds.Float(0, "total_bill"); !ok || got != 16.99 {
		t.Fatalf("Float(0, total_bill) = %v, %t", got, ok)
	}
}

func TestFlightsProfileTruncatesMonths(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "flights", "year,month,passengers\n1949,January,112\n1949,February,118\n1950,January,115\n")
	ds, err := ProfileFor("flights").Apply(raw)
	if err != nil {
		t.Fatalf("apply profile: %v", err)
	}
	if got := ds.Value(1, "month"); got != "Feb" {
		t.Fatalf("Value(1, month) = %q, want Feb", got)
	}
	if diff := cmp.Diff([]string{"Jan", "Feb"}, ds.SortedLevels("month")); diff != "" {
		t.Fatalf("month levels mismatch (-want +got):\n%s", diff)
	}
}

func TestFlightsProfileKeepsCalendarOrder(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "flights", string(datasetfixtures.Bytes("flights")))
	ds, err := ProfileFor("flights").Apply(raw)
	if err != nil {
		t.Fatalf("apply profile: %v", err)
	}
	want := strings.Fields("Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec")
	if diff := cmp.Diff(want, ds.SortedLevels("month")); diff != "" {
		t.Fatalf("month levels mismatch (-want +got):\n%s", diff)
	}
	if ds.Len() != 144 {
		t.Fatalf("Len() = %d, want 144", ds.Len())
	}
}

func TestTitanicProfileClassOrderAndUnknownDeck(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "titanic", "class,deck\nThird,\nFirst,C\nSecond,T\n")
	ds, err := ProfileFor("titanic").Apply(raw)
	if err != nil {
		t.Fatalf("apply profile: %v", err)
	}
	if diff := cmp.Diff([]string{"First", "Second", "Third"}, ds.Levels("class")); diff != "" {
		t.Fatalf("class levels mismatch (-want +got):\n%s", diff)
	}
	if got := ds.Value(2, "deck"); got != "" {
		t.Fatalf("deck outside categories = %q, want missing", got)
	}
}

func TestProfileRejectsMissingColumn(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "tips", "total_bill,tip\n1,2\n")
	if _, err := ProfileFor("tips").Apply(raw); err == nil {
		t.Fatal("expected error for missing profile column")
	}
}

func TestUnknownProfileIsIdentity(t *testing.T) {
	t.Parallel()
	raw := mustParse(t, "iris", string(datasetfixtures.Bytes("iris")))
	ds, err := ProfileFor("iris").Apply(raw)
	if err != nil {
		t.Fatalf("apply profile: %v", err)
	}
	if diff := cmp.Diff([]string{"setosa", "versicolor", "virginica"}, ds.Levels("species")); diff != "" {
		t.Fatalf("species levels mismatch (-want +got):\n%s", diff)
	}
}
