package visits

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyEmptyCriteria(t *testing.T) {
	records := []Record{{SpecName: "a"}, {SpecName: "b"}}
	got := Apply(records, Criteria{})
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("empty criteria changed the set: %v", got)
	}
}

func TestApplyConjunction(t *testing.T) {
	records := []Record{
		{YearFinal: "2025", MonthFinal: 3, SpecName: "Pediatria"},
		{YearFinal: "2025", MonthFinal: 3, SpecName: "Ortopedia"},
		{YearFinal: "2025", MonthFinal: 7, SpecName: "Pediatria"},
		{YearFinal: "2024", MonthFinal: 3, SpecName: "Pediatria"},
	}
	got := Apply(records, Criteria{
		Year:        "2025",
		Months:      []int{3},
		Specialties: []string{"Pediatria"},
	})
	if len(got) != 1 || got[0].SpecName != "Pediatria" || got[0].MonthFinal != 3 {
		t.Fatalf("conjunction result = %v", got)
	}
}

func TestApplyMissingValueFailsActivePredicate(t *testing.T) {
	records := []Record{{YearFinal: "2025"}} // no specialty
	if got := Apply(records, Criteria{Specialties: []string{"Pediatria"}}); len(got) != 0 {
		t.Fatalf("record with no specialty matched a specialty filter: %v", got)
	}
	// Inactive predicate lets it through.
	if got := Apply(records, Criteria{Year: "2025"}); len(got) != 1 {
		t.Fatalf("year-only filter dropped the record")
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	records := []Record{
		{Date: day(9)},
		{Date: day(10)},
		{Date: day(15)},
		{Date: day(20)},
		{Date: day(21)},
		{}, // unparsed date
	}
	got := Apply(records, Criteria{From: day(10), To: day(20)})
	if len(got) != 3 {
		t.Fatalf("inclusive range matched %d records, want 3", len(got))
	}
}

func TestWithoutSelectors(t *testing.T) {
	c := Criteria{
		Year:          "2025",
		Months:        []int{1, 2},
		Specialties:   []string{"x"},
		Procedures:    []string{"y"},
		Professionals: []string{"z"},
	}
	basis := c.WithoutSelectors()
	if basis.Year != "2025" || len(basis.Months) != 2 {
		t.Error("period selectors must survive")
	}
	if basis.Specialties != nil || basis.Procedures != nil || basis.Professionals != nil {
		t.Error("entity selectors must be cleared")
	}
}

func TestQuarterAndSemester(t *testing.T) {
	if got := Quarter(2); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("Quarter(2) = %v", got)
	}
	if got := Quarter(5); got != nil {
		t.Errorf("Quarter(5) = %v, want nil", got)
	}
	if got := Semester(2); !reflect.DeepEqual(got, []int{7, 8, 9, 10, 11, 12}) {
		t.Errorf("Semester(2) = %v", got)
	}
	if got := Semester(0); got != nil {
		t.Errorf("Semester(0) = %v, want nil", got)
	}
}
