package visits

import (
	"testing"
	"time"

	"hospdash/csvparse"
)

// buildOne builds a single record from a canonical-header row.
func buildOne(t *testing.T, headers []string, row []string) Record {
	t.Helper()
	records := BuildRecords(headers, [][]string{row})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	return records[0]
}

func TestBuildRecordYearFromColumn(t *testing.T) {
	headers := []string{csvparse.FieldYear, csvparse.FieldDate}
	r := buildOne(t, headers, []string{"2023", "15/06/2025"})
	if r.YearFinal != "2023" {
		t.Errorf("YearFinal = %q, want the explicit column to win", r.YearFinal)
	}
}

func TestBuildRecordYearFromDate(t *testing.T) {
	headers := []string{csvparse.FieldDate}
	r := buildOne(t, headers, []string{"15/06/2025"})
	if r.YearFinal != "2025" {
		t.Errorf("YearFinal = %q, want 2025", r.YearFinal)
	}
	if r.MonthFinal != 6 {
		t.Errorf("MonthFinal = %d, want 6", r.MonthFinal)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !r.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", r.Date, want)
	}
}

func TestBuildRecordYearUnknown(t *testing.T) {
	headers := []string{csvparse.FieldUnitCode, csvparse.FieldDate}
	r := buildOne(t, headers, []string{"104", "data inválida"})
	if r.YearFinal != YearUnknown {
		t.Errorf("YearFinal = %q, want %q", r.YearFinal, YearUnknown)
	}
	if !r.Date.IsZero() {
		t.Errorf("Date = %v, want zero for unparseable date", r.Date)
	}
}

func TestBuildRecordMonthColumnWins(t *testing.T) {
	headers := []string{csvparse.FieldMonth, csvparse.FieldDate}
	r := buildOne(t, headers, []string{"3", "15/06/2025"})
	if r.MonthFinal != 3 {
		t.Errorf("MonthFinal = %d, want explicit column to win", r.MonthFinal)
	}
}

func TestBuildRecordMonthOutOfRange(t *testing.T) {
	headers := []string{csvparse.FieldMonth}
	r := buildOne(t, headers, []string{"13"})
	if r.MonthFinal != 0 {
		t.Errorf("MonthFinal = %d, want 0 for out-of-range month", r.MonthFinal)
	}
}

func TestBuildRecordAge(t *testing.T) {
	headers := []string{csvparse.FieldAge}

	r := buildOne(t, headers, []string{"34"})
	if !r.HasAge || r.Age != 34 || r.AgeGroup != "Adulto" {
		t.Errorf("age 34: HasAge=%v Age=%d AgeGroup=%q", r.HasAge, r.Age, r.AgeGroup)
	}

	r = buildOne(t, headers, []string{"idade ignorada"})
	if r.HasAge || r.AgeGroup != "" {
		t.Errorf("non-numeric age: HasAge=%v AgeGroup=%q", r.HasAge, r.AgeGroup)
	}
}

func TestAgeGroupBoundaries(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{0, "Criança"},
		{12, "Criança"},
		{13, "Adolescente"},
		{18, "Adolescente"},
		{19, "Adulto"},
		{59, "Adulto"},
		{60, "Idoso"},
		{95, "Idoso"},
		{-1, ""},
	}
	for _, c := range cases {
		if got := AgeGroupFor(c.age); got != c.want {
			t.Errorf("AgeGroupFor(%d) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestBuildRecordRepairsTextFields(t *testing.T) {
	headers := []string{csvparse.FieldUnitName, csvparse.FieldSpec}
	r := buildOne(t, headers, []string{"SÃ£o JosÃ©", "Médico clínico"})
	if r.UnitName != "São José" {
		t.Errorf("UnitName = %q, mojibake not repaired", r.UnitName)
	}
	if r.SpecName != "Médico clínico" {
		t.Errorf("SpecName = %q, clean text altered", r.SpecName)
	}
}

func TestBuildRecordShortRow(t *testing.T) {
	headers := []string{csvparse.FieldUnitCode, csvparse.FieldCity, csvparse.FieldAge}
	r := buildOne(t, headers, []string{"104", "Betim"})
	if r.UnitCode != "104" || r.City != "Betim" {
		t.Errorf("present columns lost: %+v", r)
	}
	if r.HasAge {
		t.Error("missing trailing column produced an age")
	}
}

func TestHour(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"14:30", 14, true},
		{"7:05", 7, true},
		{"00:00", 0, true},
		{"23:59", 23, true},
		{"24:00", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"14h30", 0, false},
	}
	for _, c := range cases {
		r := Record{TimeRaw: c.raw}
		got, ok := r.Hour()
		if got != c.want || ok != c.ok {
			t.Errorf("Hour(%q) = %d,%v want %d,%v", c.raw, got, ok, c.want, c.ok)
		}
	}
}
