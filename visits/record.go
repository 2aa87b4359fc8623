// Package visits builds, classifies, filters and aggregates attendance
// records for the dashboard. One Record is one procedure performed for
// one patient visit.
package visits

import (
	"strconv"
	"strings"
	"time"

	"hospdash/csvparse"
	"hospdash/textfix"
)

// DateLayout is the dd/mm/yyyy format used by every upstream export.
const DateLayout = "02/01/2006"

// YearUnknown marks records whose year could not be derived. They are
// excluded from year filters and year option lists but still counted in
// "all years" views.
const YearUnknown = "N/A"

// RawRecord maps canonical field names to string values for one CSV
// row. A key is present only when a header alias matched and the cell
// was non-empty; values are never fabricated.
type RawRecord map[string]string

// Record is one attendance row with its derived fields. Date is the
// zero time when the attendance date could not be parsed; AgeGroup is
// empty when the age column is missing or non-numeric.
type Record struct {
	UnitCode string
	UnitName string
	SpecName string
	ProfName string
	ProcCode string
	ProcName string
	City     string
	Gender   string
	DateRaw  string
	TimeRaw  string

	YearFinal  string
	MonthFinal int
	Date       time.Time
	Age        int
	HasAge     bool
	AgeGroup   string

	// Assigned by the classifier.
	DisplayProcedure string
	Valid            bool
}

// Age bands are closed ranges with inclusive upper bounds; anything
// past the last bound is Idoso.
var ageBands = []struct {
	max   int
	label string
}{
	{12, "Criança"},
	{18, "Adolescente"},
	{59, "Adulto"},
}

const bandElderly = "Idoso"

// AgeGroupFor returns the band label for an age. Negative ages have no
// band.
func AgeGroupFor(age int) string {
	if age < 0 {
		return ""
	}
	for _, b := range ageBands {
		if age <= b.max {
			return b.label
		}
	}
	return bandElderly
}

// repairedFields are the free-text columns that may carry mojibake.
var repairedFields = map[string]bool{
	csvparse.FieldUnitName: true,
	csvparse.FieldSpec:     true,
	csvparse.FieldProf:     true,
	csvparse.FieldProcName: true,
	csvparse.FieldCity:     true,
}

// BuildRecords zips token rows against resolved canonical headers and
// derives the year/month/date/age-band fields. headers must already be
// canonical (csvparse.VisitAliases.ResolveAll); rows must not include
// the header row.
func BuildRecords(headers []string, rows [][]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(zipRow(headers, row)))
	}
	return records
}

func zipRow(headers []string, row []string) RawRecord {
	raw := make(RawRecord, len(headers))
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		val := strings.TrimSpace(row[i])
		if val == "" {
			continue
		}
		if repairedFields[h] {
			val = textfix.Repair(val)
		}
		raw[h] = val
	}
	return raw
}

func buildRecord(raw RawRecord) Record {
	r := Record{
		UnitCode: raw[csvparse.FieldUnitCode],
		UnitName: raw[csvparse.FieldUnitName],
		SpecName: raw[csvparse.FieldSpec],
		ProfName: raw[csvparse.FieldProf],
		ProcCode: raw[csvparse.FieldProcCode],
		ProcName: raw[csvparse.FieldProcName],
		City:     raw[csvparse.FieldCity],
		Gender:   raw[csvparse.FieldGender],
		DateRaw:  raw[csvparse.FieldDate],
		TimeRaw:  raw[csvparse.FieldTime],
	}

	dateParts := strings.Split(r.DateRaw, "/")

	// Explicit year column wins; the date's third component is the
	// fallback. Neither present means the year is unknown.
	year := raw[csvparse.FieldYear]
	if year == "" && len(dateParts) == 3 {
		year = strings.TrimSpace(dateParts[2])
	}
	if year == "" {
		year = YearUnknown
	}
	r.YearFinal = year

	if m, err := strconv.Atoi(raw[csvparse.FieldMonth]); err == nil && m >= 1 && m <= 12 {
		r.MonthFinal = m
	} else if len(dateParts) == 3 {
		if m, err := strconv.Atoi(strings.TrimSpace(dateParts[1])); err == nil && m >= 1 && m <= 12 {
			r.MonthFinal = m
		}
	}

	if d, err := time.Parse(DateLayout, r.DateRaw); err == nil {
		r.Date = d
	}

	if age, err := strconv.Atoi(raw[csvparse.FieldAge]); err == nil && age >= 0 {
		r.Age = age
		r.HasAge = true
		r.AgeGroup = AgeGroupFor(age)
	}

	return r
}

// Hour returns the record's hour of day, taken from the characters
// before the first ':' of the time field. ok is false when the field is
// missing or unparseable; such records are excluded from hour-based
// aggregates only.
func (r Record) Hour() (int, bool) {
	raw, _, found := strings.Cut(r.TimeRaw, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
