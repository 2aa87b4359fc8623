// Package demand builds and aggregates waiting-list ("demanda
// reprimida") records: pending procedure requests that have not been
// served yet.
package demand

import (
	"strconv"
	"strings"
	"time"

	"hospdash/csvparse"
	"hospdash/textfix"
)

// DateLayout matches the dd/mm/yyyy request dates in the export.
const DateLayout = "02/01/2006"

// RawRecord maps canonical field names to string values for one CSV
// row, keyed per csvparse.DemandAliases.
type RawRecord map[string]string

// Record is one pending request. RequestDate is the zero time when the
// date could not be parsed; WaitDays is only meaningful when HasWait is
// true.
type Record struct {
	Service   string
	Procedure string
	ProcCode  string
	UnitRef   string
	Priority  string
	PatientID string
	CBOName   string
	Age       int
	HasAge    bool

	RequestDate time.Time
	Year        int
	Month       int
	WaitDays    int
	HasWait     bool
}

// BuildOptions controls record derivation. A request-date year equal to
// SentinelYear is rewritten to ReplacementYear: a known upstream export
// bug stamps unscheduled requests with 1900. Now anchors the wait-day
// computation so the build stays pure; the zero value falls back to the
// wall clock.
type BuildOptions struct {
	SentinelYear    int
	ReplacementYear int
	Now             time.Time
}

// DefaultBuildOptions returns the standard sentinel correction.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{SentinelYear: 1900, ReplacementYear: 2024}
}

// repairedFields are the free-text columns that may carry mojibake.
var repairedFields = map[string]bool{
	csvparse.FieldService:   true,
	csvparse.FieldProcedure: true,
	csvparse.FieldUnitRef:   true,
	csvparse.FieldCBOName:   true,
}

// BuildRecords zips token rows against resolved canonical headers.
// headers must already be canonical (csvparse.DemandAliases.ResolveAll);
// rows must not include the header row.
func BuildRecords(headers []string, rows [][]string, opts BuildOptions) []Record {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, buildRecord(zipRow(headers, row), opts))
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

func buildRecord(raw RawRecord, opts BuildOptions) Record {
	r := Record{
		Service:   raw[csvparse.FieldService],
		Procedure: raw[csvparse.FieldProcedure],
		ProcCode:  raw[csvparse.FieldProcCode],
		UnitRef:   raw[csvparse.FieldUnitRef],
		Priority:  raw[csvparse.FieldPriority],
		PatientID: raw[csvparse.FieldPatientID],
		CBOName:   raw[csvparse.FieldCBOName],
	}

	if age, err := strconv.Atoi(raw[csvparse.FieldAge]); err == nil && age >= 0 {
		r.Age = age
		r.HasAge = true
	}

	d, err := time.Parse(DateLayout, raw[csvparse.FieldReqDate])
	if err != nil {
		return r
	}
	if opts.SentinelYear != 0 && d.Year() == opts.SentinelYear {
		d = time.Date(opts.ReplacementYear, d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	r.RequestDate = d
	r.Year = d.Year()
	r.Month = int(d.Month())

	wait := int(opts.Now.Sub(d).Hours() / 24)
	if wait < 0 {
		wait = -wait
	}
	r.WaitDays = wait
	r.HasWait = true
	return r
}

// Criteria filters demand records; empty selectors are vacuously true,
// list membership is exact-string.
type Criteria struct {
	Services   []string
	Units      []string
	Priorities []string
	Year       int // 0 matches every year
	Months     []int
}

// Apply filters records by the conjunction of all active predicates.
func Apply(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (c Criteria) matches(r Record) bool {
	if len(c.Services) > 0 && !contains(c.Services, r.Service) {
		return false
	}
	if len(c.Units) > 0 && !contains(c.Units, r.UnitRef) {
		return false
	}
	if len(c.Priorities) > 0 && !contains(c.Priorities, r.Priority) {
		return false
	}
	if c.Year != 0 && r.Year != c.Year {
		return false
	}
	if len(c.Months) > 0 {
		found := false
		for _, m := range c.Months {
			if m == r.Month {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
