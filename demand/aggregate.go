package demand

import (
	"math"
	"sort"
	"strings"
)

// specializedMarker switches the main histogram and procedure table
// into drill-down mode: when any selected service contains it, rows
// group by CBO (occupation) name instead of service.
const specializedMarker = "especializada"

// labelMissing buckets rows whose grouping column is empty.
const labelMissing = "Não informado"

// Grouping modes reported in Stats.MainBy.
const (
	GroupByService = "service"
	GroupByCBO     = "cbo"
)

type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProcedureRow is one row of the procedure table. CBO is empty outside
// specialized mode.
type ProcedureRow struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	CBO   string `json:"cbo,omitempty"`
	Count int    `json:"count"`
}

// Stats holds the waiting-list aggregates for one filtered record set.
type Stats struct {
	Total       int
	AvgWaitDays float64
	MainBy      string // GroupByService or GroupByCBO
	Main        []GroupCount
	Units       []GroupCount
	Procedures  []ProcedureRow
}

// SpecializedMode reports whether the selected services trigger the CBO
// drill-down (any selection containing "especializada", case-insensitive).
func SpecializedMode(selectedServices []string) bool {
	for _, s := range selectedServices {
		if strings.Contains(strings.ToLower(s), specializedMarker) {
			return true
		}
	}
	return false
}

// Aggregate computes the waiting-list view. selectedServices is the
// service filter currently applied, needed here only to decide the
// grouping mode. Average wait is over records with a computed wait and
// is 0 (never NaN) when none have one.
func Aggregate(records []Record, selectedServices []string) *Stats {
	s := &Stats{Total: len(records)}
	specialized := SpecializedMode(selectedServices)
	if specialized {
		s.MainBy = GroupByCBO
	} else {
		s.MainBy = GroupByService
	}

	main := map[string]int{}
	units := map[string]int{}
	procs := map[procKey]int{}
	waitSum := 0
	waitCount := 0

	for _, r := range records {
		if specialized {
			main[orMissing(r.CBOName)]++
		} else {
			main[orMissing(r.Service)]++
		}
		units[orMissing(r.UnitRef)]++

		key := procKey{code: r.ProcCode, name: r.Procedure}
		if specialized {
			key.cbo = r.CBOName
		}
		procs[key]++

		if r.HasWait {
			waitSum += r.WaitDays
			waitCount++
		}
	}

	if waitCount > 0 {
		s.AvgWaitDays = math.Round(float64(waitSum)/float64(waitCount)*10) / 10
	}
	s.Main = groupHistogram(main)
	s.Units = groupHistogram(units)
	s.Procedures = procedureTable(procs)
	return s
}

func orMissing(v string) string {
	if v == "" {
		return labelMissing
	}
	return v
}

type procKey struct {
	code string
	name string
	cbo  string
}

func groupHistogram(counts map[string]int) []GroupCount {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	out := make([]GroupCount, 0, len(names))
	for _, name := range names {
		out = append(out, GroupCount{Name: name, Count: counts[name]})
	}
	return out
}

func procedureTable(counts map[procKey]int) []ProcedureRow {
	out := make([]ProcedureRow, 0, len(counts))
	for key, count := range counts {
		out = append(out, ProcedureRow{Code: key.code, Name: key.name, CBO: key.cbo, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CBO < out[j].CBO
	})
	return out
}
