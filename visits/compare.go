package visits

import (
	"math"
	"sort"
)

// MonthPair is one month's volume in each compared year.
type MonthPair struct {
	Month  int    `json:"month"`
	Name   string `json:"name"`
	Count1 int    `json:"count1"`
	Count2 int    `json:"count2"`
}

// SpecialtyDiff is one specialty's signed year-over-year change.
type SpecialtyDiff struct {
	Name   string `json:"name"`
	Count1 int    `json:"count1"`
	Count2 int    `json:"count2"`
	Diff   int    `json:"diff"`
}

// Comparison is the year-over-year view for one unit.
type Comparison struct {
	Year1       string
	Year2       string
	Total1      int
	Total2      int
	GrowthPct   float64
	Monthly     []MonthPair
	Specialties []SpecialtyDiff
}

// CompareYears compares two years over one unit's classified records.
// Only the month subset carries over from the dashboard filters; every
// other selector is ignored. Years are swapped if needed so year1 ≤
// year2 always holds in the result. months empty means all twelve.
// Growth percent is 0 when year1 has no volume, never a division by
// zero.
func CompareYears(unitRecords []Record, year1, year2 string, months []int) *Comparison {
	if year1 > year2 {
		year1, year2 = year2, year1
	}
	if len(months) == 0 {
		months = allMonths()
	}

	sub1 := Apply(unitRecords, Criteria{Year: year1, Months: months})
	sub2 := Apply(unitRecords, Criteria{Year: year2, Months: months})

	c := &Comparison{
		Year1:  year1,
		Year2:  year2,
		Total1: len(sub1),
		Total2: len(sub2),
	}
	if c.Total1 > 0 {
		growth := float64(c.Total2-c.Total1) / float64(c.Total1) * 100
		c.GrowthPct = math.Round(growth*10) / 10
	}

	m1 := monthCounts(sub1)
	m2 := monthCounts(sub2)
	sort.Ints(months)
	for _, m := range months {
		if m < 1 || m > 12 {
			continue
		}
		c.Monthly = append(c.Monthly, MonthPair{
			Month:  m,
			Name:   MonthNames[m-1],
			Count1: m1[m-1],
			Count2: m2[m-1],
		})
	}

	c.Specialties = specialtyDiffs(sub1, sub2)
	return c
}

func allMonths() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

func monthCounts(records []Record) [12]int {
	var counts [12]int
	for _, r := range records {
		if r.MonthFinal >= 1 && r.MonthFinal <= 12 {
			counts[r.MonthFinal-1]++
		}
	}
	return counts
}

// specialtyDiffs computes the signed difference for every specialty
// seen in either year, largest gain first.
func specialtyDiffs(sub1, sub2 []Record) []SpecialtyDiff {
	c1 := map[string]int{}
	c2 := map[string]int{}
	for _, r := range sub1 {
		c1[orMissing(r.SpecName)]++
	}
	for _, r := range sub2 {
		c2[orMissing(r.SpecName)]++
	}

	union := map[string]bool{}
	for name := range c1 {
		union[name] = true
	}
	for name := range c2 {
		union[name] = true
	}

	out := make([]SpecialtyDiff, 0, len(union))
	for name := range union {
		out = append(out, SpecialtyDiff{
			Name:   name,
			Count1: c1[name],
			Count2: c2[name],
			Diff:   c2[name] - c1[name],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Diff != out[j].Diff {
			return out[i].Diff > out[j].Diff
		}
		return out[i].Name < out[j].Name
	})
	return out
}
