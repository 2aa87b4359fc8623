package visits

import (
	"math"
	"sort"
	"strings"
)

// Palette is the fixed chart palette; color indexes cycle through it.
var Palette = []string{
	"#0ea5e9", "#22c55e", "#eab308", "#f97316", "#ef4444",
	"#8b5cf6", "#ec4899", "#6366f1", "#14b8a6", "#f43f5e",
}

// MonthNames holds the pt-BR month labels, index 0 = January.
var MonthNames = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// WeekdayNames holds the pt-BR day labels, Sunday first to match
// time.Weekday numbering.
var WeekdayNames = []string{
	"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado",
}

// labelMissing buckets records whose specialty, professional or city
// column is empty.
const labelMissing = "Não informado"

// bandUnclassified buckets records with no parseable age in the
// age-band histogram; they are not dropped from it.
const bandUnclassified = "Não classificado"

// Shift labels. Diurno covers hours 7-18 inclusive; Indefinido marks an
// unparseable hour and never counts toward either real shift.
const (
	ShiftDay     = "Diurno"
	ShiftNight   = "Noturno"
	ShiftUnknown = "Indefinido"
)

const topProfessionals = 20

type MonthCount struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type SpecialtyCount struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	ColorIndex int    `json:"colorIndex"`
}

type CityCount struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type ProcedureCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type BandCount struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// ShiftCounts is one category's day/night split. Unknown rows are kept
// apart so they never inflate either shift.
type ShiftCounts struct {
	Day     int `json:"diurno"`
	Night   int `json:"noturno"`
	Unknown int `json:"indefinido"`
}

// Professional aggregates one professional's production. Categories and
// Shifts are populated for the hospital unit only.
type Professional struct {
	Name       string                 `json:"name"`
	Total      int                    `json:"total"`
	DaysWorked int                    `json:"daysWorked"`
	AvgPerDay  float64                `json:"avgPerDay"`
	Categories map[string]int         `json:"categories,omitempty"`
	Shifts     map[string]ShiftCounts `json:"shifts,omitempty"`
}

type MatrixCell struct {
	Total       int `json:"total"`
	Observation int `json:"observation"`
}

// MatrixRow is one specialty's 12-month breakdown; Months[0] = January.
type MatrixRow struct {
	Specialty string         `json:"specialty"`
	Months    [12]MatrixCell `json:"months"`
	Total     int            `json:"total"`
}

// Stats holds every dashboard aggregate for one filtered record set.
// Hospital-only views (Matrix, per-professional categories and shifts)
// are nil for other units, not empty.
type Stats struct {
	Total            int
	Monthly          []MonthCount // always 12 entries, calendar order
	Specialties      []SpecialtyCount
	Procedures       []ProcedureCount // by display procedure
	Cities           []CityCount
	AgeBands         []BandCount
	Weekdays         []WeekdayCount // always 7, Sunday first
	Hours            []HourCount    // always 24
	Professionals    []Professional // top 20 by total
	AllProfessionals []Professional
	Matrix           []MatrixRow
}

// Aggregate computes all dashboard statistics from one unit's filtered
// records. rankBasis supplies the specialty ordering for stable color
// assignment; callers pass the same records filtered by
// Criteria.WithoutSelectors so a specialty keeps its color when the
// user narrows down to it. hospital reports whether the active unit is
// the hospital unit. Pure: identical inputs yield identical output.
func Aggregate(filtered, rankBasis []Record, hospital bool) *Stats {
	s := &Stats{Total: len(filtered)}

	monthly := [12]int{}
	hours := [24]int{}
	weekdays := [7]int{}
	specs := map[string]int{}
	procs := map[string]int{}
	cities := map[string]int{}
	bands := map[string]int{}
	profs := map[string]*profAccum{}

	for _, r := range filtered {
		if r.MonthFinal >= 1 && r.MonthFinal <= 12 {
			monthly[r.MonthFinal-1]++
		}
		specs[orMissing(r.SpecName)]++
		procs[orMissing(r.DisplayProcedure)]++
		cities[orMissing(r.City)]++

		band := r.AgeGroup
		if band == "" {
			band = bandUnclassified
		}
		bands[band]++

		if !r.Date.IsZero() {
			weekdays[int(r.Date.Weekday())]++
		}
		if h, ok := r.Hour(); ok {
			hours[h]++
		}

		accumulateProfessional(profs, r, hospital)
	}

	for i := 0; i < 12; i++ {
		s.Monthly = append(s.Monthly, MonthCount{Month: i + 1, Name: MonthNames[i], Count: monthly[i]})
	}
	for i := 0; i < 24; i++ {
		s.Hours = append(s.Hours, HourCount{Hour: i, Count: hours[i]})
	}
	for i := 0; i < 7; i++ {
		s.Weekdays = append(s.Weekdays, WeekdayCount{Day: WeekdayNames[i], Count: weekdays[i]})
	}

	s.Specialties = specialtyHistogram(specs, colorRanks(rankBasis))
	s.Procedures = procedureHistogram(procs)
	s.Cities = cityHistogram(cities, s.Total)
	s.AgeBands = bandHistogram(bands)
	s.AllProfessionals = professionalTable(profs)
	if len(s.AllProfessionals) > topProfessionals {
		s.Professionals = s.AllProfessionals[:topProfessionals]
	} else {
		s.Professionals = s.AllProfessionals
	}
	if hospital {
		s.Matrix = specialtyMatrix(filtered)
	}
	return s
}

func orMissing(v string) string {
	if v == "" {
		return labelMissing
	}
	return v
}

// colorRanks orders specialties by volume over the rank basis and
// assigns each a palette index, cycling when the palette runs out.
func colorRanks(basis []Record) map[string]int {
	counts := map[string]int{}
	for _, r := range basis {
		counts[orMissing(r.SpecName)]++
	}
	ordered := sortedByCount(counts)
	ranks := make(map[string]int, len(ordered))
	for i, name := range ordered {
		ranks[name] = i % len(Palette)
	}
	return ranks
}

// sortedByCount returns map keys sorted by descending count, ties
// broken by name so repeated runs stay bit-identical.
func sortedByCount(counts map[string]int) []string {
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
	return names
}

func specialtyHistogram(counts map[string]int, ranks map[string]int) []SpecialtyCount {
	out := make([]SpecialtyCount, 0, len(counts))
	for _, name := range sortedByCount(counts) {
		idx, ok := ranks[name]
		if !ok {
			// Not in the rank basis (possible when the basis criteria
			// exclude rows the selector criteria keep); park it after
			// the ranked ones.
			idx = len(ranks) % len(Palette)
		}
		out = append(out, SpecialtyCount{Name: name, Count: counts[name], ColorIndex: idx})
	}
	return out
}

func procedureHistogram(counts map[string]int) []ProcedureCount {
	out := make([]ProcedureCount, 0, len(counts))
	for _, name := range sortedByCount(counts) {
		out = append(out, ProcedureCount{Name: name, Count: counts[name]})
	}
	return out
}

func cityHistogram(counts map[string]int, total int) []CityCount {
	out := make([]CityCount, 0, len(counts))
	for _, name := range sortedByCount(counts) {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(counts[name])/float64(total)*1000) / 10
		}
		out = append(out, CityCount{Name: name, Count: counts[name], Pct: pct})
	}
	return out
}

func bandHistogram(counts map[string]int) []BandCount {
	labels := make([]string, 0, len(ageBands)+2)
	for _, b := range ageBands {
		labels = append(labels, b.label)
	}
	labels = append(labels, bandElderly)
	if counts[bandUnclassified] > 0 {
		labels = append(labels, bandUnclassified)
	}
	out := make([]BandCount, 0, len(labels))
	for _, label := range labels {
		out = append(out, BandCount{Band: label, Count: counts[label]})
	}
	return out
}

type profAccum struct {
	name       string
	total      int
	days       map[string]bool
	categories map[string]int
	shifts     map[string]ShiftCounts
}

func accumulateProfessional(profs map[string]*profAccum, r Record, hospital bool) {
	name := orMissing(r.ProfName)
	p, ok := profs[name]
	if !ok {
		p = &profAccum{name: name, days: map[string]bool{}}
		if hospital {
			p.categories = map[string]int{}
			p.shifts = map[string]ShiftCounts{}
		}
		profs[name] = p
	}
	p.total++
	if r.DateRaw != "" {
		p.days[r.DateRaw] = true
	}
	if !hospital {
		return
	}
	p.categories[r.DisplayProcedure]++
	sc := p.shifts[r.DisplayProcedure]
	switch shiftOf(r) {
	case ShiftDay:
		sc.Day++
	case ShiftNight:
		sc.Night++
	default:
		sc.Unknown++
	}
	p.shifts[r.DisplayProcedure] = sc
}

func shiftOf(r Record) string {
	h, ok := r.Hour()
	if !ok {
		return ShiftUnknown
	}
	if h >= 7 && h <= 18 {
		return ShiftDay
	}
	return ShiftNight
}

func professionalTable(profs map[string]*profAccum) []Professional {
	out := make([]Professional, 0, len(profs))
	for _, p := range profs {
		days := len(p.days)
		if days == 0 {
			days = 1
		}
		out = append(out, Professional{
			Name:       p.name,
			Total:      p.total,
			DaysWorked: days,
			AvgPerDay:  math.Round(float64(p.total)/float64(days)*10) / 10,
			Categories: p.categories,
			Shifts:     p.shifts,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// specialtyMatrix cross-tabulates specialty by month, with the
// observation-code subcount per cell.
func specialtyMatrix(records []Record) []MatrixRow {
	byName := map[string]*MatrixRow{}
	for _, r := range records {
		if r.MonthFinal < 1 || r.MonthFinal > 12 {
			continue
		}
		name := orMissing(r.SpecName)
		row, ok := byName[name]
		if !ok {
			row = &MatrixRow{Specialty: name}
			byName[name] = row
		}
		cell := &row.Months[r.MonthFinal-1]
		cell.Total++
		row.Total++
		if IsObservationCode(r.ProcCode) {
			cell.Observation++
		}
	}
	out := make([]MatrixRow, 0, len(byName))
	for _, row := range byName {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.Compare(out[i].Specialty, out[j].Specialty) < 0
	})
	return out
}
