package visits

import "time"

// Criteria is a conjunction of predicates; each one is vacuously true
// when its selector is empty. List predicates are exact-string set
// membership, never substring. A record missing the value an active
// predicate needs fails that predicate.
type Criteria struct {
	Year          string // "" matches every year, including unknown
	Months        []int  // 1-12; empty matches every month
	Specialties   []string
	Procedures    []string // display-procedure labels
	Professionals []string
	From, To      time.Time // inclusive; zero means unbounded
}

// WithoutSelectors returns a copy of the criteria with the specialty,
// procedure and professional selectors cleared. This is the rank basis
// for stable color assignment: narrowing to one specialty must not move
// its color.
func (c Criteria) WithoutSelectors() Criteria {
	c.Specialties = nil
	c.Procedures = nil
	c.Professionals = nil
	return c
}

// Quarter expands a calendar quarter (1-4) to its month set.
func Quarter(q int) []int {
	if q < 1 || q > 4 {
		return nil
	}
	first := (q-1)*3 + 1
	return []int{first, first + 1, first + 2}
}

// Semester expands a semester (1-2) to its month set.
func Semester(s int) []int {
	switch s {
	case 1:
		return []int{1, 2, 3, 4, 5, 6}
	case 2:
		return []int{7, 8, 9, 10, 11, 12}
	default:
		return nil
	}
}

// Apply filters records by the conjunction of all active predicates.
// Order is preserved; an all-empty criteria returns an equal slice.
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
	if c.Year != "" && r.YearFinal != c.Year {
		return false
	}
	if len(c.Months) > 0 && !containsInt(c.Months, r.MonthFinal) {
		return false
	}
	if len(c.Specialties) > 0 && !containsStr(c.Specialties, r.SpecName) {
		return false
	}
	if len(c.Procedures) > 0 && !containsStr(c.Procedures, r.DisplayProcedure) {
		return false
	}
	if len(c.Professionals) > 0 && !containsStr(c.Professionals, r.ProfName) {
		return false
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		if r.Date.IsZero() {
			return false
		}
		if !c.From.IsZero() && r.Date.Before(c.From) {
			return false
		}
		if !c.To.IsZero() && r.Date.After(c.To) {
			return false
		}
	}
	return true
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsStr(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
