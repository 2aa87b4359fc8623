package visits

import "strings"

// DefaultHospitalUnit is the unit code of the hospital whose rows are
// classified by procedure code instead of procedure name.
const DefaultHospitalUnit = "104"

// Display categories for hospital rows.
const (
	CategoryFirstVisit  = "Primeiro atendimento"
	CategoryObservation = "Pacientes em observação"
)

// excludedProcMarker invalidates rows at non-hospital units: those
// procedures are billed elsewhere and must not count toward volume.
const excludedProcMarker = "ELETROCARDIOGRAMA"

// fallbackProcName labels valid non-hospital rows whose procedure name
// column is empty.
const fallbackProcName = "Sem Nome"

// hospitalProcedures maps SUS procedure codes (with and without the
// leading zero, plus legacy internal codes) to their display category.
// These are billing-code mappings: changing an entry changes what the
// hospital reports, so the table is kept literal.
var hospitalProcedures = map[string]string{
	"301060096":  CategoryFirstVisit,
	"0301060096": CategoryFirstVisit,
	"9999999984": CategoryFirstVisit,

	"301060029":  CategoryObservation,
	"0301060029": CategoryObservation,
	"9990000096": CategoryObservation,
}

// observationCodes is the subset counted separately in the
// specialty×month matrix.
var observationCodes = map[string]bool{
	"301060029":  true,
	"0301060029": true,
	"9990000096": true,
}

// IsObservationCode reports whether a procedure code belongs to the
// observation subset.
func IsObservationCode(code string) bool {
	return observationCodes[strings.TrimSpace(code)]
}

// Classifier assigns validity and a display category to records. The
// hospital unit is configurable for deployments where the hospital
// carries a different code.
type Classifier struct {
	HospitalUnit string
}

// NewClassifier returns a Classifier for the default hospital unit.
func NewClassifier() Classifier {
	return Classifier{HospitalUnit: DefaultHospitalUnit}
}

// Classify returns the display procedure and validity for one record at
// the given unit. Hospital rows are valid only when their procedure
// code is in the category table; rows at any other unit are valid
// unless the procedure name contains the excluded marker.
func (c Classifier) Classify(r Record, activeUnit string) (string, bool) {
	if activeUnit == c.HospitalUnit {
		category, ok := hospitalProcedures[strings.TrimSpace(r.ProcCode)]
		return category, ok
	}
	if strings.Contains(strings.ToUpper(r.ProcName), excludedProcMarker) {
		return "", false
	}
	if r.ProcName == "" {
		return fallbackProcName, true
	}
	return r.ProcName, true
}

// UnitRecords selects the records belonging to one unit, classifies
// them and drops invalid rows. This is the record set every dashboard
// aggregate is computed from.
func (c Classifier) UnitRecords(records []Record, unit string) []Record {
	var out []Record
	for _, r := range records {
		if strings.TrimSpace(r.UnitCode) != unit {
			continue
		}
		display, ok := c.Classify(r, unit)
		if !ok {
			continue
		}
		r.DisplayProcedure = display
		r.Valid = true
		out = append(out, r)
	}
	return out
}
