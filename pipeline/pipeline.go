// Package pipeline orchestrates the full upload flow: tokenize, detect
// the schema, resolve headers and build the record set for whichever
// pipeline (visits or demand) matches the file. Every step is pure; the
// host owns state and simply replaces the previous Dataset on each
// upload.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"hospdash/csvparse"
	"hospdash/demand"
	"hospdash/textfix"
	"hospdash/visits"
)

// Options configures one load. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	HospitalUnit string
	Demand       demand.BuildOptions
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		HospitalUnit: visits.DefaultHospitalUnit,
		Demand:       demand.DefaultBuildOptions(),
	}
}

// Dataset is one upload's fully built record set. Exactly one of Visits
// or Demand is populated, per Schema. Datasets are immutable; a new
// upload produces a new Dataset and the old one is discarded whole.
type Dataset struct {
	ID     uuid.UUID
	Schema csvparse.Schema
	Visits []visits.Record
	Demand []demand.Record
}

// Unit is one facility present in a visits dataset.
type Unit struct {
	Code string
	Name string
}

// Detect classifies CSV text without building records.
func Detect(text string) csvparse.Schema {
	rows := csvparse.Tokenize(text)
	if len(rows) == 0 {
		return csvparse.SchemaUnknown
	}
	return csvparse.DetectSchema(rows[0])
}

// Load runs the full pipeline over raw CSV text. A file whose header
// matches neither schema is rejected with an error rather than parsed
// best-effort. An empty or header-only file of a known schema yields an
// empty dataset, not an error.
func Load(text string, opts Options) (*Dataset, error) {
	rows := csvparse.Tokenize(text)
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	schema := csvparse.DetectSchema(rows[0])
	ds := &Dataset{ID: uuid.New(), Schema: schema}
	switch schema {
	case csvparse.SchemaVisits:
		headers := csvparse.VisitAliases.ResolveAll(rows[0])
		ds.Visits = visits.BuildRecords(headers, rows[1:])
	case csvparse.SchemaDemand:
		headers := csvparse.DemandAliases.ResolveAll(rows[0])
		ds.Demand = demand.BuildRecords(headers, rows[1:], opts.Demand)
	default:
		return nil, fmt.Errorf("unrecognized csv schema: header %q matches neither the visits nor the waiting-list layout", rows[0])
	}
	return ds, nil
}

// Units lists the facilities in a visits dataset, hospital unit first,
// the rest sorted by name. Unit names go through text repair since they
// come straight from the export.
func (d *Dataset) Units(hospitalUnit string) []Unit {
	seen := map[string]string{}
	var codes []string
	for _, r := range d.Visits {
		code := strings.TrimSpace(r.UnitCode)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; !ok {
			name := textfix.Repair(r.UnitName)
			if name == "" {
				name = "Unidade " + code
			}
			seen[code] = name
			codes = append(codes, code)
		}
	}
	units := make([]Unit, 0, len(codes))
	for _, code := range codes {
		units = append(units, Unit{Code: code, Name: seen[code]})
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].Code == hospitalUnit {
			return true
		}
		if units[j].Code == hospitalUnit {
			return false
		}
		return units[i].Name < units[j].Name
	})
	return units
}

// Years lists the distinct known years in a visits dataset, most recent
// first. Records with an unknown year are not offered as an option.
func (d *Dataset) Years() []string {
	seen := map[string]bool{}
	for _, r := range d.Visits {
		if r.YearFinal != visits.YearUnknown {
			seen[r.YearFinal] = true
		}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
