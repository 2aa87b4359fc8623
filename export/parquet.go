package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"hospdash/visits"
)

const flushInterval = 100_000

// VisitRow is the flat Parquet projection of a classified visit record.
// Dates stay in their raw dd/mm/yyyy form so the file round-trips the
// upload exactly; Age is -1 when the source column was not a number.
type VisitRow struct {
	UnitCode     string `parquet:"unit_code"`
	UnitName     string `parquet:"unit_name"`
	Year         string `parquet:"year"`
	Month        int32  `parquet:"month"`
	Date         string `parquet:"date"`
	Time         string `parquet:"time"`
	Specialty    string `parquet:"specialty"`
	Professional string `parquet:"professional"`
	ProcCode     string `parquet:"proc_code"`
	Procedure    string `parquet:"procedure"`
	City         string `parquet:"city"`
	Age          int32  `parquet:"age"`
}

// NewVisitRow projects one record.
func NewVisitRow(r visits.Record) VisitRow {
	age := int32(-1)
	if r.HasAge {
		age = int32(r.Age)
	}
	return VisitRow{
		UnitCode:     r.UnitCode,
		UnitName:     r.UnitName,
		Year:         r.YearFinal,
		Month:        int32(r.MonthFinal),
		Date:         r.DateRaw,
		Time:         r.TimeRaw,
		Specialty:    r.SpecName,
		Professional: r.ProfName,
		ProcCode:     r.ProcCode,
		Procedure:    r.DisplayProcedure,
		City:         r.City,
		Age:          age,
	}
}

// VisitWriter writes visit rows to a Parquet file.
type VisitWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[VisitRow]
	count  int
}

// NewVisitWriter creates a new Parquet writer for visit rows.
func NewVisitWriter(path string) (*VisitWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create visit parquet: %w", err)
	}
	writer := parquet.NewGenericWriter[VisitRow](file,
		parquet.Compression(&parquet.Snappy),
	)
	return &VisitWriter{file: file, writer: writer}, nil
}

// Write writes a single visit row.
func (w *VisitWriter) Write(row VisitRow) error {
	if _, err := w.writer.Write([]VisitRow{row}); err != nil {
		return fmt.Errorf("write visit row: %w", err)
	}
	w.count++
	if w.count%flushInterval == 0 {
		if err := w.writer.Flush(); err != nil {
			return fmt.Errorf("flush visits: %w", err)
		}
	}
	return nil
}

// Close flushes and closes the writer.
func (w *VisitWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close visit writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the number of rows written.
func (w *VisitWriter) Count() int { return w.count }

// WriteVisitsParquet writes all records to a single Parquet file.
func WriteVisitsParquet(path string, records []visits.Record) (int, error) {
	w, err := NewVisitWriter(path)
	if err != nil {
		return 0, err
	}
	for _, r := range records {
		if err := w.Write(NewVisitRow(r)); err != nil {
			w.Close()
			return w.Count(), err
		}
	}
	if err := w.Close(); err != nil {
		return w.Count(), err
	}
	return w.Count(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
