package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"hospdash/visits"
)

func TestXLSXBytesRoundTrip(t *testing.T) {
	headers := []string{"Nome", "Total"}
	rows := []map[string]any{
		{"Nome": "Dr. A", "Total": 42},
		{"Nome": "Dr. B"}, // missing key leaves the cell empty
	}

	data, err := XLSXBytes("Relatório", headers, rows)
	if err != nil {
		t.Fatalf("XLSXBytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	assertCell(t, f, "A1", "Nome")
	assertCell(t, f, "B1", "Total")
	assertCell(t, f, "A2", "Dr. A")
	assertCell(t, f, "B2", "42")
	assertCell(t, f, "A3", "Dr. B")
	assertCell(t, f, "B3", "")
}

func assertCell(t *testing.T, f *excelize.File, cell, want string) {
	t.Helper()
	got, err := f.GetCellValue("Relatório", cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", cell, err)
	}
	if got != want {
		t.Errorf("cell %s = %q, want %q", cell, got, want)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := WriteXLSX(path, "Relatório", []string{"A"}, []map[string]any{{"A": 1}})
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestMatrixRows(t *testing.T) {
	matrix := []visits.MatrixRow{{Specialty: "Pediatria", Total: 3}}
	matrix[0].Months[0] = visits.MatrixCell{Total: 2, Observation: 1}
	matrix[0].Months[11] = visits.MatrixCell{Total: 1}

	headers, rows := MatrixRows(matrix)
	if len(headers) != 26 {
		t.Fatalf("got %d headers, want specialty + 12 month pairs + total", len(headers))
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row["Especialidade"] != "Pediatria" || row["Total"] != 3 {
		t.Errorf("row identity columns: %v", row)
	}
	if row["Jan"] != 2 || row["Jan (obs)"] != 1 {
		t.Errorf("january cells: %v / %v", row["Jan"], row["Jan (obs)"])
	}
	if row["Dez"] != 1 || row["Dez (obs)"] != 0 {
		t.Errorf("december cells: %v / %v", row["Dez"], row["Dez (obs)"])
	}
}

func TestProfessionalRows(t *testing.T) {
	profs := []visits.Professional{{
		Name:       "Dr. A",
		Total:      10,
		DaysWorked: 5,
		AvgPerDay:  2.0,
		Categories: map[string]int{visits.CategoryFirstVisit: 7, visits.CategoryObservation: 3},
		Shifts: map[string]visits.ShiftCounts{
			visits.CategoryFirstVisit:  {Day: 5, Night: 2},
			visits.CategoryObservation: {Day: 1, Night: 1, Unknown: 1},
		},
	}}

	headers, rows := ProfessionalRows(profs, true)
	if len(headers) != 9 {
		t.Fatalf("hospital headers = %d, want 9", len(headers))
	}
	row := rows[0]
	if row["Diurno"] != 6 || row["Noturno"] != 3 || row["Indefinido"] != 1 {
		t.Errorf("shift totals: %v", row)
	}
	if row[visits.CategoryFirstVisit] != 7 {
		t.Errorf("category column: %v", row)
	}

	headers, rows = ProfessionalRows(profs, false)
	if len(headers) != 4 {
		t.Fatalf("non-hospital headers = %d, want 4", len(headers))
	}
	if _, ok := rows[0]["Diurno"]; ok {
		t.Error("non-hospital rows must not carry shift columns")
	}
}

func TestVisitsParquetRoundTrip(t *testing.T) {
	records := []visits.Record{
		{
			UnitCode:         "104",
			UnitName:         "HOSPITAL",
			YearFinal:        "2025",
			MonthFinal:       1,
			DateRaw:          "05/01/2025",
			TimeRaw:          "08:30",
			SpecName:         "Pediatria",
			ProfName:         "Dr. A",
			ProcCode:         "301060096",
			DisplayProcedure: visits.CategoryFirstVisit,
			City:             "Betim",
			Age:              34,
			HasAge:           true,
		},
		{UnitCode: "104", YearFinal: "2025", MonthFinal: 2},
	}

	path := filepath.Join(t.TempDir(), "visits.parquet")
	n, err := WriteVisitsParquet(path, records)
	if err != nil {
		t.Fatalf("WriteVisitsParquet: %v", err)
	}
	if n != 2 {
		t.Fatalf("wrote %d rows, want 2", n)
	}

	rows := readVisitRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0].Specialty != "Pediatria" || rows[0].Procedure != visits.CategoryFirstVisit {
		t.Errorf("first row: %+v", rows[0])
	}
	if rows[0].Age != 34 {
		t.Errorf("age = %d, want 34", rows[0].Age)
	}
	if rows[1].Age != -1 {
		t.Errorf("missing age = %d, want -1 sentinel", rows[1].Age)
	}
	if rows[1].Month != 2 {
		t.Errorf("month = %d, want 2", rows[1].Month)
	}
}

func readVisitRows(t *testing.T, path string) []VisitRow {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[VisitRow](f)
	defer reader.Close()

	rows := make([]VisitRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		t.Fatalf("read parquet: %v", err)
	}
	return rows[:n]
}
