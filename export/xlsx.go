// Package export renders aggregate tables to spreadsheet files and
// classified records to Parquet. Rows handed to the spreadsheet writer
// must be flat maps, one value per column; helpers here flatten the
// aggregates that nest (the specialty matrix, the productivity table)
// before writing.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hospdash/visits"
)

// XLSXBytes renders header + rows into a single-sheet workbook. Columns
// follow the headers slice; a row missing a key leaves the cell empty.
func XLSXBytes(sheet string, headers []string, rows []map[string]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header cell %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		for col, header := range headers {
			val, ok := row[header]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the workbook to a file.
func WriteXLSX(path, sheet string, headers []string, rows []map[string]any) error {
	data, err := XLSXBytes(sheet, headers, rows)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// MatrixRows flattens the specialty×month matrix into spreadsheet rows:
// one total column and one observation column per month, then the row
// total.
func MatrixRows(matrix []visits.MatrixRow) ([]string, []map[string]any) {
	headers := []string{"Especialidade"}
	for _, m := range visits.MonthNames {
		headers = append(headers, m, m+" (obs)")
	}
	headers = append(headers, "Total")

	rows := make([]map[string]any, 0, len(matrix))
	for _, mr := range matrix {
		row := map[string]any{"Especialidade": mr.Specialty, "Total": mr.Total}
		for i, cell := range mr.Months {
			row[visits.MonthNames[i]] = cell.Total
			row[visits.MonthNames[i]+" (obs)"] = cell.Observation
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// ProfessionalRows flattens the productivity table. Hospital datasets
// get the per-category and per-shift columns; pass hospital=false to
// omit them.
func ProfessionalRows(profs []visits.Professional, hospital bool) ([]string, []map[string]any) {
	headers := []string{"Profissional", "Dias Trab.", "Média/Dia", "Total Geral"}
	if hospital {
		headers = []string{
			"Profissional", "Dias Trab.", "Média/Dia",
			visits.CategoryFirstVisit, visits.CategoryObservation,
			"Diurno", "Noturno", "Indefinido",
			"Total Geral",
		}
	}

	rows := make([]map[string]any, 0, len(profs))
	for _, p := range profs {
		row := map[string]any{
			"Profissional": p.Name,
			"Dias Trab.":   p.DaysWorked,
			"Média/Dia":    p.AvgPerDay,
			"Total Geral":  p.Total,
		}
		if hospital {
			row[visits.CategoryFirstVisit] = p.Categories[visits.CategoryFirstVisit]
			row[visits.CategoryObservation] = p.Categories[visits.CategoryObservation]
			var day, night, unknown int
			for _, sc := range p.Shifts {
				day += sc.Day
				night += sc.Night
				unknown += sc.Unknown
			}
			row["Diurno"] = day
			row["Noturno"] = night
			row["Indefinido"] = unknown
		}
		rows = append(rows, row)
	}
	return headers, rows
}
