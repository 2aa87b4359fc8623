package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"hospdash/csvparse"
	"hospdash/demand"
	"hospdash/export"
	"hospdash/pipeline"
	"hospdash/visits"
)

func main() {
	// CLI flags
	inputFile := flag.String("file", "", "Path to the attendance or waiting-list CSV")
	useDemo := flag.Bool("demo", false, "Run against the built-in demo dataset")
	unit := flag.String("unit", visits.DefaultHospitalUnit, "Unit code to report on")
	year := flag.String("year", "", "Restrict to one year (e.g. 2025)")
	latin1 := flag.Bool("latin1", true, "Decode the input file as ISO-8859-1")
	xlsxOut := flag.String("xlsx", "", "Write the specialty matrix and productivity table to this .xlsx file")
	parquetOut := flag.String("parquet", "", "Write the classified unit records to this .parquet file")

	flag.Parse()

	if *inputFile == "" && !*useDemo {
		fmt.Println("Usage: hospdash -file <csv_file> [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ds, err := loadDataset(*inputFile, *useDemo, *latin1)
	if err != nil {
		log.Fatalw("load dataset", "file", *inputFile, "error", err)
	}
	log.Infow("dataset loaded",
		"id", ds.ID,
		"schema", ds.Schema,
		"visits", len(ds.Visits),
		"demand", len(ds.Demand),
	)

	switch ds.Schema {
	case csvparse.SchemaVisits:
		reportVisits(log, ds, *unit, *year, *xlsxOut, *parquetOut)
	case csvparse.SchemaDemand:
		reportDemand(log, ds)
	}
}

// loadDataset reads and decodes the input. Uploads come from a system
// that exports ISO-8859-1, so the bytes are decoded before parsing
// unless -latin1=false.
func loadDataset(path string, useDemo, latin1 bool) (*pipeline.Dataset, error) {
	if useDemo {
		return pipeline.Demo(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := string(raw)
	if latin1 {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		text = string(decoded)
	}
	return pipeline.Load(text, pipeline.DefaultOptions())
}

func reportVisits(log *zap.SugaredLogger, ds *pipeline.Dataset, unit, year, xlsxOut, parquetOut string) {
	classifier := visits.Classifier{HospitalUnit: visits.DefaultHospitalUnit}
	unitRecords := classifier.UnitRecords(ds.Visits, unit)
	hospital := unit == classifier.HospitalUnit

	criteria := visits.Criteria{Year: year}
	filtered := visits.Apply(unitRecords, criteria)
	rankBasis := visits.Apply(unitRecords, criteria.WithoutSelectors())
	stats := visits.Aggregate(filtered, rankBasis, hospital)

	log.Infow("unit report",
		"unit", unit,
		"hospital", hospital,
		"year", orAll(year),
		"total", stats.Total,
		"specialties", len(stats.Specialties),
		"professionals", len(stats.AllProfessionals),
	)
	for _, u := range ds.Units(classifier.HospitalUnit) {
		log.Infow("unit available", "code", u.Code, "name", u.Name)
	}

	if xlsxOut != "" {
		headers, rows := export.ProfessionalRows(stats.AllProfessionals, hospital)
		if hospital {
			headers, rows = export.MatrixRows(stats.Matrix)
		}
		if err := export.WriteXLSX(xlsxOut, "Relatório", headers, rows); err != nil {
			log.Fatalw("write xlsx", "path", xlsxOut, "error", err)
		}
		log.Infow("xlsx written", "path", xlsxOut, "rows", len(rows))
	}
	if parquetOut != "" {
		n, err := export.WriteVisitsParquet(parquetOut, filtered)
		if err != nil {
			log.Fatalw("write parquet", "path", parquetOut, "error", err)
		}
		log.Infow("parquet written", "path", parquetOut, "rows", n)
	}
}

func reportDemand(log *zap.SugaredLogger, ds *pipeline.Dataset) {
	stats := demand.Aggregate(ds.Demand, nil)
	log.Infow("waiting-list report",
		"total", stats.Total,
		"avgWaitDays", stats.AvgWaitDays,
		"groupedBy", stats.MainBy,
		"units", len(stats.Units),
		"procedures", len(stats.Procedures),
	)
	for i, g := range stats.Main {
		if i >= 10 {
			break
		}
		log.Infow("pending by "+stats.MainBy, "name", g.Name, "count", g.Count)
	}
}

func orAll(year string) string {
	if strings.TrimSpace(year) == "" {
		return "all"
	}
	return year
}
