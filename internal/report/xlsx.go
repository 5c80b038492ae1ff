// Package report exports batch analysis results as a spreadsheet.
package report

import (
	"fmt"
	"math"

	"aset-analyzer/internal/analysis"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sheet names.
const (
	ResultsSheet = "Sheet1"
	SummarySheet = "Summary"
	ErrorsSheet  = "Errors"
)

// DefaultName is the spreadsheet file name written into the destination folder.
const DefaultName = "ASET_Analysis.xlsx"

// Row is the report line for one analyzed image.
type Row struct {
	File        string
	Percentages analysis.Percentages
}

// Failure records an image that produced no row, or whose figure failed.
type Failure struct {
	File string
	Err  error
}

// Header returns the results sheet column titles.
func Header() []string {
	h := []string{"File"}
	for _, c := range analysis.Categories {
		h = append(h, c.String()+" %")
	}
	return h
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteXLSX writes rows, a per-category summary, and any failures to path.
func WriteXLSX(path string, rows []Row, failures []Failure) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeResults(f, rows); err != nil {
		return fmt.Errorf("writing results sheet: %w", err)
	}
	if len(rows) > 0 {
		if err := writeSummary(f, rows); err != nil {
			return fmt.Errorf("writing summary sheet: %w", err)
		}
	}
	if len(failures) > 0 {
		if err := writeFailures(f, failures); err != nil {
			return fmt.Errorf("writing errors sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toRow(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func writeResults(f *excelize.File, rows []Row) error {
	if err := setRow(f, ResultsSheet, 1, toRow(Header())); err != nil {
		return err
	}
	for i, r := range rows {
		values := []interface{}{r.File}
		for _, p := range r.Percentages.Values() {
			values = append(values, Round2(p))
		}
		if err := setRow(f, ResultsSheet, i+2, values); err != nil {
			return err
		}
	}
	return f.SetColWidth(ResultsSheet, "A", "A", 32)
}

// Stats summarizes one category across a batch.
type Stats struct {
	Mean, StdDev, Min, Max float64
}

// Summarize computes per-category statistics over rows. It returns nil for
// an empty batch.
func Summarize(rows []Row) map[analysis.Category]Stats {
	if len(rows) == 0 {
		return nil
	}
	out := make(map[analysis.Category]Stats, len(analysis.Categories))
	values := make([]float64, len(rows))
	for _, c := range analysis.Categories {
		for i, r := range rows {
			values[i] = r.Percentages[c]
		}
		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			std = 0
		}
		out[c] = Stats{Mean: mean, StdDev: std, Min: floats.Min(values), Max: floats.Max(values)}
	}
	return out
}

func writeSummary(f *excelize.File, rows []Row) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	header := []interface{}{"Category", "Mean %", "Std Dev %", "Min %", "Max %", "Images"}
	if err := setRow(f, SummarySheet, 1, header); err != nil {
		return err
	}
	stats := Summarize(rows)
	for i, c := range analysis.Categories {
		s := stats[c]
		values := []interface{}{c.String(), Round2(s.Mean), Round2(s.StdDev), Round2(s.Min), Round2(s.Max), len(rows)}
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeFailures(f *excelize.File, failures []Failure) error {
	if _, err := f.NewSheet(ErrorsSheet); err != nil {
		return err
	}
	if err := setRow(f, ErrorsSheet, 1, []interface{}{"File", "Error"}); err != nil {
		return err
	}
	for i, fl := range failures {
		msg := ""
		if fl.Err != nil {
			msg = fl.Err.Error()
		}
		if err := setRow(f, ErrorsSheet, i+2, []interface{}{fl.File, msg}); err != nil {
			return err
		}
	}
	return f.SetColWidth(ErrorsSheet, "B", "B", 60)
}
