package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/premium/batch"

	"github.com/xuri/excelize/v2"
)

const resultSheet = "Results"

// Row is one parsed spreadsheet line. Line is the 1-based sheet row.
type Row struct {
	Line  int
	Input isolator.Input
	Err   error
}

// ReadInputs parses the first sheet. Expected columns, after a header row:
// load_kg, num_isolators, excite_freq_hz, target_efficiency_pct,
// target_natural_freq_hz (optional, blank or 0 = auto).
func ReadInputs(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		out = append(out, Row{Line: i + 1, Input: in, Err: err})
	}
	return out, nil
}

func parseRow(row []string) (isolator.Input, error) {
	if len(row) < 4 {
		return isolator.Input{}, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}
	load, err := toFloat("load_kg", row[0])
	if err != nil {
		return isolator.Input{}, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return isolator.Input{}, fmt.Errorf("num_isolators: %q is not a whole number", row[1])
	}
	excite, err := toFloat("excite_freq_hz", row[2])
	if err != nil {
		return isolator.Input{}, err
	}
	eff, err := toFloat("target_efficiency_pct", row[3])
	if err != nil {
		return isolator.Input{}, err
	}
	natural := 0.0
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		if natural, err = toFloat("target_natural_freq_hz", row[4]); err != nil {
			return isolator.Input{}, err
		}
	}
	return isolator.Input{
		LoadKg:              load,
		NumIsolators:        n,
		ExciteFreqHz:        excite,
		TargetEfficiencyPct: eff,
		TargetNaturalFreqHz: natural,
	}, nil
}

func toFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Evaluate runs every parsed row through the calculator. Rows that failed to
// parse are reported with their line number alongside the computed ones.
func Evaluate(rows []Row, maxItems int) (batch.Result, error) {
	if len(rows) == 0 {
		return batch.Result{}, batch.ErrNoItems
	}
	if maxItems <= 0 {
		maxItems = batch.DefaultMaxItems
	}
	if len(rows) > maxItems {
		return batch.Result{}, fmt.Errorf("%w: %d rows exceeds the limit of %d", isolator.ErrInvalidInput, len(rows), maxItems)
	}

	var res batch.Result
	for i, row := range rows {
		label := fmt.Sprintf("row %d", row.Line)
		if row.Err != nil {
			res.Append(batch.Item{Index: i, Label: label, Error: row.Err.Error()})
			continue
		}
		item := batch.Evaluate(i, row.Input)
		item.Label = label
		res.Append(item)
	}
	return res, nil
}

var resultHeader = []interface{}{
	"Case", "Load (kg)", "Isolators", "Excitation (Hz)", "Target efficiency (%)",
	"Natural freq (Hz)", "Mode", "Max natural freq (Hz)", "Total stiffness (N/m)",
	"Stiffness each (N/m)", "Load each (kg)", "Deflection (mm)", "Deflection status",
	"Frequency ratio", "Resonance", "Transmissibility", "Isolation efficiency (%)",
	"Efficiency status", "Recommendations / error",
}

// WriteResults renders a batch result as a workbook, one row per case.
func WriteResults(w io.Writer, res batch.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(resultSheet, "A1", &resultHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(resultSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, item := range res.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := resultRow(item)
		if err := f.SetSheetRow(resultSheet, cell, &values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(resultSheet, "A", "S", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func resultRow(item batch.Item) []interface{} {
	label := item.Label
	if label == "" {
		label = fmt.Sprintf("case %d", item.Index+1)
	}
	if item.Result == nil {
		row := make([]interface{}, len(resultHeader))
		for i := range row {
			row[i] = ""
		}
		row[0] = label
		row[len(row)-1] = item.Error
		return row
	}
	r := item.Result
	mode := "auto"
	if r.IsManual {
		mode = "manual"
	}
	var transmissibility interface{} = r.Transmissibility
	if math.IsInf(r.Transmissibility, 0) {
		transmissibility = "unbounded"
	}
	return []interface{}{
		label,
		r.Input.LoadKg,
		r.Input.NumIsolators,
		r.Input.ExciteFreqHz,
		r.Input.TargetEfficiencyPct,
		r.SelectedNaturalFreqHz,
		mode,
		r.MaxNaturalFreqHz,
		r.TotalStiffnessNPerM,
		r.EachStiffnessNPerM,
		r.EachLoadKg,
		r.DeflectionMM,
		string(r.DeflectionStatus),
		r.FreqRatio,
		r.InResonance,
		transmissibility,
		r.IsolationEfficiencyPct,
		string(r.EfficiencyStatus),
		strings.Join(r.Recommendations, "\n"),
	}
}
