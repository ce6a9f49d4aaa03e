package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"Isolator/internal/calc/isolator"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	ID      string
	Title   string
	Project string
	Author  string
	Date    time.Time
}

type row struct {
	label, value string
}

// Write renders a calculation as an A4 PDF.
func Write(w io.Writer, meta Meta, res isolator.Result) error {
	if meta.Title == "" {
		meta.Title = "Vibration Isolator Selection"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if meta.ID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Report: %s", meta.ID))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	in := res.Input
	mode := "auto, 35% of excitation"
	if res.IsManual {
		mode = "user specified"
	}

	section(pdf, "1. System data")
	table(pdf, []row{
		{"Supported load", fmt.Sprintf("%.1f kg", in.LoadKg)},
		{"Number of isolators", fmt.Sprintf("%d", in.NumIsolators)},
		{"Excitation frequency", fmt.Sprintf("%.2f Hz", in.ExciteFreqHz)},
		{"Target isolation efficiency", fmt.Sprintf("%.1f %%", in.TargetEfficiencyPct)},
	})

	section(pdf, "2. Frequency selection")
	table(pdf, []row{
		{"Max. natural frequency (f/sqrt 2)", fmt.Sprintf("%.2f Hz", res.MaxNaturalFreqHz)},
		{"Recommended band (0.30-0.40 f)", fmt.Sprintf("%.2f - %.2f Hz", res.RecommendedMinNaturalFreqHz, res.RecommendedMaxNaturalFreqHz)},
		{"Selected natural frequency", fmt.Sprintf("%.2f Hz (%s)", res.SelectedNaturalFreqHz, mode)},
	})

	section(pdf, "3. Spring / mount data")
	table(pdf, []row{
		{"Load per isolator", fmt.Sprintf("%.1f kg", res.EachLoadKg)},
		{"Total stiffness", fmt.Sprintf("%.0f N/m", res.TotalStiffnessNPerM)},
		{"Stiffness per isolator", fmt.Sprintf("%.0f N/m", res.EachStiffnessNPerM)},
		{"Static deflection", fmt.Sprintf("%.2f mm (%s)", res.DeflectionMM, res.DeflectionNote)},
	})

	section(pdf, "4. Isolation performance")
	table(pdf, []row{
		{"Frequency ratio", fmt.Sprintf("%.2f", res.FreqRatio)},
		{"Regime", regime(res)},
		{"Transmissibility", transmissibility(res.Transmissibility)},
		{"Isolation efficiency", fmt.Sprintf("%.2f %% (%s)", res.IsolationEfficiencyPct, strings.ReplaceAll(string(res.EfficiencyStatus), "_", " "))},
	})

	section(pdf, "5. Selection guide")
	pdf.SetFont("Helvetica", "", 10)
	for _, rec := range res.Recommendations {
		pdf.MultiCell(0, 6, tr("- "+rec), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, rows []row) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(240, 240, 245)
	for i, r := range rows {
		fill := i%2 == 0
		pdf.CellFormat(80, 7, r.label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(100, 7, r.value, "1", 1, "L", fill, 0, "")
	}
}

func regime(res isolator.Result) string {
	if res.InResonance {
		return "RESONANCE - vibration is amplified (ratio <= 1.414)"
	}
	return "isolation (ratio > 1.414)"
}

func transmissibility(t float64) string {
	if math.IsInf(t, 0) {
		return "unbounded (ratio = 1)"
	}
	return fmt.Sprintf("%.4f", t)
}
