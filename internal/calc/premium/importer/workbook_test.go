package importer

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/premium/batch"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"load_kg", "num_isolators", "excite_freq_hz", "target_efficiency_pct", "target_natural_freq_hz"},
		{500, 4, 34, 90, ""},
		{200, 2, 10, 80, 8},
		{"", "", "", "", ""},
		{"heavy", 4, 34, 90},
		{100, 1, 20},
	}
}

func TestReadInputs(t *testing.T) {
	rows, err := ReadInputs(buildWorkbook(t, sampleRows()))
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (blank row skipped)", len(rows))
	}
	if rows[0].Err != nil || rows[0].Input.LoadKg != 500 || rows[0].Input.TargetNaturalFreqHz != 0 {
		t.Errorf("row 2 parsed as %+v", rows[0])
	}
	if rows[1].Input.TargetNaturalFreqHz != 8 {
		t.Errorf("row 3 manual frequency = %v, want 8", rows[1].Input.TargetNaturalFreqHz)
	}
	if rows[2].Line != 5 || rows[2].Err == nil || !strings.Contains(rows[2].Err.Error(), "load_kg") {
		t.Errorf("row 5 should fail on load_kg: %+v", rows[2])
	}
	if rows[3].Err == nil {
		t.Errorf("short row should fail: %+v", rows[3])
	}
}

func TestReadInputs_HeaderOnly(t *testing.T) {
	_, err := ReadInputs(buildWorkbook(t, sampleRows()[:1]))
	if err == nil {
		t.Error("expected error for sheet without data rows")
	}
}

func TestEvaluate(t *testing.T) {
	rows, err := ReadInputs(buildWorkbook(t, sampleRows()))
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}
	res, err := Evaluate(rows, 0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Count != 4 || res.Failed != 2 {
		t.Errorf("count/failed = %d/%d, want 4/2", res.Count, res.Failed)
	}
	if res.Items[2].Label != "row 5" {
		t.Errorf("label = %q, want row 5", res.Items[2].Label)
	}
}

func TestWriteResults(t *testing.T) {
	rows, err := ReadInputs(buildWorkbook(t, sampleRows()))
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}
	res, err := Evaluate(rows, 0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, res); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(resultSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d rows, want header + 4", len(got))
	}
	if got[0][0] != "Case" || got[1][0] != "row 2" {
		t.Errorf("unexpected first cells %q / %q", got[0][0], got[1][0])
	}
	mode, err := f.GetCellValue(resultSheet, "G3")
	if err != nil || mode != "manual" {
		t.Errorf("G3 = %q (%v), want manual", mode, err)
	}
	errText, err := f.GetCellValue(resultSheet, "S4")
	if err != nil || !strings.Contains(errText, "load_kg") {
		t.Errorf("S4 = %q (%v), want parse error", errText, err)
	}
}

func TestHandler_Isolator(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cases.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(part, buildWorkbook(t, sampleRows())); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	(&Handler{}).Isolator(rr, req)

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"failed":2`) {
		t.Errorf("status %d body %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_IsolatorMissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	rr := httptest.NewRecorder()
	(&Handler{}).Isolator(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandler_Export(t *testing.T) {
	body := `{"items":[{"load_kg":500,"num_isolators":4,"excite_freq_hz":34,"target_efficiency_pct":90}]}`
	rr := httptest.NewRecorder()
	(&Handler{}).Export(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
	f, err := excelize.OpenReader(rr.Body)
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(resultSheet, "A2"); v != "case 1" {
		t.Errorf("A2 = %q, want case 1", v)
	}
}

func TestResultRow_Transmissibility(t *testing.T) {
	unit, err := isolator.Calculate(isolator.Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 10, TargetEfficiencyPct: 90, TargetNaturalFreqHz: 10})
	if err != nil {
		t.Fatal(err)
	}
	if got := resultRow(batch.Item{Result: &unit})[15]; got != "unbounded" {
		t.Errorf("ratio 1 transmissibility cell = %v, want unbounded", got)
	}

	normal, err := isolator.Calculate(isolator.Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 34, TargetEfficiencyPct: 90})
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := resultRow(batch.Item{Result: &normal})[15].(float64); !ok || got != normal.Transmissibility {
		t.Errorf("transmissibility cell = %v, want %v", got, normal.Transmissibility)
	}
}
