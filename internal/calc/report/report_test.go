package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Isolator/internal/calc/isolator"
)

func TestWrite(t *testing.T) {
	cases := []isolator.Input{
		{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 34, TargetEfficiencyPct: 90},
		{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 10, TargetNaturalFreqHz: 10},
	}
	for _, in := range cases {
		res, err := isolator.Calculate(in)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		var buf bytes.Buffer
		meta := Meta{Project: "Sled rig", Author: "QA", Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
		if err := Write(&buf, meta, res); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Errorf("output does not start with %%PDF")
		}
	}
}

func TestHandler_Generate(t *testing.T) {
	body := `{"project":"Sled","author":"QA","calculation":{"load_kg":500,"num_isolators":4,"excite_freq_hz":34,"target_efficiency_pct":90}}`
	rr := httptest.NewRecorder()
	(&Handler{}).Generate(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Error("body is not a PDF")
	}
}

func TestHandler_GenerateInvalid(t *testing.T) {
	body := `{"calculation":{"load_kg":0,"num_isolators":4,"excite_freq_hz":34}}`
	rr := httptest.NewRecorder()
	(&Handler{}).Generate(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}
