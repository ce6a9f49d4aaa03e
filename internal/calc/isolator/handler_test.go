package isolator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_Calc(t *testing.T) {
	body := `{"load_kg":500,"num_isolators":4,"excite_freq_hz":34,"target_efficiency_pct":90,"target_natural_freq_hz":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/tools/isolator/calc", strings.NewReader(body))
	rr := httptest.NewRecorder()

	(&Handler{}).Calc(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var res Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.EachLoadKg != 125 || res.InResonance {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestHandler_CalcErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"load_kg":`},
		{"unknown field", `{"load_kg":500,"num_isolators":4,"excite_freq_hz":34,"weight":1}`},
		{"invalid load", `{"load_kg":0,"num_isolators":4,"excite_freq_hz":34}`},
		{"negative manual", `{"load_kg":500,"num_isolators":4,"excite_freq_hz":34,"target_natural_freq_hz":-1}`},
		{"stiffness overflow", `{"load_kg":1e308,"num_isolators":4,"excite_freq_hz":34,"target_efficiency_pct":90}`},
		{"deflection overflow", `{"load_kg":500,"num_isolators":4,"excite_freq_hz":1e-320,"target_efficiency_pct":90}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/tools/isolator/calc", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			(&Handler{}).Calc(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Errorf("expected JSON error body, got %s", rr.Body.String())
			}
		})
	}
}
