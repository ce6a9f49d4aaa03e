package motion

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFrequencyFromMotion(t *testing.T) {
	f, err := FrequencyFromMotion(340, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 34.0 {
		t.Errorf("frequency = %v, want 34", f)
	}
}

func TestFrequencyFromMotion_BadPitch(t *testing.T) {
	for _, pitch := range []float64{0, -1} {
		if _, err := FrequencyFromMotion(340, pitch); !errors.Is(err, ErrDivideByZero) {
			t.Errorf("pitch %v: err = %v, want ErrDivideByZero", pitch, err)
		}
	}
}

func TestHandler_Calc(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tools/motion/frequency", strings.NewReader(`{"speed_m_s":340,"pitch_m":10}`))
	rr := httptest.NewRecorder()
	(&Handler{}).Calc(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"frequency_hz":34`) {
		t.Errorf("status %d body %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/tools/motion/frequency", strings.NewReader(`{"speed_m_s":340,"pitch_m":0}`))
	rr = httptest.NewRecorder()
	(&Handler{}).Calc(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("zero pitch status = %d, want 400", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/tools/motion/frequency", strings.NewReader(`{"speed_m_s":1e308,"pitch_m":1e-10}`))
	rr = httptest.NewRecorder()
	(&Handler{}).Calc(rr, req)
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), `"error"`) {
		t.Errorf("overflow status = %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestFrequencyFromMotion_Overflow(t *testing.T) {
	if _, err := FrequencyFromMotion(1e308, 1e-10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
