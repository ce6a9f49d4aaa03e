package motion

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDivideByZero = errors.New("pitch must be greater than 0")
	ErrInvalidInput = errors.New("invalid input")
)

type Input struct {
	SpeedMS float64 `json:"speed_m_s"`
	PitchM  float64 `json:"pitch_m"`
}

type Result struct {
	FrequencyHz float64 `json:"frequency_hz"`
	Notes       string  `json:"notes"`
}

// FrequencyFromMotion converts travel speed over a periodic feature
// (track joints, rail pitch) into an excitation frequency.
func FrequencyFromMotion(speedMS, pitchM float64) (float64, error) {
	if !(pitchM > 0) || math.IsInf(pitchM, 0) {
		return 0, fmt.Errorf("%w: got %g m", ErrDivideByZero, pitchM)
	}
	if math.IsNaN(speedMS) || math.IsInf(speedMS, 0) {
		return 0, fmt.Errorf("%w: speed must be a finite number", ErrInvalidInput)
	}
	f := speedMS / pitchM
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %g m/s over %g m overflows", ErrInvalidInput, speedMS, pitchM)
	}
	return f, nil
}

func Calculate(in Input) (Result, error) {
	f, err := FrequencyFromMotion(in.SpeedMS, in.PitchM)
	if err != nil {
		return Result{}, err
	}
	return Result{
		FrequencyHz: f,
		Notes:       "Excitation frequency from speed / pitch. Pass it as excite_freq_hz.",
	}, nil
}
