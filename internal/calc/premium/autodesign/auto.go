package autodesign

import (
	"fmt"
	"math"

	"Isolator/internal/calc/isolator"
)

type Input struct {
	LoadKg              float64 `json:"load_kg"`
	NumIsolators        int     `json:"num_isolators"`
	ExciteFreqHz        float64 `json:"excite_freq_hz"`
	TargetEfficiencyPct float64 `json:"target_efficiency_pct"`
}

type Result struct {
	RequiredFreqRatio     float64         `json:"required_freq_ratio"`
	RequiredNaturalFreqHz float64         `json:"required_natural_freq_hz"`
	Calculation           isolator.Result `json:"calculation"`
	Notes                 string          `json:"notes"`
}

// RequiredFreqRatio inverts η = (1 - 1/(r²-1)) × 100 for r.
func RequiredFreqRatio(targetEfficiencyPct float64) float64 {
	t := 1 - targetEfficiencyPct/100
	return math.Sqrt(1 + 1/t)
}

// Isolator picks the natural frequency that just reaches the target
// efficiency and runs the regular calculation with it as a manual choice.
func Isolator(in Input) (Result, error) {
	calcIn := isolator.Input{
		LoadKg:              in.LoadKg,
		NumIsolators:        in.NumIsolators,
		ExciteFreqHz:        in.ExciteFreqHz,
		TargetEfficiencyPct: in.TargetEfficiencyPct,
	}
	if err := calcIn.Validate(); err != nil {
		return Result{}, err
	}

	r := RequiredFreqRatio(in.TargetEfficiencyPct)
	calcIn.TargetNaturalFreqHz = naturalFrequencyFor(in.ExciteFreqHz, r)

	res, err := isolator.Calculate(calcIn)
	if err != nil {
		return Result{}, err
	}

	notes := fmt.Sprintf("Natural frequency sized for %.1f%% isolation efficiency.", in.TargetEfficiencyPct)
	if res.InResonance {
		notes = "A 0% target sits on the resonance boundary; choose a positive efficiency target."
	}
	return Result{
		RequiredFreqRatio:     r,
		RequiredNaturalFreqHz: calcIn.TargetNaturalFreqHz,
		Calculation:           res,
		Notes:                 notes,
	}, nil
}

// naturalFrequencyFor divides exciteHz by ratio. A ratio at or below √2 is
// the resonance boundary, and the recomputed exciteHz/fn must stay on it.
func naturalFrequencyFor(exciteHz, ratio float64) float64 {
	fn := exciteHz / ratio
	if ratio <= math.Sqrt2 {
		for exciteHz/fn > math.Sqrt2 {
			fn = math.Nextafter(fn, math.Inf(1))
		}
	}
	return fn
}
