package autodesign

import (
	"errors"
	"math"
	"strings"
	"testing"

	"Isolator/internal/calc/isolator"
)

func TestIsolator_ReachesTarget(t *testing.T) {
	for _, target := range []float64{50, 80, 90, 95, 99.9} {
		res, err := Isolator(Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 34, TargetEfficiencyPct: target})
		if err != nil {
			t.Fatalf("target %v: %v", target, err)
		}
		calc := res.Calculation
		if !calc.IsManual {
			t.Errorf("target %v: designed frequency should be a manual choice", target)
		}
		if math.Abs(calc.IsolationEfficiencyPct-target) > 1e-6 {
			t.Errorf("target %v: efficiency = %v", target, calc.IsolationEfficiencyPct)
		}
		if calc.EfficiencyStatus != isolator.EfficiencyAchieved {
			t.Errorf("target %v: status = %s, want achieved", target, calc.EfficiencyStatus)
		}
	}
}

func TestIsolator_NinetyPercent(t *testing.T) {
	res, err := Isolator(Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 34, TargetEfficiencyPct: 90})
	if err != nil {
		t.Fatalf("Isolator: %v", err)
	}
	if math.Abs(res.RequiredFreqRatio-math.Sqrt(11)) > 1e-12 {
		t.Errorf("ratio = %v, want √11", res.RequiredFreqRatio)
	}
	if math.Abs(res.RequiredNaturalFreqHz-34/math.Sqrt(11)) > 1e-9 {
		t.Errorf("natural frequency = %v, want %v", res.RequiredNaturalFreqHz, 34/math.Sqrt(11))
	}
}

func TestIsolator_InvalidInput(t *testing.T) {
	_, err := Isolator(Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: 34, TargetEfficiencyPct: 100})
	if !errors.Is(err, isolator.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestIsolator_ZeroTargetIsResonanceBoundary(t *testing.T) {
	for _, f := range []float64{1, 3, 7, 10, 13, 34, 50, 77.7, 100, 123.456} {
		res, err := Isolator(Input{LoadKg: 500, NumIsolators: 4, ExciteFreqHz: f, TargetEfficiencyPct: 0})
		if err != nil {
			t.Fatalf("f=%v: %v", f, err)
		}
		calc := res.Calculation
		if calc.FreqRatio > math.Sqrt2 {
			t.Errorf("f=%v: ratio = %v, above √2", f, calc.FreqRatio)
		}
		if !calc.InResonance || calc.EfficiencyStatus != isolator.EfficiencyResonance {
			t.Errorf("f=%v: resonance=%v status=%s", f, calc.InResonance, calc.EfficiencyStatus)
		}
		if calc.IsolationEfficiencyPct != 0 {
			t.Errorf("f=%v: efficiency = %v, want 0", f, calc.IsolationEfficiencyPct)
		}
		if !strings.Contains(res.Notes, "resonance boundary") {
			t.Errorf("f=%v: notes = %q", f, res.Notes)
		}
	}
}
