package isolator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDegenerateFrequency = errors.New("natural frequency must be positive")
)

const (
	MaxTargetEfficiencyPct = 99.9

	autoNaturalRatio    = 0.35
	bandMinNaturalRatio = 0.30
	bandMaxNaturalRatio = 0.40

	// 250 ≈ g/(2π)² × 1000 with g = 9.81 m/s²; result in mm.
	deflectionConstant = 250.0

	minAdequateDeflectionMM = 3.0
	maxAdequateDeflectionMM = 50.0

	loadSafetyFactor   = 1.2
	springMountBelowHz = 10.0
	airSpringBelowHz   = 5.0
	marginalBandPct    = 5.0
)

// Choice is how the natural frequency gets resolved: Auto() or Manual(hz).
type Choice struct {
	manual bool
	hz     float64
}

func Auto() Choice { return Choice{} }

func Manual(hz float64) Choice { return Choice{manual: true, hz: hz} }

// ChoiceFromTarget maps the wire sentinel: 0 (or less) means auto.
func ChoiceFromTarget(targetHz float64) Choice {
	if targetHz > 0 {
		return Manual(targetHz)
	}
	return Auto()
}

func (c Choice) IsManual() bool { return c.manual }

func (c Choice) String() string {
	if c.manual {
		return fmt.Sprintf("manual(%g Hz)", c.hz)
	}
	return "auto"
}

type Input struct {
	LoadKg              float64 `json:"load_kg"`
	NumIsolators        int     `json:"num_isolators"`
	ExciteFreqHz        float64 `json:"excite_freq_hz"`
	TargetEfficiencyPct float64 `json:"target_efficiency_pct"`
	TargetNaturalFreqHz float64 `json:"target_natural_freq_hz"` // 0 = auto
}

func (in Input) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"load_kg", in.LoadKg},
		{"excite_freq_hz", in.ExciteFreqHz},
		{"target_efficiency_pct", in.TargetEfficiencyPct},
		{"target_natural_freq_hz", in.TargetNaturalFreqHz},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}
	if in.LoadKg <= 0 {
		return fmt.Errorf("%w: load_kg must be greater than 0", ErrInvalidInput)
	}
	if in.NumIsolators < 1 {
		return fmt.Errorf("%w: num_isolators must be at least 1", ErrInvalidInput)
	}
	if in.ExciteFreqHz <= 0 {
		return fmt.Errorf("%w: excite_freq_hz must be greater than 0", ErrInvalidInput)
	}
	if in.TargetEfficiencyPct < 0 || in.TargetEfficiencyPct > MaxTargetEfficiencyPct {
		return fmt.Errorf("%w: target_efficiency_pct must be within [0, %.1f]", ErrInvalidInput, MaxTargetEfficiencyPct)
	}
	if in.TargetNaturalFreqHz < 0 {
		return fmt.Errorf("%w: target_natural_freq_hz is negative (use 0 for auto)", ErrDegenerateFrequency)
	}
	return nil
}

func (in Input) Choice() Choice { return ChoiceFromTarget(in.TargetNaturalFreqHz) }

type DeflectionStatus string

const (
	DeflectionTooSmall DeflectionStatus = "too_small"
	DeflectionAdequate DeflectionStatus = "adequate"
	DeflectionTooLarge DeflectionStatus = "too_large"
)

type EfficiencyStatus string

const (
	EfficiencyResonance EfficiencyStatus = "resonance"
	EfficiencyAchieved  EfficiencyStatus = "achieved"
	EfficiencyMarginal  EfficiencyStatus = "marginal"
	EfficiencyNotMet    EfficiencyStatus = "not_met"
)

type Result struct {
	Input Input `json:"input"`

	MaxNaturalFreqHz            float64 `json:"max_natural_freq_hz"`
	RecommendedMinNaturalFreqHz float64 `json:"recommended_min_natural_freq_hz"`
	RecommendedMaxNaturalFreqHz float64 `json:"recommended_max_natural_freq_hz"`
	SelectedNaturalFreqHz       float64 `json:"selected_natural_freq_hz"`
	IsManual                    bool    `json:"is_manual"`

	TotalStiffnessNPerM float64 `json:"total_stiffness_n_per_m"`
	EachStiffnessNPerM  float64 `json:"each_stiffness_n_per_m"`
	EachLoadKg          float64 `json:"each_load_kg"`

	DeflectionMM     float64          `json:"deflection_mm"`
	DeflectionStatus DeflectionStatus `json:"deflection_status"`
	DeflectionNote   string           `json:"deflection_note"`

	FreqRatio              float64          `json:"freq_ratio"`
	InResonance            bool             `json:"in_resonance"`
	Transmissibility       float64          `json:"transmissibility"`
	IsolationEfficiencyPct float64          `json:"isolation_efficiency_pct"`
	EfficiencyStatus       EfficiencyStatus `json:"efficiency_status"`

	Recommendations []string `json:"recommendations"`
}

// MarshalJSON writes an unbounded transmissibility (ratio exactly 1) as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Transmissibility *float64 `json:"transmissibility"`
	}{plain: plain(r)}
	if !math.IsInf(r.Transmissibility, 0) && !math.IsNaN(r.Transmissibility) {
		t := r.Transmissibility
		out.Transmissibility = &t
	}
	return json.Marshal(out)
}

// Calculate runs the full selection chain for a single load case.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	fn, manual, err := SelectNaturalFrequency(in.ExciteFreqHz, in.Choice())
	if err != nil {
		return Result{}, err
	}

	total, each, eachLoad := ComputeStiffness(in.LoadKg, fn, in.NumIsolators)
	defl := ComputeDeflection(fn)
	deflStatus, deflNote := ClassifyDeflection(defl)
	ratio, resonance, T, eff := EvaluateIsolation(in.ExciteFreqHz, fn)

	res := Result{
		Input:                       in,
		MaxNaturalFreqHz:            MaxNaturalFrequency(in.ExciteFreqHz),
		RecommendedMinNaturalFreqHz: bandMinNaturalRatio * in.ExciteFreqHz,
		RecommendedMaxNaturalFreqHz: bandMaxNaturalRatio * in.ExciteFreqHz,
		SelectedNaturalFreqHz:       fn,
		IsManual:                    manual,
		TotalStiffnessNPerM:         total,
		EachStiffnessNPerM:          each,
		EachLoadKg:                  eachLoad,
		DeflectionMM:                defl,
		DeflectionStatus:            deflStatus,
		DeflectionNote:              deflNote,
		FreqRatio:                   ratio,
		InResonance:                 resonance,
		Transmissibility:            T,
		IsolationEfficiencyPct:      eff,
	}
	if err := res.checkFinite(); err != nil {
		return Result{}, err
	}
	res.EfficiencyStatus = ClassifyEfficiency(res.InResonance, eff, in.TargetEfficiencyPct)
	res.Recommendations = BuildRecommendation(res)
	return res, nil
}

// checkFinite rejects finite inputs whose derived values overflow.
// Transmissibility is exempt: ratio exactly 1 is a valid unbounded result.
func (r Result) checkFinite() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"max_natural_freq_hz", r.MaxNaturalFreqHz},
		{"recommended_max_natural_freq_hz", r.RecommendedMaxNaturalFreqHz},
		{"selected_natural_freq_hz", r.SelectedNaturalFreqHz},
		{"total_stiffness_n_per_m", r.TotalStiffnessNPerM},
		{"each_stiffness_n_per_m", r.EachStiffnessNPerM},
		{"deflection_mm", r.DeflectionMM},
		{"freq_ratio", r.FreqRatio},
		{"isolation_efficiency_pct", r.IsolationEfficiencyPct},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is out of range for these inputs", ErrInvalidInput, f.name)
		}
	}
	return nil
}

// MaxNaturalFrequency is the highest natural frequency that still isolates.
func MaxNaturalFrequency(exciteHz float64) float64 {
	return exciteHz / math.Sqrt2
}

func SelectNaturalFrequency(exciteHz float64, choice Choice) (hz float64, manual bool, err error) {
	if choice.manual {
		hz, manual = choice.hz, true
	} else {
		hz = autoNaturalRatio * exciteHz
	}
	if !(hz > 0) || math.IsInf(hz, 0) {
		return 0, manual, fmt.Errorf("%w: resolved %s to %g Hz", ErrDegenerateFrequency, choice, hz)
	}
	return hz, manual, nil
}

// ComputeStiffness assumes identical isolators sharing the load evenly.
func ComputeStiffness(loadKg, naturalHz float64, n int) (total, each, eachLoad float64) {
	omega := 2 * math.Pi * naturalHz
	total = omega * omega * loadKg
	each = total / float64(n)
	eachLoad = loadKg / float64(n)
	return total, each, eachLoad
}

func ComputeDeflection(naturalHz float64) float64 {
	return deflectionConstant / (naturalHz * naturalHz)
}

func ClassifyDeflection(mm float64) (DeflectionStatus, string) {
	switch {
	case mm < minAdequateDeflectionMM:
		return DeflectionTooSmall, "too small, consider elastomeric pad"
	case mm <= maxAdequateDeflectionMM:
		return DeflectionAdequate, "adequate"
	default:
		return DeflectionTooLarge, "too large, reduce stiffness"
	}
}

// EvaluateIsolation classifies the frequency ratio. Efficiency is reported
// as 0 in the resonance regime rather than as a negative percentage.
func EvaluateIsolation(exciteHz, naturalHz float64) (ratio float64, resonance bool, transmissibility, efficiencyPct float64) {
	ratio = exciteHz / naturalHz
	r2 := ratio * ratio
	if ratio <= math.Sqrt2 {
		return ratio, true, 1 / math.Abs(1-r2), 0
	}
	transmissibility = 1 / (r2 - 1)
	return ratio, false, transmissibility, (1 - transmissibility) * 100
}

func ClassifyEfficiency(resonance bool, efficiencyPct, targetPct float64) EfficiencyStatus {
	const eps = 1e-9
	switch {
	case resonance:
		return EfficiencyResonance
	case efficiencyPct+eps >= targetPct:
		return EfficiencyAchieved
	case efficiencyPct+eps >= targetPct-marginalBandPct:
		return EfficiencyMarginal
	default:
		return EfficiencyNotMet
	}
}

// BuildRecommendation evaluates the advisory rules in presentation order.
func BuildRecommendation(r Result) []string {
	var out []string
	if r.InResonance {
		out = append(out, fmt.Sprintf("[DANGER] The current setup is in the resonance region. Lower the natural frequency below %.1f Hz.", r.MaxNaturalFreqHz))
	} else {
		if r.SelectedNaturalFreqHz < springMountBelowHz {
			out = append(out, "[PRODUCT] A low natural frequency is required: spring mounts or spring hangers are recommended.")
		} else {
			out = append(out, "[PRODUCT] Elastomeric pads or rubber mounts may be used.")
		}
		out = append(out,
			fmt.Sprintf("[SPEC] Select isolators rated for at least %.1f kg each (20%% safety margin applied).", r.EachLoadKg*loadSafetyFactor),
			fmt.Sprintf("[SPEC] Isolators should deflect about %.1f mm under load.", r.DeflectionMM),
		)
	}
	if r.IsManual && r.SelectedNaturalFreqHz > r.MaxNaturalFreqHz {
		out = append(out, "[CAUTION] The entered target natural frequency is too high; isolation efficiency will be reduced.")
	}
	if r.Input.ExciteFreqHz < airSpringBelowHz {
		out = append(out, "[LOW FREQUENCY] Very low excitation frequency. Consider air-spring isolators or other special devices.")
	}
	return out
}
