package cli

import (
	"fmt"
	"math"
	"strings"

	"Isolator/internal/calc/isolator"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#764BA2"))
	labelStyle   = lipgloss.NewStyle().Width(34)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#667EEA")).Padding(0, 1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8860B")).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B71C1C")).Bold(true)
	bulletIndent = lipgloss.NewStyle().PaddingLeft(2)
)

// RenderResult formats a calculation for the terminal.
func RenderResult(res isolator.Result) string {
	mode := "auto, 35%"
	if res.IsManual {
		mode = "user specified"
	}

	freq := section("1. Frequency selection",
		kv("Excitation frequency", fmt.Sprintf("%.2f Hz", res.Input.ExciteFreqHz)),
		kv("Max. natural frequency", fmt.Sprintf("%.2f Hz (keep below)", res.MaxNaturalFreqHz)),
		kv("Recommended band", fmt.Sprintf("%.2f - %.2f Hz", res.RecommendedMinNaturalFreqHz, res.RecommendedMaxNaturalFreqHz)),
		kv("Selected natural frequency", fmt.Sprintf("%.2f Hz (%s)", res.SelectedNaturalFreqHz, mode)),
	)

	spring := section("2. Spring / mount data",
		kv("Load per isolator", fmt.Sprintf("%.1f kg", res.EachLoadKg)),
		kv("Stiffness per isolator", fmt.Sprintf("%.0f N/m", res.EachStiffnessNPerM)),
		kv("Total stiffness", fmt.Sprintf("%.0f N/m", res.TotalStiffnessNPerM)),
		kv("Static deflection", fmt.Sprintf("%.2f mm %s", res.DeflectionMM, deflectionBadge(res.DeflectionStatus, res.DeflectionNote))),
	)

	perf := section("3. Isolation performance",
		kv("Frequency ratio", fmt.Sprintf("%.2f", res.FreqRatio)),
		kv("Transmissibility", formatTransmissibility(res)),
		kv("Isolation efficiency", efficiencyBadge(res)),
	)

	recs := make([]string, 0, len(res.Recommendations))
	for _, r := range res.Recommendations {
		recs = append(recs, bulletIndent.Render("- "+r))
	}
	guide := section("4. Selection guide", recs...)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, freq, "", spring, "", perf, "", guide)) + "\n"
}

func section(title string, lines ...string) string {
	return titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
}

func kv(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func deflectionBadge(status isolator.DeflectionStatus, note string) string {
	if status == isolator.DeflectionAdequate {
		return okStyle.Render("[" + note + "]")
	}
	return warnStyle.Render("[" + note + "]")
}

func formatTransmissibility(res isolator.Result) string {
	if math.IsInf(res.Transmissibility, 0) {
		return dangerStyle.Render("unbounded (ratio = 1)")
	}
	if res.InResonance {
		return dangerStyle.Render(fmt.Sprintf("%.2f (amplified)", res.Transmissibility))
	}
	return fmt.Sprintf("%.4f", res.Transmissibility)
}

func efficiencyBadge(res isolator.Result) string {
	target := res.Input.TargetEfficiencyPct
	switch res.EfficiencyStatus {
	case isolator.EfficiencyResonance:
		return dangerStyle.Render("RESONANCE RISK (ratio <= 1.414)")
	case isolator.EfficiencyAchieved:
		return okStyle.Render(fmt.Sprintf("%.2f %% - target met", res.IsolationEfficiencyPct))
	case isolator.EfficiencyMarginal:
		return warnStyle.Render(fmt.Sprintf("%.2f %% - marginal (target %.1f %%)", res.IsolationEfficiencyPct, target))
	default:
		return dangerStyle.Render(fmt.Sprintf("%.2f %% - below target (%.1f %%)", res.IsolationEfficiencyPct, target))
	}
}
