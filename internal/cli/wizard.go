package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/motion"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// session is the wizard's presentation state. helperFreqHz is the last
// value from the speed/pitch helper and pre-fills the next excitation field.
type session struct {
	helperFreqHz float64
}

func newSession() *session {
	return &session{helperFreqHz: defaultExciteHz}
}

func (s *session) applyMotion(speed, pitch float64) (float64, error) {
	f, err := motion.FrequencyFromMotion(speed, pitch)
	if err != nil {
		return 0, err
	}
	s.helperFreqHz = f
	return f, nil
}

// formValues holds the raw wizard text fields.
type formValues struct {
	load, isolators, excite, efficiency, natural string
}

func (s *session) defaults() formValues {
	return formValues{
		load:       formatNumber(defaultLoadKg),
		isolators:  strconv.Itoa(defaultIsolators),
		excite:     formatNumber(s.helperFreqHz),
		efficiency: formatNumber(defaultEfficiencyPct),
		natural:    "0",
	}
}

func (v formValues) input() (isolator.Input, error) {
	var in isolator.Input
	var err error
	if in.LoadKg, err = parseNumber(v.load); err != nil {
		return in, fmt.Errorf("load: %w", err)
	}
	if in.NumIsolators, err = strconv.Atoi(strings.TrimSpace(v.isolators)); err != nil {
		return in, fmt.Errorf("isolators: %q is not a whole number", v.isolators)
	}
	if in.ExciteFreqHz, err = parseNumber(v.excite); err != nil {
		return in, fmt.Errorf("excitation frequency: %w", err)
	}
	if in.TargetEfficiencyPct, err = parseNumber(v.efficiency); err != nil {
		return in, fmt.Errorf("target efficiency: %w", err)
	}
	if strings.TrimSpace(v.natural) != "" {
		if in.TargetNaturalFreqHz, err = parseNumber(v.natural); err != nil {
			return in, fmt.Errorf("natural frequency: %w", err)
		}
	}
	return in, in.Validate()
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func positive(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func nonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func efficiencyRange(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 || v > isolator.MaxTargetEfficiencyPct {
		return fmt.Errorf("must be within 0 - %.1f", isolator.MaxTargetEfficiencyPct)
	}
	return nil
}

func wholePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("must be a whole number of at least 1")
	}
	return nil
}

func newWizardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactive step-by-step selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, newSession())
		},
	}
}

func runWizard(cmd *cobra.Command, s *session) error {
	out := cmd.OutOrStdout()
	for {
		var useHelper bool
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Compute the excitation frequency from speed and pitch?").
				Value(&useHelper),
		)).Run()
		if err != nil {
			return wizardErr(err)
		}

		if useHelper {
			speed, pitch := "340", "10"
			err := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Travel speed (m/s)").Value(&speed).Validate(nonNegative),
				huh.NewInput().Title("Period / spacing (m)").Value(&pitch).Validate(positive),
			)).Run()
			if err != nil {
				return wizardErr(err)
			}
			sp, _ := parseNumber(speed)
			pt, _ := parseNumber(pitch)
			f, err := s.applyMotion(sp, pt)
			if err != nil {
				fmt.Fprintln(out, dangerStyle.Render(err.Error()))
			} else {
				fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("Applied: %.1f Hz", f)))
			}
		}

		v := s.defaults()
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Supported load (kg)").Value(&v.load).Validate(positive),
				huh.NewInput().Title("Number of isolators").Value(&v.isolators).Validate(wholePositive),
			),
			huh.NewGroup(
				huh.NewInput().Title("Dominant excitation frequency (Hz)").Value(&v.excite).Validate(positive),
				huh.NewInput().Title("Target isolation efficiency (%)").Value(&v.efficiency).Validate(efficiencyRange),
				huh.NewInput().
					Title("Target natural frequency (Hz)").
					Description("0 = auto, 35% of the excitation frequency").
					Value(&v.natural).
					Validate(nonNegative),
			),
		).Run()
		if err != nil {
			return wizardErr(err)
		}

		in, err := v.input()
		if err != nil {
			fmt.Fprintln(out, dangerStyle.Render(err.Error()))
		} else {
			// Keep whatever the user typed for the next round.
			s.helperFreqHz = in.ExciteFreqHz
			res, err := isolator.Calculate(in)
			if err != nil {
				fmt.Fprintln(out, dangerStyle.Render(err.Error()))
			} else {
				fmt.Fprint(out, RenderResult(res))
			}
		}

		again := false
		err = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Run another calculation?").Value(&again),
		)).Run()
		if err != nil {
			return wizardErr(err)
		}
		if !again {
			return nil
		}
	}
}

func wizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
