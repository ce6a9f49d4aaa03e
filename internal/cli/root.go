// Package cli implements the isolator command-line tool.
package cli

import (
	"encoding/json"
	"io"

	"Isolator/internal/calc/isolator"

	"github.com/spf13/cobra"
)

// Defaults match a 500 kg sled on four mounts excited at 34 Hz.
const (
	defaultLoadKg        = 500.0
	defaultIsolators     = 4
	defaultExciteHz      = 34.0
	defaultEfficiencyPct = 90.0
)

type rootOptions struct {
	jsonOutput bool
}

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "isolator",
		Short: "Vibration isolator selection calculator",
		Long: `isolator selects springs and rubber mounts for a supported load.

It derives the natural frequency, stiffness, static deflection and isolation
efficiency for the given excitation frequency and prints a product
recommendation.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	cmd.AddCommand(
		newCalcCommand(opts),
		newFreqCommand(opts),
		newDesignCommand(opts),
		newReportCommand(),
		newWizardCommand(),
	)
	return cmd
}

func addInputFlags(cmd *cobra.Command, in *isolator.Input) {
	f := cmd.Flags()
	f.Float64Var(&in.LoadKg, "load", defaultLoadKg, "Total supported load (kg)")
	f.IntVar(&in.NumIsolators, "isolators", defaultIsolators, "Number of isolators")
	f.Float64Var(&in.ExciteFreqHz, "freq", defaultExciteHz, "Dominant excitation frequency (Hz)")
	f.Float64Var(&in.TargetEfficiencyPct, "efficiency", defaultEfficiencyPct, "Target isolation efficiency (%)")
	f.Float64Var(&in.TargetNaturalFreqHz, "natural", 0, "Target natural frequency (Hz), 0 = auto (35% of excitation)")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
