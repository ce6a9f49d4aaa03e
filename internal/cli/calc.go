package cli

import (
	"fmt"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/motion"
	"Isolator/internal/calc/premium/autodesign"

	"github.com/spf13/cobra"
)

func newCalcCommand(opts *rootOptions) *cobra.Command {
	var in isolator.Input
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the isolator selection for one load case",
		Example: `  isolator calc --load 500 --isolators 4 --freq 34
  isolator calc --freq 10 --natural 8 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := isolator.Calculate(in)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderResult(res))
			return nil
		},
	}
	addInputFlags(cmd, &in)
	return cmd
}

func newFreqCommand(opts *rootOptions) *cobra.Command {
	var in motion.Input
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Excitation frequency from travel speed and feature pitch",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := motion.Calculate(in)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f Hz\n", res.FrequencyHz)
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.SpeedMS, "speed", 340, "Travel speed (m/s)")
	cmd.Flags().Float64Var(&in.PitchM, "pitch", 10, "Period / spacing of the excitation feature (m)")
	return cmd
}

func newDesignCommand(opts *rootOptions) *cobra.Command {
	var in autodesign.Input
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Size the natural frequency for the target efficiency",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := autodesign.Isolator(in)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Required frequency ratio: %.3f\n", res.RequiredFreqRatio)
			fmt.Fprintf(out, "Required natural frequency: %.2f Hz\n\n", res.RequiredNaturalFreqHz)
			fmt.Fprint(out, RenderResult(res.Calculation))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.LoadKg, "load", defaultLoadKg, "Total supported load (kg)")
	f.IntVar(&in.NumIsolators, "isolators", defaultIsolators, "Number of isolators")
	f.Float64Var(&in.ExciteFreqHz, "freq", defaultExciteHz, "Dominant excitation frequency (Hz)")
	f.Float64Var(&in.TargetEfficiencyPct, "efficiency", defaultEfficiencyPct, "Target isolation efficiency (%)")
	return cmd
}
