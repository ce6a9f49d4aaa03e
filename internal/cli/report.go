package cli

import (
	"fmt"
	"io"
	"os"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var (
		in   isolator.Input
		meta report.Meta
		out  string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the selection as a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := isolator.Calculate(in)
			if err != nil {
				return err
			}
			meta.ID = uuid.NewString()

			err = writeFile(out, func(w io.Writer) error {
				return report.Write(w, meta, res)
			})
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
			return nil
		},
	}
	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&out, "output", "o", "isolator-report.pdf", "Output PDF path")
	cmd.Flags().StringVar(&meta.Project, "project", "", "Project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "Author")
	cmd.Flags().StringVar(&meta.Title, "title", "", "Report title")
	return cmd
}

// writeFile creates path and fills it with write. A failed write removes
// the file so no truncated output is left behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
