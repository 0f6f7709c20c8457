package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report <conciliation-id>",
		Short: "Render a conciliation report as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if out == "" {
				out = "conciliation-" + args[0] + ".pdf"
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			if err := a.services.Report.WriteConciliationReport(ctx, args[0], f); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			a.logger.Info("Report written", "path", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default conciliation-<id>.pdf)")
	return cmd
}
