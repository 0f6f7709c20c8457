package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAutoConciliateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "auto-conciliate <conciliation-id>",
		Short: "Run automatic matching for a conciliation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.services.Conciliation.AutoConciliate(ctx, args[0], flags.userID)
			if err != nil {
				return fmt.Errorf("auto-conciliating %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "matched: %d\npartial: %d\nunmatched: %d\nalready linked: %d\n",
				result.Matched, result.PartialMatches, result.Unmatched, result.AlreadyLinked)
			return nil
		},
	}
}

func newCompleteCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <conciliation-id>",
		Short: "Complete a conciliation and settle its transaction and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			conciliation, err := a.services.Conciliation.CompleteConciliation(ctx, args[0], flags.userID)
			if err != nil {
				return fmt.Errorf("completing %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "conciliation %s %s (%d documents)\n",
				conciliation.ConciliationID, conciliation.Status, conciliation.TotalDocuments)
			return nil
		},
	}
}
