package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
	"github.com/SscSPs/accounting_backoffice/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, newLogger())
		},
	}
}
