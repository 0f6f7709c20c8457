package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
	"github.com/SscSPs/accounting_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/accounting_backoffice/pkg/database"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	userID string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Operate the accounting back-office from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.userID, "user", "cli", "user ID recorded in audit fields")

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newAutoConciliateCommand(flags))
	rootCmd.AddCommand(newCompleteCommand(flags))
	rootCmd.AddCommand(newConcarExportCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newTokenCommand(flags))

	return rootCmd
}

// app is the wiring a command needs to reach the services.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	close    func()
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// bootstrap loads configuration, opens the pool and builds the service container.
func bootstrap(ctx context.Context) (*app, context.Context, error) {
	logger := newLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, ctx, fmt.Errorf("loading config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, ctx, fmt.Errorf("connecting to database: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		services: services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)),
		close:    func() { database.ClosePgxPool(pool) },
	}, middleware.WithLogger(ctx, logger), nil
}
