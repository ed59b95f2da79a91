// Package commands implements the estate_ledger admin CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/aqarfin/estate_ledger/internal/core/services"
	"github.com/aqarfin/estate_ledger/internal/platform/config"
	"github.com/aqarfin/estate_ledger/internal/platform/database"
	"github.com/aqarfin/estate_ledger/internal/platform/logging"
	"github.com/aqarfin/estate_ledger/internal/repositories/database/pgsql"
)

// actorFlag identifies who performs the mutation in audit fields.
var actorFlag string

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "estate_ledger",
		Short: "Double-entry ledger and settlement engine for property management",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "cli", "user id recorded in audit fields")

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newEntriesCommand())
	rootCmd.AddCommand(newLedgerCommand())
	rootCmd.AddCommand(newTrialBalanceCommand())
	rootCmd.AddCommand(newSettleCommand())
	rootCmd.AddCommand(newPettyCashCommand())

	return rootCmd
}

// runtime wires config, logging, the connection pool and the service
// container for one command invocation.
type runtime struct {
	cfg    *config.Config
	pool   *pgxpool.Pool
	svc    *services.Container
	logger *slog.Logger
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelWarn
	if !cfg.IsProduction {
		level = slog.LevelInfo
	}
	logger := logging.NewLogger(level)
	slog.SetDefault(logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(pool)
	return &runtime{
		cfg:    cfg,
		pool:   pool,
		svc:    services.NewContainer(&repos),
		logger: logger,
	}, nil
}

func (rt *runtime) close() {
	database.ClosePgxPool(rt.pool)
}

// withRuntime bootstraps the runtime, attaches the logger to the context and
// tears everything down after fn returns.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx = logging.WithLogger(ctx, rt.logger.With(slog.String("command", cmd.CommandPath()), slog.String("actor", actorFlag)))
	return fn(ctx, rt)
}

// printJSON renders a command result to stdout.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
