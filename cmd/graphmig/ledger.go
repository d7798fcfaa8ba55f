package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/graphmig/internal/storage"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect or downgrade the run ledger schema",
}

var ledgerVersionCmd = &cobra.Command{
	Use:           "version",
	Short:         "Print the schema version of the run ledger",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, ledger storage.Ledger) error {
			return printSchemaVersion(ctx, cmd.OutOrStdout(), ledger)
		})
	},
}

var ledgerRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Revert the latest schema migration of the run ledger",
	Long: `Revert the latest schema migration, e.g. before handing the ledger to an
older graphmig. The next run of a current graphmig migrates it forward again.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, ledger storage.Ledger) error {
			return rollbackLedger(ctx, cmd.OutOrStdout(), ledger)
		})
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerVersionCmd, ledgerRollbackCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func withLedger(cmd *cobra.Command, fn func(ctx context.Context, ledger storage.Ledger) error) error {
	cfg, _, err := setup(false)
	if err != nil {
		return err
	}
	ledger, err := openLedger(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()
	return fn(cmd.Context(), ledger)
}

func printSchemaVersion(ctx context.Context, out io.Writer, ledger storage.Ledger) error {
	version, err := ledger.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Schema version: %d\n", version)
	return err
}

func rollbackLedger(ctx context.Context, out io.Writer, ledger storage.Ledger) error {
	if err := ledger.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	green := color.New(color.FgGreen).SprintFunc()
	if _, err := fmt.Fprintf(out, "%s Rolled back one migration\n", green("✓")); err != nil {
		return err
	}
	return printSchemaVersion(ctx, out, ledger)
}
