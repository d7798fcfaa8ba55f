package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/steveyegge/graphmig/internal/config"
	"github.com/steveyegge/graphmig/internal/storage"
	"github.com/steveyegge/graphmig/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded migration runs",
	Long: `List the most recent runs recorded in the run ledger, or the unparseable
objects of a single run.

Examples:
  # Last ten runs
  graphmig history --ledger runs.db

  # Unparseables of one run
  graphmig history --ledger runs.db 2b7c1d3e-...`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, _, err := setup(false)
		if err != nil {
			return err
		}
		ledger, err := openLedger(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = ledger.Close() }()

		if len(args) == 1 {
			unparseables, err := ledger.Unparseables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printUnparseables(cmd.OutOrStdout(), unparseables)
		}

		runs, err := ledger.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), runs)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}

// openLedger opens the configured ledger, failing if none is configured.
func openLedger(ctx context.Context, cfg config.Config) (storage.Ledger, error) {
	ledger, err := storage.NewLedger(ctx, storage.Config{Path: cfg.Ledger.Path})
	if errors.Is(err, storage.ErrDisabled) {
		return nil, errors.New("no ledger configured, use --ledger or ledger.path")
	}
	return ledger, err
}

func printRuns(out io.Writer, runs []*types.Run) error {
	if len(runs) == 0 {
		gray := color.New(color.FgHiBlack).SprintFunc()
		_, err := fmt.Fprintf(out, "%s\n", gray("No runs recorded"))
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Run", "Started", "Took", "Metrics", "Objects", "Unparseable"})
	table.SetAutoWrapText(false)
	for _, r := range runs {
		unparseable := strconv.Itoa(r.Counts.Unparseables)
		if r.Counts.Unparseables > 0 {
			unparseable = color.New(color.FgRed).Sprint(unparseable)
		}
		table.Append([]string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.String(),
			strings.Join(r.MetricNames, ","),
			strconv.Itoa(r.Counts.Objects()),
			unparseable,
		})
	}
	table.Render()
	return nil
}

func printUnparseables(out io.Writer, unparseables []types.Unparseable) error {
	if len(unparseables) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		_, err := fmt.Fprintf(out, "%s Every object was migrated\n", green("✓"))
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Namespace", "Name", "Kind", "Message"})
	table.SetAutoWrapText(false)
	for _, u := range unparseables {
		table.Append([]string{u.Namespace, u.Name, u.Kind, u.Message})
	}
	table.Render()
	return nil
}
