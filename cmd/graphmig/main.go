package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/steveyegge/graphmig/internal/config"
	"github.com/steveyegge/graphmig/internal/logging"
)

var (
	configPath string
	ledgerPath string
)

var rootCmd = &cobra.Command{
	Use:   "graphmig [folders...]",
	Short: "Migrate legacy graphing definitions to the new graphing API",
	Long: `Load legacy metric, translation, perfometer and graph definitions from the
given folders and print the objects connected to the requested metrics as
constructor calls of the new graphing API.

Examples:
  # Migrate everything connected to two metrics
  graphmig defs/ --metric-names mem_used,mem_total

  # Show which objects are connected without migrating them
  graphmig defs/ --metric-names if_in_octets --check

  # Include check metric translations and stop at the first failure
  graphmig defs/ extra/ --metric-names cpu_util --translations --debug`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := migrateOptions{Folders: args}
		opts.MetricNames, _ = cmd.Flags().GetStringSlice("metric-names")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Translations, _ = cmd.Flags().GetBool("translations")
		opts.Check, _ = cmd.Flags().GetBool("check")
		opts.Sanitize, _ = cmd.Flags().GetBool("sanitize")

		cfg, log, err := setup(opts.Debug)
		if err != nil {
			return err
		}
		return runMigration(cmd.Context(), opts, cfg, cmd.OutOrStdout(), log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $GRAPHMIG_CONFIG or ./graphmig.yaml)")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "Record runs in this SQLite database (overrides ledger.path)")

	rootCmd.Flags().BoolP("debug", "d", false, "Stop at the very first exception")
	rootCmd.Flags().StringSlice("metric-names", nil, "Filter by these metric names")
	rootCmd.Flags().Bool("translations", false, "Migrate translations")
	rootCmd.Flags().Bool("check", false, "Check connected graph objects")
	rootCmd.Flags().Bool("sanitize", false, "Sanitize connected graph objects, eg. improve colors")
	_ = rootCmd.MarkFlagRequired("metric-names")
}

// setup loads the configuration, applies the command line overrides and
// builds the logger. Logs go to stderr.
func setup(debug bool) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if ledgerPath != "" {
		cfg.Ledger.Path = ledgerPath
	}
	if debug {
		cfg.Log.Level = zerolog.LevelDebugValue
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Color:  cfg.Log.Color,
	}, os.Stderr)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	log.Debug().Stringer("config", cfg).Msg("Configuration loaded")
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
