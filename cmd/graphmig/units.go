package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/steveyegge/graphmig/internal/render"
	"github.com/steveyegge/graphmig/internal/units"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the legacy units and what they migrate to",
	Long: `Show the table mapping legacy unit names onto units of the new graphing
API. Legacy units missing from this table migrate to UNIT_NUMBER.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Legacy", "Variable", "Unit"})
		table.SetAutoWrapText(false)
		for _, u := range units.Known() {
			legacyName := u.Legacy
			if legacyName == "" {
				legacyName = `""`
			}
			table.Append([]string{legacyName, u.Name, render.Unit(u.Unit)})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
}
