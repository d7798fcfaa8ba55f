package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/steveyegge/graphmig/internal/connectivity"
)

// printConnected prints a summary of the referenced metrics, then one table
// per connected component.
func printConnected(out io.Writer, referenced, filter []string, connected []connectivity.ConnectedObjects) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if _, err := fmt.Fprintf(out, "%d metric(s) referenced by perfometers and graphs\n", len(referenced)); err != nil {
		return err
	}
	if unreferenced, _ := lo.Difference(lo.Uniq(filter), referenced); len(unreferenced) > 0 {
		if _, err := fmt.Fprintf(out, "%s %s\n", gray("Not referenced by any perfometer or graph:"), strings.Join(unreferenced, ", ")); err != nil {
			return err
		}
	}

	if len(connected) == 0 {
		_, err := fmt.Fprintf(out, "%s\n", gray("No connected objects"))
		return err
	}

	for i, c := range connected {
		if _, err := fmt.Fprintf(out, "\n%s %s\n", cyan(fmt.Sprintf("Component %d:", i+1)), strings.Join(c.Names, ", ")); err != nil {
			return err
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Kind", "Name", "Details"})
		table.SetAutoWrapText(false)

		for name, info := range c.Metrics.All() {
			table.Append([]string{"metric", name, fmt.Sprintf("%s [%s] %s", info.Title, info.Unit, info.Color)})
		}
		for _, name := range c.Unresolved {
			table.Append([]string{"metric", name, red("no metric info")})
		}
		for _, p := range c.Perfometers {
			table.Append([]string{"perfometer", strconv.Itoa(p.Index), parseable(p.Spec.Type, p.Parseable)})
		}
		for _, g := range c.Graphs {
			title := ""
			if g.Template.Title != nil {
				title = *g.Template.Title
			}
			table.Append([]string{"graph", g.ID, parseable(title, g.Parseable)})
		}
		table.Render()
	}
	return nil
}

func parseable(details string, ok bool) string {
	if ok {
		return details
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	return strings.TrimSpace(details + " " + yellow("(not cleanly parseable)"))
}
