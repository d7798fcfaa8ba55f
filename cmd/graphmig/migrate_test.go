package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphmig/internal/config"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/migrate"
	"github.com/steveyegge/graphmig/internal/storage"
	"github.com/steveyegge/graphmig/internal/types"
)

const interfaceDefs = `
metric_info:
  if_in:
    title: Input
    unit: bytes/s
    color: "#00e060"
  if_out:
    title: Output
    unit: bytes/s
    color: "#0080e0"
  cpu_util:
    title: CPU utilization
    unit: "%"
    color: "11/a"
perfometer_info:
  - type: dual
    perfometers:
      - type: logarithmic
        metric: if_in
        half_value: 500000
      - type: logarithmic
        metric: if_out
        half_value: 500000
  - type: linear
    segments: [cpu_util]
    total: 100
graph_info:
  traffic:
    title: Traffic
    metrics:
      - [if_in, area]
      - [if_out, -area]
  cpu:
    title: CPU
    metrics:
      - [cpu_util, area]
`

const brokenDefs = `
graph_info:
  if_errors:
    metrics:
      - [if_in, line]
`

func writeDefs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRunMigration(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs})

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"if_in"},
		Sanitize:    true,
	}, config.Default(), &out, zerolog.Nop())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "UNIT_BYTES_PER_SECOND = metrics.Unit(metrics.IECNotation('B/s'))", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "metric_if_in = metrics.Metric(name='if_in'"))
	assert.Contains(t, lines[1], "color=metrics.Color.GREEN", "upper half")
	assert.True(t, strings.HasPrefix(lines[2], "metric_if_out = "))
	assert.Contains(t, lines[2], "color=metrics.Color.BLUE", "lower half")
	assert.Equal(t, "perfometer_if_in_if_out = perfometers.Bidirectional(name='if_in_if_out', "+
		"left=perfometers.Perfometer(name='if_in', focus_range=perfometers.FocusRange(perfometers.Closed(0), perfometers.Open(900000),), segments=['if_in'],), "+
		"right=perfometers.Perfometer(name='if_out', focus_range=perfometers.FocusRange(perfometers.Closed(0), perfometers.Open(900000),), segments=['if_out'],),)",
		lines[3])
	assert.Equal(t, "graph_traffic_traffic = graphs.Bidirectional(name='traffic_traffic', title=Title(\"Traffic\"), "+
		"lower=graphs.Graph(name='traffic', title=Title(\"Traffic\"), compound_lines=['if_out'],), "+
		"upper=graphs.Graph(name='traffic', title=Title(\"Traffic\"), compound_lines=['if_in'],),)",
		lines[4])
	assert.NotContains(t, out.String(), "cpu_util")
}

func TestRunMigration_NothingConnected(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs})

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"unknown_metric"},
	}, config.Default(), &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRunMigration_Check(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs})

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"if_out", "cpu_util"},
		Check:       true,
	}, config.Default(), &out, zerolog.Nop())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Component 1:")
	assert.Contains(t, text, "Component 2:")
	assert.Contains(t, text, "if_in, if_out")
	assert.Contains(t, text, "traffic")
	assert.Contains(t, text, "3 metric(s) referenced by perfometers and graphs")
	assert.NotContains(t, text, "Not referenced")
	assert.NotContains(t, text, "metrics.")
}

func TestRunMigration_CheckListsUnreferencedMetrics(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs})

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"if_in", "disk_io", "disk_io"},
		Check:       true,
	}, config.Default(), &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Not referenced by any perfometer or graph: disk_io\n")
}

func TestRunMigration_RecordsUnparseables(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs, "errors.yaml": brokenDefs})
	cfg := config.Default()
	cfg.Ledger.Path = filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"if_in"},
	}, cfg, &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "graph_traffic_traffic = ")
	assert.NotContains(t, out.String(), "if_errors")

	ctx := context.Background()
	ledger, err := storage.NewLedger(ctx, storage.Config{Path: cfg.Ledger.Path})
	require.NoError(t, err)
	defer func() { _ = ledger.Close() }()

	runs, err := ledger.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"if_in"}, runs[0].MetricNames)
	assert.Equal(t, 1, runs[0].Counts.Units)
	assert.Equal(t, 2, runs[0].Counts.Metrics)
	assert.Equal(t, 1, runs[0].Counts.Perfometers)
	assert.Equal(t, 1, runs[0].Counts.Graphs)
	assert.Equal(t, 1, runs[0].Counts.Unparseables)

	unparseables, err := ledger.Unparseables(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, unparseables, 1)
	assert.Equal(t, "graphs", unparseables[0].Namespace)
	assert.Equal(t, "if_errors", unparseables[0].Name)
	assert.Equal(t, "schema_mismatch", unparseables[0].Kind)
}

func TestRunMigration_DebugStopsAtFirstFailure(t *testing.T) {
	dir := writeDefs(t, map[string]string{"if.yaml": interfaceDefs, "errors.yaml": brokenDefs})

	var out bytes.Buffer
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{dir},
		MetricNames: []string{"if_in"},
		Debug:       true,
	}, config.Default(), &out, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, failure.IsSchemaMismatch(err))
	assert.Empty(t, out.String())
}

func TestRunMigration_MissingFolder(t *testing.T) {
	err := runMigration(context.Background(), migrateOptions{
		Folders:     []string{filepath.Join(t.TempDir(), "missing")},
		MetricNames: []string{"if_in"},
	}, config.Default(), &bytes.Buffer{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestUnitsCommand(t *testing.T) {
	var out bytes.Buffer
	unitsCmd.SetOut(&out)
	unitsCmd.Run(unitsCmd, nil)

	assert.Contains(t, out.String(), "UNIT_BYTES_PER_SECOND")
	assert.Contains(t, out.String(), "metrics.Unit(metrics.IECNotation('B/s'))")
}

func TestPrintUnparseables_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUnparseables(&out, nil))
	assert.Contains(t, out.String(), "Every object was migrated")
}

func TestPrintRuns(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRuns(&out, nil))
	assert.Contains(t, out.String(), "No runs recorded")

	out.Reset()
	require.NoError(t, printRuns(&out, []*types.Run{{
		ID:          "run-1",
		StartedAt:   time.Now(),
		Duration:    1200 * time.Millisecond,
		MetricNames: []string{"if_in", "if_out"},
		Counts:      types.Counts{Metrics: 2, Graphs: 1},
	}}))
	assert.Contains(t, out.String(), "run-1")
	assert.Contains(t, out.String(), "1.2s")
	assert.Contains(t, out.String(), "if_in,if_out")
}

func TestSummarizeUnparseables(t *testing.T) {
	got := summarizeUnparseables([]migrate.Unparseable{
		{Namespace: "graphs", Name: "a", Err: failure.Parse("expression", "a,b,MAX", failure.ErrUnsupportedToken)},
		{Namespace: "graphs", Name: "b", Err: failure.Unresolved("connect", "mem")},
		{Namespace: "graphs", Name: "c", Err: fmt.Errorf("graph c: %w", failure.Schemaf("graph", "title", "missing"))},
		{Namespace: "perfometers", Name: "0", Err: failure.Schemaf("perfometer", "type", "unknown")},
		{Namespace: "metrics", Name: "d", Err: errors.New("panic: boom")},
	})
	assert.Equal(t, unparseableSummary{Parse: 1, Unresolved: 1, SchemaMismatch: 2, Other: 1}, got)
}
