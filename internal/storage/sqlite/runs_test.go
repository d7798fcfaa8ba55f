package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphmig/internal/types"
)

func newTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	ledger, err := New(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	started := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	run := &types.Run{
		StartedAt:    started,
		Duration:     1500 * time.Millisecond,
		Folders:      []string{"defs/a", "defs/b"},
		MetricNames:  []string{"cpu_util"},
		Translations: true,
		Counts:       types.Counts{Units: 2, Metrics: 3, Translations: 1, Perfometers: 1, Graphs: 2},
		Unparseables: []types.Unparseable{
			{Namespace: "graphs", Name: "cpu_agg", Kind: "parse_failure", Message: "unsupported token"},
			{Namespace: "perfometers", Name: "3", Kind: "schema_mismatch"},
		},
	}
	require.NoError(t, ledger.RecordRun(ctx, run))
	require.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Counts.Unparseables)

	runs, err := ledger.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.Equal(t, run.Folders, got.Folders)
	assert.Equal(t, run.MetricNames, got.MetricNames)
	assert.True(t, got.Translations)
	assert.False(t, got.Sanitized)
	assert.Equal(t, run.Counts, got.Counts)
	assert.Empty(t, got.Unparseables)

	unparseables, err := ledger.Unparseables(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Unparseables, unparseables)
}

func TestRecordRun_KeepsGivenID(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	run := &types.Run{ID: "fixed", StartedAt: time.Now(), Folders: []string{"defs"}}
	require.NoError(t, ledger.RecordRun(ctx, run))
	assert.Equal(t, "fixed", run.ID)

	// Same id twice violates the primary key and leaves nothing behind.
	dup := &types.Run{ID: "fixed", StartedAt: time.Now(), Folders: []string{"defs"},
		Unparseables: []types.Unparseable{{Namespace: "graphs", Name: "x", Kind: "unknown"}}}
	assert.Error(t, ledger.RecordRun(ctx, dup))

	unparseables, err := ledger.Unparseables(ctx, "fixed")
	require.NoError(t, err)
	assert.Empty(t, unparseables)
}

func TestRecordRun_Invalid(t *testing.T) {
	ledger := newTestLedger(t)
	err := ledger.RecordRun(context.Background(), &types.Run{Folders: []string{"defs"}})
	assert.ErrorContains(t, err, "started_at")
}

func TestListRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		run := &types.Run{ID: string(rune('a' + i)), StartedAt: base.Add(time.Duration(i) * time.Hour), Folders: []string{"defs"}}
		require.NoError(t, ledger.RecordRun(ctx, run))
	}

	runs, err := ledger.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	runs, err = ledger.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestUnparseables_UnknownRun(t *testing.T) {
	_, err := newTestLedger(t).Unparseables(context.Background(), "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	first, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.RecordRun(ctx, &types.Run{StartedAt: time.Now(), Folders: []string{"defs"}}))
	require.NoError(t, first.Close())

	second, err := New(ctx, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	runs, err := second.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNew_AppliesSchemaMigrations(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	version, err := ledger.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ledgerMigrations), version)
}

func TestRecordRun_DurationPrecision(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	run := &types.Run{StartedAt: time.Now(), Duration: 2*time.Second + 345678*time.Microsecond, Folders: []string{"defs"}}
	require.NoError(t, ledger.RecordRun(ctx, run))

	runs, err := ledger.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2345*time.Millisecond, runs[0].Duration)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	ledger, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, ledger.Rollback(ctx))

	version, err := ledger.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ledgerMigrations)-1, version)
	require.NoError(t, ledger.Close())

	// Reopening applies the reverted migration again.
	reopened, err := New(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	version, err = reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ledgerMigrations), version)

	run := &types.Run{StartedAt: time.Now(), Duration: time.Second, Folders: []string{"defs"}}
	require.NoError(t, reopened.RecordRun(ctx, run))
}
