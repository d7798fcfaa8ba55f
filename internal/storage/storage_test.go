package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphmig/internal/types"
)

func TestNewLedger_Disabled(t *testing.T) {
	_, err := NewLedger(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewLedger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger, err := NewLedger(ctx, Config{Path: filepath.Join(t.TempDir(), "nested", "ledger.db")})
	require.NoError(t, err)
	defer func() { _ = ledger.Close() }()

	run := &types.Run{StartedAt: time.Now(), Folders: []string{"defs"}}
	require.NoError(t, ledger.RecordRun(ctx, run))
	assert.NotEmpty(t, run.ID)

	runs, err := ledger.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}
