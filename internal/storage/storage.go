package storage

import (
	"context"
	"errors"

	"github.com/steveyegge/graphmig/internal/storage/sqlite"
	"github.com/steveyegge/graphmig/internal/types"
)

// Ledger records migration runs
type Ledger interface {
	RecordRun(ctx context.Context, run *types.Run) error
	ListRuns(ctx context.Context, limit int) ([]*types.Run, error)
	Unparseables(ctx context.Context, runID string) ([]types.Unparseable, error)

	// Schema
	SchemaVersion(ctx context.Context) (int, error)
	Rollback(ctx context.Context) error

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path. There is no default: an empty
	// path means runs are not recorded.
	Path string
}

// ErrDisabled is returned by NewLedger for an empty path
var ErrDisabled = errors.New("run ledger is disabled")

// NewLedger opens the SQLite ledger
func NewLedger(ctx context.Context, cfg Config) (Ledger, error) {
	if cfg.Path == "" {
		return nil, ErrDisabled
	}
	return sqlite.New(ctx, cfg.Path)
}
