package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/steveyegge/graphmig/internal/storage/migrations"
)

// SQLiteLedger implements the run ledger using SQLite
type SQLiteLedger struct {
	db *sql.DB
}

// New opens or creates the ledger database at path
func New(ctx context.Context, path string) (*SQLiteLedger, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.NewManager(ledgerMigrations...).Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// SchemaVersion reports the applied schema version
func (s *SQLiteLedger) SchemaVersion(ctx context.Context) (int, error) {
	return migrations.Version(ctx, s.db)
}

// Rollback reverts the most recent schema migration
func (s *SQLiteLedger) Rollback(ctx context.Context) error {
	return migrations.NewManager(ledgerMigrations...).Rollback(ctx, s.db)
}

// Close closes the database
func (s *SQLiteLedger) Close() error {
	return s.db.Close()
}
