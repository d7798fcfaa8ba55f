package sqlite

import "github.com/steveyegge/graphmig/internal/storage/migrations"

// ledgerMigrations are applied in order when a ledger is opened.
var ledgerMigrations = []migrations.Migration{
	{
		Version:     1,
		Description: "Create runs and unparseables",
		Up: `
-- Migration runs
CREATE TABLE runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    folders TEXT NOT NULL DEFAULT '[]',
    metric_names TEXT NOT NULL DEFAULT '[]',
    translations INTEGER NOT NULL DEFAULT 0,
    sanitized INTEGER NOT NULL DEFAULT 0,
    units INTEGER NOT NULL DEFAULT 0,
    metrics INTEGER NOT NULL DEFAULT 0,
    translation_count INTEGER NOT NULL DEFAULT 0,
    perfometers INTEGER NOT NULL DEFAULT 0,
    graphs INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX idx_runs_started_at ON runs(started_at);

-- Legacy records a run could not migrate
CREATE TABLE unparseables (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    namespace TEXT NOT NULL,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX idx_unparseables_run ON unparseables(run_id);
`,
		Down: `
DROP TABLE unparseables;
DROP TABLE runs;
`,
	},
	{
		Version:     2,
		Description: "Add run duration",
		Up:          `ALTER TABLE runs ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`,
		Down:        `ALTER TABLE runs DROP COLUMN duration_ms`,
	},
}
