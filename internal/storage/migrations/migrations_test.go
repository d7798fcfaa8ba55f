package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createNotes = Migration{
		Version:     1,
		Description: "Add notes table",
		Up:          `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`,
		Down:        `DROP TABLE notes`,
	}
	addAuthor = Migration{
		Version:     2,
		Description: "Add notes author",
		Up:          `ALTER TABLE notes ADD COLUMN author TEXT NOT NULL DEFAULT ''`,
		Down:        `ALTER TABLE notes DROP COLUMN author`,
	}
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	// Registration order does not matter.
	manager := NewManager(addAuthor, createNotes)
	assert.Equal(t, 2, manager.Latest())

	require.NoError(t, manager.Apply(ctx, db))
	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	_, err = db.Exec("INSERT INTO notes (body, author) VALUES ('x', 'y')")
	require.NoError(t, err)

	// Applying again is a no-op.
	require.NoError(t, manager.Apply(ctx, db))
}

func TestApply_Incremental(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	require.NoError(t, NewManager(createNotes).Apply(ctx, db))
	_, err := db.Exec("INSERT INTO notes (body) VALUES ('kept')")
	require.NoError(t, err)

	require.NoError(t, NewManager(createNotes, addAuthor).Apply(ctx, db))
	var body, author string
	require.NoError(t, db.QueryRow("SELECT body, author FROM notes").Scan(&body, &author))
	assert.Equal(t, "kept", body)
	assert.Equal(t, "", author)
}

func TestApply_NewerDatabase(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	require.NoError(t, NewManager(createNotes, addAuthor).Apply(ctx, db))
	err := NewManager(createNotes).Apply(ctx, db)
	assert.ErrorContains(t, err, "newer")
}

func TestApply_FailedMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	broken := Migration{Version: 2, Description: "broken", Up: `ALTER TABLE missing ADD COLUMN x TEXT`}
	err := NewManager(createNotes, broken).Apply(ctx, db)
	require.Error(t, err)

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	manager := NewManager(createNotes, addAuthor)

	assert.ErrorContains(t, manager.Rollback(ctx, db), "no migrations")

	require.NoError(t, manager.Apply(ctx, db))
	require.NoError(t, manager.Rollback(ctx, db))

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	_, err = db.Exec("INSERT INTO notes (body, author) VALUES ('x', 'y')")
	assert.Error(t, err, "author column is gone")
}
