package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestMigrate(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Migrate(t.Context(), db))
	// idempotent
	require.NoError(t, Migrate(t.Context(), db))

	var version int
	var dirty bool
	err := db.QueryRowContext(t.Context(), "SELECT version, dirty FROM "+DefaultMigrationsTable).Scan(&version, &dirty)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, dirty)

	_, err = db.ExecContext(t.Context(), "SELECT count(*) FROM decompositions")
	assert.NoError(t, err)
}

func TestMigrateOptions(t *testing.T) {
	db := openDB(t)

	err := Migrate(t.Context(), db, WithMigrationTableName(""))
	assert.Error(t, err)

	require.NoError(t, Migrate(t.Context(), db, WithMigrationTableName("timespan_migrations")))

	var version int
	err = db.QueryRowContext(t.Context(), "SELECT version FROM timespan_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestMigrateDirty(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(t.Context(), db))

	_, err := db.ExecContext(t.Context(), "UPDATE "+DefaultMigrationsTable+" SET dirty = 1")
	require.NoError(t, err)

	require.NoError(t, Migrate(t.Context(), db))

	var dirty bool
	err = db.QueryRowContext(t.Context(), "SELECT dirty FROM "+DefaultMigrationsTable).Scan(&dirty)
	require.NoError(t, err)
	assert.False(t, dirty)
}
