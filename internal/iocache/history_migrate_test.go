package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docu3c/autocodex/schema"
)

func TestMigrateHistoryNoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistoryUnsupportedBackend(t *testing.T) {
	err := MigrateHistory(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateHistorySQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history_migration.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// At latest already, a second run is a no-op.
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// Walk down to 1, all the way back, then up to 2.
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 2))
}

func TestMigrateHistorySQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, ":memory:", -1))
}
