package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docu3c/autocodex/schema"
)

// newTempCacheStore creates a SQLite-backed cache store in a temp directory.
func newTempCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(suggestionTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreSetGet(t *testing.T) {
	store := newTempCacheStore(t)

	key := "abc123"
	value := "## Suggestions\n\nUse a context manager."
	ts := time.Now().Unix()

	require.NoError(t, store.Set(key, value, ts))

	got, found, err := store.Get(key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, got)
}

func TestCacheStoreGetMiss(t *testing.T) {
	store := newTempCacheStore(t)

	_, found, err := store.Get("never-set")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStoreOverwrite(t *testing.T) {
	store := newTempCacheStore(t)

	require.NoError(t, store.Set("k", "first", 100))
	require.NoError(t, store.Set("k", "second", 200))

	got, found, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", got)
}

func TestCacheStoreStatus(t *testing.T) {
	store := newTempCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalEntries)

	require.NoError(t, store.Set("k1", "v1", 100))
	require.NoError(t, store.Set("k2", "v2", 200))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(suggestionTable, schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Sets are silently dropped, gets always miss
	require.NoError(t, store.Set("k", "v", 100))
	_, found, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, found)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestNewCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad; DROP TABLE x", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("suggestion_cache"))
	assert.NoError(t, validateTableName("_private"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1starts_with_digit"))
	assert.Error(t, validateTableName("has-dash"))
	assert.Error(t, validateTableName("has space"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
}
