package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docu3c/autocodex/schema"
)

// newTempHistoryStore creates a SQLite-backed history store in a temp directory.
func newTempHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newTempHistoryStore(t)

	start := time.Now().UTC().Truncate(time.Millisecond)
	runID, err := store.BeginRun(start, map[string]any{"repo": "octocat/hello", "max_files": 20})
	require.NoError(t, err)
	assert.Positive(t, runID)

	rec := schema.FileRecord{
		Path:            "src/app.py",
		Language:        string(schema.PythonLang),
		ReviewTime:      start.Add(2 * time.Second),
		LinesOfCode:     130,
		Complexity:      9,
		Maintainability: 71.4,
		Duplication:     2,
		LintScore:       8.1,
		IssueCount:      3,
	}
	require.NoError(t, store.RecordFile(runID, rec))

	end := start.Add(5 * time.Second)
	require.NoError(t, store.EndRun(runID, end, 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, 1, runs[0].FilesTotal)
	require.NotNil(t, runs[0].EndTime)
	assert.True(t, runs[0].EndTime.After(runs[0].StartTime))
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "octocat/hello")

	records, err := store.GetAllFileRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, runID, records[0].RunID)
	assert.Equal(t, "src/app.py", records[0].Path)
	assert.Equal(t, 9, records[0].Complexity)
	assert.InDelta(t, 71.4, records[0].Maintainability, 0.001)
}

func TestHistoryStoreMultipleRunsOrdered(t *testing.T) {
	store := newTempHistoryStore(t)

	first, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].RunID)
	assert.Equal(t, second, runs[1].RunID)
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newTempHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	start := time.Now()
	runID, err := store.BeginRun(start, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordFile(runID, schema.FileRecord{
		Path: "a.py", Language: "python", ReviewTime: start,
	}))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 1))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.EqualValues(t, 1, status.TotalFilesReviewed)
	assert.EqualValues(t, 1, status.TableSizes[reviewRunsTable])
	assert.EqualValues(t, 1, status.TableSizes[fileRecordsTable])
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.RecordFile(0, schema.FileRecord{}))
	require.NoError(t, store.EndRun(0, time.Now(), 0))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}
