package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func recordSampleRun(t *testing.T, store *Store, start time.Time) int64 {
	t.Helper()
	runID, err := store.BeginRun(start, "abc123", "def456", schema.GzipCompression, map[string]any{"compression": "gzip"})
	require.NoError(t, err)

	require.NoError(t, store.RecordFileSizes(runID, []schema.FileSizeRecord{
		{Filename: "dist/b.js", Size: 300, Delta: 100},
		{Filename: "dist/a.js", Size: 0, Delta: -500},
	}))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), schema.RunTotals{
		TotalSize: 300, TotalDelta: -400, TotalFiles: 2,
	}))
	return runID
}

func TestNewStore_None(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "a", "b", schema.GzipCompression, nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordFileSizes(runID, []schema.FileSizeRecord{{Filename: "x", Size: 1}}))
	assert.NoError(t, store.EndRun(runID, time.Now(), schema.RunTotals{}))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)
	rows, err := store.GetAllFileSizes()
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.NoError(t, store.Close())
}

func TestNewStore_Unsupported(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history backend")
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	store, _ := newSQLiteStore(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runID := recordSampleRun(t, store, start)
	assert.Equal(t, int64(1), runID)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, "abc123", run.BaseRef)
	assert.Equal(t, "def456", run.HeadRef)
	assert.Equal(t, "gzip", run.Compression)
	assert.Equal(t, int64(300), run.TotalSize)
	assert.Equal(t, int64(-400), run.TotalDelta)
	assert.Equal(t, int32(2), run.TotalFiles)

	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "gzip", params["compression"])

	rows, err := store.GetAllFileSizes()
	require.NoError(t, err)
	assert.Equal(t, []schema.FileSizeRow{
		{RunID: runID, Filename: "dist/a.js", Size: 0, Delta: -500},
		{RunID: runID, Filename: "dist/b.js", Size: 300, Delta: 100},
	}, rows)
}

func TestStore_UnfinishedRun(t *testing.T) {
	store, _ := newSQLiteStore(t)
	_, err := store.BeginRun(time.Now(), "a", "b", schema.BrotliCompression, nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].ConfigParams)
}

func TestStore_EndRunUnknown(t *testing.T) {
	store, _ := newSQLiteStore(t)
	err := store.EndRun(42, time.Now(), schema.RunTotals{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get start time for run 42")
}

func TestStore_DuplicateFileRejected(t *testing.T) {
	store, _ := newSQLiteStore(t)
	runID, err := store.BeginRun(time.Now(), "a", "b", schema.GzipCompression, nil)
	require.NoError(t, err)

	err = store.RecordFileSizes(runID, []schema.FileSizeRecord{
		{Filename: "dist/a.js", Size: 1},
		{Filename: "dist/a.js", Size: 2},
	})
	require.Error(t, err)

	// The transaction is rolled back as a whole
	rows, err := store.GetAllFileSizes()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_GetStatus(t *testing.T) {
	store, _ := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, map[string]int64{runsTable: 0, fileSizesTable: 0}, status.TableSizes)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recordSampleRun(t, store, first)
	lastID := recordSampleRun(t, store, first.Add(time.Hour))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, first.Add(time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 4, status.TotalFiles)
	assert.Equal(t, int64(4), status.TableSizes[fileSizesTable])
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"}))
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:     "sqlite",
		Connected:   true,
		TotalRuns:   3,
		LastRunID:   3,
		LastRunTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalFiles:  12,
		TableSizes:  map[string]int64{runsTable: 3, fileSizesTable: 12},
	}))
	out := buf.String()
	for _, want := range []string{
		"Total Runs: 3", "Last Run ID: 3", "Last Run: 2026-03-01 12:00:00",
		"Total Files Compared: 12", runsTable, fileSizesTable,
	} {
		assert.Contains(t, out, want)
	}
}

func TestClearHistory(t *testing.T) {
	store, path := newSQLiteStore(t)
	recordSampleRun(t, store, time.Now())
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, path))
	assert.NoError(t, ClearHistory(schema.NoneBackend, ""))

	err = ClearHistory(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history backend")
}

func TestMigrateHistory(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	path := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "to version 2")

	out.Reset()
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	out.Reset()
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, path, 1, &out))
	assert.Contains(t, out.String(), "from version 2 to version 1")

	out.Reset()
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, path, 0, &out))
	assert.Contains(t, out.String(), "to version 0")

	// A migrated database works with the store
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, path, -1, &out))
	store, err := NewStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	recordSampleRun(t, store, time.Now())
}

func TestExecuteHistoryExport(t *testing.T) {
	store, _ := newSQLiteStore(t)
	var out bytes.Buffer

	err := ExecuteHistoryExport(store, "", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")

	prefix := filepath.Join(t.TempDir(), "export")
	err = ExecuteHistoryExport(store, prefix, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history data found")

	recordSampleRun(t, store, time.Now())
	require.NoError(t, ExecuteHistoryExport(store, prefix, &out))
	assert.Contains(t, out.String(), "Exported 1 runs")
	assert.Contains(t, out.String(), "Exported 2 file size records")
	assert.FileExists(t, prefix+".runs.parquet")
	assert.FileExists(t, prefix+".file_sizes.parquet")
}

func TestExecuteHistoryExport_StoreError(t *testing.T) {
	mockStore := &contract.MockHistoryStore{}
	mockStore.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
	mockStore.On("GetAllRuns").Return(nil, assert.AnError)

	err := ExecuteHistoryExport(mockStore, filepath.Join(t.TempDir(), "x"), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	mockStore.AssertExpectations(t)
}

func TestBind(t *testing.T) {
	pg := &Store{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "VALUES ($1, $2)", pg.bind("VALUES (?, ?)"))
	lite := &Store{backend: schema.SQLiteBackend}
	assert.Equal(t, "VALUES (?, ?)", lite.bind("VALUES (?, ?)"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`sizewatch_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"sizewatch_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"sizewatch_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestWithParseTime(t *testing.T) {
	assert.Equal(t, "u:p@tcp(h:3306)/db?parseTime=true", withParseTime("u:p@tcp(h:3306)/db"))
	assert.Equal(t, "u:p@tcp(h:3306)/db?tls=false&parseTime=true", withParseTime("u:p@tcp(h:3306)/db?tls=false"))
	assert.Equal(t, "u:p@tcp(h:3306)/db?parseTime=false", withParseTime("u:p@tcp(h:3306)/db?parseTime=false"))
}
