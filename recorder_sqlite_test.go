package stepline

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/require"
)

// TestSQLiteRecorder_HistorySurvivesReopen exercises the SQLite-backed
// recorder against a file database: runs recorded through one recorder
// remain queryable after the database is closed and reopened, as long
// as a new recorder is attached on startup.
func TestSQLiteRecorder_HistorySurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "stepline_history.db")
	dsn := "file:" + dbPath + "?_journal=WAL"

	// --- Phase 1: run a pipeline with recording on.

	db1, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)

	rec1, err := NewSQLiteRecorder(db1)
	require.NoError(t, err)

	pipe, err := New("nightly-etl", "1.0.0", "Nightly data load").
		Step("extract", "1.0.0", "Pull source data", func() error { return nil }).
		Step("load", "1.0.0", "Write to warehouse", func() error { return nil }).
		Observe(rec1).
		Build()
	require.NoError(t, err)

	require.NoError(t, Run(ctx, pipe))
	require.NoError(t, db1.Close())

	// --- Phase 2: reopen and query through a fresh recorder.

	db2, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer func() { _ = db2.Close() }()

	rec2, err := NewSQLiteRecorder(db2)
	require.NoError(t, err)

	runs, err := rec2.ListRuns(ctx, RunListOptions{Pipeline: "nightly-etl"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, StatusCompleted, runs[0].Status)
	require.False(t, runs[0].FinishedAt.IsZero())

	steps, err := rec2.ListSteps(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.Equal(t, "extract", steps[0].Step)
	require.Equal(t, "load", steps[1].Step)
}

func TestSQLiteRecorderInMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rec, err := NewSQLiteRecorder(db)
	require.NoError(t, err)

	pipe, err := New("quick", "1.0.0", "Quick pipeline").
		Step("only", "1.0.0", "Only step", func() error { return nil }).
		Observe(rec).
		Build()
	require.NoError(t, err)

	require.NoError(t, Run(ctx, pipe))

	run, err := rec.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, run.Status)
}
