package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/calderasa/tablequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *StoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StoreImpl)
}

func TestStoreRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun("data.csv", start, `{"sample_size":100}`)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	report := &schema.QualityReport{
		Results: map[schema.Criterion]schema.CriterionResult{
			schema.Completeness: {Criterion: schema.Completeness, Score: 4, Diagnostic: []string{"valor"}},
		},
		Overall:     4.8,
		Rows:        100,
		ColumnCount: 3,
	}
	end := start.Add(1500 * time.Millisecond)
	require.NoError(t, store.EndRun(runID, end, report, `{"overall":4.8}`))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "data.csv", run.Source)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(end))
	assert.Equal(t, 100, run.Rows)
	assert.Equal(t, 3, run.Columns)
	assert.InDelta(t, 4.8, run.Overall, 1e-9)
	require.NotNil(t, run.DurationMs)
	assert.Equal(t, int64(1500), *run.DurationMs)
	assert.Equal(t, "test", run.ToolVersion)
}

func TestStoreCriterionScores(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun("data.csv", time.Now().UTC(), "{}")
	require.NoError(t, err)

	results := []schema.CriterionResult{
		{Criterion: schema.Completeness, Score: 4, Diagnostic: []string{"valor", "saldo"}},
		{Criterion: schema.Integrity, Score: 2, Diagnostic: []string{"cpf: tamanhos inconsistentes em códigos/IDs"}},
	}
	for _, res := range results {
		require.NoError(t, store.RecordCriterionScore(runID, res))
	}

	scores, err := store.ListCriterionScores(runID)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// Ordered by criterion name.
	assert.Equal(t, "Completeness", scores[0].Criterion)
	assert.Equal(t, "valor; saldo", scores[0].Diagnostic)
	assert.Equal(t, "Integrity", scores[1].Criterion)
	assert.Equal(t, 2, scores[1].Score)
	assert.False(t, scores[1].RecordedAt.IsZero())
}

func TestStoreListRunsOrderAndLimit(t *testing.T) {
	store := newSQLiteStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.BeginRun("data.csv", time.Now().UTC(), "{}")
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].RunID, runs[1].RunID, "newest first")
}

func TestStoreClearRuns(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun("data.csv", time.Now().UTC(), "{}")
	require.NoError(t, err)
	require.NoError(t, store.RecordCriterionScore(runID, schema.CriterionResult{Criterion: schema.Accuracy, Score: 3}))

	require.NoError(t, store.ClearRuns())

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	scores, err := store.ListCriterionScores(runID)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestStoreNoneBackendIsNoop(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "", "test")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("data.csv", time.Now(), "{}")
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.RecordCriterionScore(0, schema.CriterionResult{Criterion: schema.Integrity, Score: 5}))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}
