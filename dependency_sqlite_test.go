package examplegen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteReportStore(t *testing.T) {
	store, err := NewSQLiteReportStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	graph := NewDependencyGraph("it")
	graph.Candidates = 3
	graph.Skipped = 1
	graph.Finished = graph.Started.Add(time.Second)
	graph.Add(depTerritory, depPattern)
	graph.Add(depTerritory, depLanguage)
	graph.Add(depScript, depPattern)
	require.NoError(t, store.Save(graph))

	loaded, err := store.Load(graph.RunID)
	require.NoError(t, err)
	assert.Equal(t, graph.RunID, loaded.RunID)
	assert.Equal(t, "it", loaded.Locale)
	assert.Equal(t, 3, loaded.Candidates)
	assert.Equal(t, 1, loaded.Skipped)
	assert.True(t, graph.Started.Equal(loaded.Started))
	assert.True(t, graph.Finished.Equal(loaded.Finished))
	assert.Equal(t, graph.Edges(), loaded.Edges())
	assert.Equal(t, graph.Dependents(depTerritory), loaded.Dependents(depTerritory))
	assert.Equal(t, graph.Dependencies(depPattern), loaded.Dependencies(depPattern))

	// saving the same run again replaces its edges
	graph.Add(depLanguage, depPattern)
	require.NoError(t, store.Save(graph))
	loaded, err = store.Load(graph.RunID)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Edges())
}

func TestSQLiteReportStoreRuns(t *testing.T) {
	store, err := NewSQLiteReportStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	older := NewDependencyGraph("it")
	older.Started = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older.Add("a", "b")
	newer := NewDependencyGraph("it")
	newer.Started = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	other := NewDependencyGraph("de")
	require.NoError(t, store.Save(older))
	require.NoError(t, store.Save(newer))
	require.NoError(t, store.Save(other))

	runs, err := store.Runs("it")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.RunID, runs[0].RunID)
	assert.Equal(t, older.RunID, runs[1].RunID)
	assert.Equal(t, 1, runs[1].Edges)

	all, err := store.Runs("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Delete(older.RunID))
	_, err = store.Load(older.RunID)
	assert.ErrorIs(t, err, ErrMissingValue)

	runs, err = store.Runs("it")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteReportStoreClosed(t *testing.T) {
	store, err := NewSQLiteReportStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Save(NewDependencyGraph("it")), ErrStoreClosed)
	_, err = store.Load("missing")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.Runs("")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Delete("missing"), ErrStoreClosed)
}
