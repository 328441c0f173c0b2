package examplegen

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	depPattern   = `//ldml/localeDisplayNames/localeDisplayPattern/localePattern`
	depSeparator = `//ldml/localeDisplayNames/localeDisplayPattern/localeSeparator`
	depLanguage  = `//ldml/localeDisplayNames/languages/language[@type="uz"]`
	depScript    = `//ldml/localeDisplayNames/scripts/script[@type="Arab"]`
	depTerritory = `//ldml/localeDisplayNames/territories/territory[@type="AF"]`
)

func dependencySnapshot(t *testing.T) *ResolvedFile {
	return customSnapshot(t, map[string]string{
		depPattern:   "{0} ({1})",
		depSeparator: "{0}, {1}",
		depLanguage:  "Uzbek",
		depScript:    "Arabic",
		depTerritory: "Afghanistan",
	})
}

func TestMutateValue(t *testing.T) {
	cases := map[string]string{
		"1":         "0",
		"10":        "00",
		"0":         "1",
		"{0}":       "{1}",
		"{0} ({1})": "{0} ({0})",
		"Uzbek":     "Uzbek1",
		"":          "1",
	}
	for in, want := range cases {
		got := mutateValue(in)
		assert.Equal(t, want, got, in)
		assert.NotEqual(t, in, got)
	}
}

func TestDependencyGraph(t *testing.T) {
	g := NewDependencyGraph("xx")
	assert.NotEmpty(t, g.RunID)
	assert.Equal(t, "xx", g.Locale)

	g.Add("b", "c")
	g.Add("a", "c")
	g.Add("a", "b")
	g.Add("a", "b")

	assert.Equal(t, 3, g.Edges())
	assert.Equal(t, []string{"a", "b"}, g.Sources())
	assert.Equal(t, []string{"b", "c"}, g.Dependents("a"))
	assert.Equal(t, []string{"a", "b"}, g.Dependencies("c"))
	assert.Empty(t, g.Dependents("c"))
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, g.DependentCounts())
	assert.Equal(t, map[string]int{"b": 1, "c": 2}, g.DependencyCounts())
}

func TestWriteCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCounts(&buf, map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", buf.String())
}

func TestDependencyAnalyzer(t *testing.T) {
	snap := dependencySnapshot(t)
	graph, err := NewDependencyAnalyzer(snap).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "xx", graph.Locale)
	assert.Equal(t, 5, graph.Candidates)
	assert.Zero(t, graph.Skipped)
	assert.False(t, graph.Finished.IsZero())

	assert.Equal(t, []string{depLanguage, depPattern, depSeparator}, graph.Dependents(depTerritory))
	assert.Contains(t, graph.Dependencies(depPattern), depTerritory)
	assert.Contains(t, graph.Dependencies(depPattern), depSeparator)
	assert.NotContains(t, graph.Dependents(depTerritory), depScript)

	value, ok := snap.Value(depTerritory)
	require.True(t, ok)
	assert.Equal(t, "Afghanistan", value)
	value, _ = snap.Value(depPattern)
	assert.Equal(t, "{0} ({1})", value)
}

func TestDependencyAnalyzerOptions(t *testing.T) {
	snap := dependencySnapshot(t)
	skip := func(path string, candidate bool) bool {
		return candidate && strings.Contains(path, "territory")
	}
	graph, err := NewDependencyAnalyzer(snap,
		WithDependencySkip(skip),
		WithDependencyPaths(depPattern, depTerritory, depLanguage),
		WithDependencyLimit(1),
	).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, graph.Candidates)
	assert.Equal(t, 1, graph.Skipped)
	assert.Empty(t, graph.Dependents(depTerritory))
}

func TestDependencyAnalyzerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := dependencySnapshot(t)
	graph, err := NewDependencyAnalyzer(snap).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, graph)
	assert.Zero(t, graph.Candidates)
}

func TestDependencyAnalyzerFrozenSnapshot(t *testing.T) {
	snap := dependencySnapshot(t)
	snap.Freeze()

	_, err := NewDependencyAnalyzer(snap).Run(context.Background())
	assert.ErrorIs(t, err, ErrReadOnlySnapshot)
}
