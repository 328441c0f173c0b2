package examplegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepReportsProblems(t *testing.T) {
	const misc = `//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="`
	snap := customSnapshot(t, map[string]string{
		`//ldml/identity/version[@number="1"]`:        "",
		`//ldml/characters/ellipsis[@type="initial"]`: "…{0}",
		misc + `approximately"]`:                      "null{0}",
		misc + `atLeast"]`:                            "at least",
		misc + `range"]`:                              "{0}–{1}",
	})
	engine, err := New(snap)
	require.NoError(t, err)

	report, err := engine.Sweep(context.Background(), TargetNative)
	require.NoError(t, err)

	assert.Equal(t, "xx", report.Locale)
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 3, report.Rendered)
	assert.True(t, report.HasDefects())

	var got []ProblemKind
	for _, p := range report.Problems {
		got = append(got, p.Kind)
	}
	assert.Equal(t, []ProblemKind{ProblemNoExample, ProblemNullInMessage, ProblemNoSubstitution}, got)
	assert.Equal(t, 1, report.Count(ProblemNullInMessage))
	assert.Equal(t, map[ProblemKind]int{
		ProblemNoExample:      1,
		ProblemNullInMessage:  1,
		ProblemNoSubstitution: 1,
	}, report.Kinds())
	assert.Equal(t, "〖null❬99❭〗", report.Problems[1].Example)
}

func TestSweepEmbeddedLocale(t *testing.T) {
	engine := testEngine(t, "en")

	report, err := engine.Sweep(context.Background(), TargetNative)
	require.NoError(t, err)

	assert.Positive(t, report.Checked)
	assert.Positive(t, report.Skipped)
	assert.Positive(t, report.Rendered)
	assert.Zero(t, report.Count(ProblemFailure), "failures: %v", report.Problems)
	for i := 1; i < len(report.Problems); i++ {
		assert.LessOrEqual(t, ComparePaths(report.Problems[i-1].Path, report.Problems[i].Path), 0)
	}
}

func TestSweepEveryEmbeddedLocaleHasExamples(t *testing.T) {
	store, err := LoadEmbeddedStore()
	require.NoError(t, err)

	for _, locale := range store.Locales() {
		if locale == RootLocale {
			continue
		}
		t.Run(locale, func(t *testing.T) {
			engine := testEngine(t, locale)
			report, err := engine.Sweep(context.Background(), TargetNative)
			require.NoError(t, err)
			assert.Positive(t, report.Rendered)
			assert.Zero(t, report.Count(ProblemNoExample), "missing examples: %v", report.Problems)
		})
	}
}

func TestSweepStopsOnCancel(t *testing.T) {
	engine := testEngine(t, "en")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := engine.Sweep(ctx, TargetNative)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Checked)
}

func TestSweepProblemString(t *testing.T) {
	p := SweepProblem{Kind: ProblemNoExample, Path: "//ldml/x", Value: "v"}
	assert.Equal(t, "no-example\t//ldml/x\t\"v\"", p.String())

	p.Example = "〖x〗"
	assert.Equal(t, "no-example\t//ldml/x\t\"v\"\t〖x〗", p.String())
}
