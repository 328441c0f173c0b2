package examplegen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []RenderOutcome
	hits     []Category
}

func (m *recordingMetrics) RecordRender(_ context.Context, _ Category, _ time.Duration, outcome RenderOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RecordCacheHit(_ context.Context, category Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = append(m.hits, category)
}

func customSnapshot(t *testing.T, values map[string]string) *ResolvedFile {
	t.Helper()
	store := NewDataStore(Bundle{"xx": {Locale: "xx", Values: values}})
	snap, err := store.Resolve("xx")
	require.NoError(t, err)
	return snap
}

func TestNewRejectsNilSnapshot(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestEngineClassify(t *testing.T) {
	engine := testEngine(t, "en")

	cases := map[string]Category{
		`//ldml/numbers/currencies/currency[@type="USD"]/displayName[@count="one"]`:                 CategoryCurrencyName,
		`//ldml/numbers/currencies/currency[@type="USD"]/symbol`:                                    CategoryCurrencySymbol,
		`//ldml/characters/ellipsis[@type="medial"]`:                                                CategoryEllipsis,
		`//ldml/localeDisplayNames/keys/key[@type="timezone"]`:                                      CategoryDisplayName,
		`//ldml/units/unitLength[@type="long"]/compoundUnit[@type="per"]/compoundUnitPattern`:       CategoryCompoundUnit,
		`//ldml/dates/timeZoneNames/metazone[@type="America_Central"]/long/generic`:                 CategoryZoneName,
		gregorian + `months/monthContext[@type="format"]/monthWidth[@type="wide"]/month[@type="9"]`: CategoryNone,
		`//ldml/numbers/currencies/currency[@type="USD"]/displayName`:                               CategoryNone,
		`//ldml/identity/language[@type="en"]`:                                                      CategoryNone,
		`//ldml/nothing/here`:                                                                       CategoryNone,
		`not a path`:                                                                                CategoryNone,
	}
	for path, want := range cases {
		assert.Equal(t, want, engine.Classify(path), path)
	}
}

func TestEngineExcludedPathHasNoExample(t *testing.T) {
	engine := testEngine(t, "en")
	markup, ok := engine.RenderExample(`//ldml/numbers/currencies/currency[@type="USD"]/displayName`, "US Dollar", TargetNative)
	assert.False(t, ok)
	assert.Empty(t, markup)
}

func TestEngineMalformedPathRendersFailure(t *testing.T) {
	engine := testEngine(t, "en")
	markup, ok := engine.RenderExample(`//ldml/broken[@type="x`, "x", TargetNative)
	require.True(t, ok)
	assert.Contains(t, markup, FailureMarker)
	assert.Contains(t, markup, "cldr_failure")
}

func TestEngineCapturesRendererFaults(t *testing.T) {
	var outcomes []RenderOutcome
	hook := RenderHookFuncs{After: func(ctx *RenderHookContext) {
		outcomes = append(outcomes, ctx.Outcome())
	}}

	engine := testEngine(t, "en",
		WithStrategy(Strategy{
			Name:      "broken",
			Templates: templates(`//ldml/test/broken[@type="*"]`),
			Render: func(*RenderContext, Path, string) (Example, error) {
				return Example{}, errors.New("sample table exploded")
			},
		}),
		WithStrategy(Strategy{
			Name:      "panicking",
			Templates: templates(`//ldml/test/panicking`),
			Render: func(*RenderContext, Path, string) (Example, error) {
				panic("index out of range")
			},
		}),
		WithStrategy(Strategy{
			Name:      "missing",
			Templates: templates(`//ldml/test/missing`),
			Render: func(*RenderContext, Path, string) (Example, error) {
				return Example{}, ErrMissingValue
			},
		}),
		WithHooks(hook),
	)

	markup, ok := engine.RenderExample(`//ldml/test/broken[@type="a"]`, "x", TargetNative)
	require.True(t, ok)
	assert.Contains(t, Normalize(markup, false), "Example generation failed: sample table exploded")

	markup, ok = engine.RenderExample(`//ldml/test/panicking`, "x", TargetNative)
	require.True(t, ok)
	assert.Contains(t, markup, FailureMarker)
	assert.Contains(t, markup, "index out of range")

	markup, ok = engine.RenderExample(`//ldml/test/missing`, "x", TargetNative)
	assert.False(t, ok)
	assert.Empty(t, markup)

	assert.Equal(t, []RenderOutcome{OutcomeFailure, OutcomeFailure, OutcomeAbsent}, outcomes)
}

func TestEngineCache(t *testing.T) {
	var hits []bool
	hook := RenderHookFuncs{After: func(ctx *RenderHookContext) {
		hits = append(hits, ctx.CacheHit)
	}}
	engine := testEngine(t, "en", WithHooks(hook))
	path := `//ldml/characters/ellipsis[@type="final"]`

	first, ok := engine.RenderExample(path, "{0}…", TargetNative)
	require.True(t, ok)
	second, ok := engine.RenderExample(path, "{0}…", TargetNative)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, engine.cache.Len())

	_, _ = engine.RenderExample(path, "{0}…", TargetEnglish)
	assert.Equal(t, 2, engine.cache.Len())

	assert.False(t, engine.CacheDisabled())
	engine.DisableCache()
	assert.True(t, engine.CacheDisabled())
	assert.Equal(t, 0, engine.cache.Len())

	_, _ = engine.RenderExample(path, "{0}…", TargetNative)
	assert.Equal(t, []bool{false, true, false, false}, hits)
}

func TestEngineCacheDisabledOption(t *testing.T) {
	engine := testEngine(t, "en", WithCacheDisabled())
	assert.True(t, engine.CacheDisabled())

	_, ok := engine.RenderExample(`//ldml/characters/ellipsis[@type="final"]`, "{0}…", TargetNative)
	require.True(t, ok)
	assert.Equal(t, 0, engine.cache.Len())
}

func TestEngineSeesMutationsWithCacheDisabled(t *testing.T) {
	store, err := LoadEmbeddedStore()
	require.NoError(t, err)
	snap, err := store.Resolve("en")
	require.NoError(t, err)
	engine, err := New(snap, WithStore(store), WithCacheDisabled())
	require.NoError(t, err)

	path := `//ldml/localeDisplayNames/languages/language[@type="uz"]`
	before, ok := engine.RenderExample(path, "Uzbek", TargetNative)
	require.True(t, ok)

	require.NoError(t, snap.Set(`//ldml/localeDisplayNames/territories/territory[@type="AF"]`, "Afghanistan1"))
	after, ok := engine.RenderExample(path, "Uzbek", TargetNative)
	require.True(t, ok)

	assert.NotEqual(t, before, after)
	assert.Equal(t, "〖❬Uzbek❭ (Afghanistan1)〗", Normalize(after, false))
}

func TestEngineMetricsHook(t *testing.T) {
	recorder := &recordingMetrics{}
	engine := testEngine(t, "en", WithMetrics(recorder))
	path := `//ldml/characters/ellipsis[@type="final"]`

	_, _ = engine.RenderExample(path, "{0}…", TargetNative)
	_, _ = engine.RenderExample(path, "{0}…", TargetNative)
	_, _ = engine.RenderExample(`//ldml/numbers/currencies/currency[@type="USD"]/displayName`, "US Dollar", TargetNative)

	assert.Equal(t, []RenderOutcome{OutcomeRendered, OutcomeRendered, OutcomeAbsent}, recorder.outcomes)
	assert.Equal(t, []Category{CategoryEllipsis}, recorder.hits)
}

func TestEngineHookCanRewriteResult(t *testing.T) {
	hook := RenderHookFuncs{
		Before: func(ctx *RenderHookContext) {
			ctx.SetMetadata("seen", ctx.Path)
		},
		After: func(ctx *RenderHookContext) {
			if seen, ok := ctx.MetadataValue("seen"); ok && seen == ctx.Path {
				ctx.Result = strings.ToUpper(ctx.Result)
			}
		},
	}
	engine := testEngine(t, "en", WithHooks(hook, nil))

	markup, ok := engine.RenderExample(`//ldml/numbers/minimalPairs/pluralMinimalPairs[@count="one"]`, "{0} day", TargetNative)
	require.True(t, ok)
	assert.Contains(t, markup, "DAY")
}

func TestEngineRenderHelp(t *testing.T) {
	engine := testEngine(t, "en")

	markup, ok := engine.RenderHelp(`//ldml/characters/ellipsis[@type="medial"]`, "{0}…{1}")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(markup, "<div class='cldr_help'>"))

	_, ok = engine.RenderHelp(`//ldml/nothing/here`, "x")
	assert.False(t, ok)

	_, ok = engine.RenderHelp(`not a path`, "x")
	assert.False(t, ok)
}

func TestEngineEnglishFallsBackToNative(t *testing.T) {
	snap := customSnapshot(t, map[string]string{
		`//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="range"]`: "{0}~{1}",
	})
	engine, err := New(snap)
	require.NoError(t, err)

	markup, ok := engine.RenderExample(`//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="range"]`, "{0}~{1}", TargetEnglish)
	require.True(t, ok)
	assert.Equal(t, "〖❬99❭~❬144❭〗", Normalize(markup, false))
}
