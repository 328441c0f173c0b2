package examplegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gregorian   = `//ldml/dates/calendars/calendar[@type="gregorian"]/`
	formatAbbr  = gregorian + `dayPeriods/dayPeriodContext[@type="format"]/dayPeriodWidth[@type="abbreviated"]/dayPeriod[@type="`
	standAlone  = gregorian + `dayPeriods/dayPeriodContext[@type="stand-alone"]/dayPeriodWidth[@type="abbreviated"]/dayPeriod[@type="`
	ellipsisFmt = `//ldml/characters/ellipsis[@type="`
)

func testEngine(t *testing.T, locale string, opts ...Option) *Engine {
	t.Helper()
	store, err := LoadEmbeddedStore()
	require.NoError(t, err)
	snap, err := store.Resolve(locale)
	require.NoError(t, err)
	engine, err := New(snap, append([]Option{WithStore(store)}, opts...)...)
	require.NoError(t, err)
	return engine
}

func renderNormalized(t *testing.T, engine *Engine, path, value string) string {
	t.Helper()
	markup, ok := engine.RenderExample(path, value, TargetNative)
	require.True(t, ok, "no example for %s", path)
	require.NotContains(t, markup, FailureMarker)
	return Normalize(markup, false)
}

func TestRenderNumbers(t *testing.T) {
	cases := []struct {
		name   string
		locale string
		path   string
		value  string
		want   string
	}{
		{
			name:   "currency name one",
			locale: "en",
			path:   `//ldml/numbers/currencies/currency[@type="BMD"]/displayName[@count="one"]`,
			value:  "Bermudan dollar",
			want:   "〖❬1❭ Bermudan dollar〗",
		},
		{
			name:   "currency name other shows two samples",
			locale: "en",
			path:   `//ldml/numbers/currencies/currency[@type="BMD"]/displayName[@count="other"]`,
			value:  "Bermudan dollars",
			want:   "〖❬1.23❭ Bermudan dollars〗〖❬0.00❭ Bermudan dollars〗",
		},
		{
			name:   "currency name one with fraction samples",
			locale: "fr",
			path:   `//ldml/numbers/currencies/currency[@type="BMD"]/displayName[@count="one"]`,
			value:  "value-one",
			want:   "〖❬1,23❭ value-one〗〖❬0,00❭ value-one〗",
		},
		{
			name:   "currency symbol in locale pattern",
			locale: "it",
			path:   `//ldml/numbers/currencies/currency[@type="BMD"]/symbol`,
			value:  "BMD",
			want:   "〖❬123.456,79❭ BMD〗",
		},
		{
			name:   "currency unit pattern",
			locale: "en",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/unitPattern[@count="one"]`,
			value:  "{0} {1}",
			want:   "〖❬1❭ ❬US dollar❭〗〖❬1❭ ❬euro❭〗",
		},
		{
			name:   "currency unit pattern other",
			locale: "en",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/unitPattern[@count="other"]`,
			value:  "{0} {1}",
			want:   "〖❬1.23❭ ❬US dollars❭〗〖❬1.23❭ ❬euros❭〗〖❬0.00❭ ❬US dollars❭〗〖❬0.00❭ ❬euros❭〗",
		},
		{
			name:   "currency unit pattern one with localized names",
			locale: "fr",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/unitPattern[@count="one"]`,
			value:  "{0}_{1}",
			want:   "〖❬1,23❭_❬dollar des États-Unis❭〗〖❬1,23❭_❬euro❭〗〖❬0,00❭_❬dollar des États-Unis❭〗〖❬0,00❭_❬euro❭〗",
		},
		{
			name:   "currency unit pattern other with localized names",
			locale: "fr",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/unitPattern[@count="other"]`,
			value:  "{0}_{1}",
			want:   "〖❬2,34❭_❬dollars des États-Unis❭〗〖❬2,34❭_❬euros❭〗〖❬3,45❭_❬dollars des États-Unis❭〗〖❬3,45❭_❬euros❭〗",
		},
		{
			name:   "compact currency one digit",
			locale: "de",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/currencyFormatLength[@type="short"]/currencyFormat[@type="standard"]/pattern[@type="1000000"][@count="one"]`,
			value:  "0 Mio'.' ¤",
			want:   "〖❬1❭ Mio. €〗",
		},
		{
			name:   "compact currency two digits",
			locale: "de",
			path:   `//ldml/numbers/currencyFormats[@numberSystem="latn"]/currencyFormatLength[@type="short"]/currencyFormat[@type="standard"]/pattern[@type="10000000"][@count="other"]`,
			value:  "00 Mio'.' ¤",
			want:   "〖❬10❭ Mio. €〗",
		},
		{
			name:   "compact decimal many",
			locale: "cs",
			path:   `//ldml/numbers/decimalFormats[@numberSystem="latn"]/decimalFormatLength[@type="long"]/decimalFormat[@type="standard"]/pattern[@type="1000000"][@count="many"]`,
			value:  "0 milionu",
			want:   "〖❬1,1❭ milionu〗",
		},
		{
			name:   "compact decimal fraction only",
			locale: "pl",
			path:   `//ldml/numbers/decimalFormats[@numberSystem="latn"]/decimalFormatLength[@type="long"]/decimalFormat[@type="standard"]/pattern[@type="1000000"][@count="other"]`,
			value:  "0 miliona",
			want:   "〖❬1,1❭ miliona〗",
		},
		{
			name:   "misc at least",
			locale: "it",
			path:   `//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="atLeast"]`,
			value:  "≥{0}",
			want:   "〖≥❬99❭〗",
		},
		{
			name:   "misc range",
			locale: "it",
			path:   `//ldml/numbers/miscPatterns[@numberSystem="latn"]/pattern[@type="range"]`,
			value:  "{0}-{1}",
			want:   "〖❬99❭-❬144❭〗",
		},
		{
			name:   "decimal symbol",
			locale: "de",
			path:   `//ldml/numbers/symbols[@numberSystem="latn"]/decimal`,
			value:  ",",
			want:   "〖❬12❭,❬345❭〗",
		},
		{
			name:   "plural minimal pair one",
			locale: "en",
			path:   `//ldml/numbers/minimalPairs/pluralMinimalPairs[@count="one"]`,
			value:  "{0} day",
			want:   "〖❬1❭ day〗",
		},
		{
			name:   "plural minimal pair other",
			locale: "en",
			path:   `//ldml/numbers/minimalPairs/pluralMinimalPairs[@count="other"]`,
			value:  "{0} days",
			want:   "〖❬0❭ days〗",
		},
		{
			name:   "ordinal minimal pair few",
			locale: "en",
			path:   `//ldml/numbers/minimalPairs/ordinalMinimalPairs[@ordinal="few"]`,
			value:  "Take the {0}rd right.",
			want:   "〖Take the ❬3❭rd right.〗",
		},
	}

	engines := map[string]*Engine{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, ok := engines[tc.locale]
			if !ok {
				engine = testEngine(t, tc.locale)
				engines[tc.locale] = engine
			}
			assert.Equal(t, tc.want, renderNormalized(t, engine, tc.path, tc.value))
		})
	}
}

func TestRenderSuperscriptExponent(t *testing.T) {
	engine := testEngine(t, "en")
	markup, ok := engine.RenderExample(`//ldml/numbers/symbols[@numberSystem="latn"]/superscriptingExponent`, "×", TargetNative)
	require.True(t, ok)
	assert.Contains(t, markup, "<sup>5</sup>")
	assert.Equal(t, "〖❬1.23456789❭×10❬5❭〗", Normalize(markup, false))
}

func TestRenderDayPeriods(t *testing.T) {
	cases := []struct {
		name   string
		locale string
		path   string
		value  string
		want   string
	}{
		{"german morning", "de", formatAbbr + `morning1"]`, "morgens", "〖05:00 – 10:00⁻〗〖❬7:30 ❭morgens〗"},
		{"chinese prefix period", "zh", formatAbbr + `morning1"]`, "清晨", "〖05:00 – 08:00⁻〗〖清晨❬6:30❭〗"},
		{"night wraps midnight", "en", formatAbbr + `night1"]`, "at night", "〖00:00 – 06:00⁻; 21:00 – 24:00⁻〗〖❬3:00 ❭at night〗"},
		{"noon is a point", "en", formatAbbr + `noon"]`, "noon", "〖12:00〗〖❬12:00 ❭noon〗"},
		{"midnight is a point", "en", formatAbbr + `midnight"]`, "midnight", "〖00:00〗〖❬12:00 ❭midnight〗"},
		{"am uses hm", "en", formatAbbr + `am"]`, "AM", "〖00:00 – 12:00⁻〗〖❬6:00 ❭AM〗"},
		{"stand-alone shows range only", "en", standAlone + `night1"]`, "night", "〖00:00 – 06:00⁻; 21:00 – 24:00⁻〗"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := testEngine(t, tc.locale)
			markup, ok := engine.RenderExample(tc.path, tc.value, TargetNative)
			require.True(t, ok)
			assert.Equal(t, tc.want, Normalize(markup, false))
		})
	}
}

func TestRenderDates(t *testing.T) {
	engine := testEngine(t, "en")

	got := renderNormalized(t, engine,
		gregorian+`dateFormats/dateFormatLength[@type="short"]/dateFormat[@type="standard"]/pattern[@type="standard"]`,
		"M/d/yy")
	assert.Equal(t, "〖❬9❭/❬5❭/❬99❭〗", got)

	got = renderNormalized(t, engine,
		gregorian+`dateTimeFormats/dateTimeFormatLength[@type="medium"]/dateTimeFormat[@type="standard"]/pattern[@type="standard"]`,
		"{1}, {0}")
	assert.Equal(t, "〖❬Sep 5, 1999❭, ❬1:25:59 PM❭〗", got)

	got = renderNormalized(t, engine, `//ldml/units/durationUnit[@type="hms"]/durationUnitPattern`, "h:mm:ss")
	assert.Equal(t, "〖❬5❭:❬37❭:❬23❭〗", got)
}

func TestRenderEllipsis(t *testing.T) {
	engine := testEngine(t, "it")
	cases := map[string]string{
		"initial":      "〖…❬iappone❭〗",
		"medial":       "〖❬Svizzer❭…❬iappone❭〗",
		"final":        "〖❬Svizzer❭…〗",
		"word-initial": "〖… ❬Giappone❭〗",
		"word-medial":  "〖❬Svizzera❭ … ❬Giappone❭〗",
		"word-final":   "〖❬Svizzera❭ …〗",
	}
	for kind, want := range cases {
		t.Run(kind, func(t *testing.T) {
			path := ellipsisFmt + kind + `"]`
			value, ok := engine.Snapshot().Value(path)
			require.True(t, ok)
			assert.Equal(t, want, renderNormalized(t, engine, path, value))
		})
	}
}

func TestRenderLocaleNames(t *testing.T) {
	engine := testEngine(t, "it")

	got := renderNormalized(t, engine, `//ldml/localeDisplayNames/localeDisplayPattern/localePattern`, "{0} [{1}]")
	assert.Equal(t,
		"〖❬uzbeco❭ [❬Afghanistan❭]〗"+
			"〖❬uzbeco❭ [❬arabo, Afghanistan❭]〗"+
			"〖❬uzbeco❭ [❬arabo, Afghanistan, Cifre indo-arabe, Fuso orario: Ora Etiopia❭]〗",
		got)

	en := testEngine(t, "en")
	got = renderNormalized(t, en, `//ldml/localeDisplayNames/codePatterns/codePattern[@type="language"]`, "Language: {0}")
	assert.Equal(t, "〖Language: ❬Uzbek❭〗", got)
}

func TestRenderDisplayNameWithBackground(t *testing.T) {
	engine := testEngine(t, "en")

	r := engine.Inspect(`//ldml/localeDisplayNames/languages/language[@type="uz"]`, "Uzbek", TargetNative)
	require.NoError(t, r.Err)
	assert.True(t, r.Composed)
	assert.Equal(t, CategoryDisplayName, r.Category)
	assert.Equal(t, "〖❬Uzbek❭ (Afghanistan)〗", Normalize(Format(r.Example), false))

	got := renderNormalized(t, engine, `//ldml/localeDisplayNames/territories/territory[@type="CH"]`, "Switzerland")
	assert.Equal(t, "〖Uzbek (❬Switzerland❭)〗", got)
}

func TestRenderZones(t *testing.T) {
	engine := testEngine(t, "en")

	got := renderNormalized(t, engine, `//ldml/dates/timeZoneNames/fallbackFormat`, "{1} [{0}]")
	assert.Equal(t, "〖❬Central Time❭ [❬Cancun❭]〗", got)

	got = renderNormalized(t, engine, `//ldml/dates/timeZoneNames/zone[@type="America/Cancun"]/exemplarCity`, "Cancun")
	assert.Equal(t, "〖Central Time (❬Cancun❭)〗", got)

	r := engine.Inspect(`//ldml/dates/timeZoneNames/zone[@type="Etc/Unknown"]/exemplarCity`, "Unknown City", TargetNative)
	require.NoError(t, r.Err)
	assert.True(t, r.MissingBackground)
	assert.False(t, r.Composed)
	assert.Equal(t, "〖❬Unknown City❭〗", Normalize(Format(r.Example), false))
}

func TestRenderUnits(t *testing.T) {
	sv := testEngine(t, "sv")
	got := renderNormalized(t, sv, `//ldml/units/unitLength[@type="short"]/unit[@type="length-centimeter"]/unitPattern[@count="one"]`, "{0} cm")
	assert.Equal(t, "〖❬1❭ cm〗", got)

	en := testEngine(t, "en")
	cases := []struct {
		length UnitLength
		op     string
		count  PluralCategory
		want   string
	}{
		{UnitLong, "per", PluralOne, "〖❬1 meter❭ per ❬second❭〗"},
		{UnitShort, "per", PluralOne, "〖❬1 m❭/❬sec❭〗"},
		{UnitNarrow, "per", PluralOne, "〖❬1m❭/❬s❭〗"},
		{UnitLong, "per", PluralOther, "〖❬1.23 meters❭ per ❬second❭〗"},
		{UnitShort, "per", PluralOther, "〖❬1.23 m❭/❬sec❭〗"},
		{UnitNarrow, "per", PluralOther, "〖❬1.23m❭/❬s❭〗"},
		{UnitLong, "times", PluralOne, "〖❬1 newton❭⋅❬meter❭〗"},
		{UnitShort, "times", PluralOne, "〖❬1 N❭⋅❬m❭〗"},
		{UnitNarrow, "times", PluralOne, "〖❬1N❭⋅❬m❭〗"},
		{UnitLong, "times", PluralOther, "〖❬1.23 newton❭⋅❬meters❭〗"},
		{UnitShort, "times", PluralOther, "〖❬1.23 N❭⋅❬m❭〗"},
		{UnitNarrow, "times", PluralOther, "〖❬1.23N❭⋅❬m❭〗"},
	}
	for _, tc := range cases {
		t.Run(string(tc.length)+"-"+tc.op+"-"+string(tc.count), func(t *testing.T) {
			markup, ok := en.CompoundUnitExample(tc.length, tc.op, tc.count)
			require.True(t, ok)
			assert.Equal(t, tc.want, Normalize(markup, true))
		})
	}

	_, ok := en.CompoundUnitExample(UnitLong, "divided", PluralOne)
	assert.False(t, ok)
}

func TestRenderCurrencyNameInBackground(t *testing.T) {
	engine := testEngine(t, "en")
	markup, ok := engine.RenderExample(`//ldml/numbers/currencies/currency[@type="BMD"]/displayName[@count="one"]`, "Bermudan dollar", TargetNative)
	require.True(t, ok)
	assert.Contains(t, markup, "<span class='cldr_background'> </span>")
	assert.Equal(t, "〖❬1❭ Bermudan dollar〗", Normalize(markup, false))
}

func TestRenderSamplesFallBackToEnglish(t *testing.T) {
	sv := testEngine(t, "sv")
	path := ellipsisFmt + `final"]`
	value, ok := sv.Snapshot().Value(path)
	require.True(t, ok)
	assert.Equal(t, "〖❬Switzerlan❭…〗", renderNormalized(t, sv, path, value))

	it := testEngine(t, "it")
	path = `//ldml/units/unitLength[@type="long"]/compoundUnit[@type="per"]/compoundUnitPattern`
	value, ok = it.Snapshot().Value(path)
	require.True(t, ok)
	assert.Contains(t, renderNormalized(t, it, path, value), "meter")

	de := testEngine(t, "de")
	path = `//ldml/dates/timeZoneNames/fallbackFormat`
	value, ok = de.Snapshot().Value(path)
	require.True(t, ok)
	assert.Contains(t, renderNormalized(t, de, path, value), "Cancun")

	// without a reference snapshot nothing is borrowed
	bare, err := New(sv.Snapshot())
	require.NoError(t, err)
	_, ok = bare.RenderExample(ellipsisFmt+`final"]`, "{0}…", TargetNative)
	assert.False(t, ok)
}

func TestRenderEnglishTarget(t *testing.T) {
	engine := testEngine(t, "it")
	path := ellipsisFmt + `initial"]`

	native, ok := engine.RenderExample(path, "…{0}", TargetNative)
	require.True(t, ok)
	english, ok := engine.RenderExample(path, "…{0}", TargetEnglish)
	require.True(t, ok)

	assert.Equal(t, "〖…❬iappone❭〗", Normalize(native, false))
	assert.Equal(t, "〖…❬apan❭〗", Normalize(english, false))
}
