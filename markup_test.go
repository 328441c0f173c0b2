package examplegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMarksSpans(t *testing.T) {
	ex := Example{Variants: []Variant{
		{sub("1"), lit(" "), lit("Bermudan dollar")},
		{bg("05:00 – 10:00⁻")},
	}}
	got := Format(ex)
	assert.Equal(t,
		"<div class='cldr_example'><span class='cldr_substituted'>1</span> Bermudan dollar</div>"+
			"<div class='cldr_example'><span class='cldr_background'>05:00 – 10:00⁻</span></div>",
		got)
}

func TestFormatEscapesAndMergesAdjacentSpans(t *testing.T) {
	ex := Example{Variants: []Variant{{sub("a<"), sub("b"), lit("&")}}}
	assert.Equal(t, "<div class='cldr_example'><span class='cldr_substituted'>a&lt;b</span>&amp;</div>", Format(ex))
}

func TestFormatSkipsEmptyVariants(t *testing.T) {
	assert.Equal(t, "", Format(Example{Variants: []Variant{{}, nil}}))
	assert.True(t, Example{Variants: []Variant{{}}}.Empty())
}

func TestFormatSuperscript(t *testing.T) {
	ex := Example{Variants: []Variant{variantOf(sub("1.23456789"), lit("x10"), Span{Kind: SpanSubstituted, Text: "5", Superscript: true})}}
	assert.Equal(t,
		"<div class='cldr_example'><span class='cldr_substituted'>1.23456789</span>x10<span class='cldr_substituted'><sup>5</sup></span></div>",
		Format(ex))
}

func TestNormalize(t *testing.T) {
	markup := "<div class='cldr_example'><span class='cldr_background'>05:00 – 10:00⁻</span></div>" +
		"<div class='cldr_example'><span class='cldr_substituted'>7:30 </span>morgens</div>"

	assert.Equal(t, "〖05:00 – 10:00⁻〗〖❬7:30 ❭morgens〗", Normalize(markup, false))
	assert.Equal(t, "〖05:00 – 10:00⁻❬7:30 ❭morgens〗", Normalize(markup, true))
}

func TestNormalizeUnescapesEntities(t *testing.T) {
	markup := "<div class='cldr_example'><span class='cldr_substituted'>a&lt;b</span> &amp; c</div>"
	assert.Equal(t, "〖❬a<b❭ & c〗", Normalize(markup, false))
}

func TestNormalizeIgnoresUnknownMarkup(t *testing.T) {
	assert.Equal(t, "plain bold", Normalize("plain <b>bold</b>", false))
	assert.Equal(t, "", Normalize("", true))
}

func TestFailureFragment(t *testing.T) {
	got := failureFragment(errors.New("bad <pattern>"))
	assert.True(t, strings.HasPrefix(got, "<div class='cldr_example'><span class='cldr_failure'>"))
	assert.Contains(t, got, FailureMarker+": bad &lt;pattern&gt;")
	assert.Equal(t, "〖"+FailureMarker+": bad <pattern>〗", Normalize(got, false))
}
