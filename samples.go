package examplegen

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
)

// NumberSample is a sample number together with the plural category it
// selects. Decimal keeps the visible fraction digits, e.g. "0.00".
type NumberSample struct {
	Category PluralCategory
	Decimal  string
}

// currency and unit samples try these first so that both integer-like and
// fractional values are shown
var decimalCandidates = []string{"1.23", "0.00", "2.34", "3.45", "4.56", "5.67"}

var integerCandidates = func() []string {
	out := []string{"1", "0"}
	for n := 2; n <= 200; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}()

// SampleProvider supplies fill values for one snapshot. Names and unit
// patterns the snapshot lacks are read from the reference snapshot, plural
// rules always follow the snapshot's own locale.
type SampleProvider struct {
	snap Snapshot
	ref  Snapshot
	supp *SupplementalData
	tag  language.Tag
}

// newSampleProvider returns a provider over snap. ref may be nil or snap
// itself, in which case there is no fallback.
func newSampleProvider(snap, ref Snapshot, supp *SupplementalData) *SampleProvider {
	if ref == snap {
		ref = nil
	}
	return &SampleProvider{snap: snap, ref: ref, supp: supp, tag: localeTag(snap.Locale())}
}

// Category returns the cardinal category of a decimal string.
func (p *SampleProvider) Category(decimal string) PluralCategory {
	return cardinalCategory(p.tag, decimal)
}

// CountSamples returns up to limit samples for category. Decimal
// candidates come first, integers are used only when no decimal matches.
func (p *SampleProvider) CountSamples(category PluralCategory, limit int) []NumberSample {
	if limit <= 0 {
		limit = 1
	}
	pick := func(candidates []string) []NumberSample {
		var out []NumberSample
		for _, candidate := range candidates {
			if p.Category(candidate) != category {
				continue
			}
			out = append(out, NumberSample{Category: category, Decimal: candidate})
			if len(out) == limit {
				break
			}
		}
		return out
	}
	if out := pick(decimalCandidates); len(out) > 0 {
		return out
	}
	return pick(integerCandidates)
}

// FirstSample returns the first sample for category.
func (p *SampleProvider) FirstSample(category PluralCategory) (NumberSample, bool) {
	samples := p.CountSamples(category, 1)
	if len(samples) == 0 {
		return NumberSample{}, false
	}
	return samples[0], true
}

// IntegerSample returns the smallest integer candidate in category.
func (p *SampleProvider) IntegerSample(category PluralCategory) (NumberSample, bool) {
	for _, candidate := range integerCandidates {
		if p.Category(candidate) == category {
			return NumberSample{Category: category, Decimal: candidate}, true
		}
	}
	return NumberSample{}, false
}

// CompactSample picks the number shown in a compact pattern with the given
// count of integer digits: integers in [10^(digits-1), 10^digits) first,
// then the same integers with one fraction digit. When nothing matches
// the first integer of the range is used.
func (p *SampleProvider) CompactSample(digits int, category PluralCategory) NumberSample {
	if digits <= 0 {
		digits = 1
	}
	low := 1
	for i := 1; i < digits; i++ {
		low *= 10
	}
	high := low * 10
	if high-low > 200 {
		high = low + 200
	}
	for n := low; n < high; n++ {
		candidate := strconv.Itoa(n)
		if p.Category(candidate) == category {
			return NumberSample{Category: category, Decimal: candidate}
		}
	}
	for n := low; n < high; n++ {
		candidate := strconv.Itoa(n) + ".1"
		if p.Category(candidate) == category {
			return NumberSample{Category: category, Decimal: candidate}
		}
	}
	return NumberSample{Category: category, Decimal: strconv.Itoa(low)}
}

// OrdinalSample returns the smallest n in 1..200 with the ordinal category.
func (p *SampleProvider) OrdinalSample(category PluralCategory) (int, bool) {
	for n := 1; n <= 200; n++ {
		if ordinalCategory(p.tag, n) == category {
			return n, true
		}
	}
	return 0, false
}

func (p *SampleProvider) value(path string) (string, bool) {
	if value, ok := p.snap.Value(path); ok && value != "" {
		return value, true
	}
	if p.ref == nil {
		return "", false
	}
	value, ok := p.ref.Value(path)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// TerritoryName returns the display name of a region code.
func (p *SampleProvider) TerritoryName(code string) (string, bool) {
	return p.value(`//ldml/localeDisplayNames/territories/territory[@type="` + code + `"]`)
}

// LanguageName returns the display name of a language code.
func (p *SampleProvider) LanguageName(code string) (string, bool) {
	return p.value(`//ldml/localeDisplayNames/languages/language[@type="` + code + `"]`)
}

// ScriptName returns the display name of a script code.
func (p *SampleProvider) ScriptName(code string) (string, bool) {
	return p.value(`//ldml/localeDisplayNames/scripts/script[@type="` + code + `"]`)
}

// KeyName returns the display name of a locale extension key.
func (p *SampleProvider) KeyName(key string) (string, bool) {
	return p.value(`//ldml/localeDisplayNames/keys/key[@type="` + key + `"]`)
}

// TypeName returns the display name of a locale extension value.
func (p *SampleProvider) TypeName(key, typ string) (string, bool) {
	return p.value(`//ldml/localeDisplayNames/types/type[@key="` + key + `"][@type="` + typ + `"]`)
}

// ExemplarCity returns the city name of zone, derived from the id when the
// snapshot has none.
func (p *SampleProvider) ExemplarCity(zone string) string {
	if city, ok := p.value(zoneNamesPrefix + `zone[@type="` + zone + `"]/exemplarCity`); ok {
		return city
	}
	return ExemplarFromZone(zone)
}

// MetazoneName returns a metazone name, falling back from the requested
// kind to generic and standard.
func (p *SampleProvider) MetazoneName(metazone, length, kind string) (string, bool) {
	for _, k := range []string{kind, "generic", "standard"} {
		if name, ok := p.value(zoneNamesPrefix + `metazone[@type="` + metazone + `"]/` + length + "/" + k); ok {
			return name, true
		}
	}
	return "", false
}

// CurrencyDisplayName returns the name of code for category, falling back
// to other and then to the count-less name.
func (p *SampleProvider) CurrencyDisplayName(code string, category PluralCategory) (string, bool) {
	base := `//ldml/numbers/currencies/currency[@type="` + code + `"]/displayName`
	for _, candidate := range []string{
		base + `[@count="` + string(category) + `"]`,
		base + `[@count="other"]`,
		base,
	} {
		if name, ok := p.value(candidate); ok {
			return name, true
		}
	}
	return "", false
}

// UnitPattern returns the count pattern of unit at length, falling back to other.
func (p *SampleProvider) UnitPattern(length UnitLength, unit string, category PluralCategory) (string, bool) {
	base := unitPath(length, unit) + "/unitPattern"
	if pattern, ok := p.value(base + `[@count="` + string(category) + `"]`); ok {
		return pattern, true
	}
	return p.value(base + `[@count="other"]`)
}

func unitPath(length UnitLength, unit string) string {
	return fmt.Sprintf(`//ldml/units/unitLength[@type="%s"]/unit[@type="%s"]`, length, unit)
}

// SampleLocale is the locale id used for locale display examples.
func (p *SampleProvider) SampleLocale() string {
	if p.supp != nil && p.supp.Samples.Locale != "" {
		return p.supp.Samples.Locale
	}
	return "uz-Arab-AF-u-nu-arabext-tz-etadd"
}
