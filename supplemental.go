package examplegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// SupplementalData is locale independent metadata consumed by the renderers.
type SupplementalData struct {
	DayPeriodRules  map[string]map[string]DayPeriodRule `json:"day_period_rules" yaml:"day_period_rules"`
	Metazones       map[string]MetazoneInfo             `json:"metazones" yaml:"metazones"`
	ZoneMetazones   map[string]string                   `json:"zone_metazones" yaml:"zone_metazones"`
	ZoneTerritories map[string]string                   `json:"zone_territories" yaml:"zone_territories"`
	CurrencyCodes   map[string]string                   `json:"currency_codes" yaml:"currency_codes"`
	Samples         SampleSet                           `json:"samples" yaml:"samples"`
}

// DayPeriodRule is either a point in time (At) or a half open range.
type DayPeriodRule struct {
	At     string `json:"at,omitempty" yaml:"at,omitempty"`
	From   string `json:"from,omitempty" yaml:"from,omitempty"`
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
}

// MetazoneInfo describes one metazone.
type MetazoneInfo struct {
	Golden string `json:"golden" yaml:"golden"`
}

// SampleSet lists the fill data shared by all locales.
type SampleSet struct {
	Currencies          []string            `json:"currencies" yaml:"currencies"`
	EllipsisTerritories []string            `json:"ellipsis_territories" yaml:"ellipsis_territories"`
	ListTerritories     []string            `json:"list_territories" yaml:"list_territories"`
	Locale              string              `json:"locale" yaml:"locale"`
	TimezoneTerritories map[string]string   `json:"timezone_territories" yaml:"timezone_territories"`
	Zone                string              `json:"zone" yaml:"zone"`
	Metazone            string              `json:"metazone" yaml:"metazone"`
	DateTime            string              `json:"date_time" yaml:"date_time"`
	Duration            string              `json:"duration" yaml:"duration"`
	Offsets             []string            `json:"offsets" yaml:"offsets"`
	CompoundUnits       map[string][]string `json:"compound_units" yaml:"compound_units"`
	PerUnitNumerator    string              `json:"per_unit_numerator" yaml:"per_unit_numerator"`
}

// TimeRange is a span of the day in minutes, End is exclusive. A point rule
// has Start == End and Point set.
type TimeRange struct {
	Start int
	End   int
	Point bool
}

// Midpoint returns the minute in the middle of the range.
func (r TimeRange) Midpoint() int {
	if r.Point {
		return r.Start
	}
	return r.Start + (r.End-r.Start)/2
}

func parseClock(raw string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidPattern, raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidPattern, raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time %q", ErrInvalidPattern, raw)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time out of range %q", ErrInvalidPattern, raw)
	}
	return h*60 + m, nil
}

// DayPeriodRanges returns the ranges covered by period in locale, sorted by
// start. A range wrapping midnight is split in two.
func (s *SupplementalData) DayPeriodRanges(locale, period string) ([]TimeRange, error) {
	switch period {
	case "am":
		return []TimeRange{{Start: 0, End: 12 * 60}}, nil
	case "pm":
		return []TimeRange{{Start: 12 * 60, End: 24 * 60}}, nil
	}

	rule, ok := s.dayPeriodRule(locale, period)
	if !ok {
		return nil, fmt.Errorf("%w: no day period rule %s for %s", ErrMissingValue, period, locale)
	}

	if rule.At != "" {
		at, err := parseClock(rule.At)
		if err != nil {
			return nil, err
		}
		return []TimeRange{{Start: at, End: at, Point: true}}, nil
	}

	from, err := parseClock(rule.From)
	if err != nil {
		return nil, err
	}
	before, err := parseClock(rule.Before)
	if err != nil {
		return nil, err
	}
	if from < before {
		return []TimeRange{{Start: from, End: before}}, nil
	}

	ranges := []TimeRange{{Start: from, End: 24 * 60}}
	if before > 0 {
		ranges = append(ranges, TimeRange{Start: 0, End: before})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return ranges, nil
}

func (s *SupplementalData) dayPeriodRule(locale, period string) (DayPeriodRule, bool) {
	if s == nil {
		return DayPeriodRule{}, false
	}
	for _, candidate := range supplementalCandidates(locale) {
		if rules, ok := s.DayPeriodRules[candidate]; ok {
			rule, found := rules[period]
			return rule, found
		}
	}
	return DayPeriodRule{}, false
}

// DayPeriodAt returns the flexible day period covering minute in locale.
func (s *SupplementalData) DayPeriodAt(locale string, minute int) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, candidate := range supplementalCandidates(locale) {
		rules, ok := s.DayPeriodRules[candidate]
		if !ok {
			continue
		}
		names := make([]string, 0, len(rules))
		for name := range rules {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if rules[name].At != "" {
				continue
			}
			ranges, err := s.DayPeriodRanges(candidate, name)
			if err != nil {
				continue
			}
			for _, r := range ranges {
				if minute >= r.Start && minute < r.End {
					return name, true
				}
			}
		}
		return "", false
	}
	return "", false
}

func supplementalCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := []string{locale}
	out = append(out, localeParentChain(locale)...)
	if lang := localeLanguage(locale); lang != locale {
		out = append(out, lang)
	}
	return append(out, RootLocale)
}

// CurrencyFor returns the default currency code for locale. Explicit
// entries win, otherwise the locale's region decides.
func (s *SupplementalData) CurrencyFor(locale string) (string, bool) {
	if s != nil {
		for _, candidate := range supplementalCandidates(locale) {
			if code, ok := s.CurrencyCodes[candidate]; ok && code != "" {
				return code, true
			}
		}
	}
	tag := localeTag(locale)
	region, _ := tag.Region()
	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", false
	}
	return unit.String(), true
}

// GoldenZone returns the representative zone of metazone.
func (s *SupplementalData) GoldenZone(metazone string) (string, bool) {
	if s == nil {
		return "", false
	}
	info, ok := s.Metazones[metazone]
	if !ok || info.Golden == "" {
		return "", false
	}
	return info.Golden, true
}

// MetazoneFor returns the metazone a zone currently uses.
func (s *SupplementalData) MetazoneFor(zone string) (string, bool) {
	if s == nil {
		return "", false
	}
	mz, ok := s.ZoneMetazones[zone]
	return mz, ok && mz != ""
}

// ZoneTerritory returns the territory of zone.
func (s *SupplementalData) ZoneTerritory(zone string) (string, bool) {
	if s == nil {
		return "", false
	}
	territory, ok := s.ZoneTerritories[zone]
	return territory, ok && territory != ""
}

// SampleTime returns the date time used for date and time patterns.
func (s *SupplementalData) SampleTime() time.Time {
	if s != nil && s.Samples.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, s.Samples.DateTime); err == nil {
			return t.UTC()
		}
	}
	return time.Date(1999, time.September, 5, 13, 25, 59, 0, time.UTC)
}

// SampleDuration returns the clock values used for duration patterns.
func (s *SupplementalData) SampleDuration() time.Time {
	raw := "5:37:23"
	if s != nil && s.Samples.Duration != "" {
		raw = s.Samples.Duration
	}
	parts := strings.Split(raw, ":")
	values := [3]int{}
	for i := 0; i < len(parts) && i < 3; i++ {
		values[i], _ = strconv.Atoi(parts[i])
	}
	return time.Date(2000, time.January, 1, values[0], values[1], values[2], 0, time.UTC)
}

// CompoundOperands returns the numerator and denominator units for op.
func (s *SupplementalData) CompoundOperands(op string) (string, string, bool) {
	if s == nil {
		return "", "", false
	}
	units := s.Samples.CompoundUnits[op]
	if len(units) < 2 {
		return "", "", false
	}
	return units[0], units[1], true
}

// ExemplarFromZone derives a city name from a zone id: America/Cancun -> Cancun.
func ExemplarFromZone(zone string) string {
	if idx := strings.LastIndex(zone, "/"); idx >= 0 {
		zone = zone[idx+1:]
	}
	return strings.ReplaceAll(zone, "_", " ")
}
