package examplegen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	hourFormatPath     = zoneNamesPrefix + `hourFormat`
	gmtFormatPath      = zoneNamesPrefix + `gmtFormat`
	fallbackFormatPath = zoneNamesPrefix + `fallbackFormat`
)

func hourFormatStrategy() Strategy {
	return Strategy{
		Name:      "hour-format",
		Category:  CategoryZoneFormat,
		Templates: templates(hourFormatPath),
		Render:    renderHourFormat,
		Enclose: func(*RenderContext, Path) (Enclosure, bool) {
			return Enclosure{Path: gmtFormatPath, Slot: 0}, true
		},
	}
}

func zoneFormatStrategy() Strategy {
	return Strategy{
		Name:     "zone-format",
		Category: CategoryZoneFormat,
		Templates: templates(
			gmtFormatPath,
			fallbackFormatPath,
			regionFormatPath,
			zoneNamesPrefix+`regionFormat[@type="*"]`,
		),
		Render: renderZoneFormat,
	}
}

func exemplarCityStrategy() Strategy {
	return Strategy{
		Name:      "exemplar-city",
		Category:  CategoryExemplarCity,
		Templates: templates(zoneNamesPrefix + `zone[@type="*"]/exemplarCity`),
		Render:    renderFragment,
		Enclose:   encloseExemplarCity,
	}
}

func zoneNameStrategy() Strategy {
	return Strategy{
		Name:     "zone-name",
		Category: CategoryZoneName,
		Templates: templates(
			zoneNamesPrefix+`metazone[@type="*"]/*/*`,
			zoneNamesPrefix+`zone[@type="*"]/*/*`,
		),
		Render:  renderFragment,
		Enclose: encloseZoneName,
	}
}

type gmtOffset struct {
	negative bool
	minutes  int
}

func parseOffset(raw string) (gmtOffset, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return gmtOffset{}, fmt.Errorf("%w: empty offset", ErrInvalidPattern)
	}
	off := gmtOffset{negative: raw[0] == '-'}
	raw = strings.TrimLeft(raw, "+-")
	hh, mm, _ := strings.Cut(raw, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return gmtOffset{}, fmt.Errorf("%w: offset %q", ErrInvalidPattern, raw)
	}
	m := 0
	if mm != "" {
		if m, err = strconv.Atoi(mm); err != nil {
			return gmtOffset{}, fmt.Errorf("%w: offset %q", ErrInvalidPattern, raw)
		}
	}
	off.minutes = h*60 + m
	return off, nil
}

func sampleOffsets(rc *RenderContext) []gmtOffset {
	raw := []string{"+03:00", "-05:00"}
	if rc.Supplemental != nil && len(rc.Supplemental.Samples.Offsets) > 0 {
		raw = rc.Supplemental.Samples.Offsets
	}
	out := make([]gmtOffset, 0, len(raw))
	for _, r := range raw {
		if off, err := parseOffset(r); err == nil {
			out = append(out, off)
		}
	}
	return out
}

// formatHourOffset renders an offset through an hour format such as
// "+HH:mm;-HH:mm".
func formatHourOffset(rc *RenderContext, hourFormat string, off gmtOffset) (Variant, error) {
	positive, negative, ok := strings.Cut(hourFormat, ";")
	if !ok {
		return nil, fmt.Errorf("%w: hour format %q needs two parts", ErrInvalidPattern, hourFormat)
	}
	pattern := positive
	if off.negative {
		pattern = negative
	}
	return rc.Dates.Format(pattern, atMinute(off.minutes)), nil
}

func renderHourFormat(rc *RenderContext, _ Path, value string) (Example, error) {
	var ex Example
	for _, off := range sampleOffsets(rc) {
		v, err := formatHourOffset(rc, value, off)
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

// sampleZone returns the zone, its city and its metazone used by zone
// format examples.
func sampleZone(rc *RenderContext) (zone, city, metazone string) {
	zone, metazone = "America/Cancun", "America_Central"
	if rc.Supplemental != nil {
		if rc.Supplemental.Samples.Zone != "" {
			zone = rc.Supplemental.Samples.Zone
		}
		if mz, ok := rc.Supplemental.MetazoneFor(zone); ok {
			metazone = mz
		} else if rc.Supplemental.Samples.Metazone != "" {
			metazone = rc.Supplemental.Samples.Metazone
		}
	}
	return zone, rc.Samples.ExemplarCity(zone), metazone
}

func renderZoneFormat(rc *RenderContext, p Path, value string) (Example, error) {
	switch p.Last().Name {
	case "gmtFormat":
		hourFormat, err := rc.Require(hourFormatPath)
		if err != nil {
			return Example{}, err
		}
		var ex Example
		for _, off := range sampleOffsets(rc) {
			offset, err := formatHourOffset(rc, hourFormat, off)
			if err != nil {
				return Example{}, err
			}
			v, err := fillPattern(value, offset.Substituted())
			if err != nil {
				return Example{}, err
			}
			ex.Add(v)
		}
		return ex, nil

	case "regionFormat":
		zone, _, _ := sampleZone(rc)
		territory, ok := rc.Supplemental.ZoneTerritory(zone)
		if !ok {
			return Example{}, fmt.Errorf("%w: no territory for %s", ErrMissingValue, zone)
		}
		name := orCode(found(rc.Samples.TerritoryName(territory)), territory)
		v, err := fillPattern(value, Variant{sub(name)})
		if err != nil {
			return Example{}, err
		}
		return Example{Variants: []Variant{v}}, nil

	case "fallbackFormat":
		_, city, metazone := sampleZone(rc)
		name, ok := rc.Samples.MetazoneName(metazone, "long", "generic")
		if !ok {
			return Example{}, fmt.Errorf("%w: no name for metazone %s", ErrMissingValue, metazone)
		}
		v, err := fillPattern(value, Variant{sub(city)}, Variant{sub(name)})
		if err != nil {
			return Example{}, err
		}
		return Example{Variants: []Variant{v}}, nil
	}
	return Example{}, nil
}

func encloseExemplarCity(rc *RenderContext, p Path) (Enclosure, bool) {
	zone := attrOf(p, "zone", "type")
	metazone, ok := rc.Supplemental.MetazoneFor(zone)
	if !ok {
		return Enclosure{}, false
	}
	name, ok := rc.Samples.MetazoneName(metazone, "long", "generic")
	if !ok {
		return Enclosure{}, false
	}
	return Enclosure{Path: fallbackFormatPath, Slot: 0, Args: map[int]string{1: name}}, true
}

func encloseZoneName(rc *RenderContext, p Path) (Enclosure, bool) {
	zone, ok := p.Find("zone", "type")
	if !ok {
		metazone := attrOf(p, "metazone", "type")
		if zone, ok = rc.Supplemental.GoldenZone(metazone); !ok {
			return Enclosure{}, false
		}
	}
	city := rc.Samples.ExemplarCity(zone)
	return Enclosure{Path: fallbackFormatPath, Slot: 1, Args: map[int]string{0: city}}, true
}
