package examplegen

import (
	"fmt"
	"strings"
)

func dayPeriodStrategy() Strategy {
	return Strategy{
		Name:      "day-period",
		Category:  CategoryDayPeriod,
		Templates: templates(gregorianPrefix + `dayPeriods/dayPeriodContext[@type="*"]/dayPeriodWidth[@type="*"]/dayPeriod[@type="*"]`),
		Render:    renderDayPeriod,
	}
}

func datePatternStrategy() Strategy {
	return Strategy{
		Name:     "date-pattern",
		Category: CategoryDatePattern,
		Templates: templates(
			gregorianPrefix+`dateFormats/dateFormatLength[@type="*"]/dateFormat[@type="*"]/pattern[@type="*"]`,
			gregorianPrefix+`timeFormats/timeFormatLength[@type="*"]/timeFormat[@type="*"]/pattern[@type="*"]`,
			gregorianPrefix+`dateTimeFormats/availableFormats/dateFormatItem[@id="*"]`,
		),
		Render: func(rc *RenderContext, _ Path, value string) (Example, error) {
			v := rc.Dates.Format(value, rc.Supplemental.SampleTime())
			return Example{Variants: []Variant{v}}, nil
		},
	}
}

func dateTimePatternStrategy() Strategy {
	return Strategy{
		Name:      "date-time-pattern",
		Category:  CategoryDateTimePattern,
		Templates: templates(gregorianPrefix + `dateTimeFormats/dateTimeFormatLength[@type="*"]/dateTimeFormat[@type="*"]/pattern[@type="*"]`),
		Render:    renderDateTimePattern,
	}
}

// dayPeriodRange renders the ranges of a day period as background text,
// e.g. "00:00 – 06:00⁻; 21:00 – 24:00⁻". The superscript minus marks an
// exclusive end.
func dayPeriodRange(ranges []TimeRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.Point {
			parts = append(parts, clock(r.Start))
			continue
		}
		parts = append(parts, clock(r.Start)+" – "+clock(r.End)+"⁻")
	}
	return strings.Join(parts, "; ")
}

func renderDayPeriod(rc *RenderContext, p Path, value string) (Example, error) {
	period := attrOf(p, "dayPeriod", "type")
	ranges, err := rc.Supplemental.DayPeriodRanges(rc.Locale(), period)
	if err != nil {
		return Example{}, err
	}

	var ex Example
	ex.Add(Variant{bg(dayPeriodRange(ranges))})

	if attrOf(p, "dayPeriodContext", "type") != "format" {
		return ex, nil
	}

	id, fallback := "Bhm", "h:mm B"
	if period == "am" || period == "pm" {
		id, fallback = "hm", "h:mm a"
	}
	pattern, ok := rc.Value(gregorianPrefix + `dateTimeFormats/availableFormats/dateFormatItem[@id="` + id + `"]`)
	if !ok {
		pattern = fallback
	}
	// the time and the pattern text are sample data here, only the
	// period name under review stays literal
	opts := dateOptions{
		literalKind: SpanSubstituted,
		override:    map[rune]string{'a': value, 'b': value, 'B': value},
	}
	ex.Add(rc.Dates.format(pattern, atMinute(ranges[0].Midpoint()), opts))
	return ex, nil
}

func renderDateTimePattern(rc *RenderContext, p Path, value string) (Example, error) {
	length := attrOf(p, "dateTimeFormatLength", "type")
	sample := rc.Supplemental.SampleTime()

	datePattern, err := rc.Require(gregorianPrefix + `dateFormats/dateFormatLength[@type="` + length + `"]/dateFormat[@type="standard"]/pattern[@type="standard"]`)
	if err != nil {
		return Example{}, err
	}
	timePattern, err := rc.Require(gregorianPrefix + `timeFormats/timeFormatLength[@type="` + length + `"]/timeFormat[@type="standard"]/pattern[@type="standard"]`)
	if err != nil {
		return Example{}, err
	}

	date := rc.Dates.Format(datePattern, sample).Substituted()
	clockTime := rc.Dates.Format(timePattern, sample).Substituted()
	v, err := fillQuotedPattern(value, clockTime, date)
	if err != nil {
		return Example{}, fmt.Errorf("date time pattern %q: %w", value, err)
	}
	return Example{Variants: []Variant{v}}, nil
}
