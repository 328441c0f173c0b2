package examplegen

import (
	"strconv"
	"strings"
	"time"
)

const (
	gregorianPrefix = `//ldml/dates/calendars/calendar[@type="gregorian"]/`
	zoneNamesPrefix = `//ldml/dates/timeZoneNames/`
)

var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DateFormatter renders date pattern skeletons like "EEEE, MMMM d, y"
// against a sample time, looking names up in the snapshot.
type DateFormatter struct {
	snap   Snapshot
	supp   *SupplementalData
	locale string
}

func newDateFormatter(snap Snapshot, supp *SupplementalData) *DateFormatter {
	return &DateFormatter{snap: snap, supp: supp, locale: snap.Locale()}
}

// dateOptions tweaks how a pattern is rendered.
type dateOptions struct {
	// literalKind is the span kind for quoted and punctuation text
	literalKind SpanKind
	// override replaces the output of a field letter with fixed text,
	// rendered as a literal span
	override map[rune]string
}

type dateToken struct {
	field rune
	width int
	text  string
}

func tokenizeDatePattern(pattern string) []dateToken {
	var (
		tokens  []dateToken
		literal strings.Builder
		inQuote bool
		runes   = []rune(pattern)
	)
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		tokens = append(tokens, dateToken{text: literal.String()})
		literal.Reset()
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i++
				continue
			}
			inQuote = !inQuote
			continue
		}
		if inQuote || !isPatternLetter(r) {
			literal.WriteRune(r)
			continue
		}
		flush()
		width := 1
		for i+1 < len(runes) && runes[i+1] == r {
			width++
			i++
		}
		tokens = append(tokens, dateToken{field: r, width: width})
	}
	flush()
	return tokens
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Format renders pattern at t. Every field becomes a substituted span.
func (f *DateFormatter) Format(pattern string, t time.Time) Variant {
	return f.format(pattern, t, dateOptions{literalKind: SpanLiteral})
}

func (f *DateFormatter) format(pattern string, t time.Time, opts dateOptions) Variant {
	var out Variant
	for _, token := range tokenizeDatePattern(pattern) {
		if token.field == 0 {
			out = append(out, Span{Kind: opts.literalKind, Text: token.text})
			continue
		}
		if text, ok := opts.override[token.field]; ok {
			out = append(out, lit(text))
			continue
		}
		text, known := f.field(token, t)
		if !known {
			out = append(out, Span{Kind: opts.literalKind, Text: text})
			continue
		}
		out = append(out, sub(text))
	}
	return variantOf(out...)
}

func (f *DateFormatter) field(token dateToken, t time.Time) (string, bool) {
	switch token.field {
	case 'G':
		era := "1"
		if t.Year() <= 0 {
			era = "0"
		}
		element := "eraAbbr"
		if token.width == 4 {
			element = "eraNames"
		} else if token.width == 5 {
			element = "eraNarrow"
		}
		if name, ok := f.lookup(gregorianPrefix+"eras/"+element+`/era[@type="`+era+`"]`, gregorianPrefix+`eras/eraAbbr/era[@type="`+era+`"]`); ok {
			return name, true
		}
		if era == "1" {
			return "AD", true
		}
		return "BC", true
	case 'y', 'u':
		year := t.Year()
		if token.width == 2 {
			return pad(year%100, 2), true
		}
		return pad(year, token.width), true
	case 'M', 'L':
		context := "format"
		if token.field == 'L' {
			context = "stand-alone"
		}
		month := int(t.Month())
		if token.width <= 2 {
			return pad(month, token.width), true
		}
		if name, ok := f.name("months", "monthContext", "monthWidth", "month", context, widthName(token.width), strconv.Itoa(month)); ok {
			return name, true
		}
		return pad(month, 2), true
	case 'd':
		return pad(t.Day(), token.width), true
	case 'E', 'c', 'e':
		context := "format"
		if token.field == 'c' {
			context = "stand-alone"
		}
		if (token.field == 'c' || token.field == 'e') && token.width <= 2 {
			return strconv.Itoa(int(t.Weekday()) + 1), true
		}
		width := "abbreviated"
		switch token.width {
		case 4:
			width = "wide"
		case 5:
			width = "narrow"
		case 6:
			width = "short"
		}
		if name, ok := f.name("days", "dayContext", "dayWidth", "day", context, width, weekdayKeys[t.Weekday()]); ok {
			return name, true
		}
		return t.Weekday().String()[:3], true
	case 'Q', 'q':
		quarter := (int(t.Month())-1)/3 + 1
		context := "format"
		if token.field == 'q' {
			context = "stand-alone"
		}
		if token.width <= 2 {
			return pad(quarter, token.width), true
		}
		if name, ok := f.name("quarters", "quarterContext", "quarterWidth", "quarter", context, widthName(token.width), strconv.Itoa(quarter)); ok {
			return name, true
		}
		return "Q" + strconv.Itoa(quarter), true
	case 'h':
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}
		return pad(hour, token.width), true
	case 'H':
		return pad(t.Hour(), token.width), true
	case 'K':
		return pad(t.Hour()%12, token.width), true
	case 'k':
		hour := t.Hour()
		if hour == 0 {
			hour = 24
		}
		return pad(hour, token.width), true
	case 'm':
		return pad(t.Minute(), token.width), true
	case 's':
		return pad(t.Second(), token.width), true
	case 'S':
		frac := strconv.Itoa(t.Nanosecond() / 1e6)
		for len(frac) < 3 {
			frac = "0" + frac
		}
		if token.width < len(frac) {
			frac = frac[:token.width]
		}
		return frac, true
	case 'a':
		period := "am"
		if t.Hour() >= 12 {
			period = "pm"
		}
		if name, ok := f.dayPeriodName(period, dayPeriodWidth(token.width)); ok {
			return name, true
		}
		return strings.ToUpper(period), true
	case 'b', 'B':
		minute := t.Hour()*60 + t.Minute()
		period, ok := f.supp.DayPeriodAt(f.locale, minute)
		if !ok {
			period = "am"
			if t.Hour() >= 12 {
				period = "pm"
			}
		}
		if name, ok := f.dayPeriodName(period, dayPeriodWidth(token.width)); ok {
			return name, true
		}
		return period, true
	case 'z', 'v', 'V', 'O', 'Z', 'X', 'x':
		if name, ok := f.snap.Value(zoneNamesPrefix + "gmtZeroFormat"); ok {
			return name, true
		}
		return "GMT", true
	default:
		return strings.Repeat(string(token.field), token.width), false
	}
}

func widthName(width int) string {
	switch width {
	case 3:
		return "abbreviated"
	case 5:
		return "narrow"
	default:
		return "wide"
	}
}

func dayPeriodWidth(width int) string {
	switch width {
	case 4:
		return "wide"
	case 5:
		return "narrow"
	default:
		return "abbreviated"
	}
}

// name looks up a calendar name, trying the other context and the wide and
// abbreviated widths when the requested one is missing.
func (f *DateFormatter) name(section, contextEl, widthEl, itemEl, context, width, key string) (string, bool) {
	contexts := []string{context, "format", "stand-alone"}
	widths := []string{width, "wide", "abbreviated"}
	for _, c := range contexts {
		for _, w := range widths {
			path := gregorianPrefix + section + "/" + contextEl + `[@type="` + c + `"]/` + widthEl + `[@type="` + w + `"]/` + itemEl + `[@type="` + key + `"]`
			if value, ok := f.snap.Value(path); ok && value != "" {
				return value, true
			}
		}
	}
	return "", false
}

func (f *DateFormatter) dayPeriodName(period, width string) (string, bool) {
	return f.name("dayPeriods", "dayPeriodContext", "dayPeriodWidth", "dayPeriod", "format", width, period)
}

func (f *DateFormatter) lookup(paths ...string) (string, bool) {
	for _, path := range paths {
		if value, ok := f.snap.Value(path); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// clock formats minutes after midnight as HH:mm, 1440 becomes 24:00.
func clock(minutes int) string {
	return pad(minutes/60, 2) + ":" + pad(minutes%60, 2)
}

// atMinute returns the sample day at the given minute.
func atMinute(minute int) time.Time {
	return time.Date(2000, time.January, 1, minute/60, minute%60, 0, 0, time.UTC)
}
