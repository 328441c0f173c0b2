package examplegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const symbolsPrefix = `//ldml/numbers/symbols[@numberSystem="latn"]/`

// NumberSymbols are the locale specific characters used when formatting numbers.
type NumberSymbols struct {
	Decimal       string
	Group         string
	Minus         string
	Plus          string
	Percent       string
	PerMille      string
	Exponential   string
	Superscript   string
	Approximately string
}

// NumberFormatter formats sample numbers with the symbols of one snapshot.
// Symbols missing from the snapshot are taken from golang.org/x/text.
type NumberFormatter struct {
	snap    Snapshot
	tag     language.Tag
	printer *message.Printer
	symbols NumberSymbols
}

func newNumberFormatter(snap Snapshot) *NumberFormatter {
	tag := localeTag(snap.Locale())
	f := &NumberFormatter{
		snap:    snap,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	f.symbols = f.loadSymbols()
	return f
}

func (f *NumberFormatter) loadSymbols() NumberSymbols {
	decimal, group := f.xtextSeparators()
	read := func(name, fallback string) string {
		if value, ok := f.snap.Value(symbolsPrefix + name); ok && value != "" {
			return value
		}
		return fallback
	}
	return NumberSymbols{
		Decimal:       read("decimal", decimal),
		Group:         read("group", group),
		Minus:         read("minusSign", "-"),
		Plus:          read("plusSign", "+"),
		Percent:       read("percentSign", "%"),
		PerMille:      read("perMille", "‰"),
		Exponential:   read("exponential", "E"),
		Superscript:   read("superscriptingExponent", "×"),
		Approximately: read("approximatelySign", "~"),
	}
}

// xtextSeparators derives decimal and group separators from x/text output
// for 1234.5.
func (f *NumberFormatter) xtextSeparators() (string, string) {
	formatted := []rune(f.printer.Sprintf("%v", number.Decimal(1234.5, number.MinFractionDigits(1))))
	decimal, group := ".", ","
	var digits []int
	for i, r := range formatted {
		if unicode.IsDigit(r) {
			digits = append(digits, i)
		}
	}
	if len(digits) != 5 {
		return decimal, group
	}
	if digits[1] > digits[0]+1 {
		group = string(formatted[digits[0]+1 : digits[1]])
	} else {
		group = ""
	}
	if digits[4] > digits[3]+1 {
		decimal = string(formatted[digits[3]+1 : digits[4]])
	}
	return decimal, group
}

// Symbols returns the resolved number symbols.
func (f *NumberFormatter) Symbols() NumberSymbols {
	return f.symbols
}

// FormatDecimal renders a plain decimal string such as "1234.50" with the
// locale's separators, keeping every fraction digit.
func (f *NumberFormatter) FormatDecimal(decimal string) string {
	negative := strings.HasPrefix(decimal, "-")
	decimal = strings.TrimPrefix(decimal, "-")
	intPart, fracPart, hasFrac := strings.Cut(decimal, ".")
	out := groupDigits(intPart, f.symbols.Group, 3, 3)
	if hasFrac {
		out += f.symbols.Decimal + fracPart
	}
	if negative {
		out = f.symbols.Minus + out
	}
	return out
}

func groupDigits(digits, separator string, primary, secondary int) string {
	if separator == "" || primary <= 0 || len(digits) <= primary {
		return digits
	}
	if secondary <= 0 {
		secondary = primary
	}
	head := digits[:len(digits)-primary]
	tail := digits[len(digits)-primary:]
	var groups []string
	for len(head) > secondary {
		groups = append([]string{head[len(head)-secondary:]}, groups...)
		head = head[:len(head)-secondary]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, separator)
}

// CurrencySymbol returns the symbol for code from the snapshot, falling back
// to golang.org/x/text and finally to the code itself.
func (f *NumberFormatter) CurrencySymbol(code string) string {
	if value, ok := f.snap.Value(`//ldml/numbers/currencies/currency[@type="` + code + `"]/symbol`); ok && value != "" {
		return value
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	full := f.printer.Sprintf("%v", currency.Symbol(unit.Amount(1.0)))
	symbol := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, full))
	if symbol == "" {
		return unit.String()
	}
	return symbol
}

// numberPattern is a parsed decimal format pattern such as "#,##0.00 ¤".
type numberPattern struct {
	posPrefix, posSuffix string
	negPrefix, negSuffix string
	minInt               int
	minFrac, maxFrac     int
	primaryGroup         int
	secondaryGroup       int
	zeros                int
	scientific           bool
	minExp               int
	multiplier           float64
}

func parseNumberPattern(pattern string) (numberPattern, error) {
	positive, negative, hasNegative := splitSubpatterns(pattern)

	np := numberPattern{multiplier: 1}
	prefix, body, suffix, err := splitAffixes(positive)
	if err != nil {
		return numberPattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	np.posPrefix, np.posSuffix = prefix, suffix
	if hasNegative {
		negPrefix, _, negSuffix, err := splitAffixes(negative)
		if err != nil {
			return numberPattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		np.negPrefix, np.negSuffix = negPrefix, negSuffix
	} else {
		np.negPrefix, np.negSuffix = "-"+prefix, suffix
	}

	mantissa := body
	if idx := strings.IndexRune(body, 'E'); idx >= 0 {
		np.scientific = true
		np.minExp = strings.Count(body[idx:], "0")
		mantissa = body[:idx]
	}
	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	np.minInt = strings.Count(intPart, "0")
	np.zeros = np.minInt
	np.minFrac = strings.Count(fracPart, "0")
	np.maxFrac = np.minFrac + strings.Count(fracPart, "#")

	if last := strings.LastIndex(intPart, ","); last >= 0 {
		np.primaryGroup = len(intPart) - last - 1
		if prev := strings.LastIndex(intPart[:last], ","); prev >= 0 {
			np.secondaryGroup = last - prev - 1
		}
	}

	if strings.ContainsRune(prefix+suffix, '%') {
		np.multiplier = 100
	} else if strings.ContainsRune(prefix+suffix, '‰') {
		np.multiplier = 1000
	}
	return np, nil
}

func splitSubpatterns(pattern string) (string, string, bool) {
	inQuote := false
	for i, r := range pattern {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == ';' && !inQuote:
			return pattern[:i], pattern[i+1:], true
		}
	}
	return pattern, "", false
}

func isNumberPatternRune(r rune) bool {
	return r == '#' || r == '0' || r == ',' || r == '.' || r == '@' || r == 'E' || (r >= '1' && r <= '9')
}

// splitAffixes returns prefix, numeric body and suffix. Affixes are unquoted.
func splitAffixes(subpattern string) (string, string, string, error) {
	var (
		prefix, body, suffix strings.Builder
		state                int
		inQuote              bool
		runes                = []rune(subpattern)
	)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				i++
				if state == 0 {
					prefix.WriteRune('\'')
				} else {
					suffix.WriteRune('\'')
					state = 2
				}
				continue
			}
			inQuote = !inQuote
			if state == 1 {
				state = 2
			}
			continue
		}
		if !inQuote && state < 2 && (isNumberPatternRune(r) || (state == 1 && r == '+' && i > 0 && runes[i-1] == 'E')) {
			if state == 0 && r == 'E' {
				prefix.WriteRune(r)
				continue
			}
			state = 1
			body.WriteRune(r)
			continue
		}
		if state == 0 {
			prefix.WriteRune(r)
		} else {
			state = 2
			suffix.WriteRune(r)
		}
	}
	if body.Len() == 0 {
		return "", "", "", fmt.Errorf("no numeric part")
	}
	return prefix.String(), body.String(), suffix.String(), nil
}

// affix replaces the special pattern characters of an affix.
func (f *NumberFormatter) affix(raw, currencySymbol string) string {
	if raw == "" {
		return ""
	}
	var (
		b    strings.Builder
		prev rune
	)
	for _, r := range raw {
		switch r {
		case '¤':
			// ¤¤ and ¤¤¤ select iso codes and names, the symbol stands in for all
			if prev != '¤' {
				b.WriteString(currencySymbol)
			}
		case '%':
			b.WriteString(f.symbols.Percent)
		case '‰':
			b.WriteString(f.symbols.PerMille)
		case '-':
			b.WriteString(f.symbols.Minus)
		case '+':
			b.WriteString(f.symbols.Plus)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// FormatPattern renders value through pattern. The digits become a
// substituted span, the affixes stay literal.
func (f *NumberFormatter) FormatPattern(pattern string, value float64, currencySymbol string) (Variant, error) {
	np, err := parseNumberPattern(pattern)
	if err != nil {
		return nil, err
	}
	prefix, suffix := np.posPrefix, np.posSuffix
	if value < 0 {
		prefix, suffix = np.negPrefix, np.negSuffix
		value = -value
	}
	digits := f.formatDigits(np, value*np.multiplier)
	return variantOf(
		lit(f.affix(prefix, currencySymbol)),
		sub(digits),
		lit(f.affix(suffix, currencySymbol)),
	), nil
}

func (f *NumberFormatter) formatDigits(np numberPattern, value float64) string {
	if np.scientific {
		return f.formatScientific(np, value)
	}
	raw := strconv.FormatFloat(value, 'f', np.maxFrac, 64)
	intPart, fracPart, _ := strings.Cut(raw, ".")
	for len(fracPart) > np.minFrac && strings.HasSuffix(fracPart, "0") {
		fracPart = fracPart[:len(fracPart)-1]
	}
	for len(intPart) < np.minInt {
		intPart = "0" + intPart
	}
	if np.minInt == 0 && intPart == "0" && fracPart != "" {
		intPart = ""
	}
	out := groupDigits(intPart, f.symbols.Group, np.primaryGroup, np.secondaryGroup)
	if fracPart != "" {
		out += f.symbols.Decimal + fracPart
	}
	return out
}

func (f *NumberFormatter) formatScientific(np numberPattern, value float64) string {
	exp := 0
	if value != 0 {
		exp = int(math.Floor(math.Log10(value)))
	}
	mantissa := value / math.Pow(10, float64(exp))
	maxFrac := np.maxFrac
	if maxFrac == 0 {
		maxFrac = 8
	}
	raw := strconv.FormatFloat(mantissa, 'f', maxFrac, 64)
	raw = strings.TrimRight(strings.TrimRight(raw, "0"), ".")
	intPart, fracPart, _ := strings.Cut(raw, ".")
	out := intPart
	if fracPart != "" {
		out += f.symbols.Decimal + fracPart
	}
	expDigits := strconv.Itoa(absInt(exp))
	for len(expDigits) < np.minExp {
		expDigits = "0" + expDigits
	}
	if exp < 0 {
		expDigits = f.symbols.Minus + expDigits
	}
	return out + f.symbols.Exponential + expDigits
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CompactAffixes splits a compact pattern such as "0 Mio'.' ¤" into its
// rendered prefix and suffix plus the number of integer digits it shows.
func (f *NumberFormatter) CompactAffixes(pattern, currencySymbol string) (string, string, int, error) {
	np, err := parseNumberPattern(pattern)
	if err != nil {
		return "", "", 0, err
	}
	return f.affix(np.posPrefix, currencySymbol), f.affix(np.posSuffix, currencySymbol), np.zeros, nil
}
