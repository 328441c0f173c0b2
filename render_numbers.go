package examplegen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	currencyFormatsPrefix = `//ldml/numbers/currencyFormats[@numberSystem="latn"]/`
	standardCurrencyPath  = currencyFormatsPrefix + `currencyFormatLength/currencyFormat[@type="standard"]/pattern[@type="standard"]`
)

// sample magnitudes shown by the number pattern renderers
const (
	sampleCurrencyAmount = 1295
	sampleDecimalAmount  = 1234.5678
	samplePercentAmount  = 0.12345
	sampleSymbolAmount   = 123456.789
)

func currencyNameStrategy() Strategy {
	return Strategy{
		Name:      "currency-name",
		Category:  CategoryCurrencyName,
		Templates: templates(`//ldml/numbers/currencies/currency[@type="*"]/displayName[@count="*"]`),
		Render:    renderCurrencyName,
	}
}

func currencySymbolStrategy() Strategy {
	return Strategy{
		Name:      "currency-symbol",
		Category:  CategoryCurrencySymbol,
		Templates: templates(`//ldml/numbers/currencies/currency[@type="*"]/symbol`),
		Render:    renderCurrencySymbol,
	}
}

func currencyUnitStrategy() Strategy {
	return Strategy{
		Name:      "currency-unit",
		Category:  CategoryCurrencyUnit,
		Templates: templates(`//ldml/numbers/currencyFormats[@numberSystem="*"]/unitPattern[@count="*"]`),
		Render:    renderCurrencyUnit,
	}
}

// currency spacing is kept on the temporary exclusion list; the strategy
// only claims the paths.
func currencySpacingStrategy() Strategy {
	return Strategy{
		Name:      "currency-spacing",
		Category:  CategoryCurrencySpacing,
		Templates: templates(`//ldml/numbers/currencyFormats[@numberSystem="*"]/currencySpacing/*/*`),
		Render: func(*RenderContext, Path, string) (Example, error) {
			return Example{}, nil
		},
	}
}

func compactNumberStrategy() Strategy {
	return Strategy{
		Name:     "compact-number",
		Category: CategoryCompactNumber,
		Templates: templates(
			`//ldml/numbers/decimalFormats[@numberSystem="*"]/decimalFormatLength[@type="*"]/decimalFormat[@type="*"]/pattern[@type="*"][@count="*"]`,
			`//ldml/numbers/currencyFormats[@numberSystem="*"]/currencyFormatLength[@type="*"]/currencyFormat[@type="*"]/pattern[@type="*"][@count="*"]`,
		),
		Render: renderCompactNumber,
	}
}

func numberPatternStrategy() Strategy {
	return Strategy{
		Name:     "number-pattern",
		Category: CategoryNumberPattern,
		Templates: templates(
			`//ldml/numbers/decimalFormats[@numberSystem="*"]/decimalFormatLength/decimalFormat[@type="*"]/pattern[@type="*"]`,
			`//ldml/numbers/percentFormats[@numberSystem="*"]/percentFormatLength/percentFormat[@type="*"]/pattern[@type="*"]`,
			`//ldml/numbers/scientificFormats[@numberSystem="*"]/scientificFormatLength/scientificFormat[@type="*"]/pattern[@type="*"]`,
			`//ldml/numbers/currencyFormats[@numberSystem="*"]/currencyFormatLength/currencyFormat[@type="*"]/pattern[@type="*"]`,
		),
		Render: renderNumberPattern,
	}
}

func numberSymbolStrategy() Strategy {
	return Strategy{
		Name:      "number-symbol",
		Category:  CategoryNumberSymbol,
		Templates: templates(`//ldml/numbers/symbols[@numberSystem="*"]/*`),
		Render:    renderNumberSymbol,
	}
}

func miscPatternStrategy() Strategy {
	return Strategy{
		Name:      "misc-pattern",
		Category:  CategoryMiscPattern,
		Templates: templates(`//ldml/numbers/miscPatterns[@numberSystem="*"]/pattern[@type="*"]`),
		Render:    renderMiscPattern,
	}
}

func countCategory(p Path) (PluralCategory, error) {
	raw := p.Attr("count")
	if raw == "" {
		return PluralOther, nil
	}
	category, err := parsePluralCategory(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return category, nil
}

// currencyUnitPattern returns the "{0} {1}" pattern combining an amount and
// a currency name for category.
func currencyUnitPattern(rc *RenderContext, category PluralCategory) string {
	for _, c := range []PluralCategory{category, PluralOther} {
		if pattern, ok := rc.Value(currencyFormatsPrefix + `unitPattern[@count="` + string(c) + `"]`); ok {
			return pattern
		}
	}
	return "{0} {1}"
}

func renderCurrencyName(rc *RenderContext, p Path, value string) (Example, error) {
	category, err := countCategory(p)
	if err != nil {
		return Example{}, err
	}
	pattern := currencyUnitPattern(rc, category)

	// the name is shown inside the unit pattern; the pattern's own text is
	// background, the amount is the substituted part
	var ex Example
	for _, sample := range rc.Samples.CountSamples(category, 2) {
		v, err := fillWith(pattern, false, SpanBackground,
			Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))},
			Variant{lit(value)},
		)
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

func renderCurrencySymbol(rc *RenderContext, _ Path, value string) (Example, error) {
	pattern, ok := rc.Value(standardCurrencyPath)
	if !ok {
		pattern = "¤#,##0.00"
	}
	v, err := rc.Numbers.FormatPattern(pattern, sampleSymbolAmount, value)
	if err != nil {
		return Example{}, err
	}
	return Example{Variants: []Variant{v}}, nil
}

func sampleCurrencies(rc *RenderContext) []string {
	if rc.Supplemental != nil && len(rc.Supplemental.Samples.Currencies) > 0 {
		return rc.Supplemental.Samples.Currencies
	}
	return []string{"USD", "EUR"}
}

func renderCurrencyUnit(rc *RenderContext, p Path, value string) (Example, error) {
	category, err := countCategory(p)
	if err != nil {
		return Example{}, err
	}

	var ex Example
	for _, sample := range rc.Samples.CountSamples(category, 2) {
		amount := Variant{sub(rc.Numbers.FormatDecimal(sample.Decimal))}
		for _, code := range sampleCurrencies(rc) {
			name, ok := rc.Samples.CurrencyDisplayName(code, category)
			if !ok {
				name = code
			}
			v, err := fillPattern(value, amount, Variant{sub(name)})
			if err != nil {
				return Example{}, err
			}
			ex.Add(v)
		}
	}
	return ex, nil
}

// localCurrencySymbol is the symbol of the locale's default currency.
func localCurrencySymbol(rc *RenderContext) string {
	code, ok := rc.Supplemental.CurrencyFor(rc.Locale())
	if !ok {
		return "¤"
	}
	return rc.Numbers.CurrencySymbol(code)
}

func renderCompactNumber(rc *RenderContext, p Path, value string) (Example, error) {
	category, err := countCategory(p)
	if err != nil {
		return Example{}, err
	}
	symbol := ""
	if p.Has("currencyFormats") {
		symbol = localCurrencySymbol(rc)
	}
	prefix, suffix, digits, err := rc.Numbers.CompactAffixes(value, symbol)
	if err != nil {
		return Example{}, err
	}
	sample := rc.Samples.CompactSample(digits, category)
	v := variantOf(lit(prefix), sub(rc.Numbers.FormatDecimal(sample.Decimal)), lit(suffix))
	return Example{Variants: []Variant{v}}, nil
}

func renderNumberPattern(rc *RenderContext, p Path, value string) (Example, error) {
	amount := sampleDecimalAmount
	symbol := ""
	switch {
	case p.Has("currencyFormats"):
		amount = sampleCurrencyAmount
		symbol = localCurrencySymbol(rc)
	case p.Has("percentFormats"):
		amount = samplePercentAmount
	}

	var ex Example
	for _, n := range []float64{amount, -amount} {
		v, err := rc.Numbers.FormatPattern(value, n, symbol)
		if err != nil {
			return Example{}, err
		}
		ex.Add(v)
	}
	return ex, nil
}

func renderNumberSymbol(rc *RenderContext, p Path, value string) (Example, error) {
	syms := rc.Numbers.Symbols()
	var v Variant
	switch p.Last().Name {
	case "decimal":
		v = variantOf(sub("12"), lit(value), sub("345"))
	case "group":
		v = variantOf(sub("1"), lit(value), sub("234"+syms.Decimal+"5"))
	case "percentSign":
		v = variantOf(sub("12"), lit(value))
	case "perMille":
		v = variantOf(sub("123"), lit(value))
	case "plusSign", "minusSign", "approximatelySign":
		v = variantOf(lit(value), sub("12"))
	case "exponential":
		v = variantOf(sub("1"+syms.Decimal+"2"), lit(value), sub("3"))
	case "superscriptingExponent":
		mantissa := rc.Numbers.FormatDecimal(strconv.FormatFloat(1.23456789, 'f', -1, 64))
		v = variantOf(sub(mantissa), lit(value+"10"), Span{Kind: SpanSubstituted, Text: "5", Superscript: true})
	default:
		return Example{}, nil
	}
	return Example{Variants: []Variant{v}}, nil
}

func renderMiscPattern(rc *RenderContext, _ Path, value string) (Example, error) {
	low := Variant{sub(rc.Numbers.FormatDecimal("99"))}
	high := Variant{sub(rc.Numbers.FormatDecimal("144"))}
	v, err := fillPattern(value, low, high)
	if err != nil {
		return Example{}, err
	}
	if !v.HasKind(SpanSubstituted) && strings.TrimSpace(v.Text()) == "" {
		return Example{}, nil
	}
	return Example{Variants: []Variant{v}}, nil
}
