package examplegen

import (
	"fmt"
	"strings"
)

// RenderTarget selects where sample fill data and surrounding text come from.
type RenderTarget int

const (
	// TargetNative renders with the locale under review.
	TargetNative RenderTarget = iota
	// TargetEnglish renders with the English reference snapshot.
	TargetEnglish
)

func (t RenderTarget) String() string {
	switch t {
	case TargetEnglish:
		return "english"
	default:
		return "native"
	}
}

// ParseRenderTarget accepts "native" or "english" (case insensitive).
func ParseRenderTarget(raw string) (RenderTarget, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "native":
		return TargetNative, nil
	case "english", "en":
		return TargetEnglish, nil
	default:
		return TargetNative, fmt.Errorf("examplegen: unknown render target %q", raw)
	}
}

// UnitLength controls verbosity of unit pattern rendering.
type UnitLength string

const (
	UnitLong   UnitLength = "long"
	UnitShort  UnitLength = "short"
	UnitNarrow UnitLength = "narrow"
)

// ParseUnitLength maps LONG/SHORT/NARROW (any case) to a UnitLength.
func ParseUnitLength(raw string) (UnitLength, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "long":
		return UnitLong, nil
	case "short":
		return UnitShort, nil
	case "narrow":
		return UnitNarrow, nil
	default:
		return "", fmt.Errorf("examplegen: unknown unit length %q", raw)
	}
}

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// AllPluralCategories lists categories in canonical order.
var AllPluralCategories = []PluralCategory{
	PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther,
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero", "0":
		return PluralZero, nil
	case "one", "1":
		return PluralOne, nil
	case "two", "2":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}

func pluralCategoryOrder(category PluralCategory) int {
	switch category {
	case PluralZero:
		return 0
	case PluralOne:
		return 1
	case PluralTwo:
		return 2
	case PluralFew:
		return 3
	case PluralMany:
		return 4
	case PluralOther:
		return 5
	default:
		return 99
	}
}

// Category names the rendering strategy a path is routed to.
type Category string

const (
	CategoryNone               Category = ""
	CategoryCurrencyName       Category = "currency-name"
	CategoryCurrencySymbol     Category = "currency-symbol"
	CategoryCurrencyUnit       Category = "currency-unit-pattern"
	CategoryCurrencySpacing    Category = "currency-spacing"
	CategoryCompactNumber      Category = "compact-number"
	CategoryNumberPattern      Category = "number-pattern"
	CategoryNumberSymbol       Category = "number-symbol"
	CategoryMiscPattern        Category = "misc-pattern"
	CategoryUnitPattern        Category = "unit-pattern"
	CategoryDurationUnit       Category = "duration-unit"
	CategoryCompoundUnit       Category = "compound-unit"
	CategoryPluralMinimalPair  Category = "plural-minimal-pair"
	CategoryOrdinalMinimalPair Category = "ordinal-minimal-pair"
	CategoryDayPeriod          Category = "day-period"
	CategoryEllipsis           Category = "ellipsis"
	CategoryLocalePattern      Category = "locale-pattern"
	CategoryLocaleSeparator    Category = "locale-separator"
	CategoryLocaleKeyType      Category = "locale-key-type-pattern"
	CategoryDisplayName        Category = "display-name"
	CategoryCodePattern        Category = "code-pattern"
	CategoryListPattern        Category = "list-pattern"
	CategoryZoneFormat         Category = "zone-format"
	CategoryExemplarCity       Category = "exemplar-city"
	CategoryZoneName           Category = "zone-name"
	CategoryDatePattern        Category = "date-pattern"
	CategoryDateTimePattern    Category = "datetime-pattern"
)
