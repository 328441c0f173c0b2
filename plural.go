package examplegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// pluralOperands returns the CLDR operands i, v, w, f, t for a plain
// decimal string such as "1.23" or "0.00".
func pluralOperands(decimal string) (i, v, w, f, t int, err error) {
	decimal = strings.TrimPrefix(strings.TrimSpace(decimal), "-")
	if decimal == "" {
		return 0, 0, 0, 0, 0, fmt.Errorf("%w: empty number", ErrInvalidPattern)
	}
	intPart, fracPart, _ := strings.Cut(decimal, ".")
	if intPart == "" {
		intPart = "0"
	}
	i, err = strconv.Atoi(intPart)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidPattern, decimal)
	}
	v = len(fracPart)
	if v > 0 {
		f, err = strconv.Atoi(fracPart)
		if err != nil {
			return 0, 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidPattern, decimal)
		}
		trimmed := strings.TrimRight(fracPart, "0")
		w = len(trimmed)
		if w > 0 {
			t, _ = strconv.Atoi(trimmed)
		}
	}
	return i, v, w, f, t, nil
}

func formCategory(form plural.Form) PluralCategory {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// cardinalCategory returns the cardinal plural category of decimal in locale.
func cardinalCategory(tag language.Tag, decimal string) PluralCategory {
	i, v, w, f, t, err := pluralOperands(decimal)
	if err != nil {
		return PluralOther
	}
	return formCategory(plural.Cardinal.MatchPlural(tag, i, v, w, f, t))
}

// ordinalCategory returns the ordinal plural category of n in locale.
func ordinalCategory(tag language.Tag, n int) PluralCategory {
	return formCategory(plural.Ordinal.MatchPlural(tag, n, 0, 0, 0, 0))
}

// pluralCandidates holds the numbers used to discover a locale's categories.
var pluralCandidates = func() []string {
	candidates := make([]string, 0, 260)
	for n := 0; n <= 200; n++ {
		candidates = append(candidates, strconv.Itoa(n))
	}
	for n := 0; n <= 10; n++ {
		candidates = append(candidates,
			strconv.Itoa(n)+".0",
			strconv.Itoa(n)+".1",
			strconv.Itoa(n)+".5",
			strconv.Itoa(n)+".00",
			strconv.Itoa(n)+".23",
		)
	}
	return candidates
}()

// pluralCategoriesFor lists the cardinal categories of locale in canonical order.
func pluralCategoriesFor(locale string) []PluralCategory {
	return collectCategories(func(tag language.Tag) []PluralCategory {
		seen := make([]PluralCategory, 0, len(pluralCandidates))
		for _, n := range pluralCandidates {
			seen = append(seen, cardinalCategory(tag, n))
		}
		return seen
	}, localeTag(locale))
}

// ordinalCategoriesFor lists the ordinal categories of locale in canonical order.
func ordinalCategoriesFor(locale string) []PluralCategory {
	return collectCategories(func(tag language.Tag) []PluralCategory {
		seen := make([]PluralCategory, 0, 200)
		for n := 1; n <= 200; n++ {
			seen = append(seen, ordinalCategory(tag, n))
		}
		return seen
	}, localeTag(locale))
}

func collectCategories(candidates func(language.Tag) []PluralCategory, tag language.Tag) []PluralCategory {
	set := make(map[PluralCategory]struct{}, len(AllPluralCategories))
	for _, category := range candidates(tag) {
		set[category] = struct{}{}
	}
	set[PluralOther] = struct{}{}

	out := make([]PluralCategory, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool {
		return pluralCategoryOrder(out[i]) < pluralCategoryOrder(out[j])
	})
	return out
}
