package examplegen

import (
	"strings"

	"golang.org/x/text/language"
)

// truncatedParent drops the last subtag: "de-CH" -> "de", "de" -> "".
func truncatedParent(locale string) string {
	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return ""
}

// localeParentChain lists the ancestors of locale, nearest first, not
// including root. Parents known to x/text come first ("en-AU" -> "en-001"),
// then any truncation parents it skipped.
func localeParentChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" || locale == RootLocale {
		return nil
	}

	var chain []string
	seen := map[string]bool{locale: true}
	add := func(id string) bool {
		if id == "" || id == "und" || seen[id] {
			return false
		}
		seen[id] = true
		chain = append(chain, id)
		return true
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			if !add(parent.String()) {
				break
			}
		}
	}
	for current := truncatedParent(locale); current != ""; current = truncatedParent(current) {
		add(current)
	}
	return chain
}

// normalizeLocale trims and swaps underscores for hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeTag maps a locale id onto a language tag, root becomes und.
func localeTag(locale string) language.Tag {
	if locale == "" || locale == RootLocale {
		return language.Und
	}
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return language.Und
	}
	return tag
}

// localeLanguage returns the base language subtag, e.g. "de" for "de-CH".
func localeLanguage(locale string) string {
	tag := localeTag(locale)
	if tag == language.Und {
		return RootLocale
	}
	base, _ := tag.Base()
	return base.String()
}
