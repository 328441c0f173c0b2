package examplegen

import (
	"fmt"
	"strconv"
	"strings"
)

type patternPart struct {
	text string
	arg  int
}

// splitPlaceholders breaks a message pattern into literal runs and {n}
// references. With quoted set, apostrophes quote literal text and a doubled
// apostrophe stands for itself.
func splitPlaceholders(pattern string, quoted bool) ([]patternPart, error) {
	var (
		parts   []patternPart
		literal strings.Builder
		inQuote bool
		runes   = []rune(pattern)
	)

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		parts = append(parts, patternPart{text: literal.String(), arg: -1})
		literal.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quoted && r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i++
				continue
			}
			inQuote = !inQuote
			continue
		}
		if r != '{' || inQuote {
			literal.WriteRune(r)
			continue
		}
		end := i + 1
		for end < len(runes) && runes[end] != '}' {
			end++
		}
		if end >= len(runes) {
			return nil, fmt.Errorf("%w: unterminated placeholder in %q", ErrInvalidPattern, pattern)
		}
		index, err := strconv.Atoi(string(runes[i+1 : end]))
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%w: bad placeholder %q in %q", ErrInvalidPattern, string(runes[i:end+1]), pattern)
		}
		flush()
		parts = append(parts, patternPart{arg: index})
		i = end
	}
	flush()
	return parts, nil
}

// fillPattern substitutes args into {n} slots. Literal text from the pattern
// becomes SpanLiteral, the args keep their own spans.
func fillPattern(pattern string, args ...Variant) (Variant, error) {
	return fillWith(pattern, false, SpanLiteral, args...)
}

// fillQuotedPattern is fillPattern for patterns using apostrophe quoting.
func fillQuotedPattern(pattern string, args ...Variant) (Variant, error) {
	return fillWith(pattern, true, SpanLiteral, args...)
}

func fillWith(pattern string, quoted bool, literalKind SpanKind, args ...Variant) (Variant, error) {
	parts, err := splitPlaceholders(pattern, quoted)
	if err != nil {
		return nil, err
	}
	var out Variant
	for _, part := range parts {
		if part.arg < 0 {
			out = append(out, Span{Kind: literalKind, Text: part.text})
			continue
		}
		if part.arg >= len(args) {
			return nil, fmt.Errorf("%w: placeholder {%d} has no value in %q", ErrInvalidPattern, part.arg, pattern)
		}
		out = append(out, args[part.arg]...)
	}
	return out, nil
}

// fillText is fillPattern over plain strings.
func fillText(pattern string, args ...string) (string, error) {
	variants := make([]Variant, len(args))
	for i, arg := range args {
		variants[i] = Variant{lit(arg)}
	}
	v, err := fillPattern(pattern, variants...)
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// placeholderCount returns the highest placeholder index plus one.
func placeholderCount(pattern string) int {
	parts, err := splitPlaceholders(pattern, false)
	if err != nil {
		return 0
	}
	count := 0
	for _, part := range parts {
		if part.arg+1 > count {
			count = part.arg + 1
		}
	}
	return count
}

// patternResidue removes placeholders and trims, turning "{0} sec" into "sec".
func patternResidue(pattern string) string {
	parts, err := splitPlaceholders(pattern, false)
	if err != nil {
		return strings.TrimSpace(pattern)
	}
	var b strings.Builder
	for _, part := range parts {
		if part.arg < 0 {
			b.WriteString(part.text)
		}
	}
	return strings.TrimSpace(b.String())
}

// unquote drops CLDR apostrophe quoting.
func unquote(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i++
			}
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
