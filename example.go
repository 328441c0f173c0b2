package examplegen

import "strings"

// SpanKind tags a run of rendered text.
type SpanKind int

const (
	// SpanLiteral is text taken from the value under review.
	SpanLiteral SpanKind = iota
	// SpanSubstituted is sample data filled in for this call.
	SpanSubstituted
	// SpanBackground is fixed context copied from an enclosing pattern.
	SpanBackground
)

func (k SpanKind) String() string {
	switch k {
	case SpanSubstituted:
		return "substituted"
	case SpanBackground:
		return "background"
	default:
		return "literal"
	}
}

// Span is a run of text with a single kind.
type Span struct {
	Kind        SpanKind
	Text        string
	Superscript bool
}

// Variant is one rendered example: literal text interleaved with tagged spans.
type Variant []Span

// Example is an ordered list of variants for one (path, value) pair.
type Example struct {
	Variants []Variant
}

// Empty reports whether the example has nothing to show.
func (e Example) Empty() bool {
	for _, v := range e.Variants {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Add appends non-empty variants.
func (e *Example) Add(variants ...Variant) {
	for _, v := range variants {
		if len(v) == 0 {
			continue
		}
		e.Variants = append(e.Variants, v)
	}
}

func lit(text string) Span {
	return Span{Kind: SpanLiteral, Text: text}
}

func sub(text string) Span {
	return Span{Kind: SpanSubstituted, Text: text}
}

func bg(text string) Span {
	return Span{Kind: SpanBackground, Text: text}
}

func variantOf(spans ...Span) Variant {
	out := make(Variant, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Text returns the plain concatenated text of the variant.
func (v Variant) Text() string {
	var b strings.Builder
	for _, s := range v {
		b.WriteString(s.Text)
	}
	return b.String()
}

// HasKind reports whether any span has the given kind.
func (v Variant) HasKind(kind SpanKind) bool {
	for _, s := range v {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Substituted collapses the whole variant into one substituted span.
func (v Variant) Substituted() Variant {
	text := v.Text()
	if text == "" {
		return nil
	}
	return Variant{sub(text)}
}

// retag converts every span of kind from into kind to.
func (v Variant) retag(from, to SpanKind) Variant {
	out := make(Variant, len(v))
	for i, s := range v {
		if s.Kind == from {
			s.Kind = to
		}
		out[i] = s
	}
	return out
}

// merged joins adjacent spans that share kind and superscript flag.
func (v Variant) merged() Variant {
	out := make(Variant, 0, len(v))
	for _, s := range v {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == s.Kind && out[n-1].Superscript == s.Superscript {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
