package examplegen

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Delimiters produced by Normalize.
const (
	ExampleStart     = "〖"
	ExampleEnd       = "〗"
	SubstitutedStart = "❬"
	SubstitutedEnd   = "❭"
)

// FailureMarker prefixes the text of fragments built from captured render faults.
const FailureMarker = "Example generation failed"

const (
	classExample     = "cldr_example"
	classSubstituted = "cldr_substituted"
	classBackground  = "cldr_background"
	classFailure     = "cldr_failure"
	classHelp        = "cldr_help"
)

// Format serializes an example into markup. Each variant becomes a
// cldr_example div, substituted and background runs become spans.
func Format(e Example) string {
	var b strings.Builder
	for _, variant := range e.Variants {
		if len(variant) == 0 {
			continue
		}
		b.WriteString("<div class='" + classExample + "'>")
		for _, span := range variant.merged() {
			writeSpan(&b, span)
		}
		b.WriteString("</div>")
	}
	return b.String()
}

func writeSpan(b *strings.Builder, span Span) {
	text := html.EscapeString(span.Text)
	if span.Superscript {
		text = "<sup>" + text + "</sup>"
	}
	switch span.Kind {
	case SpanSubstituted:
		b.WriteString("<span class='" + classSubstituted + "'>")
		b.WriteString(text)
		b.WriteString("</span>")
	case SpanBackground:
		b.WriteString("<span class='" + classBackground + "'>")
		b.WriteString(text)
		b.WriteString("</span>")
	default:
		b.WriteString(text)
	}
}

func failureFragment(err error) string {
	msg := FailureMarker
	if err != nil {
		msg += ": " + err.Error()
	}
	return "<div class='" + classExample + "'><span class='" + classFailure + "'>" + html.EscapeString(msg) + "</span></div>"
}

// Normalize collapses a markup fragment into delimiter form: every example
// variant is wrapped in 〖〗 and every substituted span in ❬❭. Background
// and other markup is reduced to its text. With mergeAdjacent set all
// variants share a single 〖〗 pair.
func Normalize(markup string, mergeAdjacent bool) string {
	var (
		b       strings.Builder
		closers []string
		opened  bool
		z       = html.NewTokenizer(strings.NewReader(markup))
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				b.Write(z.Raw())
			}
			if mergeAdjacent && opened {
				b.WriteString(ExampleEnd)
			}
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			class := ""
			if hasAttr {
				class = tagClass(z)
			}
			closer := ""
			switch {
			case string(name) == "div" && hasClass(class, classExample):
				if !mergeAdjacent {
					b.WriteString(ExampleStart)
					closer = ExampleEnd
				} else if !opened {
					b.WriteString(ExampleStart)
					opened = true
				}
			case string(name) == "span" && hasClass(class, classSubstituted):
				b.WriteString(SubstitutedStart)
				closer = SubstitutedEnd
			}
			closers = append(closers, closer)
		case html.EndTagToken:
			if n := len(closers); n > 0 {
				b.WriteString(closers[n-1])
				closers = closers[:n-1]
			}
		}
	}
}

func tagClass(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

func hasClass(classes, want string) bool {
	for _, c := range strings.Fields(classes) {
		if c == want {
			return true
		}
	}
	return false
}
