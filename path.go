package examplegen

import (
	"fmt"
	"strings"
)

// attributes that never take part in classification
var ignoredAttributes = map[string]struct{}{
	"draft":      {},
	"references": {},
}

// Attr is a single path predicate, e.g. [@type="EUR"].
type Attr struct {
	Key   string
	Value string
}

// Element is one step of a path with its predicates in source order.
type Element struct {
	Name  string
	Attrs []Attr
}

// Attr returns the predicate value for key on this element.
func (e Element) Attr(key string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Path is a parsed data-path key.
type Path struct {
	raw      string
	Elements []Element
}

// ParsePath splits a path such as
// //ldml/numbers/currencies/currency[@type="EUR"]/displayName[@count="one"]
// into elements. Attribute values may contain '/' and brackets.
func ParsePath(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPattern)
	}

	body := strings.TrimLeft(trimmed, "/")
	path := Path{raw: trimmed}

	var (
		current  *Element
		name     strings.Builder
		i        int
		runes    = []rune(body)
		finished = func() {
			if current == nil {
				return
			}
			path.Elements = append(path.Elements, *current)
			current = nil
		}
	)

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '/':
			if current == nil {
				return Path{}, fmt.Errorf("%w: empty element in %q", ErrInvalidPattern, raw)
			}
			finished()
			i++
		case r == '[':
			if current == nil {
				current = &Element{Name: name.String()}
				name.Reset()
			}
			attr, next, err := parsePredicate(runes, i)
			if err != nil {
				return Path{}, fmt.Errorf("%w: %v in %q", ErrInvalidPattern, err, raw)
			}
			if _, skip := ignoredAttributes[attr.Key]; !skip {
				current.Attrs = append(current.Attrs, attr)
			}
			i = next
		default:
			if current != nil && len(current.Attrs) > 0 {
				return Path{}, fmt.Errorf("%w: text after predicate in %q", ErrInvalidPattern, raw)
			}
			name.WriteRune(r)
			i++
			if i == len(runes) || runes[i] == '/' || runes[i] == '[' {
				if current == nil {
					current = &Element{Name: name.String()}
					name.Reset()
				}
			}
		}
	}
	finished()

	if len(path.Elements) == 0 {
		return Path{}, fmt.Errorf("%w: no elements in %q", ErrInvalidPattern, raw)
	}
	return path, nil
}

// MustParsePath panics on malformed input. Intended for constants.
func MustParsePath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func parsePredicate(runes []rune, start int) (Attr, int, error) {
	// expects [@key="value"] or [@key='value']
	i := start + 1
	if i >= len(runes) || runes[i] != '@' {
		return Attr{}, 0, fmt.Errorf("predicate without @ at %d", start)
	}
	i++
	keyStart := i
	for i < len(runes) && runes[i] != '=' && runes[i] != ']' {
		i++
	}
	if i >= len(runes) || runes[i] != '=' {
		return Attr{}, 0, fmt.Errorf("predicate without value at %d", start)
	}
	key := string(runes[keyStart:i])
	i++
	if i >= len(runes) || (runes[i] != '"' && runes[i] != '\'') {
		return Attr{}, 0, fmt.Errorf("unquoted predicate value at %d", start)
	}
	quote := runes[i]
	i++
	valueStart := i
	for i < len(runes) && runes[i] != quote {
		i++
	}
	if i >= len(runes) {
		return Attr{}, 0, fmt.Errorf("unterminated predicate value at %d", start)
	}
	value := string(runes[valueStart:i])
	i++
	if i >= len(runes) || runes[i] != ']' {
		return Attr{}, 0, fmt.Errorf("unterminated predicate at %d", start)
	}
	return Attr{Key: key, Value: value}, i + 1, nil
}

// String returns the path as it was parsed.
func (p Path) String() string {
	if p.raw != "" {
		return p.raw
	}
	return p.render(false)
}

// Starred replaces every predicate value with "*".
func (p Path) Starred() string {
	return p.render(true)
}

func (p Path) render(starred bool) string {
	var b strings.Builder
	b.WriteString("/")
	for _, el := range p.Elements {
		b.WriteString("/")
		b.WriteString(el.Name)
		for _, attr := range el.Attrs {
			value := attr.Value
			if starred {
				value = "*"
			}
			fmt.Fprintf(&b, "[@%s=\"%s\"]", attr.Key, value)
		}
	}
	return b.String()
}

// Last returns the final element.
func (p Path) Last() Element {
	if len(p.Elements) == 0 {
		return Element{}
	}
	return p.Elements[len(p.Elements)-1]
}

// Find returns the value of the first attribute named key on the element
// named element. An empty element name searches every element.
func (p Path) Find(element, key string) (string, bool) {
	for _, el := range p.Elements {
		if element != "" && el.Name != element {
			continue
		}
		if value, ok := el.Attr(key); ok {
			return value, true
		}
	}
	return "", false
}

// Attr returns the first value of key anywhere in the path.
func (p Path) Attr(key string) string {
	value, _ := p.Find("", key)
	return value
}

// Has reports whether an element with the given name is part of the path.
func (p Path) Has(element string) bool {
	for _, el := range p.Elements {
		if el.Name == element {
			return true
		}
	}
	return false
}

// Template is a starred path used as a classification or exclusion key.
// A template attribute value of "*" matches any value. The path may carry an
// extra alt attribute the template does not name.
type Template struct {
	source string
	path   Path
}

// NewTemplate compiles a template from its textual form.
func NewTemplate(pattern string) (Template, error) {
	p, err := ParsePath(pattern)
	if err != nil {
		return Template{}, err
	}
	return Template{source: strings.TrimSpace(pattern), path: p}, nil
}

// MustTemplate is NewTemplate for package level tables.
func MustTemplate(pattern string) Template {
	t, err := NewTemplate(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Template) String() string {
	return t.source
}

// Match reports whether p has the template's shape.
func (t Template) Match(p Path) bool {
	if len(t.path.Elements) != len(p.Elements) {
		return false
	}
	for idx, want := range t.path.Elements {
		got := p.Elements[idx]
		if want.Name != "*" && want.Name != got.Name {
			return false
		}
		for _, attr := range want.Attrs {
			value, ok := got.Attr(attr.Key)
			if !ok {
				return false
			}
			if attr.Value != "*" && attr.Value != value {
				return false
			}
		}
		for _, attr := range got.Attrs {
			if attr.Key == "alt" {
				continue
			}
			if _, ok := want.Attr(attr.Key); !ok {
				return false
			}
		}
	}
	return true
}

// MatchString parses raw and matches it, malformed paths never match.
func (t Template) MatchString(raw string) bool {
	p, err := ParsePath(raw)
	if err != nil {
		return false
	}
	return t.Match(p)
}
