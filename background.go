package examplegen

import "fmt"

// DefaultMaxBackgroundDepth bounds nested enclosing patterns.
const DefaultMaxBackgroundDepth = 4

// BackgroundComposer splices rendered fragments into the pattern that
// normally encloses them.
type BackgroundComposer struct {
	registry *Registry
	maxDepth int
}

// NewBackgroundComposer returns a composer resolving enclosing patterns
// through registry.
func NewBackgroundComposer(registry *Registry, maxDepth int) *BackgroundComposer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxBackgroundDepth
	}
	return &BackgroundComposer{registry: registry, maxDepth: maxDepth}
}

// Compose wraps every variant of fragment in the enclosing pattern of p.
// The fragment becomes one substituted run, the pattern text and the other
// placeholder values become background. It reports false, with fragment
// unchanged, when no enclosing pattern is available.
func (c *BackgroundComposer) Compose(rc *RenderContext, s Strategy, p Path, fragment Example) (Example, bool, error) {
	if s.Enclose == nil || fragment.Empty() {
		return fragment, false, nil
	}
	visited := map[string]struct{}{p.String(): {}}
	variants := make([]Variant, 0, len(fragment.Variants))
	for _, v := range fragment.Variants {
		variants = append(variants, v.Substituted())
	}
	out, ok, err := c.compose(rc, s, p, variants, 1, visited)
	if err != nil || !ok {
		return fragment, false, err
	}
	return Example{Variants: out}, true, nil
}

func (c *BackgroundComposer) compose(rc *RenderContext, s Strategy, p Path, variants []Variant, depth int, visited map[string]struct{}) ([]Variant, bool, error) {
	enc, ok := s.Enclose(rc, p)
	if !ok {
		return variants, false, nil
	}
	if depth > c.maxDepth {
		return nil, false, fmt.Errorf("%w: %s nests deeper than %d", ErrRecursionLimit, p, c.maxDepth)
	}
	if _, seen := visited[enc.Path]; seen {
		return nil, false, fmt.Errorf("%w: %s encloses itself", ErrRecursionLimit, enc.Path)
	}
	visited[enc.Path] = struct{}{}

	pattern, ok := rc.Value(enc.Path)
	if !ok {
		return variants, false, nil
	}

	count := placeholderCount(pattern)
	if enc.Slot >= count {
		return nil, false, fmt.Errorf("%w: %s has no slot {%d}", ErrInvalidPattern, enc.Path, enc.Slot)
	}
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		args := make([]Variant, count)
		for i := range args {
			if i == enc.Slot {
				args[i] = v
				continue
			}
			args[i] = Variant{bg(enc.Args[i])}
		}
		filled, err := fillWith(pattern, false, SpanBackground, args...)
		if err != nil {
			return nil, false, err
		}
		out = append(out, variantOf(filled...))
	}

	parent, err := ParsePath(enc.Path)
	if err != nil {
		return out, true, nil
	}
	outer, ok := c.registry.Lookup(parent)
	if !ok || outer.Enclose == nil {
		return out, true, nil
	}
	nested, ok, err := c.compose(rc, outer, parent, out, depth+1, visited)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return out, true, nil
	}
	return nested, true, nil
}
