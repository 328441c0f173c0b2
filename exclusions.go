package examplegen

import (
	"fmt"
	"os"
	"strings"
)

// ExclusionKind says why a path has no example.
type ExclusionKind int

const (
	// NotExcluded paths are expected to render.
	NotExcluded ExclusionKind = iota
	// ExcludedStructural covers identity data and aliases.
	ExcludedStructural
	// ExcludedDeliberate paths never get an example.
	ExcludedDeliberate
	// ExcludedTemporary paths are pending renderer support.
	ExcludedTemporary
)

func (k ExclusionKind) String() string {
	switch k {
	case ExcludedStructural:
		return "structural"
	case ExcludedDeliberate:
		return "deliberate"
	case ExcludedTemporary:
		return "temporary"
	default:
		return "none"
	}
}

// ExclusionDefinition is the serialized form of the exclusion lists.
type ExclusionDefinition struct {
	Prefixes              []string `json:"prefixes" yaml:"prefixes"`
	LastElements          []string `json:"last_elements" yaml:"last_elements"`
	Deliberate            []string `json:"deliberate" yaml:"deliberate"`
	Temporary             []string `json:"temporary" yaml:"temporary"`
	OkToMissBackground    []string `json:"ok_to_miss_background" yaml:"ok_to_miss_background"`
	OkWithoutSubstitution []string `json:"ok_without_substitution" yaml:"ok_without_substitution"`
}

// ExclusionCatalog is an immutable set of exclusion and allow lists.
type ExclusionCatalog struct {
	prefixes              []string
	lastElements          map[string]struct{}
	deliberate            []Template
	temporary             []Template
	okToMissBackground    []Template
	okWithoutSubstitution []Template
}

// NewExclusionCatalog validates def and builds the catalog.
func NewExclusionCatalog(def ExclusionDefinition) (*ExclusionCatalog, error) {
	c := &ExclusionCatalog{
		lastElements: make(map[string]struct{}, len(def.LastElements)),
	}
	for _, prefix := range def.Prefixes {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			c.prefixes = append(c.prefixes, trimmed)
		}
	}
	for _, name := range def.LastElements {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.lastElements[trimmed] = struct{}{}
		}
	}

	var err error
	if c.deliberate, err = compileTemplates("deliberate", def.Deliberate); err != nil {
		return nil, err
	}
	if c.temporary, err = compileTemplates("temporary", def.Temporary); err != nil {
		return nil, err
	}
	if c.okToMissBackground, err = compileTemplates("ok_to_miss_background", def.OkToMissBackground); err != nil {
		return nil, err
	}
	if c.okWithoutSubstitution, err = compileTemplates("ok_without_substitution", def.OkWithoutSubstitution); err != nil {
		return nil, err
	}
	return c, nil
}

func compileTemplates(list string, raw []string) ([]Template, error) {
	out := make([]Template, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, pattern := range raw {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, dup := seen[pattern]; dup {
			return nil, fmt.Errorf("exclusions: duplicate %s entry %q", list, pattern)
		}
		seen[pattern] = struct{}{}
		t, err := NewTemplate(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclusions: %s: %w", list, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadExclusionsFile reads a YAML or JSON exclusion definition.
func LoadExclusionsFile(path string) (*ExclusionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseExclusions(path, data)
}

// DefaultExclusions returns the bundled exclusion lists.
func DefaultExclusions() (*ExclusionCatalog, error) {
	data, err := embeddedData.ReadFile(embeddedExclusions)
	if err != nil {
		return nil, err
	}
	return parseExclusions(embeddedExclusions, data)
}

func parseExclusions(name string, data []byte) (*ExclusionCatalog, error) {
	var def ExclusionDefinition
	if err := decodeByExtension(name, data, &def); err != nil {
		return nil, fmt.Errorf("exclusions: %s: %w", name, err)
	}
	return NewExclusionCatalog(def)
}

func matchAny(templates []Template, p Path) bool {
	for _, t := range templates {
		if t.Match(p) {
			return true
		}
	}
	return false
}

// Reason classifies p against the exclusion lists.
func (c *ExclusionCatalog) Reason(p Path) ExclusionKind {
	if c == nil {
		return NotExcluded
	}
	raw := p.String()
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(raw, prefix) {
			return ExcludedStructural
		}
	}
	if _, ok := c.lastElements[p.Last().Name]; ok {
		return ExcludedStructural
	}
	if matchAny(c.deliberate, p) {
		return ExcludedDeliberate
	}
	if matchAny(c.temporary, p) {
		return ExcludedTemporary
	}
	return NotExcluded
}

// Excluded reports whether p is on any exclusion list.
func (c *ExclusionCatalog) Excluded(p Path) bool {
	return c.Reason(p) != NotExcluded
}

// OkToMissBackground reports whether a fragment path may render without
// its enclosing pattern.
func (c *ExclusionCatalog) OkToMissBackground(p Path) bool {
	if c == nil {
		return false
	}
	return matchAny(c.okToMissBackground, p)
}

// OkWithoutSubstitution reports whether an example for p may lack a
// substituted span.
func (c *ExclusionCatalog) OkWithoutSubstitution(p Path) bool {
	if c == nil {
		return false
	}
	return matchAny(c.okWithoutSubstitution, p)
}
