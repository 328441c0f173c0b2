package examplegen

import (
	"errors"
	"fmt"
	"sync"
)

// RenderFunc renders value for path p into an example. An empty example
// means "no example"; errors wrapping ErrMissingValue are treated the same.
type RenderFunc func(rc *RenderContext, p Path, value string) (Example, error)

// EncloseFunc locates the pattern a fragment is normally shown inside.
type EncloseFunc func(rc *RenderContext, p Path) (Enclosure, bool)

// Enclosure names the enclosing pattern of a fragment: the fragment fills
// placeholder Slot of the pattern stored at Path, Args fill the others.
type Enclosure struct {
	Path string
	Slot int
	Args map[int]string
}

// Strategy pairs path templates with a renderer.
type Strategy struct {
	Name      string
	Category  Category
	Templates []Template
	Render    RenderFunc
	// Enclose is set for fragment paths whose example needs background
	Enclose EncloseFunc
}

// Matches reports whether any template of the strategy matches p.
func (s Strategy) Matches(p Path) bool {
	for _, t := range s.Templates {
		if t.Match(p) {
			return true
		}
	}
	return false
}

// NeedsBackground reports whether the strategy renders fragments.
func (s Strategy) NeedsBackground() bool {
	return s.Enclose != nil
}

// Registry holds strategies in priority order, first match wins.
type Registry struct {
	mu         sync.RWMutex
	strategies []Strategy
	names      map[string]struct{}
}

// NewRegistry builds a registry from strategies in the given order.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{names: make(map[string]struct{})}
	for _, s := range strategies {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a strategy after the existing ones.
func (r *Registry) Register(s Strategy) error {
	if r == nil {
		return errors.New("examplegen: nil registry")
	}
	if s.Name == "" {
		s.Name = string(s.Category)
	}
	if s.Name == "" || len(s.Templates) == 0 || s.Render == nil {
		return fmt.Errorf("examplegen: strategy %q needs a name, templates and a renderer", s.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, dup := r.names[s.Name]; dup {
		return fmt.Errorf("examplegen: strategy %q already registered", s.Name)
	}
	r.names[s.Name] = struct{}{}
	r.strategies = append(r.strategies, s)
	return nil
}

// Lookup returns the first strategy matching p.
func (r *Registry) Lookup(p Path) (Strategy, bool) {
	if r == nil {
		return Strategy{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.strategies {
		if s.Matches(p) {
			return s, true
		}
	}
	return Strategy{}, false
}

// Strategies returns a copy of the registered strategies in priority order.
func (r *Registry) Strategies() []Strategy {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, len(r.strategies))
	copy(out, r.strategies)
	return out
}

var (
	defaultRegistryOnce sync.Once
	defaultStrategies   []Strategy
)

// DefaultRegistry returns a fresh registry with the built in strategies.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultStrategies = builtinStrategies()
	})
	r, err := NewRegistry(defaultStrategies...)
	if err != nil {
		panic(err)
	}
	return r
}

func builtinStrategies() []Strategy {
	return []Strategy{
		currencyNameStrategy(),
		currencySymbolStrategy(),
		currencyUnitStrategy(),
		currencySpacingStrategy(),
		compactNumberStrategy(),
		numberPatternStrategy(),
		numberSymbolStrategy(),
		miscPatternStrategy(),
		unitPatternStrategy(),
		durationUnitStrategy(),
		compoundUnitStrategy(),
		pluralMinimalPairStrategy(),
		ordinalMinimalPairStrategy(),
		dayPeriodStrategy(),
		ellipsisStrategy(),
		localePatternStrategy(),
		localeSeparatorStrategy(),
		localeKeyTypeStrategy(),
		displayNameStrategy(),
		keyNameStrategy(),
		codePatternStrategy(),
		listPatternStrategy(),
		hourFormatStrategy(),
		zoneFormatStrategy(),
		exemplarCityStrategy(),
		zoneNameStrategy(),
		datePatternStrategy(),
		dateTimePatternStrategy(),
	}
}

func templates(patterns ...string) []Template {
	out := make([]Template, len(patterns))
	for i, p := range patterns {
		out[i] = MustTemplate(p)
	}
	return out
}

// RenderContext carries everything a strategy may consult for one call.
type RenderContext struct {
	Target       RenderTarget
	Snapshot     Snapshot
	Native       Snapshot
	English      Snapshot
	Supplemental *SupplementalData
	Samples      *SampleProvider
	Numbers      *NumberFormatter
	Dates        *DateFormatter
}

func newRenderContext(target RenderTarget, native, english Snapshot, supp *SupplementalData) *RenderContext {
	snap, ref := native, english
	if target == TargetEnglish && english != nil {
		snap, ref = english, nil
	}
	return &RenderContext{
		Target:       target,
		Snapshot:     snap,
		Native:       native,
		English:      english,
		Supplemental: supp,
		Samples:      newSampleProvider(snap, ref, supp),
		Numbers:      newNumberFormatter(snap),
		Dates:        newDateFormatter(snap, supp),
	}
}

// Value reads path from the context's snapshot.
func (rc *RenderContext) Value(path string) (string, bool) {
	value, ok := rc.Snapshot.Value(path)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Require is Value returning ErrMissingValue when path is absent.
func (rc *RenderContext) Require(path string) (string, error) {
	value, ok := rc.Value(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingValue, path)
	}
	return value, nil
}

// Locale returns the locale rendered for.
func (rc *RenderContext) Locale() string {
	return rc.Snapshot.Locale()
}
