package examplegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Snapshot is a read only view over one locale's data, resolved with fallback.
type Snapshot interface {
	// Locale returns the locale id the snapshot was resolved for
	Locale() string
	// Value returns the value for path and ok=false when absent
	Value(path string) (string, bool)
	// Paths returns every defined path in a stable order
	Paths() []string
	// PluralCategories returns the cardinal categories used by the locale
	PluralCategories() []PluralCategory
	// Compare orders two paths the same way Paths does
	Compare(a, b string) int
}

// MutableSnapshot is a Snapshot whose values can be changed in place.
type MutableSnapshot interface {
	Snapshot
	Set(path, value string) error
	Remove(path string) error
	// Generation increments on every successful mutation
	Generation() uint64
}

// LocaleData is the raw content of one locale file.
type LocaleData struct {
	Locale string            `json:"locale" yaml:"locale"`
	Parent string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Values map[string]string `json:"values" yaml:"values"`
}

// Clone returns a deep copy.
func (d *LocaleData) Clone() *LocaleData {
	if d == nil {
		return nil
	}
	clone := &LocaleData{Locale: d.Locale, Parent: d.Parent}
	if len(d.Values) > 0 {
		clone.Values = make(map[string]string, len(d.Values))
		for k, v := range d.Values {
			clone.Values[k] = v
		}
	}
	return clone
}

// Bundle maps locale ids to their data.
type Bundle map[string]*LocaleData

// Loader retrieves the locale data used to seed a DataStore
type Loader interface {
	Load() (Bundle, error)
}

// LoaderFunc adapts a bare function to the Loader interface
type LoaderFunc func() (Bundle, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Bundle, error) {
	return fn()
}

// DataStore holds every loaded locale, read only after construction.
type DataStore struct {
	locales  map[string]*LocaleData
	codes    []string
	resolver *StaticFallbackResolver
}

// NewDataStore builds an immutable snapshot of the given bundle.
func NewDataStore(bundle Bundle) *DataStore {
	store := &DataStore{
		locales:  make(map[string]*LocaleData, len(bundle)),
		resolver: NewStaticFallbackResolver(),
	}

	for code, data := range bundle {
		if data == nil {
			continue
		}
		clone := data.Clone()
		if clone.Locale == "" {
			clone.Locale = code
		}
		clone.Locale = normalizeLocale(clone.Locale)
		store.locales[clone.Locale] = clone
		store.codes = append(store.codes, clone.Locale)
	}

	// make locales deterministic
	sort.Strings(store.codes)

	for _, code := range store.codes {
		store.resolver.Set(code, store.explicitChain(code)...)
	}

	return store
}

// NewDataStoreFromLoader hydrates a DataStore using the provided loader
func NewDataStoreFromLoader(loader Loader) (*DataStore, error) {
	if loader == nil {
		return NewDataStore(nil), nil
	}
	bundle, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return NewDataStore(bundle), nil
}

func (s *DataStore) explicitChain(locale string) []string {
	var chain []string
	seen := map[string]struct{}{locale: {}}
	current := locale
	for {
		data := s.locales[current]
		next := ""
		if data != nil && data.Parent != "" {
			next = normalizeLocale(data.Parent)
		} else {
			for _, candidate := range localeParentChain(current) {
				if _, ok := s.locales[candidate]; ok {
					next = candidate
					break
				}
			}
		}
		if next == "" && current != RootLocale {
			next = RootLocale
		}
		if next == "" {
			return chain
		}
		if _, dup := seen[next]; dup {
			return chain
		}
		seen[next] = struct{}{}
		if _, ok := s.locales[next]; ok {
			chain = append(chain, next)
		}
		if next == RootLocale {
			return chain
		}
		current = next
	}
}

// Locales returns all locale codes, sorted.
func (s *DataStore) Locales() []string {
	if s == nil || len(s.codes) == 0 {
		return nil
	}
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Has reports whether locale has its own data.
func (s *DataStore) Has(locale string) bool {
	if s == nil {
		return false
	}
	_, ok := s.locales[normalizeLocale(locale)]
	return ok
}

// Chain returns locale followed by its fallbacks present in the store.
func (s *DataStore) Chain(locale string) []string {
	locale = normalizeLocale(locale)
	out := []string{locale}
	for _, fb := range s.resolver.Resolve(locale) {
		if _, ok := s.locales[fb]; ok {
			out = append(out, fb)
		}
	}
	return out
}

// Resolve returns a fresh snapshot of locale with its fallback chain applied.
func (s *DataStore) Resolve(locale string) (*ResolvedFile, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	locale = normalizeLocale(locale)
	if _, ok := s.locales[locale]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}

	file := &ResolvedFile{
		locale:  locale,
		overlay: make(map[string]string),
		removed: make(map[string]struct{}),
	}
	for _, code := range s.Chain(locale) {
		file.layers = append(file.layers, s.locales[code].Values)
		file.chain = append(file.chain, code)
	}
	return file, nil
}

// ResolvedFile is the locale data of one locale with fallback applied,
// plus a mutation overlay.
type ResolvedFile struct {
	locale     string
	chain      []string
	layers     []map[string]string
	overlay    map[string]string
	removed    map[string]struct{}
	generation uint64
	frozen     bool

	paths      []string
	pathsGen   uint64
	pathsValid bool
	plurals    []PluralCategory
}

var _ MutableSnapshot = (*ResolvedFile)(nil)

func (f *ResolvedFile) Locale() string {
	return f.locale
}

// Chain returns the locales searched by Value, most specific first.
func (f *ResolvedFile) Chain() []string {
	out := make([]string, len(f.chain))
	copy(out, f.chain)
	return out
}

func (f *ResolvedFile) Value(path string) (string, bool) {
	if value, ok := f.overlay[path]; ok {
		return value, true
	}
	if _, gone := f.removed[path]; gone {
		return "", false
	}
	for _, layer := range f.layers {
		if value, ok := layer[path]; ok {
			return value, true
		}
	}
	return "", false
}

// SourceLocale reports which locale in the chain supplies path.
func (f *ResolvedFile) SourceLocale(path string) (string, bool) {
	if _, ok := f.overlay[path]; ok {
		return f.locale, true
	}
	if _, gone := f.removed[path]; gone {
		return "", false
	}
	for i, layer := range f.layers {
		if _, ok := layer[path]; ok {
			return f.chain[i], true
		}
	}
	return "", false
}

func (f *ResolvedFile) Paths() []string {
	if f.pathsValid && f.pathsGen == f.generation {
		out := make([]string, len(f.paths))
		copy(out, f.paths)
		return out
	}

	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		if _, gone := f.removed[path]; gone {
			if _, ok := f.overlay[path]; !ok {
				return
			}
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	for path := range f.overlay {
		add(path)
	}
	for _, layer := range f.layers {
		for path := range layer {
			add(path)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return ComparePaths(paths[i], paths[j]) < 0
	})

	f.paths = paths
	f.pathsGen = f.generation
	f.pathsValid = true

	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

func (f *ResolvedFile) PluralCategories() []PluralCategory {
	if f.plurals == nil {
		f.plurals = pluralCategoriesFor(f.locale)
	}
	out := make([]PluralCategory, len(f.plurals))
	copy(out, f.plurals)
	return out
}

func (f *ResolvedFile) Compare(a, b string) int {
	return ComparePaths(a, b)
}

// Freeze rejects all further mutation.
func (f *ResolvedFile) Freeze() {
	f.frozen = true
}

func (f *ResolvedFile) Set(path, value string) error {
	if f.frozen {
		return ErrReadOnlySnapshot
	}
	f.overlay[path] = value
	delete(f.removed, path)
	f.generation++
	return nil
}

func (f *ResolvedFile) Remove(path string) error {
	if f.frozen {
		return ErrReadOnlySnapshot
	}
	delete(f.overlay, path)
	f.removed[path] = struct{}{}
	f.generation++
	return nil
}

// Reset drops every mutation made through Set and Remove.
func (f *ResolvedFile) Reset() error {
	if f.frozen {
		return ErrReadOnlySnapshot
	}
	if len(f.overlay) == 0 && len(f.removed) == 0 {
		return nil
	}
	f.overlay = make(map[string]string)
	f.removed = make(map[string]struct{})
	f.generation++
	return nil
}

func (f *ResolvedFile) Generation() uint64 {
	return f.generation
}

// ComparePaths orders paths element by element. Numeric attribute values
// compare numerically and plural counts follow the canonical category order,
// so month 9 sorts before month 10 and "one" before "other".
func ComparePaths(a, b string) int {
	if a == b {
		return 0
	}
	pa, errA := ParsePath(a)
	pb, errB := ParsePath(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}

	for i := 0; i < len(pa.Elements) && i < len(pb.Elements); i++ {
		ea, eb := pa.Elements[i], pb.Elements[i]
		if c := strings.Compare(ea.Name, eb.Name); c != 0 {
			return c
		}
		for j := 0; j < len(ea.Attrs) && j < len(eb.Attrs); j++ {
			if c := strings.Compare(ea.Attrs[j].Key, eb.Attrs[j].Key); c != 0 {
				return c
			}
			if c := compareAttrValues(ea.Attrs[j].Key, ea.Attrs[j].Value, eb.Attrs[j].Value); c != 0 {
				return c
			}
		}
		if c := len(ea.Attrs) - len(eb.Attrs); c != 0 {
			return sign(c)
		}
	}
	if c := len(pa.Elements) - len(pb.Elements); c != 0 {
		return sign(c)
	}
	return strings.Compare(a, b)
}

func compareAttrValues(key, a, b string) int {
	if key == "count" || key == "ordinal" {
		ca, errA := parsePluralCategory(a)
		cb, errB := parsePluralCategory(b)
		if errA == nil && errB == nil {
			return sign(pluralCategoryOrder(ca) - pluralCategoryOrder(cb))
		}
	}
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
