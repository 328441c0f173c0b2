package examplegen

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Engine renders examples for the values of one locale snapshot. An engine
// is meant for single threaded use against an unchanging snapshot; call
// DisableCache before mutating the snapshot between calls.
type Engine struct {
	native   Snapshot
	english  Snapshot
	cfg      *Config
	registry *Registry
	composer *BackgroundComposer
	cache    *ExampleCache
	hooks    []RenderHook
	logger   *slog.Logger
}

// Rendering is the full outcome of rendering one value.
type Rendering struct {
	Path     Path
	Value    string
	Category Category
	Example  Example
	// Composed is set when a fragment was placed in its enclosing pattern.
	Composed bool
	// MissingBackground is set when a fragment had no enclosing pattern.
	MissingBackground bool
	Err               error
}

// New builds an engine for native.
func New(native Snapshot, opts ...Option) (*Engine, error) {
	if native == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrUnknownLocale)
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		native:   native,
		english:  cfg.English,
		cfg:      cfg,
		registry: cfg.Registry,
		composer: NewBackgroundComposer(cfg.Registry, cfg.MaxBackgroundDepth),
		cache:    NewExampleCache(),
		logger:   cfg.Logger.With(slog.String("locale", native.Locale())),
	}
	if e.english == nil {
		e.english = native
	}
	e.hooks = filterHooks(append([]RenderHook{MetricsHook(cfg.Metrics)}, cfg.Hooks...))
	if cfg.CacheDisabled {
		e.cache.Disable()
	}
	return e, nil
}

// Locale returns the locale of the native snapshot.
func (e *Engine) Locale() string {
	return e.native.Locale()
}

// Snapshot returns the native snapshot.
func (e *Engine) Snapshot() Snapshot {
	return e.native
}

// Config returns the resolved configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// DisableCache makes every later call recompute its example.
func (e *Engine) DisableCache() {
	e.cache.Disable()
}

// CacheDisabled reports whether the cache is bypassed.
func (e *Engine) CacheDisabled() bool {
	return e.cache.Disabled()
}

// Classify returns the category path is routed to, or CategoryNone for
// excluded, unmatched or malformed paths.
func (e *Engine) Classify(path string) Category {
	p, err := ParsePath(path)
	if err != nil {
		return CategoryNone
	}
	s, ok := e.strategyFor(p)
	if !ok {
		return CategoryNone
	}
	return s.Category
}

func (e *Engine) strategyFor(p Path) (Strategy, bool) {
	if e.cfg.Exclusions.Excluded(p) {
		return Strategy{}, false
	}
	return e.registry.Lookup(p)
}

// resolveValue picks the value shown for target: the English reference
// value when rendering for English and English defines the path.
func (e *Engine) resolveValue(path, value string, target RenderTarget) string {
	if target != TargetEnglish {
		return value
	}
	if english, ok := e.english.Value(path); ok && english != "" {
		return english
	}
	return value
}

// RenderExample returns the example markup for value at path, or false when
// no example applies. Rendering faults produce a fragment carrying
// FailureMarker instead of an error.
func (e *Engine) RenderExample(path, value string, target RenderTarget) (string, bool) {
	ctx := &RenderHookContext{
		Path:    path,
		Value:   value,
		Target:  target,
		Started: time.Now(),
	}
	for _, hook := range e.hooks {
		hook.BeforeRender(ctx)
	}

	p, err := ParsePath(ctx.Path)
	if err != nil {
		ctx.Error = err
		ctx.Result, ctx.Found = failureFragment(err), true
	} else if s, ok := e.strategyFor(p); ok {
		ctx.Category = s.Category
		ctx.Result, ctx.Found, ctx.CacheHit = e.cache.Get(ctx.Path, ctx.Value, ctx.Target, func() (string, bool) {
			r := e.inspect(s, p, ctx.Value, ctx.Target)
			if r.Err != nil && !errors.Is(r.Err, ErrMissingValue) {
				ctx.Error = r.Err
			}
			return e.markup(r)
		})
	}

	for _, hook := range e.hooks {
		hook.AfterRender(ctx)
	}
	return ctx.Result, ctx.Found
}

func (e *Engine) markup(r Rendering) (string, bool) {
	if r.Err != nil {
		if errors.Is(r.Err, ErrMissingValue) {
			return "", false
		}
		e.logger.Error("example rendering failed",
			slog.String("path", r.Path.String()),
			slog.String("error", r.Err.Error()))
		return failureFragment(r.Err), true
	}
	if r.Example.Empty() {
		return "", false
	}
	return Format(r.Example), true
}

// Inspect renders value at path without the cache and reports how the
// example was built. Excluded and unmatched paths yield CategoryNone.
func (e *Engine) Inspect(path, value string, target RenderTarget) Rendering {
	p, err := ParsePath(path)
	if err != nil {
		return Rendering{Value: value, Err: err}
	}
	s, ok := e.strategyFor(p)
	if !ok {
		return Rendering{Path: p, Value: value}
	}
	return e.inspect(s, p, value, target)
}

func (e *Engine) inspect(s Strategy, p Path, value string, target RenderTarget) (r Rendering) {
	value = e.resolveValue(p.String(), value, target)
	r = Rendering{Path: p, Value: value, Category: s.Category}
	defer func() {
		if rec := recover(); rec != nil {
			r.Example = Example{}
			r.Err = fmt.Errorf("examplegen: %s renderer panicked: %v", s.Name, rec)
		}
	}()

	rc := newRenderContext(target, e.native, e.english, e.cfg.Supplemental)
	ex, err := s.Render(rc, p, value)
	if err != nil {
		r.Err = err
		return r
	}
	r.Example = ex

	if !s.NeedsBackground() || ex.Empty() {
		return r
	}
	composed, ok, err := e.composer.Compose(rc, s, p, ex)
	if err != nil {
		r.Err = err
		return r
	}
	r.Example, r.Composed = composed, ok
	if !ok {
		r.MissingBackground = true
		if !e.cfg.Exclusions.OkToMissBackground(p) {
			e.logger.Warn("no background for fragment", slog.String("path", p.String()))
		}
	}
	return r
}

// RenderHelp returns help markup for the category of path, or false when
// no help applies.
func (e *Engine) RenderHelp(path, value string) (string, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return "", false
	}
	s, ok := e.strategyFor(p)
	if !ok {
		return "", false
	}
	markup, ok, err := e.cfg.Help.Render(HelpData{
		Path:     p,
		Value:    value,
		Category: s.Category,
		Locale:   e.Locale(),
	})
	if err != nil {
		e.logger.Error("help rendering failed", slog.String("path", path), slog.String("error", err.Error()))
		return failureFragment(err), true
	}
	return markup, ok
}

// CompoundUnitExample renders the locale's compound unit pattern for op
// ("per" or "times") at length with a sample of category count.
func (e *Engine) CompoundUnitExample(length UnitLength, op string, count PluralCategory) (string, bool) {
	path := fmt.Sprintf(`//ldml/units/unitLength[@type="%s"]/compoundUnit[@type="%s"]/compoundUnitPattern`, length, op)
	pattern, ok := e.native.Value(path)
	if !ok || pattern == "" {
		return "", false
	}
	rc := newRenderContext(TargetNative, e.native, e.english, e.cfg.Supplemental)
	v, err := compoundVariant(rc, length, op, count, pattern)
	if err != nil {
		if errors.Is(err, ErrMissingValue) {
			return "", false
		}
		return failureFragment(err), true
	}
	return Format(Example{Variants: []Variant{v}}), true
}
