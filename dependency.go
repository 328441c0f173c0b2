package examplegen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dependency analysis defaults.
const (
	DefaultDependencyLimit    = 200
	DefaultDependencyProgress = 100
)

// DependencyGraph records which paths' examples change when another
// path's value changes. Edges point from the mutated path to the affected one.
type DependencyGraph struct {
	RunID      string
	Locale     string
	Started    time.Time
	Finished   time.Time
	Candidates int
	Skipped    int
	forward    map[string]map[string]struct{}
	reverse    map[string]map[string]struct{}
}

// NewDependencyGraph returns an empty graph with a fresh run id.
func NewDependencyGraph(locale string) *DependencyGraph {
	return &DependencyGraph{
		RunID:   uuid.NewString(),
		Locale:  locale,
		Started: time.Now().UTC(),
		forward: make(map[string]map[string]struct{}),
		reverse: make(map[string]map[string]struct{}),
	}
}

// Add records that changing from alters the example of to.
func (g *DependencyGraph) Add(from, to string) {
	addEdge(g.forward, from, to)
	addEdge(g.reverse, to, from)
}

func addEdge(m map[string]map[string]struct{}, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[value] = struct{}{}
}

// Edges returns the number of recorded edges.
func (g *DependencyGraph) Edges() int {
	n := 0
	for _, set := range g.forward {
		n += len(set)
	}
	return n
}

// Dependents lists the paths whose examples depend on path, sorted.
func (g *DependencyGraph) Dependents(path string) []string {
	return sortedKeys(g.forward[path])
}

// Dependencies lists the paths the example of path depends on, sorted.
func (g *DependencyGraph) Dependencies(path string) []string {
	return sortedKeys(g.reverse[path])
}

// Sources lists every path that has dependents, sorted.
func (g *DependencyGraph) Sources() []string {
	out := make([]string, 0, len(g.forward))
	for path := range g.forward {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// DependentCounts maps each mutated path to its number of dependents.
func (g *DependencyGraph) DependentCounts() map[string]int {
	return countSets(g.forward)
}

// DependencyCounts maps each affected path to the number of paths it depends on.
func (g *DependencyGraph) DependencyCounts() map[string]int {
	return countSets(g.reverse)
}

func countSets(m map[string]map[string]struct{}) map[string]int {
	out := make(map[string]int, len(m))
	for key, set := range m {
		out[key] = len(set)
	}
	return out
}

// WriteCounts writes a JSON object mapping paths to counts, keys sorted.
func WriteCounts(w io.Writer, counts map[string]int) error {
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write counts: %w", err)
	}
	return nil
}

// mutateValue returns a value guaranteed to differ from value: every "1"
// becomes "0", else every "0" becomes "1", else "1" is appended.
func mutateValue(value string) string {
	if changed := strings.ReplaceAll(value, "1", "0"); changed != value {
		return changed
	}
	if changed := strings.ReplaceAll(value, "0", "1"); changed != value {
		return changed
	}
	return value + "1"
}

// DependencyOption configures a DependencyAnalyzer.
type DependencyOption func(*DependencyAnalyzer)

// WithDependencyLimit caps the number of mutated paths; 0 means no limit.
func WithDependencyLimit(limit int) DependencyOption {
	return func(a *DependencyAnalyzer) {
		if limit >= 0 {
			a.limit = limit
		}
	}
}

// WithDependencySkip excludes paths for which skip returns true. The
// candidate flag is set when the path is about to be mutated.
func WithDependencySkip(skip func(path string, candidate bool) bool) DependencyOption {
	return func(a *DependencyAnalyzer) {
		a.skip = skip
	}
}

// WithDependencyPaths restricts the analysis to paths.
func WithDependencyPaths(paths ...string) DependencyOption {
	return func(a *DependencyAnalyzer) {
		a.paths = append([]string(nil), paths...)
	}
}

// WithDependencyLogger sets the progress logger.
func WithDependencyLogger(logger *slog.Logger) DependencyOption {
	return func(a *DependencyAnalyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithEngineOptions passes options to every engine the analyzer builds.
func WithEngineOptions(opts ...Option) DependencyOption {
	return func(a *DependencyAnalyzer) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// DependencyAnalyzer discovers which examples depend on which values by
// mutating one value at a time. It is a batch diagnostic, quadratic in the
// number of paths, and its edges are hints rather than ground truth.
type DependencyAnalyzer struct {
	snap       MutableSnapshot
	limit      int
	skip       func(path string, candidate bool) bool
	paths      []string
	logger     *slog.Logger
	engineOpts []Option
}

// NewDependencyAnalyzer prepares an analysis over snap. The analyzer
// mutates snap while running and restores every value before returning.
func NewDependencyAnalyzer(snap MutableSnapshot, opts ...DependencyOption) *DependencyAnalyzer {
	a := &DependencyAnalyzer{
		snap:   snap,
		limit:  DefaultDependencyLimit,
		skip:   defaultDependencySkip,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.skip == nil {
		a.skip = defaultDependencySkip
	}
	return a
}

func defaultDependencySkip(path string, _ bool) bool {
	return strings.HasSuffix(path, "/alias") || strings.HasPrefix(path, "//ldml/identity")
}

// Run executes the analysis. A baseline engine with its cache warmed
// before any mutation is compared against a fresh engine with caching
// disabled for every candidate.
func (a *DependencyAnalyzer) Run(ctx context.Context) (*DependencyGraph, error) {
	if a.snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrUnknownLocale)
	}
	baseline, err := New(a.snap, a.engineOpts...)
	if err != nil {
		return nil, err
	}
	shared := []Option{
		WithSupplemental(baseline.cfg.Supplemental),
		WithExclusions(baseline.cfg.Exclusions),
		WithHelp(baseline.cfg.Help),
		WithRegistry(baseline.cfg.Registry),
		WithEnglish(baseline.english),
		WithLogger(baseline.cfg.Logger),
		WithCacheDisabled(),
	}

	graph := NewDependencyGraph(a.snap.Locale())
	paths := a.paths
	if len(paths) == 0 {
		paths = a.snap.Paths()
	}

	for _, path := range paths {
		if value, ok := a.snap.Value(path); ok {
			baseline.RenderExample(path, value, TargetNative)
		}
	}

	for _, pathA := range paths {
		if err := ctx.Err(); err != nil {
			return graph, err
		}
		if a.skip(pathA, true) {
			graph.Skipped++
			continue
		}
		valueA, ok := a.snap.Value(pathA)
		if !ok {
			continue
		}
		if a.limit > 0 && graph.Candidates >= a.limit {
			break
		}
		graph.Candidates++
		if graph.Candidates%DefaultDependencyProgress == 0 {
			a.logger.Info("dependency analysis progress",
				slog.String("run_id", graph.RunID),
				slog.Int("candidates", graph.Candidates),
				slog.Int("edges", graph.Edges()))
		}

		if err := a.measure(graph, baseline, shared, paths, pathA, valueA); err != nil {
			return graph, err
		}
	}

	graph.Finished = time.Now().UTC()
	a.logger.Info("dependency analysis finished",
		slog.String("run_id", graph.RunID),
		slog.String("locale", graph.Locale),
		slog.Int("candidates", graph.Candidates),
		slog.Int("skipped", graph.Skipped),
		slog.Int("edges", graph.Edges()))
	return graph, nil
}

func (a *DependencyAnalyzer) measure(graph *DependencyGraph, baseline *Engine, shared []Option, paths []string, pathA, valueA string) (err error) {
	if err := a.snap.Set(pathA, mutateValue(valueA)); err != nil {
		return fmt.Errorf("mutate %s: %w", pathA, err)
	}
	defer func() {
		if restoreErr := a.snap.Set(pathA, valueA); restoreErr != nil && err == nil {
			err = fmt.Errorf("restore %s: %w", pathA, restoreErr)
		}
	}()

	fresh, err := New(a.snap, shared...)
	if err != nil {
		return err
	}
	for _, pathB := range paths {
		if pathB == pathA || a.skip(pathB, false) {
			continue
		}
		valueB, ok := a.snap.Value(pathB)
		if !ok {
			continue
		}
		base, baseFound := baseline.RenderExample(pathB, valueB, TargetNative)
		test, testFound := fresh.RenderExample(pathB, valueB, TargetNative)
		if baseFound != testFound {
			a.logger.Warn("example appeared or vanished after mutation",
				slog.String("mutated", pathA),
				slog.String("path", pathB))
			continue
		}
		if testFound && base != test {
			graph.Add(pathA, pathB)
		}
	}
	return nil
}
