package examplegen

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ProblemKind classifies a defect found while sweeping a locale.
type ProblemKind string

const (
	// ProblemNoExample is a renderable path that produced nothing.
	ProblemNoExample ProblemKind = "no-example"
	// ProblemNullInMessage is an example showing the text "null".
	ProblemNullInMessage ProblemKind = "null-in-message"
	// ProblemFunnyMarkup is markup that does not normalize to an example.
	ProblemFunnyMarkup ProblemKind = "funny-markup"
	// ProblemNoBackground is a fragment rendered without its enclosing pattern.
	ProblemNoBackground ProblemKind = "no-background"
	// ProblemNoSubstitution is an example without any sample data.
	ProblemNoSubstitution ProblemKind = "no-substitution"
	// ProblemFailure is a captured render fault.
	ProblemFailure ProblemKind = "failure"
)

// SweepProblem is one defect for one path.
type SweepProblem struct {
	Kind    ProblemKind
	Path    string
	Value   string
	Example string
}

func (p SweepProblem) String() string {
	if p.Example == "" {
		return fmt.Sprintf("%s\t%s\t%q", p.Kind, p.Path, p.Value)
	}
	return fmt.Sprintf("%s\t%s\t%q\t%s", p.Kind, p.Path, p.Value, p.Example)
}

// SweepReport collects the outcome of rendering every path of a locale.
type SweepReport struct {
	Locale   string
	Target   RenderTarget
	Checked  int
	Skipped  int
	Rendered int
	Problems []SweepProblem
}

// Count returns the number of problems of kind.
func (r *SweepReport) Count(kind ProblemKind) int {
	n := 0
	for _, p := range r.Problems {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// HasDefects reports whether any problem was found.
func (r *SweepReport) HasDefects() bool {
	return len(r.Problems) > 0
}

// Kinds returns the problem counts keyed by kind.
func (r *SweepReport) Kinds() map[ProblemKind]int {
	out := make(map[ProblemKind]int)
	for _, p := range r.Problems {
		out[p.Kind]++
	}
	return out
}

func (r *SweepReport) add(kind ProblemKind, path, value, example string) {
	r.Problems = append(r.Problems, SweepProblem{Kind: kind, Path: path, Value: value, Example: example})
}

// Sweep renders every path of the engine's snapshot and reports defects.
// Excluded paths are skipped. The sweep stops early when ctx is done.
func (e *Engine) Sweep(ctx context.Context, target RenderTarget) (*SweepReport, error) {
	report := &SweepReport{Locale: e.Locale(), Target: target}
	for i, path := range e.native.Paths() {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}
		value, ok := e.native.Value(path)
		if !ok {
			continue
		}
		p, err := ParsePath(path)
		if err != nil {
			report.add(ProblemFailure, path, value, err.Error())
			continue
		}
		if e.cfg.Exclusions.Excluded(p) {
			report.Skipped++
			continue
		}
		report.Checked++
		e.checkPath(report, p, value, target)
	}

	sort.SliceStable(report.Problems, func(i, j int) bool {
		return e.native.Compare(report.Problems[i].Path, report.Problems[j].Path) < 0
	})

	attrs := []any{
		slog.String("locale", report.Locale),
		slog.String("target", target.String()),
		slog.Int("checked", report.Checked),
		slog.Int("skipped", report.Skipped),
		slog.Int("problems", len(report.Problems)),
	}
	for kind, n := range report.Kinds() {
		attrs = append(attrs, slog.Int(string(kind), n))
	}
	e.logger.Info("sweep finished", attrs...)
	return report, nil
}

func (e *Engine) checkPath(report *SweepReport, p Path, value string, target RenderTarget) {
	path := p.String()
	markup, found := e.RenderExample(path, value, target)
	if !found {
		report.add(ProblemNoExample, path, value, "")
		return
	}
	report.Rendered++

	if strings.Contains(markup, FailureMarker) {
		report.add(ProblemFailure, path, value, markup)
		return
	}

	text := Normalize(markup, false)
	if strings.Contains(text, "null") {
		report.add(ProblemNullInMessage, path, value, text)
	}
	if !strings.HasPrefix(text, ExampleStart) {
		report.add(ProblemFunnyMarkup, path, value, markup)
	}
	if !strings.Contains(text, SubstitutedStart) && !e.cfg.Exclusions.OkWithoutSubstitution(p) {
		report.add(ProblemNoSubstitution, path, value, text)
	}

	if s, ok := e.strategyFor(p); ok && s.NeedsBackground() {
		if r := e.Inspect(path, value, target); r.MissingBackground && !e.cfg.Exclusions.OkToMissBackground(p) {
			report.add(ProblemNoBackground, path, value, text)
		}
	}
}
