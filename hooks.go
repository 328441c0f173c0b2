package examplegen

import (
	"context"
	"time"
)

// RenderHook observes render calls.
type RenderHook interface {
	BeforeRender(ctx *RenderHookContext)
	AfterRender(ctx *RenderHookContext)
}

// RenderHookContext describes one render call. After hooks may rewrite
// Result and Found.
type RenderHookContext struct {
	Path     string
	Value    string
	Target   RenderTarget
	Category Category
	Result   string
	Found    bool
	CacheHit bool
	Error    error
	Started  time.Time
	Metadata map[string]any
}

func (ctx *RenderHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *RenderHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// Outcome classifies the finished call.
func (ctx *RenderHookContext) Outcome() RenderOutcome {
	switch {
	case ctx.Error != nil:
		return OutcomeFailure
	case !ctx.Found:
		return OutcomeAbsent
	default:
		return OutcomeRendered
	}
}

// RenderHookFuncs adapts plain functions to RenderHook.
type RenderHookFuncs struct {
	Before func(ctx *RenderHookContext)
	After  func(ctx *RenderHookContext)
}

func (h RenderHookFuncs) BeforeRender(ctx *RenderHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h RenderHookFuncs) AfterRender(ctx *RenderHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// MetricsHook feeds render calls into a MetricsRecorder.
func MetricsHook(recorder MetricsRecorder) RenderHook {
	if recorder == nil {
		recorder = NoopMetrics{}
	}
	return RenderHookFuncs{
		After: func(ctx *RenderHookContext) {
			if ctx.CacheHit {
				recorder.RecordCacheHit(context.Background(), ctx.Category)
			}
			recorder.RecordRender(context.Background(), ctx.Category, time.Since(ctx.Started), ctx.Outcome())
		},
	}
}

func filterHooks(hooks []RenderHook) []RenderHook {
	out := make([]RenderHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		out = append(out, hook)
	}
	return out
}
