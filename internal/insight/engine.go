// Package insight composes per-domain KPI bundles into ranked cross-domain alerts.
package insight

import (
	"sort"

	"github.com/wonny/pulseboard/backend/internal/contracts"
)

// DefaultLimit is the size of Result.Top when no limit is given.
const DefaultLimit = 3

// Rule inspects the context and returns an insight, or nil when its gate is closed.
// Rules are stateless and must not depend on each other.
type Rule interface {
	Evaluate(ctx contracts.InsightContext) *contracts.Insight
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(ctx contracts.InsightContext) *contracts.Insight

// Evaluate calls f(ctx).
func (f RuleFunc) Evaluate(ctx contracts.InsightContext) *contracts.Insight {
	return f(ctx)
}

// Options controls one engine run.
type Options struct {
	Limit int // size of Top; <= 0 means DefaultLimit
}

// Result holds every fired insight in rank order, and the truncated head.
type Result struct {
	All []contracts.Insight `json:"all"`
	Top []contracts.Insight `json:"top"`
}

// Engine evaluates a fixed rule registry
// ⭐ SSOT: 교차 도메인 인사이트 판정은 여기서만
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over rules; with none it uses DefaultRules.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// RuleCount returns the number of registered rules.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Compute runs every rule against ctx and ranks what fired by severity,
// then priority, then title. Registry order breaks remaining ties.
func (e *Engine) Compute(ctx contracts.InsightContext, opts Options) Result {
	all := make([]contracts.Insight, 0, len(e.rules))
	for _, r := range e.rules {
		if in := r.Evaluate(ctx); in != nil {
			all = append(all, *in)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.Title < b.Title
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	top := all
	if len(top) > limit {
		top = top[:limit]
	}

	return Result{
		All: all,
		Top: append(make([]contracts.Insight, 0, len(top)), top...),
	}
}

// ComputeCrossDomainInsights runs the default registry.
func ComputeCrossDomainInsights(ctx contracts.InsightContext, limit int) Result {
	return NewEngine().Compute(ctx, Options{Limit: limit})
}
