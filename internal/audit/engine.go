// Package audit orchestrates one lint pass: flatten the node tree, build
// per-node structural context, run every enabled rule, and aggregate the
// deduplicated result. The pass is strictly sequential; determinism of
// issue order and first-wins dedup depends on it.
package audit

import (
	"context"
	"fmt"
	"time"

	"framelint/internal/diag"
	"framelint/internal/node"
	"framelint/internal/observ"
	"framelint/internal/rule"
	"framelint/internal/settings"
	"framelint/internal/trace"
	"framelint/internal/tree"
)

// DefaultMaxDepth bounds tree depth during flattening. Hosts never produce
// trees anywhere near this deep; hitting the cap means a malformed tree.
const DefaultMaxDepth = 256

// Result is the outcome of one audit.
type Result struct {
	Issues       []diag.Issue  `json:"issues"`
	NodesAudited int           `json:"nodesAudited"`
	DurationMS   float64       `json:"durationMs"`
	Errors       []string      `json:"errors,omitempty"`
	Timing       observ.Report `json:"timing"`
}

// Engine runs audits. Stateless between calls; safe to reuse.
type Engine struct {
	provider tree.Provider
	rules    []rule.Rule
	tracer   trace.Tracer
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules overrides the rule set (defaults to the full registry filtered
// by settings). Mainly for tests.
func WithRules(rules []rule.Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithTracer attaches an instrumentation tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithMaxDepth overrides the flattening depth cap.
func WithMaxDepth(d int) Option {
	return func(e *Engine) {
		if d > 0 {
			e.maxDepth = d
		}
	}
}

// New creates an engine. provider may be nil; flattening then uses only the
// nodes' embedded children.
func New(provider tree.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		tracer:   trace.Nop,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Audit runs every enabled rule against every node reachable from roots.
// It is idempotent and side-effect-free: fixes are only described, never
// applied. A rule panic is isolated to that (rule, node) pair and surfaces
// in Result.Errors; only a malformed tree fails the whole call.
func (e *Engine) Audit(ctx context.Context, roots []*node.Node, s *settings.Settings) (*Result, error) {
	if s == nil {
		s = settings.Default()
	}
	started := time.Now()
	timer := observ.NewTimer()
	span := trace.Begin(e.tracer, trace.ScopeAudit, "audit")

	enabled := e.rules
	if enabled == nil {
		enabled = rule.Enabled(s)
	}

	phase := timer.Begin("flatten")
	flat, err := e.flatten(ctx, roots)
	if err != nil {
		span.End("flatten failed")
		return nil, err
	}
	timer.End(phase, fmt.Sprintf("%d nodes", len(flat.nodes)))

	phase = timer.Begin("rules")
	bag := diag.NewBag(s.MaxIssues)
	var errs []string
	for _, n := range flat.nodes {
		rctx := flat.contextFor(n, s)
		for _, r := range enabled {
			is, checkErr := safeCheck(r, n, rctx)
			if checkErr != nil {
				errs = append(errs, checkErr.Error())
				trace.Point(e.tracer, trace.ScopeNode, "rule-failure", checkErr.Error())
				continue
			}
			if is != nil {
				bag.Add(*is)
			}
		}
	}
	timer.End(phase, fmt.Sprintf("%d rules", len(enabled)))

	span.End(fmt.Sprintf("%d issues", bag.Len()))
	return &Result{
		Issues:       bag.Items(),
		NodesAudited: len(flat.nodes),
		DurationMS:   float64(time.Since(started)) / float64(time.Millisecond),
		Errors:       errs,
		Timing:       timer.Report(),
	}, nil
}

// safeCheck isolates one rule invocation: a panic becomes a per-(rule,node)
// error instead of aborting the audit.
func safeCheck(r rule.Rule, n *node.Node, rctx *rule.Context) (is *diag.Issue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			is = nil
			err = fmt.Errorf("rule %s failed on node %s: %v", r.Meta().ID, n.ID, rec)
		}
	}()
	return r.Check(n, rctx), nil
}
