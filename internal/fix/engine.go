// Package fix applies the auto-fix commands attached to issues. Mutations go
// through an injected tree.Mutator; the engine itself never touches nodes.
// Every successful application is journaled in the UndoLog before anything
// else observes it.
package fix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"framelint/internal/diag"
	"framelint/internal/trace"
	"framelint/internal/tree"
)

// Batch summarises one ApplyAll run.
type Batch struct {
	Success int
	Failed  int
	Applied []Applied
	Skipped []Skipped
}

// Applied records a successfully executed fix.
type Applied struct {
	IssueID  string
	RuleID   string
	NodeID   string
	Property string
}

// Skipped records a fixable issue whose mutation failed, with the reason.
type Skipped struct {
	IssueID string
	Reason  string
}

// Progress is invoked after each fix attempt in a batch.
type Progress func(done, total int, issue diag.Issue, ok bool)

// Engine executes fix commands against a mutator.
type Engine struct {
	mutator tree.Mutator
	undo    *UndoLog
	tracer  trace.Tracer
}

// New creates a fix engine. undo may be nil to disable journaling.
func New(mutator tree.Mutator, undo *UndoLog, opts ...Option) *Engine {
	e := &Engine{
		mutator: mutator,
		undo:    undo,
		tracer:  trace.Nop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer attaches an instrumentation tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// Apply executes one issue's fix command. Returns false when the issue
// carries no fix or the mutation is rejected; a false result leaves the undo
// log untouched.
func (e *Engine) Apply(ctx context.Context, issue diag.Issue) bool {
	ok, _ := e.apply(ctx, issue)
	return ok
}

func (e *Engine) apply(ctx context.Context, issue diag.Issue) (bool, error) {
	if !issue.Fixable() {
		return false, nil
	}
	if e.mutator == nil {
		return false, errors.New("no mutator configured")
	}
	cmd := issue.Fix
	nodeID := issue.Node.ID
	if err := e.mutator.Set(ctx, nodeID, cmd.Property, cmd.Value); err != nil {
		trace.Point(e.tracer, trace.ScopeNode, "fix-rejected",
			fmt.Sprintf("%s: %v", issue.ID, err))
		return false, err
	}
	e.undo.Record(UndoEntry{
		IssueID:       issue.ID,
		NodeID:        nodeID,
		Property:      cmd.Property,
		PreviousValue: cmd.Prev,
		Timestamp:     time.Now(),
	})
	return true, nil
}

// ApplyAll executes every fixable issue in order, strictly sequentially.
// Non-fixable issues are not part of the batch and never count as failures;
// a batch with nothing fixable succeeds with zero counts. One failed
// mutation does not stop the rest.
func (e *Engine) ApplyAll(ctx context.Context, issues []diag.Issue, onProgress Progress) (*Batch, error) {
	fixable := make([]diag.Issue, 0, len(issues))
	for _, is := range issues {
		if is.Fixable() {
			fixable = append(fixable, is)
		}
	}

	batch := &Batch{}
	if len(fixable) == 0 {
		return batch, nil
	}

	span := trace.Begin(e.tracer, trace.ScopeAudit, "apply-fixes")
	for i, is := range fixable {
		ok, err := e.apply(ctx, is)
		if ok {
			batch.Success++
			batch.Applied = append(batch.Applied, Applied{
				IssueID:  is.ID,
				RuleID:   is.RuleID,
				NodeID:   is.Node.ID,
				Property: is.Fix.Property,
			})
		} else {
			batch.Failed++
			reason := "fix rejected"
			if err != nil {
				reason = err.Error()
			}
			batch.Skipped = append(batch.Skipped, Skipped{IssueID: is.ID, Reason: reason})
		}
		if onProgress != nil {
			onProgress(i+1, len(fixable), is, ok)
		}
	}
	span.End(fmt.Sprintf("%d ok, %d failed", batch.Success, batch.Failed))
	return batch, nil
}

// Undo reverts the most recent applied fix for the issue by restoring the
// journaled previous value. The undo itself is not journaled.
func (e *Engine) Undo(ctx context.Context, issueID string) error {
	if e.undo == nil {
		return fmt.Errorf("undo: no log configured")
	}
	entry, ok := e.undo.Last(issueID)
	if !ok {
		return fmt.Errorf("undo: no record for issue %s", issueID)
	}
	if e.mutator == nil {
		return errors.New("undo: no mutator configured")
	}
	return e.mutator.Set(ctx, entry.NodeID, entry.Property, entry.PreviousValue)
}
