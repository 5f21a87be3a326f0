package fix

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"framelint/internal/diag"
	"framelint/internal/node"
	"framelint/internal/tree"
)

// recordingMutator logs every Set and optionally rejects some properties.
type recordingMutator struct {
	sets   []string
	reject map[string]bool
}

func (m *recordingMutator) Set(ctx context.Context, nodeID, property string, value any) error {
	if m.reject[property] {
		return errors.New("unsupported property")
	}
	m.sets = append(m.sets, nodeID+"."+property)
	return nil
}

func fixableIssue(id, nodeID, property string, value, prev any) diag.Issue {
	return diag.Issue{
		ID:         id,
		RuleID:     "r",
		Node:       node.Ref{ID: nodeID},
		Severity:   diag.SevWarning,
		Category:   diag.CatLayout,
		CanAutoFix: true,
		Fix:        &diag.FixCommand{Property: property, Value: value, Prev: prev},
	}
}

func TestApplySingle(t *testing.T) {
	m := &recordingMutator{}
	undo := NewUndoLog(0)
	e := New(m, undo)
	ctx := context.Background()

	if !e.Apply(ctx, fixableIssue("i1", "n1", "gap", 0.0, -10.0)) {
		t.Fatal("Apply returned false for a valid fix")
	}
	if len(m.sets) != 1 || m.sets[0] != "n1.gap" {
		t.Errorf("mutations = %v", m.sets)
	}
	entry, ok := undo.Last("i1")
	if !ok {
		t.Fatal("fix not journaled")
	}
	if entry.PreviousValue != -10.0 || entry.Property != "gap" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestApplyNotFixable(t *testing.T) {
	m := &recordingMutator{}
	undo := NewUndoLog(0)
	e := New(m, undo)

	plain := diag.Issue{ID: "i1", Node: node.Ref{ID: "n1"}, Category: diag.CatLayout}
	if e.Apply(context.Background(), plain) {
		t.Error("Apply must return false without a fix command")
	}
	if len(m.sets) != 0 || undo.Len() != 0 {
		t.Error("non-fixable issue must not mutate or journal")
	}
}

func TestApplyRejectedMutation(t *testing.T) {
	m := &recordingMutator{reject: map[string]bool{"gap": true}}
	undo := NewUndoLog(0)
	e := New(m, undo)

	if e.Apply(context.Background(), fixableIssue("i1", "n1", "gap", 0.0, -10.0)) {
		t.Error("Apply must return false when the mutator rejects")
	}
	if undo.Len() != 0 {
		t.Error("rejected fix must not be journaled")
	}
}

func TestApplyAll(t *testing.T) {
	m := &recordingMutator{reject: map[string]bool{"position": true}}
	e := New(m, NewUndoLog(0))

	issues := []diag.Issue{
		fixableIssue("i1", "n1", "gap", 0.0, -10.0),
		{ID: "i2", Node: node.Ref{ID: "n2"}, Category: diag.CatLayout},
		fixableIssue("i3", "n3", "width", "fill", "320px"),
		fixableIssue("i4", "n4", "position", "auto", "absolute"),
	}

	var calls []string
	batch, err := e.ApplyAll(context.Background(), issues, func(done, total int, is diag.Issue, ok bool) {
		calls = append(calls, fmt.Sprintf("%d/%d %s %v", done, total, is.ID, ok))
	})
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if batch.Success != 2 || batch.Failed != 1 {
		t.Errorf("batch = %d/%d, want 2 success 1 failed", batch.Success, batch.Failed)
	}
	want := []string{"1/3 i1 true", "2/3 i3 true", "3/3 i4 false"}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("progress[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
	if len(batch.Skipped) != 1 || batch.Skipped[0].IssueID != "i4" {
		t.Errorf("skipped = %v", batch.Skipped)
	}
}

func TestApplyAllExcludesNonFixable(t *testing.T) {
	e := New(&recordingMutator{}, nil)
	issues := []diag.Issue{
		fixableIssue("i1", "n1", "gap", 0.0, -10.0),
		{ID: "i2", Node: node.Ref{ID: "n2"}, Category: diag.CatHierarchy},
		fixableIssue("i3", "n3", "width", "fill", "320px"),
	}
	batch, err := e.ApplyAll(context.Background(), issues, nil)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Success != 2 || batch.Failed != 0 {
		t.Errorf("batch = {%d, %d}, want {2, 0}: non-fixable issues count nowhere",
			batch.Success, batch.Failed)
	}
}

func TestApplyAllNothingFixable(t *testing.T) {
	e := New(&recordingMutator{}, nil)
	issues := []diag.Issue{{ID: "i1", Node: node.Ref{ID: "n1"}, Category: diag.CatLayout}}
	batch, err := e.ApplyAll(context.Background(), issues, nil)
	if err != nil {
		t.Fatalf("a batch with nothing fixable must not error: %v", err)
	}
	if batch.Success != 0 || batch.Failed != 0 {
		t.Errorf("batch = {%d, %d}, want {0, 0}", batch.Success, batch.Failed)
	}
}

func TestUndoRestoresPreviousValue(t *testing.T) {
	ctx := context.Background()
	snap := tree.FromRoots(&node.Node{
		Kind: node.KindFrame, ID: "row", Layout: node.LayoutHorizontal, Gap: -10,
	})
	undo := NewUndoLog(0)
	e := New(snap, undo)

	is := fixableIssue("negative-gap-row", "row", "gap", 0.0, -10.0)
	if !e.Apply(ctx, is) {
		t.Fatal("Apply failed")
	}
	if snap.Node("row").Gap != 0 {
		t.Fatalf("gap after fix = %v", snap.Node("row").Gap)
	}
	if err := e.Undo(ctx, "negative-gap-row"); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if snap.Node("row").Gap != -10 {
		t.Errorf("gap after undo = %v, want -10", snap.Node("row").Gap)
	}
	if err := e.Undo(ctx, "unknown-issue"); err == nil {
		t.Error("undo of unknown issue must error")
	}
}

func TestUndoLogEviction(t *testing.T) {
	l := NewUndoLog(50)
	for i := 0; i < 51; i++ {
		l.Record(UndoEntry{IssueID: fmt.Sprintf("i%d", i)})
	}
	if l.Len() != 50 {
		t.Fatalf("len = %d, want 50", l.Len())
	}
	if _, ok := l.Last("i0"); ok {
		t.Error("oldest entry must be evicted")
	}
	if _, ok := l.Last("i50"); !ok {
		t.Error("newest entry missing")
	}
}

func TestUndoLogNewestFirst(t *testing.T) {
	l := NewUndoLog(0)
	l.Record(UndoEntry{IssueID: "dup", PreviousValue: "old"})
	l.Record(UndoEntry{IssueID: "dup", PreviousValue: "newer"})
	entry, ok := l.Last("dup")
	if !ok || entry.PreviousValue != "newer" {
		t.Errorf("Last = %+v ok=%v, want the newer entry", entry, ok)
	}
	l.Clear()
	if l.Len() != 0 {
		t.Error("Clear left entries behind")
	}
}
