package diag

import "testing"

func issue(id string, sev Severity, cat Category, fixable bool) Issue {
	return Issue{ID: id, RuleID: "r", Severity: sev, Category: cat, CanAutoFix: fixable}
}

func TestBagDedupFirstWins(t *testing.T) {
	b := NewBag(0)
	first := issue("rule-a-n1", SevWarning, CatLayout, true)
	first.Title = "first"
	dup := issue("rule-a-n1", SevError, CatLayout, false)
	dup.Title = "second"
	if !b.Add(first) {
		t.Fatal("first occurrence must be kept")
	}
	if b.Add(dup) {
		t.Error("duplicate id must be dropped")
	}
	b.Add(issue("rule-a-n2", SevInfo, CatSpacing, false))

	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if b.Items()[0].Title != "first" {
		t.Errorf("kept %q, want first occurrence", b.Items()[0].Title)
	}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(issue("a", SevInfo, CatLayout, false)) || !b.Add(issue("b", SevInfo, CatLayout, false)) {
		t.Fatal("adds under cap must succeed")
	}
	if b.Add(issue("c", SevInfo, CatLayout, false)) {
		t.Error("add over cap must be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("len = %d, want 2", b.Len())
	}
}

func TestBagDuplicatesDoNotConsumeCap(t *testing.T) {
	b := NewBag(2)
	b.Add(issue("a", SevInfo, CatLayout, false))
	b.Add(issue("a", SevInfo, CatLayout, false))
	b.Add(issue("a", SevInfo, CatLayout, false))
	if !b.Add(issue("b", SevWarning, CatSpacing, false)) {
		t.Error("a later unique issue must still fit under the cap")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if b.Items()[1].ID != "b" {
		t.Errorf("second slot = %s, want b", b.Items()[1].ID)
	}
}

func TestBagMergeDeduplicates(t *testing.T) {
	a := NewBag(0)
	a.Add(issue("x", SevInfo, CatLayout, false))
	other := NewBag(0)
	other.Add(issue("x", SevError, CatLayout, false))
	other.Add(issue("y", SevInfo, CatSpacing, false))

	a.Merge(other)
	if a.Len() != 2 {
		t.Fatalf("len after merge = %d, want 2", a.Len())
	}
	if a.Items()[0].Severity != SevInfo {
		t.Error("merge must keep the first occurrence of a duplicated id")
	}
}

func TestSortBySeverityStable(t *testing.T) {
	issues := []Issue{
		issue("i1", SevInfo, CatLayout, false),
		issue("w1", SevWarning, CatLayout, false),
		issue("e1", SevError, CatLayout, false),
		issue("w2", SevWarning, CatLayout, false),
		issue("e2", SevError, CatLayout, false),
	}
	got := SortBySeverity(issues)
	wantOrder := []string{"e1", "e2", "w1", "w2", "i1"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("pos %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestGroupByCategoryIsPartition(t *testing.T) {
	issues := []Issue{
		issue("a", SevInfo, CatLayout, false),
		issue("b", SevInfo, CatLayout, false),
		issue("c", SevWarning, CatSpacing, true),
		issue("d", SevError, CatAccessibility, false),
	}
	groups := GroupByCategory(issues)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(issues) {
		t.Errorf("partition total = %d, want %d", total, len(issues))
	}
	if len(groups[CatLayout]) != 2 {
		t.Errorf("layout group = %d, want 2", len(groups[CatLayout]))
	}
	if len(GroupByCategory(nil)) != 0 {
		t.Error("empty input yields empty grouping")
	}
}

func TestAutoFixableCount(t *testing.T) {
	if n := AutoFixableCount(nil); n != 0 {
		t.Errorf("count(nil) = %d, want 0", n)
	}
	issues := []Issue{
		issue("a", SevInfo, CatLayout, true),
		issue("b", SevInfo, CatLayout, false),
		issue("c", SevInfo, CatLayout, true),
	}
	if n := AutoFixableCount(issues); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestMakeID(t *testing.T) {
	if got := MakeID("overflowing-text", "n7", "width"); got != "overflowing-text-n7-width" {
		t.Errorf("MakeID = %q", got)
	}
	if got := MakeID("negative-gap", "n1"); got != "negative-gap-n1" {
		t.Errorf("MakeID = %q", got)
	}
}
