package diag

import "sort"

// Bag accumulates deduplicated issues during one audit, bounded by a
// display cap.
type Bag struct {
	items []Issue
	seen  map[string]struct{}
	max   int
}

// NewBag creates a bag capped at max issues; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 256 {
		capHint = 64
	}
	return &Bag{
		items: make([]Issue, 0, capHint),
		seen:  make(map[string]struct{}, capHint),
		max:   max,
	}
}

// Add appends an issue, honoring the cap. Duplicate ids are dropped before
// the cap check, so they never consume cap slots: first occurrence wins,
// later duplicates are dropped silently, never merged.
// Returns false if the issue was dropped.
func (b *Bag) Add(is Issue) bool {
	if _, dup := b.seen[is.ID]; dup {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	b.seen[is.ID] = struct{}{}
	b.items = append(b.items, is)
	return true
}

// Len returns the number of collected issues.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the collected issues.
// Do not modify the returned slice; it aliases the bag's backing array.
func (b *Bag) Items() []Issue { return b.items }

// HasErrors reports whether at least one issue has error severity.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Merge adds all issues from another bag, growing the cap if needed.
// Ids already collected stay deduplicated across the merge.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	for _, is := range other.items {
		b.Add(is)
	}
}

// SortBySeverity orders errors before warnings before info, preserving
// relative order within equal severity.
func (b *Bag) SortBySeverity() {
	b.items = SortBySeverity(b.items)
}

// SortBySeverity stably sorts a copy-free issue slice by descending severity.
func SortBySeverity(issues []Issue) []Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity > issues[j].Severity
	})
	return issues
}

// GroupByCategory partitions issues by category. Every issue lands in
// exactly one group; group order within a category follows input order.
func GroupByCategory(issues []Issue) map[Category][]Issue {
	groups := make(map[Category][]Issue)
	for _, is := range issues {
		groups[is.Category] = append(groups[is.Category], is)
	}
	return groups
}

// AutoFixableCount counts issues flagged as auto-fixable.
func AutoFixableCount(issues []Issue) int {
	n := 0
	for i := range issues {
		if issues[i].CanAutoFix {
			n++
		}
	}
	return n
}
