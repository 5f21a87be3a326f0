package fix

import (
	"sync"
	"time"
)

// DefaultUndoCapacity is the number of journal entries kept before the
// oldest are evicted.
const DefaultUndoCapacity = 50

// UndoEntry is one journaled mutation: enough to restore the node's
// previous value.
type UndoEntry struct {
	IssueID       string
	NodeID        string
	Property      string
	PreviousValue any
	Timestamp     time.Time
}

// UndoLog is a bounded journal of applied fixes. When full, recording a new
// entry evicts the oldest. Thread-safe.
type UndoLog struct {
	mu      sync.Mutex
	entries []UndoEntry
	cap     int
}

// NewUndoLog creates a journal with the given capacity; values below one
// fall back to DefaultUndoCapacity.
func NewUndoLog(capacity int) *UndoLog {
	if capacity < 1 {
		capacity = DefaultUndoCapacity
	}
	return &UndoLog{cap: capacity}
}

// Record appends an entry, evicting the oldest when at capacity.
func (l *UndoLog) Record(entry UndoEntry) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == l.cap {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.cap-1]
	}
	l.entries = append(l.entries, entry)
}

// Last returns the most recent entry for the issue, scanning newest first.
func (l *UndoLog) Last(issueID string) (UndoEntry, bool) {
	if l == nil {
		return UndoEntry{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].IssueID == issueID {
			return l.entries[i], true
		}
	}
	return UndoEntry{}, false
}

// Len reports the number of journaled entries.
func (l *UndoLog) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops every entry.
func (l *UndoLog) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
