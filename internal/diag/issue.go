package diag

import (
	"strings"

	"framelint/internal/node"
)

// FixCommand is the deferred corrective action attached to a fixable issue:
// set one property of one node to a new value. The previous value is
// captured at build time so the undo log can be derived mechanically.
type FixCommand struct {
	Property string `json:"property"`
	Value    any    `json:"value"`
	Prev     any    `json:"prev,omitempty"`
}

// Issue is one detected problem instance, tied to one rule and one node.
// Immutable after creation; a new audit replaces the whole set.
type Issue struct {
	// ID is "<ruleId>-<nodeId>", with an optional qualifier suffix for
	// rules producing more than one issue shape per node.
	ID          string         `json:"id"`
	RuleID      string         `json:"ruleId"`
	Node        node.Ref       `json:"node"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Severity    Severity       `json:"severity"`
	Category    Category       `json:"category"`
	CanAutoFix  bool           `json:"canAutoFix"`
	Fix         *FixCommand    `json:"fix,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// MakeID builds an issue id from rule id, node id and optional qualifiers.
func MakeID(ruleID, nodeID string, qualifier ...string) string {
	parts := append([]string{ruleID, nodeID}, qualifier...)
	return strings.Join(parts, "-")
}

// Fixable reports whether the issue carries an applicable fix.
func (i *Issue) Fixable() bool {
	return i != nil && i.CanAutoFix && i.Fix != nil
}
