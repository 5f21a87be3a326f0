package rule

import (
	"framelint/internal/diag"
	"framelint/internal/node"
	"framelint/internal/settings"
)

// Context is the structural surrounding of one node during one audit pass.
// Rebuilt per node, derived, never persisted.
type Context struct {
	// All is the full flattened node list of the audit, discovery order.
	All []*node.Node
	// Parent is the containing node, if any.
	Parent *node.Node
	// Siblings are the parent's children excluding the node itself.
	Siblings []*node.Node
	// Path is the display path of the node ("Page / Card / Title").
	Path string
	// Settings are the active audit settings.
	Settings *settings.Settings
}

// Meta is the immutable identity and classification of a rule.
type Meta struct {
	// ID is globally unique; it is the dedup and settings key.
	ID          string
	Name        string
	Description string
	Category    diag.Category
	// DefaultOn controls whether the rule runs when settings carry no
	// explicit allowlist.
	DefaultOn bool
}

// Rule is a stateless detector: given a node and its context it yields at
// most one issue. Check must fast-reject via cheap kind/shape guards, return
// nil for every expected "not applicable" condition, and reserve panics for
// genuinely unexpected failures (the engine isolates those per rule+node).
type Rule interface {
	Meta() Meta
	Check(n *node.Node, ctx *Context) *diag.Issue
}

func (m Meta) issue(n *node.Node, ctx *Context, sev diag.Severity, title, desc string) diag.Issue {
	return diag.Issue{
		ID:          diag.MakeID(m.ID, n.ID),
		RuleID:      m.ID,
		Node:        node.RefOf(n, ctx.Path),
		Title:       title,
		Description: desc,
		Severity:    sev,
		Category:    m.Category,
	}
}
