package audit

import (
	"context"
	"errors"
	"fmt"

	"framelint/internal/node"
	"framelint/internal/rule"
	"framelint/internal/settings"
	"framelint/internal/trace"
)

// ErrMalformedTree indicates a cycle or an implausibly deep chain in the
// host-supplied tree.
var ErrMalformedTree = errors.New("malformed tree")

// flatTree is the flattened node list plus display paths.
type flatTree struct {
	nodes []*node.Node
	paths map[string]string
}

// flatten walks every root depth-first, parent before children, preserving
// discovery order. Children come from the provider; on provider failure the
// node's embedded children are used instead, so a degraded host loses no
// nodes. A repeated id fails fast instead of looping forever.
func (e *Engine) flatten(ctx context.Context, roots []*node.Node) (*flatTree, error) {
	flat := &flatTree{paths: make(map[string]string)}
	visited := make(map[string]struct{})

	var walk func(n *node.Node, path string, depth int) error
	walk = func(n *node.Node, path string, depth int) error {
		if n == nil {
			return nil
		}
		if depth > e.maxDepth {
			return fmt.Errorf("%w: depth exceeds %d at node %q", ErrMalformedTree, e.maxDepth, n.ID)
		}
		if _, seen := visited[n.ID]; seen {
			return fmt.Errorf("%w: node %q reached twice (cycle or duplicate id)", ErrMalformedTree, n.ID)
		}
		visited[n.ID] = struct{}{}

		label := n.Name
		if label == "" {
			label = n.ID
		}
		if path != "" {
			label = path + " / " + label
		}
		flat.nodes = append(flat.nodes, n)
		flat.paths[n.ID] = label

		for _, c := range e.childrenOf(ctx, n) {
			if err := walk(c, label, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range roots {
		if err := walk(r, "", 0); err != nil {
			return nil, err
		}
	}
	return flat, nil
}

// childrenOf asks the provider first and falls back to the embedded
// children, so a degraded host yields a shallower tree, never an error.
func (e *Engine) childrenOf(ctx context.Context, n *node.Node) []*node.Node {
	if e.provider != nil {
		kids, err := e.provider.Children(ctx, n.ID)
		if err == nil {
			return kids
		}
		trace.Point(e.tracer, trace.ScopeNode, "provider-fallback",
			fmt.Sprintf("node %s: %v", n.ID, err))
	}
	return n.Children
}

// contextFor rebuilds the structural context of one node. The parent is
// found by rescanning the flattened list for a node listing this id among
// its children: O(n) per node, O(n^2) per audit. Deliberate — selections are
// bounded, and replacing the scan with a prebuilt map must not change dedup
// or ordering semantics.
func (f *flatTree) contextFor(n *node.Node, s *settings.Settings) *rule.Context {
	rctx := &rule.Context{
		All:      f.nodes,
		Path:     f.paths[n.ID],
		Settings: s,
	}
	for _, candidate := range f.nodes {
		for _, c := range candidate.Children {
			if c.ID == n.ID {
				rctx.Parent = candidate
				break
			}
		}
		if rctx.Parent != nil {
			break
		}
	}
	if rctx.Parent != nil {
		siblings := make([]*node.Node, 0, len(rctx.Parent.Children)-1)
		for _, c := range rctx.Parent.Children {
			if c.ID != n.ID {
				siblings = append(siblings, c)
			}
		}
		rctx.Siblings = siblings
	}
	return rctx
}
