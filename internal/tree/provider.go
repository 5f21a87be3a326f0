package tree

import (
	"context"

	"framelint/internal/node"
)

// Provider supplies a node's children from the host document. The audit
// engine calls it once per flattened node, sequentially, in discovery order;
// on failure the engine falls back to the node's embedded children.
type Provider interface {
	Children(ctx context.Context, nodeID string) ([]*node.Node, error)
}

// Mutator applies a single property change to a node in the host document.
// Fix commands are executed through this interface; the property vocabulary
// is the one the rules emit (width, height, gap, position, layoutMode,
// minSize, childBorderRadius, normalizeSpacing, flatten).
type Mutator interface {
	Set(ctx context.Context, nodeID, property string, value any) error
}
