package tree

import (
	"context"
	"fmt"
	"sort"

	"framelint/internal/node"
)

// Set implements Mutator against the in-memory snapshot. Property handling
// mirrors the fix commands the rules emit. Setting the same value twice is
// harmless, so re-running a partially failed batch cannot corrupt the tree.
func (s *Snapshot) Set(ctx context.Context, nodeID, property string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := s.index[nodeID]
	if n == nil {
		return fmt.Errorf("unknown node %q", nodeID)
	}

	switch property {
	case "width":
		d, err := toDim(value)
		if err != nil {
			return fmt.Errorf("width: %w", err)
		}
		n.Width = d
	case "height":
		d, err := toDim(value)
		if err != nil {
			return fmt.Errorf("height: %w", err)
		}
		n.Height = d
	case "gap":
		v, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("gap: %w", err)
		}
		n.Gap = v
	case "position":
		if value == "absolute" {
			n.Position = node.PositionAbsolute
		} else {
			n.Position = node.PositionAuto
		}
	case "layoutMode":
		switch value {
		case "horizontal":
			n.Layout = node.LayoutHorizontal
		case "vertical":
			n.Layout = node.LayoutVertical
		case "none":
			n.Layout = node.LayoutNone
		default:
			return fmt.Errorf("layoutMode: invalid value %v", value)
		}
	case "minSize":
		v, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("minSize: %w", err)
		}
		growTo(n, v)
	case "childBorderRadius":
		v, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("childBorderRadius: %w", err)
		}
		for _, c := range n.Children {
			if c.Kind == node.KindFrame && c.Radius != nil {
				c.Radius = &node.Radius{Uniform: true, All: v}
			}
		}
	case "normalizeSpacing":
		v, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("normalizeSpacing: %w", err)
		}
		normalizeSpacing(n, v)
	case "flatten":
		childID, ok := value.(string)
		if !ok {
			return fmt.Errorf("flatten: child id must be a string, got %T", value)
		}
		if err := s.flatten(n, childID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported property %q", property)
	}
	return nil
}

// flatten hoists the single wrapper child's children into the wrapper.
func (s *Snapshot) flatten(n *node.Node, childID string) error {
	if len(n.Children) != 1 || n.Children[0].ID != childID {
		// Already flattened or the tree changed under us; treat a repeat
		// invocation as a no-op rather than an error.
		if s.index[childID] == nil {
			return nil
		}
		return fmt.Errorf("flatten: %q is not the sole child of %q", childID, n.ID)
	}
	child := n.Children[0]
	n.Children = child.Children
	delete(s.index, childID)
	return nil
}

// growTo raises both fixed dimensions to at least min px.
func growTo(n *node.Node, min float64) {
	if w, ok := node.FixedWidth(n); ok && w < min {
		n.Width = node.Px(min)
	}
	if h, ok := node.FixedHeight(n); ok && h < min {
		n.Height = node.Px(min)
	}
}

// normalizeSpacing repositions fixed-size children along their dominant
// axis with a uniform gap, keeping the first child in place.
func normalizeSpacing(n *node.Node, gap float64) {
	type placed struct {
		n     *node.Node
		start float64
		size  float64
	}

	var minX, maxX, minY, maxY float64
	for i, c := range n.Children {
		if i == 0 {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			continue
		}
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	horiz := maxX-minX >= maxY-minY

	items := make([]placed, 0, len(n.Children))
	for _, c := range n.Children {
		var size float64
		var ok bool
		var start float64
		if horiz {
			size, ok = node.FixedWidth(c)
			start = c.X
		} else {
			size, ok = node.FixedHeight(c)
			start = c.Y
		}
		if !ok {
			continue
		}
		items = append(items, placed{n: c, start: start, size: size})
	}
	if len(items) < 2 {
		return
	}
	sort.Slice(items, func(i, j int) bool { return items[i].start < items[j].start })

	cursor := items[0].start + items[0].size
	for _, it := range items[1:] {
		if horiz {
			it.n.X = cursor + gap
		} else {
			it.n.Y = cursor + gap
		}
		cursor += gap + it.size
	}
}

func toDim(v any) (node.Dim, error) {
	switch x := v.(type) {
	case string:
		return node.Sizing(x), nil
	case float64:
		return node.Px(x), nil
	case int:
		return node.Px(float64(x)), nil
	default:
		return node.Dim{}, fmt.Errorf("invalid dimension value %v (%T)", v, v)
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("invalid numeric value %v (%T)", v, v)
	}
}
