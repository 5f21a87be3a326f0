package rule

import (
	"fmt"
	"math"
	"sort"

	"framelint/internal/diag"
	"framelint/internal/node"
)

// collinearTolerance is the max cross-axis drift (px) for children to count
// as one row or column; gapTolerance bounds deviation from the mean gap.
const (
	collinearTolerance = 5.0
	gapTolerance       = 5.0
)

type fixedInsideFill struct{ meta Meta }

func newFixedInsideFill() Rule {
	return fixedInsideFill{meta: Meta{
		ID:          "fixed-inside-fill",
		Name:        "Fixed size inside fill container",
		Description: "A fixed-width layer inside a fill-width frame will not adapt when the frame resizes",
		Category:    diag.CatLayout,
		DefaultOn:   true,
	}}
}

func (r fixedInsideFill) Meta() Meta { return r.meta }

func (r fixedInsideFill) Check(n *node.Node, ctx *Context) *diag.Issue {
	if ctx.Parent == nil || ctx.Parent.Kind != node.KindFrame || !node.IsFillWidth(ctx.Parent) {
		return nil
	}
	w, ok := node.FixedWidth(n)
	if !ok {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevWarning,
		fmt.Sprintf("%q has a fixed width inside a fill-width frame", n.Name),
		"Switch the layer to fill width so it follows its container.")
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "width", Value: "fill", Prev: w}
	is.Metadata = map[string]any{"currentWidth": w}
	return &is
}

type absoluteInAutoLayout struct{ meta Meta }

func newAbsoluteInAutoLayout() Rule {
	return absoluteInAutoLayout{meta: Meta{
		ID:          "absolute-in-auto-layout",
		Name:        "Absolute position inside auto-layout",
		Description: "Absolutely positioned layers are skipped by the parent's auto-layout flow",
		Category:    diag.CatLayout,
		DefaultOn:   true,
	}}
}

func (r absoluteInAutoLayout) Meta() Meta { return r.meta }

func (r absoluteInAutoLayout) Check(n *node.Node, ctx *Context) *diag.Issue {
	if !node.IsAutoLayout(ctx.Parent) || n.Position != node.PositionAbsolute {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevError,
		fmt.Sprintf("%q is absolutely positioned inside an auto-layout frame", n.Name),
		"Return the layer to the layout flow, or move it out of the auto-layout frame.")
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "position", Value: "auto", Prev: "absolute"}
	return &is
}

type overflowingText struct{ meta Meta }

func newOverflowingText() Rule {
	return overflowingText{meta: Meta{
		ID:          "overflowing-text",
		Name:        "Text overflows its frame",
		Description: "A text layer larger than its parent frame gets clipped or spills out",
		Category:    diag.CatLayout,
		DefaultOn:   true,
	}}
}

func (r overflowingText) Meta() Meta { return r.meta }

// Check reports height overflow as an error and width overflow as a warning.
// Height takes precedence when both overflow; the issue id carries the axis
// qualifier so the two shapes stay distinct across audits.
func (r overflowingText) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindText || ctx.Parent == nil || ctx.Parent.Kind != node.KindFrame {
		return nil
	}
	if is := r.overflow(n, ctx, "height", diag.SevError, node.FixedHeight); is != nil {
		return is
	}
	return r.overflow(n, ctx, "width", diag.SevWarning, node.FixedWidth)
}

func (r overflowingText) overflow(n *node.Node, ctx *Context, axis string, sev diag.Severity, dim func(*node.Node) (float64, bool)) *diag.Issue {
	textSize, ok := dim(n)
	if !ok {
		return nil
	}
	parentSize, ok := dim(ctx.Parent)
	if !ok || textSize <= parentSize {
		return nil
	}
	is := r.meta.issue(n, ctx, sev,
		fmt.Sprintf("Text %q overflows its frame's %s", n.Name, axis),
		fmt.Sprintf("The text %s (%gpx) exceeds the parent frame's %s (%gpx).", axis, textSize, axis, parentSize))
	is.ID = diag.MakeID(r.meta.ID, n.ID, axis)
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: axis, Value: parentSize, Prev: textSize}
	is.Metadata = map[string]any{"axis": axis, "textSize": textSize, "parentSize": parentSize}
	return &is
}

type shouldAutoLayout struct{ meta Meta }

func newShouldAutoLayout() Rule {
	return shouldAutoLayout{meta: Meta{
		ID:          "should-auto-layout",
		Name:        "Frame could use auto-layout",
		Description: "Evenly spaced collinear children suggest the frame wants auto-layout",
		Category:    diag.CatLayout,
		DefaultOn:   true,
	}}
}

func (r shouldAutoLayout) Meta() Meta { return r.meta }

func (r shouldAutoLayout) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindFrame || node.IsAutoLayout(n) || len(n.Children) < 3 {
		return nil
	}
	for _, axis := range []node.LayoutMode{node.LayoutHorizontal, node.LayoutVertical} {
		mean, ok := evenRun(n.Children, axis)
		if !ok {
			continue
		}
		is := r.meta.issue(n, ctx, diag.SevInfo,
			fmt.Sprintf("%q looks like a %s stack", n.Name, axis),
			"The children are collinear and evenly spaced; auto-layout would keep them that way.")
		is.CanAutoFix = true
		is.Fix = &diag.FixCommand{Property: "layoutMode", Value: axis.String(), Prev: n.Layout.String()}
		is.Metadata = map[string]any{"axis": axis.String(), "meanGap": mean}
		return &is
	}
	return nil
}

// evenRun checks whether children form a single evenly spaced run along the
// given axis: cross-axis positions within collinearTolerance of each other,
// and every inter-child gap within gapTolerance of the mean gap.
func evenRun(children []*node.Node, axis node.LayoutMode) (float64, bool) {
	type box struct{ start, end, cross float64 }
	boxes := make([]box, 0, len(children))
	for _, c := range children {
		var size float64
		var ok bool
		b := box{}
		if axis == node.LayoutHorizontal {
			size, ok = node.FixedWidth(c)
			b.start, b.cross = c.X, c.Y
		} else {
			size, ok = node.FixedHeight(c)
			b.start, b.cross = c.Y, c.X
		}
		if !ok {
			return 0, false
		}
		b.end = b.start + size
		boxes = append(boxes, b)
	}

	minCross, maxCross := boxes[0].cross, boxes[0].cross
	for _, b := range boxes[1:] {
		minCross = math.Min(minCross, b.cross)
		maxCross = math.Max(maxCross, b.cross)
	}
	if maxCross-minCross > collinearTolerance {
		return 0, false
	}

	sort.Slice(boxes, func(i, j int) bool { return boxes[i].start < boxes[j].start })
	gaps := make([]float64, 0, len(boxes)-1)
	sum := 0.0
	for i := 1; i < len(boxes); i++ {
		g := boxes[i].start - boxes[i-1].end
		gaps = append(gaps, g)
		sum += g
	}
	mean := sum / float64(len(gaps))
	for _, g := range gaps {
		if math.Abs(g-mean) >= gapTolerance {
			return 0, false
		}
	}
	return mean, true
}

type mixedRadii struct{ meta Meta }

func newMixedRadii() Rule {
	return mixedRadii{meta: Meta{
		ID:          "mixed-radii",
		Name:        "Mixed corner radii",
		Description: "Sibling frames with different corner radii read as unintentional",
		Category:    diag.CatLayout,
		DefaultOn:   true,
	}}
}

func (r mixedRadii) Meta() Meta { return r.meta }

func (r mixedRadii) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindFrame {
		return nil
	}
	radii := make([]float64, 0, len(n.Children))
	frames := 0
	for _, c := range n.Children {
		if c.Kind != node.KindFrame {
			continue
		}
		frames++
		if v, ok := node.MeanRadius(c); ok && v != 0 {
			radii = append(radii, v)
		}
	}
	if frames < 2 {
		return nil
	}
	distinct := map[float64]int{}
	for _, v := range radii {
		distinct[v]++
	}
	if len(distinct) <= 1 {
		return nil
	}

	// Modal radius; ties broken toward the larger value in encounter order.
	var modal float64
	modalCount := 0
	seen := map[float64]bool{}
	for _, v := range radii {
		if seen[v] {
			continue
		}
		seen[v] = true
		c := distinct[v]
		if c > modalCount || (c == modalCount && v > modal) {
			modal, modalCount = v, c
		}
	}

	is := r.meta.issue(n, ctx, diag.SevInfo,
		fmt.Sprintf("%q mixes %d different corner radii", n.Name, len(distinct)),
		fmt.Sprintf("Most children use a radius of %g; aligning the rest keeps the group consistent.", modal))
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "childBorderRadius", Value: modal, Prev: radii}
	is.Metadata = map[string]any{"modalRadius": modal, "distinctRadii": len(distinct)}
	return &is
}
