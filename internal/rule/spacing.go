package rule

import (
	"fmt"
	"math"
	"sort"

	"framelint/internal/diag"
	"framelint/internal/node"
)

const (
	// largeGapThreshold flags suspiciously wide auto-layout gaps.
	largeGapThreshold = 100.0
	// varianceInfo and varianceWarning bound acceptable gap spread.
	varianceInfo    = 10.0
	varianceWarning = 25.0
)

type negativeGap struct{ meta Meta }

func newNegativeGap() Rule {
	return negativeGap{meta: Meta{
		ID:          "negative-gap",
		Name:        "Suspicious auto-layout gap",
		Description: "Negative gaps overlap children; very large gaps usually mean a stray value",
		Category:    diag.CatSpacing,
		DefaultOn:   true,
	}}
}

func (r negativeGap) Meta() Meta { return r.meta }

func (r negativeGap) Check(n *node.Node, ctx *Context) *diag.Issue {
	if !node.IsAutoLayout(n) {
		return nil
	}
	switch {
	case n.Gap < 0:
		is := r.meta.issue(n, ctx, diag.SevWarning,
			fmt.Sprintf("%q has a negative gap (%g)", n.Name, n.Gap),
			"Children overlap; set the gap to zero or a positive spacing value.")
		is.CanAutoFix = true
		is.Fix = &diag.FixCommand{Property: "gap", Value: 0.0, Prev: n.Gap}
		is.Metadata = map[string]any{"gap": n.Gap}
		return &is
	case n.Gap > largeGapThreshold:
		is := r.meta.issue(n, ctx, diag.SevInfo,
			fmt.Sprintf("%q has an unusually large gap (%g)", n.Name, n.Gap),
			"Gaps above 100px are usually accidental; double-check the value.")
		is.Metadata = map[string]any{"gap": n.Gap}
		return &is
	}
	return nil
}

type inconsistentSpacing struct{ meta Meta }

func newInconsistentSpacing() Rule {
	return inconsistentSpacing{meta: Meta{
		ID:          "inconsistent-spacing",
		Name:        "Inconsistent spacing between children",
		Description: "Uneven gaps between siblings suggest the spacing was eyeballed",
		Category:    diag.CatSpacing,
		DefaultOn:   true,
	}}
}

func (r inconsistentSpacing) Meta() Meta { return r.meta }

func (r inconsistentSpacing) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindFrame || len(n.Children) < 3 {
		return nil
	}
	gaps := childGaps(n.Children)
	if len(gaps) < 2 {
		return nil
	}

	mean := 0.0
	for _, g := range gaps {
		mean += g
	}
	mean /= float64(len(gaps))
	variance := 0.0
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))
	if variance <= varianceInfo {
		return nil
	}

	sev := diag.SevInfo
	if variance > varianceWarning {
		sev = diag.SevWarning
	}

	base := 8
	if ctx.Settings != nil && ctx.Settings.GridBase > 0 {
		base = ctx.Settings.GridBase
	}
	target := node.Snap(mean, base)

	is := r.meta.issue(n, ctx, sev,
		fmt.Sprintf("%q spaces its children unevenly", n.Name),
		fmt.Sprintf("Gap variance is %.1f; normalizing to a %gpx rhythm evens it out.", variance, target))
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "normalizeSpacing", Value: target, Prev: gaps}
	is.Metadata = map[string]any{"variance": variance, "meanGap": mean, "targetGap": target}
	return &is
}

// childGaps measures the non-negative gaps between consecutive children
// along the frame's dominant axis. Children without a fixed size on that
// axis contribute no gap.
func childGaps(children []*node.Node) []float64 {
	type box struct{ start, end float64 }
	horiz := dominantAxisHorizontal(children)
	boxes := make([]box, 0, len(children))
	for _, c := range children {
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
		boxes = append(boxes, box{start: start, end: start + size})
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].start < boxes[j].start })

	gaps := make([]float64, 0, len(boxes))
	for i := 1; i < len(boxes); i++ {
		if g := boxes[i].start - boxes[i-1].end; g >= 0 {
			gaps = append(gaps, g)
		}
	}
	return gaps
}

// dominantAxisHorizontal guesses the axis children are arranged along by
// comparing positional spread.
func dominantAxisHorizontal(children []*node.Node) bool {
	var minX, maxX, minY, maxY float64
	for i, c := range children {
		if i == 0 {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			continue
		}
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}
	return maxX-minX >= maxY-minY
}
