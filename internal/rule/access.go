package rule

import (
	"fmt"
	"math"

	"framelint/internal/diag"
	"framelint/internal/node"
)

// minTapTarget is the WCAG-recommended minimum touch target edge in px.
const minTapTarget = 44.0

type lowContrastText struct{ meta Meta }

func newLowContrastText() Rule {
	return lowContrastText{meta: Meta{
		ID:          "low-contrast-text",
		Name:        "Text contrast needs manual review",
		Description: "Rendered text colors are not available to the audit; verify contrast by hand",
		Category:    diag.CatAccessibility,
		// Fires on every text layer, so opt-in only.
		DefaultOn: false,
	}}
}

func (r lowContrastText) Meta() Meta { return r.meta }

func (r lowContrastText) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindText {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevInfo,
		fmt.Sprintf("Verify contrast of %q", n.Name),
		"Check the text against its background with a contrast tool (4.5:1 for body text).")
	if ratio, ok := node.ContrastRatio(n.TextColor, n.Background); ok {
		is.Metadata = map[string]any{"contrastRatio": ratio}
	}
	return &is
}

type smallTapTargets struct{ meta Meta }

func newSmallTapTargets() Rule {
	return smallTapTargets{meta: Meta{
		ID:          "small-tap-targets",
		Name:        "Tap target below 44px",
		Description: "Interactive elements smaller than 44x44 are hard to hit on touch screens",
		Category:    diag.CatAccessibility,
		DefaultOn:   true,
	}}
}

func (r smallTapTargets) Meta() Meta { return r.meta }

func (r smallTapTargets) Check(n *node.Node, ctx *Context) *diag.Issue {
	if !node.LooksInteractive(n) {
		return nil
	}
	w, wok := node.FixedWidth(n)
	h, hok := node.FixedHeight(n)
	if !wok || !hok {
		return nil
	}
	minSize := math.Min(w, h)
	if minSize >= minTapTarget {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevWarning,
		fmt.Sprintf("%q is only %gpx on its smallest side", n.Name, minSize),
		fmt.Sprintf("Grow the layer to at least %gx%g so it stays tappable.", minTapTarget, minTapTarget))
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "minSize", Value: minTapTarget, Prev: []float64{w, h}}
	is.Metadata = map[string]any{"currentMinSize": minSize, "width": w, "height": h}
	return &is
}
