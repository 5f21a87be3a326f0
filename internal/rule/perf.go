package rule

import (
	"fmt"
	"math"

	"framelint/internal/diag"
	"framelint/internal/node"
)

// oversizeRatio is how many times larger than its rendered size an image's
// source may be before it counts as wasted bytes.
const oversizeRatio = 3.0

type oversizedImage struct{ meta Meta }

func newOversizedImage() Rule {
	return oversizedImage{meta: Meta{
		ID:          "oversized-image",
		Name:        "Image source much larger than rendered size",
		Description: "Sources more than 3x the rendered dimensions waste memory and export weight",
		Category:    diag.CatPerformance,
		DefaultOn:   true,
	}}
}

func (r oversizedImage) Meta() Meta { return r.meta }

func (r oversizedImage) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindImage {
		return nil
	}
	if n.NaturalWidth <= 0 || n.NaturalHeight <= 0 || n.RenderedWidth <= 0 || n.RenderedHeight <= 0 {
		return nil
	}
	ratio := math.Max(n.NaturalWidth/n.RenderedWidth, n.NaturalHeight/n.RenderedHeight)
	if ratio <= oversizeRatio {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevInfo,
		fmt.Sprintf("%q ships at %.1fx its rendered size", n.Name, ratio),
		fmt.Sprintf("The source is %gx%g but renders at %gx%g; a smaller export would look identical.",
			n.NaturalWidth, n.NaturalHeight, n.RenderedWidth, n.RenderedHeight))
	is.Metadata = map[string]any{
		"ratio":    ratio,
		"natural":  []float64{n.NaturalWidth, n.NaturalHeight},
		"rendered": []float64{n.RenderedWidth, n.RenderedHeight},
	}
	return &is
}
