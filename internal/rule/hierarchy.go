package rule

import (
	"fmt"
	"strings"

	"framelint/internal/diag"
	"framelint/internal/node"
)

type unnecessaryNesting struct{ meta Meta }

func newUnnecessaryNesting() Rule {
	return unnecessaryNesting{meta: Meta{
		ID:          "unnecessary-nesting",
		Name:        "Unnecessary nesting",
		Description: "A frame wrapping a single frame with matching constraints adds depth for nothing",
		Category:    diag.CatHierarchy,
		DefaultOn:   true,
	}}
}

func (r unnecessaryNesting) Meta() Meta { return r.meta }

func (r unnecessaryNesting) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindFrame || len(n.Children) != 1 {
		return nil
	}
	child := n.Children[0]
	if child.Kind != node.KindFrame {
		return nil
	}
	if !sameConstraints(n, child) {
		return nil
	}
	is := r.meta.issue(n, ctx, diag.SevInfo,
		fmt.Sprintf("%q wraps a single frame with the same constraints", n.Name),
		"Flatten the wrapper; the inner frame can take its place.")
	is.CanAutoFix = true
	is.Fix = &diag.FixCommand{Property: "flatten", Value: child.ID}
	is.Metadata = map[string]any{"childId": child.ID, "childName": child.Name}
	return &is
}

// sameConstraints compares fixed/fill sizing on both axes. Hug counts as
// matching hug only.
func sameConstraints(a, b *node.Node) bool {
	return node.ParseDimension(a.Width).Kind == node.ParseDimension(b.Width).Kind &&
		node.ParseDimension(a.Height).Kind == node.ParseDimension(b.Height).Kind
}

type componentCandidate struct{ meta Meta }

func newComponentCandidate() Rule {
	return componentCandidate{meta: Meta{
		ID:          "component-candidate",
		Name:        "Repeating structure could be a component",
		Description: "Several structurally identical children are cheaper to maintain as one component",
		Category:    diag.CatHierarchy,
		DefaultOn:   true,
	}}
}

func (r componentCandidate) Meta() Meta { return r.meta }

func (r componentCandidate) Check(n *node.Node, ctx *Context) *diag.Issue {
	if n.Kind != node.KindFrame {
		return nil
	}
	frames := make([]*node.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == node.KindFrame {
			frames = append(frames, c)
		}
	}
	if len(frames) < 3 {
		return nil
	}

	// Count identical non-empty structural signatures, then report the first
	// qualifying signature in child order so ties resolve deterministically.
	counts := map[string]int{}
	for _, f := range frames {
		if sig := signature(f); sig != "" {
			counts[sig]++
		}
	}
	for _, f := range frames {
		sig := signature(f)
		c := counts[sig]
		if sig == "" || c < 3 {
			continue
		}
		is := r.meta.issue(n, ctx, diag.SevInfo,
			fmt.Sprintf("%q repeats the same structure %d times", n.Name, c),
			"Extract the repeated frame into a component and instance it.")
		is.Metadata = map[string]any{"occurrences": c, "signature": sig}
		return &is
	}
	return nil
}

// signature serializes a frame's direct children as "kind" or "kind+" when
// the child has children of its own. Empty structure yields "".
func signature(f *node.Node) string {
	if len(f.Children) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.Children))
	for _, c := range f.Children {
		p := c.Kind.String()
		if len(c.Children) > 0 {
			p += "+"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ",")
}
