package node

import (
	"encoding/json"
	"math"
)

// Radius is a frame's corner rounding: either one uniform value or four
// explicit corners.
type Radius struct {
	Uniform bool
	All     float64
	TL      float64
	TR      float64
	BR      float64
	BL      float64
}

// UniformRadius constructs a single-value radius.
func UniformRadius(v float64) *Radius { return &Radius{Uniform: true, All: v} }

// CornerRadius constructs a four-corner radius.
func CornerRadius(tl, tr, br, bl float64) *Radius {
	return &Radius{TL: tl, TR: tr, BR: br, BL: bl}
}

type radiusCorners struct {
	TL float64 `json:"topLeft"`
	TR float64 `json:"topRight"`
	BR float64 `json:"bottomRight"`
	BL float64 `json:"bottomLeft"`
}

// UnmarshalJSON accepts either a number or a four-corner object.
func (r *Radius) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Radius{Uniform: true, All: n}
		return nil
	}
	var c radiusCorners
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*r = Radius{TL: c.TL, TR: c.TR, BR: c.BR, BL: c.BL}
	return nil
}

// MarshalJSON emits the radius in its original shape.
func (r Radius) MarshalJSON() ([]byte, error) {
	if r.Uniform {
		return json.Marshal(r.All)
	}
	return json.Marshal(radiusCorners{TL: r.TL, TR: r.TR, BR: r.BR, BL: r.BL})
}

// MeanRadius reduces a node's corner rounding to one number: the uniform
// value, or the arithmetic mean of the four corners. The averaging is lossy
// on purpose; grouping reasons about "a" radius per node, not per corner.
func MeanRadius(n *Node) (float64, bool) {
	if n == nil || n.Radius == nil {
		return 0, false
	}
	r := n.Radius
	if r.Uniform {
		return r.All, true
	}
	return (r.TL + r.TR + r.BR + r.BL) / 4, true
}

// IsAutoLayout reports whether the node is a frame laid out along an axis.
func IsAutoLayout(n *Node) bool {
	if n == nil || n.Kind != KindFrame {
		return false
	}
	return n.Layout == LayoutHorizontal || n.Layout == LayoutVertical
}

// Snap rounds a coordinate to the nearest multiple of the grid base,
// half away from zero.
func Snap(v float64, base int) float64 {
	if base <= 0 {
		return v
	}
	b := float64(base)
	return math.Round(v/b) * b
}

// OnGrid reports whether a coordinate sits exactly on the grid. Exact
// modulo check, no tolerance.
func OnGrid(v float64, base int) bool {
	if base <= 0 {
		return true
	}
	return math.Mod(v, float64(base)) == 0
}
