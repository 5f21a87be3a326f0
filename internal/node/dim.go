package node

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Dim is a raw sizing value exactly as the host supplies it: a pixel number,
// "fill"/"1fr", "hug", "<n>px", or a bare numeric string. Parsing is always
// deferred to ParseDimension so malformed input degrades to "unsized" instead
// of failing the whole snapshot decode.
type Dim struct {
	num   float64
	str   string
	isNum bool
	set   bool
}

// Px constructs a fixed pixel dimension.
func Px(v float64) Dim { return Dim{num: v, isNum: true, set: true} }

// Sizing constructs a dimension from a raw string such as "fill" or "hug".
func Sizing(s string) Dim { return Dim{str: s, set: true} }

// IsZero reports whether the dimension was absent from the input.
func (d Dim) IsZero() bool { return !d.set }

// UnmarshalJSON accepts a JSON number, a JSON string, or null. Null leaves
// the dimension unset, same as an absent key.
func (d *Dim) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Dim{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = Px(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = Sizing(s)
	return nil
}

// MarshalJSON emits the value in its original shape.
func (d Dim) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	if d.isNum {
		return json.Marshal(d.num)
	}
	return json.Marshal(d.str)
}

// DimKind classifies a parsed dimension.
type DimKind uint8

const (
	// DimNone covers absent, "hug" and any unparseable value.
	DimNone DimKind = iota
	// DimPixels is a fixed pixel size.
	DimPixels
	// DimFill stretches to the parent's available space.
	DimFill
)

// String returns the string representation of DimKind.
func (k DimKind) String() string {
	switch k {
	case DimPixels:
		return "pixels"
	case DimFill:
		return "fill"
	}
	return "none"
}

// DimValue is the result of parsing a raw dimension.
type DimValue struct {
	Kind DimKind
	Px   float64
}

// ParseDimension resolves a raw dimension to a pixel count or the fill
// sentinel. "hug" is deliberately neither: callers treat it as not fixed and
// not fill. Never panics; anything unrecognized is DimNone.
func ParseDimension(d Dim) DimValue {
	if !d.set {
		return DimValue{}
	}
	if d.isNum {
		return DimValue{Kind: DimPixels, Px: d.num}
	}
	s := strings.TrimSpace(d.str)
	switch s {
	case "fill", "1fr":
		return DimValue{Kind: DimFill}
	}
	s = strings.TrimSuffix(s, "px")
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return DimValue{Kind: DimPixels, Px: v}
	}
	return DimValue{}
}

// FixedWidth returns the node's width in pixels if it is a fixed size.
func FixedWidth(n *Node) (float64, bool) {
	if n == nil {
		return 0, false
	}
	v := ParseDimension(n.Width)
	return v.Px, v.Kind == DimPixels
}

// FixedHeight returns the node's height in pixels if it is a fixed size.
func FixedHeight(n *Node) (float64, bool) {
	if n == nil {
		return 0, false
	}
	v := ParseDimension(n.Height)
	return v.Px, v.Kind == DimPixels
}

// HasFixedWidth reports whether the width parses to a pixel count.
func HasFixedWidth(n *Node) bool {
	_, ok := FixedWidth(n)
	return ok
}

// HasFixedHeight reports whether the height parses to a pixel count.
func HasFixedHeight(n *Node) bool {
	_, ok := FixedHeight(n)
	return ok
}

// IsFillWidth reports whether the width is the fill sentinel.
// Mutually exclusive with HasFixedWidth, but not exhaustive: hug is neither.
func IsFillWidth(n *Node) bool {
	return n != nil && ParseDimension(n.Width).Kind == DimFill
}

// IsFillHeight reports whether the height is the fill sentinel.
func IsFillHeight(n *Node) bool {
	return n != nil && ParseDimension(n.Height).Kind == DimFill
}
