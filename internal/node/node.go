package node

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of node variants in an audited design tree.
type Kind uint8

const (
	// KindFrame is a container capable of auto-layout, padding and radius.
	KindFrame Kind = iota + 1
	// KindText is a text layer.
	KindText
	// KindImage is a raster image layer.
	KindImage
	// KindComponent is an instance of a reusable component.
	KindComponent
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindComponent:
		return "component"
	}
	return "unknown"
}

// ParseKind converts a snapshot type tag to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "frame":
		return KindFrame, nil
	case "text":
		return KindText, nil
	case "image":
		return KindImage, nil
	case "component":
		return KindComponent, nil
	default:
		return 0, fmt.Errorf("invalid node kind: %q (expected: frame|text|image|component)", s)
	}
}

// MarshalJSON emits the kind as its snapshot tag.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses the snapshot tag into a Kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// LayoutMode describes how a frame positions its children.
type LayoutMode uint8

const (
	// LayoutNone is free-form positioning.
	LayoutNone LayoutMode = iota
	LayoutHorizontal
	LayoutVertical
)

// String returns the string representation of LayoutMode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	}
	return "none"
}

// UnmarshalJSON parses a layout mode tag; unknown tags map to LayoutNone.
func (m *LayoutMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "horizontal":
		*m = LayoutHorizontal
	case "vertical":
		*m = LayoutVertical
	default:
		*m = LayoutNone
	}
	return nil
}

// MarshalJSON emits the layout mode tag.
func (m LayoutMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Position describes how a node is placed inside an auto-layout parent.
type Position uint8

const (
	// PositionAuto participates in the parent's layout flow.
	PositionAuto Position = iota
	// PositionAbsolute is excluded from the flow and pinned by x/y.
	PositionAbsolute
)

// String returns the string representation of Position.
func (p Position) String() string {
	if p == PositionAbsolute {
		return "absolute"
	}
	return "auto"
}

// UnmarshalJSON parses a position tag; anything but "absolute" is auto.
func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "absolute" {
		*p = PositionAbsolute
	} else {
		*p = PositionAuto
	}
	return nil
}

// MarshalJSON emits the position tag.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Padding holds the four inner offsets of a frame.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Node is one element of an audited design tree. The Kind tag is immutable
// once observed; variant-specific fields are meaningful only for their kind.
type Node struct {
	Kind    Kind   `json:"type"`
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
	Locked  bool   `json:"locked,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  Dim     `json:"width,omitzero"`
	Height Dim     `json:"height,omitzero"`

	// Frame fields.
	Layout   LayoutMode `json:"layoutMode,omitempty"`
	Gap      float64    `json:"gap,omitempty"`
	Padding  Padding    `json:"padding,omitempty"`
	Radius   *Radius    `json:"borderRadius,omitempty"`
	Position Position   `json:"position,omitempty"`
	Children []*Node    `json:"children,omitempty"`

	// Text fields.
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`
	TextColor  string  `json:"color,omitempty"`
	Background string  `json:"background,omitempty"`

	// Image fields.
	Source         string  `json:"src,omitempty"`
	NaturalWidth   float64 `json:"naturalWidth,omitempty"`
	NaturalHeight  float64 `json:"naturalHeight,omitempty"`
	RenderedWidth  float64 `json:"renderedWidth,omitempty"`
	RenderedHeight float64 `json:"renderedHeight,omitempty"`

	// Component fields.
	ComponentID string `json:"componentId,omitempty"`
}

// IsVisible reports node visibility; absence of the flag means visible.
func (n *Node) IsVisible() bool {
	return n == nil || n.Visible == nil || *n.Visible
}

// Ref is a weak reference to a node: enough to relocate and describe it,
// without keeping the live node alive.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Kind Kind   `json:"type"`
	Path string `json:"path,omitempty"`
}

// RefOf builds a weak reference with the given display path.
func RefOf(n *Node, path string) Ref {
	if n == nil {
		return Ref{}
	}
	return Ref{ID: n.ID, Name: n.Name, Kind: n.Kind, Path: path}
}

// Label returns the best human name for the node behind the reference.
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	if r.ID != "" {
		return r.ID
	}
	return "<unnamed>"
}
