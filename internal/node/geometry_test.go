package node

import "testing"

func TestSnap(t *testing.T) {
	cases := []struct {
		v    float64
		base int
		want float64
	}{
		{17, 8, 16},
		{20, 8, 24}, // half rounds away from zero
		{-20, 8, -24},
		{10, 4, 12}, // 10/4 = 2.5 rounds up
		{0, 8, 0},
		{33, 0, 33}, // degenerate base leaves value alone
	}
	for _, tc := range cases {
		if got := Snap(tc.v, tc.base); got != tc.want {
			t.Errorf("Snap(%v, %d) = %v, want %v", tc.v, tc.base, got, tc.want)
		}
	}
}

func TestOnGrid(t *testing.T) {
	if !OnGrid(16, 8) || !OnGrid(0, 4) || !OnGrid(-24, 8) {
		t.Error("exact multiples must be on grid")
	}
	if OnGrid(17, 8) || OnGrid(7.999, 8) {
		t.Error("no tolerance: near-multiples are off grid")
	}
}

func TestMeanRadius(t *testing.T) {
	if _, ok := MeanRadius(&Node{Kind: KindFrame}); ok {
		t.Error("no radius set, expected ok=false")
	}
	if v, ok := MeanRadius(&Node{Kind: KindFrame, Radius: UniformRadius(8)}); !ok || v != 8 {
		t.Errorf("uniform radius = %v (%v), want 8", v, ok)
	}
	if v, ok := MeanRadius(&Node{Kind: KindFrame, Radius: CornerRadius(0, 8, 8, 0)}); !ok || v != 4 {
		t.Errorf("corner mean = %v (%v), want 4", v, ok)
	}
}

func TestIsAutoLayout(t *testing.T) {
	if IsAutoLayout(&Node{Kind: KindFrame}) {
		t.Error("frame without layout mode is not auto-layout")
	}
	if !IsAutoLayout(&Node{Kind: KindFrame, Layout: LayoutVertical}) {
		t.Error("vertical frame is auto-layout")
	}
	if IsAutoLayout(&Node{Kind: KindText, Layout: LayoutVertical}) {
		t.Error("only frames can be auto-layout")
	}
}
