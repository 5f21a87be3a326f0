package node

import (
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseColor accepts 6-digit hex (#RRGGBB) or rgb()/rgba() syntax.
// 3-digit hex, named colors and hsl() are unsupported by design.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		open := strings.IndexByte(s, '(')
		close := strings.LastIndexByte(s, ')')
		if close <= open {
			return RGB{}, false
		}
		return parseChannels(s[open+1 : close])
	}
	return RGB{}, false
}

func parseHex(hex string) (RGB, bool) {
	if len(hex) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	r, err := safecast.Conv[uint8](v >> 16 & 0xff)
	if err != nil {
		return RGB{}, false
	}
	g, err := safecast.Conv[uint8](v >> 8 & 0xff)
	if err != nil {
		return RGB{}, false
	}
	b, err := safecast.Conv[uint8](v & 0xff)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: r, G: g, B: b}, true
}

func parseChannels(body string) (RGB, bool) {
	parts := strings.Split(body, ",")
	if len(parts) < 3 {
		return RGB{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return RGB{}, false
		}
		c, err := safecast.Conv[uint8](n)
		if err != nil {
			return RGB{}, false
		}
		ch[i] = c
	}
	// Alpha in rgba() is ignored: contrast math is opaque-on-opaque.
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// Luminance returns the WCAG relative luminance of a color.
func Luminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(ch uint8) float64 {
	v := float64(ch) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG contrast ratio between two raw color
// strings. Returns false if either color fails to parse.
func ContrastRatio(a, b string) (float64, bool) {
	ca, ok := ParseColor(a)
	if !ok {
		return 0, false
	}
	cb, ok := ParseColor(b)
	if !ok {
		return 0, false
	}
	la, lb := Luminance(ca), Luminance(cb)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), true
}
