package node

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// interactiveKeywords is the fixed list of name fragments that mark a layer
// as probably interactive. A name heuristic only; the audit has no access to
// real interaction bindings.
var interactiveKeywords = []string{
	"button", "btn", "link", "cta", "click",
	"tap", "toggle", "checkbox", "radio", "input",
}

// LooksInteractive reports whether the node's name suggests an interactive
// element. Matching is case-insensitive over NFC-normalized text.
func LooksInteractive(n *Node) bool {
	if n == nil || n.Name == "" {
		return false
	}
	name := strings.ToLower(norm.NFC.String(n.Name))
	for _, kw := range interactiveKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
