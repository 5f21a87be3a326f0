package rule

import (
	"framelint/internal/diag"
	"framelint/internal/settings"
)

// registry is the fixed, ordered rule collection, built once at startup.
// Order determines per-node execution order but must never affect the final
// issue set: rules are mutually independent and never read another rule's
// output.
var registry = []Rule{
	newFixedInsideFill(),
	newAbsoluteInAutoLayout(),
	newNegativeGap(),
	newUnnecessaryNesting(),
	newOverflowingText(),
	newShouldAutoLayout(),
	newInconsistentSpacing(),
	newMixedRadii(),
	newLowContrastText(),
	newSmallTapTargets(),
	newOversizedImage(),
	newComponentCandidate(),
}

// All returns the registry in execution order.
// Do not modify the returned slice.
func All() []Rule { return registry }

// ByCategory returns the rules of one category, registry order.
// Linear scan; the registry is small and static.
func ByCategory(c diag.Category) []Rule {
	out := make([]Rule, 0, 4)
	for _, r := range registry {
		if r.Meta().Category == c {
			out = append(out, r)
		}
	}
	return out
}

// ByID looks a rule up by its id.
func ByID(id string) (Rule, bool) {
	for _, r := range registry {
		if r.Meta().ID == id {
			return r, true
		}
	}
	return nil, false
}

// Enabled filters the registry through the settings' allow/deny lists.
func Enabled(s *settings.Settings) []Rule {
	if s == nil {
		s = settings.Default()
	}
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		m := r.Meta()
		if s.RuleEnabled(m.ID, m.DefaultOn) {
			out = append(out, r)
		}
	}
	return out
}
