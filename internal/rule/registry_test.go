package rule

import (
	"testing"

	"framelint/internal/diag"
	"framelint/internal/settings"
)

func TestRegistryIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All() {
		id := r.Meta().ID
		if id == "" {
			t.Error("rule with empty id")
		}
		if seen[id] {
			t.Errorf("duplicate rule id %q", id)
		}
		seen[id] = true
	}
}

func TestByID(t *testing.T) {
	if _, ok := ByID("negative-gap"); !ok {
		t.Error("negative-gap must be registered")
	}
	if _, ok := ByID("no-such-rule"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestByCategory(t *testing.T) {
	total := 0
	for _, c := range diag.Categories {
		rs := ByCategory(c)
		for _, r := range rs {
			if r.Meta().Category != c {
				t.Errorf("rule %q in wrong category bucket", r.Meta().ID)
			}
		}
		total += len(rs)
	}
	if total != len(All()) {
		t.Errorf("category buckets cover %d rules, registry has %d", total, len(All()))
	}
}

func TestEnabledRespectsSettings(t *testing.T) {
	s := settings.Default()
	base := Enabled(s)
	for _, r := range base {
		if r.Meta().ID == "low-contrast-text" {
			t.Error("default-off rule enabled without allowlist")
		}
	}

	s.EnabledRules = []string{"negative-gap", "low-contrast-text"}
	allow := Enabled(s)
	if len(allow) != 2 {
		t.Fatalf("allowlist: enabled %d rules, want 2", len(allow))
	}

	s.DisabledRules = []string{"negative-gap"}
	deny := Enabled(s)
	if len(deny) != 1 || deny[0].Meta().ID != "low-contrast-text" {
		t.Errorf("denylist must win over allowlist, got %d rules", len(deny))
	}
}
