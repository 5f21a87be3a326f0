package settings

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Filename is the conventional config file name next to a snapshot.
const Filename = "framelint.toml"

// ErrBadGridBase indicates a spacing grid other than 4 or 8.
var ErrBadGridBase = errors.New("spacing grid base must be 4 or 8")

// Settings configures an audit. Passed by reference into every audit and
// rule check; no component owns it.
type Settings struct {
	// GridBase is the spacing grid all coordinates are checked against.
	GridBase int
	// ConfirmBeforeFix gates batch fix application behind a prompt.
	ConfirmBeforeFix bool
	// EnabledRules is an explicit allowlist. Empty means "use each rule's
	// own default". DisabledRules always wins over membership here.
	EnabledRules []string
	// DisabledRules is an explicit denylist.
	DisabledRules []string
	// Analytics opts in to usage reporting by the host. The engine itself
	// never reports anything; the flag is carried for the caller.
	Analytics bool
	// MaxIssues caps how many issues one audit may return. 0 = unbounded.
	MaxIssues int
}

// Default returns the settings used when no config file is present.
func Default() *Settings {
	return &Settings{
		GridBase:         8,
		ConfirmBeforeFix: true,
		MaxIssues:        200,
	}
}

// Validate checks invariants that rules rely on.
func (s *Settings) Validate() error {
	if s.GridBase != 4 && s.GridBase != 8 {
		return fmt.Errorf("%w (got %d)", ErrBadGridBase, s.GridBase)
	}
	if s.MaxIssues < 0 {
		return fmt.Errorf("max issues must be >= 0 (got %d)", s.MaxIssues)
	}
	return nil
}

// RuleEnabled resolves whether a rule runs under these settings.
// The denylist always wins; a non-empty allowlist requires membership;
// otherwise the rule's own default applies.
func (s *Settings) RuleEnabled(ruleID string, enabledByDefault bool) bool {
	for _, id := range s.DisabledRules {
		if id == ruleID {
			return false
		}
	}
	if len(s.EnabledRules) > 0 {
		for _, id := range s.EnabledRules {
			if id == ruleID {
				return true
			}
		}
		return false
	}
	return enabledByDefault
}

type fileAudit struct {
	GridBase         int  `toml:"grid_base"`
	ConfirmBeforeFix bool `toml:"confirm_before_fix"`
	Analytics        bool `toml:"analytics"`
	MaxIssues        int  `toml:"max_issues"`
}

type fileRules struct {
	Enabled  []string `toml:"enabled"`
	Disabled []string `toml:"disabled"`
}

type fileConfig struct {
	Audit fileAudit `toml:"audit"`
	Rules fileRules `toml:"rules"`
}

// Load parses a framelint.toml. Sections and keys are optional; anything
// absent keeps its default.
func Load(path string) (*Settings, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	s := Default()
	if meta.IsDefined("audit", "grid_base") {
		s.GridBase = cfg.Audit.GridBase
	}
	if meta.IsDefined("audit", "confirm_before_fix") {
		s.ConfirmBeforeFix = cfg.Audit.ConfirmBeforeFix
	}
	if meta.IsDefined("audit", "analytics") {
		s.Analytics = cfg.Audit.Analytics
	}
	if meta.IsDefined("audit", "max_issues") {
		s.MaxIssues = cfg.Audit.MaxIssues
	}
	if meta.IsDefined("rules", "enabled") {
		s.EnabledRules = cfg.Rules.Enabled
	}
	if meta.IsDefined("rules", "disabled") {
		s.DisabledRules = cfg.Rules.Disabled
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
