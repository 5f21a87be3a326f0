package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"framelint/internal/settings"
)

// resolveSettings loads framelint.toml (explicit --config, or the nearest
// one upward from the target) and applies command-line overrides on top.
func resolveSettings(cmd *cobra.Command, target string) (*settings.Settings, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	var s *settings.Settings
	switch {
	case configPath != "":
		s, err = settings.Load(configPath)
		if err != nil {
			return nil, err
		}
	default:
		found := findConfig(target)
		if found == "" {
			s = settings.Default()
		} else if s, err = settings.Load(found); err != nil {
			return nil, err
		}
	}

	if err := applyOverrides(cmd, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// findConfig walks upward from the target looking for framelint.toml.
func findConfig(target string) string {
	dir := target
	if st, err := os.Stat(target); err != nil || !st.IsDir() {
		dir = filepath.Dir(target)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, settings.Filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyOverrides(cmd *cobra.Command, s *settings.Settings) error {
	flags := cmd.Flags()

	if flags.Changed("grid") {
		grid, err := flags.GetInt("grid")
		if err != nil {
			return err
		}
		s.GridBase = grid
	}
	if flags.Changed("max-issues") {
		maxIssues, err := flags.GetInt("max-issues")
		if err != nil {
			return err
		}
		s.MaxIssues = maxIssues
	}
	if flags.Lookup("enable") != nil {
		enable, err := flags.GetStringSlice("enable")
		if err != nil {
			return err
		}
		s.EnabledRules = append(s.EnabledRules, enable...)

		disable, err := flags.GetStringSlice("disable")
		if err != nil {
			return err
		}
		s.DisabledRules = append(s.DisabledRules, disable...)

		noDefaults, err := flags.GetBool("no-default-rules")
		if err != nil {
			return err
		}
		// A non-empty allowlist is already exclusive, so the flag only
		// needs to reject the degenerate empty case.
		if noDefaults && len(s.EnabledRules) == 0 {
			return fmt.Errorf("--no-default-rules requires at least one --enable")
		}
	}
	return nil
}
