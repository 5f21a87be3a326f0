package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"framelint/internal/diag"
	"framelint/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered audit rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().String("category", "", "only list rules of this category")
}

type ruleJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	DefaultOn   bool   `json:"defaultOn"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}

	rules := rule.All()
	if category != "" {
		cat, err := parseCategory(category)
		if err != nil {
			return err
		}
		rules = rule.ByCategory(cat)
	}

	switch format {
	case "pretty":
		enabled, err := useColor(cmd)
		if err != nil {
			return err
		}
		restore := color.NoColor
		color.NoColor = !enabled
		defer func() { color.NoColor = restore }()

		idColor := color.New(color.Bold)
		offColor := color.New(color.Faint)
		for _, c := range diag.Categories {
			printed := false
			for _, r := range rules {
				m := r.Meta()
				if m.Category != c {
					continue
				}
				if !printed {
					fmt.Fprintf(os.Stdout, "%s:\n", c)
					printed = true
				}
				marker := "on by default"
				if !m.DefaultOn {
					marker = offColor.Sprint("off by default")
				}
				fmt.Fprintf(os.Stdout, "  %s (%s)\n      %s\n", idColor.Sprint(m.ID), marker, m.Description)
			}
		}
	case "json":
		out := make([]ruleJSON, 0, len(rules))
		for _, r := range rules {
			m := r.Meta()
			out = append(out, ruleJSON{
				ID:          m.ID,
				Name:        m.Name,
				Description: m.Description,
				Category:    m.Category.String(),
				DefaultOn:   m.DefaultOn,
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
