package main

import (
	"testing"

	"framelint/internal/audit"
	"framelint/internal/diag"
	"framelint/internal/node"
)

func resultWith(severities ...diag.Severity) []snapshotResult {
	issues := make([]diag.Issue, len(severities))
	for i, s := range severities {
		issues[i] = diag.Issue{ID: "x", Severity: s, Category: diag.CatLayout}
	}
	return []snapshotResult{{Path: "a.json", Result: &audit.Result{Issues: issues}}}
}

func TestShouldFail(t *testing.T) {
	tests := []struct {
		name    string
		results []snapshotResult
		failOn  string
		want    bool
	}{
		{"error on error", resultWith(diag.SevError), "error", true},
		{"warning below error", resultWith(diag.SevWarning), "error", false},
		{"warning on warning", resultWith(diag.SevWarning), "warning", true},
		{"info on warning", resultWith(diag.SevInfo), "warning", false},
		{"error but never", resultWith(diag.SevError), "never", false},
		{"clean", resultWith(), "warning", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldFail(tt.results, tt.failOn); got != tt.want {
				t.Errorf("shouldFail = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := parseCategory("spacing"); err != nil || c != diag.CatSpacing {
		t.Errorf("parseCategory(spacing) = %v, %v", c, err)
	}
	if _, err := parseCategory("typography"); err == nil {
		t.Error("unknown category must error")
	}
}

func TestSelectFixable(t *testing.T) {
	issues := []diag.Issue{
		{ID: "a", RuleID: "negative-gap", Node: node.Ref{ID: "n1"}, CanAutoFix: true,
			Fix: &diag.FixCommand{Property: "gap", Value: 0.0}},
		{ID: "b", RuleID: "component-candidate", Node: node.Ref{ID: "n2"}},
		{ID: "c", RuleID: "fixed-inside-fill", Node: node.Ref{ID: "n3"}, CanAutoFix: true,
			Fix: &diag.FixCommand{Property: "width", Value: "fill"}},
	}

	all := selectFixable(issues, nil)
	if len(all) != 2 {
		t.Fatalf("fixable = %d, want 2", len(all))
	}
	only := selectFixable(issues, []string{"negative-gap"})
	if len(only) != 1 || only[0].ID != "a" {
		t.Errorf("filtered = %v", only)
	}
}
