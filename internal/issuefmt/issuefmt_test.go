package issuefmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"framelint/internal/audit"
	"framelint/internal/diag"
	"framelint/internal/node"
)

func sampleResult() *audit.Result {
	return &audit.Result{
		Issues: []diag.Issue{
			{
				ID:         "absolute-in-auto-layout-pin",
				RuleID:     "absolute-in-auto-layout",
				Node:       node.Ref{ID: "pin", Name: "Pin", Kind: node.KindFrame, Path: "Page / Pin"},
				Title:      "Absolutely positioned child in auto-layout",
				Severity:   diag.SevError,
				Category:   diag.CatLayout,
				CanAutoFix: true,
				Fix:        &diag.FixCommand{Property: "position", Value: "auto", Prev: "absolute"},
			},
			{
				ID:          "negative-gap-row",
				RuleID:      "negative-gap",
				Node:        node.Ref{ID: "row", Name: "Row", Kind: node.KindFrame, Path: "Page / Row"},
				Title:       "Negative gap",
				Description: "overlapping children are usually an accident",
				Severity:    diag.SevWarning,
				Category:    diag.CatSpacing,
				CanAutoFix:  true,
				Fix:         &diag.FixCommand{Property: "gap", Value: 0.0, Prev: -10.0},
			},
			{
				ID:       "component-candidate-list",
				RuleID:   "component-candidate",
				Node:     node.Ref{ID: "list", Name: "List", Kind: node.KindFrame, Path: "Page / List"},
				Title:    "Repeated structure",
				Severity: diag.SevInfo,
				Category: diag.CatHierarchy,
			},
		},
		NodesAudited: 12,
		DurationMS:   3.5,
	}
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleResult(), PrettyOpts{ShowFixes: true})
	out := buf.String()

	checks := []string{
		"error absolute-in-auto-layout:",
		"warning negative-gap:",
		"info component-candidate:",
		"at Page / Row",
		"fix: set gap = 0",
		"3 issues",
		"1 errors",
		"2 auto-fixable",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color disabled but escape codes present")
	}
}

func TestPrettyGrouped(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleResult(), PrettyOpts{ByCat: true})
	out := buf.String()
	layoutAt := strings.Index(out, "layout (1)")
	spacingAt := strings.Index(out, "spacing (1)")
	if layoutAt < 0 || spacingAt < 0 || layoutAt > spacingAt {
		t.Errorf("category headers missing or misordered:\n%s", out)
	}
}

func TestPrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, &audit.Result{NodesAudited: 4}, PrettyOpts{})
	if !strings.Contains(buf.String(), "no issues") {
		t.Errorf("empty result output = %q", buf.String())
	}
}

func TestJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleResult(), JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out ResultJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Summary.Total != 3 || out.Summary.Errors != 1 || out.Summary.Warnings != 1 || out.Summary.Info != 1 {
		t.Errorf("summary = %+v", out.Summary)
	}
	if out.Summary.Fixable != 2 {
		t.Errorf("fixable = %d, want 2", out.Summary.Fixable)
	}
	if out.Issues[0].Severity != diag.SevError {
		t.Errorf("severity did not survive the round trip: %v", out.Issues[0].Severity)
	}
	if !strings.Contains(buf.String(), `"severity":"error"`) {
		t.Errorf("severity not serialized as a string:\n%s", buf.String())
	}
}

func TestJSONMaxTruncatesOutputOnly(t *testing.T) {
	out := BuildResultJSON(sampleResult(), JSONOpts{Max: 1})
	if len(out.Issues) != 1 {
		t.Errorf("issues = %d, want 1", len(out.Issues))
	}
	if out.Summary.Total != 3 {
		t.Errorf("summary must count the full result, got %d", out.Summary.Total)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	err := Sarif(&buf, sampleResult(), SarifRunMeta{
		ToolName:       "framelint",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"framelint", "audit", "doc.json"},
	})
	if err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Errorf("version = %v", log["version"])
	}
	out := buf.String()
	checks := []string{
		`"name": "framelint"`,
		`"ruleId": "absolute-in-auto-layout"`,
		`"level": "error"`,
		`"level": "note"`,
		`"fullyQualifiedName": "Page / Row"`,
		`"commandLine": "framelint audit doc.json"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("sarif missing %q", want)
		}
	}
}
