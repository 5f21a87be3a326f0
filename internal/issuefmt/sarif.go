package issuefmt

import (
	"encoding/json"
	"io"

	"framelint/internal/audit"
	"framelint/internal/diag"
	"framelint/internal/rule"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string          `json:"name"`
	Version string          `json:"version,omitempty"`
	Rules   []sarifRuleDesc `json:"rules,omitempty"`
}

type sarifRuleDesc struct {
	ID               string        `json:"id"`
	Name             string        `json:"name,omitempty"`
	ShortDescription *sarifMessage `json:"shortDescription,omitempty"`
	Properties       any           `json:"properties,omitempty"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	LogicalLocations []sarifLogicalLocation `json:"logicalLocations"`
}

type sarifLogicalLocation struct {
	Name               string `json:"name"`
	FullyQualifiedName string `json:"fullyQualifiedName,omitempty"`
	Kind               string `json:"kind"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif serializes the result as SARIF 2.1.0. Nodes have no file backing, so
// each result carries a logical location with the node's display path.
func Sarif(w io.Writer, res *audit.Result, meta SarifRunMeta) error {
	rules := make([]sarifRuleDesc, 0)
	for _, r := range rule.All() {
		m := r.Meta()
		rules = append(rules, sarifRuleDesc{
			ID:               m.ID,
			Name:             m.Name,
			ShortDescription: &sarifMessage{Text: m.Description},
			Properties:       map[string]string{"category": m.Category.String()},
		})
	}

	results := make([]sarifResult, 0, len(res.Issues))
	for _, is := range res.Issues {
		text := is.Title
		if is.Description != "" {
			text += ": " + is.Description
		}
		sr := sarifResult{
			RuleID:  is.RuleID,
			Level:   sarifLevel(is.Severity),
			Message: sarifMessage{Text: text},
			Locations: []sarifLocation{{
				LogicalLocations: []sarifLogicalLocation{{
					Name:               is.Node.Label(),
					FullyQualifiedName: is.Node.Path,
					Kind:               "element",
				}},
			}},
		}
		if is.Fixable() {
			sr.Properties = map[string]any{
				"fixProperty": is.Fix.Property,
				"fixValue":    is.Fix.Value,
			}
		}
		results = append(results, sr)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		cmd := meta.InvocationArgs[0]
		for _, a := range meta.InvocationArgs[1:] {
			cmd += " " + a
		}
		run.Invocations = []sarifInvocation{{
			CommandLine:         cmd,
			ExecutionSuccessful: len(res.Errors) == 0,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	})
}
