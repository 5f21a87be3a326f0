package issuefmt

import (
	"encoding/json"
	"io"

	"framelint/internal/audit"
	"framelint/internal/diag"
)

// SummaryJSON totals one result by severity.
type SummaryJSON struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Fixable  int `json:"fixable"`
}

// ResultJSON is the root structure of JSON output.
type ResultJSON struct {
	Issues       []diag.Issue `json:"issues"`
	Summary      SummaryJSON  `json:"summary"`
	NodesAudited int          `json:"nodesAudited"`
	DurationMS   float64      `json:"durationMs"`
	Errors       []string     `json:"errors,omitempty"`
}

// BuildResultJSON shapes the output structure without serializing it.
func BuildResultJSON(res *audit.Result, opts JSONOpts) ResultJSON {
	issues := res.Issues
	if opts.Max > 0 && opts.Max < len(issues) {
		issues = issues[:opts.Max]
	}

	summary := SummaryJSON{Total: len(res.Issues)}
	for i := range res.Issues {
		switch res.Issues[i].Severity {
		case diag.SevError:
			summary.Errors++
		case diag.SevWarning:
			summary.Warnings++
		default:
			summary.Info++
		}
		if res.Issues[i].Fixable() {
			summary.Fixable++
		}
	}

	if issues == nil {
		issues = []diag.Issue{}
	}
	return ResultJSON{
		Issues:       issues,
		Summary:      summary,
		NodesAudited: res.NodesAudited,
		DurationMS:   res.DurationMS,
		Errors:       res.Errors,
	}
}

// JSON serializes the result. Issue order is preserved.
func JSON(w io.Writer, res *audit.Result, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	if opts.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(BuildResultJSON(res, opts))
}
