// Package issuefmt renders audit results for humans and machines: a colored
// terminal listing, plain JSON, and SARIF 2.1.0 for code-quality tooling.
package issuefmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"framelint/internal/audit"
	"framelint/internal/diag"
)

var (
	errColor   = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan, color.Bold)
	ruleColor  = color.New(color.FgWhite, color.Bold)
	pathColor  = color.New(color.Faint)
	fixColor   = color.New(color.FgGreen)
	headColor  = color.New(color.FgMagenta, color.Bold)
	countColor = color.New(color.Bold)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Pretty writes a human-readable listing. Issues are printed in result
// order; sort the result before calling if severity order is wanted.
func Pretty(w io.Writer, res *audit.Result, opts PrettyOpts) {
	restore := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = restore }()

	if opts.ByCat {
		groups := diag.GroupByCategory(res.Issues)
		for _, c := range diag.Categories {
			items := groups[c]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s\n", headColor.Sprintf("%s (%d)", c, len(items)))
			for _, is := range items {
				printIssue(w, is, opts)
			}
			fmt.Fprintln(w)
		}
	} else {
		for _, is := range res.Issues {
			printIssue(w, is, opts)
		}
		if len(res.Issues) > 0 {
			fmt.Fprintln(w)
		}
	}

	printSummary(w, res)
}

func printIssue(w io.Writer, is diag.Issue, opts PrettyOpts) {
	sev := severityColor(is.Severity).Sprint(is.Severity.String())
	fmt.Fprintf(w, "%s %s: %s\n", sev, ruleColor.Sprint(is.RuleID), is.Title)

	where := is.Node.Path
	if where == "" {
		where = is.Node.Label()
	}
	fmt.Fprintf(w, "    %s\n", pathColor.Sprint(truncate("at "+where, opts.Width-4)))

	if is.Description != "" {
		fmt.Fprintf(w, "    %s\n", truncate(is.Description, opts.Width-4))
	}
	if opts.ShowFixes && is.Fixable() {
		fmt.Fprintf(w, "    %s\n", fixColor.Sprintf("fix: set %s = %v", is.Fix.Property, is.Fix.Value))
	}
}

func printSummary(w io.Writer, res *audit.Result) {
	var errs, warns, infos int
	fixable := 0
	for _, is := range res.Issues {
		switch is.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
		if is.Fixable() {
			fixable++
		}
	}

	if len(res.Issues) == 0 {
		fmt.Fprintf(w, "%s across %d nodes\n", fixColor.Sprint("no issues"), res.NodesAudited)
	} else {
		fmt.Fprintf(w, "%s (%s, %s, %s) across %d nodes, %d auto-fixable\n",
			countColor.Sprintf("%d issues", len(res.Issues)),
			errColor.Sprintf("%d errors", errs),
			warnColor.Sprintf("%d warnings", warns),
			infoColor.Sprintf("%d info", infos),
			res.NodesAudited, fixable)
	}
	for _, msg := range res.Errors {
		fmt.Fprintf(w, "%s %s\n", errColor.Sprint("audit error:"), msg)
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
