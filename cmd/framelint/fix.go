package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"framelint/internal/audit"
	"framelint/internal/diag"
	"framelint/internal/fix"
	"framelint/internal/trace"
	"framelint/internal/tree"
	"framelint/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <snapshot.json>",
	Short: "Apply available fixes to a snapshot",
	Long:  "Audit the snapshot, apply the selected auto-fixes through the in-memory tree, and save the snapshot back.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every available fix")
	fixCmd.Flags().StringSlice("rule", nil, "apply only fixes produced by these rule ids")
	fixCmd.Flags().Bool("dry-run", false, "list the fixes without applying them")
	fixCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	fixCmd.Flags().String("out", "", "write the fixed snapshot to this path (default: in place)")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	ruleFilter, err := cmd.Flags().GetStringSlice("rule")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	skipConfirm, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if !applyAll && len(ruleFilter) == 0 {
		return fmt.Errorf("nothing selected: pass --all or --rule <id>")
	}

	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer := trace.FromContext(cmd.Context())

	snap, err := tree.Load(target)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	engine := audit.New(snap, audit.WithTracer(tracer))
	res, err := engine.Audit(cmd.Context(), snap.Roots, s)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	diag.SortBySeverity(res.Issues)

	selected := selectFixable(res.Issues, ruleFilter)
	if len(selected) == 0 {
		fmt.Fprintln(os.Stdout, "No applicable fixes found.")
		return nil
	}

	if dryRun {
		fmt.Fprintf(os.Stdout, "Would apply %d fix(es):\n", len(selected))
		for _, is := range selected {
			fmt.Fprintf(os.Stdout, "  %s — set %s = %v (%s)\n", is.ID, is.Fix.Property, is.Fix.Value, is.Node.Label())
		}
		return nil
	}

	if s.ConfirmBeforeFix && !skipConfirm {
		if !confirm(fmt.Sprintf("Apply %d fix(es) to %s?", len(selected), target)) {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	undo := fix.NewUndoLog(0)
	fixer := fix.New(snap, undo, fix.WithTracer(tracer))

	var batch *fix.Batch
	if isTerminal(os.Stdout) {
		batch, err = applyWithUI(cmd, fixer, selected)
	} else {
		batch, err = fixer.ApplyAll(cmd.Context(), selected, func(done, total int, is diag.Issue, ok bool) {
			status := "fixed"
			if !ok {
				status = "failed"
			}
			fmt.Fprintf(os.Stdout, "[%d/%d] %s %s\n", done, total, status, is.ID)
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Applied %d fix(es), %d failed.\n", batch.Success, batch.Failed)
	for _, sk := range batch.Skipped {
		fmt.Fprintf(os.Stdout, "  skipped %s: %s\n", sk.IssueID, sk.Reason)
	}

	if batch.Success > 0 {
		if outPath == "" {
			outPath = target
		}
		if err := snap.Save(outPath); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Saved %s\n", outPath)
	}
	return nil
}

// selectFixable keeps fixable issues, optionally narrowed to a rule set.
func selectFixable(issues []diag.Issue, ruleFilter []string) []diag.Issue {
	selected := make([]diag.Issue, 0, len(issues))
	for _, is := range issues {
		if !is.Fixable() {
			continue
		}
		if len(ruleFilter) > 0 && !containsString(ruleFilter, is.RuleID) {
			continue
		}
		selected = append(selected, is)
	}
	return selected
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stdout, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// applyWithUI runs the batch behind a Bubble Tea progress screen. The fix
// engine runs in a goroutine and feeds events through a channel; the UI owns
// the terminal until the batch finishes.
func applyWithUI(cmd *cobra.Command, fixer *fix.Engine, selected []diag.Issue) (*fix.Batch, error) {
	rows := make([]ui.FixEvent, len(selected))
	for i, is := range selected {
		rows[i] = ui.FixEvent{IssueID: is.ID, Title: is.Title}
	}

	events := make(chan ui.FixEvent)
	model := ui.NewFixModel("applying fixes", rows, events)
	program := tea.NewProgram(model)

	var batch *fix.Batch
	var applyErr error
	go func() {
		defer close(events)
		batch, applyErr = fixer.ApplyAll(cmd.Context(), selected, func(done, total int, is diag.Issue, ok bool) {
			events <- ui.FixEvent{IssueID: is.ID, Title: is.Title, Done: done, Total: total, OK: ok}
		})
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("progress ui failed: %w", err)
	}
	if applyErr != nil {
		return nil, applyErr
	}
	return batch, nil
}
