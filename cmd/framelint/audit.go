package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"framelint/internal/audit"
	"framelint/internal/diag"
	"framelint/internal/issuefmt"
	"framelint/internal/settings"
	"framelint/internal/trace"
	"framelint/internal/tree"
	"framelint/internal/version"
)

var auditCmd = &cobra.Command{
	Use:   "audit [flags] <snapshot.json|directory>",
	Short: "Audit a design snapshot or a directory of snapshots",
	Long:  `Run every enabled rule against the node tree of one snapshot, or of every *.json snapshot within a directory, and report the issues found.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	auditCmd.Flags().String("category", "", "only report issues of this category")
	auditCmd.Flags().Bool("by-category", false, "group pretty output under category headers")
	auditCmd.Flags().Bool("suggest", false, "include fix suggestions in pretty output")
	auditCmd.Flags().Int("max-issues", 0, "cap the number of reported issues (overrides config)")
	auditCmd.Flags().Int("grid", 0, "spacing grid base, 4 or 8 (overrides config)")
	auditCmd.Flags().Bool("no-default-rules", false, "run only rules named by --enable")
	auditCmd.Flags().StringSlice("enable", nil, "rule ids to enable")
	auditCmd.Flags().StringSlice("disable", nil, "rule ids to disable")
	auditCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	auditCmd.Flags().Bool("no-cache", false, "bypass the audit result disk cache")
	auditCmd.Flags().String("fail-on", "error", "exit non-zero on this severity or worse (error|warning|never)")
}

// cachedAudit is the disk cache payload. Results are only reused when the
// effective settings fingerprint matches.
type cachedAudit struct {
	Fingerprint string
	Result      audit.Result
}

// settingsFingerprint identifies everything that can change an audit result.
func settingsFingerprint(s *settings.Settings) string {
	return fmt.Sprintf("%s|grid=%d|max=%d|on=%s|off=%s",
		version.Plain, s.GridBase, s.MaxIssues,
		strings.Join(s.EnabledRules, ","), strings.Join(s.DisabledRules, ","))
}

type snapshotResult struct {
	Path   string
	Result *audit.Result
}

func runAudit(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}
	byCategory, err := cmd.Flags().GetBool("by-category")
	if err != nil {
		return fmt.Errorf("failed to get by-category flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	failOn, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	switch failOn {
	case "error", "warning", "never":
	default:
		return fmt.Errorf("unknown fail-on value: %s", failOn)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	var catFilter diag.Category
	if category != "" {
		catFilter, err = parseCategory(category)
		if err != nil {
			return err
		}
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

	var cache *tree.Cache
	if !noCache {
		// A broken cache dir degrades to uncached audits.
		cache, _ = tree.OpenCache("framelint")
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []snapshotResult
	if st.IsDir() {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		results, err = auditDir(cmd.Context(), target, s, tracer, cache, jobs)
		if err != nil {
			return err
		}
	} else {
		res, err := auditSnapshot(cmd.Context(), target, s, tracer, cache)
		if err != nil {
			return err
		}
		results = []snapshotResult{{Path: target, Result: res}}
	}

	if category != "" {
		for _, r := range results {
			filtered := r.Result.Issues[:0]
			for _, is := range r.Result.Issues {
				if is.Category == catFilter {
					filtered = append(filtered, is)
				}
			}
			r.Result.Issues = filtered
		}
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		prettyOpts := issuefmt.PrettyOpts{
			Color:     color,
			ShowFixes: suggest,
			ByCat:     byCategory,
		}
		for idx, r := range results {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			issuefmt.Pretty(os.Stdout, r.Result, prettyOpts)
		}
	case "json":
		if len(results) == 1 {
			if err := issuefmt.JSON(os.Stdout, results[0].Result, issuefmt.JSONOpts{Indent: true}); err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
		} else {
			output := make(map[string]issuefmt.ResultJSON, len(results))
			for _, r := range results {
				output[r.Path] = issuefmt.BuildResultJSON(r.Result, issuefmt.JSONOpts{})
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}
		}
	case "sarif":
		meta := issuefmt.SarifRunMeta{
			ToolName:       "framelint",
			ToolVersion:    version.Plain,
			InvocationArgs: os.Args,
		}
		for _, r := range results {
			if err := issuefmt.Sarif(os.Stdout, r.Result, meta); err != nil {
				return fmt.Errorf("failed to format sarif: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if showTimings {
		for _, r := range results {
			fmt.Fprintf(os.Stderr, "%s:\n", r.Path)
			for _, p := range r.Result.Timing.Phases {
				fmt.Fprintf(os.Stderr, "  %-12s %7.2f ms\n", p.Name, p.DurationMS)
			}
			fmt.Fprintf(os.Stderr, "  %-12s %7.2f ms\n", "total", r.Result.Timing.TotalMS)
		}
	}

	if shouldFail(results, failOn) {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // issues already printed
	}
	return nil
}

func parseCategory(name string) (diag.Category, error) {
	for _, c := range diag.Categories {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %s", name)
}

func shouldFail(results []snapshotResult, failOn string) bool {
	if failOn == "never" {
		return false
	}
	threshold := diag.SevError
	if failOn == "warning" {
		threshold = diag.SevWarning
	}
	for _, r := range results {
		for _, is := range r.Result.Issues {
			if is.Severity >= threshold {
				return true
			}
		}
	}
	return false
}

// auditSnapshot loads, audits and caches one snapshot.
func auditSnapshot(ctx context.Context, path string, s *settings.Settings, tracer trace.Tracer, cache *tree.Cache) (*audit.Result, error) {
	snap, err := tree.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	fingerprint := settingsFingerprint(s)
	var key tree.Digest
	haveKey := false
	if cache != nil {
		if key, err = snap.Digest(); err == nil {
			haveKey = true
			var cached cachedAudit
			if ok, _ := cache.Get(key, &cached); ok && cached.Fingerprint == fingerprint {
				trace.Point(tracer, trace.ScopeDocument, "cache-hit", path)
				return &cached.Result, nil
			}
		}
	}

	engine := audit.New(snap, audit.WithTracer(tracer))
	res, err := engine.Audit(ctx, snap.Roots, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	diag.SortBySeverity(res.Issues)

	if cache != nil && haveKey {
		// Best effort; an unwritable cache is not an audit failure.
		_ = cache.Put(key, cachedAudit{Fingerprint: fingerprint, Result: *res})
	}
	return res, nil
}

// auditDir audits every *.json snapshot in the directory. Snapshots are
// independent, so they fan out across workers; output order stays sorted by
// path regardless of completion order.
func auditDir(ctx context.Context, dir string, s *settings.Settings, tracer trace.Tracer, cache *tree.Cache, jobs int) ([]snapshotResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no snapshots found in %s", dir)
	}

	results := make([]snapshotResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := auditSnapshot(gctx, path, s, tracer, cache)
			if err != nil {
				return err
			}
			results[i] = snapshotResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
