// Package core has the size-diff reporting engine and the orchestration that
// builds two revisions and measures them.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/github"
	"github.com/huangsam/sizewatch/schema"
)

// DefaultRemote is the remote consulted when the base ref comes from the pull request.
const DefaultRemote = "origin"

// Deps holds the collaborators of a compare run.
// Reporter and History are optional.
type Deps struct {
	Git       contract.GitClient
	Runner    contract.CommandRunner
	Collector contract.SizeCollector
	Reporter  contract.Reporter
	History   contract.HistoryStore
}

// ExecuteCompare builds the head tree in place and the base revision in a
// temporary worktree, measures both and publishes the size report.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, deps Deps) (*schema.CompareReport, error) {
	start := time.Now()

	repoRoot, err := deps.Git.GetRepoRoot(ctx, cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("cwd %s is not inside a git repository: %w", cfg.WorkDir, err)
	}
	relDir, err := relativeWorkDir(repoRoot, cfg.WorkDir)
	if err != nil {
		return nil, err
	}

	headSHA, err := deps.Git.RevParse(ctx, repoRoot, cfg.HeadRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head ref %q: %w", cfg.HeadRef, err)
	}
	baseSHA, err := resolveBaseRef(ctx, cfg, deps.Git, repoRoot)
	if err != nil {
		return nil, err
	}

	if !shouldSuppressHeader(ctx) {
		logCompareHeader(cfg, repoRoot, baseSHA, headSHA)
	}

	logPhase(ctx, "📦 Building head (%s)", shortSHA(headSHA))
	if err := runBuild(ctx, cfg, deps.Runner, cfg.WorkDir, repoRoot); err != nil {
		return nil, err
	}
	headSizes, err := deps.Collector.Collect(ctx, cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect head sizes: %w", err)
	}

	baseSizes, err := buildBase(ctx, cfg, deps, repoRoot, relDir, baseSHA)
	if err != nil {
		return nil, err
	}

	report := newCompareReport(baseSizes, headSizes, cfg.Report)
	report.BaseRef = baseSHA
	report.HeadRef = headSHA
	logPhase(ctx, "📊 Compared %d files in %v", report.Result.Summary.TotalFiles, time.Since(start).Round(time.Millisecond))

	if deps.Reporter != nil && !cfg.DryRun {
		if err := deps.Reporter.Publish(ctx, report.Markdown, report.Result.Summary); err != nil {
			return nil, fmt.Errorf("failed to publish report: %w", err)
		}
	}
	if cfg.StepSummaryPath != "" {
		if err := appendStepSummary(cfg.StepSummaryPath, report.Markdown); err != nil {
			contract.LogWarn("Failed to write step summary", err)
		}
	}
	if deps.History != nil {
		recordRun(deps.History, cfg, report, start)
	}
	return report, nil
}

// ExecuteDiff compares two size maps collected earlier, without building anything.
func ExecuteDiff(_ context.Context, cfg *contract.Config) (*schema.CompareReport, error) {
	if cfg.BaseSizesPath == "" || cfg.HeadSizesPath == "" {
		return nil, errors.New("both base and head size files are required")
	}
	baseSizes, err := LoadSizeMap(cfg.BaseSizesPath)
	if err != nil {
		return nil, err
	}
	headSizes, err := LoadSizeMap(cfg.HeadSizesPath)
	if err != nil {
		return nil, err
	}

	report := CompareSizeMaps(baseSizes, headSizes, cfg)
	report.BaseRef = cfg.BaseSizesPath
	report.HeadRef = cfg.HeadSizesPath
	return report, nil
}

// CompareSizeMaps normalizes both maps with cfg.StripHash and reports the difference.
func CompareSizeMaps(baseSizes, headSizes schema.SizeMap, cfg *contract.Config) *schema.CompareReport {
	normalize := NewNormalizer(cfg.StripHash)
	return newCompareReport(NormalizeSizes(baseSizes, normalize), NormalizeSizes(headSizes, normalize), cfg.Report)
}

// ExecuteSizes measures the tree at cfg.WorkDir without building it.
func ExecuteSizes(ctx context.Context, cfg *contract.Config, collector contract.SizeCollector) (schema.SizeMap, error) {
	sizes, err := collector.Collect(ctx, cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sizes in %s: %w", cfg.WorkDir, err)
	}
	return sizes, nil
}

// newCompareReport diffs the size maps and renders the markdown report.
func newCompareReport(baseSizes, headSizes schema.SizeMap, opts schema.ReportOptions) *schema.CompareReport {
	records := DiffSizes(baseSizes, headSizes)
	return &schema.CompareReport{
		Result:   BuildDiffResult(records, opts.SortBy),
		Markdown: RenderReport(records, opts),
	}
}

// buildBase checks out baseSHA into a temporary worktree, builds it at the same
// relative directory and returns its sizes. The worktree is always removed.
func buildBase(ctx context.Context, cfg *contract.Config, deps Deps, repoRoot, relDir, baseSHA string) (schema.SizeMap, error) {
	tmpDir, err := os.MkdirTemp("", "sizewatch-base-")
	if err != nil {
		return nil, fmt.Errorf("failed to create base worktree directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	worktree := filepath.Join(tmpDir, "tree")
	if err := deps.Git.AddWorktree(ctx, repoRoot, worktree, baseSHA); err != nil {
		return nil, fmt.Errorf("failed to check out base %s: %w", shortSHA(baseSHA), err)
	}
	defer func() {
		if err := deps.Git.RemoveWorktree(context.WithoutCancel(ctx), repoRoot, worktree); err != nil {
			contract.LogWarn("Failed to remove base worktree", err)
		}
	}()

	baseDir := filepath.Join(worktree, relDir)
	logPhase(ctx, "📦 Building base (%s)", shortSHA(baseSHA))
	if err := runBuild(ctx, cfg, deps.Runner, baseDir, worktree); err != nil {
		return nil, err
	}
	sizes, err := deps.Collector.Collect(ctx, baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect base sizes: %w", err)
	}
	return sizes, nil
}

// resolveBaseRef picks the base commit: the configured base ref, else the pull
// request base from the event payload, else the merge base with the pull
// request's target branch.
func resolveBaseRef(ctx context.Context, cfg *contract.Config, git contract.GitClient, repoRoot string) (string, error) {
	if cfg.BaseRef != "" {
		sha, err := git.RevParse(ctx, repoRoot, cfg.BaseRef)
		if err != nil {
			return "", fmt.Errorf("failed to resolve base ref %q: %w", cfg.BaseRef, err)
		}
		return sha, nil
	}

	if cfg.EventPath != "" {
		event, err := github.ReadEvent(cfg.EventPath)
		if err != nil {
			contract.LogWarn("Ignoring event payload", err)
		} else if base := event.BaseSHA(); base != "" {
			if sha, err := git.RevParse(ctx, repoRoot, base); err == nil {
				return sha, nil
			}
			// Shallow checkouts do not have the base commit yet
			if err := git.Fetch(ctx, repoRoot, DefaultRemote, base); err != nil {
				return "", fmt.Errorf("failed to fetch pull request base %s: %w", shortSHA(base), err)
			}
			sha, err := git.RevParse(ctx, repoRoot, base)
			if err != nil {
				return "", fmt.Errorf("failed to resolve pull request base %s: %w", shortSHA(base), err)
			}
			return sha, nil
		}
	}

	if cfg.GitHubBaseRef != "" {
		if err := git.Fetch(ctx, repoRoot, DefaultRemote, cfg.GitHubBaseRef); err != nil {
			contract.LogWarn("Failed to fetch base branch", err)
		}
		sha, err := git.MergeBase(ctx, repoRoot, cfg.HeadRef, DefaultRemote+"/"+cfg.GitHubBaseRef)
		if err != nil {
			return "", fmt.Errorf("failed to find merge base with %s/%s: %w", DefaultRemote, cfg.GitHubBaseRef, err)
		}
		return sha, nil
	}

	return "", errors.New("unable to determine the base ref. set --base-ref or run inside a pull_request workflow")
}

// relativeWorkDir returns workDir relative to repoRoot, resolving symlinks on both.
func relativeWorkDir(repoRoot, workDir string) (string, error) {
	resolved := workDir
	if evaluated, err := filepath.EvalSymlinks(workDir); err == nil {
		resolved = evaluated
	}
	root := repoRoot
	if evaluated, err := filepath.EvalSymlinks(repoRoot); err == nil {
		root = evaluated
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("cwd %s is outside the repository %s", workDir, repoRoot)
	}
	return rel, nil
}

// appendStepSummary appends the markdown report to the job summary file.
func appendStepSummary(path, markdown string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(markdown + "\n\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// recordRun stores the run in the history store. Failures are warnings.
func recordRun(store contract.HistoryStore, cfg *contract.Config, report *schema.CompareReport, start time.Time) {
	runID, err := store.BeginRun(start, report.BaseRef, report.HeadRef, cfg.Compression, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("Failed to record history run", err)
		return
	}
	if err := store.RecordFileSizes(runID, report.Result.Files); err != nil {
		contract.LogWarn("Failed to record history file sizes", err)
	}
	summary := report.Result.Summary
	totals := schema.RunTotals{
		TotalSize:  summary.TotalSize,
		TotalDelta: summary.TotalDelta,
		TotalFiles: summary.TotalFiles,
	}
	if err := store.EndRun(runID, time.Now(), totals); err != nil {
		contract.LogWarn("Failed to finish history run", err)
	}
}

// logCompareHeader prints a concise header for a compare run.
func logCompareHeader(cfg *contract.Config, repoRoot, baseSHA, headSHA string) {
	repoName := filepath.Base(repoRoot)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	fmt.Printf("🔎 Repo: %s (Compression: %s)\n", repoName, cfg.Compression)
	fmt.Printf("📊 Comparing: %s ↔ %s\n", shortSHA(baseSHA), shortSHA(headSHA))
}

// logPhase prints one progress line unless headers are suppressed.
func logPhase(ctx context.Context, format string, args ...any) {
	if shouldSuppressHeader(ctx) {
		return
	}
	fmt.Printf(format+"\n", args...)
}

// shortSHA abbreviates a commit hash for display.
func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
