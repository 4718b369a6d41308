package cmd

import (
	"errors"
	"time"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/github"
	"github.com/huangsam/sizewatch/internal/history"
	"github.com/huangsam/sizewatch/internal/outwriter"
	"github.com/huangsam/sizewatch/internal/sizes"
	"github.com/huangsam/sizewatch/schema"
	"github.com/spf13/cobra"
)

// errMissingGitHubContext is reported when compare runs outside an authenticated workflow.
var errMissingGitHubContext = errors.New("repo-token and GITHUB_REPOSITORY are required to publish")

// compareCmd builds both sides of a change and reports the size difference.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Build the base and head of a change and report compressed size deltas",
	Long: `Build the head in the working directory and the base revision in a temporary
git worktree, measure the compressed size of every matching output and report the difference.

Inside GitHub Actions the report is posted as a pull request comment (or a check run with
--use-check) and appended to the job summary.

Examples:
  # Compare the current branch against its pull request base
  sizewatch compare

  # Compare against a tag without publishing anything
  sizewatch compare --base-ref v1.2.0 --dry-run

  # Measure with brotli and ignore webpack content hashes
  sizewatch compare --compression brotli --strip-hash '\.(\w{8})\.js$'`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		deps, err := compareDeps()
		if err != nil {
			contract.LogFatal("Cannot set up comparison", err)
		}

		report, err := core.ExecuteCompare(outputContext(rootCtx), cfg, deps)
		if err != nil {
			contract.LogFatal("Cannot compare sizes", err)
		}
		if err := outwriter.PrintDiffResult(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot print results", err)
		}
	},
}

// compareDeps wires the local collaborators. Publishing needs a token and repository.
func compareDeps() (core.Deps, error) {
	deps := core.Deps{
		Git:       contract.NewLocalGitClient(),
		Runner:    contract.NewLocalCommandRunner(),
		Collector: sizes.NewCollector(cfg),
	}

	if cfg.RepoToken != "" && cfg.GitHubRepository != "" {
		reporter, err := github.NewReporter(cfg)
		if err != nil {
			return deps, err
		}
		deps.Reporter = reporter
	} else if !cfg.DryRun {
		contract.LogWarn("Report will not be published", errMissingGitHubContext)
	}

	if cfg.HistoryBackend != schema.NoneBackend {
		deps.History = history.Manager.GetStore()
	}
	return deps, nil
}
