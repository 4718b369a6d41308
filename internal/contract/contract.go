// Package contract provides interfaces and shared utilities for the sizewatch internals.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/sizewatch/schema"
)

// GitClient defines the git operations needed to build two revisions side by side.
// This allows the orchestration to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// RevParse resolves a reference to a full commit hash.
	RevParse(ctx context.Context, repoPath string, ref string) (string, error)

	// MergeBase returns the best common ancestor of two references.
	MergeBase(ctx context.Context, repoPath string, a, b string) (string, error)

	// Fetch fetches a single reference from a remote without tags.
	Fetch(ctx context.Context, repoPath string, remote string, ref string) error

	// AddWorktree checks out ref into dir as a detached worktree.
	AddWorktree(ctx context.Context, repoPath string, dir string, ref string) error

	// RemoveWorktree removes a worktree created by AddWorktree.
	RemoveWorktree(ctx context.Context, repoPath string, dir string) error
}

// CommandRunner executes build commands such as install and build scripts.
type CommandRunner interface {
	// RunCommand runs name with args in dir and returns its combined output.
	RunCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// SizeCollector measures the compressed size of every matching file under a root.
type SizeCollector interface {
	Collect(ctx context.Context, root string) (schema.SizeMap, error)
}

// Reporter publishes a rendered report to the pull request.
type Reporter interface {
	Publish(ctx context.Context, report string, summary schema.DiffSummary) error
}

// HistoryStore defines the interface for recording size comparison runs.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, baseRef, headRef string, compression schema.CompressionMode, configParams map[string]any) (int64, error)

	// RecordFileSizes stores the per-file sizes and deltas of a run
	RecordFileSizes(runID int64, records []schema.FileSizeRecord) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totals schema.RunTotals) error

	// GetStatus returns status information about the store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFileSizes returns every recorded file row ordered by run and filename
	GetAllFileSizes() ([]schema.FileSizeRow, error)

	// Close closes the underlying connection
	Close() error
}
