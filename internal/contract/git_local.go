package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git %s failed in %q: %s", strings.Join(args, " "), repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// RevParse implements the GitClient interface.
func (c *LocalGitClient) RevParse(ctx context.Context, repoPath string, ref string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// MergeBase implements the GitClient interface.
func (c *LocalGitClient) MergeBase(ctx context.Context, repoPath string, a, b string) (string, error) {
	out, err := c.Run(ctx, repoPath, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Fetch implements the GitClient interface.
func (c *LocalGitClient) Fetch(ctx context.Context, repoPath string, remote string, ref string) error {
	_, err := c.Run(ctx, repoPath, "fetch", "--no-tags", remote, ref)
	return err
}

// AddWorktree implements the GitClient interface.
func (c *LocalGitClient) AddWorktree(ctx context.Context, repoPath string, dir string, ref string) error {
	_, err := c.Run(ctx, repoPath, "worktree", "add", "--detach", dir, ref)
	return err
}

// RemoveWorktree implements the GitClient interface.
func (c *LocalGitClient) RemoveWorktree(ctx context.Context, repoPath string, dir string) error {
	_, err := c.Run(ctx, repoPath, "worktree", "remove", "--force", dir)
	return err
}
