package contract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// initTestRepo creates a repository with two commits and returns its path.
func initTestRepo(t *testing.T, client *LocalGitClient) string {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	identity := []string{"-c", "user.name=sizewatch", "-c", "user.email=sizewatch@example.com", "-c", "commit.gpgsign=false"}
	commit := func(msg string) {
		_, err := client.Run(ctx, dir, append(identity, "commit", "-q", "--allow-empty", "-m", msg)...)
		require.NoError(t, err)
	}

	_, err := client.Run(ctx, dir, "init", "-q")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("console.log(1)\n"), 0o644))
	_, err = client.Run(ctx, dir, "add", "index.js")
	require.NoError(t, err)
	commit("first")
	commit("second")
	return dir
}

func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)
	ctx := context.Background()
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	mockClient.
		On("Run", ctx, "/path/to/repo", "log", "-1", "--oneline").
		Return(expectedOutput, expectedError).
		Once()

	actualOutput, actualError := mockClient.Run(ctx, "/path/to/repo", "log", "-1", "--oneline")

	assert.Equal(t, expectedOutput, actualOutput)
	assert.Equal(t, expectedError, actualError)
	mockClient.AssertExpectations(t)
}

func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client)
	assert.IsType(t, &LocalGitClient{}, client)
}

func TestLocalGitClient_Run(t *testing.T) {
	skipIfGitNotAvailable(t)
	client := NewLocalGitClient()
	ctx := context.Background()

	_, err := client.Run(ctx, "/nonexistent/path", "status")
	assert.Error(t, err)

	repo := initTestRepo(t, client)
	_, err = client.Run(ctx, repo, "invalid-command")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "git invalid-command failed")
}

func TestLocalGitClient_GetRepoRoot(t *testing.T) {
	skipIfGitNotAvailable(t)
	client := NewLocalGitClient()
	ctx := context.Background()
	repo := initTestRepo(t, client)

	nested := filepath.Join(repo, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))

	root, err := client.GetRepoRoot(ctx, nested)
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(repo)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	_, err = client.GetRepoRoot(ctx, t.TempDir())
	assert.Error(t, err)
}

func TestLocalGitClient_RevParseAndMergeBase(t *testing.T) {
	skipIfGitNotAvailable(t)
	client := NewLocalGitClient()
	ctx := context.Background()
	repo := initTestRepo(t, client)

	head, err := client.RevParse(ctx, repo, "HEAD")
	require.NoError(t, err)
	assert.Len(t, head, 40)

	parent, err := client.RevParse(ctx, repo, "HEAD~1")
	require.NoError(t, err)
	assert.NotEqual(t, head, parent)

	base, err := client.MergeBase(ctx, repo, "HEAD", "HEAD~1")
	require.NoError(t, err)
	assert.Equal(t, parent, base)

	_, err = client.RevParse(ctx, repo, "does-not-exist")
	assert.Error(t, err)
}

func TestLocalGitClient_Worktree(t *testing.T) {
	skipIfGitNotAvailable(t)
	client := NewLocalGitClient()
	ctx := context.Background()
	repo := initTestRepo(t, client)

	dir := filepath.Join(t.TempDir(), "base")
	require.NoError(t, client.AddWorktree(ctx, repo, dir, "HEAD~1"))

	_, err := os.Stat(filepath.Join(dir, "index.js"))
	assert.NoError(t, err)

	require.NoError(t, client.RemoveWorktree(ctx, repo, dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
