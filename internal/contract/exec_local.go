package contract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// LocalCommandRunner implements the CommandRunner interface with os/exec.
type LocalCommandRunner struct {
	// Env is appended to the current process environment.
	Env []string
}

var _ CommandRunner = &LocalCommandRunner{} // Compile-time check

// NewLocalCommandRunner creates a runner that inherits the process environment.
func NewLocalCommandRunner() *LocalCommandRunner {
	return &LocalCommandRunner{}
}

// RunCommand runs name with args in dir. On failure the error carries the
// command line and the tail of its output.
func (r *LocalCommandRunner) RunCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), r.Env...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		line := strings.TrimSpace(name + " " + strings.Join(args, " "))
		return out.Bytes(), fmt.Errorf("command %q failed in %q: %w\n%s", line, dir, err, tailLines(out.String(), 20))
	}
	return out.Bytes(), nil
}

// tailLines returns the last n lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
