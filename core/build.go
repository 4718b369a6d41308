package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/sizewatch/internal/contract"
)

// packageManager describes how to install and run scripts for one lockfile.
type packageManager struct {
	Name     string
	Lockfile string
	Install  []string
	Run      []string
}

// packageManagers is checked in order; the first lockfile found wins.
var packageManagers = []packageManager{
	{Name: "bun", Lockfile: "bun.lockb", Install: []string{"bun", "install"}, Run: []string{"bun", "run"}},
	{Name: "pnpm", Lockfile: "pnpm-lock.yaml", Install: []string{"pnpm", "install", "--frozen-lockfile"}, Run: []string{"pnpm", "run"}},
	{Name: "yarn", Lockfile: "yarn.lock", Install: []string{"yarn", "--frozen-lockfile"}, Run: []string{"yarn", "run"}},
	{Name: "npm", Lockfile: "package-lock.json", Install: []string{"npm", "ci"}, Run: []string{"npm", "run"}},
}

// fallbackPackageManager is used when no lockfile exists.
var fallbackPackageManager = packageManager{Name: "npm", Install: []string{"npm", "install"}, Run: []string{"npm", "run"}}

// detectPackageManager looks for a lockfile in dir and its parents up to stop.
func detectPackageManager(dir, stop string) packageManager {
	current := filepath.Clean(dir)
	stop = filepath.Clean(stop)
	for {
		for _, pm := range packageManagers {
			if _, err := os.Stat(filepath.Join(current, pm.Lockfile)); err == nil {
				return pm
			}
		}
		if current == stop {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return fallbackPackageManager
}

// scriptCommand returns the command line for a configured script. A script with
// whitespace is a shell command; a single word names a package.json script.
func scriptCommand(pm packageManager, script string) []string {
	if strings.ContainsAny(script, " \t") {
		return []string{"sh", "-c", script}
	}
	return append(append([]string{}, pm.Run...), script)
}

// buildSteps returns the commands needed to build the tree at dir.
func buildSteps(cfg *contract.Config, dir, root string) [][]string {
	pm := detectPackageManager(dir, root)

	var steps [][]string
	if cfg.CleanScript != "" {
		steps = append(steps, scriptCommand(pm, cfg.CleanScript))
	}
	switch cfg.InstallScript {
	case contract.SkipInstallScript:
	case contract.AutoInstallScript, "":
		steps = append(steps, pm.Install)
	default:
		steps = append(steps, scriptCommand(pm, cfg.InstallScript))
	}
	steps = append(steps, scriptCommand(pm, cfg.BuildScript))
	return steps
}

// runBuild runs every build step in dir and stops at the first failure.
func runBuild(ctx context.Context, cfg *contract.Config, runner contract.CommandRunner, dir, root string) error {
	for _, step := range buildSteps(cfg, dir, root) {
		if !shouldSuppressHeader(ctx) {
			fmt.Printf("🏗️  Running: %s\n", strings.Join(step, " "))
		}
		if _, err := runner.RunCommand(ctx, dir, step[0], step[1:]...); err != nil {
			return fmt.Errorf("build step failed: %w", err)
		}
	}
	return nil
}
