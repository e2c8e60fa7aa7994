package integrations

import (
	"context"
	"fmt"
	"os/exec"
)

// GitRunner executes git commands in a project directory.
type GitRunner struct {
	workDir string
}

// NewGitRunner creates a GitRunner for the given directory.
func NewGitRunner(workDir string) *GitRunner {
	return &GitRunner{workDir: workDir}
}

// Diff returns the unstaged diff of the given path.
func (g *GitRunner) Diff(ctx context.Context, path string) (string, error) {
	return g.run(ctx, "diff", "--", path)
}

// CheckoutBranch creates and switches to a new branch.
func (g *GitRunner) CheckoutBranch(ctx context.Context, name string) error {
	_, err := g.run(ctx, "checkout", "-b", name)
	return err
}

// Add stages the given path.
func (g *GitRunner) Add(ctx context.Context, path string) error {
	_, err := g.run(ctx, "add", "--", path)
	return err
}

// Commit records the staged changes with the given message.
func (g *GitRunner) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the branch to origin, setting the upstream.
func (g *GitRunner) Push(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "push", "-u", "origin", branch)
	return err
}

func (g *GitRunner) run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git: no subcommand provided")
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", args[0], string(exitErr.Stderr))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
