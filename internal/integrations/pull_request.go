package integrations

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyDiff is returned when pull request creation is requested but the
// file has no changes to commit.
var ErrEmptyDiff = errors.New("nothing to commit: diff is empty")

// CreatePullRequest diffs the modified file and, if the diff is non-empty,
// creates a branch, commits, pushes, and opens a pull request through the gh
// CLI. The whole flow is shell-driven; any step failing aborts the rest but
// the documented file already persisted to disk stays untouched.
func CreatePullRequest(ctx context.Context, git *GitRunner, path string) error {
	diff, err := git.Diff(ctx, path)
	if err != nil {
		return fmt.Errorf("diffing %s: %w", path, err)
	}
	if len(diff) == 0 {
		return ErrEmptyDiff
	}

	branch := branchName(path)
	if err := git.CheckoutBranch(ctx, branch); err != nil {
		return fmt.Errorf("creating branch %s: %w", branch, err)
	}
	if err := git.Add(ctx, path); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}

	title := fmt.Sprintf("add docstrings to %s", path)
	if err := git.Commit(ctx, title); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	if err := git.Push(ctx, branch); err != nil {
		return fmt.Errorf("pushing %s: %w", branch, err)
	}

	cmd := exec.CommandContext(ctx, "gh", "pr", "create", "-f", "-t", title, "-b", title)
	cmd.Dir = git.workDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gh pr create: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// branchName builds a branch name from the file path plus a short random
// suffix, so parallel runs against the same file cannot collide.
func branchName(path string) string {
	sanitized := strings.NewReplacer("/", "-", "\\", "-", ".", "-", " ", "-").Replace(path)
	return fmt.Sprintf("add-docstrings-to-%s-%s", sanitized, uuid.NewString()[:8])
}
