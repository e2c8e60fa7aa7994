package integrations

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter runs an external code formatter over a file in place. The
// default command is black; a different formatter can be configured per
// project.
type Formatter struct {
	command []string
}

// NewFormatter creates a Formatter for the given command line. An empty
// command falls back to black.
func NewFormatter(command []string) *Formatter {
	if len(command) == 0 {
		command = []string{"black"}
	}
	return &Formatter{command: command}
}

// Format formats the file at path in place.
func (f *Formatter) Format(ctx context.Context, path string) error {
	args := append(append([]string{}, f.command[1:]...), path)
	cmd := exec.CommandContext(ctx, f.command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %s: %w", f.command[0], path, strings.TrimSpace(string(out)), err)
	}
	return nil
}
