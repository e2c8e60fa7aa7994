package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Options is the optional per-project .aidocgen.toml. It tunes generation
// behavior; credentials stay in the per-user config file.
type Options struct {
	Model       string   `toml:"model"`        // overrides the configured model
	Overwrite   bool     `toml:"overwrite"`    // default for --overwrite
	Format      bool     `toml:"format"`       // default for --format
	Formatter   []string `toml:"formatter"`    // formatter command, default ["black"]
	Concurrency int      `toml:"concurrency"`  // parallel files in directory runs
	ExcludeDirs []string `toml:"exclude_dirs"` // extra directory names to skip
}

// DefaultOptions returns the built-in generation options.
func DefaultOptions() *Options {
	return &Options{
		Format:      true,
		Formatter:   []string{"black"},
		Concurrency: 4,
	}
}

// LoadOptions reads .aidocgen.toml from dir, layered over the defaults.
// A missing file returns the defaults.
func LoadOptions(dir string) (*Options, error) {
	opts := DefaultOptions()

	path := filepath.Join(dir, ".aidocgen.toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if len(opts.Formatter) == 0 {
		opts.Formatter = []string{"black"}
	}
	return opts, nil
}
