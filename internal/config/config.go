// Package config handles the persisted backend credentials and optional
// per-project generation options.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultModel is used when the operator leaves the model choice empty.
const DefaultModel = "code-davinci-002"

// Config holds the backend configuration for one run. It is constructed
// once and passed by reference into the synthesis layer; nothing reads it
// from process-global state.
type Config struct {
	Provider string // "openai" (default) or "ollama"
	Model    string
	APIKey   string
	BaseURL  string
}

// IsConfigured reports whether the credentials required for the configured
// provider are present. Ollama needs no API key.
func (c *Config) IsConfigured() bool {
	if c.Model == "" {
		return false
	}
	if c.Provider == "ollama" {
		return true
	}
	return c.APIKey != ""
}

// DefaultPath returns the fixed per-user configuration file location,
// ~/.config/aidocgen/config.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "aidocgen", "config.ini"), nil
}

// configKeys maps the persisted key names onto Config fields.
var configKeys = map[string]func(*Config, string){
	"OPENAI_API_KEY":  func(c *Config, v string) { c.APIKey = v },
	"OPENAI_MODEL":    func(c *Config, v string) { c.Model = v },
	"OPENAI_BASE_URL": func(c *Config, v string) { c.BaseURL = v },
	"AIDOC_PROVIDER":  func(c *Config, v string) { c.Provider = v },
}

// Load reads the key-value configuration file at path. A missing file
// returns an empty Config and no error: the caller falls back into the
// interactive configure flow. Environment variables OPENAI_API_KEY and
// OPENAI_MODEL override the persisted values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			if set, known := configKeys[strings.TrimSpace(key)]; known {
				set(cfg, strings.TrimSpace(value))
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Environment takes precedence over the file.
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}

	return cfg, nil
}

// Save persists the configuration as key-value lines. The file is created
// with owner-only permissions since it carries the API key.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "OPENAI_API_KEY=%s\n", cfg.APIKey)
	fmt.Fprintf(&b, "OPENAI_MODEL=%s\n", cfg.Model)
	if cfg.BaseURL != "" {
		fmt.Fprintf(&b, "OPENAI_BASE_URL=%s\n", cfg.BaseURL)
	}
	if cfg.Provider != "" && cfg.Provider != "openai" {
		fmt.Fprintf(&b, "AIDOC_PROVIDER=%s\n", cfg.Provider)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
