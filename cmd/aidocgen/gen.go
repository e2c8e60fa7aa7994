package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julianshen/aidocgen/internal/config"
	"github.com/julianshen/aidocgen/internal/docgen"
	"github.com/julianshen/aidocgen/internal/integrations"
	"github.com/julianshen/aidocgen/internal/provider"
	"github.com/julianshen/aidocgen/internal/store"

	// Register providers via init() side effects.
	_ "github.com/julianshen/aidocgen/internal/provider/ollama"
	_ "github.com/julianshen/aidocgen/internal/provider/openai"
)

func genCmd() *cobra.Command {
	var (
		overwriteFlag   bool
		formatFlag      bool
		pullRequestFlag bool
		modelFlag       string
		concurrencyFlag int
		noCacheFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "gen <path>",
		Short: "Generate documentation for a source file or directory",
		Long: `Extract every function and class definition from a Python source file
(or, recursively, a directory of Python files), generate a docstring for each
through the configured LLM backend, and splice the results back into the
source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.Context(), args[0], genOptions{
				overwrite:   overwriteFlag,
				format:      formatFlag,
				pullRequest: pullRequestFlag,
				model:       modelFlag,
				concurrency: concurrencyFlag,
				noCache:     noCacheFlag,
			})
		},
	}

	cmd.Flags().BoolVarP(&overwriteFlag, "overwrite", "o", false, "overwrite existing docstrings")
	cmd.Flags().BoolVarP(&formatFlag, "format", "f", true, "format changed files with the external formatter")
	cmd.Flags().BoolVar(&pullRequestFlag, "pull-request", false, "create a pull request with the changes")
	cmd.Flags().StringVar(&modelFlag, "model", "", "override the configured model")
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "parallel files in directory runs (0 = project default)")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "bypass the docstring cache")

	return cmd
}

type genOptions struct {
	overwrite   bool
	format      bool
	pullRequest bool
	model       string
	concurrency int
	noCache     bool
}

func runGen(ctx context.Context, path string, opts genOptions) error {
	cfg, err := loadOrConfigure()
	if err != nil {
		return err
	}

	projOpts, err := config.LoadOptions(".")
	if err != nil {
		return err
	}
	if projOpts.Model != "" {
		cfg.Model = projOpts.Model
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	overwrite := opts.overwrite || projOpts.Overwrite
	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = projOpts.Concurrency
	}

	backend, err := provider.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	completer := integrations.NewLLMCompleter(backend, cfg.Model)

	cache := openCache(opts.noCache)
	if closer, ok := cache.(*store.Store); ok && closer != nil {
		defer closer.Close()
	}

	pipe := docgen.NewPipeline(completer, cache)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var results []docgen.FileResult
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "aidocgen: processing %s recursively...\n", path)
		results, err = pipe.ProcessDir(ctx, path, overwrite, concurrency, projOpts.ExcludeDirs)
		if err != nil {
			return err
		}
	} else {
		result := pipe.ProcessFile(ctx, path, overwrite)
		if result.Err != nil {
			return result.Err
		}
		results = []docgen.FileResult{result}
	}

	for _, result := range results {
		if result.Err != nil || !result.Changed {
			continue
		}
		if opts.format && projOpts.Format {
			formatter := integrations.NewFormatter(projOpts.Formatter)
			if err := formatter.Format(ctx, result.Path); err != nil {
				log.Printf("formatting %s failed: %v", result.Path, err)
			}
		}
		if opts.pullRequest {
			git := integrations.NewGitRunner(filepath.Dir(result.Path))
			if err := integrations.CreatePullRequest(ctx, git, result.Path); err != nil {
				if errors.Is(err, integrations.ErrEmptyDiff) {
					log.Printf("❌ Can't create PR for %s: %v", result.Path, err)
				} else {
					log.Printf("pull request for %s failed: %v", result.Path, err)
				}
			}
		}
	}

	return nil
}

// loadOrConfigure loads the persisted configuration, falling back to the
// interactive configure flow when either credential is missing.
func loadOrConfigure() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !cfg.IsConfigured() {
		log.Printf("Please configure aidocgen before using it...")
		return runConfigureForm()
	}
	return cfg, nil
}

// openCache opens the docstring cache next to the config file. Cache
// failures degrade to uncached operation.
func openCache(disabled bool) docgen.Cache {
	if disabled {
		return nil
	}
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil
	}
	s, err := store.NewStore(filepath.Join(filepath.Dir(cfgPath), "cache.db"))
	if err != nil {
		log.Printf("docstring cache unavailable: %v", err)
		return nil
	}
	return s
}
