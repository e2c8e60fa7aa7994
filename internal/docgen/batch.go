package docgen

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

// skipDirs contains directory names excluded from recursive processing.
var skipDirs = map[string]bool{
	".git":         true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"node_modules": true,
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path    string
	Changed bool
	Summary Summary
	Err     error
}

// ProcessFile reads the file, runs the pipeline, and writes the result back
// when the source changed. Whole-file reads and writes only.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, overwrite bool) FileResult {
	result := FileResult{Path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	updated, changed, sum, err := p.Run(ctx, path, source, overwrite)
	result.Summary = sum
	if err != nil {
		result.Err = err
		return result
	}

	if changed {
		if err := os.WriteFile(path, updated, 0o644); err != nil {
			result.Err = err
			return result
		}
		log.Printf("✅ Docstrings generated for %s", path)
	} else {
		log.Printf("🙏 %s unchanged.", path)
	}
	log.Printf("%s: %d documented, %d skipped, %d failed", path, sum.Documented, sum.Skipped, sum.Failed)

	result.Changed = changed
	return result
}

// ProcessDir recursively processes every Python file under dir. Files are
// independent and run on a bounded worker pool; each file's own splice chain
// stays strictly sequential inside ProcessFile. A failing file (for example
// one with a syntax error) does not stop the batch.
func (p *Pipeline) ProcessDir(ctx context.Context, dir string, overwrite bool, concurrency int, excludeDirs []string) ([]FileResult, error) {
	paths, err := listPythonFiles(dir, excludeDirs)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]FileResult, len(paths))
	workers := pool.New().WithMaxGoroutines(concurrency)
	for i, path := range paths {
		i, path := i, path
		workers.Go(func() {
			results[i] = p.ProcessFile(ctx, path, overwrite)
			if results[i].Err != nil {
				log.Printf("skipping %s: %v", path, results[i].Err)
			}
		})
	}
	workers.Wait()

	return results, nil
}

// listPythonFiles collects *.py paths under dir in walk order.
func listPythonFiles(dir string, excludeDirs []string) ([]string, error) {
	exclude := make(map[string]bool, len(skipDirs)+len(excludeDirs))
	for name := range skipDirs {
		exclude[name] = true
	}
	for _, name := range excludeDirs {
		exclude[name] = true
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
