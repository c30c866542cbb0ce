package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery resolves root paths to a deterministic list of files
// using include and exclude glob patterns.
type Discovery struct {
	includePatterns []compiledPattern
	excludePatterns []compiledPattern
}

// NewDiscovery compiles the include and exclude patterns.
func NewDiscovery(includePatterns, excludePatterns []string) (*Discovery, error) {
	d := &Discovery{}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		d.includePatterns = append(d.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		d.excludePatterns = append(d.excludePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Resolve expands the given file and directory paths into the final
// ordered file list: directories are walked recursively, matches are
// deduplicated, and the result is sorted lexicographically by
// resolved path so runs are deterministic.
func (d *Discovery) Resolve(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		resolved, err := filepath.Abs(path)
		if err != nil {
			resolved = path
		}
		if !seen[resolved] {
			seen[resolved] = true
			files = append(files, resolved)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %s", root)
		}

		if !info.IsDir() {
			// Explicit file arguments only need to match an include
			// pattern; exclude rules are for tree walks.
			if d.matchesAnyPattern(filepath.ToSlash(filepath.Base(root)), d.includePatterns) {
				add(root)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			relPath, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			relPath = filepath.ToSlash(relPath)

			if info.IsDir() {
				if path != root && d.shouldExclude(relPath) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.shouldExclude(relPath) {
				return nil
			}
			if d.matchesAnyPattern(relPath, d.includePatterns) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to traverse %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// shouldExclude checks if a path matches any exclude pattern, either
// directly or as a directory whose contents a pattern like
// "venv/**" would cover.
func (d *Discovery) shouldExclude(relPath string) bool {
	if d.matchesAnyPattern(relPath, d.excludePatterns) {
		return true
	}
	return d.matchesAnyPattern(relPath+"/**", d.excludePatterns)
}

// matchesAnyPattern checks if a path matches any of the given
// patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.py" would not match
	// "setup.py". Retry those patterns without the **/ prefix, the
	// way users expect them to behave.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
