package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPatterns expands file paths, directories and glob patterns to record
// files. Supports both single-level wildcards (*) and recursive wildcards (**).
//
// Examples:
//   - "batch.json" → ["/abs/batch.json"]
//   - "./records" → every record file directly inside ./records
//   - "./records/**/*.yaml" → all YAML files under ./records
//
// Results keep pattern order, are deduplicated, and are sorted within a
// pattern.
func ExpandPatterns(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(patterns, ", "))
	}
	return resolved, nil
}

// expandPattern expands a single pattern.
func expandPattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return []string{absPath}, nil
		}
		return recordFilesIn(absPath)
	}

	absPattern, err := makeAbsolutePattern(pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if IsRecordFile(match) {
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

// recordFilesIn lists record files directly inside dir.
func recordFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsRecordFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// makeAbsolutePattern converts a relative pattern to absolute while keeping
// the glob part intact.
func makeAbsolutePattern(pattern string) (string, error) {
	if filepath.IsAbs(pattern) {
		return filepath.Clean(pattern), nil
	}

	pattern = filepath.ToSlash(pattern)
	globIdx := strings.IndexAny(pattern, "*?[{")
	dirPart := "."
	globPart := pattern
	if lastSep := strings.LastIndex(pattern[:globIdx], "/"); lastSep >= 0 {
		dirPart = pattern[:lastSep]
		globPart = pattern[lastSep+1:]
	}

	absDir, err := filepath.Abs(dirPart)
	if err != nil {
		return "", err
	}
	return filepath.Join(absDir, filepath.FromSlash(globPart)), nil
}

// WatchDirs returns the directories that must be watched to see changes to
// files matched by patterns: the static prefix of each glob, or the parent of
// a plain file.
func WatchDirs(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		var dir string
		if containsGlob(pattern) {
			abs, err := makeAbsolutePattern(pattern)
			if err != nil {
				return nil, err
			}
			base, _ := doublestar.SplitPattern(filepath.ToSlash(abs))
			dir = filepath.FromSlash(base)
		} else {
			abs, err := filepath.Abs(pattern)
			if err != nil {
				return nil, err
			}
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				dir = abs
			} else {
				dir = filepath.Dir(abs)
			}
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}
