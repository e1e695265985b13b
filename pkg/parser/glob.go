package parser

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExpandGlobs expands build log paths and glob patterns into a
// deduplicated file list, preserving argument order so record order
// follows input order. A pattern that matches nothing is an error: a
// missing build log would otherwise silently produce an empty
// database.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr != nil {
				return nil, fmt.Errorf("build log %q: %w", pattern, statErr)
			}
			matches = []string{pattern}
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	return result, nil
}
