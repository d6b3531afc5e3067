package common

import (
	"path"
	"path/filepath"
	"strings"
)

// Expand `target` relative to given path if its a relative path, else it will
// be returned unchanged. Empty string will be returned as empty string.
func ResolveRelativePath(target, relativeTo string) string {
	if target == "" {
		return target
	}

	if filepath.IsAbs(target) {
		return target
	}

	target = filepath.Join(relativeTo, target)
	target = filepath.Clean(target)

	return target
}

// NormalizePathPatterns strips directory suffixes from ignore patterns, so
// that both `node_modules` and `node_modules/*` ignore the whole directory.
func NormalizePathPatterns(patterns []string) []string {
	normalized := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if trimmed, ok := strings.CutSuffix(pattern, "/*"); ok {
			normalized = append(normalized, trimmed)
		} else {
			normalized = append(normalized, pattern)
		}
	}

	return normalized
}

// Checks if given path is matched by any of the ignore patterns. A pattern is
// matched against both the base name and the whole slash-separated path.
func IsIgnoredPath(target string, patterns []string) bool {
	target = filepath.ToSlash(target)
	basename := path.Base(target)

	for _, pattern := range NormalizePathPatterns(patterns) {
		if ok, err := path.Match(pattern, basename); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, target); err == nil && ok {
			return true
		}
	}

	return false
}
