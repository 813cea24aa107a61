// Package utils contains general helper functions used across the grab tool.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// NodeModulesDirectoryName is the npm dependency directory excluded by default.
	NodeModulesDirectoryName = "node_modules"
	// DistDirectoryName is the build output directory excluded by default.
	DistDirectoryName = "dist"
	// BuildDirectoryName is the build output directory excluded by default.
	BuildDirectoryName = "build"
)

// DefaultIgnoreNames returns the directory names excluded from traversal when
// no configuration overrides them.
func DefaultIgnoreNames() []string {
	return []string{GitDirectoryName, NodeModulesDirectoryName, DistDirectoryName, BuildDirectoryName}
}

// DeduplicatePatterns removes duplicate names from a slice while preserving order.
// The first occurrence of each unique name is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the slash-separated relative path from root to
// fullPath. Returns the cleaned fullPath if relative calculation fails and "."
// if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// JoinRelative appends a child name to a slash-separated relative path.
func JoinRelative(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}

// SplitPathSegments splits a slash-separated relative path into its segments.
func SplitPathSegments(relativePath string) []string {
	return strings.Split(relativePath, "/")
}
