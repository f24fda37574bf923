// Package utils contains general helper functions used across the libindex tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = ".libindex.yaml"
	// GlobalConfigDirectoryName is the directory under the user home that holds global configuration.
	GlobalConfigDirectoryName = ".config/libindex"
)

var serviceFiles = map[string]struct{}{
	IgnoreFileName:    {},
	GitIgnoreFileName: {},
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
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

// ShouldIgnore checks if a directory entry should be excluded from indexing based
// on its name and type relative to a set of ignore patterns. A pattern with a
// trailing slash matches a directory of that name; any other pattern is evaluated
// against the entry name with filepath.Match semantics. Ignore service files
// themselves are never indexed.
func ShouldIgnore(directoryEntry os.DirEntry, ignorePatterns []string) bool {
	entryName := directoryEntry.Name()

	if _, isServiceFile := serviceFiles[entryName]; isServiceFile {
		return true
	}

	for _, patternValue := range ignorePatterns {
		if strings.HasSuffix(patternValue, "/") {
			patternDirectory := strings.TrimSuffix(patternValue, "/")
			if directoryEntry.IsDir() && entryName == patternDirectory {
				return true
			}
			continue
		}
		isMatched, matchError := filepath.Match(patternValue, entryName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}
