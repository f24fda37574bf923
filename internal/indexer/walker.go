// Package indexer walks a directory tree and assembles the hierarchical index document.
package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tython3/AutoCodebaseIndex/internal/config"
	"github.com/Tython3/AutoCodebaseIndex/internal/utils"
)

const (
	// indentUnit is the indentation added per nesting level.
	indentUnit = "    "

	directoryLinePrefix  = "Directory: "
	fileLinePrefix       = "File: "
	summaryLinePrefix    = "Summary: "
	directoryErrorFormat = "Error reading directory: %v"
)

// FileSummarizer produces the summary text for one file. Read failures are
// reported inside the returned text; a non-nil error aborts the traversal.
type FileSummarizer interface {
	SummarizeFile(requestContext context.Context, filePath string) (string, error)
}

// Options configures which directory entries a Walker visits.
type Options struct {
	ExclusionPatterns []string
	UseGitignore      bool
	UseIgnoreFile     bool
	IncludeGit        bool
}

// Walker traverses a directory tree depth-first, summarizing every regular
// file and emitting one indented index line per directory, file, and summary.
type Walker struct {
	summarizer FileSummarizer
	options    Options
}

// NewWalker constructs a Walker using the provided summarizer.
func NewWalker(summarizer FileSummarizer, options Options) *Walker {
	return &Walker{summarizer: summarizer, options: options}
}

// Walk visits directoryPath at the given nesting depth and returns the index
// lines for the whole subtree. Entries are visited in lexicographic order;
// subdirectory lines are spliced in place. A directory that cannot be listed
// contributes a single inline error line and is not descended into.
func (walker *Walker) Walk(requestContext context.Context, directoryPath string, depth int) ([]string, error) {
	indentation := strings.Repeat(indentUnit, depth)
	indexLines := []string{indentation + directoryLinePrefix + filepath.Base(directoryPath)}

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		indexLines = append(indexLines, indentation+indentUnit+fmt.Sprintf(directoryErrorFormat, readDirectoryError))
		return indexLines, nil
	}
	sort.Slice(directoryEntries, func(firstIndex, secondIndex int) bool {
		return directoryEntries[firstIndex].Name() < directoryEntries[secondIndex].Name()
	})

	ignorePatterns, loadIgnoreError := config.LoadCombinedIgnorePatterns(
		directoryPath,
		walker.options.ExclusionPatterns,
		walker.options.UseGitignore,
		walker.options.UseIgnoreFile,
		walker.options.IncludeGit,
	)
	if loadIgnoreError != nil {
		return nil, loadIgnoreError
	}

	for _, directoryEntry := range directoryEntries {
		if utils.ShouldIgnore(directoryEntry, ignorePatterns) {
			continue
		}
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		entryInformation, statError := os.Stat(entryPath)
		if statError != nil {
			// Dangling symlinks and vanished entries are skipped without a line.
			continue
		}
		switch {
		case entryInformation.IsDir():
			subtreeLines, walkError := walker.Walk(requestContext, entryPath, depth+1)
			if walkError != nil {
				return nil, walkError
			}
			indexLines = append(indexLines, subtreeLines...)
		case entryInformation.Mode().IsRegular():
			fileSummary, summaryError := walker.summarizer.SummarizeFile(requestContext, entryPath)
			if summaryError != nil {
				return nil, summaryError
			}
			indexLines = append(indexLines,
				indentation+indentUnit+fileLinePrefix+directoryEntry.Name(),
				indentation+indentUnit+indentUnit+summaryLinePrefix+fileSummary,
			)
		}
	}
	return indexLines, nil
}
