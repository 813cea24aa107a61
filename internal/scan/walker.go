// Package scan discovers, classifies, and selects filesystem entries below a
// scan root.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

const (
	// errorListTargetFormat reports a listing failure on the traversal target.
	errorListTargetFormat = "cannot list directory '%s': %w"
	// warningListSkippedFormat reports a nested directory whose listing is skipped.
	warningListSkippedFormat = "Warning: skipping listing of %s: %v"
	// warningReadFailedFormat reports a file that could not be read.
	warningReadFailedFormat = "Warning: cannot read %s: %v"
	// warningNotTextFormat reports a file whose bytes do not decode as text.
	warningNotTextFormat = "Warning: %s is not decodable as text"
	// warningCycleFormat reports a directory already listed through another path.
	warningCycleFormat = "Warning: %s was already visited, skipping its listing"
)

// Walker lists directory entries below Root depth-first in listing order,
// classifying each one. Warn receives human-readable messages for per-entry
// failures; the overall walk continues past them.
type Walker struct {
	Root        string
	IgnoreNames []string
	Warn        func(string)

	visitedDirectories map[string]struct{}
}

// NewWalker constructs a Walker for an absolute root directory.
func NewWalker(rootDirectory string, ignoreNames []string, warn func(string)) *Walker {
	if warn == nil {
		warn = func(string) {}
	}
	return &Walker{
		Root:               rootDirectory,
		IgnoreNames:        ignoreNames,
		Warn:               warn,
		visitedDirectories: make(map[string]struct{}),
	}
}

// Walk lists the directory at relativeSubpath below the root and returns the
// classified entries of the whole subtree in depth-first pre-order. A listing
// failure on the target itself is fatal; failures on nested entries are
// reported through Warn and skip only the affected entry or branch.
func (walker *Walker) Walk(relativeSubpath string) ([]types.Entry, error) {
	targetDirectory := walker.absolutePath(relativeSubpath)
	children, listError := os.ReadDir(targetDirectory)
	if listError != nil {
		return nil, fmt.Errorf(errorListTargetFormat, targetDirectory, listError)
	}
	walker.markVisited(targetDirectory)
	return walker.walkChildren(relativeSubpath, children), nil
}

// walkChildren classifies the listed children of one directory. Each recursive
// call returns its own ordered slice; the caller concatenates them, so the
// only accumulating state is the visited-directory set guarding against
// symlink cycles.
func (walker *Walker) walkChildren(relativeParent string, children []os.DirEntry) []types.Entry {
	var entries []types.Entry
	for _, child := range children {
		childRelativePath := utils.JoinRelative(relativeParent, child.Name())
		childAbsolutePath := walker.absolutePath(childRelativePath)

		if utils.ContainsString(walker.IgnoreNames, child.Name()) {
			entries = append(entries, types.Entry{Path: childRelativePath, Kind: types.EntryKindIgnored})
			continue
		}

		childInfo, statError := os.Stat(childAbsolutePath)
		if statError != nil {
			walker.Warn(fmt.Sprintf(warningReadFailedFormat, childRelativePath, statError))
			entries = append(entries, types.Entry{Path: childRelativePath, Kind: types.EntryKindUnreadable})
			continue
		}

		if childInfo.IsDir() {
			entries = append(entries, types.Entry{Path: childRelativePath, Kind: types.EntryKindDirectory})
			if walker.wasVisited(childAbsolutePath) {
				walker.Warn(fmt.Sprintf(warningCycleFormat, childRelativePath))
				continue
			}
			grandChildren, listError := os.ReadDir(childAbsolutePath)
			if listError != nil {
				walker.Warn(fmt.Sprintf(warningListSkippedFormat, childRelativePath, listError))
				continue
			}
			walker.markVisited(childAbsolutePath)
			entries = append(entries, walker.walkChildren(childRelativePath, grandChildren)...)
			continue
		}

		entries = append(entries, walker.ClassifyFile(childRelativePath))
	}
	return entries
}

// ClassifyFile reads the file at relativePath below the root and classifies it
// as file, binary, or unreadable. Content is retained only for readable text.
func (walker *Walker) ClassifyFile(relativePath string) types.Entry {
	absolutePath := walker.absolutePath(relativePath)
	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		walker.Warn(fmt.Sprintf(warningReadFailedFormat, relativePath, readError))
		return types.Entry{Path: relativePath, Kind: types.EntryKindUnreadable}
	}
	if !utils.IsDecodableText(fileBytes) {
		walker.Warn(fmt.Sprintf(warningNotTextFormat, relativePath))
		return types.Entry{Path: relativePath, Kind: types.EntryKindUnreadable}
	}
	content := string(fileBytes)
	if utils.IsBinaryText(content) {
		return types.Entry{Path: relativePath, Kind: types.EntryKindBinary}
	}
	return types.Entry{Path: relativePath, Content: content, Kind: types.EntryKindFile}
}

// absolutePath joins a slash-separated relative path onto the root.
func (walker *Walker) absolutePath(relativePath string) string {
	if relativePath == "" {
		return walker.Root
	}
	return filepath.Join(walker.Root, filepath.FromSlash(relativePath))
}

// wasVisited reports whether the directory was already listed, resolving
// symlinks so that a cycle reached through a link is recognized.
func (walker *Walker) wasVisited(absolutePath string) bool {
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		resolvedPath = absolutePath
	}
	_, visited := walker.visitedDirectories[resolvedPath]
	return visited
}

func (walker *Walker) markVisited(absolutePath string) {
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		resolvedPath = absolutePath
	}
	walker.visitedDirectories[resolvedPath] = struct{}{}
}
