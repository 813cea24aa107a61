package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

const (
	// errorPathOutsideRootFormat reports an explicit path escaping the scan root.
	errorPathOutsideRootFormat = "path '%s' resolves outside the scan root"
	// errorExplicitPathStatFormat reports a failure resolving an explicit path argument.
	errorExplicitPathStatFormat = "cannot resolve path '%s': %w"
	// parentDirectoryPrefix identifies relative paths escaping upward.
	parentDirectoryPrefix = ".."
)

// ExplicitSelection is the outcome of resolving explicit path arguments.
// Entries holds the flat selection; OutsideRootPaths lists arguments that
// escaped the root and were recorded as unreadable instead of being read.
type ExplicitSelection struct {
	Entries          []types.Entry
	OutsideRootPaths []string
}

// SelectAllFiles returns every entry classified as a readable text file,
// preserving traversal order.
func SelectAllFiles(entries []types.Entry) []types.Entry {
	var selection []types.Entry
	for _, entry := range entries {
		if entry.IsSelectable() {
			selection = append(selection, entry)
		}
	}
	return selection
}

// FilterByPaths keeps the entries whose path is in chosenPaths, preserving the
// original traversal order rather than the selection order.
func FilterByPaths(entries []types.Entry, chosenPaths []string) []types.Entry {
	chosen := make(map[string]struct{}, len(chosenPaths))
	for _, path := range chosenPaths {
		chosen[path] = struct{}{}
	}
	var selection []types.Entry
	for _, entry := range entries {
		if _, isChosen := chosen[entry.Path]; isChosen {
			selection = append(selection, entry)
		}
	}
	return selection
}

// ResolveExplicitSelection resolves each explicit path argument against the
// walker's root. Directories are expanded through the walker with the ignore
// set still applied; files are read and classified the same way the walker
// classifies them. A path escaping the root is recorded as unreadable and
// reported through the walker's Warn sink; a path that cannot be resolved at
// all is fatal, matching the treatment of the scan root itself.
func ResolveExplicitSelection(walker *Walker, explicitPaths []string) (ExplicitSelection, error) {
	var selection ExplicitSelection
	for _, explicitPath := range explicitPaths {
		relativePath, insideRoot := constrainToRoot(walker.Root, explicitPath)
		if !insideRoot {
			displayPath := utils.RelativePathOrSelf(explicitPath, walker.Root)
			walker.Warn(fmt.Sprintf("Warning: "+errorPathOutsideRootFormat, displayPath))
			selection.Entries = append(selection.Entries, types.Entry{
				Path: displayPath,
				Kind: types.EntryKindUnreadable,
			})
			selection.OutsideRootPaths = append(selection.OutsideRootPaths, explicitPath)
			continue
		}

		absolutePath := filepath.Join(walker.Root, filepath.FromSlash(relativePath))
		pathInfo, statError := os.Stat(absolutePath)
		if statError != nil {
			return ExplicitSelection{}, fmt.Errorf(errorExplicitPathStatFormat, explicitPath, statError)
		}

		if pathInfo.IsDir() {
			subtreeEntries, walkError := walker.Walk(relativePath)
			if walkError != nil {
				return ExplicitSelection{}, walkError
			}
			selection.Entries = append(selection.Entries, subtreeEntries...)
			continue
		}

		selection.Entries = append(selection.Entries, walker.ClassifyFile(relativePath))
	}
	return selection, nil
}

// constrainToRoot resolves candidatePath against the root directory and
// reports whether the result stays inside it. The resolved location is
// returned as a slash-separated path relative to the root. Escapes are
// rejected, never clamped.
func constrainToRoot(rootDirectory, candidatePath string) (string, bool) {
	resolvedPath := candidatePath
	if !filepath.IsAbs(resolvedPath) {
		resolvedPath = filepath.Join(rootDirectory, filepath.FromSlash(candidatePath))
	}
	resolvedPath = filepath.Clean(resolvedPath)

	relativePath, relativeError := filepath.Rel(rootDirectory, resolvedPath)
	if relativeError != nil {
		return "", false
	}
	slashRelativePath := filepath.ToSlash(relativePath)
	if slashRelativePath == parentDirectoryPrefix || strings.HasPrefix(slashRelativePath, parentDirectoryPrefix+"/") {
		return "", false
	}
	if slashRelativePath == "." {
		return "", true
	}
	return slashRelativePath, true
}
