package scan_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/grab/internal/scan"
	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

// TestSelectAllFiles verifies only readable text files enter the selection.
func TestSelectAllFiles(testingInstance *testing.T) {
	entries := []types.Entry{
		{Path: "a.txt", Kind: types.EntryKindFile},
		{Path: "b.bin", Kind: types.EntryKindBinary},
		{Path: "node_modules", Kind: types.EntryKindIgnored},
		{Path: "raw.dat", Kind: types.EntryKindUnreadable},
		{Path: "src", Kind: types.EntryKindDirectory},
		{Path: "src/main.go", Kind: types.EntryKindFile},
	}

	selection := scan.SelectAllFiles(entries)

	expectedPaths := []string{"a.txt", "src/main.go"}
	if len(selection) != len(expectedPaths) {
		testingInstance.Fatalf("expected %d selected entries, got %d", len(expectedPaths), len(selection))
	}
	for position, expectedPath := range expectedPaths {
		if selection[position].Path != expectedPath {
			testingInstance.Errorf("expected %s at position %d, got %s", expectedPath, position, selection[position].Path)
		}
	}
}

// TestFilterByPathsPreservesTraversalOrder verifies chosen paths filter in walk order.
func TestFilterByPathsPreservesTraversalOrder(testingInstance *testing.T) {
	entries := []types.Entry{
		{Path: "first.txt", Kind: types.EntryKindFile},
		{Path: "second.txt", Kind: types.EntryKindFile},
		{Path: "third.txt", Kind: types.EntryKindFile},
	}

	selection := scan.FilterByPaths(entries, []string{"third.txt", "first.txt"})

	expectedPaths := []string{"first.txt", "third.txt"}
	if len(selection) != len(expectedPaths) {
		testingInstance.Fatalf("expected %d entries, got %d", len(expectedPaths), len(selection))
	}
	for position, expectedPath := range expectedPaths {
		if selection[position].Path != expectedPath {
			testingInstance.Errorf("expected %s at position %d, got %s", expectedPath, position, selection[position].Path)
		}
	}
}

// TestResolveExplicitSelectionFile verifies a file argument is read and classified.
func TestResolveExplicitSelectionFile(testingInstance *testing.T) {
	temporaryRoot := createScanFixture(testingInstance)
	walker := scan.NewWalker(temporaryRoot, utils.DefaultIgnoreNames(), nil)

	selection, selectionError := scan.ResolveExplicitSelection(walker, []string{"a.txt", "b.bin"})
	if selectionError != nil {
		testingInstance.Fatalf("explicit selection failed: %v", selectionError)
	}
	if len(selection.OutsideRootPaths) != 0 {
		testingInstance.Fatalf("unexpected outside-root paths: %v", selection.OutsideRootPaths)
	}
	if len(selection.Entries) != 2 {
		testingInstance.Fatalf("expected 2 entries, got %d", len(selection.Entries))
	}
	if selection.Entries[0].Kind != types.EntryKindFile || selection.Entries[0].Content != textFileContent {
		testingInstance.Errorf("unexpected text entry: %+v", selection.Entries[0])
	}
	if selection.Entries[1].Kind != types.EntryKindBinary || selection.Entries[1].Content != "" {
		testingInstance.Errorf("unexpected binary entry: %+v", selection.Entries[1])
	}
}

// TestResolveExplicitSelectionDirectory verifies a directory argument expands through the walker.
func TestResolveExplicitSelectionDirectory(testingInstance *testing.T) {
	temporaryRoot := createScanFixture(testingInstance)
	walker := scan.NewWalker(temporaryRoot, utils.DefaultIgnoreNames(), nil)

	selection, selectionError := scan.ResolveExplicitSelection(walker, []string{"src"})
	if selectionError != nil {
		testingInstance.Fatalf("explicit selection failed: %v", selectionError)
	}

	expectedPaths := []string{"src/main.go", "src/nested", "src/nested/util.go"}
	if len(selection.Entries) != len(expectedPaths) {
		testingInstance.Fatalf("expected entries %v, got %+v", expectedPaths, selection.Entries)
	}
	for position, expectedPath := range expectedPaths {
		if selection.Entries[position].Path != expectedPath {
			testingInstance.Errorf("expected %s at position %d, got %s", expectedPath, position, selection.Entries[position].Path)
		}
	}
}

// TestResolveExplicitSelectionOutsideRoot verifies escaping paths are rejected, not clamped.
func TestResolveExplicitSelectionOutsideRoot(testingInstance *testing.T) {
	temporaryRoot := createScanFixture(testingInstance)
	var warnings []string
	walker := scan.NewWalker(temporaryRoot, utils.DefaultIgnoreNames(), func(message string) {
		warnings = append(warnings, message)
	})

	selection, selectionError := scan.ResolveExplicitSelection(walker, []string{"../outside.txt"})
	if selectionError != nil {
		testingInstance.Fatalf("explicit selection failed: %v", selectionError)
	}
	if len(selection.OutsideRootPaths) != 1 {
		testingInstance.Fatalf("expected 1 outside-root path, got %v", selection.OutsideRootPaths)
	}
	if len(selection.Entries) != 1 || selection.Entries[0].Kind != types.EntryKindUnreadable {
		testingInstance.Fatalf("expected one unreadable entry, got %+v", selection.Entries)
	}
	if len(warnings) == 0 {
		testingInstance.Error("expected a reported warning for the escaping path")
	}
}

// TestResolveExplicitSelectionAbsoluteOutsideRoot verifies an absolute escaping
// path is rejected and displayed in its root-relative form.
func TestResolveExplicitSelectionAbsoluteOutsideRoot(testingInstance *testing.T) {
	parentDirectory := testingInstance.TempDir()
	temporaryRoot := filepath.Join(parentDirectory, "project")
	writeFixtureFile(testingInstance, temporaryRoot, "a.txt", []byte(textFileContent))
	walker := scan.NewWalker(temporaryRoot, utils.DefaultIgnoreNames(), nil)

	absoluteOutsidePath := filepath.Join(parentDirectory, "outside.txt")
	selection, selectionError := scan.ResolveExplicitSelection(walker, []string{absoluteOutsidePath})
	if selectionError != nil {
		testingInstance.Fatalf("explicit selection failed: %v", selectionError)
	}
	if len(selection.OutsideRootPaths) != 1 {
		testingInstance.Fatalf("expected 1 outside-root path, got %v", selection.OutsideRootPaths)
	}
	if len(selection.Entries) != 1 || selection.Entries[0].Kind != types.EntryKindUnreadable {
		testingInstance.Fatalf("expected one unreadable entry, got %+v", selection.Entries)
	}
	if selection.Entries[0].Path != "../outside.txt" {
		testingInstance.Errorf("expected the root-relative form ../outside.txt, got %s", selection.Entries[0].Path)
	}
}

// TestResolveExplicitSelectionMissingPath verifies an unresolvable argument is fatal.
func TestResolveExplicitSelectionMissingPath(testingInstance *testing.T) {
	temporaryRoot := createScanFixture(testingInstance)
	walker := scan.NewWalker(temporaryRoot, utils.DefaultIgnoreNames(), nil)

	_, selectionError := scan.ResolveExplicitSelection(walker, []string{"missing.txt"})
	if selectionError == nil {
		testingInstance.Fatal("expected an error for a missing explicit path")
	}
}
