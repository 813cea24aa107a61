package output_test

import (
	"strings"
	"testing"

	"github.com/temirov/grab/internal/output"
	"github.com/temirov/grab/internal/types"
)

func fixtureEntries() []types.Entry {
	return []types.Entry{
		{Path: "a.txt", Kind: types.EntryKindFile, Content: "hello"},
		{Path: "b.bin", Kind: types.EntryKindBinary},
		{Path: "node_modules", Kind: types.EntryKindIgnored},
		{Path: "src", Kind: types.EntryKindDirectory},
		{Path: "src/main.go", Kind: types.EntryKindFile, Content: "package main\n"},
	}
}

// TestRenderDocumentSections verifies the structure and content sections of the document.
func TestRenderDocumentSections(testingInstance *testing.T) {
	entries := fixtureEntries()
	selection := []types.Entry{entries[0], entries[4]}

	document := output.RenderDocument(entries, selection)

	if !strings.HasPrefix(document, "# Repository Structure\n\n") {
		testingInstance.Error("document must open with the structure heading")
	}
	if !strings.Contains(document, "# File Contents\n") {
		testingInstance.Error("document must contain the content heading")
	}
	if !strings.Contains(document, "## a.txt\n```\nhello\n```\n") {
		testingInstance.Error("document must contain the fenced content of a.txt")
	}
	if !strings.Contains(document, "## src/main.go\n```\npackage main\n```\n") {
		testingInstance.Error("document must contain the fenced content of src/main.go")
	}
	if strings.Contains(document, "## b.bin") {
		testingInstance.Error("binary entries must not produce content blocks")
	}
	if !strings.Contains(document, "- 📄 b.bin (binary)") {
		testingInstance.Error("binary entries must appear in the structure outline with a status")
	}
	if !strings.Contains(document, "- 📁 node_modules (ignored)") {
		testingInstance.Error("ignored entries must appear in the structure outline with a status")
	}
}

// TestRenderDocumentEmptySelection verifies zero selected files still yield a full outline.
func TestRenderDocumentEmptySelection(testingInstance *testing.T) {
	entries := fixtureEntries()

	document := output.RenderDocument(entries, nil)

	if !strings.Contains(document, "- 📄 a.txt") {
		testingInstance.Error("structure outline must list unselected files")
	}
	if strings.Contains(document, "```") {
		testingInstance.Error("empty selection must produce no content blocks")
	}
}

// TestRenderDocumentSkipsNonFileSelection verifies selected non-file entries contribute no content.
func TestRenderDocumentSkipsNonFileSelection(testingInstance *testing.T) {
	entries := fixtureEntries()
	selection := []types.Entry{entries[1], entries[2]}

	document := output.RenderDocument(entries, selection)

	if strings.Contains(document, "```") {
		testingInstance.Error("binary and ignored selections must produce no content blocks")
	}
}

// TestRenderDocumentIsDeterministic verifies repeated rendering is byte-identical.
func TestRenderDocumentIsDeterministic(testingInstance *testing.T) {
	entries := fixtureEntries()
	selection := []types.Entry{entries[0]}

	firstDocument := output.RenderDocument(entries, selection)
	secondDocument := output.RenderDocument(entries, selection)

	if firstDocument != secondDocument {
		testingInstance.Error("rendering the same scan twice must produce identical output")
	}
}

// TestStructureLine verifies indentation, icons, and status suffixes.
func TestStructureLine(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		entry    types.Entry
		expected string
	}{
		{
			testName: "top level file",
			entry:    types.Entry{Path: "a.txt", Kind: types.EntryKindFile},
			expected: "- 📄 a.txt",
		},
		{
			testName: "nested file indented by depth",
			entry:    types.Entry{Path: "src/nested/util.go", Kind: types.EntryKindFile},
			expected: "    - 📄 util.go",
		},
		{
			testName: "directory",
			entry:    types.Entry{Path: "src", Kind: types.EntryKindDirectory},
			expected: "- 📁 src",
		},
		{
			testName: "unreadable file",
			entry:    types.Entry{Path: "raw.dat", Kind: types.EntryKindUnreadable},
			expected: "- 📄 raw.dat (unreadable)",
		},
		{
			testName: "ignored directory",
			entry:    types.Entry{Path: "node_modules", Kind: types.EntryKindIgnored},
			expected: "- 📁 node_modules (ignored)",
		},
	}
	for index, testCase := range testCases {
		actual := output.StructureLine(testCase.entry)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %q, got %q", index, testCase.testName, testCase.expected, actual)
		}
	}
}
