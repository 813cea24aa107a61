// Package output renders scan results as a Markdown document and as a colored
// console listing.
package output

import (
	"strings"

	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

const (
	structureHeading = "# Repository Structure"
	contentHeading   = "# File Contents"
	contentFence     = "```"
	structureIndent  = "  "
	bulletPrefix     = "- "
	pathHeadingMark  = "## "
)

// RenderDocument serializes the scan as a single text document: a structure
// outline covering every entry in traversal order, a blank line, then one
// fenced content block per selected file entry. Selected entries that are not
// readable text files contribute no content block.
func RenderDocument(allEntries []types.Entry, selectedEntries []types.Entry) string {
	var document strings.Builder

	document.WriteString(structureHeading)
	document.WriteString("\n\n")
	for _, entry := range allEntries {
		document.WriteString(StructureLine(entry))
		document.WriteString("\n")
	}

	document.WriteString("\n")
	document.WriteString(contentHeading)
	document.WriteString("\n")
	for _, entry := range selectedEntries {
		if !entry.IsSelectable() {
			continue
		}
		document.WriteString("\n")
		document.WriteString(pathHeadingMark)
		document.WriteString(entry.Path)
		document.WriteString("\n")
		document.WriteString(contentFence)
		document.WriteString("\n")
		document.WriteString(entry.Content)
		if !strings.HasSuffix(entry.Content, "\n") {
			document.WriteString("\n")
		}
		document.WriteString(contentFence)
		document.WriteString("\n")
	}

	return document.String()
}

// StructureLine formats one outline line for an entry: indentation by path
// depth, a bullet, the listing icon, the entry's name, and a parenthesized
// status for entries that carry no content.
func StructureLine(entry types.Entry) string {
	segments := utils.SplitPathSegments(entry.Path)
	name := segments[len(segments)-1]

	icon := types.IconFile
	if entry.Kind == types.EntryKindDirectory || entry.Kind == types.EntryKindIgnored {
		icon = types.IconDirectory
	}

	var line strings.Builder
	line.WriteString(strings.Repeat(structureIndent, entry.Depth()))
	line.WriteString(bulletPrefix)
	line.WriteString(icon)
	line.WriteString(" ")
	line.WriteString(name)
	line.WriteString(entry.Kind.StatusSuffix())
	return line.String()
}
