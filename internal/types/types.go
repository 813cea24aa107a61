// Package types defines every cross‑package data structure used by the grab CLI.
package types

// EntryKind classifies a filesystem item discovered during traversal.
type EntryKind string

const (
	// EntryKindFile marks a readable text file whose content is retained.
	EntryKindFile EntryKind = "file"
	// EntryKindDirectory marks a traversed directory.
	EntryKindDirectory EntryKind = "directory"
	// EntryKindIgnored marks an item excluded by the ignore set; it is never descended into.
	EntryKindIgnored EntryKind = "ignored"
	// EntryKindBinary marks a file whose content failed the text heuristic; content is discarded.
	EntryKindBinary EntryKind = "binary"
	// EntryKindUnreadable marks a file that could not be read as text.
	EntryKindUnreadable EntryKind = "unreadable"
)

const (
	// IconDirectory marks directories in listings.
	IconDirectory = "📁"
	// IconFile marks non-directories in listings.
	IconFile = "📄"
)

// StatusSuffix returns the parenthesized status appended to listing lines for
// entries that carry no content.
func (kind EntryKind) StatusSuffix() string {
	switch kind {
	case EntryKindIgnored:
		return " (ignored)"
	case EntryKindBinary:
		return " (binary)"
	case EntryKindUnreadable:
		return " (unreadable)"
	default:
		return ""
	}
}

// Entry is one filesystem item discovered during traversal. Paths are
// slash-separated and relative to the scan root. Content is populated only
// for EntryKindFile.
type Entry struct {
	Path    string
	Content string
	Kind    EntryKind
	Tokens  int
}

// IsSelectable reports whether the entry may appear in a selection's content section.
func (entry Entry) IsSelectable() bool {
	return entry.Kind == EntryKindFile
}

// Depth returns the number of path segments above the entry's own name.
func (entry Entry) Depth() int {
	depth := 0
	for _, character := range entry.Path {
		if character == '/' {
			depth++
		}
	}
	return depth
}

// Node is a tree element built from the flat Entry list. Children is nil for
// every node that is not a directory, keeping a file node with children
// unrepresentable in practice.
type Node struct {
	Name        string
	Path        string
	Kind        EntryKind
	DisplayKind EntryKind
	Children    []*Node
}

// IsDirectory reports whether the node carries children.
func (node *Node) IsDirectory() bool {
	return node.Kind == EntryKindDirectory
}

// Choice is the ephemeral projection of a Node presented to the interactive
// picker. Directories become non-selectable headings.
type Choice struct {
	Path       string
	Label      string
	Selectable bool
}
