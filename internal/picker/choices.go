// Package picker presents the scanned tree for interactive multi-selection.
package picker

import (
	"strings"

	"github.com/temirov/grab/internal/types"
)

const indentUnit = "  "

// ProjectChoices flattens the node hierarchy into the ordered choice list
// shown by the picker. Directories become non-selectable section headings;
// files are selectable unless they were classified ignored, binary, or
// unreadable. Labels carry the listing icon, indentation by depth, and the
// status suffix of the entry's classification.
func ProjectChoices(nodes []*types.Node) []types.Choice {
	var choices []types.Choice
	appendNodeChoices(nodes, 0, &choices)
	return choices
}

func appendNodeChoices(nodes []*types.Node, depth int, choices *[]types.Choice) {
	for _, node := range nodes {
		*choices = append(*choices, types.Choice{
			Path:       node.Path,
			Label:      choiceLabel(node, depth),
			Selectable: isSelectable(node),
		})
		if node.IsDirectory() {
			appendNodeChoices(node.Children, depth+1, choices)
		}
	}
}

func choiceLabel(node *types.Node, depth int) string {
	icon := types.IconFile
	if node.IsDirectory() || node.DisplayKind == types.EntryKindIgnored {
		icon = types.IconDirectory
	}
	var label strings.Builder
	label.WriteString(strings.Repeat(indentUnit, depth))
	label.WriteString(icon)
	label.WriteString(" ")
	label.WriteString(node.Name)
	label.WriteString(node.DisplayKind.StatusSuffix())
	return label.String()
}

func isSelectable(node *types.Node) bool {
	if node.IsDirectory() {
		return false
	}
	return node.DisplayKind == types.EntryKindFile
}
