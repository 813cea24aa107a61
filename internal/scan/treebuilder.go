package scan

import (
	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

// BuildNodes converts the flat entry list into a hierarchy of nodes. Roots are
// ordered by first appearance; missing ancestors are inserted as directory
// placeholders in encounter order. A path seen first as an intermediate
// directory and again as a leaf keeps the later, more specific classification.
func BuildNodes(entries []types.Entry) []*types.Node {
	var roots []*types.Node
	nodesByPath := make(map[string]*types.Node)

	insert := func(path, name string, parent *types.Node) *types.Node {
		node := &types.Node{
			Name:        name,
			Path:        path,
			Kind:        types.EntryKindDirectory,
			DisplayKind: types.EntryKindDirectory,
		}
		nodesByPath[path] = node
		if parent == nil {
			roots = append(roots, node)
		} else {
			parent.Children = append(parent.Children, node)
		}
		return node
	}

	for _, entry := range entries {
		segments := utils.SplitPathSegments(entry.Path)
		var parent *types.Node
		currentPath := ""
		for _, segment := range segments {
			currentPath = utils.JoinRelative(currentPath, segment)
			node, exists := nodesByPath[currentPath]
			if !exists {
				node = insert(currentPath, segment, parent)
			}
			parent = node
		}

		leaf := nodesByPath[entry.Path]
		leaf.DisplayKind = entry.Kind
		if entry.Kind == types.EntryKindDirectory {
			leaf.Kind = types.EntryKindDirectory
		} else {
			leaf.Kind = types.EntryKindFile
			leaf.Children = nil
		}
	}

	return roots
}
