// Package tree groups a flat discovery collection into a folder
// hierarchy for presentation. Pure structural grouping: the only
// invariant is that every node's path is a descendant of its parent's
// path.
package tree

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

// Node is a single node in the presentation tree. Item is nil for
// intermediate folders synthesized from path segments.
type Node struct {
	Path  string
	Name  string
	IsDir bool
	Item  *models.ConfigItem

	Parent   *Node
	Children []*Node
}

// Build assembles items into a hierarchy rooted at baseDir. Items whose
// paths are outside baseDir attach directly under the root. Folders that
// exist only as path segments between an item and the base get
// synthesized nodes.
func Build(items []models.ConfigItem, baseDir string) *Node {
	root := &Node{
		Path:  baseDir,
		Name:  filepath.Base(baseDir),
		IsDir: true,
	}
	index := map[string]*Node{baseDir: root}

	for i := range items {
		item := &items[i]
		rel, err := filepath.Rel(baseDir, item.Path)
		if err != nil || strings.HasPrefix(rel, "..") {
			attach(root, item, index)
			continue
		}

		parent := root
		segments := strings.Split(rel, string(filepath.Separator))
		for _, seg := range segments[:len(segments)-1] {
			dirPath := filepath.Join(parent.Path, seg)
			node, ok := index[dirPath]
			if !ok {
				node = &Node{Path: dirPath, Name: seg, IsDir: true, Parent: parent}
				parent.Children = append(parent.Children, node)
				index[dirPath] = node
			}
			parent = node
		}

		if existing, ok := index[item.Path]; ok {
			// A directory item discovered after being synthesized as an
			// intermediate segment: claim the node.
			existing.Item = item
			continue
		}
		node := &Node{
			Path:   item.Path,
			Name:   item.Name,
			IsDir:  item.IsDirectory,
			Item:   item,
			Parent: parent,
		}
		parent.Children = append(parent.Children, node)
		index[item.Path] = node
	}

	sortTree(root)
	return root
}

func attach(root *Node, item *models.ConfigItem, index map[string]*Node) {
	node := &Node{
		Path:   item.Path,
		Name:   item.Name,
		IsDir:  item.IsDirectory,
		Item:   item,
		Parent: root,
	}
	root.Children = append(root.Children, node)
	index[item.Path] = node
}

// sortTree orders children directories-first, then by name.
func sortTree(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, child := range n.Children {
		sortTree(child)
	}
}

// Walk visits every node depth-first, root included. depth is 0 at the
// root.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
