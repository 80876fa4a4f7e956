package output

import (
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
	isFile   bool
}

// BuildTree renders the slash-separated paths as an indented directory
// tree, directories first at each level.
func BuildTree(paths []string) string {
	root := &treeNode{children: make(map[string]*treeNode)}

	for _, path := range paths {
		parts := strings.Split(path, "/")
		node := root
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: make(map[string]*treeNode)}
				node.children[part] = child
			}
			if i == len(parts)-1 {
				child.isFile = true
			}
			node = child
		}
	}

	var b strings.Builder
	writeTree(&b, root, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, node *treeNode, depth int) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, z := node.children[names[i]], node.children[names[j]]
		if a.isFile != z.isFile {
			return !a.isFile
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		child := node.children[name]
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(name)
		if !child.isFile {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
		writeTree(b, child, depth+1)
	}
}
