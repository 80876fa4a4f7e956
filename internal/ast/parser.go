// Package ast wraps tree-sitter behind a parser-independent node view.
package ast

import (
	"context"
	"errors"
)

// ErrParserUnavailable is returned when no grammar exists for a language
// (or the binary was built without cgo). Callers degrade to heuristics.
var ErrParserUnavailable = errors.New("structural parser unavailable")

// Node is a parser-independent view of a syntax tree node.
// Line numbers are 0-based. Children include anonymous tokens, so
// operator tokens like "&&" appear with their literal text as Type.
type Node struct {
	Type      string
	Name      string // symbol name when the grammar exposes one
	StartLine int
	EndLine   int
	StartByte int
	EndByte   int
	Children  []*Node
}

// Walk visits n and its subtree in pre-order. The visitor returns
// false to skip a node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// Parser produces syntax trees for supported languages.
type Parser interface {
	// Parse returns the root node for content in the given language.
	// Returns ErrParserUnavailable when no grammar is registered.
	Parse(ctx context.Context, content []byte, language string) (*Node, error)

	// SupportsLanguage reports whether a grammar is available.
	SupportsLanguage(language string) bool

	// Close releases parser resources. The parser must not be used after.
	Close() error
}
