//go:build cgo

package ast

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	tsc "github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/repopack/repopack/internal/lang"
)

type treeSitterParser struct {
	mu      sync.Mutex
	parsers map[string]*sitter.Parser
	closed  bool
}

// NewParser creates a tree-sitter backed parser.
func NewParser() Parser {
	return &treeSitterParser{
		parsers: make(map[string]*sitter.Parser),
	}
}

func grammarFor(language string) *sitter.Language {
	switch language {
	case lang.Go:
		return golang.GetLanguage()
	case lang.Python:
		return python.GetLanguage()
	case lang.TypeScript:
		return typescript.GetLanguage()
	case lang.JavaScript:
		return javascript.GetLanguage()
	case lang.Java:
		return java.GetLanguage()
	case lang.Rust:
		return rust.GetLanguage()
	case lang.C:
		return tsc.GetLanguage()
	case lang.CPP:
		return cpp.GetLanguage()
	case lang.CSharp:
		return csharp.GetLanguage()
	case lang.PHP:
		return php.GetLanguage()
	case lang.Ruby:
		return ruby.GetLanguage()
	case lang.Swift:
		return swift.GetLanguage()
	case lang.Kotlin:
		return kotlin.GetLanguage()
	default:
		// Dart has no grammar in the binding; heuristics cover it.
		return nil
	}
}

func (p *treeSitterParser) getParser(language string) *sitter.Parser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	if parser, ok := p.parsers[language]; ok {
		return parser
	}

	grammar := grammarFor(language)
	if grammar == nil {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	p.parsers[language] = parser
	return parser
}

func (p *treeSitterParser) Parse(ctx context.Context, content []byte, language string) (*Node, error) {
	parser := p.getParser(language)
	if parser == nil {
		return nil, ErrParserUnavailable
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", language, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no root node", language)
	}

	return convertNode(root, content), nil
}

func convertNode(n *sitter.Node, content []byte) *Node {
	node := &Node{
		Type:      n.Type(),
		Name:      nodeName(n, content, 0),
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
		StartLine: int(n.StartPoint().Row),
		EndLine:   int(n.EndPoint().Row),
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil {
			node.Children = append(node.Children, convertNode(child, content))
		}
	}
	return node
}

// nodeName extracts a declaration name where the grammar exposes one.
// C-family grammars nest the identifier inside declarator chains.
func nodeName(n *sitter.Node, content []byte, depth int) string {
	if depth > 4 {
		return ""
	}

	if id := n.ChildByFieldName("name"); id != nil {
		return id.Content(content)
	}
	if decl := n.ChildByFieldName("declarator"); decl != nil {
		if decl.Type() == "identifier" || decl.Type() == "field_identifier" {
			return decl.Content(content)
		}
		return nodeName(decl, content, depth+1)
	}
	return ""
}

func (p *treeSitterParser) SupportsLanguage(language string) bool {
	return grammarFor(language) != nil
}

// Close drops all parser handles. Native memory is reclaimed once the
// handles are unreferenced; trees are closed eagerly after conversion.
func (p *treeSitterParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parsers = make(map[string]*sitter.Parser)
	p.closed = true
	return nil
}
