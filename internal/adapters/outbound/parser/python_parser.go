package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/patternscan/patternscan/internal/domain"
)

// PythonParser implements domain.SyntaxParser with the tree-sitter Python
// grammar. A tree containing ERROR nodes is treated as a syntax error.
type PythonParser struct {
	lang *sitter.Language
}

func NewPythonParser() *PythonParser {
	return &PythonParser{lang: python.GetLanguage()}
}

func (p *PythonParser) Parse(filePath string, src []byte) ([]domain.SyntaxNode, error) {
	// sitter.Parser is not safe for concurrent use; one per call.
	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("parsing %s: %w", filePath, domain.ErrSyntax)
	}

	var nodes []domain.SyntaxNode
	walk(root, func(n *sitter.Node) {
		line := int(n.StartPoint().Row) + 1
		switch n.Type() {
		case "function_definition":
			nodes = append(nodes, domain.SyntaxNode{Kind: domain.NodeDeclaration, Name: fieldContent(n, "name", src), Line: line})
		case "class_definition":
			name := fieldContent(n, "name", src)
			nodes = append(nodes,
				domain.SyntaxNode{Kind: domain.NodeDeclaration, Name: name, Line: line},
				domain.SyntaxNode{Kind: domain.NodeTypeDecl, Name: name, Line: line},
			)
		case "decorator":
			if name := decoratorName(n, src); name != "" {
				nodes = append(nodes, domain.SyntaxNode{Kind: domain.NodeDecoration, Name: name, Line: line})
			}
		}
	})
	return nodes, nil
}

// decoratorName returns the dotted callee of a decorator: "app.route" for
// both @app.route and @app.route("/").
func decoratorName(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		expr := n.NamedChild(i)
		switch expr.Type() {
		case "call":
			if fn := expr.ChildByFieldName("function"); fn != nil {
				return fn.Content(src)
			}
		case "comment":
			continue
		default:
			return expr.Content(src)
		}
	}
	return ""
}

func fieldContent(n *sitter.Node, field string, src []byte) string {
	if c := n.ChildByFieldName(field); c != nil {
		return c.Content(src)
	}
	return ""
}

// walk visits n and its descendants in document order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			walk(c, visit)
		}
	}
}
