package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

// GoParser implements domain.SyntaxParser using go/ast. Directive comments
// attached to declarations (//go:noinline, //nolint, //export, ...) are
// reported as decorations.
type GoParser struct{}

func NewGoParser() *GoParser {
	return &GoParser{}
}

func (p *GoParser) Parse(filePath string, src []byte) ([]domain.SyntaxNode, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, filePath, src, goparser.ParseComments|goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %w", filePath, domain.ErrSyntax, err)
	}

	var nodes []domain.SyntaxNode
	line := func(pos token.Pos) int { return fset.Position(pos).Line }

	for _, decl := range file.Decls {
		ast.Inspect(decl, func(n ast.Node) bool {
			switch d := n.(type) {
			case *ast.FuncDecl:
				nodes = append(nodes, domain.SyntaxNode{Kind: domain.NodeDeclaration, Name: funcName(d), Line: line(d.Pos())})
				nodes = append(nodes, directives(d.Doc, line)...)
			case *ast.GenDecl:
				nodes = append(nodes, directives(d.Doc, line)...)
				// Package-level vars and consts count as declarations; locals do not.
				if d == decl && d.Tok != token.TYPE {
					nodes = append(nodes, valueSpecs(d, line)...)
				}
			case *ast.TypeSpec:
				// Types are collected at any depth, including inside function bodies.
				l := line(d.Pos())
				nodes = append(nodes,
					domain.SyntaxNode{Kind: domain.NodeDeclaration, Name: d.Name.Name, Line: l},
					domain.SyntaxNode{Kind: domain.NodeTypeDecl, Name: d.Name.Name, Line: l},
				)
				nodes = append(nodes, directives(d.Doc, line)...)
			}
			return true
		})
	}
	return nodes, nil
}

// valueSpecs reports the names of a var or const declaration and the
// directives attached to each spec, such as //go:embed.
func valueSpecs(d *ast.GenDecl, line func(token.Pos) int) []domain.SyntaxNode {
	var out []domain.SyntaxNode
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			out = append(out, domain.SyntaxNode{Kind: domain.NodeDeclaration, Name: name.Name, Line: line(name.Pos())})
		}
		out = append(out, directives(vs.Doc, line)...)
	}
	return out
}

// directives returns the decorations found in a doc comment group.
func directives(doc *ast.CommentGroup, line func(token.Pos) int) []domain.SyntaxNode {
	if doc == nil {
		return nil
	}
	var out []domain.SyntaxNode
	for _, c := range doc.List {
		if name := directiveName(c.Text); name != "" {
			out = append(out, domain.SyntaxNode{Kind: domain.NodeDecoration, Name: name, Line: line(c.Pos())})
		}
	}
	return out
}

// directiveName returns "go:noinline" for "//go:noinline", "nolint" for
// "//nolint:errcheck" and so on, or "" when text is not a directive.
func directiveName(text string) string {
	body, ok := strings.CutPrefix(text, "//")
	if !ok || body == "" || body[0] == ' ' {
		return ""
	}
	word, _, _ := strings.Cut(body, " ")
	switch {
	case strings.HasPrefix(word, "go:"), strings.HasPrefix(word, "lint:"):
		return word
	case word == "nolint" || strings.HasPrefix(word, "nolint:"):
		return "nolint"
	case word == "export":
		return "export"
	}
	return ""
}

func funcName(d *ast.FuncDecl) string {
	if d.Recv != nil && len(d.Recv.List) > 0 {
		if recv := receiverType(d.Recv.List[0].Type); recv != "" {
			return recv + "." + d.Name.Name
		}
	}
	return d.Name.Name
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}
