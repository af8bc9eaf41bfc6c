package domain

// NodeKind enumerates the syntax-tree facts the structural augmenter uses.
type NodeKind int

const (
	// NodeDeclaration is any function, method, or class/type declaration.
	NodeDeclaration NodeKind = iota
	// NodeDecoration is an annotation attached to a declaration: a Python
	// decorator or a Go directive comment.
	NodeDecoration
	// NodeTypeDecl is a type or class declaration whose name may carry an
	// architectural role.
	NodeTypeDecl
)

func (k NodeKind) String() string {
	switch k {
	case NodeDeclaration:
		return "declaration"
	case NodeDecoration:
		return "decoration"
	case NodeTypeDecl:
		return "type-declaration"
	default:
		return "unknown"
	}
}

// SyntaxNode is one fact extracted from a parsed file.
type SyntaxNode struct {
	Kind NodeKind
	Name string
	Line int
}
