package ast

import "lifeline/internal/source"

// Block is { stmts; tail }. Each block is a lexical extent.
type Block struct {
	NodeBase
	Stmts []Stmt
	Tail  Expr
}

type Stmt interface {
	Node
	stmtNode()
}

type LetStmt struct {
	NodeBase
	Pat  *Pat
	Ty   Type
	Init Expr
}

type ItemStmt struct {
	Item Item
}

func (s *ItemStmt) NodeID() NodeID   { return s.Item.NodeID() }
func (s *ItemStmt) Loc() source.Span { return s.Item.Loc() }

type ExprStmt struct {
	NodeBase
	X    Expr
	Semi bool
}

func (*LetStmt) stmtNode()  {}
func (*ItemStmt) stmtNode() {}
func (*ExprStmt) stmtNode() {}

type PatKind uint8

const (
	PatIdent PatKind = iota
	PatWild
	PatTuple
)

type Pat struct {
	NodeBase
	Kind  PatKind
	Mut   bool
	Name  source.StringID
	Elems []*Pat
}
