package ast

import (
	"lifeline/internal/source"
	"lifeline/internal/token"
)

type Expr interface {
	Node
	exprNode()
}

type LitExpr struct {
	NodeBase
	Kind token.Kind
	Text string
}

// PathExpr is a value path, possibly with a turbofish on any segment: f::<'a, T>.
type PathExpr struct {
	NodeBase
	Path *Path
}

type CallExpr struct {
	NodeBase
	Fn   Expr
	Args []Expr
}

type MethodCallExpr struct {
	NodeBase
	Recv      Expr
	Name      source.StringID
	Turbofish *GenericArgs
	Args      []Expr
}

type FieldExpr struct {
	NodeBase
	X    Expr
	Name source.StringID
}

type UnaryExpr struct {
	NodeBase
	Op token.Kind
	X  Expr
}

// RefExpr is &x or &mut x.
type RefExpr struct {
	NodeBase
	Mut bool
	X   Expr
}

type BinaryExpr struct {
	NodeBase
	Op   token.Kind
	L, R Expr
}

type CastExpr struct {
	NodeBase
	X  Expr
	Ty Type
}

type TupleExpr struct {
	NodeBase
	Elems []Expr
}

type ReturnExpr struct {
	NodeBase
	X Expr
}

// ClosureExpr is |x: T| -> R body.
type ClosureExpr struct {
	NodeBase
	Params []*Param
	Output Type
	Body   Expr
}

func (*LitExpr) exprNode()        {}
func (*PathExpr) exprNode()       {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*FieldExpr) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*RefExpr) exprNode()        {}
func (*BinaryExpr) exprNode()     {}
func (*CastExpr) exprNode()       {}
func (*TupleExpr) exprNode()      {}
func (*ReturnExpr) exprNode()     {}
func (*ClosureExpr) exprNode()    {}
func (*Block) exprNode()          {}
