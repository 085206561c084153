package ast

type Type interface {
	Node
	typeNode()
}

type PathType struct {
	NodeBase
	Path *Path
}

// RefType is &'a mut T; Lifetime is nil when elided.
type RefType struct {
	NodeBase
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
}

type PtrType struct {
	NodeBase
	Mut  bool
	Elem Type
}

type SliceType struct {
	NodeBase
	Elem Type
}

type ArrayType struct {
	NodeBase
	Elem Type
	Len  Expr
}

type TupleType struct {
	NodeBase
	Elems []Type
}

// ObjectSumType is a type followed by extra bounds: Trait + Send + 'a.
type ObjectSumType struct {
	NodeBase
	Base   Type
	Bounds []Bound
}

// InferType is _.
type InferType struct {
	NodeBase
}

// BareFnType is for<'a> fn(A) -> R.
type BareFnType struct {
	NodeBase
	Lifetimes []*LifetimeDef
	Decl      *FnDecl
}

// ClosureType is for<'a> |A, B|: Bounds -> R.
type ClosureType struct {
	NodeBase
	Lifetimes []*LifetimeDef
	Bounds    []Bound
	Decl      *FnDecl
}

func (*PathType) typeNode()      {}
func (*RefType) typeNode()       {}
func (*PtrType) typeNode()       {}
func (*SliceType) typeNode()     {}
func (*ArrayType) typeNode()     {}
func (*TupleType) typeNode()     {}
func (*ObjectSumType) typeNode() {}
func (*InferType) typeNode()     {}
func (*BareFnType) typeNode()    {}
func (*ClosureType) typeNode()   {}
