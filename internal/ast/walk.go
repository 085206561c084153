package ast

// Inspect traverses the tree rooted at n in source order, calling f for every
// node that carries an identity. When f returns false the children of that
// node are skipped.
func Inspect(n Node, f func(Node) bool) {
	in := inspector(f)
	in.node(n)
}

type inspector func(Node) bool

func (in inspector) node(n Node) {
	if n == nil || !in(n) {
		return
	}
	switch n := n.(type) {
	case *File:
		for _, it := range n.Items {
			in.node(it)
		}

	case *Lifetime:

	case *TyParam:
		in.bounds(n.Bounds)
		in.ty(n.Default)
	case *TraitBound:
		in.lifetimeDefs(n.BoundLifetimes)
		in.path(n.Path)
	case *RegionBound:
		in.lifetime(n.Lifetime)
	case *WhereBoundPredicate:
		in.ty(n.Bounded)
		in.bounds(n.Bounds)
	case *WhereEqPredicate:
		in.path(n.Path)
		in.ty(n.Ty)
	case *Path:
		for _, seg := range n.Segments {
			in.genericArgs(seg.Args)
		}
	case *TypeBinding:
		in.ty(n.Ty)

	case *PathType:
		in.path(n.Path)
	case *RefType:
		in.lifetime(n.Lifetime)
		in.ty(n.Elem)
	case *PtrType:
		in.ty(n.Elem)
	case *SliceType:
		in.ty(n.Elem)
	case *ArrayType:
		in.ty(n.Elem)
		in.expr(n.Len)
	case *TupleType:
		for _, t := range n.Elems {
			in.ty(t)
		}
	case *ObjectSumType:
		in.ty(n.Base)
		in.bounds(n.Bounds)
	case *InferType:
	case *BareFnType:
		in.lifetimeDefs(n.Lifetimes)
		in.fnDecl(n.Decl)
	case *ClosureType:
		in.lifetimeDefs(n.Lifetimes)
		in.bounds(n.Bounds)
		in.fnDecl(n.Decl)

	case *Param:
		in.pat(n.Pat)
		in.ty(n.Ty)
	case *SelfParam:
		in.lifetime(n.Lifetime)
		in.ty(n.Ty)

	case *FnItem:
		in.generics(n.Generics)
		in.fnDecl(n.Decl)
		in.block(n.Body)
	case *StructItem:
		in.generics(n.Generics)
		for _, f := range n.Fields {
			in.node(f)
		}
	case *Field:
		in.ty(n.Ty)
	case *EnumItem:
		in.generics(n.Generics)
		for _, v := range n.Variants {
			in.node(v)
		}
	case *Variant:
		for _, f := range n.Fields {
			in.node(f)
		}
	case *TypeAliasItem:
		in.generics(n.Generics)
		in.ty(n.Ty)
	case *TraitItem:
		in.generics(n.Generics)
		in.bounds(n.Supertraits)
		for _, m := range n.Members {
			in.node(m)
		}
	case *Method:
		in.generics(n.Generics)
		if n.Self != nil {
			in.node(n.Self)
		}
		in.fnDecl(n.Decl)
		in.block(n.Body)
	case *AssocType:
		in.bounds(n.Bounds)
	case *ImplItem:
		in.generics(n.Generics)
		if n.Trait != nil {
			in.node(n.Trait)
		}
		in.ty(n.SelfTy)
		for _, m := range n.Members {
			in.node(m)
		}
	case *AssocTypeDef:
		in.ty(n.Ty)
	case *ModItem:
		for _, it := range n.Items {
			in.node(it)
		}
	case *MacroItem:
	case *ForeignModItem:
		for _, it := range n.Items {
			in.node(it)
		}
	case *ForeignFn:
		in.generics(n.Generics)
		in.fnDecl(n.Decl)
	case *ForeignStatic:
		in.ty(n.Ty)
	case *StaticItem:
		in.ty(n.Ty)
		in.expr(n.Value)
	case *ConstItem:
		in.ty(n.Ty)
		in.expr(n.Value)

	case *Block:
		for _, s := range n.Stmts {
			in.node(s)
		}
		in.expr(n.Tail)
	case *LetStmt:
		in.pat(n.Pat)
		in.ty(n.Ty)
		in.expr(n.Init)
	case *ItemStmt:
		in.node(n.Item)
	case *ExprStmt:
		in.expr(n.X)
	case *Pat:
		for _, p := range n.Elems {
			in.pat(p)
		}

	case *LitExpr:
	case *PathExpr:
		in.path(n.Path)
	case *CallExpr:
		in.expr(n.Fn)
		in.exprs(n.Args)
	case *MethodCallExpr:
		in.expr(n.Recv)
		in.genericArgs(n.Turbofish)
		in.exprs(n.Args)
	case *FieldExpr:
		in.expr(n.X)
	case *UnaryExpr:
		in.expr(n.X)
	case *RefExpr:
		in.expr(n.X)
	case *BinaryExpr:
		in.expr(n.L)
		in.expr(n.R)
	case *CastExpr:
		in.expr(n.X)
		in.ty(n.Ty)
	case *TupleExpr:
		in.exprs(n.Elems)
	case *ReturnExpr:
		in.expr(n.X)
	case *ClosureExpr:
		for _, p := range n.Params {
			in.node(p)
		}
		in.ty(n.Output)
		in.expr(n.Body)
	}
}

// Typed nil pointers must not reach in.node as non-nil interfaces.

func (in inspector) lifetime(l *Lifetime) {
	if l != nil {
		in.node(l)
	}
}

func (in inspector) lifetimeDefs(defs []*LifetimeDef) {
	for _, d := range defs {
		in.lifetime(d.Lifetime)
		for _, b := range d.Bounds {
			in.lifetime(b)
		}
	}
}

func (in inspector) generics(g *Generics) {
	if g == nil {
		return
	}
	in.lifetimeDefs(g.Lifetimes)
	for _, tp := range g.TyParams {
		in.node(tp)
	}
	for _, p := range g.Where {
		in.node(p)
	}
}

func (in inspector) genericArgs(a *GenericArgs) {
	if a == nil {
		return
	}
	for _, l := range a.Lifetimes {
		in.lifetime(l)
	}
	for _, t := range a.Types {
		in.ty(t)
	}
	for _, b := range a.Bindings {
		in.node(b)
	}
}

func (in inspector) bounds(bs []Bound) {
	for _, b := range bs {
		in.node(b)
	}
}

func (in inspector) path(p *Path) {
	if p != nil {
		in.node(p)
	}
}

func (in inspector) ty(t Type) {
	if t != nil {
		in.node(t)
	}
}

func (in inspector) fnDecl(d *FnDecl) {
	if d == nil {
		return
	}
	for _, p := range d.Inputs {
		in.node(p)
	}
	in.ty(d.Output)
}

func (in inspector) block(b *Block) {
	if b != nil {
		in.node(b)
	}
}

func (in inspector) pat(p *Pat) {
	if p != nil {
		in.node(p)
	}
}

func (in inspector) expr(e Expr) {
	if e != nil {
		in.node(e)
	}
}

func (in inspector) exprs(es []Expr) {
	for _, e := range es {
		in.expr(e)
	}
}
