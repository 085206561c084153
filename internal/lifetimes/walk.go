package lifetimes

import (
	"fmt"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/region"
	"lifeline/internal/source"
	"lifeline/internal/trace"
)

// walker is the state of one Resolve call. The scope chain is not part of
// it; every visit method receives the chain it runs under.
type walker struct {
	regions NamedRegionMap
	rep     *diag.CountingReporter
	traits  TraitOracle
	strs    *source.Interner
	static  source.StringID

	tracer trace.Tracer
	parent uint64 // span id node points hang from
	debug  bool
}

func (w *walker) name(id source.StringID) string {
	if s, ok := w.strs.Lookup(id); ok {
		return s
	}
	return "'?"
}

// push is the single place frames enter the chain, so the debug trace sees
// every binder and block.
func (w *walker) push(s *scope) *scope {
	if w.debug {
		trace.Point(w.tracer, trace.ScopeNode, "scope", s.describe(w.strs), w.parent)
	}
	return s
}

func (w *walker) file(f *ast.File) {
	for _, it := range f.Items {
		sp := trace.Begin(w.tracer, trace.ScopeItem, itemLabel(it, w.strs), w.parent)
		outer := w.parent
		if id := sp.ID(); id != 0 {
			w.parent = id
		}
		w.item(rootScope, it)
		w.parent = outer
		sp.End("")
	}
}

// item visits a declaration found under s. Only an impl keeps s: its
// methods may name lifetimes of the fn whose body holds it. Every other
// kind starts over from the root scope.
func (w *walker) item(s *scope, it ast.Item) {
	switch it := it.(type) {
	case *ast.FnItem:
		w.visitEarlyLate(rootScope, region.FnSpace, it.Generics, func(s *scope) {
			w.tyParams(s, it.Generics)
			w.fnDecl(s, it.Decl)
			w.where(s, it.Generics)
			w.block(s, it.Body)
		})

	case *ast.StructItem:
		s := w.typeScope(it.Generics)
		w.tyParams(s, it.Generics)
		w.where(s, it.Generics)
		w.fields(s, it.Fields)
	case *ast.EnumItem:
		s := w.typeScope(it.Generics)
		w.tyParams(s, it.Generics)
		w.where(s, it.Generics)
		for _, v := range it.Variants {
			w.fields(s, v.Fields)
		}
	case *ast.TypeAliasItem:
		s := w.typeScope(it.Generics)
		w.tyParams(s, it.Generics)
		w.where(s, it.Generics)
		w.ty(s, it.Ty)
	case *ast.TraitItem:
		s := w.typeScope(it.Generics)
		w.tyParams(s, it.Generics)
		w.bounds(s, it.Supertraits)
		w.where(s, it.Generics)
		for _, m := range it.Members {
			switch m := m.(type) {
			case *ast.Method:
				w.method(s, m)
			case *ast.AssocType:
				w.bounds(s, m.Bounds)
			default:
				panic(fmt.Errorf("lifetimes: unexpected trait member %T", m))
			}
		}

	case *ast.ImplItem:
		w.visitEarlyLate(s, region.TypeSpace, it.Generics, func(s *scope) {
			w.tyParams(s, it.Generics)
			if it.Trait != nil {
				// impl Trait<'a> for T names a trait, it does not bind
				w.path(s, it.Trait.Path)
			}
			w.ty(s, it.SelfTy)
			w.where(s, it.Generics)
			for _, m := range it.Members {
				switch m := m.(type) {
				case *ast.Method:
					w.method(s, m)
				case *ast.AssocTypeDef:
					w.ty(s, m.Ty)
				default:
					panic(fmt.Errorf("lifetimes: unexpected impl member %T", m))
				}
			}
		})

	case *ast.ModItem:
		for _, sub := range it.Items {
			w.item(rootScope, sub)
		}
	case *ast.MacroItem:
	case *ast.ForeignModItem:
		for _, fi := range it.Items {
			switch fi := fi.(type) {
			case *ast.ForeignFn:
				w.visitEarlyLate(rootScope, region.FnSpace, fi.Generics, func(s *scope) {
					w.tyParams(s, fi.Generics)
					w.fnDecl(s, fi.Decl)
					w.where(s, fi.Generics)
				})
			case *ast.ForeignStatic:
				w.ty(rootScope, fi.Ty)
			default:
				panic(fmt.Errorf("lifetimes: unexpected foreign item %T", fi))
			}
		}
	case *ast.StaticItem:
		w.ty(rootScope, it.Ty)
		w.expr(rootScope, it.Value)
	case *ast.ConstItem:
		w.ty(rootScope, it.Ty)
		w.expr(rootScope, it.Value)

	default:
		panic(fmt.Errorf("lifetimes: unexpected item %T", it))
	}
}

// typeScope opens the binder of a struct, enum, alias or trait: every
// lifetime it declares is early-bound.
func (w *walker) typeScope(g *ast.Generics) *scope {
	defs := declared(g)
	s := w.push(rootScope.early(region.TypeSpace, defs))
	w.checkLifetimeDefs(s, defs)
	return s
}

// visitEarlyLate opens the two binders of a fn-like generics clause and runs
// body under them.
func (w *walker) visitEarlyLate(s *scope, space region.ParamSpace, g *ast.Generics, body func(*scope)) {
	early, late := partition(g)
	s = w.push(s.early(space, early))
	s = w.push(s.late(late))
	w.checkLifetimeDefs(s, declared(g))
	body(s)
}

func (w *walker) method(s *scope, m *ast.Method) {
	w.visitEarlyLate(s, region.FnSpace, m.Generics, func(s *scope) {
		w.tyParams(s, m.Generics)
		w.selfParam(s, m.Self)
		w.fnDecl(s, m.Decl)
		w.where(s, m.Generics)
		w.block(s, m.Body)
	})
}

func declared(g *ast.Generics) []*ast.LifetimeDef {
	if g == nil {
		return nil
	}
	return g.Lifetimes
}

// tyParams visits the bounds and defaults of type parameters. Lifetime
// declarations are handled by checkLifetimeDefs.
func (w *walker) tyParams(s *scope, g *ast.Generics) {
	if g == nil {
		return
	}
	for _, tp := range g.TyParams {
		w.bounds(s, tp.Bounds)
		w.ty(s, tp.Default)
	}
}

func (w *walker) where(s *scope, g *ast.Generics) {
	if g == nil {
		return
	}
	for _, pred := range g.Where {
		switch p := pred.(type) {
		case *ast.WhereBoundPredicate:
			w.ty(s, p.Bounded)
			w.bounds(s, p.Bounds)
		case *ast.WhereEqPredicate:
			w.path(s, p.Path)
			w.ty(s, p.Ty)
		default:
			panic(fmt.Errorf("lifetimes: unexpected where predicate %T", pred))
		}
	}
}

func (w *walker) bounds(s *scope, bs []ast.Bound) {
	for _, b := range bs {
		switch b := b.(type) {
		case *ast.TraitBound:
			w.polyTraitRef(s, b)
		case *ast.RegionBound:
			w.resolveLifetimeRef(s, b.Lifetime)
		default:
			panic(fmt.Errorf("lifetimes: unexpected bound %T", b))
		}
	}
}

// polyTraitRef always opens a late binder, empty when the bound has no
// for<...> list.
func (w *walker) polyTraitRef(s *scope, b *ast.TraitBound) {
	s = w.push(s.late(b.BoundLifetimes))
	w.checkLifetimeDefs(s, b.BoundLifetimes)
	w.path(s, b.Path)
}

func (w *walker) fields(s *scope, fs []*ast.Field) {
	for _, f := range fs {
		w.ty(s, f.Ty)
	}
}

func (w *walker) ty(s *scope, t ast.Type) {
	switch t := t.(type) {
	case nil:
	case *ast.PathType:
		if w.traits != nil && w.traits.IsTrait(t.ID) {
			// a bare trait used as a type binds like for<> Trait
			s = w.push(s.late(nil))
		}
		w.path(s, t.Path)
	case *ast.RefType:
		if t.Lifetime != nil {
			w.resolveLifetimeRef(s, t.Lifetime)
		}
		w.ty(s, t.Elem)
	case *ast.PtrType:
		w.ty(s, t.Elem)
	case *ast.SliceType:
		w.ty(s, t.Elem)
	case *ast.ArrayType:
		w.ty(s, t.Elem)
		w.expr(s, t.Len)
	case *ast.TupleType:
		for _, e := range t.Elems {
			w.ty(s, e)
		}
	case *ast.ObjectSumType:
		w.ty(s, t.Base)
		w.bounds(s, t.Bounds)
	case *ast.InferType:
	case *ast.BareFnType:
		s = w.push(s.late(t.Lifetimes))
		w.checkLifetimeDefs(s, t.Lifetimes)
		w.fnDecl(s, t.Decl)
	case *ast.ClosureType:
		w.bounds(s, t.Bounds)
		s = w.push(s.late(t.Lifetimes))
		w.checkLifetimeDefs(s, t.Lifetimes)
		w.fnDecl(s, t.Decl)
	default:
		panic(fmt.Errorf("lifetimes: unexpected type %T", t))
	}
}

func (w *walker) path(s *scope, p *ast.Path) {
	if p == nil {
		return
	}
	for _, seg := range p.Segments {
		w.genericArgs(s, seg.Args)
	}
}

func (w *walker) genericArgs(s *scope, a *ast.GenericArgs) {
	if a == nil {
		return
	}
	for _, lt := range a.Lifetimes {
		w.resolveLifetimeRef(s, lt)
	}
	for _, t := range a.Types {
		w.ty(s, t)
	}
	for _, b := range a.Bindings {
		w.ty(s, b.Ty)
	}
}

func (w *walker) fnDecl(s *scope, d *ast.FnDecl) {
	if d == nil {
		return
	}
	for _, p := range d.Inputs {
		w.ty(s, p.Ty)
	}
	w.ty(s, d.Output)
}

func (w *walker) selfParam(s *scope, sp *ast.SelfParam) {
	if sp == nil {
		return
	}
	if sp.Lifetime != nil {
		w.resolveLifetimeRef(s, sp.Lifetime)
	}
	w.ty(s, sp.Ty)
}

func (w *walker) block(s *scope, b *ast.Block) {
	if b == nil {
		return
	}
	s = w.push(s.block(region.ExtentOf(b.ID)))
	for _, st := range b.Stmts {
		switch st := st.(type) {
		case *ast.LetStmt:
			w.ty(s, st.Ty)
			w.expr(s, st.Init)
		case *ast.ItemStmt:
			w.item(s, st.Item)
		case *ast.ExprStmt:
			w.expr(s, st.X)
		default:
			panic(fmt.Errorf("lifetimes: unexpected statement %T", st))
		}
	}
	w.expr(s, b.Tail)
}

func (w *walker) expr(s *scope, e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.LitExpr:
	case *ast.PathExpr:
		w.path(s, e.Path)
	case *ast.CallExpr:
		w.expr(s, e.Fn)
		w.exprs(s, e.Args)
	case *ast.MethodCallExpr:
		w.expr(s, e.Recv)
		w.genericArgs(s, e.Turbofish)
		w.exprs(s, e.Args)
	case *ast.FieldExpr:
		w.expr(s, e.X)
	case *ast.UnaryExpr:
		w.expr(s, e.X)
	case *ast.RefExpr:
		w.expr(s, e.X)
	case *ast.BinaryExpr:
		w.expr(s, e.L)
		w.expr(s, e.R)
	case *ast.CastExpr:
		w.expr(s, e.X)
		w.ty(s, e.Ty)
	case *ast.TupleExpr:
		w.exprs(s, e.Elems)
	case *ast.ReturnExpr:
		w.expr(s, e.X)
	case *ast.ClosureExpr:
		// closures share the enclosing scope; only their body opens a block
		for _, p := range e.Params {
			w.ty(s, p.Ty)
		}
		w.ty(s, e.Output)
		w.expr(s, e.Body)
	case *ast.Block:
		w.block(s, e)
	default:
		panic(fmt.Errorf("lifetimes: unexpected expression %T", e))
	}
}

func (w *walker) exprs(s *scope, es []ast.Expr) {
	for _, e := range es {
		w.expr(s, e)
	}
}

func itemLabel(it ast.Item, strs *source.Interner) string {
	var kind string
	switch it.(type) {
	case *ast.FnItem:
		kind = "fn"
	case *ast.StructItem:
		kind = "struct"
	case *ast.EnumItem:
		kind = "enum"
	case *ast.TypeAliasItem:
		kind = "type"
	case *ast.TraitItem:
		kind = "trait"
	case *ast.ImplItem:
		kind = "impl"
	case *ast.ModItem:
		kind = "mod"
	case *ast.MacroItem:
		kind = "macro"
	case *ast.ForeignModItem:
		kind = "extern"
	case *ast.StaticItem:
		kind = "static"
	case *ast.ConstItem:
		kind = "const"
	default:
		kind = "item"
	}
	if name, ok := strs.Lookup(it.Header().Name); ok && name != "" {
		return kind + " " + name
	}
	return kind
}
