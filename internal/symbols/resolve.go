package symbols

import (
	"lifeline/internal/ast"
	"lifeline/internal/source"
)

var zeroSpan source.Span

type Options struct {
	// PreludeTraits replaces DefaultPreludeTraits when non-nil.
	PreludeTraits []string
}

// Resolve builds scopes for file and resolves every type path, trait bound
// and impl trait reference. Unresolved paths are recorded as DefUnresolved;
// reporting them is left to later phases.
func Resolve(file *ast.File, opts Options) *DefMap {
	traits := opts.PreludeTraits
	if traits == nil {
		traits = DefaultPreludeTraits
	}
	t := NewTable(file.Strings)
	prelude := newPrelude(t, traits)
	root := t.NewScope(ScopeModule, prelude, NoScopeID, file.Span)
	r := &resolver{
		t:          t,
		m:          &DefMap{Table: t, refs: make(map[ast.NodeID]DefID), Root: root},
		file:       file,
		prelude:    prelude,
		root:       root,
		module:     root,
		scope:      root,
		unresolved: t.NewDef(Def{Kind: DefUnresolved}),
		projection: t.NewDef(Def{Kind: DefProjection}),
		kwSelf:     t.Strings.Intern("self"),
		kwSelfTy:   t.Strings.Intern("Self"),
		kwSuper:    t.Strings.Intern("super"),
		kwCrate:    t.Strings.Intern("crate"),
	}
	r.declareItems(file.Items)
	for _, it := range file.Items {
		r.item(it)
	}
	return r.m
}

type resolver struct {
	t    *Table
	m    *DefMap
	file *ast.File

	prelude ScopeID
	root    ScopeID
	module  ScopeID
	scope   ScopeID

	unresolved DefID
	projection DefID

	kwSelf, kwSelfTy, kwSuper, kwCrate source.StringID
}

func (r *resolver) withScope(kind ScopeKind, sp source.Span, fn func()) {
	saved := r.scope
	r.scope = r.t.NewScope(kind, saved, r.module, sp)
	fn()
	r.scope = saved
}

// declareItems binds every type-namespace item of a module or block in the
// current scope before any of them is walked, so order does not matter.
func (r *resolver) declareItems(items []ast.Item) {
	for _, it := range items {
		h := it.Header()
		def := Def{Name: h.Name, Node: h.ID}
		if h.Pub {
			def.Flags |= DefFlagPublic
		}
		switch it := it.(type) {
		case *ast.StructItem:
			def.Kind = DefStruct
		case *ast.EnumItem:
			def.Kind = DefEnum
		case *ast.TypeAliasItem:
			def.Kind = DefAlias
		case *ast.TraitItem:
			def.Kind = DefTrait
		case *ast.ModItem:
			def.Kind = DefModule
			def.Scope = r.t.NewScope(ScopeModule, r.prelude, r.module, it.Span)
		default:
			continue
		}
		r.t.Declare(r.scope, h.Name, r.t.NewDef(def))
	}
}

func (r *resolver) item(it ast.Item) {
	switch it := it.(type) {
	case *ast.FnItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.generics(it.Generics)
			r.fnDecl(it.Decl)
			r.block(it.Body)
		})
	case *ast.StructItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.generics(it.Generics)
			for _, f := range it.Fields {
				r.ty(f.Ty)
			}
		})
	case *ast.EnumItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.generics(it.Generics)
			for _, v := range it.Variants {
				for _, f := range v.Fields {
					r.ty(f.Ty)
				}
			}
		})
	case *ast.TypeAliasItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.generics(it.Generics)
			r.ty(it.Ty)
		})
	case *ast.TraitItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.t.Declare(r.scope, r.kwSelfTy, r.t.NewDef(Def{Kind: DefSelfTy, Name: r.kwSelfTy, Node: it.ID}))
			for _, m := range it.Members {
				if at, ok := m.(*ast.AssocType); ok {
					r.t.Declare(r.scope, at.Name, r.t.NewDef(Def{Kind: DefAssocTy, Name: at.Name, Node: at.ID}))
				}
			}
			r.generics(it.Generics)
			r.bounds(it.Supertraits)
			for _, m := range it.Members {
				switch m := m.(type) {
				case *ast.Method:
					r.method(m)
				case *ast.AssocType:
					r.bounds(m.Bounds)
				}
			}
		})
	case *ast.ImplItem:
		r.withScope(ScopeGenerics, it.Span, func() {
			r.t.Declare(r.scope, r.kwSelfTy, r.t.NewDef(Def{Kind: DefSelfTy, Name: r.kwSelfTy, Node: it.ID}))
			r.generics(it.Generics)
			if it.Trait != nil {
				r.bound(it.Trait)
			}
			r.ty(it.SelfTy)
			for _, m := range it.Members {
				switch m := m.(type) {
				case *ast.Method:
					r.method(m)
				case *ast.AssocTypeDef:
					r.ty(m.Ty)
				}
			}
		})
	case *ast.ModItem:
		def := r.t.Def(r.t.LookupLocal(r.scope, it.Name))
		if def == nil || def.Kind != DefModule || def.Node != it.ID {
			return // shadowed by an earlier item of the same name
		}
		savedScope, savedModule := r.scope, r.module
		r.scope, r.module = def.Scope, def.Scope
		r.declareItems(it.Items)
		for _, sub := range it.Items {
			r.item(sub)
		}
		r.scope, r.module = savedScope, savedModule
	case *ast.ForeignModItem:
		for _, fi := range it.Items {
			switch fi := fi.(type) {
			case *ast.ForeignFn:
				r.withScope(ScopeGenerics, fi.Span, func() {
					r.generics(fi.Generics)
					r.fnDecl(fi.Decl)
				})
			case *ast.ForeignStatic:
				r.ty(fi.Ty)
			}
		}
	case *ast.StaticItem:
		r.ty(it.Ty)
		r.expr(it.Value)
	case *ast.ConstItem:
		r.ty(it.Ty)
		r.expr(it.Value)
	case *ast.MacroItem:
	}
}

func (r *resolver) method(m *ast.Method) {
	r.withScope(ScopeGenerics, m.Span, func() {
		r.generics(m.Generics)
		if m.Self != nil {
			r.ty(m.Self.Ty)
		}
		r.fnDecl(m.Decl)
		r.block(m.Body)
	})
}

// generics declares type parameters first so bounds may mention later ones.
func (r *resolver) generics(g *ast.Generics) {
	if g == nil {
		return
	}
	for _, tp := range g.TyParams {
		r.t.Declare(r.scope, tp.Name, r.t.NewDef(Def{Kind: DefTyParam, Name: tp.Name, Node: tp.ID}))
	}
	for _, tp := range g.TyParams {
		r.bounds(tp.Bounds)
		r.ty(tp.Default)
	}
	for _, pred := range g.Where {
		switch pred := pred.(type) {
		case *ast.WhereBoundPredicate:
			r.ty(pred.Bounded)
			r.bounds(pred.Bounds)
		case *ast.WhereEqPredicate:
			r.path(pred.Path, pred.ID)
			r.ty(pred.Ty)
		}
	}
}

func (r *resolver) bounds(bs []ast.Bound) {
	for _, b := range bs {
		r.bound(b)
	}
}

func (r *resolver) bound(b ast.Bound) {
	if tb, ok := b.(*ast.TraitBound); ok {
		r.path(tb.Path, tb.ID)
	}
}

func (r *resolver) fnDecl(d *ast.FnDecl) {
	if d == nil {
		return
	}
	for _, p := range d.Inputs {
		r.ty(p.Ty)
	}
	r.ty(d.Output)
}

func (r *resolver) ty(t ast.Type) {
	switch t := t.(type) {
	case nil:
	case *ast.PathType:
		r.path(t.Path, t.ID)
	case *ast.RefType:
		r.ty(t.Elem)
	case *ast.PtrType:
		r.ty(t.Elem)
	case *ast.SliceType:
		r.ty(t.Elem)
	case *ast.ArrayType:
		r.ty(t.Elem)
		r.expr(t.Len)
	case *ast.TupleType:
		for _, e := range t.Elems {
			r.ty(e)
		}
	case *ast.ObjectSumType:
		r.ty(t.Base)
		r.bounds(t.Bounds)
	case *ast.InferType:
	case *ast.BareFnType:
		r.fnDecl(t.Decl)
	case *ast.ClosureType:
		r.bounds(t.Bounds)
		r.fnDecl(t.Decl)
	}
}

func (r *resolver) genericArgs(a *ast.GenericArgs) {
	if a == nil {
		return
	}
	for _, t := range a.Types {
		r.ty(t)
	}
	for _, b := range a.Bindings {
		r.ty(b.Ty)
	}
}

// path resolves p and records the result under node, which is the id of
// the type, bound or predicate owning the path.
func (r *resolver) path(p *ast.Path, node ast.NodeID) {
	if p == nil {
		return
	}
	for _, seg := range p.Segments {
		r.genericArgs(seg.Args)
	}
	def := r.resolvePath(p)
	r.m.record(node, def)
	if node != p.ID {
		r.m.record(p.ID, def)
	}
}

func (r *resolver) resolvePath(p *ast.Path) DefID {
	segs := p.Segments
	i := 0
	ns := NoScopeID
	switch segs[0].Name {
	case r.kwCrate:
		ns, i = r.root, 1
	case r.kwSelf:
		ns, i = r.module, 1
	case r.kwSuper:
		ns = r.module
		for i < len(segs) && segs[i].Name == r.kwSuper {
			s := r.t.Scope(ns)
			if s == nil || !s.Outer.IsValid() {
				return r.unresolved
			}
			ns = s.Outer
			i++
		}
	}
	if i == len(segs) {
		return r.unresolved
	}
	for ; i < len(segs); i++ {
		var id DefID
		if ns.IsValid() {
			id = r.t.LookupLocal(ns, segs[i].Name)
		} else {
			id = r.t.Lookup(r.scope, segs[i].Name)
		}
		def := r.t.Def(id)
		if def == nil {
			return r.unresolved
		}
		if i == len(segs)-1 {
			return id
		}
		if def.Kind != DefModule {
			return r.projection
		}
		ns = def.Scope
	}
	return r.unresolved
}

func (r *resolver) block(b *ast.Block) {
	if b == nil {
		return
	}
	r.withScope(ScopeBlock, b.Span, func() {
		var items []ast.Item
		for _, s := range b.Stmts {
			if is, ok := s.(*ast.ItemStmt); ok {
				items = append(items, is.Item)
			}
		}
		r.declareItems(items)
		for _, s := range b.Stmts {
			switch s := s.(type) {
			case *ast.LetStmt:
				r.ty(s.Ty)
				r.expr(s.Init)
			case *ast.ItemStmt:
				r.item(s.Item)
			case *ast.ExprStmt:
				r.expr(s.X)
			}
		}
		r.expr(b.Tail)
	})
}

func (r *resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.LitExpr:
	case *ast.PathExpr:
		for _, seg := range e.Path.Segments {
			r.genericArgs(seg.Args)
		}
	case *ast.CallExpr:
		r.expr(e.Fn)
		r.exprs(e.Args)
	case *ast.MethodCallExpr:
		r.expr(e.Recv)
		r.genericArgs(e.Turbofish)
		r.exprs(e.Args)
	case *ast.FieldExpr:
		r.expr(e.X)
	case *ast.UnaryExpr:
		r.expr(e.X)
	case *ast.RefExpr:
		r.expr(e.X)
	case *ast.BinaryExpr:
		r.expr(e.L)
		r.expr(e.R)
	case *ast.CastExpr:
		r.expr(e.X)
		r.ty(e.Ty)
	case *ast.TupleExpr:
		r.exprs(e.Elems)
	case *ast.ReturnExpr:
		r.expr(e.X)
	case *ast.ClosureExpr:
		for _, p := range e.Params {
			r.ty(p.Ty)
		}
		r.ty(e.Output)
		r.expr(e.Body)
	case *ast.Block:
		r.block(e)
	}
}

func (r *resolver) exprs(es []ast.Expr) {
	for _, e := range es {
		r.expr(e)
	}
}
