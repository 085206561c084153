package lifetimes

import (
	"slices"

	"lifeline/internal/ast"
	"lifeline/internal/source"
)

// partition splits the lifetimes declared by g into early- and late-bound
// ones, both in declaration order. A lifetime is early-bound when a
// type-parameter bound or a where bound names it, or when it takes part in
// an outlives-bound of its own clause. The position in early is the index
// of the early-bound region.
func partition(g *ast.Generics) (early, late []*ast.LifetimeDef) {
	if g == nil || len(g.Lifetimes) == 0 {
		return nil, nil
	}
	names := earlyNames(g)
	for _, d := range g.Lifetimes {
		if slices.Contains(names, d.Lifetime.Name) {
			early = append(early, d)
		} else {
			late = append(late, d)
		}
	}
	return early, late
}

// EarlyBoundLifetimes returns the early-bound declarations of g in the
// order their indices are assigned.
func EarlyBoundLifetimes(g *ast.Generics) []*ast.LifetimeDef {
	early, _ := partition(g)
	return early
}

// promoter moves names from the late set to the early list, once each.
type promoter struct {
	late  []source.StringID
	early []source.StringID
}

func (p *promoter) promote(name source.StringID) {
	i := slices.Index(p.late, name)
	if i < 0 {
		return
	}
	p.late = slices.Delete(p.late, i, i+1)
	if !slices.Contains(p.early, name) {
		p.early = append(p.early, name)
	}
}

// earlyNames runs the promotion in a single pass; a promoted lifetime does
// not in turn promote the lifetimes its bounds mention unless it is itself
// declared with bounds. Equality predicates of the where clause are not
// scanned.
func earlyNames(g *ast.Generics) []source.StringID {
	p := promoter{late: make([]source.StringID, 0, len(g.Lifetimes))}
	for _, d := range g.Lifetimes {
		p.late = append(p.late, d.Lifetime.Name)
	}

	for _, tp := range g.TyParams {
		for _, b := range tp.Bounds {
			lifetimeRefs(b, p.promote)
		}
	}
	for _, pred := range g.Where {
		if bp, ok := pred.(*ast.WhereBoundPredicate); ok {
			for _, b := range bp.Bounds {
				lifetimeRefs(b, p.promote)
			}
		}
	}

	for _, d := range g.Lifetimes {
		if len(d.Bounds) == 0 {
			continue
		}
		p.promote(d.Lifetime.Name)
		for _, b := range d.Bounds {
			p.promote(b.Name)
		}
	}
	return p.early
}

// lifetimeRefs calls fn for every lifetime reference inside b. Names
// declared by binders within b (for<'x>, fn types, closure types) are
// declarations, not references; their outlives-bounds still count.
func lifetimeRefs(b ast.Bound, fn func(source.StringID)) {
	decls := map[ast.NodeID]bool{}
	mark := func(defs []*ast.LifetimeDef) {
		for _, d := range defs {
			decls[d.Lifetime.ID] = true
		}
	}
	ast.Inspect(b, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.TraitBound:
			mark(n.BoundLifetimes)
		case *ast.BareFnType:
			mark(n.Lifetimes)
		case *ast.ClosureType:
			mark(n.Lifetimes)
		case *ast.Lifetime:
			if !decls[n.ID] {
				fn(n.Name)
			}
		}
		return true
	})
}
