package lifetimes

import (
	"fmt"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/region"
	"lifeline/internal/source"
	"lifeline/internal/trace"
)

func (w *walker) resolveLifetimeRef(s *scope, lt *ast.Lifetime) {
	if lt.Name == w.static {
		w.insert(lt, Static())
		return
	}

	// number of late binders crossed so far
	var late uint32
	for f := s; ; f = f.parent {
		switch f.kind {
		case rootFrame:
			w.unresolved(lt)
			return
		case blockFrame:
			w.resolveFreeLifetimeRef(f, lt)
			return
		case earlyFrame:
			if i, decl, ok := searchLifetimes(f.defs, lt.Name); ok {
				w.insert(lt, EarlyBound(f.space, i, decl))
				return
			}
		case lateFrame:
			if _, decl, ok := searchLifetimes(f.defs, lt.Name); ok {
				w.insert(lt, LateBound(region.NewDebruijnIndex(late+1), decl))
				return
			}
			late++
		}
	}
}

// resolveFreeLifetimeRef continues outward from the first block frame.
// Positions no longer matter past a block: a match yields a free region
// anchored at the last block crossed.
func (w *walker) resolveFreeLifetimeRef(s *scope, lt *ast.Lifetime) {
	extent := s.extent
	for f := s; ; f = f.parent {
		switch f.kind {
		case rootFrame:
			w.unresolved(lt)
			return
		case blockFrame:
			extent = f.extent
		case earlyFrame, lateFrame:
			if _, decl, ok := searchLifetimes(f.defs, lt.Name); ok {
				w.insert(lt, Free(extent, decl))
				return
			}
		}
	}
}

// searchLifetimes finds the first declaration of name in defs.
func searchLifetimes(defs []*ast.LifetimeDef, name source.StringID) (uint32, ast.NodeID, bool) {
	for i, d := range defs {
		if d.Lifetime.Name == name {
			return u32(i), d.Lifetime.ID, true
		}
	}
	return 0, ast.NoNodeID, false
}

func (w *walker) unresolved(lt *ast.Lifetime) {
	name := w.name(lt.Name)
	diag.ReportError(w.rep, diag.LftUndeclared, lt.Span,
		fmt.Sprintf("use of undeclared lifetime name `%s`", name)).Emit()
	if w.debug {
		trace.Point(w.tracer, trace.ScopeNode, "unresolved", name+" at "+lt.Span.String(), w.parent)
	}
}

// insert records r for the reference lt. A reference without a node id can
// only come from a broken tree builder, so it is not reported as a user error.
func (w *walker) insert(lt *ast.Lifetime, r Region) {
	if !lt.ID.IsValid() {
		panic(fmt.Errorf("lifetime %s at %s has no node id", w.name(lt.Name), lt.Span))
	}
	w.regions[lt.ID] = r
	if w.debug {
		trace.Point(w.tracer, trace.ScopeNode, "resolved",
			fmt.Sprintf("%s #%d -> %s", w.name(lt.Name), uint32(lt.ID), r), w.parent)
	}
}
