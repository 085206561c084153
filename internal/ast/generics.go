package ast

import "lifeline/internal/source"

// Lifetime is a single lifetime occurrence: a reference, or the name part
// of a declaration. Name includes the leading quote ('a).
type Lifetime struct {
	NodeBase
	Name source.StringID
}

// LifetimeDef declares a lifetime with its outlives-bounds: 'a: 'b + 'c.
// The declaration's identity is Lifetime.ID.
type LifetimeDef struct {
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

func (d *LifetimeDef) Loc() source.Span {
	sp := d.Lifetime.Span
	for _, b := range d.Bounds {
		sp = sp.Cover(b.Span)
	}
	return sp
}

type Generics struct {
	Span      source.Span
	Lifetimes []*LifetimeDef
	TyParams  []*TyParam
	Where     []WherePredicate
}

func (g *Generics) IsEmpty() bool {
	return g == nil || (len(g.Lifetimes) == 0 && len(g.TyParams) == 0 && len(g.Where) == 0)
}

type TyParam struct {
	NodeBase
	Name    source.StringID
	Bounds  []Bound
	Default Type
}

// Bound is a trait bound or a lifetime bound.
type Bound interface {
	Node
	boundNode()
}

// TraitBound is a (possibly higher-ranked) trait reference:
// for<'a> Trait<'a>, or ?Sized when Maybe is set.
type TraitBound struct {
	NodeBase
	Maybe          bool
	BoundLifetimes []*LifetimeDef
	Path           *Path
}

// RegionBound is a lifetime used as a bound: T: 'a.
type RegionBound struct {
	Lifetime *Lifetime
}

func (*TraitBound) boundNode()  {}
func (*RegionBound) boundNode() {}

func (b *RegionBound) NodeID() NodeID   { return b.Lifetime.ID }
func (b *RegionBound) Loc() source.Span { return b.Lifetime.Span }

type WherePredicate interface {
	Node
	wherePredicate()
}

// WhereBoundPredicate is Ty: Bounds.
type WhereBoundPredicate struct {
	NodeBase
	Bounded Type
	Bounds  []Bound
}

// WhereEqPredicate is Path = Ty.
type WhereEqPredicate struct {
	NodeBase
	Path *Path
	Ty   Type
}

func (*WhereBoundPredicate) wherePredicate() {}
func (*WhereEqPredicate) wherePredicate()    {}
