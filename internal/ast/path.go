package ast

import "lifeline/internal/source"

// Path is a ::-separated name. Segment names are interned verbatim,
// including the keywords self, Self, super and crate.
type Path struct {
	NodeBase
	Segments []*PathSegment
}

type PathSegment struct {
	Span source.Span
	Name source.StringID
	Args *GenericArgs
}

// GenericArgs is <'a, T, Assoc = U>, written after a type path segment or
// as a turbofish ::<...> in expressions.
type GenericArgs struct {
	Span      source.Span
	Lifetimes []*Lifetime
	Types     []Type
	Bindings  []*TypeBinding
}

func (a *GenericArgs) IsEmpty() bool {
	return a == nil || (len(a.Lifetimes) == 0 && len(a.Types) == 0 && len(a.Bindings) == 0)
}

type TypeBinding struct {
	NodeBase
	Name source.StringID
	Ty   Type
}

// Last returns the final segment.
func (p *Path) Last() *PathSegment {
	if p == nil || len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[len(p.Segments)-1]
}
