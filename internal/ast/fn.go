package ast

import "lifeline/internal/source"

// FnDecl is a parameter list plus return type. Output is nil for ().
type FnDecl struct {
	Span   source.Span
	Inputs []*Param
	Output Type
}

// Param is one parameter. Pat is nil for unnamed parameters of fn types.
type Param struct {
	NodeBase
	Pat *Pat
	Ty  Type
}

type SelfKind uint8

const (
	SelfValue    SelfKind = iota // self, mut self
	SelfRef                      // &self, &'a mut self
	SelfExplicit                 // self: Ty
)

type SelfParam struct {
	NodeBase
	Kind     SelfKind
	Mut      bool
	Lifetime *Lifetime
	Ty       Type
}
