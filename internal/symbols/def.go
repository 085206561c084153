package symbols

import (
	"lifeline/internal/ast"
	"lifeline/internal/source"
)

// DefKind classifies what a type-namespace path resolves to.
type DefKind uint8

const (
	DefUnresolved DefKind = iota
	DefModule
	DefTrait
	DefStruct
	DefEnum
	DefAlias
	DefTyParam
	DefSelfTy
	DefAssocTy    // associated type declared in a trait
	DefProjection // T::Item and other paths through a non-module type
	DefPrimitive
)

func (k DefKind) String() string {
	switch k {
	case DefModule:
		return "module"
	case DefTrait:
		return "trait"
	case DefStruct:
		return "struct"
	case DefEnum:
		return "enum"
	case DefAlias:
		return "type alias"
	case DefTyParam:
		return "type parameter"
	case DefSelfTy:
		return "Self"
	case DefAssocTy:
		return "associated type"
	case DefProjection:
		return "projection"
	case DefPrimitive:
		return "primitive"
	default:
		return "unresolved"
	}
}

type DefFlags uint8

const (
	DefFlagPublic DefFlags = 1 << iota
	DefFlagBuiltin
)

// Def is one definition in the type namespace.
type Def struct {
	Kind  DefKind
	Name  source.StringID
	Node  ast.NodeID // declaring node; NoNodeID for builtins
	Flags DefFlags
	Scope ScopeID // for modules: the module's own scope
}

func (d *Def) IsBuiltin() bool { return d.Flags&DefFlagBuiltin != 0 }
