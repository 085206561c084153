package symbols

import "lifeline/internal/source"

type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // builtin types and traits
	ScopeModule             // file root or mod { }
	ScopeGenerics           // type parameters of an item or method, plus Self
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeModule:
		return "module"
	case ScopeGenerics:
		return "generics"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one lexical level. Module scopes chain to the prelude, not to the
// enclosing module; Outer records the enclosing module for super::.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Outer  ScopeID
	Span   source.Span
	Names  map[source.StringID]DefID
}
