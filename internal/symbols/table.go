package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"lifeline/internal/source"
)

// Table owns all scopes and definitions built for one file.
type Table struct {
	scopes  []Scope // index 0 reserved for NoScopeID
	defs    []Def   // index 0 reserved for NoDefID
	Strings *source.Interner
}

func NewTable(strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		scopes:  make([]Scope, 1, 32),
		defs:    make([]Def, 1, 64),
		Strings: strings,
	}
}

func (t *Table) NewScope(kind ScopeKind, parent, outer ScopeID, sp source.Span) ScopeID {
	id := ScopeID(t.nextIndex(len(t.scopes)))
	t.scopes = append(t.scopes, Scope{
		Kind:   kind,
		Parent: parent,
		Outer:  outer,
		Span:   sp,
		Names:  make(map[source.StringID]DefID),
	})
	return id
}

func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

func (t *Table) NewDef(d Def) DefID {
	id := DefID(t.nextIndex(len(t.defs)))
	t.defs = append(t.defs, d)
	return id
}

func (t *Table) Def(id DefID) *Def {
	if !id.IsValid() || int(id) >= len(t.defs) {
		return nil
	}
	return &t.defs[id]
}

// Declare binds name in scope. An existing binding in the same scope wins;
// the return value reports whether the new one was stored.
func (t *Table) Declare(scope ScopeID, name source.StringID, def DefID) bool {
	s := t.Scope(scope)
	if s == nil {
		return false
	}
	if _, dup := s.Names[name]; dup {
		return false
	}
	s.Names[name] = def
	return true
}

// Lookup searches scope and its parents.
func (t *Table) Lookup(scope ScopeID, name source.StringID) DefID {
	for s := t.Scope(scope); s != nil; s = t.Scope(s.Parent) {
		if id, ok := s.Names[name]; ok {
			return id
		}
	}
	return NoDefID
}

// LookupLocal searches only scope itself.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) DefID {
	if s := t.Scope(scope); s != nil {
		return s.Names[name]
	}
	return NoDefID
}

func (t *Table) ScopeCount() int { return len(t.scopes) - 1 }
func (t *Table) DefCount() int   { return len(t.defs) - 1 }

func (t *Table) nextIndex(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	return v
}
