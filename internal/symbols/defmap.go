package symbols

import "lifeline/internal/ast"

// DefMap maps type-path and trait-reference nodes to their definitions.
type DefMap struct {
	Table *Table
	refs  map[ast.NodeID]DefID
	Root  ScopeID
}

// Def returns the definition recorded for a path node.
func (m *DefMap) Def(id ast.NodeID) (*Def, bool) {
	if m == nil {
		return nil, false
	}
	def, ok := m.refs[id]
	if !ok {
		return nil, false
	}
	return m.Table.Def(def), true
}

// IsTrait reports whether the type path or trait reference id resolved to a trait.
func (m *DefMap) IsTrait(id ast.NodeID) bool {
	d, ok := m.Def(id)
	return ok && d != nil && d.Kind == DefTrait
}

// Len is the number of recorded path nodes, resolved or not.
func (m *DefMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.refs)
}

func (m *DefMap) record(id ast.NodeID, def DefID) {
	m.refs[id] = def
}
