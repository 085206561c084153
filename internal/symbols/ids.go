package symbols

// ScopeID identifies a scope in Table.Scopes; DefID a definition in Table.Defs.
type (
	ScopeID uint32
	DefID   uint32
)

const (
	NoScopeID ScopeID = 0
	NoDefID   DefID   = 0
)

func (id ScopeID) IsValid() bool { return id != NoScopeID }
func (id DefID) IsValid() bool   { return id != NoDefID }
