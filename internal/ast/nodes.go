package ast

import "lifeline/internal/source"

type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindFile
	KindLifetime
	KindTyParam
	KindTraitBound
	KindWherePredicate
	KindPath
	KindTypeBinding
	KindType
	KindParam
	KindSelfParam
	KindItem
	KindField
	KindVariant
	KindTraitMember
	KindImplMember
	KindForeignItem
	KindBlock
	KindStmt
	KindPat
	KindExpr
)

var nodeKindNames = [...]string{
	KindInvalid:        "invalid",
	KindFile:           "file",
	KindLifetime:       "lifetime",
	KindTyParam:        "type parameter",
	KindTraitBound:     "trait bound",
	KindWherePredicate: "where predicate",
	KindPath:           "path",
	KindTypeBinding:    "type binding",
	KindType:           "type",
	KindParam:          "parameter",
	KindSelfParam:      "self parameter",
	KindItem:           "item",
	KindField:          "field",
	KindVariant:        "variant",
	KindTraitMember:    "trait member",
	KindImplMember:     "impl member",
	KindForeignItem:    "foreign item",
	KindBlock:          "block",
	KindStmt:           "statement",
	KindPat:            "pattern",
	KindExpr:           "expression",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// NodeInfo is the per-ID record kept alongside the tree so that consumers
// holding only a NodeID (region tables, exports) can recover a location.
type NodeInfo struct {
	Kind NodeKind
	Span source.Span
}

type Nodes struct {
	Arena *Arena[NodeInfo]
}

func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Nodes{Arena: NewArena[NodeInfo](capHint)}
}

func (n *Nodes) New(kind NodeKind, sp source.Span) NodeID {
	return NodeID(n.Arena.Allocate(NodeInfo{Kind: kind, Span: sp}))
}

func (n *Nodes) Get(id NodeID) *NodeInfo {
	return n.Arena.Get(uint32(id))
}

// Span returns the recorded span of id, or the zero span for unknown IDs.
func (n *Nodes) Span(id NodeID) source.Span {
	if info := n.Get(id); info != nil {
		return info.Span
	}
	return source.Span{}
}

func (n *Nodes) Len() uint32 { return n.Arena.Len() }
