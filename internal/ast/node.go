package ast

import "lifeline/internal/source"

// Node is implemented by every tree node that carries an identity.
type Node interface {
	NodeID() NodeID
	Loc() source.Span
}

type NodeBase struct {
	ID   NodeID
	Span source.Span
}

func (n *NodeBase) NodeID() NodeID   { return n.ID }
func (n *NodeBase) Loc() source.Span { return n.Span }

// File is the root of one parsed program.
type File struct {
	NodeBase
	Items   []Item
	Nodes   *Nodes
	Strings *source.Interner
}

// Name returns the interned text for id.
func (f *File) Name(id source.StringID) string {
	if f == nil || f.Strings == nil {
		return ""
	}
	s, _ := f.Strings.Lookup(id)
	return s
}
