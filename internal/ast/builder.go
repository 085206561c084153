package ast

import "lifeline/internal/source"

// Builder numbers nodes and interns names while a file is being parsed.
type Builder struct {
	Nodes   *Nodes
	Strings *source.Interner
}

func NewBuilder(strings *source.Interner, capHint uint) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Nodes:   NewNodes(capHint),
		Strings: strings,
	}
}

// Base allocates a fresh NodeID for a node of the given kind.
func (b *Builder) Base(kind NodeKind, sp source.Span) NodeBase {
	return NodeBase{ID: b.Nodes.New(kind, sp), Span: sp}
}

func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Finish wraps items into a File owning the builder's tables.
func (b *Builder) Finish(sp source.Span, items []Item) *File {
	return &File{
		NodeBase: b.Base(KindFile, sp),
		Items:    items,
		Nodes:    b.Nodes,
		Strings:  b.Strings,
	}
}
