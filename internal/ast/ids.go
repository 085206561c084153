package ast

// NodeID identifies a node inside one parsed file. IDs are dense and 1-based;
// NoNodeID is the placeholder a node carries before it has been numbered.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
