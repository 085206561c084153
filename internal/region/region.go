// Package region holds the small value types that name where a region lives:
// the parameter space of an early-bound lifetime, the binder depth of a
// late-bound one and the block extent of a free one.
package region

import (
	"fmt"

	"lifeline/internal/ast"
)

// ParamSpace separates item-level from method-level early-bound parameters
// so their indices never collide.
type ParamSpace uint8

const (
	TypeSpace ParamSpace = iota
	SelfSpace
	FnSpace
)

func (s ParamSpace) String() string {
	switch s {
	case TypeSpace:
		return "TypeSpace"
	case SelfSpace:
		return "SelfSpace"
	case FnSpace:
		return "FnSpace"
	default:
		return fmt.Sprintf("ParamSpace(%d)", uint8(s))
	}
}

// ParseParamSpace is the inverse of String.
func ParseParamSpace(s string) (ParamSpace, error) {
	switch s {
	case "TypeSpace":
		return TypeSpace, nil
	case "SelfSpace":
		return SelfSpace, nil
	case "FnSpace":
		return FnSpace, nil
	}
	return 0, fmt.Errorf("unknown parameter space %q", s)
}

// DebruijnIndex counts late-bound binders outward from a reference.
// The innermost binder is depth 1.
type DebruijnIndex uint32

// NewDebruijnIndex panics on depth 0.
func NewDebruijnIndex(depth uint32) DebruijnIndex {
	if depth == 0 {
		panic(fmt.Errorf("debruijn index must be at least 1"))
	}
	return DebruijnIndex(depth)
}

func (d DebruijnIndex) Depth() uint32 { return uint32(d) }

// Shifted moves the index n binders further out.
func (d DebruijnIndex) Shifted(n uint32) DebruijnIndex { return d + DebruijnIndex(n) }

func (d DebruijnIndex) String() string { return fmt.Sprintf("^%d", uint32(d)) }

// Extent identifies the lexical span of one block. Two extents are equal
// only when they come from the same block node.
type Extent struct {
	node ast.NodeID
}

// ExtentOf returns the extent of the block with the given node id.
func ExtentOf(block ast.NodeID) Extent { return Extent{node: block} }

// Node is the block node the extent was taken from.
func (e Extent) Node() ast.NodeID { return e.node }

func (e Extent) IsValid() bool { return e.node.IsValid() }

func (e Extent) String() string { return fmt.Sprintf("block#%d", uint32(e.node)) }
