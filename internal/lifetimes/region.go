package lifetimes

import (
	"fmt"
	"slices"

	"lifeline/internal/ast"
	"lifeline/internal/region"
)

// RegionKind tags the variant held by a Region.
type RegionKind uint8

const (
	RegionStatic RegionKind = iota + 1
	RegionEarlyBound
	RegionLateBound
	RegionFree
)

func (k RegionKind) String() string {
	switch k {
	case RegionStatic:
		return "static"
	case RegionEarlyBound:
		return "early"
	case RegionLateBound:
		return "late"
	case RegionFree:
		return "free"
	default:
		return "invalid"
	}
}

// Region is what one lifetime reference resolved to. Only the fields of the
// active Kind are meaningful; Decl is zero for RegionStatic.
type Region struct {
	Kind   RegionKind
	Space  region.ParamSpace    // early
	Index  uint32               // early
	Depth  region.DebruijnIndex // late
	Extent region.Extent        // free
	Decl   ast.NodeID
}

func Static() Region { return Region{Kind: RegionStatic} }

func EarlyBound(space region.ParamSpace, index uint32, decl ast.NodeID) Region {
	return Region{Kind: RegionEarlyBound, Space: space, Index: index, Decl: decl}
}

func LateBound(depth region.DebruijnIndex, decl ast.NodeID) Region {
	return Region{Kind: RegionLateBound, Depth: depth, Decl: decl}
}

func Free(extent region.Extent, decl ast.NodeID) Region {
	return Region{Kind: RegionFree, Extent: extent, Decl: decl}
}

func (r Region) String() string {
	switch r.Kind {
	case RegionStatic:
		return "'static"
	case RegionEarlyBound:
		return fmt.Sprintf("early(%s, %d, decl#%d)", r.Space, r.Index, uint32(r.Decl))
	case RegionLateBound:
		return fmt.Sprintf("late(%d, decl#%d)", r.Depth.Depth(), uint32(r.Decl))
	case RegionFree:
		return fmt.Sprintf("free(%s, decl#%d)", r.Extent, uint32(r.Decl))
	default:
		return "<invalid region>"
	}
}

// NamedRegionMap maps each resolved lifetime reference to its region.
// Unresolved references have no entry.
type NamedRegionMap map[ast.NodeID]Region

// Refs returns the keys in ascending node order.
func (m NamedRegionMap) Refs() []ast.NodeID {
	ids := make([]ast.NodeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
