package driver

import (
	"fmt"

	"lifeline/internal/ast"
	"lifeline/internal/lifetimes"
	"lifeline/internal/region"
	"lifeline/internal/source"
)

// RegionRow is one entry of a region table in a flat form shared by the
// table printers and the export format. Positions are 1-based.
type RegionRow struct {
	Ref      uint32 `msgpack:"ref" json:"ref"`
	Name     string `msgpack:"name" json:"name"`
	Line     uint32 `msgpack:"line" json:"line"`
	Col      uint32 `msgpack:"col" json:"col"`
	Kind     string `msgpack:"kind" json:"kind"`
	Space    string `msgpack:"space,omitempty" json:"space,omitempty"`
	Index    uint32 `msgpack:"index" json:"index"`
	Depth    uint32 `msgpack:"depth,omitempty" json:"depth,omitempty"`
	Extent   uint32 `msgpack:"extent,omitempty" json:"extent,omitempty"`
	Decl     uint32 `msgpack:"decl,omitempty" json:"decl,omitempty"`
	DeclLine uint32 `msgpack:"decl_line,omitempty" json:"decl_line,omitempty"`
	DeclCol  uint32 `msgpack:"decl_col,omitempty" json:"decl_col,omitempty"`
}

// Rows flattens r.Regions in reference order.
func Rows(r *FileResult) []RegionRow {
	if r == nil || r.AST == nil || len(r.Regions) == 0 {
		return nil
	}
	names := lifetimeNames(r.AST)
	pos := func(id ast.NodeID) source.LineCol {
		start, _ := r.FileSet.Resolve(r.AST.Nodes.Span(id))
		return start
	}

	refs := r.Regions.Refs()
	rows := make([]RegionRow, 0, len(refs))
	for _, ref := range refs {
		reg := r.Regions[ref]
		at := pos(ref)
		row := RegionRow{
			Ref:  uint32(ref),
			Name: names[ref],
			Line: at.Line,
			Col:  at.Col,
			Kind: reg.Kind.String(),
		}
		switch reg.Kind {
		case lifetimes.RegionEarlyBound:
			row.Space = reg.Space.String()
			row.Index = reg.Index
		case lifetimes.RegionLateBound:
			row.Depth = reg.Depth.Depth()
		case lifetimes.RegionFree:
			row.Extent = uint32(reg.Extent.Node())
		}
		if reg.Decl.IsValid() {
			d := pos(reg.Decl)
			row.Decl, row.DeclLine, row.DeclCol = uint32(reg.Decl), d.Line, d.Col
		}
		rows = append(rows, row)
	}
	return rows
}

// Region rebuilds the region the row was flattened from.
func (row RegionRow) Region() (lifetimes.Region, error) {
	decl := ast.NodeID(row.Decl)
	switch row.Kind {
	case "static":
		return lifetimes.Static(), nil
	case "early":
		space, err := region.ParseParamSpace(row.Space)
		if err != nil {
			return lifetimes.Region{}, err
		}
		return lifetimes.EarlyBound(space, row.Index, decl), nil
	case "late":
		if row.Depth == 0 {
			return lifetimes.Region{}, fmt.Errorf("ref %d: late-bound region with depth 0", row.Ref)
		}
		return lifetimes.LateBound(region.NewDebruijnIndex(row.Depth), decl), nil
	case "free":
		return lifetimes.Free(region.ExtentOf(ast.NodeID(row.Extent)), decl), nil
	default:
		return lifetimes.Region{}, fmt.Errorf("ref %d: unknown region kind %q", row.Ref, row.Kind)
	}
}

// lifetimeNames maps every lifetime node, references and declarations
// alike, to its spelling.
func lifetimeNames(f *ast.File) map[ast.NodeID]string {
	names := make(map[ast.NodeID]string)
	ast.Inspect(f, func(n ast.Node) bool {
		if lt, ok := n.(*ast.Lifetime); ok {
			names[lt.ID] = f.Name(lt.Name)
		}
		return true
	})
	return names
}
