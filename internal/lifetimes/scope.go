package lifetimes

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"lifeline/internal/ast"
	"lifeline/internal/region"
	"lifeline/internal/source"
)

type frameKind uint8

const (
	rootFrame frameKind = iota
	earlyFrame
	lateFrame
	blockFrame
)

// scope is one frame of the chain of open binders and blocks. Frames are
// never mutated after creation; a child only holds its parent, so a frame
// becomes garbage once the visit that pushed it returns.
type scope struct {
	kind   frameKind
	space  region.ParamSpace  // early; the index is the position in defs
	defs   []*ast.LifetimeDef // early, late
	extent region.Extent      // block
	parent *scope
}

var rootScope = &scope{kind: rootFrame}

func (s *scope) early(space region.ParamSpace, defs []*ast.LifetimeDef) *scope {
	return &scope{kind: earlyFrame, space: space, defs: defs, parent: s}
}

func (s *scope) late(defs []*ast.LifetimeDef) *scope {
	return &scope{kind: lateFrame, defs: defs, parent: s}
}

func (s *scope) block(extent region.Extent) *scope {
	return &scope{kind: blockFrame, extent: extent, parent: s}
}

// describe renders the chain innermost first, for trace output.
func (s *scope) describe(strs *source.Interner) string {
	var sb strings.Builder
	for f := s; f != nil; f = f.parent {
		if f != s {
			sb.WriteString(" -> ")
		}
		switch f.kind {
		case rootFrame:
			sb.WriteString("root")
		case earlyFrame:
			fmt.Fprintf(&sb, "early(%s%s)", f.space, defNames(f.defs, strs))
		case lateFrame:
			fmt.Fprintf(&sb, "late(%s)", strings.TrimPrefix(defNames(f.defs, strs), ", "))
		case blockFrame:
			fmt.Fprintf(&sb, "block(%s)", f.extent)
		}
	}
	return sb.String()
}

func defNames(defs []*ast.LifetimeDef, strs *source.Interner) string {
	var sb strings.Builder
	for _, d := range defs {
		sb.WriteString(", ")
		sb.WriteString(strs.MustLookup(d.Lifetime.Name))
	}
	return sb.String()
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("lifetime index overflow: %w", err))
	}
	return v
}
