package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lifeline/internal/ast"
	"lifeline/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the file content
// 2) every item span is non-empty and inside file.Span
// 3) every numbered node has a span in the same file, inside the content
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	for _, it := range f.Items {
		sp := it.Loc()
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
	}

	if f.Nodes == nil {
		return nil
	}
	for id := ast.NodeID(1); uint32(id) <= f.Nodes.Len(); id++ {
		sp := f.Nodes.Span(id)
		if sp.File != sf.ID {
			return fmt.Errorf("node #%d span file mismatch: got=%d want=%d", id, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("node #%d span %v outside content", id, sp)
		}
	}
	return nil
}
