package lifetimes

import (
	"fmt"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
)

// checkLifetimeDefs validates one declaration set. s must already contain
// the set, so that 'b: 'a may name a sibling declaration.
func (w *walker) checkLifetimeDefs(s *scope, defs []*ast.LifetimeDef) {
	for i, d := range defs {
		lt := d.Lifetime
		if lt.Name == w.static {
			diag.ReportError(w.rep, diag.LftReservedName, lt.Span,
				fmt.Sprintf("invalid lifetime parameter name: `%s`", w.name(lt.Name))).Emit()
		}

		for _, prev := range defs[:i] {
			if prev.Lifetime.Name == lt.Name {
				diag.ReportError(w.rep, diag.LftDuplicateName, lt.Span,
					fmt.Sprintf("lifetime name `%s` declared twice in the same scope", w.name(lt.Name))).
					WithNote(prev.Lifetime.Span, "first declared here").
					Emit()
				break
			}
		}

		for _, b := range d.Bounds {
			w.resolveLifetimeRef(s, b)
		}
	}
}
