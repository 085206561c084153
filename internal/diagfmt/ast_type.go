package diagfmt

import (
	"fmt"
	"strings"

	"lifeline/internal/ast"
)

// inline renders types, bounds and generics of one file back into source
// form, normalised: one space after commas and around '+'.
type inline struct {
	f *ast.File
}

func (in inline) name(lt *ast.Lifetime) string {
	return in.f.Name(lt.Name)
}

func (in inline) typ(t ast.Type) string {
	if t == nil {
		return "<inferred>"
	}
	switch t := t.(type) {
	case *ast.PathType:
		return in.path(t.Path)
	case *ast.RefType:
		var sb strings.Builder
		sb.WriteByte('&')
		if t.Lifetime != nil {
			sb.WriteString(in.name(t.Lifetime))
			sb.WriteByte(' ')
		}
		if t.Mut {
			sb.WriteString("mut ")
		}
		sb.WriteString(in.typ(t.Elem))
		return sb.String()
	case *ast.PtrType:
		if t.Mut {
			return "*mut " + in.typ(t.Elem)
		}
		return "*const " + in.typ(t.Elem)
	case *ast.SliceType:
		return "[" + in.typ(t.Elem) + "]"
	case *ast.ArrayType:
		return fmt.Sprintf("[%s; %s]", in.typ(t.Elem), in.expr(t.Len))
	case *ast.TupleType:
		elems := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = in.typ(e)
		}
		if len(elems) == 1 {
			return "(" + elems[0] + ",)"
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.ObjectSumType:
		return in.typ(t.Base) + " + " + in.bounds(t.Bounds)
	case *ast.InferType:
		return "_"
	case *ast.BareFnType:
		return in.binder(t.Lifetimes) + "fn" + in.decl(t.Decl, "(", ")")
	case *ast.ClosureType:
		s := in.binder(t.Lifetimes) + in.decl(t.Decl, "|", "|")
		if len(t.Bounds) > 0 {
			s += ": " + in.bounds(t.Bounds)
		}
		return s
	default:
		return "<unknown-type>"
	}
}

// decl renders the parameter list between open and close plus "-> R".
func (in inline) decl(d *ast.FnDecl, open, close string) string {
	if d == nil {
		return open + close
	}
	var sb strings.Builder
	sb.WriteString(open)
	for i, p := range d.Inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Pat != nil {
			sb.WriteString(in.pat(p.Pat))
			if p.Ty != nil {
				sb.WriteString(": ")
			}
		}
		if p.Ty != nil {
			sb.WriteString(in.typ(p.Ty))
		}
	}
	sb.WriteString(close)
	if d.Output != nil {
		sb.WriteString(" -> ")
		sb.WriteString(in.typ(d.Output))
	}
	return sb.String()
}

func (in inline) pat(p *ast.Pat) string {
	switch p.Kind {
	case ast.PatWild:
		return "_"
	case ast.PatTuple:
		elems := make([]string, len(p.Elems))
		for i, e := range p.Elems {
			elems[i] = in.pat(e)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	}
	if p.Mut {
		return "mut " + in.f.Name(p.Name)
	}
	return in.f.Name(p.Name)
}

func (in inline) path(p *ast.Path) string {
	if p == nil {
		return "<invalid-path>"
	}
	segs := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		segs[i] = in.f.Name(seg.Name) + in.args(seg.Args, false)
	}
	return strings.Join(segs, "::")
}

func (in inline) args(a *ast.GenericArgs, turbofish bool) string {
	if a.IsEmpty() {
		return ""
	}
	var parts []string
	for _, lt := range a.Lifetimes {
		parts = append(parts, in.name(lt))
	}
	for _, t := range a.Types {
		parts = append(parts, in.typ(t))
	}
	for _, b := range a.Bindings {
		parts = append(parts, in.f.Name(b.Name)+" = "+in.typ(b.Ty))
	}
	s := "<" + strings.Join(parts, ", ") + ">"
	if turbofish {
		return "::" + s
	}
	return s
}

func (in inline) bounds(bs []ast.Bound) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		switch b := b.(type) {
		case *ast.TraitBound:
			s := in.binder(b.BoundLifetimes) + in.path(b.Path)
			if b.Maybe {
				s = "?" + s
			}
			parts[i] = s
		case *ast.RegionBound:
			parts[i] = in.name(b.Lifetime)
		}
	}
	return strings.Join(parts, " + ")
}

func (in inline) lifetimeDef(d *ast.LifetimeDef) string {
	s := in.name(d.Lifetime)
	if len(d.Bounds) == 0 {
		return s
	}
	bs := make([]string, len(d.Bounds))
	for i, b := range d.Bounds {
		bs[i] = in.name(b)
	}
	return s + ": " + strings.Join(bs, " + ")
}

// binder renders "for<'a, 'b> " or nothing.
func (in inline) binder(defs []*ast.LifetimeDef) string {
	if len(defs) == 0 {
		return ""
	}
	parts := make([]string, len(defs))
	for i, d := range defs {
		parts[i] = in.lifetimeDef(d)
	}
	return "for<" + strings.Join(parts, ", ") + "> "
}

func (in inline) generics(g *ast.Generics) string {
	if g == nil || (len(g.Lifetimes) == 0 && len(g.TyParams) == 0) {
		return ""
	}
	var parts []string
	for _, d := range g.Lifetimes {
		parts = append(parts, in.lifetimeDef(d))
	}
	for _, tp := range g.TyParams {
		s := in.f.Name(tp.Name)
		if len(tp.Bounds) > 0 {
			s += ": " + in.bounds(tp.Bounds)
		}
		if tp.Default != nil {
			s += " = " + in.typ(tp.Default)
		}
		parts = append(parts, s)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (in inline) where(g *ast.Generics) string {
	if g == nil || len(g.Where) == 0 {
		return ""
	}
	parts := make([]string, len(g.Where))
	for i, p := range g.Where {
		switch p := p.(type) {
		case *ast.WhereBoundPredicate:
			parts[i] = in.typ(p.Bounded) + ": " + in.bounds(p.Bounds)
		case *ast.WhereEqPredicate:
			parts[i] = in.path(p.Path) + " = " + in.typ(p.Ty)
		}
	}
	return strings.Join(parts, ", ")
}

// expr is a one-line summary; blocks and closure bodies are elided.
func (in inline) expr(e ast.Expr) string {
	switch e := e.(type) {
	case nil:
		return "<none>"
	case *ast.LitExpr:
		return e.Text
	case *ast.PathExpr:
		return in.pathExpr(e.Path)
	case *ast.CallExpr:
		return in.expr(e.Fn) + "(" + in.exprList(e.Args) + ")"
	case *ast.MethodCallExpr:
		return in.expr(e.Recv) + "." + in.f.Name(e.Name) + in.args(e.Turbofish, true) + "(" + in.exprList(e.Args) + ")"
	case *ast.FieldExpr:
		return in.expr(e.X) + "." + in.f.Name(e.Name)
	case *ast.UnaryExpr:
		return e.Op.String() + in.expr(e.X)
	case *ast.RefExpr:
		if e.Mut {
			return "&mut " + in.expr(e.X)
		}
		return "&" + in.expr(e.X)
	case *ast.BinaryExpr:
		return in.expr(e.L) + " " + e.Op.String() + " " + in.expr(e.R)
	case *ast.CastExpr:
		return in.expr(e.X) + " as " + in.typ(e.Ty)
	case *ast.TupleExpr:
		return "(" + in.exprList(e.Elems) + ")"
	case *ast.ReturnExpr:
		if e.X == nil {
			return "return"
		}
		return "return " + in.expr(e.X)
	case *ast.ClosureExpr:
		d := &ast.FnDecl{Inputs: e.Params, Output: e.Output}
		return in.decl(d, "|", "|") + " {..}"
	case *ast.Block:
		return "{..}"
	default:
		return "<unknown-expr>"
	}
}

func (in inline) exprList(es []ast.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = in.expr(e)
	}
	return strings.Join(parts, ", ")
}

// pathExpr writes generic args in turbofish form.
func (in inline) pathExpr(p *ast.Path) string {
	segs := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		segs[i] = in.f.Name(seg.Name) + in.args(seg.Args, true)
	}
	return strings.Join(segs, "::")
}
