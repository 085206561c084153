package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lifeline/internal/ast"
	"lifeline/internal/source"
)

// ASTNodeOutput is one line of the AST dump; the pretty and JSON forms are
// rendered from the same tree.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	ID       uint32          `json:"id,omitempty"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`

	pos string
}

// FormatASTPretty prints file as an indented tree, one item member per line.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	root := BuildASTOutput(file, fs)
	header := "File"
	if fs != nil {
		if src := fs.Get(file.Span.File); src != nil {
			header = src.FormatPath("auto", fs.BaseDir())
		}
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, root.pos); err != nil {
		return err
	}
	return writeTreeChildren(w, root.Children, "")
}

func writeTreeChildren(w io.Writer, nodes []ASTNodeOutput, prefix string) error {
	for i := range nodes {
		n := &nodes[i]
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		label := n.Type
		if n.Text != "" {
			label += ": " + n.Text
		}
		if n.pos != "" {
			label += " (span: " + n.pos + ")"
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label); err != nil {
			return err
		}
		if err := writeTreeChildren(w, n.Children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON writes the same tree as JSON.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(file, nil))
}

// BuildASTOutput builds the dump tree. fs is only used for line:col
// positions in the pretty form and may be nil.
func BuildASTOutput(file *ast.File, fs *source.FileSet) ASTNodeOutput {
	b := astBuilder{in: inline{f: file}, fs: fs}
	root := b.node("File", file.ID, "", file.Span)
	for i, it := range file.Items {
		root.Children = append(root.Children, b.item(it, i))
	}
	return root
}

type astBuilder struct {
	in inline
	fs *source.FileSet
}

func (b astBuilder) node(typ string, id ast.NodeID, text string, sp source.Span) ASTNodeOutput {
	return ASTNodeOutput{Type: typ, ID: uint32(id), Text: text, Span: sp, pos: formatSpan(sp, b.fs)}
}

func (b astBuilder) leaf(typ, text string) ASTNodeOutput {
	return ASTNodeOutput{Type: typ, Text: text}
}

func (b astBuilder) item(it ast.Item, idx int) ASTNodeOutput {
	h := it.Header()
	name := b.in.f.Name(h.Name)
	kind := formatItemKind(it)
	text := kind
	if name != "" {
		text += " " + name
	}
	text = strings.TrimSpace(text + b.in.generics(ast.ItemGenerics(it)))
	if h.Pub {
		text = "pub " + text
	}
	n := b.node(fmt.Sprintf("Item[%d]", idx), h.ID, text, h.Span)
	if w := b.in.where(ast.ItemGenerics(it)); w != "" {
		n.Children = append(n.Children, b.leaf("Where", w))
	}

	switch it := it.(type) {
	case *ast.FnItem:
		n.Children = append(n.Children, b.signature(it.Decl)...)
		n.Children = append(n.Children, b.body(it.Body))
	case *ast.StructItem:
		n.Children = append(n.Children, b.fields(it.Fields)...)
	case *ast.EnumItem:
		for _, v := range it.Variants {
			vn := b.node("Variant", v.ID, b.in.f.Name(v.Name), v.Span)
			vn.Children = b.fields(v.Fields)
			n.Children = append(n.Children, vn)
		}
	case *ast.TypeAliasItem:
		n.Children = append(n.Children, b.leaf("Type", b.in.typ(it.Ty)))
	case *ast.TraitItem:
		if len(it.Supertraits) > 0 {
			n.Children = append(n.Children, b.leaf("Supertraits", b.in.bounds(it.Supertraits)))
		}
		for _, m := range it.Members {
			switch m := m.(type) {
			case *ast.Method:
				n.Children = append(n.Children, b.method(m))
			case *ast.AssocType:
				text := b.in.f.Name(m.Name)
				if len(m.Bounds) > 0 {
					text += ": " + b.in.bounds(m.Bounds)
				}
				n.Children = append(n.Children, b.node("AssocType", m.ID, text, m.Span))
			}
		}
	case *ast.ImplItem:
		if it.Trait != nil {
			n.Children = append(n.Children, b.leaf("Trait", b.in.path(it.Trait.Path)))
		}
		n.Children = append(n.Children, b.leaf("SelfTy", b.in.typ(it.SelfTy)))
		for _, m := range it.Members {
			switch m := m.(type) {
			case *ast.Method:
				n.Children = append(n.Children, b.method(m))
			case *ast.AssocTypeDef:
				n.Children = append(n.Children, b.node("AssocType", m.ID, b.in.f.Name(m.Name)+" = "+b.in.typ(m.Ty), m.Span))
			}
		}
	case *ast.ModItem:
		for i, sub := range it.Items {
			n.Children = append(n.Children, b.item(sub, i))
		}
	case *ast.ForeignModItem:
		for _, fi := range it.Items {
			switch fi := fi.(type) {
			case *ast.ForeignFn:
				fn := b.node("ForeignFn", fi.ID, b.in.f.Name(fi.Name)+b.in.generics(fi.Generics), fi.Span)
				fn.Children = b.signature(fi.Decl)
				n.Children = append(n.Children, fn)
			case *ast.ForeignStatic:
				n.Children = append(n.Children, b.node("ForeignStatic", fi.ID, b.in.f.Name(fi.Name)+": "+b.in.typ(fi.Ty), fi.Span))
			}
		}
	case *ast.StaticItem:
		n.Children = append(n.Children, b.leaf("Type", b.in.typ(it.Ty)), b.leaf("Value", b.in.expr(it.Value)))
	case *ast.ConstItem:
		n.Children = append(n.Children, b.leaf("Type", b.in.typ(it.Ty)), b.leaf("Value", b.in.expr(it.Value)))
	case *ast.MacroItem:
	}
	return n
}

func (b astBuilder) method(m *ast.Method) ASTNodeOutput {
	n := b.node("Method", m.ID, b.in.f.Name(m.Name)+b.in.generics(m.Generics), m.Span)
	if w := b.in.where(m.Generics); w != "" {
		n.Children = append(n.Children, b.leaf("Where", w))
	}
	if m.Self != nil {
		n.Children = append(n.Children, b.leaf("Self", b.selfParam(m.Self)))
	}
	n.Children = append(n.Children, b.signature(m.Decl)...)
	if m.Body != nil {
		n.Children = append(n.Children, b.body(m.Body))
	}
	return n
}

func (b astBuilder) selfParam(s *ast.SelfParam) string {
	switch s.Kind {
	case ast.SelfRef:
		out := "&"
		if s.Lifetime != nil {
			out += b.in.name(s.Lifetime) + " "
		}
		if s.Mut {
			out += "mut "
		}
		return out + "self"
	case ast.SelfExplicit:
		return "self: " + b.in.typ(s.Ty)
	}
	if s.Mut {
		return "mut self"
	}
	return "self"
}

func (b astBuilder) signature(d *ast.FnDecl) []ASTNodeOutput {
	if d == nil {
		return nil
	}
	params := b.leaf("Params", b.in.decl(&ast.FnDecl{Inputs: d.Inputs}, "(", ")"))
	out := []ASTNodeOutput{params}
	if d.Output != nil {
		out = append(out, b.leaf("Return", b.in.typ(d.Output)))
	}
	return out
}

func (b astBuilder) fields(fields []*ast.Field) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(fields))
	for i, f := range fields {
		name := b.in.f.Name(f.Name)
		if name == "" {
			name = fmt.Sprint(i)
		}
		out = append(out, b.node("Field", f.ID, name+": "+b.in.typ(f.Ty), f.Span))
	}
	return out
}

func (b astBuilder) body(blk *ast.Block) ASTNodeOutput {
	if blk == nil {
		return b.leaf("Body", "<none>")
	}
	n := b.node("Body", blk.ID, "", blk.Span)
	n.Children = b.stmts(blk)
	return n
}

func (b astBuilder) stmts(blk *ast.Block) []ASTNodeOutput {
	var out []ASTNodeOutput
	for i, st := range blk.Stmts {
		switch st := st.(type) {
		case *ast.LetStmt:
			text := b.in.pat(st.Pat)
			if st.Ty != nil {
				text += ": " + b.in.typ(st.Ty)
			}
			if st.Init != nil {
				text += " = " + b.in.expr(st.Init)
			}
			out = append(out, b.node("Let", st.ID, text, st.Span))
		case *ast.ItemStmt:
			out = append(out, b.item(st.Item, i))
		case *ast.ExprStmt:
			en := b.node("Expr", st.ID, b.in.expr(st.X), st.Span)
			en.Children = b.nested(st.X)
			out = append(out, en)
		}
	}
	if blk.Tail != nil {
		tn := b.node("Tail", blk.Tail.NodeID(), b.in.expr(blk.Tail), blk.Tail.Loc())
		tn.Children = b.nested(blk.Tail)
		out = append(out, tn)
	}
	return out
}

// nested expands blocks and closure bodies that expr elides.
func (b astBuilder) nested(e ast.Expr) []ASTNodeOutput {
	switch e := e.(type) {
	case *ast.Block:
		return b.stmts(e)
	case *ast.ClosureExpr:
		if blk, ok := e.Body.(*ast.Block); ok {
			return []ASTNodeOutput{b.body(blk)}
		}
		return []ASTNodeOutput{b.leaf("Body", b.in.expr(e.Body))}
	}
	return nil
}

func formatItemKind(it ast.Item) string {
	switch it := it.(type) {
	case *ast.FnItem:
		return "fn"
	case *ast.StructItem:
		return "struct"
	case *ast.EnumItem:
		return "enum"
	case *ast.TypeAliasItem:
		return "type"
	case *ast.TraitItem:
		return "trait"
	case *ast.ImplItem:
		return "impl"
	case *ast.ModItem:
		return "mod"
	case *ast.MacroItem:
		return "macro!"
	case *ast.ForeignModItem:
		if it.ABI != "" {
			return fmt.Sprintf("extern %q", it.ABI)
		}
		return "extern"
	case *ast.StaticItem:
		if it.Mut {
			return "static mut"
		}
		return "static"
	case *ast.ConstItem:
		return "const"
	default:
		return "<unknown>"
	}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
