package lifetimes_test

import (
	"fmt"
	"strings"
	"testing"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/lifetimes"
	"lifeline/internal/parser"
	"lifeline/internal/source"
	"lifeline/internal/symbols"
)

type run struct {
	fs    *source.FileSet
	file  *ast.File
	res   *lifetimes.Result
	err   error
	diags []diag.Diagnostic
}

func resolveSource(t *testing.T, src string, opts lifetimes.Options) run {
	t.Helper()
	fs := source.NewFileSet()
	pbag := diag.NewBag(64)
	pres, _ := parser.ParseSource(fs, "test.lf", []byte(src), nil, parser.Options{Reporter: diag.BagReporter{Bag: pbag}})
	if pbag.HasErrors() {
		t.Fatalf("parse errors:\n%s", diag.FormatShort(pbag.Items(), fs, true))
	}
	defs := symbols.Resolve(pres.File, symbols.Options{})

	bag := diag.NewBag(64)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res, err := lifetimes.Resolve(pres.File, defs, opts)
	return run{fs: fs, file: pres.File, res: res, err: err, diags: bag.Items()}
}

func resolveClean(t *testing.T, src string) run {
	t.Helper()
	r := resolveSource(t, src, lifetimes.Options{})
	if r.err != nil {
		t.Fatalf("unexpected failure: %v\n%s", r.err, diagnosticsSummary(r.diags))
	}
	return r
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// lifetimeNodes returns every lifetime occurrence in source order with its
// name. Declarations are included; they never appear in a region table.
func lifetimeNodes(f *ast.File) ([]ast.NodeID, map[ast.NodeID]string) {
	var order []ast.NodeID
	names := map[ast.NodeID]string{}
	ast.Inspect(f, func(n ast.Node) bool {
		if lt, ok := n.(*ast.Lifetime); ok {
			order = append(order, lt.ID)
			names[lt.ID] = f.Name(lt.Name)
		}
		return true
	})
	return order, names
}

// entries renders the table in source order, one "'name region" string
// per resolved reference, with declarations shown by name.
func (r run) entries() []string {
	order, names := lifetimeNodes(r.file)
	var out []string
	for _, id := range order {
		reg, ok := r.res.Regions[id]
		if !ok {
			continue
		}
		out = append(out, names[id]+" "+render(reg, names))
	}
	return out
}

func render(reg lifetimes.Region, names map[ast.NodeID]string) string {
	switch reg.Kind {
	case lifetimes.RegionStatic:
		return "static"
	case lifetimes.RegionEarlyBound:
		return fmt.Sprintf("early(%s, %d, %s)", reg.Space, reg.Index, names[reg.Decl])
	case lifetimes.RegionLateBound:
		return fmt.Sprintf("late(%d, %s)", reg.Depth.Depth(), names[reg.Decl])
	case lifetimes.RegionFree:
		return fmt.Sprintf("free(%s)", names[reg.Decl])
	}
	return "?"
}

// refsNamed returns the ids of resolved or unresolved references named
// name, skipping declarations.
func refsNamed(f *ast.File, name string) []ast.NodeID {
	decls := map[ast.NodeID]bool{}
	for _, d := range allDecls(f) {
		decls[d.Lifetime.ID] = true
	}
	order, names := lifetimeNodes(f)
	var out []ast.NodeID
	for _, id := range order {
		if names[id] == name && !decls[id] {
			out = append(out, id)
		}
	}
	return out
}

// allDecls collects every lifetime declaration of the file in source order.
func allDecls(f *ast.File) []*ast.LifetimeDef {
	var out []*ast.LifetimeDef
	add := func(g *ast.Generics) {
		if g != nil {
			out = append(out, g.Lifetimes...)
		}
	}
	ast.Inspect(f, func(n ast.Node) bool {
		switch n := n.(type) {
		case ast.Item:
			add(ast.ItemGenerics(n))
		case *ast.Method:
			add(n.Generics)
		case *ast.ForeignFn:
			add(n.Generics)
		case *ast.TraitBound:
			out = append(out, n.BoundLifetimes...)
		case *ast.BareFnType:
			out = append(out, n.Lifetimes...)
		case *ast.ClosureType:
			out = append(out, n.Lifetimes...)
		}
		return true
	})
	return out
}
