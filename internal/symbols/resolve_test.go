package symbols_test

import (
	"testing"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/parser"
	"lifeline/internal/source"
	"lifeline/internal/symbols"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	bag := diag.NewBag(32)
	res, _ := parser.ParseSource(source.NewFileSet(), "sym.lf", []byte(src), nil, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return res.File
}

// pathKinds maps the last segment text of every PathType to its resolved kind.
func pathKinds(f *ast.File, m *symbols.DefMap) map[string]symbols.DefKind {
	out := map[string]symbols.DefKind{}
	ast.Inspect(f, func(n ast.Node) bool {
		if pt, ok := n.(*ast.PathType); ok {
			var text string
			for i, seg := range pt.Path.Segments {
				if i > 0 {
					text += "::"
				}
				text += f.Name(seg.Name)
			}
			if d, ok := m.Def(pt.ID); ok {
				out[text] = d.Kind
			}
		}
		return true
	})
	return out
}

func TestResolveTypePaths(t *testing.T) {
	f := parse(t, `
trait Reader<'a> { type Item; fn item(&self) -> Self::Item; }
struct Buf<'a>(&'a u8);
enum E { A }
type Alias = Buf<'static>;
mod inner { pub trait Deep {} pub struct S; }
fn f<T: Reader<'static>>(a: &Reader, b: &Clone, c: T, d: inner::Deep, e: self::inner::S, g: Missing, h: T::Item, i: Alias, j: E, k: u8) {}
`)
	m := symbols.Resolve(f, symbols.Options{})
	got := pathKinds(f, m)
	want := map[string]symbols.DefKind{
		"Reader":         symbols.DefTrait,
		"Clone":          symbols.DefTrait,
		"T":              symbols.DefTyParam,
		"inner::Deep":    symbols.DefTrait,
		"self::inner::S": symbols.DefStruct,
		"Missing":        symbols.DefUnresolved,
		"T::Item":        symbols.DefProjection,
		"Alias":          symbols.DefAlias,
		"E":              symbols.DefEnum,
		"u8":             symbols.DefPrimitive,
		"Self::Item":     symbols.DefProjection,
		"Buf":            symbols.DefStruct,
	}
	for text, kind := range want {
		if got[text] != kind {
			t.Fatalf("%s resolved to %v, want %v (all: %v)", text, got[text], kind, got)
		}
	}
}

func TestIsTraitOnBoundsAndImpls(t *testing.T) {
	f := parse(t, `
trait Tr {}
struct S;
impl Tr for S {}
fn g<T: Tr + Send>() {}
`)
	m := symbols.Resolve(f, symbols.Options{})
	impl := f.Items[2].(*ast.ImplItem)
	if !m.IsTrait(impl.Trait.ID) {
		t.Fatalf("impl trait reference not a trait")
	}
	if m.IsTrait(impl.SelfTy.NodeID()) {
		t.Fatalf("impl self type resolved as trait")
	}
	tp := f.Items[3].(*ast.FnItem).Generics.TyParams[0]
	for _, b := range tp.Bounds {
		if !m.IsTrait(b.NodeID()) {
			t.Fatalf("bound %d not a trait", b.NodeID())
		}
	}
}

func TestBlockItemsAndShadowing(t *testing.T) {
	f := parse(t, `
struct Shadow;
fn f() {
    let x: Shadow = make();
    trait Shadow {}
    fn g(y: &Shadow) {}
}
fn h(z: Shadow) {}
`)
	m := symbols.Resolve(f, symbols.Options{})
	var kinds []symbols.DefKind
	ast.Inspect(f, func(n ast.Node) bool {
		if pt, ok := n.(*ast.PathType); ok {
			d, _ := m.Def(pt.ID)
			kinds = append(kinds, d.Kind)
		}
		return true
	})
	want := []symbols.DefKind{symbols.DefTrait, symbols.DefTrait, symbols.DefStruct}
	if len(kinds) != len(want) {
		t.Fatalf("got %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("path %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestSuperAndCrate(t *testing.T) {
	f := parse(t, `
trait Top {}
mod a { mod b { fn f(x: &super::super::Top, y: &crate::Top, z: &Top) {} } }
`)
	m := symbols.Resolve(f, symbols.Options{})
	got := pathKinds(f, m)
	if got["super::super::Top"] != symbols.DefTrait || got["crate::Top"] != symbols.DefTrait {
		t.Fatalf("got %v", got)
	}
	// modules do not inherit names from the enclosing module
	if got["Top"] != symbols.DefUnresolved {
		t.Fatalf("bare Top inside nested module resolved to %v", got["Top"])
	}
}

func TestCustomPrelude(t *testing.T) {
	f := parse(t, "fn f(a: &Send, b: &Magic) {}")
	m := symbols.Resolve(f, symbols.Options{PreludeTraits: []string{"Magic"}})
	got := pathKinds(f, m)
	if got["Send"] != symbols.DefUnresolved || got["Magic"] != symbols.DefTrait {
		t.Fatalf("got %v", got)
	}
}
