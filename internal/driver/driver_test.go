package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func phaseNames(r *FileResult) []string {
	var names []string
	for _, p := range r.Timing.Phases {
		names = append(names, p.Name)
	}
	return names
}

func TestResolveSourceClean(t *testing.T) {
	res, err := ResolveSource(context.Background(), "clean.lf", []byte("fn f<'a>(x: &'a u8) {}\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() || res.Err != nil {
		t.Fatalf("unexpected errors: %v\n%s", res.Err, diag.FormatShort(res.Bag.Items(), res.FileSet, true))
	}
	if len(res.Regions) != 1 {
		t.Fatalf("regions = %v, want one entry", res.Regions)
	}
	if diff := cmp.Diff([]string{"parse", "symbols", "lifetimes"}, phaseNames(res)); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestResolveSourceLifetimeErrors(t *testing.T) {
	res, err := ResolveSource(context.Background(), "bad.lf", []byte("fn f(x: &'b u8) {}\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !Failed(res.Err) {
		t.Fatalf("Err = %v, want a resolution failure", res.Err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.LftUndeclared {
		t.Fatalf("diagnostics:\n%s", diag.FormatShort(items, res.FileSet, true))
	}
	if len(res.Regions) != 0 {
		t.Errorf("regions = %v, want none", res.Regions)
	}
}

func TestResolveSourceKeepsSyntaxErrors(t *testing.T) {
	res, err := ResolveSource(context.Background(), "syntax.lf", []byte("fn f<'a>(x: &'a u8 {}\nfn g<'b>(y: &'b u8) {}\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	var syntax bool
	for _, d := range res.Bag.Items() {
		syntax = syntax || d.Code.ID()[:3] == "SYN"
	}
	if !syntax {
		t.Errorf("no syntax diagnostic in:\n%s", diag.FormatShort(res.Bag.Items(), res.FileSet, false))
	}
	if res.Regions == nil {
		t.Error("lifetime pass did not run")
	}
}

func TestResolveFileMissing(t *testing.T) {
	_, err := ResolveFile(context.Background(), filepath.Join(t.TempDir(), "nope.lf"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNegativeMaxDiagnostics(t *testing.T) {
	_, err := ResolveSource(context.Background(), "x.lf", []byte("fn f() {}"), Options{MaxDiagnostics: -1})
	if err == nil {
		t.Fatal("expected an options error")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := ResolveSource(ctx, "x.lf", []byte("fn f() {}"), Options{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if res == nil || res.AST == nil {
		t.Fatal("parse result should survive cancellation")
	}
}

func TestPhaseObserver(t *testing.T) {
	var got []string
	opts := Options{Observer: func(ev PhaseEvent) {
		mark := "+"
		if ev.Status == PhaseEnd {
			mark = "-"
		}
		got = append(got, mark+ev.Name)
	}}
	if _, err := ResolveSource(context.Background(), "obs.lf", []byte("fn f() {}"), opts); err != nil {
		t.Fatal(err)
	}
	want := []string{"+parse", "-parse", "+symbols", "-symbols", "+lifetimes", "-lifetimes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("observer events (-want +got):\n%s", diff)
	}
}

func TestPreludeOverride(t *testing.T) {
	src := []byte("fn f<'a>(x: &'a u8) {}\n")
	res, err := ResolveSource(context.Background(), "p.lf", src, Options{PreludeTraits: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{}, res.Prelude); diff != "" {
		t.Errorf("prelude (-want +got):\n%s", diff)
	}
	def, err := ResolveSource(context.Background(), "p.lf", src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Prelude) == 0 {
		t.Error("default prelude is empty")
	}
}

func TestRowsPositions(t *testing.T) {
	res, err := ResolveSource(context.Background(), "rows.lf", []byte("fn f<'a>(x: &'a u8) -> &'static u8 { x }\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	rows := Rows(res)
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	late, static := rows[0], rows[1]
	if late.Name != "'a" || late.Kind != "late" || late.Depth != 1 {
		t.Errorf("late row = %+v", late)
	}
	if late.Line != 1 || late.Col != 14 || late.DeclLine != 1 || late.DeclCol != 6 {
		t.Errorf("late row positions = %+v", late)
	}
	if static.Name != "'static" || static.Kind != "static" || static.Decl != 0 {
		t.Errorf("static row = %+v", static)
	}
}

func TestRowRegionRoundTrip(t *testing.T) {
	src := "struct S<'s>(&'s u8);\n" +
		"fn f<'a, 'b, T: Tr<'b>>(x: &'a T, y: &'b u8) {\n" +
		"    let z: &'a u8 = y;\n" +
		"}\n" +
		"trait Tr<'t> {}\n"
	res, err := ResolveSource(context.Background(), "rt.lf", []byte(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[string]bool{}
	for _, row := range Rows(res) {
		kinds[row.Kind] = true
		got, err := row.Region()
		if err != nil {
			t.Fatalf("row %+v: %v", row, err)
		}
		want := res.Regions[ast.NodeID(row.Ref)]
		if got.String() != want.String() {
			t.Errorf("row %+v: region %s, want %s", row, got, want)
		}
	}
	for _, k := range []string{"early", "late", "free"} {
		if !kinds[k] {
			t.Errorf("no %s row in %v", k, kinds)
		}
	}
}

func TestRowRegionRejectsGarbage(t *testing.T) {
	for _, row := range []RegionRow{
		{Kind: "late"},
		{Kind: "early", Space: "NoSpace"},
		{Kind: "weird"},
	} {
		if _, err := row.Region(); err == nil {
			t.Errorf("row %+v: expected an error", row)
		}
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]Status{}
	for _, ev := range s.events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			out[ev.File] = ev.Status
		}
	}
	return out
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.lf")
	b := filepath.Join(dir, "b.lf")
	c := filepath.Join(dir, "sub", "c.lf")
	writeFile(t, b, "fn g(x: &'nope u8) {}\n")
	writeFile(t, a, "fn f<'a>(x: &'a u8) {}\n")
	writeFile(t, c, "struct S<'s> { r: &'s u8 }\n")
	writeFile(t, filepath.Join(dir, "README.md"), "not source\n")

	sink := &recordSink{}
	out, err := ResolveDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, f := range out.Files {
		paths = append(paths, f.Path)
	}
	if diff := cmp.Diff([]string{a, b, c}, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	if !out.HasErrors() {
		t.Error("b.lf should fail")
	}
	if !Failed(out.Files[1].Err) || out.Files[0].Err != nil || out.Files[2].Err != nil {
		t.Errorf("errors = %v, %v, %v", out.Files[0].Err, out.Files[1].Err, out.Files[2].Err)
	}
	want := map[string]Status{a: StatusDone, b: StatusError, c: StatusDone}
	if diff := cmp.Diff(want, sink.final()); diff != "" {
		t.Errorf("final progress (-want +got):\n%s", diff)
	}
	if len(out.Timing.Phases) != 3 {
		t.Errorf("merged timing = %+v", out.Timing)
	}
}

func TestResolveDirEmpty(t *testing.T) {
	out, err := ResolveDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Files) != 0 || out.HasErrors() {
		t.Errorf("out = %+v", out)
	}
}

func TestResolveDirIsolatesFiles(t *testing.T) {
	dir := t.TempDir()
	// одинаковый текст: таблицы должны совпасть, общих таблиц строк нет
	for _, name := range []string{"x.lf", "y.lf"} {
		writeFile(t, filepath.Join(dir, name), "fn f<'a, 'b: 'a>(x: &'a u8, y: &'b u8) {}\n")
	}
	out, err := ResolveDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Rows(out.Files[0]), Rows(out.Files[1])); diff != "" {
		t.Errorf("tables differ (-x +y):\n%s", diff)
	}
	if out.Files[0].AST.Strings == out.Files[1].AST.Strings {
		t.Error("files share an interner")
	}
}

func TestParseAndTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.lf")
	writeFile(t, path, "fn f<'a>() {}\n")

	toks, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(toks.Tokens); n < 8 {
		t.Errorf("got %d tokens", n)
	}
	parsed, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Bag.HasErrors() || len(parsed.AST.Items) != 1 {
		t.Errorf("parse: %d items, %d diagnostics", len(parsed.AST.Items), parsed.Bag.Len())
	}
}
