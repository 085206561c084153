package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.lf", []byte("fn f() {}\nstruct S<'a>;\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{9, LineCol{1, 10}}, // the newline itself belongs to line 1
		{10, LineCol{2, 1}},
		{19, LineCol{2, 10}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Fatalf("offset %d: got %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.lf", []byte("one\ntwo\nthree")))
	for n, want := range map[uint32]string{1: "one", 2: "two", 3: "three", 4: "", 0: ""} {
		if got := f.GetLine(n); got != want {
			t.Fatalf("line %d: got %q, want %q", n, got, want)
		}
	}
}

func TestAddVirtualFoldsCRLF(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("crlf.lf", []byte("a\r\nb\r\n")))
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("'a")
	if again := in.Intern("'a"); again != a {
		t.Fatalf("expected stable id, got %d and %d", a, again)
	}
	if s := in.MustLookup(a); s != "'a" {
		t.Fatalf("lookup: got %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("unexpected lookup success")
	}
	if in.Len() != 2 {
		t.Fatalf("len: got %d, want 2", in.Len())
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("cover: got %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 20}); got != a {
		t.Fatalf("cross-file cover must not merge, got %v", got)
	}
	if !a.Cover(b).Contains(b) {
		t.Fatalf("cover must contain operand")
	}
}
