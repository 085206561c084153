package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"lifeline/internal/diag"
	"lifeline/internal/lexer"
	"lifeline/internal/source"
	"lifeline/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lf", []byte(src))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexSignature(t *testing.T) {
	toks, bag := lexAll(t, "fn f<'a, T: Tr<'a>>(x: &'a mut T) -> Self::Out { x }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwFn, token.Ident, token.Lt, token.Lifetime, token.Comma, token.Ident, token.Colon,
		token.Ident, token.Lt, token.Lifetime, token.Gt, token.Gt,
		token.LParen, token.Ident, token.Colon, token.Amp, token.Lifetime, token.KwMut, token.Ident, token.RParen,
		token.Arrow, token.KwSelfType, token.ColonColon, token.Ident,
		token.LBrace, token.Ident, token.RBrace, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[3].Text != "'a" {
		t.Fatalf("lifetime text = %q, want 'a", toks[3].Text)
	}
}

func TestLifetimeVersusChar(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
		text string
	}{
		{"'a", token.Lifetime, "'a"},
		{"'static", token.Lifetime, "'static"},
		{"'a'", token.CharLit, "'a'"},
		{"'\\n'", token.CharLit, "'\\n'"},
		{"'1'", token.CharLit, "'1'"},
		{"'long_name ", token.Lifetime, "'long_name"},
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, tc.src)
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics: %v", tc.src, bag.Items())
		}
		if toks[0].Kind != tc.kind || toks[0].Text != tc.text {
			t.Fatalf("%q: got %v %q, want %v %q", tc.src, toks[0].Kind, toks[0].Text, tc.kind, tc.text)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks, bag := lexAll(t, "a // line\n/* outer /* inner */ still */ b")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if diff := cmp.Diff([]token.Kind{token.Ident, token.Ident, token.EOF}, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestNFCIdentifiers(t *testing.T) {
	// "é" precomposed vs "e" + combining acute
	toks, _ := lexAll(t, "caf\u00e9 cafe\u0301")
	if toks[0].Text != toks[1].Text {
		t.Fatalf("identifiers not normalised: %q vs %q", toks[0].Text, toks[1].Text)
	}
}

func TestNumbers(t *testing.T) {
	toks, bag := lexAll(t, "0 1_000 0xff 0b10 10u8")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, tok := range toks[:5] {
		if tok.Kind != token.IntLit {
			t.Fatalf("%q lexed as %v", tok.Text, tok.Kind)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"\"open", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"$", diag.LexUnknownChar},
		{"0x", diag.LexBadNumber},
		{"'", diag.LexBadLifetime},
		{"'\\n", diag.LexUnterminatedChar},
	}
	for _, tc := range cases {
		_, bag := lexAll(t, tc.src)
		items := bag.Items()
		if len(items) != 1 || items[0].Code != tc.code {
			t.Fatalf("%q: got %v, want one %s", tc.src, items, tc.code.ID())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.lf", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("want EOF, got %v", n.Kind)
	}
}
