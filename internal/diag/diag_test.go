package diag

import (
	"testing"

	"lifeline/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("sample.lf", []byte("fn f<'a>() {}\nfn g(x: &'b u8) {}\n"))

	diags := []Diagnostic{
		NewError(LftUndeclared, source.Span{File: file, Start: 23, End: 25}, "use of undeclared lifetime name `'b`"),
		NewError(LftDuplicateName, source.Span{File: file, Start: 5, End: 7}, "dup\nline").
			WithNote(source.Span{File: file, Start: 5, End: 7}, "first declared here"),
	}

	want := "error LFT5003 sample.lf:1:6 dup line\n" +
		"note LFT5003 sample.lf:1:6 first declared here\n" +
		"error LFT5001 sample.lf:2:10 use of undeclared lifetime name `'b`"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	r := &CountingReporter{Next: BagReporter{Bag: bag}}
	for range 3 {
		r.Report(LftUndeclared, SevError, source.Span{}, "x", nil)
	}
	r.Report(SynInfo, SevWarning, source.Span{}, "w", nil)

	if bag.Len() != 2 {
		t.Fatalf("bag limit: got %d, want 2", bag.Len())
	}
	if r.Errors != 3 {
		t.Fatalf("counting reporter: got %d errors, want 3", r.Errors)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected errors in bag")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 1, End: 3}
	r.Report(LftUndeclared, SevError, sp, "same", nil)
	r.Report(LftUndeclared, SevError, sp, "same", nil)
	r.Report(LftUndeclared, SevError, sp, "other", nil)
	if bag.Len() != 2 {
		t.Fatalf("dedup: got %d diagnostics, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		LftUndeclared:      "LFT5001",
		PrjConfigInvalid:   "PRJ6001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("code %d: got %s, want %s", code, got, want)
		}
	}
}
