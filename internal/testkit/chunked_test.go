package testkit

import (
	"fmt"
	"strings"
	"testing"
)

type recorder struct{ msgs []string }

func (r *recorder) Errorf(format string, args ...any) {
	r.msgs = append(r.msgs, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func TestSplitChunksKeepsLineNumbers(t *testing.T) {
	text := "fn a() {}\n---\nfn b() {}\nfn c(x: &'a u8) {} // ### \"undeclared\"\n"
	rec := &recorder{}
	chunks := SplitChunks("t.lf", text, rec)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	if chunks[1].Line != 3 {
		t.Errorf("second chunk starts at line %d, want 3", chunks[1].Line)
	}
	if !strings.HasPrefix(chunks[1].Source, "\n\nfn b()") {
		t.Errorf("source not padded: %q", chunks[1].Source)
	}

	c := chunks[1]
	c.GotError(4, "use of undeclared lifetime name `'a`")
	c.Done()
	if len(rec.msgs) != 0 {
		t.Errorf("unexpected reports: %v", rec.msgs)
	}
}

func TestChunkReportsMismatches(t *testing.T) {
	rec := &recorder{}
	chunks := SplitChunks("t.lf", "x // ### \"one\" ### \"two\"\ny // ### \"three\"", rec)
	c := chunks[0]
	c.GotError(1, "one")
	c.GotError(1, "nope")
	c.GotError(5, "stray")
	c.Done()

	want := []string{
		`t.lf:1: error "nope" does not match pattern "two"`,
		`t.lf:5: unexpected error: stray`,
		`t.lf:2: expected error matching "three"`,
	}
	if strings.Join(rec.msgs, "\n") != strings.Join(want, "\n") {
		t.Errorf("reports:\n%s\nwant:\n%s", strings.Join(rec.msgs, "\n"), strings.Join(want, "\n"))
	}
}

func TestBadPatternIsReported(t *testing.T) {
	rec := &recorder{}
	SplitChunks("t.lf", "x // ### not-quoted", rec)
	if len(rec.msgs) != 1 || !strings.Contains(rec.msgs[0], "not a quoted regexp") {
		t.Errorf("reports = %v", rec.msgs)
	}
}
