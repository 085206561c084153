package repl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
)

// scripted feeds lines one by one; nil entries stand for an interrupt.
type scripted struct {
	lines   []*string
	prompts []string
}

func lines(ls ...string) *scripted {
	s := &scripted{}
	for i := range ls {
		if ls[i] == "^C" {
			s.lines = append(s.lines, nil)
			continue
		}
		s.lines = append(s.lines, &ls[i])
	}
	return s
}

func (s *scripted) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	if l == nil {
		return "", readline.ErrInterrupt
	}
	return *l, nil
}

func (s *scripted) SetPrompt(p string) { s.prompts = append(s.prompts, p) }

func runScript(t *testing.T, in *scripted) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	loop(in, Config{Out: &out, Err: &errOut})
	return out.String(), errOut.String()
}

func TestChunksAreIndependent(t *testing.T) {
	out, errOut := runScript(t, lines(
		"fn f<'a>(x: &'a u8)",
		"    -> &'a u8 { x }",
		"",
		"fn g(y: &'a u8) {}",
		"",
	))
	if !strings.Contains(out, "<repl-1>:1:14") || !strings.Contains(out, "late(^1)") {
		t.Errorf("first chunk table missing:\n%s", out)
	}
	// 'a из первого чанка не виден во втором
	if !strings.Contains(errOut, "<repl-2>:1:10: ERROR LFT5001: use of undeclared lifetime name `'a`") {
		t.Errorf("second chunk diagnostics:\n%s", errOut)
	}
	if !strings.Contains(out, "<repl-2>: no lifetime references") {
		t.Errorf("second chunk table:\n%s", out)
	}
}

func TestPrompts(t *testing.T) {
	in := lines("struct S<'s> {", "  r: &'s u8 }", "")
	runScript(t, in)
	want := []string{prompt, contPrompt, contPrompt, prompt}
	if got := in.prompts; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("prompts = %q, want %q", got, want)
	}
}

func TestEOFResolvesPendingChunk(t *testing.T) {
	out, _ := runScript(t, lines("static S: &'static u8 = 0;"))
	if !strings.Contains(out, "'static") {
		t.Errorf("pending chunk not resolved:\n%s", out)
	}
}

func TestInterruptDropsChunk(t *testing.T) {
	out, errOut := runScript(t, lines("fn f(x: &'q u8) {}", "^C", "fn g<'a>(x: &'a u8) {}", ""))
	if strings.Contains(errOut, "'q") {
		t.Errorf("interrupted chunk was resolved:\n%s", errOut)
	}
	if !strings.Contains(out, readline.ErrInterrupt.Error()) || !strings.Contains(out, "late(^1)") {
		t.Errorf("output:\n%s", out)
	}
}

func TestQuit(t *testing.T) {
	out, errOut := runScript(t, lines(":quit", "", "fn f(x: &'q u8) {}", ""))
	if out != "" || errOut != "" {
		t.Errorf("loop continued after :quit: %q %q", out, errOut)
	}
}
