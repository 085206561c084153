package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lifeline/internal/diag"
	"lifeline/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn f(x: &'b u8) {}\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.lf", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LftUndeclared, source.Span{File: fileID, Start: 9, End: 11}, "use of undeclared lifetime name `'b`"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.lf"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.lf"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.lf:1:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LFT5001", "undeclared lifetime name"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.lf", expected: "test.lf"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.lf", expected: "file.lf:1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("fn f() {}\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 3, End: 4}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if output := buf.String(); !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettySnippetAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	src := "fn f<'a,\n     'a>() {}\n"
	fileID := fs.AddVirtual("dup.lf", []byte(src))

	first := source.Span{File: fileID, Start: 5, End: 7}
	second := source.Span{File: fileID, Start: 14, End: 16}
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LftDuplicateName, second, "lifetime name `'a` declared twice in the same scope").
		WithNote(first, "first declared here"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, Context: 1})
	want := strings.Join([]string{
		"dup.lf:2:6: ERROR LFT5003: lifetime name `'a` declared twice in the same scope",
		" 1 | fn f<'a,",
		" 2 |      'a>() {}",
		"   |      ^~",
		"  note: dup.lf:1:6: first declared here",
		" 1 | fn f<'a,",
		"   |      ^~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyCaretAfterTabsAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "\tlet 名: &'x u8 = y;\n"
	fileID := fs.AddVirtual("wide.lf", []byte(src))
	start := uint32(strings.Index(src, "'x"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LftUndeclared, source.Span{File: fileID, Start: start, End: start + 2}, "use of undeclared lifetime name `'x`"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	// таб сохраняется, иероглиф занимает две колонки
	if want := "   | \t" + strings.Repeat(" ", 9) + "^~"; lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyWidthClipsSource(t *testing.T) {
	fs := source.NewFileSet()
	src := "fn f(x: &'b u8, y: &'b u8, z: &'b u8, w: &'b u8) {}\n"
	fileID := fs.AddVirtual("long.lf", []byte(src))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LftUndeclared, source.Span{File: fileID, Start: 9, End: 11}, "use of undeclared lifetime name `'b`"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 20})
	if !strings.Contains(buf.String(), "fn f(x: &'b u8, y...") {
		t.Errorf("line not clipped:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("s.lf", []byte("fn f(x: &'b u8) {}\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LftUndeclared, source.Span{File: fileID, Start: 9, End: 11}, "use of undeclared lifetime name `'b`"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs); err != nil {
		t.Fatal(err)
	}
	want := "error LFT5001 s.lf:1:10 use of undeclared lifetime name `'b`\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := Short(&buf, diag.NewBag(1), fs); err != nil || buf.Len() != 0 {
		t.Errorf("empty bag wrote %q (err %v)", buf.String(), err)
	}
}
