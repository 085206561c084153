package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lifeline/internal/diag"
	"lifeline/internal/source"
)

func duplicateBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/tmp/project/dup.lf", []byte("fn f<'a,\n     'a>() {}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LftDuplicateName, source.Span{File: fileID, Start: 14, End: 16}, "lifetime name `'a` declared twice in the same scope").
		WithNote(source.Span{File: fileID, Start: 5, End: 7}, "first declared here"))
	return bag, fs
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := duplicateBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	want := Report{
		Diagnostics: []Entry{{
			Severity: "ERROR",
			Code:     "LFT5003",
			Message:  "lifetime name `'a` declared twice in the same scope",
			Location: Location{File: "dup.lf", Start: 14, End: 16, From: &Position{2, 6}, To: &Position{2, 8}},
			Notes: []Related{{
				Message:  "first declared here",
				Location: Location{File: "dup.lf", Start: 5, End: 7, From: &Position{1, 6}, To: &Position{1, 8}},
			}},
		}},
		Count:  1,
		Errors: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWithoutPositionsAndNotes(t *testing.T) {
	bag, fs := duplicateBag(t)

	d := BuildReport(bag, fs, JSONOpts{PathMode: PathModeAbsolute}).Diagnostics[0]
	if d.Location.From != nil || d.Location.To != nil {
		t.Errorf("positions included: %+v", d.Location)
	}
	if d.Notes != nil {
		t.Errorf("notes included: %+v", d.Notes)
	}
	if d.Location.File != "/tmp/project/dup.lf" {
		t.Errorf("file = %q", d.Location.File)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.lf", []byte("fn f(a: &'x u8, b: &'y u8, c: &'z u8) {}\n"))
	bag := diag.NewBag(10)
	for _, start := range []uint32{9, 20, 31} {
		bag.Add(diag.NewError(diag.LftUndeclared, source.Span{File: fileID, Start: start, End: start + 2}, "use of undeclared lifetime name"))
	}

	out := BuildReport(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Errors != 2 || !out.Truncated {
		t.Errorf("count/errors/truncated = %d/%d/%v", out.Count, out.Errors, out.Truncated)
	}
}

func TestJSONLoadErrorWithoutFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: boom"))

	loc := BuildReport(bag, fs, JSONOpts{IncludePositions: true}).Diagnostics[0].Location
	if loc.File != "" || loc.From != nil {
		t.Errorf("location = %+v", loc)
	}
}

func TestJSONEmptyBagEncodesArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(1), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"diagnostics": []`)) {
		t.Errorf("empty report = %s", buf.String())
	}
}
