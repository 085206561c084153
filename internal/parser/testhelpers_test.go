package parser

import (
	"fmt"
	"strings"
	"testing"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	res, _ := ParseSource(source.NewFileSet(), "test.lf", []byte(src), nil, Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.File, bag
}

func parseClean(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return file
}

func name(f *ast.File, id source.StringID) string {
	return f.Name(id)
}

func newFS() *source.FileSet { return source.NewFileSet() }
