package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lifeline/internal/driver"
)

func tableFor(t *testing.T, src string) RegionTable {
	t.Helper()
	res, err := driver.ResolveSource(context.Background(), "r.lf", []byte(src), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return RegionTable{Path: res.Path, Rows: driver.Rows(res)}
}

func TestRegionsPretty(t *testing.T) {
	tbl := tableFor(t, "fn f<'a, 'b, T: Tr<'b>>(x: &'a T) -> &'static u8 {\n    let y: &'a T = x;\n}\n")

	var buf bytes.Buffer
	if err := RegionsPretty(&buf, tbl, RegionOpts{}); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		got = append(got, strings.Join(strings.Fields(line), " "))
	}
	want := []string{
		"r.lf:1:20 'b early(FnSpace, 0) decl 1:10",
		"r.lf:1:29 'a late(^1) decl 1:6",
		"r.lf:1:39 'static static",
	}
	if len(got) != 4 {
		t.Fatalf("got %d rows:\n%s", len(got), buf.String())
	}
	if diff := cmp.Diff(want, got[:3]); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(got[3], "r.lf:2:13 'a free(block#") || !strings.HasSuffix(got[3], "decl 1:6") {
		t.Errorf("free row = %q", got[3])
	}
}

func TestRegionsPrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RegionsPretty(&buf, tableFor(t, "fn f() {}\n"), RegionOpts{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "r.lf: no lifetime references\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRegionsJSON(t *testing.T) {
	tables := []RegionTable{
		tableFor(t, "struct S<'s> { r: &'s u8 }\n"),
		{Path: "empty.lf"},
	}
	var buf bytes.Buffer
	if err := RegionsJSON(&buf, tables); err != nil {
		t.Fatal(err)
	}
	var out struct {
		Files []struct {
			Path    string           `json:"path"`
			Regions []map[string]any `json:"regions"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, buf.String())
	}
	if len(out.Files) != 2 || len(out.Files[0].Regions) != 1 || out.Files[1].Regions == nil {
		t.Fatalf("out = %+v", out)
	}
	r := out.Files[0].Regions[0]
	if r["kind"] != "early" || r["space"] != "TypeSpace" || r["name"] != "'s" {
		t.Errorf("row = %v", r)
	}
}
