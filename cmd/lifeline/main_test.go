package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"lifeline/internal/driver"
	"lifeline/internal/project"
	"lifeline/internal/trace"
)

// newTestCommand returns a child of a fresh root carrying the persistent
// flags, with the local flags resolve and diag declare.
func newTestCommand() (root, child *cobra.Command) {
	root = &cobra.Command{Use: "lifeline"}
	addPersistentFlags(root)
	child = &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().String("format", "", "")
	child.Flags().Int("jobs", 0, "")
	root.AddCommand(child)
	child.SetContext(context.Background())
	return root, child
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn, true) || shouldUseTUI(uiModeOff, false) {
		t.Errorf("explicit modes must win")
	}
}

func TestSettingsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, project.ConfigName), `
[check]
max_diagnostics = 5
jobs = 2
[traits]
prelude = ["Marker"]
[output]
format = "short"
`)
	root, child := newTestCommand()
	if err := root.PersistentFlags().Set("max-diagnostics", "7"); err != nil {
		t.Fatal(err)
	}
	if err := root.PersistentFlags().Set("color", "off"); err != nil {
		t.Fatal(err)
	}

	st, err := readSettings(child, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if st.ConfigPath != filepath.Join(dir, project.ConfigName) {
		t.Errorf("ConfigPath = %q", st.ConfigPath)
	}
	if st.Color {
		t.Errorf("--color=off ignored")
	}

	opts, err := st.driverOptions(child)
	if err != nil {
		t.Fatal(err)
	}
	want := driver.Options{MaxDiagnostics: 7, Jobs: 2, PreludeTraits: []string{"Marker"}}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}

	if err := child.Flags().Set("jobs", "3"); err != nil {
		t.Fatal(err)
	}
	if opts, _ = st.driverOptions(child); opts.Jobs != 3 {
		t.Errorf("--jobs not applied: %d", opts.Jobs)
	}

	if f, _ := st.format(child, "pretty", "json", "short"); f != "short" {
		t.Errorf("format = %q, want the configured short", f)
	}
	if f, _ := st.format(child, "pretty", "json"); f != "pretty" {
		t.Errorf("format = %q, want pretty when short is not allowed", f)
	}
	if err := child.Flags().Set("format", "xml"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.format(child, "pretty", "json"); err == nil {
		t.Errorf("expected an error for --format xml")
	}
}

func TestSettingsRejectBadColor(t *testing.T) {
	root, child := newTestCommand()
	if err := root.PersistentFlags().Set("color", "purple"); err != nil {
		t.Fatal(err)
	}
	if _, err := readSettings(child, []string{t.TempDir()}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSettingsExplicitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.toml")
	writeFile(t, path, "[check]\nmax_diagnostics = -1\n")
	root, child := newTestCommand()
	if err := root.PersistentFlags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if _, err := readSettings(child, nil); err == nil {
		t.Fatal("expected the invalid config to be rejected")
	}
}

func TestSetupTracing(t *testing.T) {
	cli = settings{Config: project.Default()}
	root, child := newTestCommand()
	cleanup, err := setupTracing(child)
	if err != nil {
		t.Fatal(err)
	}
	cleanup()
	if trace.FromContext(child.Context()) != trace.Nop {
		t.Errorf("tracing should be off by default")
	}

	root, child = newTestCommand()
	if err := root.PersistentFlags().Set("trace-level", "debug"); err != nil {
		t.Fatal(err)
	}
	cleanup, err = setupTracing(child)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	ring := trace.FindRing(trace.FromContext(child.Context()))
	if ring == nil {
		t.Fatal("ring mode should install a ring tracer")
	}
	if len(ring.Snapshot()) == 0 {
		t.Errorf("the command point event was not recorded")
	}
}

func TestSetupTracingUsesConfigLevel(t *testing.T) {
	cli = settings{Config: project.Default()}
	cli.Config.Trace.Level = "phase"
	defer func() { cli = settings{} }()
	_, child := newTestCommand()
	cleanup, err := setupTracing(child)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if got := trace.FromContext(child.Context()).Level(); got != trace.LevelPhase {
		t.Errorf("level = %v, want phase", got)
	}
}

func resolveFixture(t *testing.T, src string) []*driver.FileResult {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.lf")
	writeFile(t, path, src)
	r, err := collect(context.Background(), path, driver.Options{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if r.IsDir || len(r.Files) != 1 {
		t.Fatalf("collect returned %d files, dir=%v", len(r.Files), r.IsDir)
	}
	return r.Files
}

func TestWriteTables(t *testing.T) {
	files := resolveFixture(t, "fn f<'a>(x: &'a u8, y: &'b u8) {}\n")

	var pretty bytes.Buffer
	if err := writeTables(&pretty, files, "pretty", false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), "'a") || !strings.Contains(pretty.String(), "late(^1)") {
		t.Errorf("pretty table:\n%s", pretty.String())
	}

	var raw bytes.Buffer
	if err := writeTables(&raw, files, "json", false); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Files []struct {
			Errors  int `json:"errors"`
			Regions []struct {
				Name string `json:"name"`
			} `json:"regions"`
		} `json:"files"`
	}
	if err := json.Unmarshal(raw.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, raw.String())
	}
	if len(decoded.Files) != 1 || decoded.Files[0].Errors != 1 || len(decoded.Files[0].Regions) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteDiagnostics(t *testing.T) {
	files := resolveFixture(t, "fn f(x: &'b u8) {}\n")
	for _, format := range []string{"pretty", "short", "json"} {
		var buf bytes.Buffer
		if err := writeDiagnostics(&buf, files, format, false); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(buf.String(), "LFT5001") {
			t.Errorf("%s output lacks LFT5001:\n%s", format, buf.String())
		}
	}
	if err := writeDiagnostics(&bytes.Buffer{}, files, "sarif", false); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.lf"), "fn a<'x>(v: &'x u8) {}\n")
	writeFile(t, filepath.Join(dir, "sub", "b.lf"), "fn b(v: &'y u8) {}\n")
	r, err := collect(context.Background(), dir, driver.Options{Jobs: 2}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsDir || len(r.Files) != 2 || !r.hasErrors() {
		t.Fatalf("collect = %+v", r)
	}
	var buf bytes.Buffer
	printSummary(&buf, r)
	if got := buf.String(); got != "2 files checked, 1 with errors (1 errors)\n" {
		t.Errorf("summary = %q", got)
	}
}

func TestInspectExport(t *testing.T) {
	files := resolveFixture(t, "fn f<'a>(x: &'a u8) -> &'static u8 { x }\n")
	out := filepath.Join(t.TempDir(), "main.lfr")
	if err := driver.Export(out, files[0]); err != nil {
		t.Fatal(err)
	}

	cli = settings{Config: project.Default()}
	defer func() { cli = settings{} }()
	var buf bytes.Buffer
	inspectCmd.SetOut(&buf)
	defer inspectCmd.SetOut(nil)
	if err := runInspect(inspectCmd, []string{out}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{"# " + files[0].Path, "prelude [", "'a", "'static"} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, got)
		}
	}
}
