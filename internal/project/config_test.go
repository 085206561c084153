package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), `
[check]
max_diagnostics = 7
jobs = 2
[traits]
prelude = ["Send", "Reader"]
[output]
format = "short"
`)
	src := filepath.Join(root, "src", "deep", "main.lf")
	writeFile(t, src, "fn main() {}\n")

	cfg, path, err := Discover(src)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != filepath.Join(root, ConfigName) {
		t.Errorf("path = %q", path)
	}
	want := Config{
		Check:  CheckConfig{MaxDiagnostics: 7, Jobs: 2},
		Traits: TraitsConfig{Prelude: []string{"Send", "Reader"}},
		Output: OutputConfig{Format: "short"},
		Trace:  TraceConfig{Level: "off"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	dir, ok, err := FindProjectRoot(filepath.Dir(src))
	if err != nil || !ok || dir != root {
		t.Errorf("FindProjectRoot = %q, %v, %v", dir, ok, err)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil || path != "" {
		t.Fatalf("Discover = %q, %v", path, err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyPreludeIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigName)
	writeFile(t, path, "[traits]\nprelude = []\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Traits.Prelude == nil || len(cfg.Traits.Prelude) != 0 {
		t.Errorf("prelude = %#v, want empty non-nil", cfg.Traits.Prelude)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"[check]\nmax_diagnostic = 3\n", "unknown keys: check.max_diagnostic"},
		{"[output]\nformat = \"xml\"\n", "[output].format must be one of"},
		{"[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"[check]\njobs = -1\n", "[check].jobs"},
		{"[check\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), ConfigName)
		writeFile(t, path, tt.body)
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("LoadConfig(%q) error = %v, want %q", tt.body, err, tt.want)
		}
	}
}

func TestDigestStrings(t *testing.T) {
	if DigestStrings("ab") == DigestStrings("a", "b") {
		t.Errorf("separator missing")
	}
	if Combine(DigestStrings("x")) == Combine(DigestStrings("x"), DigestStrings("y")) {
		t.Errorf("deps ignored")
	}
}

func TestDigestString(t *testing.T) {
	var d Digest
	d[0], d[7], d[8] = 0xab, 0x01, 0xff
	if got := d.String(); got != "ab00000000000001" {
		t.Errorf("String() = %q", got)
	}
}
