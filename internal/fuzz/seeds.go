package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

// languageSeeds cover every construct the walker has a case for.
var languageSeeds = []string{
	"",
	"fn f<'a, 'b: 'a>(x: &'a u8, y: &'b u8) -> &'static u8 { x }\n",
	"struct S<'a, T: 'a>(&'a T);\nenum E<'a> { A(&'a u8), B { x: &'a u8 } }\n",
	"trait Tr<'t> { type Out: 't; fn m(&'t self) -> &'t u8; }\n",
	"impl<'a> Tr<'a> for S<'a> { fn m(&self) -> &'a u8 { self.0 } }\n",
	"fn h<F>(f: F) where F: for<'x> Fn(&'x u8) -> &'x u8 {}\n",
	"type Cb = for<'a> fn(&'a u8) -> &'a u8;\n",
	"fn c() { let k: for<'a> |&'a u8|: 'static -> u8 = g::<'static>; }\n",
	"fn outer<'a>(x: &'a u8) { fn inner(y: &'a u8) {} let z: &'a u8 = x; }\n",
	"extern \"C\" { fn g<'a>(x: &'a u8); static E: &'static u8; }\n",
	"mod m { pub fn f<'a>(x: &'a u8) {} }\nmacro_rules! { 'a }\n",
	"fn f<'a, 'a, 'static>() where 'a: 'b {}\n",
	"fn f(\n", "fn f<'\n", "impl<'a> for {\n", "/* unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every chunk of the lifetimes testdata files.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "lifetimes", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lf" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		for _, chunk := range strings.Split(string(src), "\n---\n") {
			f.Add(clampSeed([]byte(chunk)))
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
