package fuzztests

import (
	"context"
	"testing"

	"lifeline/internal/driver"
	"lifeline/internal/lifetimes"
)

// FuzzResolveLifetimes runs the whole pipeline and checks that every table
// entry is a reference the pass could have produced.
func FuzzResolveLifetimes(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		res, err := driver.ResolveSource(context.Background(), "fuzz.lf", input, driver.Options{MaxDiagnostics: 128})
		if err != nil {
			t.Fatalf("ResolveSource: %v", err)
		}
		if res.Err != nil && !res.HasErrors() {
			t.Fatalf("resolution failed without an error diagnostic: %v", res.Err)
		}
		for ref, reg := range res.Regions {
			if !ref.IsValid() {
				t.Fatalf("table keyed by an invalid node: %v", reg)
			}
			if reg.Kind != lifetimes.RegionStatic && !reg.Decl.IsValid() {
				t.Fatalf("%v region for node %d has no declaration", reg.Kind, ref)
			}
		}
		for _, row := range driver.Rows(res) {
			if _, err := row.Region(); err != nil {
				t.Fatalf("row %+v does not round-trip: %v", row, err)
			}
		}
	})
}
