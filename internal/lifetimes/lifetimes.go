// Package lifetimes resolves every lifetime reference in a parsed file to the
// declaration that introduces it.
//
// Lifetimes declared by a fn-like generics clause are split into early-bound
// ones (named by a type-parameter bound, a where bound or an outlives-bound
// of the clause) and late-bound ones. Early-bound references resolve to a
// slot of a parameter space, late-bound ones to a binder depth, and
// references made from inside a block to a free region tied to that block.
// 'static resolves to itself anywhere.
//
// The pass never stops at the first problem: every undeclared, reserved or
// duplicated name in the file is reported, and Resolve fails afterwards if
// any report was made.
package lifetimes

import (
	"errors"
	"fmt"
	"strconv"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/trace"
)

// ErrResolveFailed is wrapped by the error Resolve returns when any
// diagnostic was reported.
var ErrResolveFailed = errors.New("lifetime resolution failed")

// StaticName is the reserved lifetime.
const StaticName = "'static"

// TraitOracle answers whether the type path with the given node id names a
// trait. symbols.DefMap implements it.
type TraitOracle interface {
	IsTrait(id ast.NodeID) bool
}

type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// ParentSpan nests the pass span under a driver span.
	ParentSpan uint64
}

type Result struct {
	Regions NamedRegionMap
	// Errors is the number of error diagnostics the pass reported.
	Errors int
}

// Resolve runs the pass over file. traits may be nil, in which case no
// type path is treated as a trait. The returned Result is never nil; on
// failure it holds whatever could be resolved.
func Resolve(file *ast.File, traits TraitOracle, opts Options) (*Result, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopePass, "resolve_lifetimes", opts.ParentSpan)

	rep := &diag.CountingReporter{Next: opts.Reporter}
	w := &walker{
		regions: make(NamedRegionMap),
		rep:     rep,
		traits:  traits,
		strs:    file.Strings,
		static:  file.Strings.Intern(StaticName),
		tracer:  tracer,
		parent:  span.ID(),
		debug:   tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeNode),
	}
	w.file(file)

	res := &Result{Regions: w.regions, Errors: rep.Errors}
	span.WithExtra("regions", strconv.Itoa(len(res.Regions))).
		WithExtra("errors", strconv.Itoa(res.Errors)).
		End("")
	if res.Errors > 0 {
		return res, fmt.Errorf("%w: %d error(s)", ErrResolveFailed, res.Errors)
	}
	return res, nil
}
