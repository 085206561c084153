package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lifeline/internal/ast"
	"lifeline/internal/diag"
	"lifeline/internal/lexer"
	"lifeline/internal/lifetimes"
	"lifeline/internal/observ"
	"lifeline/internal/parser"
	"lifeline/internal/source"
	"lifeline/internal/symbols"
	"lifeline/internal/trace"
)

// FileResult holds everything one file produced.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	Source  *source.File
	AST     *ast.File
	Defs    *symbols.DefMap
	Regions lifetimes.NamedRegionMap
	// Bag is sorted and deduplicated; it holds lexical, syntax and
	// lifetime diagnostics together.
	Bag    *diag.Bag
	Timing observ.Report
	// Prelude is the trait list the symbols phase used.
	Prelude []string
	// Err wraps lifetimes.ErrResolveFailed when the pass reported errors.
	// Regions is still the partial table in that case.
	Err error
}

// HasErrors reports whether any phase produced an error diagnostic.
func (r *FileResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// ResolveFile loads path and runs parse, symbols and lifetimes over it.
// The returned error covers loading and cancellation only; diagnostics end
// up in the result's Bag.
func ResolveFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return resolveLoaded(ctx, fs, fs.Get(id), path, opts)
}

// ResolveSource is ResolveFile for in-memory input registered under name.
func ResolveSource(ctx context.Context, name string, src []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	return resolveLoaded(ctx, fs, file, name, opts)
}

// fileRun carries the per-file bookkeeping shared by all phases.
type fileRun struct {
	key    string // name used in progress events
	opts   Options
	timer  *observ.Timer
	tracer trace.Tracer
	parent uint64
}

// phase starts stage and returns the func ending it. Every phase is timed,
// traced, observed and reported to the progress sink.
func (r *fileRun) phase(stage Stage) func(note string) {
	done := r.timer.Track(string(stage))
	span := trace.Begin(r.tracer, trace.ScopeDriver, string(stage), r.parent)
	start := time.Now()
	r.opts.observe(PhaseEvent{Path: r.key, Name: string(stage), Status: PhaseStart})
	emit(r.opts.Progress, Event{File: r.key, Stage: stage, Status: StatusWorking})
	prev := r.parent
	r.parent = span.ID()
	return func(note string) {
		done(note)
		span.End(note)
		r.parent = prev
		r.opts.observe(PhaseEvent{Path: r.key, Name: string(stage), Status: PhaseEnd, Elapsed: time.Since(start)})
	}
}

func resolveLoaded(ctx context.Context, fs *source.FileSet, file *source.File, key string, opts Options) (*FileResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeDriver, "resolve_file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path)
	defer fileSpan.End("")

	run := &fileRun{key: key, opts: opts, timer: observ.NewTimer(), tracer: tracer, parent: fileSpan.ID()}
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res := &FileResult{Path: file.Path, FileSet: fs, Source: file, Bag: bag, Prelude: opts.PreludeTraits}
	if res.Prelude == nil {
		res.Prelude = symbols.DefaultPreludeTraits
	}

	// parse
	done := run.phase(StageParse)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	pres := parser.ParseFile(lx, ast.NewBuilder(nil, 0), parser.Options{MaxErrors: maxErrors, Reporter: rep})
	res.AST = pres.File
	done(strconv.FormatUint(uint64(pres.File.Nodes.Len()), 10) + " nodes")
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// symbols
	done = run.phase(StageSymbols)
	res.Defs = symbols.Resolve(pres.File, symbols.Options{PreludeTraits: res.Prelude})
	done(strconv.Itoa(res.Defs.Len()) + " paths")
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// lifetimes
	done = run.phase(StageLifetimes)
	lres, lerr := lifetimes.Resolve(pres.File, res.Defs, lifetimes.Options{
		Reporter:   rep,
		Tracer:     tracer,
		ParentSpan: run.parent,
	})
	res.Regions = lres.Regions
	res.Err = lerr
	done(strconv.Itoa(len(lres.Regions)) + " regions")

	bag.Dedup()
	bag.Sort()
	res.Timing = run.timer.Report()
	fileSpan.WithExtra("diagnostics", strconv.Itoa(bag.Len()))
	return res, nil
}

// Failed reports whether err is a lifetime resolution failure as opposed to
// an I/O or cancellation problem.
func Failed(err error) bool {
	return errors.Is(err, lifetimes.ErrResolveFailed)
}
