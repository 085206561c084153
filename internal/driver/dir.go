package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lifeline/internal/diag"
	"lifeline/internal/observ"
	"lifeline/internal/source"
	"lifeline/internal/trace"
)

// DirResult holds the per-file results of ResolveDir in path order.
type DirResult struct {
	Dir   string
	Files []*FileResult
	// Timing sums the phases of all files.
	Timing observ.Report
}

// HasErrors reports whether any file produced an error diagnostic.
func (d *DirResult) HasErrors() bool {
	for _, f := range d.Files {
		if f.HasErrors() {
			return true
		}
	}
	return false
}

// ListSourceFiles returns all *.lf files under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// ResolveDir runs the pipeline over every *.lf file under dir in parallel.
// Each file gets its own file set, interner and bag; a file that cannot be
// read yields a result with an IO4001 diagnostic instead of failing the run.
func ResolveDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	out := &DirResult{Dir: dir}
	if len(files) == 0 {
		return out, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "resolve_dir", trace.CurrentSpan(ctx).SpanID).
		WithExtra("dir", dir)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := resolveOne(gctx, path, opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: err})
				return err
			}
			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageLifetimes, Status: status, Err: res.Err})
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	out.Files = results
	reports := make([]observ.Report, len(results))
	for i, r := range results {
		reports[i] = r.Timing
	}
	out.Timing = observ.Merge(reports...)
	return out, nil
}

// resolveOne is ResolveFile with load failures turned into a diagnostic.
func resolveOne(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fset := source.NewFileSet()
	id, err := fset.Load(path)
	if err != nil {
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		return &FileResult{Path: path, FileSet: fset, Bag: bag}, nil
	}
	return resolveLoaded(ctx, fset, fset.Get(id), path, opts)
}
