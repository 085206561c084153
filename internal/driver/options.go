package driver

import (
	"fmt"

	"fortio.org/safecast"
)

// SourceExt is the extension ResolveDir looks for.
const SourceExt = ".lf"

// Options configures one driver run. The zero value is usable.
type Options struct {
	// MaxDiagnostics caps each file's bag; 0 means diag's default.
	MaxDiagnostics int
	// Jobs limits ResolveDir's parallelism; 0 means GOMAXPROCS.
	Jobs int
	// PreludeTraits overrides the trait names visible in every file.
	PreludeTraits []string
	Progress      ProgressSink
	Observer      PhaseObserver
}

func (o Options) maxErrors() (uint, error) {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("max diagnostics %d: %w", o.MaxDiagnostics, err)
	}
	return n, nil
}

func (o Options) observe(ev PhaseEvent) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}
