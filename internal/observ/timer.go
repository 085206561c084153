// Package observ times the phases of a resolve run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer records phases of one run in the order they start. It is not safe
// for concurrent use; directory runs keep one Timer per file and Merge the
// reports.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

// Phase is one timed step. Dur stays zero until the phase is stopped.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Track starts a phase and returns the func that stops it:
//
//	done := timer.Track("parse")
//	defer done("")
//
// Calling the returned func again overwrites duration and note.
func (t *Timer) Track(name string) func(note string) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return func(note string) {
		p := &t.phases[idx]
		p.Dur = t.now().Sub(p.Start)
		p.Note = note
	}
}

// PhaseTiming is the serialisable view of a Phase.
type PhaseTiming struct {
	Name   string  `json:"name"`
	Millis float64 `json:"ms"`
	Note   string  `json:"note,omitempty"`
}

// Report sums a run. TotalMS is the sum of phase durations, not wall time.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseTiming `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, p := range t.phases {
		ms := millis(p.Dur)
		r.Phases = append(r.Phases, PhaseTiming{Name: p.Name, Millis: ms, Note: p.Note})
		r.TotalMS += ms
	}
	return r
}

// Merge складывает длительности фаз с одинаковыми именами; порядок фаз
// берётся из первого появления. Заметки отбрасываются.
func Merge(reports ...Report) Report {
	var out Report
	pos := make(map[string]int)
	for _, r := range reports {
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, seen := pos[p.Name]
			if !seen {
				i = len(out.Phases)
				pos[p.Name] = i
				out.Phases = append(out.Phases, PhaseTiming{Name: p.Name})
			}
			out.Phases[i].Millis += p.Millis
		}
	}
	return out
}

// Summary renders the report as an aligned table ending in a total row.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.Millis, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
