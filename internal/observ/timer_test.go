package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerTrack(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	done := tm.Track("parse")
	done("3 items")
	tm.Track("lifetimes")("")

	want := Report{
		TotalMS: 2,
		Phases:  []PhaseTiming{{Name: "parse", Millis: 1, Note: "3 items"}, {Name: "lifetimes", Millis: 1}},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if s := tm.Report().Summary(); !strings.Contains(s, "// 3 items") || !strings.Contains(s, "total") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestOpenPhaseHasZeroDuration(t *testing.T) {
	tm := NewTimer()
	tm.Track("load")
	if r := tm.Report(); r.Phases[0].Millis != 0 {
		t.Errorf("open phase = %+v", r.Phases[0])
	}
}

func TestMergeSumsByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseTiming{{Name: "parse", Millis: 1}, {Name: "lifetimes", Millis: 2, Note: "x"}}}
	b := Report{TotalMS: 5, Phases: []PhaseTiming{{Name: "lifetimes", Millis: 4}, {Name: "parse", Millis: 1}}}
	want := Report{TotalMS: 8, Phases: []PhaseTiming{{Name: "parse", Millis: 2}, {Name: "lifetimes", Millis: 6}}}
	if diff := cmp.Diff(want, Merge(a, b)); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyTimerReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Errorf("nil timer report = %+v", r)
	}
}
