package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeNode, name, "", 0)
	}
	var got []string
	for _, ev := range r.Snapshot() {
		got = append(got, ev.Name)
	}
	if strings.Join(got, ",") != "b,c,d" {
		t.Errorf("snapshot = %v, want b,c,d", got)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	sp := Begin(r, ScopePass, "parse", 0)
	Begin(r, ScopeItem, "fn f", sp.ID()).End("")
	Point(r, ScopeNode, "resolved", "'a", sp.ID())
	sp.End("")

	events := r.Snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want begin+end of the pass", len(events))
	}
	if events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Errorf("unexpected kinds %v %v", events[0].Kind, events[1].Kind)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(s, ScopePass, "resolve_lifetimes", 0).WithExtra("regions", "3").End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", lines[1], err)
	}
	if ev["kind"] != "end" || ev["name"] != "resolve_lifetimes" || ev["detail"] != "done" {
		t.Errorf("unexpected end event %v", ev)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Scope: ScopePass, Name: "x", Extra: map[string]string{"b": "2", "a": "1"}}
	line := string(FormatEvent(ev, FormatText))
	if !strings.Contains(line, "← x {a=1, b=2}") {
		t.Errorf("unexpected text line %q", line)
	}
}

func TestMultiFansOut(t *testing.T) {
	r1, r2 := NewRingTracer(4, LevelDebug), NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, r1, r2)
	Point(m, ScopeDriver, "start", "", 0)
	if len(r1.Snapshot()) != 1 || len(r2.Snapshot()) != 1 {
		t.Errorf("event not delivered to every tracer")
	}
	if FindRing(m) != r1 {
		t.Errorf("FindRing should return the first ring")
	}
	if FindRing(Nop) != nil {
		t.Errorf("FindRing(Nop) should be nil")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context should yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	if FromContext(WithTracer(context.Background(), r)) != Tracer(r) {
		t.Errorf("tracer not propagated")
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Errorf("ParseMode accepted an unknown mode")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestHeartbeatTicksUntilStopped(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat started on a disabled tracer")
	}
	r := NewRingTracer(64, LevelError)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()

	events := r.Snapshot()
	if len(events) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if events[0].Kind != KindHeartbeat || events[0].Detail != "#1" {
		t.Errorf("first event = %+v", events[0])
	}
}
