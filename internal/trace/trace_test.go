package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"phase", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeNode) {
		t.Error("phase level must not emit node scope")
	}
	if !LevelPhase.ShouldEmit(ScopeAudit) {
		t.Error("phase level must emit audit scope")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Error("debug level must emit everything")
	}
	if LevelOff.ShouldEmit(ScopeAudit) {
		t.Error("off must emit nothing")
	}
}

func TestStreamTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewStreamTracer(&buf, LevelDebug)

	span := Begin(tracer, ScopeAudit, "audit")
	Point(tracer, ScopeNode, "rule-failure", "boom")
	span.End("2 issues")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d events, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"kind":"begin"`) || !strings.Contains(lines[2], `"kind":"end"`) {
		t.Errorf("span events malformed: %v", lines)
	}
	if !strings.Contains(lines[1], "boom") {
		t.Errorf("point detail lost: %s", lines[1])
	}
}

func TestStreamTracerLevelGating(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewStreamTracer(&buf, LevelPhase)
	Point(tracer, ScopeNode, "rule-failure", "ignored")
	if buf.Len() != 0 {
		t.Errorf("node event emitted at phase level: %s", buf.String())
	}
}

func TestRingTracer(t *testing.T) {
	tracer := NewRingTracer(4, LevelDebug)
	for i := 0; i < 6; i++ {
		Point(tracer, ScopePhase, "tick", "")
	}
	events := tracer.Snapshot()
	if len(events) != 4 {
		t.Fatalf("ring holds %d, want 4", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("snapshot out of order: %v", events)
		}
	}
}

func TestContextCarriesTracer(t *testing.T) {
	tracer := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), tracer)
	if FromContext(ctx) != tracer {
		t.Error("tracer lost on the context round trip")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("absent tracer must resolve to Nop")
	}
}

func TestNopSpanIsSafe(t *testing.T) {
	span := Begin(Nop, ScopeAudit, "audit")
	if d := span.End("done"); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
}
