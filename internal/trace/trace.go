// Package trace provides lightweight instrumentation for audit runs:
// leveled emitters for phase boundaries, per-rule failures and fix
// application, with stream and in-memory ring sinks. Tracing is off by
// default and never fails the work it observes.
package trace

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelPhase emits audit and phase boundaries.
	LevelPhase
	// LevelDetail adds per-document events.
	LevelDetail
	// LevelDebug adds per-node and per-rule events.
	LevelDebug
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	}
	return "unknown"
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "detail", "DETAIL":
		return LevelDetail, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|detail|debug)", s)
	}
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeAudit covers whole audit or batch-fix runs.
	ScopeAudit Scope = iota + 1
	// ScopePhase covers engine phases (flatten, rules).
	ScopePhase
	// ScopeDocument covers one snapshot within a multi-document run.
	ScopeDocument
	// ScopeNode covers per-node / per-rule events.
	ScopeNode
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeAudit:
		return "audit"
	case ScopePhase:
		return "phase"
	case ScopeDocument:
		return "document"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeDocument
	case LevelDebug:
		return true
	}
	return false
}

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time   time.Time         `json:"ts"`
	Seq    uint64            `json:"seq"`
	Kind   Kind              `json:"-"`
	Scope  Scope             `json:"-"`
	SpanID uint64            `json:"span,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

type eventJSON struct {
	Event
	KindStr  string `json:"kind"`
	ScopeStr string `json:"scope"`
}

// FormatEvent renders an event as one JSON line.
func FormatEvent(ev *Event) []byte {
	data, err := json.Marshal(eventJSON{Event: *ev, KindStr: ev.Kind.String(), ScopeStr: ev.Scope.String()})
	if err != nil {
		return []byte(fmt.Sprintf("{\"name\":%q,\"error\":%q}\n", ev.Name, err))
	}
	return append(data, '\n')
}

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)
	// Flush ensures all buffered events are written.
	Flush() error
	// Close flushes and releases resources.
	Close() error
	// Level returns the current tracing level.
	Level() Level
	// Enabled returns true if tracing is active.
	Enabled() bool
}

var globalSeq atomic.Uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// nopTracer is a no-op implementation for zero overhead when tracing is off.
type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}
