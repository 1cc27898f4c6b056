package vm

import "github.com/inet-vm/godnet/pkg/inet"

// TraceEvent records one redex dispatch decision during Reduce: which
// pair of agents was popped, what rule key that implied, and whether a
// rule was actually found for it. This is purely a debugging aid — the
// reference engine has no such facility, but a single-step-capable
// implementation benefits from seeing why reduction stalled.
type TraceEvent struct {
	Step    uint64
	Key     RuleKey
	Redex   inet.Redex
	Matched bool
}

// traceLog is a fixed-capacity log of trace events, enabled on demand.
// It keeps the first cap events; later events are counted in next but
// not stored. It is adapted from the teacher's atomic ring buffer
// (pkg/deltanet/trace.go) down to plain fields: this VM is
// single-threaded by spec, so there is no concurrent writer to guard
// against.
type traceLog struct {
	buf  []TraceEvent
	cap  uint64
	next uint64
}

// EnableTrace turns on reduction tracing, recording at most capacity
// events. Capacity <= 0 is treated as 1.
func (v *VM) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	v.trace = &traceLog{buf: make([]TraceEvent, capacity), cap: uint64(capacity)}
}

// DisableTrace turns tracing off; TraceSnapshot returns nil afterward.
func (v *VM) DisableTrace() {
	v.trace = nil
}

// TraceSnapshot returns the events recorded so far, oldest first: the
// first capacity events since tracing was enabled. Returns nil if
// tracing was never enabled.
func (v *VM) TraceSnapshot() []TraceEvent {
	if v.trace == nil {
		return nil
	}
	n := v.trace.next
	if n > v.trace.cap {
		n = v.trace.cap
	}
	out := make([]TraceEvent, n)
	copy(out, v.trace.buf[:n])
	return out
}

func (v *VM) recordTrace(key RuleKey, redex inet.Redex, matched bool) {
	if v.trace == nil {
		return
	}
	idx := v.trace.next
	v.trace.next++
	if idx >= v.trace.cap {
		return
	}
	v.trace.buf[idx] = TraceEvent{Step: idx, Key: key, Redex: redex, Matched: matched}
}
