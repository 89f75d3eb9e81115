package effect

import "github.com/mna/glas/value"

// Log is a log-capturing handler: it buffers requested effect values in a
// per-frame queue, used by tests (and by the eval package's test suite) to
// observe exactly which effects were committed versus rolled back by a
// transactional combinator.
//
// Every request is accepted: Eff always returns (Unit, true). Commit
// concatenates the top frame onto its parent's queue; Abort discards the
// top frame entirely, so effects issued inside an aborted Cond/Loop attempt
// never appear in the committed log.
type Log struct {
	frames [][]value.Value
}

// NewLog returns a Log handler with a single, empty root frame.
func NewLog() *Log {
	return &Log{frames: [][]value.Value{nil}}
}

func (l *Log) Eff(v value.Value) (value.Value, bool) {
	top := len(l.frames) - 1
	l.frames[top] = append(l.frames[top], v)
	return value.EmptyRecord(), true
}

func (l *Log) Try() {
	l.frames = append(l.frames, nil)
}

func (l *Log) Commit() {
	n := len(l.frames)
	parent := n - 2
	l.frames[parent] = append(l.frames[parent], l.frames[n-1]...)
	l.frames = l.frames[:n-1]
}

func (l *Log) Abort() {
	l.frames = l.frames[:len(l.frames)-1]
}

// Entries returns the effect values committed to the root frame so far, in
// issue order.
func (l *Log) Entries() []value.Value {
	return append([]value.Value(nil), l.frames[0]...)
}
