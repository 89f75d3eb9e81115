package eval

import "github.com/mna/glas/value"

// Stack is the evaluator's working sequence of Values. Internally the last
// element is the top of stack, the layout Go's append/slice primitives
// handle without copying; FromTop and Stack.Top convert to and from the
// top-first order used when describing stacks and writing test scenarios.
type Stack []value.Value

// FromTop builds a Stack from values given top-first (vs[0] is the top).
func FromTop(vs ...value.Value) Stack {
	out := make(Stack, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}

// Top returns the stack's values top-first.
func (s Stack) Top() []value.Value {
	out := make([]value.Value, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// push returns a new Stack with v on top. It never reuses s's backing array
// for the returned slice's tail, so a Stack value remains valid to read
// even after later code pushes onto a Stack that was sliced from it. Values
// themselves share structure without deep copies; this is a separate
// bookkeeping safety property for the Stack slice, and costs nothing extra
// here.
func push(s Stack, v value.Value) Stack {
	return append(s[:len(s):len(s)], v)
}

// pop returns the top of s and the rest of the stack. ok is false if s is
// empty.
func pop(s Stack) (top value.Value, rest Stack, ok bool) {
	if len(s) == 0 {
		return nil, s, false
	}
	n := len(s) - 1
	return s[n], s[:n], true
}
