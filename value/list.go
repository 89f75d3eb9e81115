package value

import "strings"

// List is a persistent, index-addressable sequence of Values. It is
// represented as an immutable slice: every mutating operation (PushL,
// PushR, PopL, PopR, Split, Join) returns a new List and never writes
// through a shared backing array.
//
// Lists are conceptually finger-tree-indexed, which would give O(log n)
// index/split/join and amortized O(1) head/tail/last/init. This flat-slice
// representation gives the same functional behavior (every list identity
// still holds) but trades the finger tree's asymptotic bounds for a much
// simpler implementation; see DESIGN.md.
type List struct {
	elems []Value
}

// EmptyList is the empty list.
var EmptyList = &List{}

// NewList returns a list containing the given elements in order. The
// caller must not modify elems afterward.
func NewList(elems []Value) *List {
	if len(elems) == 0 {
		return EmptyList
	}
	return &List{elems: elems}
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Len() int { return len(l.elems) }

// Index returns the element at position i. Panics if i is out of range.
func (l *List) Index(i int) Value { return l.elems[i] }

// PushL returns a new list with v prepended.
func (l *List) PushL(v Value) *List {
	out := make([]Value, len(l.elems)+1)
	out[0] = v
	copy(out[1:], l.elems)
	return &List{elems: out}
}

// PushR returns a new list with v appended.
func (l *List) PushR(v Value) *List {
	out := make([]Value, len(l.elems)+1)
	copy(out, l.elems)
	out[len(out)-1] = v
	return &List{elems: out}
}

// PopL returns the head and tail of a non-empty list. ok is false if the
// list is empty.
func (l *List) PopL() (head Value, tail *List, ok bool) {
	if len(l.elems) == 0 {
		return nil, nil, false
	}
	return l.elems[0], NewList(append([]Value(nil), l.elems[1:]...)), true
}

// PopR returns the init and last of a non-empty list. ok is false if the
// list is empty.
func (l *List) PopR() (init *List, last Value, ok bool) {
	n := len(l.elems)
	if n == 0 {
		return nil, nil, false
	}
	return NewList(append([]Value(nil), l.elems[:n-1]...)), l.elems[n-1], true
}

// Split returns (l[:n], l[n:]). ok is false if n > Len().
func (l *List) Split(n int) (left, right *List, ok bool) {
	if n < 0 || n > len(l.elems) {
		return nil, nil, false
	}
	return NewList(append([]Value(nil), l.elems[:n]...)), NewList(append([]Value(nil), l.elems[n:]...)), true
}

// Join returns the concatenation of l and o.
func (l *List) Join(o *List) *List {
	if len(l.elems) == 0 {
		return o
	}
	if len(o.elems) == 0 {
		return l
	}
	out := make([]Value, 0, len(l.elems)+len(o.elems))
	out = append(out, l.elems...)
	out = append(out, o.elems...)
	return &List{elems: out}
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	if !ok || len(l.elems) != len(o.elems) {
		return false
	}
	if l == o {
		return true
	}
	for i, e := range l.elems {
		if !e.Equal(o.elems[i]) {
			return false
		}
	}
	return true
}
