package value

import "strings"

// Record is a persistent binary radix trie keyed by bitstring labels
// ("symbols"). Each Put/Del returns a new Record sharing every subtree not
// on the path to the modified key, so records are cheap to extend and pass
// around without deep copies.
//
// Unit, the empty record, is the Record returned by EmptyRecord. A single
// shared instance is safe because Records are immutable.
type Record struct {
	has  bool
	val  Value
	kid0 *Record // subtrie for keys whose next label bit is 0
	kid1 *Record // subtrie for keys whose next label bit is 1
}

var unit = &Record{}

// EmptyRecord returns Unit, the empty record.
func EmptyRecord() *Record { return unit }

func (r *Record) Kind() Kind { return KindRecord }

func (r *Record) isEmpty() bool { return !r.has && r.kid0 == nil && r.kid1 == nil }

// Get returns the value stored at key, or ok=false if key is not present.
func (r *Record) Get(key Bits) (Value, bool) {
	n := r
	for i := 0; i < key.Len(); i++ {
		if n == nil {
			return nil, false
		}
		if key.Bit(i) == 0 {
			n = n.kid0
		} else {
			n = n.kid1
		}
	}
	if n == nil || !n.has {
		return nil, false
	}
	return n.val, true
}

// Put returns a new Record with key bound to v, replacing any prior binding.
// Put is total: it never fails.
func (r *Record) Put(key Bits, v Value) *Record {
	if key.Len() == 0 {
		return &Record{has: true, val: v, kid0: r.kid0, kid1: r.kid1}
	}
	bit := key.Bit(0)
	rest := key.Slice(1, key.Len())
	out := &Record{has: r.has, val: r.val, kid0: r.kid0, kid1: r.kid1}
	if bit == 0 {
		child := r.kid0
		if child == nil {
			child = unit
		}
		out.kid0 = child.Put(rest, v)
	} else {
		child := r.kid1
		if child == nil {
			child = unit
		}
		out.kid1 = child.Put(rest, v)
	}
	return out
}

// Del returns a new Record with key unbound. Del is total: deleting an
// absent key returns an equivalent record.
func (r *Record) Del(key Bits) *Record {
	if key.Len() == 0 {
		if !r.has {
			return r
		}
		out := &Record{kid0: r.kid0, kid1: r.kid1}
		return normalize(out)
	}
	bit := key.Bit(0)
	rest := key.Slice(1, key.Len())
	out := &Record{has: r.has, val: r.val, kid0: r.kid0, kid1: r.kid1}
	if bit == 0 {
		if r.kid0 == nil {
			return r
		}
		out.kid0 = r.kid0.Del(rest)
		if out.kid0.isEmpty() {
			out.kid0 = nil
		}
	} else {
		if r.kid1 == nil {
			return r
		}
		out.kid1 = r.kid1.Del(rest)
		if out.kid1.isEmpty() {
			out.kid1 = nil
		}
	}
	return normalize(out)
}

// normalize collapses a node with no children and no value back to the
// shared Unit instance, so isEmpty comparisons and Len stay cheap.
func normalize(r *Record) *Record {
	if r.isEmpty() {
		return unit
	}
	return r
}

// Len returns the number of keys bound in the record.
func (r *Record) Len() int {
	n := 0
	if r.has {
		n++
	}
	if r.kid0 != nil {
		n += r.kid0.Len()
	}
	if r.kid1 != nil {
		n += r.kid1.Len()
	}
	return n
}

// Keys returns the bound labels in label-bit-lexicographic order (0 before
// 1 at every branch point).
func (r *Record) Keys() []Bits {
	var out []Bits
	r.walk(Empty, &out)
	return out
}

func (r *Record) walk(prefix Bits, out *[]Bits) {
	if r.has {
		*out = append(*out, prefix)
	}
	if r.kid0 != nil {
		r.kid0.walk(prefix.Concat(Symbol0), out)
	}
	if r.kid1 != nil {
		r.kid1.walk(prefix.Concat(Symbol1), out)
	}
}

// Symbol0 and Symbol1 are the one-bit labels 0 and 1, convenient building
// blocks for constructing keys bit by bit.
var (
	Symbol0 = NewBits([]byte{0x00}, 1)
	Symbol1 = NewBits([]byte{0x80}, 1)
)

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	keys := r.Keys()
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		v, _ := r.Get(k)
		sb.WriteString(k.String())
		sb.WriteByte(':')
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal checks pointer identity before the structural walk below: it's a
// cheap win when the same record is compared against itself, and it stops
// a record that (via an embedded program.Data field pointing back to an
// ancestor) is part of a reference cycle from recursing forever.
func (r *Record) Equal(other Value) bool {
	o, ok := other.(*Record)
	if !ok {
		return false
	}
	if r == o {
		return true
	}
	ak, bk := r.Keys(), o.Keys()
	if len(ak) != len(bk) {
		return false
	}
	for i, k := range ak {
		if !k.Equal(bk[i]) {
			return false
		}
		av, _ := r.Get(k)
		bv, _ := o.Get(bk[i])
		if !av.Equal(bv) {
			return false
		}
	}
	return true
}
