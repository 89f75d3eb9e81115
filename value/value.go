// Package value implements the universal Value type shared by every other
// package in this module: the evaluator, the module loader and the effect
// handlers all pass Values, and compiler programs are themselves Values.
//
// A Value is one of four shapes: a bitstring (the leaf type, see Bits), a
// pair of two Values (see Pair), a labeled record keyed by bitstring labels
// (see Record), or an index-addressable list (see List). Records and lists
// are conceptually encoded atop pairs and bits, but they are distinct Go
// types, and Equal only ever reports a Record equal to a Record and a List
// equal to a List, never to a Pair-built equivalent.
package value

// Kind identifies which of the four Value shapes a Value has, or
// KindProgram for a program node.
type Kind uint8

const (
	KindBits Kind = iota
	KindPair
	KindRecord
	KindList
	// KindProgram marks a value produced by package program: compiler
	// programs are themselves Values, so they can be pushed by Data, stored
	// in records and lists, and compared for the bootstrap fixed-point check.
	KindProgram
)

func (k Kind) String() string {
	switch k {
	case KindBits:
		return "bits"
	case KindPair:
		return "pair"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	case KindProgram:
		return "program"
	default:
		return "unknown"
	}
}

// Value is the interface implemented by every value manipulated by the
// evaluator and the loader. Values are immutable: operators that appear to
// mutate a Value (Put, Del, PushL, ...) always return a new Value, sharing
// structure with the original wherever possible.
type Value interface {
	// Kind reports which shape this Value has (see Kind).
	Kind() Kind

	// String returns a short, human-readable representation, used for
	// logging and test diffs; it is not a serialization format.
	String() string

	// Equal reports whether this Value and other are structurally equal,
	// i.e. their canonical shapes match bit-for-bit. Equal is the only
	// notion of equality in this package, and it is structural, not
	// identity-based (two freshly built bitstrings with the same bits are
	// equal); implementations may still return true early when both sides
	// are the same pointer.
	Equal(other Value) bool
}

// Pair is a Value holding two Values, L and R. Records and lists have their
// own Go types (Record, List) and are not built from Pairs.
type Pair struct {
	L, R Value
}

// NewPair returns a Pair with the given elements.
func NewPair(l, r Value) *Pair { return &Pair{L: l, R: r} }

func (p *Pair) Kind() Kind { return KindPair }

func (p *Pair) String() string { return "(" + p.L.String() + " . " + p.R.String() + ")" }

func (p *Pair) Equal(other Value) bool {
	o, ok := other.(*Pair)
	if !ok {
		return false
	}
	if p == o {
		return true
	}
	return p.L.Equal(o.L) && p.R.Equal(o.R)
}

// Variant returns the single-field record `label:v`.
func Variant(label Bits, v Value) Value {
	return EmptyRecord().Put(label, v)
}

// AsVariant reports whether v is a single-field record and, if so, returns
// its label and field value.
func AsVariant(v Value) (label Bits, field Value, ok bool) {
	r, isRecord := v.(*Record)
	if !isRecord || r.Len() != 1 {
		return Bits{}, nil, false
	}
	keys := r.Keys()
	field, _ = r.Get(keys[0])
	return keys[0], field, true
}
