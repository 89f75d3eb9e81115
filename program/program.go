// Package program implements the algebraic representation of programs: a
// small tree of combinators over primitive operators, evaluated by package
// eval and produced by compilers, which are themselves ordinary programs
// operating on a Value encoding of source bytes.
package program

import "github.com/mna/glas/value"

// Program is implemented by every node of a program tree. The evaluator
// type-switches on the concrete type to select its evaluation rule; there
// is no other behavior attached to the interface beyond value.Value, which
// every node also implements -- a Program is a Value, so a compiler's
// `compile` field holds one of these nodes directly, stored in a record
// like any other Value, and the bootstrap driver compares two programs with
// Equal to find its fixed point.
type Program interface {
	value.Value
	programNode()
}

// Op is a primitive operator, named by one of the symbols in Opset.
type Op struct {
	Name string
}

func (*Op) programNode() {}

// Data pushes V onto the stack; it never fails.
type Data struct {
	V value.Value
}

func (*Data) programNode() {}

// Seq runs Items in order, left to right. An empty Seq is Nop: it leaves
// the stack untouched and never fails.
type Seq struct {
	Items []Program
}

func (*Seq) programNode() {}

// Nop is the empty sequence: it never fails and never touches the stack.
var Nop Program = &Seq{}

// Dip runs P with the top stack element hidden, then restores it. If P
// fails, Dip fails with the stack exactly as it was before Dip ran.
type Dip struct {
	P Program
}

func (*Dip) programNode() {}

// Cond runs Try transactionally. If Try succeeds, the transaction is
// committed and Then runs in the outer transaction context. If Try fails,
// the transaction is aborted (reverting both stack and tentative effects)
// and Else runs instead.
type Cond struct {
	Try, Then, Else Program
}

func (*Cond) programNode() {}

// Loop repeatedly attempts While transactionally; on success it commits and
// runs Do, then repeats; on failure it aborts the attempt and the loop
// exits successfully. A failure of Do fails the whole loop.
type Loop struct {
	While, Do Program
}

func (*Loop) programNode() {}

// Env installs Handler as the effect handler for every eff issued while
// running P (including by nested programs), with the outer handler
// available to Handler itself through its own eff calls.
type Env struct {
	Handler Program
	P       Program
}

func (*Env) programNode() {}

// Prog annotates Body with Meta, a record read only by tooling (for
// example a static "arity" field). Prog is semantically equivalent to
// Body.
type Prog struct {
	Meta *value.Record
	Body Program
}

func (*Prog) programNode() {}

// Unwrap strips any number of Prog annotations, returning the innermost
// non-Prog node.
func Unwrap(p Program) Program {
	for {
		pp, ok := p.(*Prog)
		if !ok {
			return p
		}
		p = pp.Body
	}
}
