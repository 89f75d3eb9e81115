// Package arity computes the static input/output stack arity of a program,
// used to validate the compiler contract: every language-<ext> module must
// evaluate to a compile program of arity (1,1).
package arity

import (
	"fmt"

	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// fixed lists the static arity of every primitive operator. eff is given
// arity (1,1): it consumes the requested effect value and produces the
// handler's single result value, matching the eff(v) -> v? contract; the
// handler's own internal arity is not reflected here.
var fixed = map[string][2]int{
	program.OpCopy:   {1, 2},
	program.OpDrop:   {1, 0},
	program.OpSwap:   {2, 2},
	program.OpEq:     {2, 0},
	program.OpGet:    {2, 1},
	program.OpPut:    {3, 1},
	program.OpDel:    {2, 1},
	program.OpPushL:  {2, 1},
	program.OpPushR:  {2, 1},
	program.OpPopL:   {1, 2},
	program.OpPopR:   {1, 2},
	program.OpLen:    {1, 1},
	program.OpSplit:  {2, 2},
	program.OpJoin:   {2, 1},
	program.OpAdd:    {2, 1},
	program.OpSub:    {2, 1},
	program.OpMul:    {2, 1},
	program.OpDiv:    {2, 2},
	program.OpBJoin:  {2, 1},
	program.OpBSplit: {2, 2},
	program.OpBLen:   {1, 1},
	program.OpEff:    {1, 1},
}

// Static computes p's static arity: the number of stack cells every
// successful evaluation of p consumes and produces. ok is false if p's
// arity is not statically determinable (for example a Cond whose branches
// disagree, or an Op with an unrecognized name).
func Static(p program.Program) (in, out int, ok bool) {
	switch n := p.(type) {
	case *program.Op:
		a, known := fixed[n.Name]
		if !known {
			return 0, 0, false
		}
		return a[0], a[1], true

	case *program.Data:
		return 0, 1, true

	case *program.Seq:
		return composeSeq(n.Items)

	case *program.Dip:
		ai, ao, ok := Static(n.P)
		if !ok {
			return 0, 0, false
		}
		return ai + 1, ao + 1, true

	case *program.Cond:
		ci, co, ok := composeSeq([]program.Program{n.Try, n.Then})
		if !ok {
			return 0, 0, false
		}
		ei, eo, ok := Static(n.Else)
		if !ok {
			return 0, 0, false
		}
		if ci != ei || co != eo {
			return 0, 0, false
		}
		return ci, co, true

	case *program.Loop:
		bi, bo, ok := composeSeq([]program.Program{n.While, n.Do})
		if !ok || bi != bo {
			return 0, 0, false
		}
		return bi, bo, true

	case *program.Env:
		return Static(n.P)

	case *program.Prog:
		return Static(n.Body)

	default:
		return 0, 0, false
	}
}

// composeSeq computes the arity of running items in order, using the
// standard stack-arity composition rule: each item first consumes from
// whatever the prior items left available, then any shortfall is added to
// the overall input requirement.
func composeSeq(items []program.Program) (in, out int, ok bool) {
	avail := 0
	for _, it := range items {
		ai, ao, itOk := Static(it)
		if !itOk {
			return 0, 0, false
		}
		if ai > avail {
			in += ai - avail
			avail = 0
		} else {
			avail -= ai
		}
		avail += ao
	}
	return in, avail, true
}

// metaArityKey is the record field under which Prog's Meta carries a
// declared (in, out) arity, as a Pair of Bits-encoded naturals.
const metaArityKey = "arity"

// Declared reads the arity declared in p's outermost Prog annotation, if
// any. ok is false if p is not a *program.Prog, its Meta has no "arity"
// field, or that field is malformed.
func Declared(p program.Program) (in, out int, ok bool) {
	pp, isProg := p.(*program.Prog)
	if !isProg {
		return 0, 0, false
	}
	field, found := pp.Meta.Get(value.Symbol(metaArityKey))
	if !found {
		return 0, 0, false
	}
	pair, isPair := field.(*value.Pair)
	if !isPair {
		return 0, 0, false
	}
	lb, lok := pair.L.(value.Bits)
	rb, rok := pair.R.(value.Bits)
	if !lok || !rok {
		return 0, 0, false
	}
	return int(lb.Uint64()), int(rb.Uint64()), true
}

// EncodeDeclared builds the Meta value recording a declared (in, out)
// arity, suitable for use as Prog.Meta or merged into a larger meta record.
func EncodeDeclared(in, out int) *value.Record {
	pair := value.NewPair(value.BitsFromUint(uint64(in)), value.BitsFromUint(uint64(out)))
	return value.EmptyRecord().Put(value.Symbol(metaArityKey), pair)
}

// CheckCompilerArity validates that p is a well-formed compiler program:
// its static arity must be (1,1), and if it declares an arity via
// Prog.Meta, the declaration must agree with the static computation.
func CheckCompilerArity(p program.Program) error {
	in, out, ok := Static(p)
	if !ok {
		return fmt.Errorf("arity: compiler program has no statically determinable arity")
	}
	if di, do, dok := Declared(p); dok && (di != in || do != out) {
		return fmt.Errorf("arity: declared arity (%d,%d) does not match static arity (%d,%d)", di, do, in, out)
	}
	if in != 1 || out != 1 {
		return fmt.Errorf("arity: compiler program must have arity (1,1), has (%d,%d)", in, out)
	}
	return nil
}
