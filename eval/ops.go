package eval

import (
	"github.com/mna/glas/effect"
	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// evalOp interprets a single primitive operator. Every precondition
// violation (wrong arity available, wrong value shape, arithmetic domain
// error) is a failure, never a panic, and leaves stack unchanged per this
// package's failure invariant.
//
// Binary operators consume their second operand from the top of stack and
// their first operand from just beneath it, i.e. `x OP y` is evaluated with
// y on top and x second; this convention is applied uniformly across
// add/sub/mul/div/eq/bjoin so that the op name's argument order reads left
// to right against "deeper to shallower" stack position.
func evalOp(n *program.Op, h effect.Handler, stack Stack) (Stack, bool) {
	switch n.Name {
	case program.OpCopy:
		top, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		return push(push(rest, top), top), true

	case program.OpDrop:
		_, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		return rest, true

	case program.OpSwap:
		a, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		b, rest, ok := pop(rest)
		if !ok {
			return stack, false
		}
		return push(push(rest, a), b), true

	case program.OpEq:
		y, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		x, rest, ok := pop(rest)
		if !ok {
			return stack, false
		}
		if !x.Equal(y) {
			return stack, false
		}
		return rest, true

	case program.OpGet:
		key, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		rec, rest, ok := popRecord(rest)
		if !ok {
			return stack, false
		}
		keyBits, ok := key.(value.Bits)
		if !ok {
			return stack, false
		}
		v, found := rec.Get(keyBits)
		if !found {
			return stack, false
		}
		return push(rest, v), true

	case program.OpPut:
		key, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		v, rest, ok := pop(rest)
		if !ok {
			return stack, false
		}
		rec, rest, ok := popRecord(rest)
		if !ok {
			return stack, false
		}
		keyBits, ok := key.(value.Bits)
		if !ok {
			return stack, false
		}
		return push(rest, rec.Put(keyBits, v)), true

	case program.OpDel:
		key, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		rec, rest, ok := popRecord(rest)
		if !ok {
			return stack, false
		}
		keyBits, ok := key.(value.Bits)
		if !ok {
			return stack, false
		}
		return push(rest, rec.Del(keyBits)), true

	case program.OpPushL:
		elem, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		lst, rest, ok := popList(rest)
		if !ok {
			return stack, false
		}
		return push(rest, lst.PushL(elem)), true

	case program.OpPushR:
		elem, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		lst, rest, ok := popList(rest)
		if !ok {
			return stack, false
		}
		return push(rest, lst.PushR(elem)), true

	case program.OpPopL:
		lst, rest, ok := popList(stack)
		if !ok {
			return stack, false
		}
		head, tail, ok := lst.PopL()
		if !ok {
			return stack, false
		}
		return push(push(rest, tail), head), true

	case program.OpPopR:
		lst, rest, ok := popList(stack)
		if !ok {
			return stack, false
		}
		init, last, ok := lst.PopR()
		if !ok {
			return stack, false
		}
		return push(push(rest, init), last), true

	case program.OpLen:
		lst, rest, ok := popList(stack)
		if !ok {
			return stack, false
		}
		return push(rest, value.BitsFromUint(uint64(lst.Len()))), true

	case program.OpSplit:
		idx, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		lst, rest, ok := popList(rest)
		if !ok {
			return stack, false
		}
		idxBits, ok := idx.(value.Bits)
		if !ok {
			return stack, false
		}
		left, right, ok := lst.Split(int(idxBits.Uint64()))
		if !ok {
			return stack, false
		}
		return push(push(rest, left), right), true

	case program.OpJoin:
		right, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		left, rest, ok := pop(rest)
		if !ok {
			return stack, false
		}
		leftL, ok := left.(*value.List)
		if !ok {
			return stack, false
		}
		rightL, ok := right.(*value.List)
		if !ok {
			return stack, false
		}
		return push(rest, leftL.Join(rightL)), true

	case program.OpAdd:
		y, x, rest, ok := popNatPair(stack)
		if !ok {
			return stack, false
		}
		return push(rest, value.NatAdd(x, y)), true

	case program.OpSub:
		y, x, rest, ok := popNatPair(stack)
		if !ok {
			return stack, false
		}
		z, ok := value.NatSub(x, y)
		if !ok {
			return stack, false
		}
		return push(rest, z), true

	case program.OpMul:
		y, x, rest, ok := popNatPair(stack)
		if !ok {
			return stack, false
		}
		return push(rest, value.NatMul(x, y)), true

	case program.OpDiv:
		y, x, rest, ok := popNatPair(stack)
		if !ok {
			return stack, false
		}
		q, r, ok := value.NatDiv(x, y)
		if !ok {
			return stack, false
		}
		return push(push(rest, q), r), true

	case program.OpBJoin:
		y, x, rest, ok := popNatPair(stack)
		if !ok {
			return stack, false
		}
		return push(rest, x.Concat(y)), true

	case program.OpBSplit:
		idx, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		bits, rest, ok := popBits(rest)
		if !ok {
			return stack, false
		}
		idxBits, ok := idx.(value.Bits)
		if !ok {
			return stack, false
		}
		n := int(idxBits.Uint64())
		if n < 0 || n > bits.Len() {
			return stack, false
		}
		left := bits.Slice(0, n)
		right := bits.Slice(n, bits.Len())
		return push(push(rest, left), right), true

	case program.OpBLen:
		bits, rest, ok := popBits(stack)
		if !ok {
			return stack, false
		}
		return push(rest, value.BitsFromUint(uint64(bits.Len()))), true

	case program.OpEff:
		v, rest, ok := pop(stack)
		if !ok {
			return stack, false
		}
		res, ok := h.Eff(v)
		if !ok {
			return stack, false
		}
		return push(rest, res), true
	}
	return stack, false
}

func popRecord(s Stack) (*value.Record, Stack, bool) {
	v, rest, ok := pop(s)
	if !ok {
		return nil, s, false
	}
	rec, ok := v.(*value.Record)
	if !ok {
		return nil, s, false
	}
	return rec, rest, true
}

func popList(s Stack) (*value.List, Stack, bool) {
	v, rest, ok := pop(s)
	if !ok {
		return nil, s, false
	}
	lst, ok := v.(*value.List)
	if !ok {
		return nil, s, false
	}
	return lst, rest, true
}

func popBits(s Stack) (value.Bits, Stack, bool) {
	v, rest, ok := pop(s)
	if !ok {
		return value.Bits{}, s, false
	}
	b, ok := v.(value.Bits)
	if !ok {
		return value.Bits{}, s, false
	}
	return b, rest, true
}

// popNatPair pops y (top) then x (second), both required to be Bits, and
// returns them in (y, x, rest) order for the arithmetic/bit ops above.
func popNatPair(s Stack) (y, x value.Bits, rest Stack, ok bool) {
	y, after, ok := popBits(s)
	if !ok {
		return value.Bits{}, value.Bits{}, s, false
	}
	x, after, ok = popBits(after)
	if !ok {
		return value.Bits{}, value.Bits{}, s, false
	}
	return y, x, after, true
}
