package eval_test

import (
	"testing"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/eval"
	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(name string) program.Program { return &program.Op{Name: name} }

// runOp builds a stack from in (given top-first, in[0] is the top, matching
// eval.FromTop) and evaluates the single named primitive operator against it.
func runOp(t *testing.T, name string, in ...value.Value) (eval.Stack, bool) {
	t.Helper()
	stack := eval.FromTop(in...)
	return eval.Eval(op(name), effect.Nop, stack)
}

func TestOpCopy(t *testing.T) {
	out, ok := runOp(t, program.OpCopy, value.BitsFromUint(5))
	require.True(t, ok)
	top := out.Top()
	require.Len(t, top, 2)
	assert.True(t, top[0].Equal(value.BitsFromUint(5)))
	assert.True(t, top[1].Equal(value.BitsFromUint(5)))
}

func TestOpDrop(t *testing.T) {
	out, ok := runOp(t, program.OpDrop, value.BitsFromUint(5), value.BitsFromUint(9))
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.BitsFromUint(9)}, out.Top())
}

func TestOpSwap(t *testing.T) {
	// top=1, second=2 going in; swap must bring 2 to top, 1 below it.
	out, ok := runOp(t, program.OpSwap, value.BitsFromUint(1), value.BitsFromUint(2))
	require.True(t, ok)
	top := out.Top()
	assert.True(t, top[0].Equal(value.BitsFromUint(2)))
	assert.True(t, top[1].Equal(value.BitsFromUint(1)))
}

func TestOpEq(t *testing.T) {
	_, ok := runOp(t, program.OpEq, value.BitsFromUint(3), value.BitsFromUint(3))
	assert.True(t, ok)

	_, ok = runOp(t, program.OpEq, value.BitsFromUint(3), value.BitsFromUint(4))
	assert.False(t, ok)
}

func TestOpGetPutDel(t *testing.T) {
	rec := value.EmptyRecord()
	key := value.Symbol("k")
	val := value.BitsFromUint(7)

	// put consumes (key, v, rec) top-first.
	out, ok := runOp(t, program.OpPut, key, val, rec)
	require.True(t, ok)
	updated := out.Top()[0].(*value.Record)

	// get consumes (key, rec) top-first.
	out, ok = runOp(t, program.OpGet, key, updated)
	require.True(t, ok)
	assert.True(t, out.Top()[0].Equal(val))

	_, ok = runOp(t, program.OpGet, value.Symbol("missing"), updated)
	assert.False(t, ok)

	out, ok = runOp(t, program.OpDel, key, updated)
	require.True(t, ok)
	deleted := out.Top()[0].(*value.Record)
	assert.Equal(t, 0, deleted.Len())
}

func TestOpListPushPop(t *testing.T) {
	lst := value.EmptyList
	elem := value.BitsFromUint(1)

	// pushr consumes (elem, lst) top-first.
	out, ok := runOp(t, program.OpPushR, elem, lst)
	require.True(t, ok)
	withElem := out.Top()[0].(*value.List)
	assert.Equal(t, 1, withElem.Len())

	out, ok = runOp(t, program.OpPopL, withElem)
	require.True(t, ok)
	top := out.Top()
	assert.True(t, top[0].Equal(elem))
	assert.Equal(t, 0, top[1].(*value.List).Len())

	_, ok = runOp(t, program.OpPopL, value.EmptyList)
	assert.False(t, ok)
}

func TestOpLenSplitJoin(t *testing.T) {
	three := value.NewList([]value.Value{value.BitsFromUint(1), value.BitsFromUint(2), value.BitsFromUint(3)})

	out, ok := runOp(t, program.OpLen, three)
	require.True(t, ok)
	assert.Equal(t, uint64(3), out.Top()[0].(value.Bits).Uint64())

	// split consumes (idx, lst) top-first, produces (left, right) with right on top.
	out, ok = runOp(t, program.OpSplit, value.BitsFromUint(1), three)
	require.True(t, ok)
	top := out.Top()
	right := top[0].(*value.List)
	left := top[1].(*value.List)
	assert.Equal(t, 2, right.Len())
	assert.Equal(t, 1, left.Len())

	// join consumes (right, left) top-first.
	out, ok = runOp(t, program.OpJoin, right, left)
	require.True(t, ok)
	assert.True(t, out.Top()[0].Equal(three))
}

func TestOpArithmetic(t *testing.T) {
	// add is commutative; any order of operands gives the same sum.
	out, ok := runOp(t, program.OpAdd, value.BitsFromUint(2), value.BitsFromUint(3))
	require.True(t, ok)
	assert.Equal(t, uint64(5), out.Top()[0].(value.Bits).Uint64())

	// sub consumes (y, x) top-first and computes x-y: 5-3=2 needs y=3 on top.
	out, ok = runOp(t, program.OpSub, value.BitsFromUint(3), value.BitsFromUint(5))
	require.True(t, ok)
	assert.Equal(t, uint64(2), out.Top()[0].(value.Bits).Uint64())

	// x=1, y=3: 1-3 underflows.
	_, ok = runOp(t, program.OpSub, value.BitsFromUint(3), value.BitsFromUint(1))
	assert.False(t, ok, "underflow must fail")

	out, ok = runOp(t, program.OpMul, value.BitsFromUint(4), value.BitsFromUint(3))
	require.True(t, ok)
	assert.Equal(t, uint64(12), out.Top()[0].(value.Bits).Uint64())

	// div consumes (y, x) top-first and computes x = q*y + r: 7 = 3*2 + 1.
	out, ok = runOp(t, program.OpDiv, value.BitsFromUint(2), value.BitsFromUint(7))
	require.True(t, ok)
	top := out.Top()
	assert.Equal(t, uint64(1), top[0].(value.Bits).Uint64())
	assert.Equal(t, uint64(3), top[1].(value.Bits).Uint64())

	_, ok = runOp(t, program.OpDiv, value.BitsFromUint(0), value.BitsFromUint(7))
	assert.False(t, ok, "division by zero must fail")
}

func TestOpBits(t *testing.T) {
	a, b := value.Symbol("ab"), value.Symbol("cd")

	// bjoin consumes (y, x) top-first and computes x.Concat(y): want a then b.
	out, ok := runOp(t, program.OpBJoin, b, a)
	require.True(t, ok)
	joined := out.Top()[0].(value.Bits)
	assert.Equal(t, 32, joined.Len())

	// bsplit consumes (idx, bits) top-first, produces (left, right) with right on top.
	out, ok = runOp(t, program.OpBSplit, value.BitsFromUint(16), joined)
	require.True(t, ok)
	top := out.Top()
	assert.True(t, top[0].Equal(b))
	assert.True(t, top[1].Equal(a))

	out, ok = runOp(t, program.OpBLen, a)
	require.True(t, ok)
	assert.Equal(t, uint64(16), out.Top()[0].(value.Bits).Uint64())
}

func TestOpEff(t *testing.T) {
	log := effect.NewLog()
	stack := eval.FromTop(value.Symbol("request"))
	out, ok := eval.Eval(op(program.OpEff), log, stack)
	require.True(t, ok)
	assert.True(t, out.Top()[0].Equal(value.EmptyRecord()))
	assert.Len(t, log.Entries(), 1)

	_, ok = eval.Eval(op(program.OpEff), effect.Nop, eval.FromTop(value.Symbol("refused")))
	assert.False(t, ok)
}

func TestOpFailureLeavesStackUnchanged(t *testing.T) {
	stack := eval.FromTop(value.BitsFromUint(1))
	out, ok := eval.Eval(op(program.OpSwap), effect.Nop, stack)
	assert.False(t, ok)
	assert.Equal(t, stack, out)
}
