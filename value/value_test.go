package value_test

import (
	"testing"

	"github.com/mna/glas/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsEqual(t *testing.T) {
	cases := []struct {
		desc string
		a, b value.Bits
		want bool
	}{
		{"both empty", value.Empty, value.Empty, true},
		{"same symbol", value.Symbol("copy"), value.Symbol("copy"), true},
		{"different symbol", value.Symbol("copy"), value.Symbol("drop"), false},
		{"different length, same prefix", value.Symbol("a"), value.Symbol("ab"), false},
		{"zero and empty", value.BitsFromUint(0), value.Empty, true},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Equal(c.b))
		})
	}
}

func TestBitsBytesRoundTrip(t *testing.T) {
	b := value.Symbol("hello")
	assert.Equal(t, []byte("hello"), b.Bytes())
}

func TestNatArithmetic(t *testing.T) {
	a, b := value.BitsFromUint(7), value.BitsFromUint(3)
	assert.Equal(t, uint64(10), value.NatAdd(a, b).Uint64())
	assert.Equal(t, uint64(6), value.NatMul(value.BitsFromUint(2), b).Uint64())

	sum, ok := value.NatSub(a, b)
	require.True(t, ok)
	assert.Equal(t, uint64(4), sum.Uint64())

	_, ok = value.NatSub(b, a)
	assert.False(t, ok, "subtracting a larger value must fail")

	q, r, ok := value.NatDiv(a, b)
	require.True(t, ok)
	assert.Equal(t, uint64(2), q.Uint64())
	assert.Equal(t, uint64(1), r.Uint64())

	_, _, ok = value.NatDiv(a, value.BitsFromUint(0))
	assert.False(t, ok, "division by zero must fail")
}

func TestNatWidth(t *testing.T) {
	n := value.NatWidth(16, value.BitsFromUint(1))
	assert.Equal(t, 16, n.Len())
	assert.Equal(t, uint64(1), n.Uint64())
}

func TestRecordPutGetDel(t *testing.T) {
	r := value.EmptyRecord()
	r2 := r.Put(value.Symbol("a"), value.BitsFromUint(1))
	r3 := r2.Put(value.Symbol("b"), value.BitsFromUint(2))

	// Put is persistent: earlier records are untouched.
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, r2.Len())
	assert.Equal(t, 2, r3.Len())

	v, ok := r3.Get(value.Symbol("a"))
	require.True(t, ok)
	assert.Equal(t, uint64(1), v.(value.Bits).Uint64())

	r4 := r3.Del(value.Symbol("a"))
	_, ok = r4.Get(value.Symbol("a"))
	assert.False(t, ok)
	assert.Equal(t, 1, r4.Len())

	// Del of an absent key is total and returns an equivalent record.
	r5 := r4.Del(value.Symbol("nope"))
	assert.True(t, r4.Equal(r5))
}

func TestRecordKeysOrdered(t *testing.T) {
	r := value.EmptyRecord().
		Put(value.Symbol("z"), value.Empty).
		Put(value.Symbol("a"), value.Empty).
		Put(value.Symbol("m"), value.Empty)
	keys := r.Keys()
	require.Len(t, keys, 3)
	for i := 1; i < len(keys); i++ {
		assert.LessOrEqual(t, keys[i-1].String(), keys[i].String())
	}
}

func TestVariantRoundTrip(t *testing.T) {
	v := value.Variant(value.Symbol("op"), value.Symbol("copy"))
	label, field, ok := value.AsVariant(v)
	require.True(t, ok)
	assert.True(t, label.Equal(value.Symbol("op")))
	assert.True(t, field.Equal(value.Symbol("copy")))

	// A record with more than one field is not a variant.
	multi := value.EmptyRecord().Put(value.Symbol("a"), value.Empty).Put(value.Symbol("b"), value.Empty)
	_, _, ok = value.AsVariant(multi)
	assert.False(t, ok)
}

func TestListOps(t *testing.T) {
	a, b, c := value.BitsFromUint(1), value.BitsFromUint(2), value.BitsFromUint(3)
	l := value.NewList([]value.Value{a, b, c})

	head, tail, ok := l.PopL()
	require.True(t, ok)
	assert.True(t, head.Equal(a))
	assert.Equal(t, 2, tail.Len())

	init, last, ok := l.PopR()
	require.True(t, ok)
	assert.True(t, last.Equal(c))
	assert.Equal(t, 2, init.Len())

	left, right, ok := l.Split(1)
	require.True(t, ok)
	assert.Equal(t, 1, left.Len())
	assert.Equal(t, 2, right.Len())
	assert.True(t, left.Join(right).Equal(l))

	_, _, ok = l.Split(4)
	assert.False(t, ok, "split past the end must fail")

	empty, _, ok := value.EmptyList.PopL()
	assert.False(t, ok)
	assert.Nil(t, empty)
}

func TestListPushLPushR(t *testing.T) {
	l := value.EmptyList.PushR(value.BitsFromUint(1)).PushL(value.BitsFromUint(0))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, uint64(0), l.Index(0).(value.Bits).Uint64())
	assert.Equal(t, uint64(1), l.Index(1).(value.Bits).Uint64())
}

func TestPairEqual(t *testing.T) {
	p1 := value.NewPair(value.BitsFromUint(1), value.BitsFromUint(2))
	p2 := value.NewPair(value.BitsFromUint(1), value.BitsFromUint(2))
	p3 := value.NewPair(value.BitsFromUint(1), value.BitsFromUint(3))
	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bits", value.KindBits.String())
	assert.Equal(t, "program", value.KindProgram.String())
}
