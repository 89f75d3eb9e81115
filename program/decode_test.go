package program_test

import (
	"testing"

	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePrograms() map[string]program.Program {
	leaf := &program.Op{Name: program.OpCopy}
	return map[string]program.Program{
		"op":   leaf,
		"data": &program.Data{V: value.BitsFromUint(42)},
		"seq":  &program.Seq{Items: []program.Program{leaf, &program.Op{Name: program.OpDrop}}},
		"nop":  &program.Seq{},
		"dip":  &program.Dip{P: leaf},
		"cond": &program.Cond{Try: leaf, Then: leaf, Else: &program.Op{Name: program.OpSwap}},
		"loop": &program.Loop{While: leaf, Do: &program.Op{Name: program.OpEq}},
		"env":  &program.Env{Handler: leaf, P: &program.Op{Name: program.OpEff}},
		"prog": &program.Prog{Meta: value.EmptyRecord().Put(value.Symbol("arity"), value.BitsFromUint(1)), Body: leaf},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for name, p := range samplePrograms() {
		t.Run(name, func(t *testing.T) {
			encoded := program.Encode(p)
			decoded, ok := program.Decode(encoded)
			require.True(t, ok)
			assert.True(t, p.Equal(decoded), "round trip of %s did not preserve structure", name)
		})
	}
}

func TestDecodePassesThroughNative(t *testing.T) {
	p := &program.Op{Name: program.OpLen}
	decoded, ok := program.Decode(p)
	require.True(t, ok)
	assert.Same(t, p, decoded.(*program.Op))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		desc string
		v    value.Value
	}{
		{"not a variant", value.BitsFromUint(1)},
		{"unknown tag", value.Variant(value.Symbol("bogus"), value.Empty)},
		{"op with unknown name", value.Variant(value.Symbol("op"), value.Symbol("frobnicate"))},
		{"op field not bits", value.Variant(value.Symbol("op"), value.EmptyRecord())},
		{"seq field not a list", value.Variant(value.Symbol("seq"), value.Empty)},
		{"cond wrong arity", value.Variant(value.Symbol("cond"), value.NewList([]value.Value{value.Empty, value.Empty}))},
		{"loop field not a list", value.Variant(value.Symbol("loop"), value.Empty)},
		{"env wrong arity", value.Variant(value.Symbol("env"), value.NewList(nil))},
		{"prog meta not a record", value.Variant(value.Symbol("prog"), value.NewList([]value.Value{value.Empty, value.Variant(value.Symbol("op"), value.Symbol("copy"))}))},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, ok := program.Decode(c.v)
			assert.False(t, ok)
		})
	}
}

func TestEqualDistinguishesNodeKinds(t *testing.T) {
	op := &program.Op{Name: program.OpCopy}
	data := &program.Data{V: value.BitsFromUint(0)}
	assert.False(t, op.Equal(data))
	assert.True(t, op.Equal(&program.Op{Name: program.OpCopy}))
	assert.False(t, op.Equal(&program.Op{Name: program.OpDrop}))
}

func TestUnwrapStripsProgAnnotations(t *testing.T) {
	inner := &program.Op{Name: program.OpSwap}
	wrapped := &program.Prog{Meta: value.EmptyRecord(), Body: &program.Prog{Meta: value.EmptyRecord(), Body: inner}}
	assert.True(t, program.Unwrap(wrapped).Equal(inner))
	assert.True(t, program.Unwrap(inner).Equal(inner))
}

func TestIsOp(t *testing.T) {
	assert.True(t, program.IsOp(program.OpCopy))
	assert.False(t, program.IsOp("nope"))
	for _, name := range program.Opset {
		assert.True(t, program.IsOp(name))
	}
}
