package g0

import (
	"testing"

	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCompileG0DelegatesToCompile(t *testing.T) {
	v, ok := BuiltinCompileG0(value.BitsFromBytes([]byte("copy drop 2 seq")))
	require.True(t, ok)
	seq, isSeq := v.(*program.Seq)
	require.True(t, isSeq)
	require.Len(t, seq.Items, 2)
}

func TestBuiltinCompileG0RejectsNonBitsInput(t *testing.T) {
	_, ok := BuiltinCompileG0(value.EmptyRecord())
	assert.False(t, ok)
}

func TestBuiltinCompileG0RejectsMalformedSource(t *testing.T) {
	_, ok := BuiltinCompileG0(value.BitsFromBytes([]byte("bogus")))
	assert.False(t, ok)
}
