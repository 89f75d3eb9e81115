package g0

import "github.com/mna/glas/value"

// BuiltinCompileG0 is the native g0 compiler: it has the same
// Value -> Option<Value> shape as any other compiler function but is
// implemented directly in Go rather than loaded as a module, so the
// bootstrap driver has a starting point before any g0 module is available.
func BuiltinCompileG0(src value.Value) (value.Value, bool) {
	bits, ok := src.(value.Bits)
	if !ok {
		return nil, false
	}
	return Compile(bits.Bytes())
}
