// Package g0 implements the built-in g0 compiler and the small,
// explicitly-reduced textual syntax it parses. A real surface-syntax
// parser for the base language is out of scope for this runtime (only its
// interface is specified); this package is the minimal stand-in needed to
// have anything to compile during bootstrap, deliberately scoped down
// rather than a general-purpose language front end.
//
// The syntax is postfix (reverse Polish): tokens are scanned left to right
// and pushed onto or combined on a single build stack. Postfix was chosen
// over a bracketed/recursive grammar because the runtime's opset has no
// call or recursion primitive beyond Loop's single level of repetition: a
// self-hosted compiler for this syntax can be written as one linear scan
// with an explicit value stack, never needing recursive descent.
package g0

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// opNames is a membership check for the 22 primitive operators built
// directly from program.Opset, so a bare keyword like "copy" or "put"
// builds a program.Op node rather than being mistaken for one of this
// syntax's own construction keywords.
var opNames = func() map[string]bool {
	m := make(map[string]bool, len(program.Opset))
	for _, op := range program.Opset {
		m[op] = true
	}
	return m
}()

// tokenize splits src into fields, line by line, stripping '#' comments --
// the same two-step scan asm.go's asm.next does.
func tokenize(src []byte) ([]string, error) {
	var toks []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		for i, f := range fields {
			if strings.HasPrefix(f, "#") {
				fields = fields[:i]
				break
			}
		}
		toks = append(toks, fields...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// builder holds the state of one compilation: the token stream and the
// single value stack every keyword pushes onto or reduces.
type builder struct {
	toks  []string
	pos   int
	stack []value.Value
}

func (b *builder) peek() (string, bool) {
	if b.pos >= len(b.toks) {
		return "", false
	}
	return b.toks[b.pos], true
}

func (b *builder) next() (string, bool) {
	t, ok := b.peek()
	if ok {
		b.pos++
	}
	return t, ok
}

func (b *builder) push(v value.Value) { b.stack = append(b.stack, v) }

// pop removes and returns n values from the top of the stack, in the order
// they were pushed (oldest of the n first), or ok=false if fewer than n are
// available.
func (b *builder) pop(n int) ([]value.Value, bool) {
	if len(b.stack) < n {
		return nil, false
	}
	at := len(b.stack) - n
	out := append([]value.Value(nil), b.stack[at:]...)
	b.stack = b.stack[:at]
	return out, true
}

func (b *builder) pop1() (value.Value, bool) {
	vs, ok := b.pop(1)
	if !ok {
		return nil, false
	}
	return vs[0], true
}

// run consumes every token, building one Value on the stack -- the final
// Value is the module artifact. It returns false on any malformed token,
// unknown keyword, or stack-shape violation -- a compile failure, never a
// panic.
func (b *builder) run() (value.Value, bool) {
	for {
		tok, ok := b.next()
		if !ok {
			break
		}
		if !b.step(tok) {
			return nil, false
		}
	}
	if len(b.stack) != 1 {
		return nil, false
	}
	return b.stack[0], true
}

func (b *builder) step(tok string) bool {
	switch {
	case opNames[tok]:
		b.push(&program.Op{Name: tok})
		return true

	case strings.HasPrefix(tok, ":") && len(tok) > 1:
		b.push(value.Symbol(tok[1:]))
		return true

	case strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) >= 2:
		bits, ok := parseBitLiteral(tok[1 : len(tok)-1])
		if !ok {
			return false
		}
		b.push(bits)
		return true

	case isDecimal(tok):
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return false
		}
		b.push(value.BitsFromUint(n))
		return true
	}

	switch tok {
	case "data":
		v, ok := b.pop1()
		if !ok {
			return false
		}
		b.push(&program.Data{V: v})
		return true

	case "seq":
		n, ok := b.popCount()
		if !ok {
			return false
		}
		items, ok := b.popPrograms(n)
		if !ok {
			return false
		}
		b.push(&program.Seq{Items: items})
		return true

	case "dip":
		p, ok := b.popProgram()
		if !ok {
			return false
		}
		b.push(&program.Dip{P: p})
		return true

	case "cond":
		vs, ok := b.pop(3)
		if !ok {
			return false
		}
		try, then, els := asProgram(vs[0]), asProgram(vs[1]), asProgram(vs[2])
		if try == nil || then == nil || els == nil {
			return false
		}
		b.push(&program.Cond{Try: try, Then: then, Else: els})
		return true

	case "loop":
		vs, ok := b.pop(2)
		if !ok {
			return false
		}
		while, do := asProgram(vs[0]), asProgram(vs[1])
		if while == nil || do == nil {
			return false
		}
		b.push(&program.Loop{While: while, Do: do})
		return true

	case "env":
		vs, ok := b.pop(2)
		if !ok {
			return false
		}
		handler, body := asProgram(vs[0]), asProgram(vs[1])
		if handler == nil || body == nil {
			return false
		}
		b.push(&program.Env{Handler: handler, P: body})
		return true

	case "prog":
		vs, ok := b.pop(2)
		if !ok {
			return false
		}
		meta, isRec := vs[0].(*value.Record)
		body := asProgram(vs[1])
		if !isRec || body == nil {
			return false
		}
		b.push(&program.Prog{Meta: meta, Body: body})
		return true

	case "rec":
		b.push(value.EmptyRecord())
		return true

	case "setf":
		vs, ok := b.pop(3)
		if !ok {
			return false
		}
		rec, isRec := vs[0].(*value.Record)
		key, isBits := vs[2].(value.Bits)
		if !isRec || !isBits {
			return false
		}
		b.push(rec.Put(key, vs[1]))
		return true

	case "pair":
		vs, ok := b.pop(2)
		if !ok {
			return false
		}
		b.push(value.NewPair(vs[0], vs[1]))
		return true

	case "list":
		n, ok := b.popCount()
		if !ok {
			return false
		}
		elems, ok := b.pop(n)
		if !ok {
			return false
		}
		b.push(value.NewList(elems))
		return true
	}
	return false
}

// popCount pops the count argument of seq and list: the natural number
// pushed just before the keyword, as in "copy drop 2 seq".
func (b *builder) popCount() (int, bool) {
	v, ok := b.pop1()
	if !ok {
		return 0, false
	}
	n, isBits := v.(value.Bits)
	if !isBits || n.Len() > 63 {
		return 0, false
	}
	return int(n.Uint64()), true
}

func (b *builder) popProgram() (program.Program, bool) {
	v, ok := b.pop1()
	if !ok {
		return nil, false
	}
	p := asProgram(v)
	return p, p != nil
}

func (b *builder) popPrograms(n int) ([]program.Program, bool) {
	vs, ok := b.pop(n)
	if !ok {
		return nil, false
	}
	out := make([]program.Program, n)
	for i, v := range vs {
		p := asProgram(v)
		if p == nil {
			return nil, false
		}
		out[i] = p
	}
	return out, true
}

func asProgram(v value.Value) program.Program {
	p, ok := v.(program.Program)
	if !ok {
		return nil
	}
	return p
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseBitLiteral(s string) (value.Bits, bool) {
	if s == "" {
		return value.Empty, true
	}
	data := make([]byte, (len(s)+7)/8)
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			data[i/8] |= 1 << uint(7-i%8)
		default:
			return value.Bits{}, false
		}
	}
	return value.NewBits(data, len(s)), true
}

// Compile parses src (the g0 postfix token stream) into a single Value,
// the module artifact. It is the shared implementation behind
// BuiltinCompileG0; exported separately so callers that already hold a
// byte slice (tests, tooling) can skip the Value wrapping round-trip.
func Compile(src []byte) (value.Value, bool) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, false
	}
	b := &builder{toks: toks}
	return b.run()
}
