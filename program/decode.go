package program

import "github.com/mna/glas/value"

// Encode and Decode translate between a Program's native Go representation
// (used directly by package eval and by the native g0 builder) and its
// canonical Value encoding: a variant record tagging the node kind, with
// its children as a list, so that a Program is itself a Value.
//
// The native representation exists because eval.Eval type-switches on it
// directly, and because the built-in g0 compiler constructs it while
// parsing -- both are ordinary Go code with no trouble building a Go
// struct. A *running* g0 program cannot: the runtime's opset has no
// operator that fabricates an Op/Seq/... node, only get/put/pushl/pushr
// and friends over bits, records and lists. A self-hosted compiler program
// can therefore only ever produce the canonical encoding as its output
// value, which is why Decode exists: the loader applies it to every
// "compile" field before treating it as a Program (see loader.go).
const (
	tagOp   = "op"
	tagData = "data"
	tagSeq  = "seq"
	tagDip  = "dip"
	tagCond = "cond"
	tagLoop = "loop"
	tagEnv  = "env"
	tagProg = "prog"
)

// Encode returns p's canonical Value encoding.
func Encode(p Program) value.Value {
	switch n := p.(type) {
	case *Op:
		return value.Variant(value.Symbol(tagOp), value.Symbol(n.Name))
	case *Data:
		return value.Variant(value.Symbol(tagData), n.V)
	case *Seq:
		items := make([]value.Value, len(n.Items))
		for i, it := range n.Items {
			items[i] = Encode(it)
		}
		return value.Variant(value.Symbol(tagSeq), value.NewList(items))
	case *Dip:
		return value.Variant(value.Symbol(tagDip), Encode(n.P))
	case *Cond:
		lst := value.NewList([]value.Value{Encode(n.Try), Encode(n.Then), Encode(n.Else)})
		return value.Variant(value.Symbol(tagCond), lst)
	case *Loop:
		lst := value.NewList([]value.Value{Encode(n.While), Encode(n.Do)})
		return value.Variant(value.Symbol(tagLoop), lst)
	case *Env:
		lst := value.NewList([]value.Value{Encode(n.Handler), Encode(n.P)})
		return value.Variant(value.Symbol(tagEnv), lst)
	case *Prog:
		lst := value.NewList([]value.Value{n.Meta, Encode(n.Body)})
		return value.Variant(value.Symbol(tagProg), lst)
	default:
		return value.EmptyRecord()
	}
}

// Decode reverses Encode. If v is already a Program (the native
// representation passes through unchanged), Decode returns it directly --
// this is the common case for artifacts built by the native g0 compiler.
// Otherwise v must be a single-field variant record in the shape
// Encode produces; any other shape is a decode failure, not a panic --
// malformed compiler output is a host error, never fatal.
func Decode(v value.Value) (Program, bool) {
	if p, ok := v.(Program); ok {
		return p, true
	}
	label, field, ok := value.AsVariant(v)
	if !ok {
		return nil, false
	}
	switch string(label.Bytes()) {
	case tagOp:
		sym, ok := field.(value.Bits)
		if !ok {
			return nil, false
		}
		name := string(sym.Bytes())
		if !IsOp(name) {
			return nil, false
		}
		return &Op{Name: name}, true

	case tagData:
		return &Data{V: field}, true

	case tagSeq:
		lst, ok := field.(*value.List)
		if !ok {
			return nil, false
		}
		items := make([]Program, lst.Len())
		for i := 0; i < lst.Len(); i++ {
			p, ok := Decode(lst.Index(i))
			if !ok {
				return nil, false
			}
			items[i] = p
		}
		return &Seq{Items: items}, true

	case tagDip:
		p, ok := Decode(field)
		if !ok {
			return nil, false
		}
		return &Dip{P: p}, true

	case tagCond:
		lst, ok := field.(*value.List)
		if !ok || lst.Len() != 3 {
			return nil, false
		}
		try, ok1 := Decode(lst.Index(0))
		then, ok2 := Decode(lst.Index(1))
		els, ok3 := Decode(lst.Index(2))
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return &Cond{Try: try, Then: then, Else: els}, true

	case tagLoop:
		lst, ok := field.(*value.List)
		if !ok || lst.Len() != 2 {
			return nil, false
		}
		while, ok1 := Decode(lst.Index(0))
		do, ok2 := Decode(lst.Index(1))
		if !ok1 || !ok2 {
			return nil, false
		}
		return &Loop{While: while, Do: do}, true

	case tagEnv:
		lst, ok := field.(*value.List)
		if !ok || lst.Len() != 2 {
			return nil, false
		}
		handler, ok1 := Decode(lst.Index(0))
		body, ok2 := Decode(lst.Index(1))
		if !ok1 || !ok2 {
			return nil, false
		}
		return &Env{Handler: handler, P: body}, true

	case tagProg:
		lst, ok := field.(*value.List)
		if !ok || lst.Len() != 2 {
			return nil, false
		}
		meta, isRec := lst.Index(0).(*value.Record)
		body, ok2 := Decode(lst.Index(1))
		if !isRec || !ok2 {
			return nil, false
		}
		return &Prog{Meta: meta, Body: body}, true
	}
	return nil, false
}
