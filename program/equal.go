package program

import "github.com/mna/glas/value"

// Every node's Kind is value.KindProgram: programs form their own Value
// shape, distinct from bits/pair/record/list, but compared structurally
// like the rest (see each type's Equal below).
func (*Op) Kind() value.Kind   { return value.KindProgram }
func (*Data) Kind() value.Kind { return value.KindProgram }
func (*Seq) Kind() value.Kind  { return value.KindProgram }
func (*Dip) Kind() value.Kind  { return value.KindProgram }
func (*Cond) Kind() value.Kind { return value.KindProgram }
func (*Loop) Kind() value.Kind { return value.KindProgram }
func (*Env) Kind() value.Kind  { return value.KindProgram }
func (*Prog) Kind() value.Kind { return value.KindProgram }

func (n *Op) String() string { return "op:" + n.Name }

func (n *Data) String() string { return "data(" + n.V.String() + ")" }

func (n *Seq) String() string {
	s := "seq["
	for i, item := range n.Items {
		if i > 0 {
			s += ", "
		}
		s += item.String()
	}
	return s + "]"
}

func (n *Dip) String() string { return "dip(" + n.P.String() + ")" }

func (n *Cond) String() string {
	return "cond(" + n.Try.String() + "; " + n.Then.String() + "; " + n.Else.String() + ")"
}

func (n *Loop) String() string { return "loop(" + n.While.String() + "; " + n.Do.String() + ")" }

func (n *Env) String() string { return "env(" + n.Handler.String() + "; " + n.P.String() + ")" }

func (n *Prog) String() string { return "prog(" + n.Meta.String() + "; " + n.Body.String() + ")" }

func (n *Op) Equal(other value.Value) bool {
	o, ok := other.(*Op)
	return ok && o.Name == n.Name
}

// Data.Equal (and every other node below) checks pointer identity before
// recursing into fields: most comparisons are between distinct trees, but
// a node that holds a reference back to one of its own ancestors -- as the
// bootstrap driver's fixed-point check can -- must short-circuit here
// rather than recurse forever.
func (n *Data) Equal(other value.Value) bool {
	o, ok := other.(*Data)
	if !ok {
		return false
	}
	return n == o || n.V.Equal(o.V)
}

func (n *Seq) Equal(other value.Value) bool {
	o, ok := other.(*Seq)
	if !ok || len(o.Items) != len(n.Items) {
		return false
	}
	if n == o {
		return true
	}
	for i, item := range n.Items {
		if !item.Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

func (n *Dip) Equal(other value.Value) bool {
	o, ok := other.(*Dip)
	if !ok {
		return false
	}
	return n == o || n.P.Equal(o.P)
}

func (n *Cond) Equal(other value.Value) bool {
	o, ok := other.(*Cond)
	if !ok {
		return false
	}
	return n == o || (n.Try.Equal(o.Try) && n.Then.Equal(o.Then) && n.Else.Equal(o.Else))
}

func (n *Loop) Equal(other value.Value) bool {
	o, ok := other.(*Loop)
	if !ok {
		return false
	}
	return n == o || (n.While.Equal(o.While) && n.Do.Equal(o.Do))
}

func (n *Env) Equal(other value.Value) bool {
	o, ok := other.(*Env)
	if !ok {
		return false
	}
	return n == o || (n.Handler.Equal(o.Handler) && n.P.Equal(o.P))
}

func (n *Prog) Equal(other value.Value) bool {
	o, ok := other.(*Prog)
	if !ok {
		return false
	}
	return n == o || (n.Meta.Equal(o.Meta) && n.Body.Equal(o.Body))
}
