// Package eval implements the evaluator: it interprets a program tree
// against a value stack and an effect handler, honoring transactional
// semantics for the backtracking combinators Cond and Loop.
//
// Dispatch here is tree recursion rather than a flat bytecode loop, because
// a program (program.Program) is an explicit tree of combinator nodes, not
// a linear instruction stream.
//
// Every evaluation rule upholds one invariant throughout this package:
// Eval(p, h, s) returning ok=false always returns s itself, unchanged, as
// the second result -- a "stack purity" invariant applied uniformly to
// every program node (not just primitive operators) so that failure is
// safe to use pervasively for backtracking.
package eval

import (
	"fmt"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// Eval interprets p against stack using h as the effect handler, returning
// the resulting stack and true on success, or the unchanged input stack
// and false on failure.
func Eval(p program.Program, h effect.Handler, stack Stack) (Stack, bool) {
	switch n := p.(type) {
	case *program.Op:
		return evalOp(n, h, stack)

	case *program.Data:
		return push(stack, n.V), true

	case *program.Seq:
		return evalSeq(n, h, stack)

	case *program.Dip:
		return evalDip(n, h, stack)

	case *program.Cond:
		return evalCond(n, h, stack)

	case *program.Loop:
		return evalLoop(n, h, stack)

	case *program.Env:
		return evalEnv(n, h, stack)

	case *program.Prog:
		return Eval(n.Body, h, stack)

	default:
		panic(fmt.Sprintf("eval: unrecognized program node %T", p))
	}
}

func evalSeq(n *program.Seq, h effect.Handler, stack Stack) (Stack, bool) {
	cur := stack
	for _, item := range n.Items {
		next, ok := Eval(item, h, cur)
		if !ok {
			return stack, false
		}
		cur = next
	}
	return cur, true
}

func evalDip(n *program.Dip, h effect.Handler, stack Stack) (Stack, bool) {
	top, rest, ok := pop(stack)
	if !ok {
		return stack, false
	}
	res, ok := Eval(n.P, h, rest)
	if !ok {
		return stack, false
	}
	return push(res, top), true
}

func evalCond(n *program.Cond, h effect.Handler, stack Stack) (Stack, bool) {
	h.Try()
	tried, ok := Eval(n.Try, h, stack)
	if !ok {
		h.Abort()
		return Eval(n.Else, h, stack)
	}
	h.Commit()
	res, ok := Eval(n.Then, h, tried)
	if !ok {
		return stack, false
	}
	return res, true
}

func evalLoop(n *program.Loop, h effect.Handler, stack Stack) (Stack, bool) {
	cur := stack
	for {
		h.Try()
		next, ok := Eval(n.While, h, cur)
		if !ok {
			h.Abort()
			return cur, true
		}
		h.Commit()
		res, ok := Eval(n.Do, h, next)
		if !ok {
			return stack, false
		}
		cur = res
	}
}

func evalEnv(n *program.Env, h effect.Handler, stack Stack) (Stack, bool) {
	inner := &envHandler{outer: h, handler: n.Handler}
	return Eval(n.P, inner, stack)
}

// envHandler intercepts eff requests issued by the program running under an
// Env combinator. It delegates transaction bookkeeping straight to the
// outer handler: an Env introduces no effect state of its own, only a
// dispatch rule for eff (*loader.Loader forwards the same way for the same
// reason).
type envHandler struct {
	outer   effect.Handler
	handler program.Program
}

func (e *envHandler) Eff(v value.Value) (value.Value, bool) {
	res, ok := Eval(e.handler, e.outer, FromTop(v))
	if !ok || len(res) != 1 {
		return nil, false
	}
	return res[len(res)-1], true
}

func (e *envHandler) Try()    { e.outer.Try() }
func (e *envHandler) Commit() { e.outer.Commit() }
func (e *envHandler) Abort()  { e.outer.Abort() }
