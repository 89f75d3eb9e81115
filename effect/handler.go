// Package effect defines the effect handler capability used throughout the
// evaluator and the module loader: a one-shot request operation, eff, and
// a nestable transaction protocol, try/commit/abort, used by the
// backtracking combinators Cond and Loop to make effects revertible.
//
// Composition between handlers (Env's intercepting handler, the loader's
// wrapping handler) is delegation, not inheritance: a wrapper stores the
// inner handler and forwards Try/Commit/Abort to it. Nested transactions
// are a stack of frames inside a single handler instance, never nested
// handler instances.
package effect

import "github.com/mna/glas/value"

// Handler is the capability every effect-aware combinator is given to run
// against. Eff processes one effect request, returning ok=false if the
// handler refuses it (a program failure, not a host error). Try opens a new
// transaction frame; the matching Commit or Abort must always be called
// before the handler is used outside that frame's scope.
type Handler interface {
	Eff(v value.Value) (value.Value, bool)
	Try()
	Commit()
	Abort()
}

// Nop is a Handler that refuses every effect. It is useful as the handler
// for programs that are not expected to issue any effects, and as the
// innermost handler behind a chain of Env wrappers.
var Nop Handler = nopHandler{}

type nopHandler struct{}

func (nopHandler) Eff(value.Value) (value.Value, bool) { return nil, false }
func (nopHandler) Try()                                {}
func (nopHandler) Commit()                             {}
func (nopHandler) Abort()                              {}
