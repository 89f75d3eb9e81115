package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/eval"
	"github.com/mna/glas/g0"
	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// Eval implements the eval command: compile a g0 program, run it against an
// optional stack literal (also g0 syntax), and print the outcome.
func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	progSrc, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	v, ok := g0.Compile(progSrc)
	if !ok {
		err := fmt.Errorf("eval: %s: compile failed", args[0])
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	p, ok := v.(program.Program)
	if !ok {
		err := fmt.Errorf("eval: %s: artifact is not a program", args[0])
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	var initial []value.Value
	if len(args) > 1 {
		stackSrc, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		initial, err = compileStackLiteral(stackSrc)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}

	log := effect.NewLog()
	out, ok := eval.Eval(p, log, eval.FromTop(initial...))
	for _, e := range log.Entries() {
		fmt.Fprintf(stdio.Stdout, "log: %s\n", e.String())
	}
	if !ok {
		err := fmt.Errorf("eval: program failed")
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	for _, v := range out.Top() {
		fmt.Fprintln(stdio.Stdout, v.String())
	}
	return nil
}

// compileStackLiteral compiles src (g0 syntax) into an ordered list of
// stack values, top-first. A plain, non-list artifact is treated as a
// single-element stack; a *value.List is unpacked element by element, with
// index 0 as the top, mirroring eval.FromTop's own convention.
func compileStackLiteral(src []byte) ([]value.Value, error) {
	v, ok := g0.Compile(src)
	if !ok {
		return nil, fmt.Errorf("eval: stack literal: compile failed")
	}
	lst, ok := v.(*value.List)
	if !ok {
		return []value.Value{v}, nil
	}
	out := make([]value.Value, lst.Len())
	for i := range out {
		out[i] = lst.Index(i)
	}
	return out, nil
}
