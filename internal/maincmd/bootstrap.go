package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/g0"
	"github.com/mna/glas/loader"
)

// Bootstrap implements the bootstrap command: run the self-hosting driver
// against the given GLAS_PATH directories and report whether the
// fixed-point check passed.
func (c *Cmd) Bootstrap(ctx context.Context, stdio mainer.Stdio, args []string) error {
	log := effect.NewLog()
	_, err := loader.Bootstrap(log, glasPath(args...), g0.BuiltinCompileG0)
	for _, e := range log.Entries() {
		fmt.Fprintf(stdio.Stdout, "log: %s\n", e.String())
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprintln(stdio.Stdout, "bootstrap: fixed point reached")
	return nil
}
