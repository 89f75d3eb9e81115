package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/g0"
	"github.com/mna/glas/loader"
)

// Load implements the load command: resolve and compile a module by name,
// searching the given root directory and GLAS_PATH, printing the resulting
// artifact or the failure.
func (c *Cmd) Load(ctx context.Context, stdio mainer.Stdio, args []string) error {
	name, dir := args[0], args[1]

	log := effect.NewLog()
	l := loader.New(log, glasPath(dir))
	l.SetG0(g0.BuiltinCompileG0)

	v, ok := l.Load(name)
	for _, e := range log.Entries() {
		fmt.Fprintf(stdio.Stdout, "log: %s\n", e.String())
	}
	if !ok {
		err := fmt.Errorf("load: %s: not found or failed to compile", name)
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprintln(stdio.Stdout, v.String())
	return nil
}
