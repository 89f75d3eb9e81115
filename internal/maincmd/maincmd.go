package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "glas"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Runtime and bootstrap driver for the glas combinator language.

The <command> can be one of:
       eval <program> [<stack>]  Compile a g0 assembly-text program, run it
                                 against the stack literal (also g0 syntax,
                                 defaulting to empty), and print the
                                 resulting stack or the failure.
       load <name> <dir>        Resolve and compile module <name> by
                                 searching <dir> and GLAS_PATH, printing the
                                 resulting artifact or the failure.
       bootstrap <dir>...       Run the self-hosting bootstrap driver
                                 against the given GLAS_PATH directories and
                                 report whether the fixed-point check
                                 passed.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

GLAS_PATH, if set in the environment, is split on ';' and appended to the
directories given on the command line.

More information on the %[1]s repository:
       https://github.com/mna/glas
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "eval":
		if len(c.args[1:]) == 0 {
			return errors.New("eval: a program file must be provided")
		}
	case "load":
		if len(c.args[1:]) != 2 {
			return errors.New("load: a module name and a root directory must be provided")
		}
	case "bootstrap":
		if len(c.args[1:]) == 0 {
			return errors.New("bootstrap: at least one GLAS_PATH directory must be provided")
		}
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// glasPath returns the search directories given on the command line
// followed by GLAS_PATH split on ';', matching loader.Loader's own search
// order (local/given directories, then GLAS_PATH).
func glasPath(given ...string) []string {
	path := append([]string(nil), given...)
	if env := os.Getenv("GLAS_PATH"); env != "" {
		path = append(path, strings.Split(env, ";")...)
	}
	return path
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
