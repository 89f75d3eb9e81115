// Package loader implements the module loader: resolving a module name to
// a file, compiling it through a chain of language compilers keyed by
// filename extension, and caching both steps.
//
// A *Loader is itself an effect.Handler: the compiler closures GetCompiler
// installs hold a back-reference to the Loader that built them, so they
// can issue further load effects. It intercepts load: and log: requests
// and forwards everything else to the downstream handler it was built
// with.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"

	"github.com/mna/glas/arity"
	"github.com/mna/glas/effect"
	"github.com/mna/glas/eval"
	"github.com/mna/glas/program"
	"github.com/mna/glas/value"
)

// CompilerFunc is the contract a language-<ext> module's compile field must
// satisfy once wrapped by GetCompiler.
type CompilerFunc func(value.Value) (value.Value, bool)

type cacheEntry struct {
	val value.Value
	ok  bool
}

type compilerEntry struct {
	fn CompilerFunc
	ok bool
}

// g0Cell holds the currently installed g0 compiler. It exists as its own
// type because the active g0 compiler is mutated after the Loader that
// refers to it is constructed: the cell requires two-phase construction,
// allocate then install, not a single-phase constructor.
type g0Cell struct {
	fn CompilerFunc
}

// Loader holds the loader's resolution and compilation state: the search
// path, the currently installed g0 compiler, the re-entrancy stack used
// for cycle detection, and the file/compiler caches.
type Loader struct {
	downstream effect.Handler
	glasPath   []string
	g0         *g0Cell

	loading       []string // most-recent-first
	cache         *swiss.Map[string, cacheEntry]
	compilerCache *swiss.Map[string, compilerEntry]
}

// New returns a Loader with an empty cache and no g0 compiler installed
// yet; call SetG0 before loading anything with a .g0 extension in its
// chain. downstream receives every effect this loader does not itself
// intercept, and every log this loader emits.
func New(downstream effect.Handler, glasPath []string) *Loader {
	return &Loader{
		downstream:    downstream,
		glasPath:      append([]string(nil), glasPath...),
		g0:            &g0Cell{},
		cache:         swiss.NewMap[string, cacheEntry](8),
		compilerCache: swiss.NewMap[string, compilerEntry](8),
	}
}

// SetG0 installs fn as the currently active g0 compiler.
func (l *Loader) SetG0(fn CompilerFunc) { l.g0.fn = fn }

// Load resolves name via the search algorithm and loads the resulting file.
func (l *Loader) Load(name string) (value.Value, bool) {
	fp, ok := l.resolve(name)
	if !ok {
		return nil, false
	}
	return l.LoadFile(fp)
}

// LoadFile loads the file at fp: cache lookup, cycle detection against the
// current loading stack, then read-compile-cache.
func (l *Loader) LoadFile(fp string) (value.Value, bool) {
	if ce, ok := l.cache.Get(fp); ok {
		return ce.val, ce.ok
	}
	if idx := slices.Index(l.loading, fp); idx >= 0 {
		l.logCycle(fp, idx)
		return nil, false
	}
	l.loading = append([]string{fp}, l.loading...)
	val, ok := l.compileFile(fp)
	l.loading = l.loading[1:]
	l.cache.Put(fp, cacheEntry{val, ok})
	return val, ok
}

func (l *Loader) compileFile(fp string) (value.Value, bool) {
	data, err := os.ReadFile(fp)
	if err != nil {
		l.logf("error", "read %s: %v", fp, err)
		return nil, false
	}
	l.logf("info", "loading %s", fp)
	v := value.Value(value.BitsFromBytes(data))
	exts := extensionChain(fp)
	for i := len(exts) - 1; i >= 0; i-- {
		compiler, ok := l.GetCompiler(exts[i])
		if !ok {
			l.logf("error", "%s: no compiler for extension %q", fp, exts[i])
			return nil, false
		}
		nv, ok := compiler(v)
		if !ok {
			l.logf("error", "%s: compile failed for extension %q", fp, exts[i])
			return nil, false
		}
		v = nv
	}
	return v, true
}

// extensionChain returns fp's filename segments after the first '.', e.g.
// "foo.x.g0" -> ["x", "g0"].
func extensionChain(fp string) []string {
	base := filepath.Base(fp)
	parts := strings.Split(base, ".")
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}

// baseName returns the filename segment before the first '.'.
func baseName(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// searchPath builds the directory list: the local directory (of the file
// currently being loaded, or the working directory), followed by
// GLAS_PATH.
func (l *Loader) searchPath() []string {
	local := "."
	if len(l.loading) > 0 {
		local = filepath.Dir(l.loading[0])
	}
	out := make([]string, 0, 1+len(l.glasPath))
	out = append(out, local)
	out = append(out, l.glasPath...)
	return out
}

// resolve implements the search algorithm for a module name over the
// local directory plus GLAS_PATH.
func (l *Loader) resolve(name string) (string, bool) {
	return l.resolveIn(l.searchPath(), name)
}

// resolveIn runs the same search algorithm restricted to dirs, in order:
// the first directory with any match wins; more than one match in that
// directory is an ambiguity error; no match anywhere is a not-found
// warning. Bootstrap uses this directly to search GLAS_PATH only, skipping
// the local directory.
func (l *Loader) resolveIn(dirs []string, name string) (string, bool) {
	for _, d := range dirs {
		matches := matchesInDir(d, name)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			l.logf("error", "module %q: ambiguous, %d matches in %s", name, len(matches), d)
			return "", false
		}
		l.logf("info", "module %q resolved to %s", name, matches[0])
		return matches[0], true
	}
	l.logf("warn", "module %q not found", name)
	return "", false
}

// matchesInDir returns every file in d that resolves name: files directly
// in d whose base equals name, plus files in d/name/ whose base is the
// literal "public".
func matchesInDir(d, name string) []string {
	var out []string
	if entries, err := os.ReadDir(d); err == nil {
		for _, e := range entries {
			if !e.IsDir() && baseName(e.Name()) == name {
				out = append(out, filepath.Join(d, e.Name()))
			}
		}
	}
	sub := filepath.Join(d, name)
	if entries, err := os.ReadDir(sub); err == nil {
		for _, e := range entries {
			if !e.IsDir() && baseName(e.Name()) == "public" {
				out = append(out, filepath.Join(sub, e.Name()))
			}
		}
	}
	return out
}

// GetCompiler resolves suffix to a compiler function. An empty suffix is
// the identity (no compiler applies); "g0" is the currently installed
// CompileG0; any other suffix loads language-<suffix> and wraps its
// compile field.
func (l *Loader) GetCompiler(suffix string) (CompilerFunc, bool) {
	if suffix == "" {
		return identityCompiler, true
	}
	if suffix == "g0" {
		if l.g0.fn == nil {
			return nil, false
		}
		return l.g0.fn, true
	}
	modName := "language-" + suffix
	fp, ok := l.resolve(modName)
	if !ok {
		return nil, false
	}
	if ce, ok := l.compilerCache.Get(fp); ok {
		return ce.fn, ce.ok
	}
	fn, ok := l.loadCompilerModule(fp)
	l.compilerCache.Put(fp, compilerEntry{fn, ok})
	return fn, ok
}

func identityCompiler(v value.Value) (value.Value, bool) { return v, true }

// loadCompilerModule loads fp, expects a record with a compile field of
// static arity (1,1), and wraps it as a CompilerFunc that evaluates it
// with this Loader as the effect handler, so the wrapped closure can
// itself issue load effects.
func (l *Loader) loadCompilerModule(fp string) (CompilerFunc, bool) {
	artifact, ok := l.LoadFile(fp)
	if !ok {
		return nil, false
	}
	return l.wrapCompileArtifact(fp, artifact)
}

// wrapCompileArtifact extracts the compile field from a language module's
// artifact and wraps it as a CompilerFunc: a record containing a compile
// field of static arity (1,1), evaluated with this Loader as the effect
// handler so the wrapped closure can itself issue load effects.
func (l *Loader) wrapCompileArtifact(fp string, artifact value.Value) (CompilerFunc, bool) {
	rec, isRec := artifact.(*value.Record)
	if !isRec {
		l.logf("error", "%s: language module did not evaluate to a record", fp)
		return nil, false
	}
	field, found := rec.Get(value.Symbol("compile"))
	if !found {
		l.logf("error", "%s: language module missing 'compile' field", fp)
		return nil, false
	}
	prog, isProg := program.Decode(field)
	if !isProg {
		l.logf("error", "%s: 'compile' field is not a program", fp)
		return nil, false
	}
	if err := arity.CheckCompilerArity(prog); err != nil {
		l.logf("error", "%s: %v", fp, err)
		return nil, false
	}
	return func(v value.Value) (value.Value, bool) {
		res, ok := eval.Eval(prog, l, eval.FromTop(v))
		if !ok || len(res) != 1 {
			return nil, false
		}
		return res[0], true
	}, true
}

// logCycle emits the single cycle error for the re-entrant load of fp,
// naming the cycle rotated to start at fp.
func (l *Loader) logCycle(fp string, idx int) {
	chain := make([]string, 0, idx+2)
	for i := idx; i >= 0; i-- {
		chain = append(chain, l.loading[i])
	}
	chain = append(chain, fp)
	l.logf("error", "import cycle: %s", strings.Join(chain, " -> "))
}

// logf builds and emits a log:<record> effect to the downstream handler,
// augmented with the current loading file.
func (l *Loader) logf(level, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	file := ""
	if len(l.loading) > 0 {
		file = l.loading[0]
	}
	rec := value.EmptyRecord().
		Put(value.Symbol("level"), value.Symbol(level)).
		Put(value.Symbol("file"), value.Symbol(file)).
		Put(value.Symbol("text"), value.Symbol(text))
	l.downstream.Eff(value.Variant(value.Symbol("log"), rec))
}

// Eff implements effect.Handler: it intercepts load:<name> and log:<record>,
// forwarding every other effect downstream unchanged.
func (l *Loader) Eff(v value.Value) (value.Value, bool) {
	label, field, isVariant := value.AsVariant(v)
	if !isVariant {
		return l.downstream.Eff(v)
	}
	switch {
	case label.Equal(value.Symbol("load")):
		name, ok := field.(value.Bits)
		if !ok {
			return nil, false
		}
		return l.Load(string(name.Bytes()))

	case label.Equal(value.Symbol("log")):
		rec, ok := field.(*value.Record)
		if !ok {
			return nil, false
		}
		file := ""
		if len(l.loading) > 0 {
			file = l.loading[0]
		}
		augmented := rec.Put(value.Symbol("file"), value.Symbol(file))
		return l.downstream.Eff(value.Variant(value.Symbol("log"), augmented))

	default:
		return l.downstream.Eff(v)
	}
}

// Try, Commit and Abort forward unchanged to the downstream handler: loader
// state is not transactional.
func (l *Loader) Try()    { l.downstream.Try() }
func (l *Loader) Commit() { l.downstream.Commit() }
func (l *Loader) Abort()  { l.downstream.Abort() }

var _ effect.Handler = (*Loader)(nil)
