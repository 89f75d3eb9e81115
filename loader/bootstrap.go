package loader

import (
	"fmt"

	"github.com/mna/glas/effect"
)

// Bootstrap locates language-g0 on glasPath only (never the local
// directory), compiles it three times through successively self-hosted g0
// pipelines, and requires the last two compilations to agree structurally
// before handing back a fully self-hosted Loader.
//
// native is the built-in, non-bootstrapped g0 compiler (package g0's
// BuiltinCompileG0); downstream receives every log and forwarded effect
// along the way.
func Bootstrap(downstream effect.Handler, glasPath []string, native CompilerFunc) (*Loader, error) {
	l0 := New(downstream, glasPath)
	l0.SetG0(native)
	fp, ok := l0.resolveIn(glasPath, "language-g0")
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: language-g0 not found on GLAS_PATH")
	}

	p0, ok := l0.LoadFile(fp)
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: native compile of language-g0 failed")
	}
	compile0, ok := l0.wrapCompileArtifact(fp, p0)
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: language-g0 artifact is not a valid compiler module")
	}

	l1 := New(downstream, glasPath)
	l1.SetG0(compile0)
	p1, ok := l1.LoadFile(fp)
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: first self-compile of language-g0 failed")
	}
	compile1, ok := l1.wrapCompileArtifact(fp, p1)
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: language-g0 artifact is not a valid compiler module")
	}

	l2 := New(downstream, glasPath)
	l2.SetG0(compile1)
	p2, ok := l2.LoadFile(fp)
	if !ok {
		return nil, fmt.Errorf("loader: bootstrap: second self-compile of language-g0 failed")
	}

	if !p1.Equal(p2) {
		return nil, fmt.Errorf("loader: bootstrap: fixed point not reached, p1 != p2")
	}
	return l2, nil
}
