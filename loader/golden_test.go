package loader

import (
	"flag"
	"strings"
	"testing"

	"github.com/mna/glas/effect"
	"github.com/mna/glas/internal/filetest"
)

var updateGolden = flag.Bool("test.update-loader-tests", false, "update the loader golden files")

// TestLoadFileGolden loads every fixture in testdata/golden (each with no
// compiler extension, so each resolves to the raw file content packed as
// Bits) and diffs its String() against the matching golden file in
// testdata/golden-out.
func TestLoadFileGolden(t *testing.T) {
	dir := "testdata/golden"
	fis := filetest.SourceFiles(t, dir, "")
	if len(fis) == 0 {
		t.Fatal("no golden fixtures found")
	}

	for _, fi := range fis {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			l := New(effect.Nop, []string{dir})
			v, ok := l.Load(strings.TrimSuffix(fi.Name(), filepathExt(fi.Name())))
			if !ok {
				t.Fatalf("load %s: failed", fi.Name())
			}
			filetest.DiffOutput(t, fi, v.String(), "testdata/golden-out", updateGolden)
		})
	}
}

// filepathExt returns the extension portion matched by extensionChain's own
// splitting rule (everything from the first '.'), so fixtures with no
// extension round-trip through TrimSuffix as a no-op.
func filepathExt(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
