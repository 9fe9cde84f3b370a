package machine_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/ghost/internal/filetest"
	"github.com/mna/ghost/lang/compiler"
	"github.com/mna/ghost/lang/machine"
)

var testUpdateScenarios = flag.Bool("test.update-scenario-tests", false, "update the golden .want files in testdata")

// TestScenarios runs every .ghost script in testdata against a fresh VM and
// diffs its stdout against the matching .want golden file, the same
// SourceFiles/DiffOutput round trip nenuphar's own package tests use for
// golden-file coverage (internal/filetest), grounded here against whole
// programs instead of a single compiler phase.
func TestScenarios(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".ghost") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			vm := machine.New()
			vm.Stdout = &out
			vm.Stderr = &out
			if _, err := vm.Interpret(string(src), compiler.Compile); err != nil {
				t.Fatal(err)
			}

			filetest.DiffOutput(t, fi, out.String(), dir, testUpdateScenarios)
		})
	}
}
