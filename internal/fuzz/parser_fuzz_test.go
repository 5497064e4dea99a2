package fuzztests

import (
	"testing"
	"time"

	"cppbind/internal/diag"
	"cppbind/internal/driver"
	"cppbind/internal/lexer"
	"cppbind/internal/parser"
	"cppbind/internal/source"
	"cppbind/internal/testkit"
)

// processTimeout is the maximum time allowed for one input. Exceeding it
// indicates an expansion or recovery loop.
const processTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.i", input))

		bag, err := diag.NewBag(128)
		if err != nil {
			t.Fatalf("NewBag: %v", err)
		}
		rep := diag.BagReporter{Bag: bag}
		tree := parser.New(lexer.New(file, rep), rep).Parse()

		if err := testkit.CheckTreeInvariants(tree.Root, file); err != nil {
			t.Fatalf("tree invariants: %v", err)
		}
	})
}

func FuzzProcessNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = driver.ProcessBytes("fuzz.i", input, 128)
		}()
		select {
		case <-done:
		case <-time.After(processTimeout):
			t.Fatalf("processing did not finish within %v", processTimeout)
		}
	})
}
