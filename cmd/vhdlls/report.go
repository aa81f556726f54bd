package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dj1mm/vhdlstuff-sub000/facade"
	"github.com/dj1mm/vhdlstuff-sub000/library"
)

// reportOptions selects which of §6's dump/diagnostic views processFile
// prints for a path.
type reportOptions struct {
	tokens bool
	ast    bool
	stats  bool
}

// processFile runs path through a façade (parse + bind), prints whichever
// views opts selects, and reports whether any diagnostic was produced.
func processFile(path, workLibrary string, libs *library.Manager, opts reportOptions, out io.Writer) (hadDiagnostic bool, err error) {
	start := time.Now()

	if opts.tokens {
		if dumpErr := dumpTokens(path, out); dumpErr != nil {
			return false, dumpErr
		}
	}

	f := facade.New(path, workLibrary, libs)
	result := f.Update()
	elapsed := time.Since(start)
	if f.MainFile() == nil {
		return false, fmt.Errorf("cannot read source (%s)", result)
	}

	if opts.ast {
		if f.MainFile() == nil {
			fmt.Fprintf(out, "%s: no AST (parse failed to produce a design file)\n", path)
		} else {
			dumpAST(f.MainFile(), out)
		}
	}

	for _, d := range f.ParseDiags {
		fmt.Fprintf(os.Stderr, "%s\n", d.Error())
	}
	for _, d := range f.SemanticDiags {
		fmt.Fprintf(os.Stderr, "%s\n", d.Error())
	}
	hadDiagnostic = len(f.ParseDiags) > 0 || len(f.SemanticDiags) > 0

	if opts.stats {
		fmt.Fprintf(out, "%s: %s in %s, %d parse diagnostic(s), %d semantic diagnostic(s)\n",
			path, result, elapsed, len(f.ParseDiags), len(f.SemanticDiags))
	}

	return hadDiagnostic, nil
}
