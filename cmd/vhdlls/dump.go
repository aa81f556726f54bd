package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/scanner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// dumpTokens scans path on its own (independent of the façade/binder pass)
// and prints one line per token, in the Kind/Text/Range form Token.String
// already renders, ending at (not including) the terminal EOF token.
func dumpTokens(path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var diags errors.List
	s := scanner.New(path, src, interner.New(), &diags, token.VHDL08)
	for {
		tok := s.Scan()
		if tok.Kind == token.EOF {
			break
		}
		fmt.Fprintln(out, tok.String())
	}
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	return nil
}

// dumpAST prints one indented line per node in file, in Walk's own visit
// order, naming the node's dynamic type and source range - a plain
// reflection of ast/walk.go's own traversal rather than a separate printer
// that would have to be kept in sync with it.
func dumpAST(file *ast.DesignFile, out io.Writer) {
	depth := 0
	ast.Walk(file,
		func(n ast.Node) bool {
			fmt.Fprintf(out, "%s%T %s\n", strings.Repeat("  ", depth), n, n.Range())
			depth++
			return true
		},
		func(n ast.Node) {
			depth--
		},
	)
}
