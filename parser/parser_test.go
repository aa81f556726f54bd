package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

func newTestParser(t *testing.T, src string, version token.Version) (*Parser, *errors.List) {
	t.Helper()
	var diags errors.List
	return New("test.vhd", []byte(src), interner.New(), &diags, version), &diags
}

func parseTestFile(t *testing.T, src string) (*ast.DesignFile, errors.List) {
	t.Helper()
	var diags errors.List
	file := ParseFile("test.vhd", []byte(src), interner.New(), &diags, token.VHDL08)
	return file, diags
}

func TestParseFileEmptySourceProducesExactlyOneDiagnostic(t *testing.T) {
	file, diags := parseTestFile(t, "")
	require.Equal(t, 1, diags.Len())
	assert.Contains(t, diags[0].Error(), "design file is empty")
	assert.Empty(t, file.Units)
	assert.Empty(t, file.DanglingContext)
}

func TestLibraryClauseOnlyAtEOFYieldsDanglingContextAndDiagnostic(t *testing.T) {
	file, diags := parseTestFile(t, "library ieee;")
	require.Empty(t, file.Units)
	require.Len(t, file.DanglingContext, 1)
	clause, ok := file.DanglingContext[0].(*ast.LibraryClause)
	require.True(t, ok)
	require.Len(t, clause.Names, 1)
	assert.Equal(t, "ieee", clause.Names[0].Text)
	assert.Greater(t, diags.Len(), 0)
}

func TestParseManyRecoversFromUnexpectedTokenInDeclarativePart(t *testing.T) {
	file, diags := parseTestFile(t, `
entity e is
  constant a : bit := '0';
  42
  constant b : bit := '1';
end entity e;
`)
	require.Len(t, file.Units, 1)
	ent, ok := file.Units[0].(*ast.EntityDecl)
	require.True(t, ok)
	require.Len(t, ent.Decls, 2)
	assert.Equal(t, "a", ent.Decls[0].(*ast.ObjectDecl).Identifier.Text)
	assert.Equal(t, "b", ent.Decls[1].(*ast.ObjectDecl).Identifier.Text)

	found := false
	for _, d := range diags {
		if strings.Contains(d.Error(), "skipping unexpected") {
			found = true
		}
	}
	assert.True(t, found, "expected a recovery diagnostic, got: %v", diags)
}

func TestParseManySepToleratesTrailingSeparatorBeforeClose(t *testing.T) {
	p, diags := newTestParser(t, "generic ( a : integer ; b : integer ; ) ;", token.VHDL08)
	items := p.parseInterfaceClause(token.GENERIC)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].(*ast.InterfaceDecl).Identifier.Text)
	assert.Equal(t, "b", items[1].(*ast.InterfaceDecl).Identifier.Text)
	assert.Equal(t, 0, diags.Len())
}

func TestSliceVsIndexOrCallNameDisambiguation(t *testing.T) {
	p, _ := newTestParser(t, "q(3 downto 0)", token.VHDL08)
	n := p.parseName()
	_, isSlice := n.(*ast.SliceName)
	assert.True(t, isSlice, "expected a SliceName, got %T", n)

	p2, _ := newTestParser(t, "q(1, 2)", token.VHDL08)
	n2 := p2.parseName()
	_, isIndexOrCall := n2.(*ast.IndexOrCallName)
	assert.True(t, isIndexOrCall, "expected an IndexOrCallName, got %T", n2)
}

func TestRangeByAttributeVsSimpleRangeDisambiguation(t *testing.T) {
	p, _ := newTestParser(t, "x'range", token.VHDL08)
	r := p.parseRange()
	_, isAttr := r.(*ast.AttributeRange)
	assert.True(t, isAttr, "expected an AttributeRange, got %T", r)

	p2, _ := newTestParser(t, "0 to 7", token.VHDL08)
	r2 := p2.parseRange()
	_, isExplicit := r2.(*ast.ExplicitRange)
	assert.True(t, isExplicit, "expected an ExplicitRange, got %T", r2)
}

func TestConstrainedVsUnconstrainedArrayDisambiguation(t *testing.T) {
	p, _ := newTestParser(t, "array (natural range <>) of bit", token.VHDL08)
	at := p.parseArrayType()
	assert.Equal(t, ast.ArrayIndexUnconstrained, at.Kind)
	assert.Len(t, at.IndexMarks, 1)

	p2, _ := newTestParser(t, "array (0 to 7) of bit", token.VHDL08)
	at2 := p2.parseArrayType()
	assert.Equal(t, ast.ArrayIndexConstrained, at2.Kind)
	assert.Len(t, at2.IndexRanges, 1)
}

func TestNandIsNonAssociativeAndStopsAfterOneOccurrence(t *testing.T) {
	p, _ := newTestParser(t, "a nand b nand c", token.VHDL08)
	expr := p.parseExpression()
	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpNand, bin.Op)
	// the second "nand" is left for the caller to diagnose as unexpected;
	// the expression parser itself only ever builds one nand/nor level.
	assert.Equal(t, token.NAND, p.tok.Kind)
}

func TestContextKeywordGatedBeforeVHDL08(t *testing.T) {
	p, diags := newTestParser(t, "context", token.VHDL93)
	require.Equal(t, token.CONTEXT, p.tok.Kind)
	require.Equal(t, 1, diags.Len())
	assert.Contains(t, (*diags)[0].Error(), "VHDL-08")
}

func TestRunawaySkipGuardForcesEOFOnRepeatedStall(t *testing.T) {
	p, _ := newTestParser(t, "x", token.VHDL08)
	stuck := token.New(token.ILLEGAL, interner.View{}, token.Range{
		Filename: "test.vhd",
		Begin:    token.Position{Line: 1, Column: 1},
		End:      token.Position{Line: 1, Column: 1},
	})
	for i := 0; i < 4; i++ {
		p.tok = stuck
		p.skip()
	}
	assert.Equal(t, token.EOF, p.tok.Kind)
}
