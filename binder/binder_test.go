package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/parser"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

func parseOne(t *testing.T, src string) ast.DesignUnit {
	t.Helper()
	in := interner.New()
	var diags errors.List
	file := parser.ParseFile("test.vhd", []byte(src), in, &diags, token.VHDL08)
	require.Empty(t, diags, "unexpected parse diagnostics: %v", diags)
	require.Len(t, file.Units, 1)
	return file.Units[0]
}

func TestBindEntityResolvesPortTypeMark(t *testing.T) {
	src := `
entity counter is
	port (clk : in bit; q : out bit);
end entity counter;
`
	u := parseOne(t, src)
	b := New(nil)
	r := b.Bind(u)
	require.NotNil(t, r)
	assert.Empty(t, b.Diags)

	ports, ok := r.Entities["clk"]
	require.True(t, ok)
	require.Len(t, ports, 1)
	assert.Equal(t, string(KindSignal), ports[0].EntityKind())
}

func TestBindArchitectureExtendsEntityRegion(t *testing.T) {
	entitySrc := `
entity counter is
	generic (width : integer);
	port (clk : in bit);
end entity counter;
`
	archSrc := `
architecture rtl of counter is
	signal q : bit;
begin
	q <= clk;
end architecture rtl;
`
	entityUnit := parseOne(t, entitySrc)
	archUnit := parseOne(t, archSrc)

	b := New(nil)
	b.Bind(entityUnit)
	r := b.Bind(archUnit)
	require.NotNil(t, r)
	require.NotNil(t, r.Extends)

	// clk is declared in the entity's region, reached through Extends.
	_, ok := r.Extends.Entities["clk"]
	assert.True(t, ok)
	assert.Empty(t, b.Diags)
}

func TestUndefinedNameProducesDiagnostic(t *testing.T) {
	src := `
architecture rtl of nonexistent is
begin
	q <= clk;
end architecture rtl;
`
	u := parseOne(t, src)
	b := New(nil)
	b.Bind(u)
	require.NotEmpty(t, b.Diags)
}

func TestEnumerationLiteralsDeclaredInEnclosingRegion(t *testing.T) {
	src := `
package colors is
	type color is (red, green, blue);
end package colors;
`
	u := parseOne(t, src)
	b := New(nil)
	r := b.Bind(u)
	require.NotNil(t, r)
	assert.Empty(t, b.Diags)

	_, ok := r.Entities["red"]
	assert.True(t, ok, "enumeration literal should be visible in the package's own region")
	_, ok = r.Entities["color"]
	assert.True(t, ok)
}

func TestRecordTypeOpensRegionWithElements(t *testing.T) {
	src := `
package pkg is
	type point is record
		x : integer;
		y : integer;
	end record;
end package pkg;
`
	u := parseOne(t, src)
	b := New(nil)
	r := b.Bind(u)
	require.NotNil(t, r)
	assert.Empty(t, b.Diags)

	typeEntities, ok := r.Entities["point"]
	require.True(t, ok)
	require.Len(t, typeEntities, 1)
	ne, ok := typeEntities[0].(*NamedEntity)
	require.True(t, ok)
	require.NotNil(t, ne.Region)
	_, ok = ne.Region.Entities["x"]
	assert.True(t, ok)
}
