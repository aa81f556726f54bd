package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/facade"
	"github.com/dj1mm/vhdlstuff-sub000/library"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

func bound(t *testing.T, src string) *facade.Facade {
	t.Helper()
	libs := library.NewManager(t.TempDir())
	f := facade.New("x.vhd", "work", libs)
	f.ReadFile = func(string) ([]byte, error) { return []byte(src), nil }
	require.Equal(t, "was updated", f.Update())
	return f
}

// Scenario E of the specification: an architecture spanning lines 10-50
// with `begin` on line 20 and `end` on line 50 should fold the
// declarative part to {9,18} and the statement part to {19,48}.
func TestFoldingRangesMatchScenarioE(t *testing.T) {
	var b []byte
	b = append(b, "entity e is\nend entity e;\n\n\n\n\n\n\n\n"...) // lines 1-9
	b = append(b, "architecture a of e is\n"...)                    // line 10
	for i := 0; i < 8; i++ {
		b = append(b, "\n"...)
	}
	b = append(b, "begin\n"...) // line 20
	for i := 0; i < 28; i++ {
		b = append(b, "\n"...)
	}
	b = append(b, "end architecture a;\n"...) // line 50

	f := bound(t, string(b))
	ranges := FoldingProvider{}.FoldingRanges(f.MainFile())

	found := map[[2]int]bool{}
	for _, r := range ranges {
		found[[2]int{r.StartLine, r.EndLine}] = true
	}
	assert.True(t, found[[2]int{9, 18}], "declarative part fold range: %#v", ranges)
	assert.True(t, found[[2]int{19, 48}], "statement part fold range: %#v", ranges)

	for _, r := range ranges {
		assert.GreaterOrEqual(t, r.EndLine-r.StartLine, 0)
	}
}

func TestSymbolsRootedAtDesignUnits(t *testing.T) {
	f := bound(t, `
entity counter is
	generic (width : integer := 8);
	port (clk : in bit; q : out bit);
end entity counter;
`)
	syms := SymbolProvider{}.Symbols(f.MainFile())
	require.Len(t, syms, 1)
	assert.Equal(t, "counter", syms[0].Name)
	assert.Equal(t, SymbolInterface, syms[0].Kind)

	var names []string
	for _, c := range syms[0].Children {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "width")
	assert.Contains(t, names, "clk")
	assert.Contains(t, names, "q")
}

// Scenario B of the specification: a reference to an undeclared signal
// produces an empty Denotes list, which hover renders as "not found".
func TestHoverReportsNotFoundForUnresolvedName(t *testing.T) {
	f := bound(t, `
entity e is
end entity e;

architecture rtl of e is
begin
	undeclared_signal <= '0';
end architecture rtl;
`)
	h := HoverProvider{}.Hover(f.MainFile(), token.Position{Line: 7, Column: 3})
	require.NotNil(t, h)
	assert.Equal(t, "markdown", h.Kind)
	assert.Equal(t, "not found", h.Contents)
}

func TestDefinitionResolvesCrossUnitUseClause(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	libs.Initialise([]string{"work"})

	pkg := facade.New("pkg.vhd", "work", libs)
	pkg.ReadFile = func(string) ([]byte, error) {
		return []byte(`
package defs is
	constant width : integer := 8;
end package defs;
`), nil
	}
	require.Equal(t, "was updated", pkg.Update())

	src := `library work;
use work.defs.all;
entity user is
end entity user;
`
	user := facade.New("user.vhd", "work", libs)
	user.ReadFile = func(path string) ([]byte, error) {
		if path == "pkg.vhd" {
			return []byte(`
package defs is
	constant width : integer := 8;
end package defs;
`), nil
		}
		return []byte(src), nil
	}
	require.Equal(t, "was updated", user.Update())

	targets := DefinitionProvider{}.Definition(user.MainFile(), token.Position{Line: 2, Column: 11})
	require.Len(t, targets, 1)
	assert.Equal(t, "pkg.vhd", targets[0].TargetURI)
}
