package facade

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/library"
)

func sourceMap(files map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		src, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("no such file: %s", path)
		}
		return []byte(src), nil
	}
}

func TestUpdateParsesAndBindsOnFirstCall(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	f := New("counter.vhd", "work", libs)
	f.ReadFile = sourceMap(map[string]string{
		"counter.vhd": `
entity counter is
	port (clk : in bit; q : out bit);
end entity counter;
`,
	})

	result := f.Update()
	assert.Equal(t, "was updated", result)
	require.NotNil(t, f.MainFile())
	require.Len(t, f.MainFile().Units, 1)
	assert.Empty(t, f.ParseDiags)
	assert.Empty(t, f.SemanticDiags)

	units := f.units["work"]
	require.Len(t, units, 1)
	assert.Equal(t, StateAnalysed, units[0].State)
}

func TestUpdateWithoutInvalidationIsNoop(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	f := New("counter.vhd", "work", libs)
	f.ReadFile = sourceMap(map[string]string{
		"counter.vhd": `entity counter is end entity counter;`,
	})

	require.Equal(t, "was updated", f.Update())
	assert.Equal(t, "already up-to-date", f.Update())
}

func TestInvalidateMainFileForcesReparseOnNextUpdate(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	files := map[string]string{
		"counter.vhd": `entity counter is end entity counter;`,
	}
	f := New("counter.vhd", "work", libs)
	f.ReadFile = sourceMap(files)
	require.Equal(t, "was updated", f.Update())

	f.InvalidateMainFile()
	files["counter.vhd"] = `entity adder is end entity adder;`
	require.Equal(t, "was updated", f.Update())
	assert.Equal(t, "adder", f.MainFile().Units[0].UnitIdentifier().Text)
}

func TestUpdateWithMissingSourceClearsMainFile(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	f := New("missing.vhd", "work", libs)
	f.ReadFile = sourceMap(map[string]string{})

	result := f.Update()
	assert.Equal(t, "source missing", result)
	assert.Nil(t, f.MainFile())
}

func TestDemandLoadResolvesThroughBackendAcrossFacades(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	libs.Initialise([]string{"work"})

	pkg := New("pkg.vhd", "work", libs)
	pkg.ReadFile = sourceMap(map[string]string{
		"pkg.vhd": `
package defs is
	constant width : integer := 8;
end package defs;
`,
	})
	require.Equal(t, "was updated", pkg.Update())

	user := New("user.vhd", "work", libs)
	user.ReadFile = sourceMap(map[string]string{
		"user.vhd": `
entity user is
end entity user;
`,
		"pkg.vhd": `
package defs is
	constant width : integer := 8;
end package defs;
`,
	})
	require.Equal(t, "was updated", user.Update())

	denotes := user.DemandLoad("work", "defs")
	require.Len(t, denotes, 1)
	assert.Equal(t, "defs", denotes[0].EntityIdentifier())
}

func TestInvalidateReferenceFileMarksCachedUnitsOutdated(t *testing.T) {
	libs := library.NewManager(t.TempDir())
	f := New("a.vhd", "work", libs)
	f.ReadFile = sourceMap(map[string]string{
		"a.vhd": `entity a is end entity a;`,
	})
	require.Equal(t, "was updated", f.Update())

	f.InvalidateReferenceFile("a.vhd")
	require.Len(t, f.units["work"], 1)
	assert.Equal(t, StateOutdated, f.units["work"][0].State)
	assert.True(t, f.invalidated)
}
