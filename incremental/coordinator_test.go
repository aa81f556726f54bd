package incremental

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/library"
	"github.com/dj1mm/vhdlstuff-sub000/visitor"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newCoordinator(t *testing.T, policy Policy) (*Coordinator, string) {
	t.Helper()
	dir := t.TempDir()
	libs := library.NewManager(dir)
	libs.Initialise([]string{"work"})
	c := NewCoordinator(NewProject(libs), policy)
	t.Cleanup(func() { c.Shutdown(time.Second) })
	return c, dir
}

func TestUpdateInlineReportsDiagnostics(t *testing.T) {
	c, dir := newCoordinator(t, PolicyInline)
	path := writeFile(t, dir, "counter.vhd", `
entity counter is
	port (clk : in bit; q : out bit);
end entity counter;
`)

	done := make(chan struct{})
	var parse, semantic errors.List
	c.Update(path, "work", func(p, s errors.List) {
		parse, semantic = p, s
		close(done)
	})
	<-done
	assert.Empty(t, parse)
	assert.Empty(t, semantic)
}

func TestUpdateWorkerReportsDiagnostics(t *testing.T) {
	c, dir := newCoordinator(t, PolicyWorker)
	path := writeFile(t, dir, "counter.vhd", `entity counter is end entity counter;`)

	done := make(chan struct{})
	c.Update(path, "work", func(p, s errors.List) {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("update did not complete")
	}
}

// Scenario D of the specification: invalidating and re-updating a package
// file must cascade to an architecture that used it, so that a hover
// query on the architecture's now-stale reference observes the rename.
func TestInvalidationCascadesAcrossFiles(t *testing.T) {
	c, dir := newCoordinator(t, PolicyWorker)

	pkgPath := writeFile(t, dir, "pkg.vhd", `
package defs is
	constant k : integer := 7;
end package defs;
`)
	userPath := writeFile(t, dir, "user.vhd", `
library work;
use work.defs.all;

entity user is
end entity user;

architecture rtl of user is
begin
	process is
		variable v : integer;
	begin
		v := k;
	end process;
end architecture rtl;
`)

	mustUpdate := func(path string) {
		done := make(chan struct{})
		c.Update(path, "work", func(errors.List, errors.List) { close(done) })
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("update did not complete")
		}
	}
	mustUpdate(pkgPath)
	mustUpdate(userPath)

	hoverAt := func(line, col int) *visitor.Hover {
		done := make(chan *visitor.Hover, 1)
		c.Hover(userPath, "work", line, col, func(h *visitor.Hover) { done <- h })
		select {
		case h := <-done:
			return h
		case <-time.After(2 * time.Second):
			t.Fatal("hover did not complete")
			return nil
		}
	}

	h := hoverAt(12, 7) // "v := k;" - k resolved through the use clause
	require.NotNil(t, h)
	assert.NotEqual(t, "not found", h.Contents)

	require.NoError(t, os.WriteFile(pkgPath, []byte(`
package defs is
	constant kk : integer := 7;
end package defs;
`), 0o644))

	mustUpdate(pkgPath)
	time.Sleep(50 * time.Millisecond)

	h = hoverAt(12, 7)
	require.NotNil(t, h)
	assert.Equal(t, "not found", h.Contents)
}
