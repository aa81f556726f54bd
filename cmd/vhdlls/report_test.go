package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/dj1mm/vhdlstuff-sub000/library"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestProcessFileCleanSourceHasNoDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "counter.vhd", `
entity counter is
	port (clk : in bit; q : out bit);
end entity counter;
`)

	libs := library.NewManager(dir)
	var out bytes.Buffer
	diag, err := processFile(path, "work", libs, reportOptions{stats: true}, &out)
	require.NoError(t, err)
	assert.False(t, diag)
	assert.Contains(t, out.String(), "was updated")
}

func TestProcessFileDumpsTokensAndAST(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "counter.vhd", `
entity counter is
end entity counter;
`)

	libs := library.NewManager(dir)
	var out bytes.Buffer
	_, err := processFile(path, "work", libs, reportOptions{tokens: true, ast: true}, &out)
	require.NoError(t, err)

	dump := out.String()
	assert.Contains(t, dump, "entity entity @")
	assert.Contains(t, dump, "ast.EntityDecl")
}

func TestProcessFileReportsParseDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.vhd", `entity is end;`)

	libs := library.NewManager(dir)
	var out bytes.Buffer
	diag, err := processFile(path, "work", libs, reportOptions{}, &out)
	require.NoError(t, err)
	assert.True(t, diag)
}

func TestCollectPathsDedupesAndExpandsGlob(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.vhd", "entity a is end entity a;\n")
	writeSource(t, dir, "b.vhd", "entity b is end entity b;\n")

	var got []string
	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: "glob"}},
		Action: func(c *cli.Context) error {
			paths, err := collectPaths(c)
			got = paths
			return err
		},
	}
	require.NoError(t, app.Run([]string{"vhdlls", "--glob", filepath.Join(dir, "*.vhd"), a}))
	// a was named twice (positional arg, then again via the glob match);
	// collectPaths keeps it once, in first-seen order, plus b.vhd.
	assert.ElementsMatch(t, []string{a, filepath.Join(dir, "b.vhd")}, got)
}
