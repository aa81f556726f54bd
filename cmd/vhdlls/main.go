// Command vhdlls is the standalone debug CLI of §6: it drives the same
// facade machinery an editor integration would, against paths
// given on the command line instead of LSP requests, for inspecting the
// token stream, the parsed AST, or per-file diagnostics without wiring up
// an editor.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dj1mm/vhdlstuff-sub000/library"
)

// exit code bits, per §6: bit 0 is a configuration/runtime failure (bad
// flags, unreadable path), bit 1 is set whenever any processed file
// produced a parse or semantic diagnostic. The two are independent so a
// caller scripting against this CLI can tell "nothing ran" apart from
// "it ran and found problems".
const (
	exitOK            = 0
	exitRuntimeError  = 1
	exitHasDiagnostic = 2
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	var hadDiagnostic, hadRuntimeError bool

	app := &cli.App{
		Name:                   "vhdlls",
		Usage:                  "debug CLI for the VHDL incremental semantic engine",
		Version:                "0.1.0",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "work",
				Usage: "logical work library name",
				Value: "work",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "dump the token stream of each path",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "dump the parsed AST of each path",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print per-file timing and diagnostic counts",
			},
			&cli.StringFlag{
				Name:  "glob",
				Usage: "expand additional paths from a doublestar glob pattern",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "keep running, re-report on file changes",
			},
		},
		Action: func(c *cli.Context) error {
			paths, err := collectPaths(c)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return cli.Exit("vhdlls: no paths given (pass paths, or --glob)", exitRuntimeError)
			}

			libs := library.NewManager(workingDir())
			work := c.String("work")

			opts := reportOptions{
				tokens: c.Bool("tokens"),
				ast:    c.Bool("ast"),
				stats:  c.Bool("stats"),
			}

			run := func() {
				for _, path := range paths {
					diags, err := processFile(path, work, libs, opts, os.Stdout)
					if err != nil {
						fmt.Fprintf(os.Stderr, "vhdlls: %s: %v\n", path, err)
						hadRuntimeError = true
						continue
					}
					if diags {
						hadDiagnostic = true
					}
				}
			}
			run()

			if c.Bool("watch") {
				return watchAndRerun(paths, run)
			}
			return nil
		},
	}

	if err := app.Run(argv); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			return ec.ExitCode()
		}
		fmt.Fprintln(os.Stderr, "vhdlls:", err)
		return exitRuntimeError
	}
	code := exitOK
	if hadRuntimeError {
		code |= exitRuntimeError
	}
	if hadDiagnostic {
		code |= exitHasDiagnostic
	}
	return code
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
