package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
)

// collectPaths gathers the paths to process: positional arguments plus
// whatever --glob expands against the working directory, deduplicated in
// first-seen order so a path named both ways is only processed once.
func collectPaths(c *cli.Context) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, a := range c.Args().Slice() {
		add(a)
	}

	if pattern := c.String("glob"); pattern != "" {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid --glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}
