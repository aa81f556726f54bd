package incremental

import (
	"sync"
	"time"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/visitor"
)

// Coordinator is the incremental coordinator of §4.9: it owns a
// filename -> WorkingFile map, dispatches update/query tasks onto the
// right working file, and propagates an update in one file to the
// invalidation lists of every other open file.
type Coordinator struct {
	Project *Project
	Policy  Policy

	mu    sync.RWMutex
	files map[string]*WorkingFile
}

// NewCoordinator returns a coordinator sharing project, scheduling every
// working file's tasks according to policy.
func NewCoordinator(project *Project, policy Policy) *Coordinator {
	return &Coordinator{Project: project, Policy: policy, files: make(map[string]*WorkingFile)}
}

// ensure returns the working file for filename/workLibrary, creating it
// (and, for PolicyWorker, its worker goroutine) on first use.
func (c *Coordinator) ensure(filename, workLibrary string) *WorkingFile {
	c.mu.RLock()
	wf, ok := c.files[filename]
	c.mu.RUnlock()
	if ok {
		return wf
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if wf, ok := c.files[filename]; ok {
		return wf
	}
	wf = newWorkingFile(filename, workLibrary, c.Policy, c.Project)
	c.files[filename] = wf
	return wf
}

// others returns every working file other than exclude, snapshotting the
// map under its read lock so the invalidation loop below never holds it
// while calling into a working file.
func (c *Coordinator) others(exclude string) []*WorkingFile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*WorkingFile, 0, len(c.files))
	for name, wf := range c.files {
		if name != exclude {
			out = append(out, wf)
		}
	}
	return out
}

// Update implements §4.9's update dispatch: ensure filename's working file
// exists, run its façade, then propagate the invalidation cascade to every
// other open file (step 3), per §4.9's numbered algorithm. reply is
// invoked exactly once with the diagnostics produced, fire-and-forget per
// §6 ("a notification rather than a response").
func (c *Coordinator) Update(filename, workLibrary string, reply func(parse, semantic errors.List)) {
	wf := c.ensure(filename, workLibrary)
	wf.Submit("update", func(superseded bool) {
		if superseded {
			reply(nil, nil)
			return
		}
		f := wf.updateForEdit(c.Project.Libraries)
		for _, other := range c.others(filename) {
			other.InvalidatePotentiallyReferencedFile(filename)
		}
		reply(f.ParseDiags, f.SemanticDiags)
	})
}

// query submits a task that brings filename's façade current (a query
// always implies an update first, per §4.9's "ensures the façade is
// current for the project version, runs its update") and hands the
// resulting design file to fn, which extracts and replies with whatever
// view the caller asked for. If filename is unknown, fn still runs against
// a fresh (likely empty) façade, matching "if the file is unknown, reply
// with the empty/null payload" once fn observes a nil MainFile().
func (c *Coordinator) query(filename, workLibrary string, fn func(file *ast.DesignFile)) {
	wf := c.ensure(filename, workLibrary)
	wf.Submit("query", func(superseded bool) {
		if superseded {
			fn(nil)
			return
		}
		f := wf.update(c.Project.Libraries)
		fn(f.MainFile())
	})
}

// FoldingRanges implements §6's foldingRanges request.
func (c *Coordinator) FoldingRanges(filename, workLibrary string, reply func([]visitor.FoldingRange)) {
	c.query(filename, workLibrary, func(file *ast.DesignFile) {
		if file == nil {
			reply(nil)
			return
		}
		reply(visitor.FoldingProvider{}.FoldingRanges(file))
	})
}

// DocumentSymbols implements §6's documentSymbols request.
func (c *Coordinator) DocumentSymbols(filename, workLibrary string, reply func([]visitor.DocumentSymbol)) {
	c.query(filename, workLibrary, func(file *ast.DesignFile) {
		if file == nil {
			reply(nil)
			return
		}
		reply(visitor.SymbolProvider{}.Symbols(file))
	})
}

// Hover implements §6's hover request. line/character are the wire's
// zero-based, end-exclusive coordinates; the boundary conversion to the
// one-based internal Position happens here, per §6's "Positions on the
// wire are zero-based; internal positions are one-based."
func (c *Coordinator) Hover(filename, workLibrary string, line, character int, reply func(*visitor.Hover)) {
	c.query(filename, workLibrary, func(file *ast.DesignFile) {
		if file == nil {
			reply(nil)
			return
		}
		reply(visitor.HoverProvider{}.Hover(file, cursorWithin(line, character)))
	})
}

// Definition implements §6's definition request.
func (c *Coordinator) Definition(filename, workLibrary string, line, character int, reply func([]visitor.DefinitionTarget)) {
	c.query(filename, workLibrary, func(file *ast.DesignFile) {
		if file == nil {
			reply(nil)
			return
		}
		reply(visitor.DefinitionProvider{}.Definition(file, cursorWithin(line, character)))
	})
}

// Shutdown implements §4.9's shutdown: signal every worker to stop, join
// it, then drop the working files. deadline bounds the join so a stuck
// worker cannot hang process teardown indefinitely - the hazard
// SPEC_FULL's DESIGN NOTES calls out explicitly.
func (c *Coordinator) Shutdown(deadline time.Duration) {
	c.mu.Lock()
	files := c.files
	c.files = make(map[string]*WorkingFile)
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, wf := range files {
			wf.Stop()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(deadline):
	}
}

// File returns the working file for filename, if one has been opened.
func (c *Coordinator) File(filename string) (*WorkingFile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	wf, ok := c.files[filename]
	return wf, ok
}

