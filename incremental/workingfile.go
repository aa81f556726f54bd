package incremental

import (
	"log"
	"sync"

	"github.com/dj1mm/vhdlstuff-sub000/facade"
	"github.com/dj1mm/vhdlstuff-sub000/library"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// WorkingFile is one open file's scheduling state (§4.9): its façade, a
// private supersedable task queue, and the mutex-protected list of files
// other working files have reported as potentially referencing it.
type WorkingFile struct {
	Filename    string
	WorkLibrary string
	policy      Policy
	project     *Project

	queueMu sync.Mutex
	cond    *sync.Cond
	queue   []*task
	closed  bool
	wg      sync.WaitGroup

	facadeMu sync.Mutex
	facade   *facade.Facade

	builtVersion        int
	builtFullyPopulated bool

	pendingMu   sync.Mutex
	pendingRefs map[string]bool
}

func newWorkingFile(filename, workLibrary string, policy Policy, project *Project) *WorkingFile {
	wf := &WorkingFile{
		Filename:    filename,
		WorkLibrary: workLibrary,
		policy:      policy,
		project:     project,
		pendingRefs: make(map[string]bool),
	}
	wf.cond = sync.NewCond(&wf.queueMu)
	if policy == PolicyWorker {
		wf.wg.Add(1)
		go wf.run()
	}
	return wf
}

// run is the dedicated worker loop of §4.9: pop the front task, invoke it,
// repeat, until Stop closes the queue and it has been drained.
func (wf *WorkingFile) run() {
	defer wf.wg.Done()
	for {
		wf.queueMu.Lock()
		for len(wf.queue) == 0 && !wf.closed {
			wf.cond.Wait()
		}
		if len(wf.queue) == 0 && wf.closed {
			wf.queueMu.Unlock()
			return
		}
		t := wf.queue[0]
		wf.queue = wf.queue[1:]
		wf.queueMu.Unlock()

		log.Printf("incremental: %s running task %q (superseded=%v)", wf.Filename, t.name, t.superseded.Load())
		t.action(t.superseded.Load())
	}
}

// Submit enqueues a task, per §4.9's "Task = (name, action(is_superseded))".
// Under PolicyInline it runs synchronously and is never superseded. Under
// PolicyWorker, every task still queued ahead of it is marked superseded
// before this one is appended.
func (wf *WorkingFile) Submit(name string, action func(isSuperseded bool)) {
	if wf.policy == PolicyInline {
		action(false)
		return
	}

	wf.queueMu.Lock()
	for _, queued := range wf.queue {
		queued.superseded.Store(true)
	}
	wf.queue = append(wf.queue, &task{name: name, action: action})
	wf.queueMu.Unlock()
	wf.cond.Signal()
}

// Stop signals the worker to finish its queue and exit, then waits for it.
// A no-op under PolicyInline, which owns no goroutine.
func (wf *WorkingFile) Stop() {
	if wf.policy == PolicyInline {
		return
	}
	wf.queueMu.Lock()
	wf.closed = true
	wf.queueMu.Unlock()
	wf.cond.Broadcast()
	wf.wg.Wait()
}

// InvalidatePotentiallyReferencedFile records that path may be referenced
// by this working file's unit, per §4.9 step 3. The mark is only applied
// to the façade the next time this file's own task runs (so it never
// touches the façade from another file's worker goroutine), matching
// §5's "library-unit cache: owned by a single façade; never shared across
// threads."
func (wf *WorkingFile) InvalidatePotentiallyReferencedFile(path string) {
	wf.pendingMu.Lock()
	wf.pendingRefs[path] = true
	wf.pendingMu.Unlock()
}

// ensureFacade returns this working file's façade, rebuilding it from
// scratch (discarding its library-unit cache) if the project version or
// the libraries-fully-populated flag has moved since it was last built -
// §4.9's "Project version tracking", made authoritative per SPEC_FULL's
// resolution of the mid-session-reinitialise open question.
func (wf *WorkingFile) ensureFacade(libs *library.Manager) *facade.Facade {
	wf.facadeMu.Lock()
	defer wf.facadeMu.Unlock()

	version := wf.project.Version()
	fullyPopulated := wf.project.FullyPopulated()
	if wf.facade == nil || version != wf.builtVersion || fullyPopulated != wf.builtFullyPopulated {
		wf.facade = facade.New(wf.Filename, wf.WorkLibrary, libs)
		wf.builtVersion = version
		wf.builtFullyPopulated = fullyPopulated
		wf.pendingMu.Lock()
		wf.pendingRefs = make(map[string]bool)
		wf.pendingMu.Unlock()
	}
	return wf.facade
}

// applyPendingInvalidations drains the externally-reported reference-file
// list onto the façade before it is updated, turning
// InvalidatePotentiallyReferencedFile's bookkeeping into an actual
// invalidate_reference_file call (§4.8).
func (wf *WorkingFile) applyPendingInvalidations(f *facade.Facade) {
	wf.pendingMu.Lock()
	refs := wf.pendingRefs
	wf.pendingRefs = make(map[string]bool)
	wf.pendingMu.Unlock()

	for path := range refs {
		f.InvalidateReferenceFile(path)
	}
}

// update runs this working file's façade to completion: apply any pending
// cross-file invalidations, then Update. Used by query dispatch, which
// must observe a current façade but is not itself the signal that this
// file's own source changed.
func (wf *WorkingFile) update(libs *library.Manager) *facade.Facade {
	f := wf.ensureFacade(libs)
	wf.applyPendingInvalidations(f)
	f.Update()
	return f
}

// updateForEdit is update, but first marks the façade's own main file
// invalidated: an explicit update(path) request (§6) is itself the signal
// that path's source changed, regardless of whether anything had
// previously marked this façade stale.
func (wf *WorkingFile) updateForEdit(libs *library.Manager) *facade.Facade {
	f := wf.ensureFacade(libs)
	f.InvalidateMainFile()
	wf.applyPendingInvalidations(f)
	f.Update()
	return f
}

// cursorWithin converts a zero-based, end-exclusive wire position (§6) to
// the one-based internal Position used throughout the rest of the system.
func cursorWithin(line, character int) token.Position {
	return token.Position{Line: line + 1, Column: character + 1}
}
