package incremental

import "sync/atomic"

// Policy is a working file's scheduling policy (§4.9): run submitted tasks
// synchronously on the caller's goroutine, or hand them to a dedicated
// per-file worker.
type Policy int

const (
	// PolicyInline runs every submitted task synchronously, on whatever
	// goroutine calls Submit.
	PolicyInline Policy = iota
	// PolicyWorker hands every submitted task to a dedicated worker
	// goroutine, superseding whatever is still queued ahead of it.
	PolicyWorker
)

// task is one queued unit of work: a name (for logging) and an action that
// receives whether it was superseded before it got to run.
type task struct {
	name       string
	action     func(isSuperseded bool)
	superseded atomic.Bool
}
