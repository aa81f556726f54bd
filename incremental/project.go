// Package incremental implements the incremental coordinator of §4.9: one
// façade per open file, supersedable per-file task queues, and the
// invalidation cascade that propagates an update in one file to every
// other open file that may reference it.
package incremental

import (
	"sync"

	"github.com/dj1mm/vhdlstuff-sub000/library"
)

// Project is the state every working file shares (§4.9, §5's "share only
// (a) the library manager, (b) the shared project handle"): a library
// manager plus a version counter working files compare themselves against
// before servicing a query.
//
// Bumping Version is how a library-manager re-initialisation is made to
// force every façade to rebuild from scratch on its next update, per
// SPEC_FULL's resolution of the "use-clause visibility after a mid-session
// library re-initialisation" open question (see DESIGN.md).
type Project struct {
	mu      sync.RWMutex
	version int

	Libraries *library.Manager
}

// NewProject returns a project sharing libs.
func NewProject(libs *library.Manager) *Project {
	return &Project{Libraries: libs}
}

// Version returns the current project version.
func (p *Project) Version() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Bump increments the project version, e.g. after Libraries.Initialise has
// been called with a different set of library locations.
func (p *Project) Bump() {
	p.mu.Lock()
	p.version++
	p.mu.Unlock()
}

// FullyPopulated reports the library manager's advisory indexing-complete
// flag.
func (p *Project) FullyPopulated() bool {
	if p.Libraries == nil {
		return true
	}
	return p.Libraries.IsFullyPopulated()
}
