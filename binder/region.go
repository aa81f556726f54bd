package binder

import "github.com/dj1mm/vhdlstuff-sub000/ast"

// Region is a declarative region (§4.7): a chain of named entities opened
// by some AST construct (entity, architecture, package, subprogram body,
// record, ...). Outer is the lexically enclosing region; Extends is the
// one other kind of parent link the resolution walk follows instead of
// Outer when set (architecture → entity, package body → package).
//
// Region doubles as the shape a use clause installs into
// PotentiallyVisible: such a shape only ever has Entities populated, with
// Outer/Extends left nil, so it is never itself walked past during
// ordinary simple-name resolution.
type Region struct {
	Outer    *Region
	Extends  *Region
	Entities map[string][]ast.Entity

	PotentiallyVisible []*Region
}

// NewRegion opens a region whose enclosing scope is outer.
func NewRegion(outer *Region) *Region {
	return &Region{Outer: outer, Entities: make(map[string][]ast.Entity)}
}

// Declare adds e under identifier, appending rather than replacing so that
// overloaded subprograms and enumeration literals sharing a name all
// remain reachable, per §4.7 "resolution does not prune by type or arity".
func (r *Region) Declare(identifier string, e ast.Entity) {
	r.Entities[identifier] = append(r.Entities[identifier], e)
}

// local returns the entities named identifier declared directly in r,
// without following Outer/Extends.
func (r *Region) local(identifier string) []ast.Entity {
	return r.Entities[identifier]
}
