// Package facade implements the AST façade of §4.8: the per-file owner of
// the interner, the library-unit cache and the diagnostics that a parse
// and bind pass produces, driven by a single update() entry point.
package facade

import (
	"os"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/binder"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/library"
	"github.com/dj1mm/vhdlstuff-sub000/parser"
	"github.com/dj1mm/vhdlstuff-sub000/token"
	"golang.org/x/sync/singleflight"
)

// Facade owns one open file's interner, library-unit cache and
// diagnostics, and drives the parse+bind pass described in §4.8.
type Facade struct {
	Filename    string
	WorkLibrary string
	Version     token.Version

	interner *interner.Interner
	libs     *library.Manager

	// units caches every library unit this façade has parsed or
	// demand-loaded, keyed by the logical library name it belongs to.
	// The façade's own file always populates WorkLibrary.
	units map[string][]*LibraryUnit

	main *ast.DesignFile

	// loads collapses concurrent demand-loads of the same (library,
	// identifier) pair into a single parse+bind, since two query tasks
	// racing to resolve the same selected name would otherwise both pay
	// the file I/O and binder cost.
	loads singleflight.Group

	ParseDiags    errors.List
	SemanticDiags errors.List

	invalidated bool

	// ReadFile lets tests substitute an in-memory source without touching
	// the filesystem; production code leaves it nil and gets os.ReadFile.
	ReadFile func(string) ([]byte, error)

	// ProjectVersion and librariesFullyPopulated record the state this
	// façade was last built against (§4.9's "project version tracking");
	// the coordinator compares these before dispatching a query and
	// rebuilds the façade when either has moved.
	ProjectVersion          int
	librariesFullyPopulated bool
}

// New returns a façade for filename, invalidated so the first Update call
// performs a full parse and bind.
func New(filename, workLibrary string, libs *library.Manager) *Facade {
	return &Facade{
		Filename:    filename,
		WorkLibrary: workLibrary,
		libs:        libs,
		interner:    interner.New(),
		units:       make(map[string][]*LibraryUnit),
		Version:     token.VHDL08,
		invalidated: true,
	}
}

func (f *Facade) readFile(path string) ([]byte, error) {
	if f.ReadFile != nil {
		return f.ReadFile(path)
	}
	return os.ReadFile(path)
}

// InvalidateMainFile marks this façade's own file stale, per §4.8.
func (f *Facade) InvalidateMainFile() {
	f.invalidated = true
}

// InvalidateReferenceFile marks every cached library unit whose source
// file is path as outdated and requests a rebind on the next Update,
// matching §4.8's invalidate_reference_file.
func (f *Facade) InvalidateReferenceFile(path string) {
	for _, units := range f.units {
		for _, u := range units {
			if u.Filename == path {
				u.State = StateOutdated
			}
		}
	}
	f.invalidated = true
}

// MainFile returns the design file produced by the most recent successful
// Update, or nil if the source did not exist at that time.
func (f *Facade) MainFile() *ast.DesignFile { return f.main }

// Update runs the seven-step algorithm of §4.8 and reports which of its
// terminal states was reached.
func (f *Facade) Update() string {
	if !f.invalidated {
		return "already up-to-date"
	}

	src, err := f.readFile(f.Filename)
	if err != nil {
		f.ParseDiags.Reset()
		f.SemanticDiags.Reset()
		f.main = nil
		f.invalidated = false
		return "source missing"
	}

	f.ParseDiags.Reset()
	file := parser.ParseFile(f.Filename, src, f.interner, &f.ParseDiags, f.Version)
	f.main = file

	f.SemanticDiags.Reset()
	b := binder.New(f)
	for _, unit := range file.Units {
		f.evict(f.WorkLibrary, unit)
		lu := &LibraryUnit{Unit: unit, State: StateParsed, Filename: f.Filename}
		f.units[f.WorkLibrary] = append(f.units[f.WorkLibrary], lu)

		lu.State = StateAnalysing
		lu.Region = b.Bind(unit)
		lu.State = StateAnalysed
	}
	for _, d := range b.Diags {
		f.SemanticDiags.Add(d)
	}

	if be := f.backend(); be != nil && be.IsKnown() {
		// Indexing goes through the fast parser exclusively (§9), never the
		// full AST just built above: a linear token skim is enough to
		// populate the library index, and stays cheap even for a file whose
		// full parse is expensive or whose bind pass fails.
		for _, row := range parser.ScanUnits(f.Filename, src, f.interner, f.Version) {
			_ = be.Put(rowFromFast(row))
		}
	}

	f.invalidated = false
	return "was updated"
}

// backend returns the work library's backend, or nil if this façade has
// no library manager (a scratch buffer outside any project).
func (f *Facade) backend() *library.Backend {
	if f.libs == nil || f.WorkLibrary == "" {
		return nil
	}
	return f.libs.Get(f.WorkLibrary)
}

// evict drops cached entries in library whose identity matches unit,
// implementing §4.8 step 4's "evict cache entries whose syntax equals it"
// ahead of inserting the freshly parsed replacement.
func (f *Facade) evict(lib string, unit ast.DesignUnit) {
	kind, id1, id2 := unitIdentity(unit)
	kept := f.units[lib][:0]
	for _, u := range f.units[lib] {
		k, i1, i2 := unitIdentity(u.Unit)
		if k == kind && i1 == id1 && i2 == id2 {
			continue
		}
		kept = append(kept, u)
	}
	f.units[lib] = kept
}

// DemandLoad implements binder.Loader: it satisfies a selected name's
// library-prefixed lookup by searching this façade's own cache first,
// then falling back to the library manager's backend and parsing the
// file it names.
func (f *Facade) DemandLoad(lib, identifier string) []ast.Entity {
	if ents := f.fromCache(lib, identifier); ents != nil {
		return ents
	}
	return f.fromBackend(lib, identifier)
}

func (f *Facade) fromCache(lib, identifier string) []ast.Entity {
	var out []ast.Entity
	for _, u := range f.units[lib] {
		if u.State != StateAnalysed {
			continue
		}
		if u.Unit.UnitIdentifier().Text != identifier {
			continue
		}
		kind, _, _ := unitIdentity(u.Unit)
		if !isPrimary(kind) {
			continue
		}
		out = append(out, u.Entity())
	}
	return out
}

func (f *Facade) fromBackend(lib, identifier string) []ast.Entity {
	if f.libs == nil {
		return nil
	}
	be := f.libs.Get(lib)
	if be == nil {
		return nil
	}

	key := lib + "\x00" + identifier
	v, _, _ := f.loads.Do(key, func() (any, error) {
		for _, kind := range []library.UnitKind{library.KindEntity, library.KindPackage, library.KindConfiguration} {
			row, ok := be.Get(kind, identifier, "")
			if !ok {
				continue
			}
			if ent := f.loadRow(lib, row); ent != nil {
				return ent, nil
			}
		}
		return nil, nil
	})
	if v == nil {
		return nil
	}
	return []ast.Entity{v.(*binder.NamedEntity)}
}

// loadRow parses the file a backend row points at, binds the unit matching
// row's identity, caches it as analysed and returns it wrapped as an
// ast.Entity.
func (f *Facade) loadRow(lib string, row library.Row) *binder.NamedEntity {
	src, err := f.readFile(row.Filename)
	if err != nil {
		return nil
	}

	var diags errors.List
	file := parser.ParseFile(row.Filename, src, f.interner, &diags, f.Version)

	var found *LibraryUnit
	b := binder.New(f)
	for _, unit := range file.Units {
		k, i1, i2 := unitIdentity(unit)
		f.evict(lib, unit)
		lu := &LibraryUnit{Unit: unit, State: StateAnalysing, Filename: row.Filename}
		lu.Region = b.Bind(unit)
		lu.State = StateAnalysed
		f.units[lib] = append(f.units[lib], lu)

		if k == row.Kind && i1 == row.Identifier && i2 == row.Identifier2 {
			found = lu
		}
	}
	if found == nil {
		return nil
	}
	return found.Entity()
}
