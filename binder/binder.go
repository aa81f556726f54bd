// Package binder implements the single-pass name resolver of §4.7: given
// one library unit's parsed AST, it builds the chain of declarative
// regions the unit opens, declares every named entity into the region it
// belongs to, and resolves every name occurrence's denotation list against
// that chain, following LRM §10 visibility.
package binder

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
)

// Loader demand-loads a primary unit by (library, identifier) for
// selected-name resolution through a library prefix (§4.7 "Selected
// name" / "Demand-loading a primary unit"). Implemented by package facade,
// which owns the unit cache and library backend the binder itself does not
// reach into directly.
type Loader interface {
	DemandLoad(library, identifier string) []ast.Entity
}

// Binder runs one pass over one design unit. Local lets an architecture
// resolve its `of <entity>` clause, and a package body its own package,
// against a unit bound earlier in the same batch (typically the same
// file) before falling back to Loader.
type Binder struct {
	Diags errors.List
	Loader Loader
	Local  map[string]*NamedEntity

	current *Region
}

// New returns a Binder that demand-loads through loader (nil is fine when
// the caller knows no selected name will ever cross a library boundary,
// e.g. a scratch buffer with no library clauses).
func New(loader Loader) *Binder {
	return &Binder{Loader: loader, Local: make(map[string]*NamedEntity)}
}

func (b *Binder) errorf(n ast.Node, format string, args ...any) {
	b.Diags.Addf(n.Range(), format, args...)
}

func (b *Binder) open() *Region {
	r := NewRegion(b.current)
	b.current = r
	return r
}

func (b *Binder) close(outer *Region) {
	b.current = outer
}

// Bind resolves unit, returning the region it opened. Diagnostics
// accumulate on b.Diags across every call made on this Binder, matching
// §4.7's "semantic diagnostics are collected but never fatal".
func (b *Binder) Bind(unit ast.DesignUnit) *Region {
	switch u := unit.(type) {
	case *ast.EntityDecl:
		return b.bindEntity(u)
	case *ast.ArchitectureDecl:
		return b.bindArchitecture(u)
	case *ast.PackageDecl:
		return b.bindPackage(u)
	case *ast.PackageBodyDecl:
		return b.bindPackageBody(u)
	case *ast.ConfigurationDecl:
		return b.bindConfiguration(u)
	}
	return nil
}

func (b *Binder) bindEntity(u *ast.EntityDecl) *Region {
	r := b.open()
	defer b.close(nil)

	b.processContext(u.ContextItems)
	b.declareInterfaceDecls(u.GenericClause)
	b.declareInterfaceDecls(u.PortClause)
	b.processDecls(u.Decls)
	b.resolveConcurrent(u.Statements)

	b.Local[u.Identifier.Text] = &NamedEntity{Identifier: u.Identifier.Text, Kind: KindEntity, Node: u, Region: r}
	return r
}

func (b *Binder) bindArchitecture(u *ast.ArchitectureDecl) *Region {
	var extends *Region
	if u.EntityName != nil {
		if ent := b.findUnit(u.EntityName.Text); ent != nil {
			extends = ent.Region
		} else {
			b.errorf(u.EntityName, "entity %q not found", u.EntityName.Text)
		}
	}
	r := &Region{Outer: nil, Extends: extends, Entities: make(map[string][]ast.Entity)}
	outer := b.current
	b.current = r
	defer b.close(outer)

	b.processContext(u.ContextItems)
	b.processDecls(u.Decls)
	b.resolveConcurrent(u.Statements)

	b.Local[u.Identifier.Text] = &NamedEntity{Identifier: u.Identifier.Text, Kind: KindArchitecture, Node: u, Region: r}
	return r
}

func (b *Binder) bindPackage(u *ast.PackageDecl) *Region {
	r := b.open()
	defer b.close(nil)

	b.processContext(u.ContextItems)
	b.processDecls(u.Decls)

	b.Local[u.Identifier.Text] = &NamedEntity{Identifier: u.Identifier.Text, Kind: KindPackage, Node: u, Region: r}
	return r
}

func (b *Binder) bindPackageBody(u *ast.PackageBodyDecl) *Region {
	var extends *Region
	if pkg := b.findUnit(u.Identifier.Text); pkg != nil {
		extends = pkg.Region
	} else {
		b.errorf(u.Identifier, "package %q has no visible declaration", u.Identifier.Text)
	}
	r := &Region{Outer: nil, Extends: extends, Entities: make(map[string][]ast.Entity)}
	outer := b.current
	b.current = r
	defer b.close(outer)

	b.processContext(u.ContextItems)
	b.processDecls(u.Decls)

	b.Local[u.Identifier.Text] = &NamedEntity{Identifier: u.Identifier.Text, Kind: KindPackageBody, Node: u, Region: r}
	return r
}

func (b *Binder) bindConfiguration(u *ast.ConfigurationDecl) *Region {
	r := b.open()
	defer b.close(nil)

	b.processContext(u.ContextItems)
	if u.EntityName != nil && b.findUnit(u.EntityName.Text) == nil {
		b.errorf(u.EntityName, "entity %q not found", u.EntityName.Text)
	}

	b.Local[u.Identifier.Text] = &NamedEntity{Identifier: u.Identifier.Text, Kind: KindConfiguration, Node: u, Region: r}
	return r
}

// findUnit looks up a unit bound earlier in this batch, falling back to a
// work-library demand-load so an architecture can be analysed standalone.
func (b *Binder) findUnit(identifier string) *NamedEntity {
	if ne, ok := b.Local[identifier]; ok {
		return ne
	}
	if b.Loader == nil {
		return nil
	}
	for _, e := range b.Loader.DemandLoad("work", identifier) {
		if ne, ok := e.(*NamedEntity); ok {
			return ne
		}
	}
	return nil
}

// --- context clauses ---

func (b *Binder) processContext(items []ast.ContextItem) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.LibraryClause:
			for _, name := range it.Names {
				if name.Text == "work" {
					b.errorf(name, "library clause may not name the work library")
					continue
				}
				b.current.Declare(name.Text, &NamedEntity{Identifier: name.Text, Kind: KindLibrary, Node: name})
			}
		case *ast.UseClause:
			b.processUse(it.Names)
		}
	}
}

func (b *Binder) processUse(names []ast.Name) {
	for _, n := range names {
		sel, ok := n.(*ast.SelectedName)
		if !ok {
			b.resolveName(n)
			continue
		}
		b.resolveName(sel.Prefix)
		prefixType := singleUnit(sel.Prefix.Denotes())
		if prefixType == nil || prefixType.Region == nil {
			continue
		}
		shape := &Region{Entities: make(map[string][]ast.Entity)}
		if sel.All {
			for id, es := range prefixType.Region.Entities {
				shape.Entities[id] = append(shape.Entities[id], es...)
			}
		} else if sel.Suffix != nil {
			if es, ok := prefixType.Region.Entities[sel.Suffix.Text]; ok {
				shape.Entities[sel.Suffix.Text] = es
			}
		}
		b.current.PotentiallyVisible = append(b.current.PotentiallyVisible, shape)
	}
}

func singleUnit(denotes []ast.Entity) *NamedEntity {
	for _, d := range denotes {
		if ne, ok := d.(*NamedEntity); ok && ne.Region != nil {
			return ne
		}
	}
	return nil
}

// --- declarative parts ---

func (b *Binder) processDecls(items []ast.DeclarativeItem) {
	for _, item := range items {
		b.processDecl(item)
	}
}

func (b *Binder) processDecl(item ast.DeclarativeItem) {
	switch d := item.(type) {
	case *ast.TypeDecl:
		b.processTypeDecl(d)
	case *ast.SubtypeDecl:
		b.resolveSubtypeIndication(d.Indication)
		ne := &NamedEntity{Identifier: d.Identifier.Text, Kind: KindSubtype, Node: d, Type: markType(d.Indication)}
		b.current.Declare(d.Identifier.Text, ne)
	case *ast.ObjectDecl:
		b.resolveSubtypeIndication(d.Indication)
		if d.Init != nil {
			b.resolveExpr(d.Init)
		}
		ne := &NamedEntity{Identifier: d.Identifier.Text, Kind: classKind(d.Class), Node: d, Type: markType(d.Indication)}
		b.current.Declare(d.Identifier.Text, ne)
	case *ast.InterfaceDecl:
		b.resolveSubtypeIndication(d.Indication)
		if d.Init != nil {
			b.resolveExpr(d.Init)
		}
		ne := &NamedEntity{Identifier: d.Identifier.Text, Kind: classKind(d.Class), Node: d, Type: markType(d.Indication)}
		b.current.Declare(d.Identifier.Text, ne)
	case *ast.AliasDecl:
		if d.Indication != nil {
			b.resolveSubtypeIndication(d.Indication)
		}
		b.resolveName(d.Target)
		b.current.Declare(d.Designator.Text, &NamedEntity{Identifier: d.Designator.Text, Kind: KindAlias, Node: d})
	case *ast.SubprogramSpec:
		b.processSubprogramSpec(d)
		b.current.Declare(d.Designator.Text, &NamedEntity{Identifier: d.Designator.Text, Kind: subprogramKind(d.Kind), Node: d})
	case *ast.SubprogramBody:
		b.processSubprogramBody(d)
	case *ast.ComponentDecl:
		b.processComponentDecl(d)
	case *ast.AttributeDecl:
		b.resolveName(d.TypeMark)
		b.current.Declare(d.Identifier.Text, &NamedEntity{Identifier: d.Identifier.Text, Kind: KindAttribute, Node: d})
	case *ast.AttrSpec:
		// d.Attribute is the attribute's own identifier, not a resolvable
		// Name; only its designators and value carry name occurrences.
		for _, des := range d.Designators {
			b.resolveName(des)
		}
		if d.Value != nil {
			b.resolveExpr(d.Value)
		}
	case *ast.ConfigSpec:
		b.resolveName(d.ComponentName)
	case *ast.UseDecl:
		b.processUse(d.Names)
	}
}

// markType returns the single entity an indication's type mark resolved
// to, so the declared object/subtype can later serve a selected-name
// lookup through a record element.
func markType(si *ast.SubtypeIndication) *NamedEntity {
	if si == nil || si.TypeMark == nil {
		return nil
	}
	return singleUnit(si.TypeMark.Denotes())
}

func (b *Binder) processTypeDecl(d *ast.TypeDecl) {
	if d.Definition == nil {
		b.current.Declare(d.Identifier.Text, &NamedEntity{Identifier: d.Identifier.Text, Kind: KindType, Node: d})
		return
	}
	var inner *Region
	switch def := d.Definition.(type) {
	case *ast.EnumerationType:
		// Literals are declared into the enclosing region per §4.7, not an
		// inner region of the type.
		for _, lit := range def.Literals {
			b.current.Declare(lit.Text, &NamedEntity{Identifier: lit.Text, Kind: KindLiteral, Node: lit})
		}
	case *ast.IntegerType:
		b.resolveRange(def.Range)
	case *ast.FloatingType:
		b.resolveRange(def.Range)
	case *ast.PhysicalType:
		b.resolveRange(def.Range)
		for _, u := range def.SecondaryUnits {
			_ = u // secondary unit names are not resolved further; recorded for folding/hover only
		}
	case *ast.ArrayType:
		for _, m := range def.IndexMarks {
			b.resolveName(m)
		}
		for _, r := range def.IndexRanges {
			b.resolveRange(r)
		}
		b.resolveSubtypeIndication(def.Element)
	case *ast.RecordType:
		outer := b.current
		inner = b.open()
		for _, el := range def.Elements {
			b.resolveSubtypeIndication(el.Indication)
			inner.Declare(el.Identifier.Text, &NamedEntity{Identifier: el.Identifier.Text, Kind: KindElement, Node: el, Type: markType(el.Indication)})
		}
		b.close(outer)
	case *ast.AccessType:
		b.resolveSubtypeIndication(def.Designated)
	case *ast.FileType:
		b.resolveName(def.TypeMark)
	}
	b.current.Declare(d.Identifier.Text, &NamedEntity{Identifier: d.Identifier.Text, Kind: KindType, Node: d, Region: inner})
}

func (b *Binder) processSubprogramSpec(d *ast.SubprogramSpec) {
	for _, p := range d.Parameters {
		b.resolveSubtypeIndication(p.Indication)
		if p.Init != nil {
			b.resolveExpr(p.Init)
		}
	}
	if d.ReturnType != nil {
		b.resolveName(d.ReturnType)
	}
}

func (b *Binder) processSubprogramBody(d *ast.SubprogramBody) {
	outer := b.current
	r := b.open()
	defer b.close(outer)

	if d.Spec.ReturnType != nil {
		b.resolveName(d.Spec.ReturnType)
	}
	for _, p := range d.Spec.Parameters {
		b.resolveSubtypeIndication(p.Indication)
		if p.Init != nil {
			b.resolveExpr(p.Init)
		}
		r.Declare(p.Identifier.Text, &NamedEntity{Identifier: p.Identifier.Text, Kind: classKind(p.Class), Node: p, Type: markType(p.Indication)})
	}
	b.processDecls(d.Decls)
	b.resolveSequential(d.Statements)

	outer.Declare(d.Spec.Designator.Text, &NamedEntity{Identifier: d.Spec.Designator.Text, Kind: subprogramKind(d.Spec.Kind), Node: d, Region: r})
}

func (b *Binder) processComponentDecl(d *ast.ComponentDecl) {
	outer := b.current
	r := b.open()
	for _, g := range d.GenericClause {
		b.resolveSubtypeIndication(g.Indication)
		r.Declare(g.Identifier.Text, &NamedEntity{Identifier: g.Identifier.Text, Kind: classKind(g.Class), Node: g, Type: markType(g.Indication)})
	}
	for _, p := range d.PortClause {
		b.resolveSubtypeIndication(p.Indication)
		r.Declare(p.Identifier.Text, &NamedEntity{Identifier: p.Identifier.Text, Kind: classKind(p.Class), Node: p, Type: markType(p.Indication)})
	}
	b.close(outer)
	outer.Declare(d.Identifier.Text, &NamedEntity{Identifier: d.Identifier.Text, Kind: KindComponent, Node: d, Region: r})
}

func (b *Binder) declareInterfaceDecls(items []ast.DeclarativeItem) {
	for _, item := range items {
		id, ok := item.(*ast.InterfaceDecl)
		if !ok {
			continue
		}
		b.resolveSubtypeIndication(id.Indication)
		if id.Init != nil {
			b.resolveExpr(id.Init)
		}
		b.current.Declare(id.Identifier.Text, &NamedEntity{Identifier: id.Identifier.Text, Kind: classKind(id.Class), Node: id, Type: markType(id.Indication)})
	}
}
