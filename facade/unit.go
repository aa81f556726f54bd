package facade

import (
	"time"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/binder"
	"github.com/dj1mm/vhdlstuff-sub000/library"
	"github.com/dj1mm/vhdlstuff-sub000/parser"
)

// UnitState is a library unit's place in the façade's demand-load cache
// (§4.7's "search the local cache ... entries in state analysed").
type UnitState int

const (
	StateParsed UnitState = iota
	StateAnalysing
	StateAnalysed
	StateOutdated
)

// LibraryUnit is one cached design unit: its AST, the region the binder
// opened for it (once analysed), and the file it was last read from.
type LibraryUnit struct {
	Unit     ast.DesignUnit
	State    UnitState
	Filename string
	Region   *binder.Region
}

// Entity wraps a LibraryUnit's root region as the binder.NamedEntity a
// selected-name resolution through a library prefix denotes.
func (u *LibraryUnit) Entity() *binder.NamedEntity {
	return &binder.NamedEntity{
		Identifier: u.Unit.UnitIdentifier().Text,
		Kind:       unitEntityKind(u.Unit),
		Node:       u.Unit,
		Region:     u.Region,
	}
}

func unitEntityKind(u ast.DesignUnit) binder.Kind {
	switch u.(type) {
	case *ast.EntityDecl:
		return binder.KindEntity
	case *ast.ArchitectureDecl:
		return binder.KindArchitecture
	case *ast.PackageDecl:
		return binder.KindPackage
	case *ast.PackageBodyDecl:
		return binder.KindPackageBody
	case *ast.ConfigurationDecl:
		return binder.KindConfiguration
	default:
		return ""
	}
}

// unitIdentity returns the composite key a design unit occupies in the
// library index (§4.5/§4.6's DESIGNUNIT/IDENTIFIER/IDENTIFIER2), used both
// to evict a stale cache entry before inserting a freshly parsed
// replacement and to build the row written to the library backend.
func unitIdentity(u ast.DesignUnit) (kind library.UnitKind, id1, id2 string) {
	switch unit := u.(type) {
	case *ast.EntityDecl:
		return library.KindEntity, unit.Identifier.Text, ""
	case *ast.ArchitectureDecl:
		id2 = ""
		if unit.EntityName != nil {
			id2 = unit.EntityName.Text
		}
		return library.KindArchitecture, unit.Identifier.Text, id2
	case *ast.PackageDecl:
		return library.KindPackage, unit.Identifier.Text, ""
	case *ast.PackageBodyDecl:
		// The secondary unit's own name is not resolved separately from
		// the primary it belongs to, matching parser/fast.go's same
		// simplification for package bodies.
		return library.KindPackageBody, unit.Identifier.Text, unit.Identifier.Text
	case *ast.ConfigurationDecl:
		id2 = ""
		if unit.EntityName != nil {
			id2 = unit.EntityName.Text
		}
		return library.KindConfiguration, unit.Identifier.Text, id2
	default:
		return library.KindInvalid, "", ""
	}
}

// rowFromFast builds the backend row a fast-parsed unit header contributes,
// stamping it with the current time so a later Put supersedes it.
func rowFromFast(row parser.FastRow) library.Row {
	return library.Row{
		Kind:        fastKindToLibraryKind(row.Kind),
		Line:        row.Line,
		Column:      row.Column,
		Filename:    row.Filename,
		Identifier:  row.Identifier,
		Identifier2: row.Identifier2,
		Timestamp:   time.Now().Unix(),
	}
}

// fastKindToLibraryKind maps the fast parser's own unit-kind enum onto the
// library index's, keeping the two independent rather than relying on their
// numeric values staying in lockstep.
func fastKindToLibraryKind(k parser.DesignUnitKind) library.UnitKind {
	switch k {
	case parser.UnitEntity:
		return library.KindEntity
	case parser.UnitArchitecture:
		return library.KindArchitecture
	case parser.UnitPackage:
		return library.KindPackage
	case parser.UnitPackageBody:
		return library.KindPackageBody
	case parser.UnitConfiguration:
		return library.KindConfiguration
	default:
		return library.KindInvalid
	}
}

// isPrimary reports whether kind is one of the three kinds a demand-load
// searches by simple identifier (§4.7's "consult the library backend ...
// if it reports a primary unit (entity/package/configuration)").
func isPrimary(kind library.UnitKind) bool {
	return kind == library.KindEntity || kind == library.KindPackage || kind == library.KindConfiguration
}
