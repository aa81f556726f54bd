package binder

import "github.com/dj1mm/vhdlstuff-sub000/ast"

// Kind names what a NamedEntity denotes, mirroring the selected-name
// dispatch table of §4.7 closely enough that a switch over Kind strings
// reads the same way the spec prose does.
type Kind string

const (
	KindLibrary       Kind = "library"
	KindEntity        Kind = "entity"
	KindArchitecture  Kind = "architecture"
	KindConfiguration Kind = "configuration"
	KindPackage       Kind = "package"
	KindPackageBody   Kind = "package_body"
	KindFunction      Kind = "function"
	KindProcedure     Kind = "procedure"
	KindConstant      Kind = "constant"
	KindSignal        Kind = "signal"
	KindVariable      Kind = "variable"
	KindFile          Kind = "file"
	KindElement       Kind = "element"
	KindType          Kind = "type"
	KindSubtype       Kind = "subtype"
	KindAlias         Kind = "alias"
	KindComponent     Kind = "component"
	KindLabel         Kind = "label"
	KindLiteral       Kind = "literal"
	KindAttribute     Kind = "attribute"
	KindUnit          Kind = "unit" // physical type unit name
)

// NamedEntity is what a declarative item contributes to a region: the thing
// a Name's denotes list ultimately points at. It implements ast.Entity so
// the parser-produced AST can hold denotations without ast importing binder.
type NamedEntity struct {
	Identifier string
	Kind       Kind
	Node       ast.Node // the declaring AST node, for hover/definition/folding
	Type       *NamedEntity // resolved type/subtype, set for objects and elements
	Region     *Region      // inner region this entity opens, if any
}

func (e *NamedEntity) EntityIdentifier() string { return e.Identifier }
func (e *NamedEntity) EntityKind() string       { return string(e.Kind) }

// InnerRegion lets selected-name resolution reach into a unit, subprogram,
// record or library's own declarative region regardless of how the entity
// was obtained (declared locally or handed back by a Loader).
func (e *NamedEntity) InnerRegion() *Region { return e.Region }

func classKind(c ast.ObjectClass) Kind {
	switch c {
	case ast.ClassConstant:
		return KindConstant
	case ast.ClassSignal:
		return KindSignal
	case ast.ClassVariable:
		return KindVariable
	case ast.ClassFile:
		return KindFile
	default:
		return KindConstant
	}
}

func subprogramKind(k ast.SubprogramKind) Kind {
	if k == ast.SubprogramFunction {
		return KindFunction
	}
	return KindProcedure
}
