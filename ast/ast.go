// Package ast declares the tagged-variant types used to represent VHDL
// design files. Every node carries the source range of the text it was
// parsed from; nodes are connected by plain Go slices and pointers rather
// than an explicit arena, with the design_file that owns them expected to
// be discarded (and its nodes garbage collected) as one unit on reparse.
package ast

import "github.com/dj1mm/vhdlstuff-sub000/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position // position of the first character belonging to the node
	End() token.Position // position of the first character after the node
	Range() token.Range
}

// Base is embedded by every concrete node to supply Pos/End/Range from a
// single stored range, the way the original front end stamps "first/last"
// on every node without repeating the accessor logic per type. It is
// exported, unlike a typical cue-style embedding helper, so that package
// parser - which lives outside ast - can stamp ranges when it builds node
// literals.
type Base struct {
	Rng token.Range
}

func (b Base) Pos() token.Position { return b.Rng.Begin }
func (b Base) End() token.Position { return b.Rng.End }
func (b Base) Range() token.Range  { return b.Rng }

// NewBase is used by the parser to stamp a node's range at construction.
func NewBase(rng token.Range) Base { return Base{Rng: rng} }

// Ident is a basic or extended identifier occurrence - not yet a name
// reference (see Name for that); used for declaration identifiers, labels,
// and the identifier half of library/use clauses.
type Ident struct {
	Base
	Text string // case-folded for basic identifiers, as-is for extended ones
}

// Entity is implemented by the binder's NamedEntity. ast depends only on
// this narrow interface so that a Name's resolved denotations can be stored
// on the AST without ast importing binder (binder imports ast to walk it;
// the reverse would cycle). See DESIGN.md "Open Question decisions
// (binder)" for the full cross-unit ownership story.
type Entity interface {
	EntityIdentifier() string
	EntityKind() string
}

// DesignFile owns every design unit parsed from one source file plus the
// raw bytes they were parsed from (kept so visitors can slice source text
// for hover previews without re-reading the file).
type DesignFile struct {
	Base
	Units  []DesignUnit
	Source []byte

	// DanglingContext holds context items (library/use clauses) parsed at
	// the top level that were never attached to a design unit - e.g. a
	// library clause followed directly by end-of-file. They belong to no
	// unit, so they have nowhere else to live, but a consumer (the binder,
	// a visitor) may still want to see them rather than have them silently
	// discarded.
	DanglingContext []ContextItem
}

// DesignUnit is implemented by every top-level construct: entity,
// architecture, package, package body, configuration.
type DesignUnit interface {
	Node
	designUnitNode()
	UnitIdentifier() *Ident
	Context() []ContextItem
}

// ContextItem is implemented by library and use clauses.
type ContextItem interface {
	Node
	contextItemNode()
}

// LibraryClause is `library name1, name2, ...;`.
type LibraryClause struct {
	Base
	Names []*Ident
}

func (*LibraryClause) contextItemNode() {}

// UseClause is `use name1, name2, ...;`, each Name typically a selected
// name ending in a simple name or `all`.
type UseClause struct {
	Base
	Names []Name
}

func (*UseClause) contextItemNode() {}

// CommonUnit factors the fields every design unit shares.
type CommonUnit struct {
	Base
	Identifier   *Ident
	ContextItems []ContextItem
}

func (u *CommonUnit) UnitIdentifier() *Ident { return u.Identifier }
func (u *CommonUnit) Context() []ContextItem { return u.ContextItems }

// EntityDecl is `entity <id> is ... end [entity] [<id>];`.
type EntityDecl struct {
	CommonUnit
	GenericClause []DeclarativeItem // interface objects, class=generic constant
	PortClause    []DeclarativeItem // interface objects, class=port signal
	Decls         []DeclarativeItem
	BeginRange    token.Range // zero Range if no statement part
	Statements    []ConcurrentStatement
	EndLabel      *Ident // closing label, if repeated; nil if omitted
}

func (*EntityDecl) designUnitNode() {}

// ArchitectureDecl is `architecture <id> of <entity> is ... begin ... end;`.
type ArchitectureDecl struct {
	CommonUnit
	EntityName *Ident // the `of <entity>` reference, resolved by the binder
	IsRange    token.Range
	Decls      []DeclarativeItem
	BeginRange token.Range
	Statements []ConcurrentStatement
	EndRange   token.Range
	EndLabel   *Ident
}

func (*ArchitectureDecl) designUnitNode() {}

// PackageDecl is `package <id> is ... end [package] [<id>];`.
type PackageDecl struct {
	CommonUnit
	Decls    []DeclarativeItem
	EndLabel *Ident
}

func (*PackageDecl) designUnitNode() {}

// PackageBodyDecl is `package body <id> is ... end [package body] [<id>];`.
type PackageBodyDecl struct {
	CommonUnit
	Decls    []DeclarativeItem
	EndLabel *Ident
}

func (*PackageBodyDecl) designUnitNode() {}

// ConfigurationDecl is `configuration <id> of <entity> is ... end [configuration] [<id>];`.
// Block/component configuration internals are represented only as opaque
// text ranges: full configuration-binding semantics are outside this
// front end's name-resolution scope (§1 defers typing/elaboration).
type ConfigurationDecl struct {
	CommonUnit
	EntityName *Ident
	Body       token.Range
	EndLabel   *Ident
}

func (*ConfigurationDecl) designUnitNode() {}
