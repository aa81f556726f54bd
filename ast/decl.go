package ast

import "github.com/dj1mm/vhdlstuff-sub000/token"

// DeclarativeItem is implemented by everything that can appear in a
// declarative part: type/subtype declarations, object declarations,
// interface declarations (generics and ports reuse this), aliases,
// subprogram specifications and bodies, component declarations, attribute
// declarations and specifications, configuration specifications, and use
// clauses repeated inside a declarative part.
type DeclarativeItem interface {
	Node
	declarativeItemNode()
}

// ObjectClass distinguishes the four kinds of VHDL objects, shared between
// ObjectDecl (declarative part) and InterfaceDecl (generic/port clauses).
type ObjectClass int

const (
	ClassConstant ObjectClass = iota
	ClassSignal
	ClassVariable
	ClassFile
)

func (c ObjectClass) String() string {
	switch c {
	case ClassConstant:
		return "constant"
	case ClassSignal:
		return "signal"
	case ClassVariable:
		return "variable"
	case ClassFile:
		return "file"
	default:
		return "unknown"
	}
}

// Mode is the direction of an interface object (port or generic).
type Mode int

const (
	ModeNone Mode = iota
	ModeIn
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

// TypeDecl is `type <id> is <type_definition>;`, or `type <id>;` for an
// incomplete type declaration (Definition is nil in that case).
type TypeDecl struct {
	Base
	Identifier *Ident
	Definition TypeDefinition
}

func (*TypeDecl) declarativeItemNode() {}

// SubtypeDecl is `subtype <id> is <subtype_indication>;`.
type SubtypeDecl struct {
	Base
	Identifier *Ident
	Indication *SubtypeIndication
}

func (*SubtypeDecl) declarativeItemNode() {}

// SubtypeIndication is a (resolution function,) type mark (,constraint).
// The type mark is a Name resolved by the binder to a type declaration;
// constraints are opaque token ranges (this front end does not evaluate
// index/range constraints, only records their extent for folding/hover).
type SubtypeIndication struct {
	Base
	ResolutionFunction Name // nil if absent
	TypeMark           Name
	Constraint         *token.Range // nil if absent
}

// ObjectDecl is a constant/signal/variable/file declaration, one node per
// declaration even when the source lists multiple identifiers
// (`signal a, b, c : bit;` yields three ObjectDecls sharing one
// SubtypeIndication and Init, per the binder's per-identifier denotation
// model).
type ObjectDecl struct {
	Base
	Class      ObjectClass
	Identifier *Ident
	Indication *SubtypeIndication
	Init       Expr // nil if no default/open expression
}

func (*ObjectDecl) declarativeItemNode() {}

// InterfaceDecl is one generic or port: `<id> : [mode] <subtype_indication> [:= <expr>]`.
// Reused verbatim for generics (Class is normally ClassConstant) and ports
// (Class is normally ClassSignal), matching how the grammar itself treats
// both as interface_declaration.
type InterfaceDecl struct {
	Base
	Class      ObjectClass
	Identifier *Ident
	Mode       Mode
	Indication *SubtypeIndication
	Init       Expr
}

func (*InterfaceDecl) declarativeItemNode() {}

// AliasDecl is `alias <designator> [: <subtype_indication>] is <name> [signature];`.
type AliasDecl struct {
	Base
	Designator *Ident
	Indication *SubtypeIndication // nil if no subtype indication given
	Target     Name
}

func (*AliasDecl) declarativeItemNode() {}

// SubprogramKind distinguishes procedures from functions.
type SubprogramKind int

const (
	SubprogramProcedure SubprogramKind = iota
	SubprogramFunction
)

// SubprogramSpec is a procedure/function declaration (specification only;
// see SubprogramBody for one with a statement part).
type SubprogramSpec struct {
	Base
	Kind         SubprogramKind
	Designator   *Ident // operator symbols are stored as their string form
	Parameters   []*InterfaceDecl
	ReturnType   Name // nil for procedures
	IsPure       bool // meaningful only for Kind == SubprogramFunction
}

func (*SubprogramSpec) declarativeItemNode() {}

// SubprogramBody is a procedure/function body: spec plus declarative and
// statement parts, its own nested declarative region.
type SubprogramBody struct {
	Base
	Spec       *SubprogramSpec
	Decls      []DeclarativeItem
	BeginRange token.Range
	Statements []SequentialStatement
	EndLabel   *Ident
}

func (*SubprogramBody) declarativeItemNode() {}

// ComponentDecl is `component <id> [is] generic(...); port(...); end component [<id>];`.
type ComponentDecl struct {
	Base
	Identifier    *Ident
	GenericClause []*InterfaceDecl
	PortClause    []*InterfaceDecl
	EndLabel      *Ident
}

func (*ComponentDecl) declarativeItemNode() {}

// AttributeDecl is `attribute <id> : <type_mark>;`.
type AttributeDecl struct {
	Base
	Identifier *Ident
	TypeMark   Name
}

func (*AttributeDecl) declarativeItemNode() {}

// EntityClass names the kind of item an attribute specification applies to
// (`entity`, `signal`, `type`, `all`, `others`, ...).
type EntityClass int

const (
	EntityClassUnknown EntityClass = iota
	EntityClassEntity
	EntityClassArchitecture
	EntityClassConfiguration
	EntityClassProcedure
	EntityClassFunction
	EntityClassPackage
	EntityClassType
	EntityClassSubtype
	EntityClassConstant
	EntityClassSignal
	EntityClassVariable
	EntityClassComponent
	EntityClassLabel
	EntityClassLiteral
	EntityClassUnits
	EntityClassGroup
	EntityClassFile
	EntityClassAll
	EntityClassOthers
)

// AttrSpec is `attribute <id> of <names> : <entity_class> is <expr>;`.
type AttrSpec struct {
	Base
	Attribute   *Ident
	Designators []Name // or a single "others"/"all" sentinel Name
	Class       EntityClass
	Value       Expr
}

func (*AttrSpec) declarativeItemNode() {}

// ConfigSpec is `for <spec> : <component name> use <binding indication>;`,
// recorded only by extent: this front end does not resolve component
// binding indications.
type ConfigSpec struct {
	Base
	ComponentName Name
}

func (*ConfigSpec) declarativeItemNode() {}

// UseDecl repeats a use clause inside a declarative part (distinct from
// ContextItem's UseClause, which only appears in a unit's context).
type UseDecl struct {
	Base
	Names []Name
}

func (*UseDecl) declarativeItemNode() {}
