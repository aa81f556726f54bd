package ast

// TypeDefinition is implemented by every form a `type <id> is ...`
// declaration's right-hand side can take.
type TypeDefinition interface {
	Node
	typeDefinitionNode()
}

// EnumerationType is `(<literal>, ...)`, each literal a basic identifier or
// a character literal.
type EnumerationType struct {
	Base
	Literals []*Ident
}

func (*EnumerationType) typeDefinitionNode() {}

// IntegerType is `range <range>` with no unit declarations.
type IntegerType struct {
	Base
	Range RangeExpr
}

func (*IntegerType) typeDefinitionNode() {}

// FloatingType is `range <range>` for a floating-point base type.
type FloatingType struct {
	Base
	Range RangeExpr
}

func (*FloatingType) typeDefinitionNode() {}

// PhysicalType is `range <range> units <primary> {<secondary> = <literal>;} end units;`.
type PhysicalType struct {
	Base
	Range        RangeExpr
	PrimaryUnit  *Ident
	SecondaryUnits []PhysicalUnit
}

func (*PhysicalType) typeDefinitionNode() {}

// PhysicalUnit is `<id> = <literal>;` inside a physical type's units clause.
type PhysicalUnit struct {
	Base
	Identifier *Ident
	Value      *PhysicalLiteral
}

// ArrayIndexKind distinguishes constrained from unconstrained array index
// subtypes.
type ArrayIndexKind int

const (
	ArrayIndexConstrained ArrayIndexKind = iota
	ArrayIndexUnconstrained
)

// ArrayType covers both constrained and unconstrained array type
// definitions; Kind picks which. For unconstrained arrays, IndexMarks holds
// the index subtype marks (`array (<type mark> range <>, ...) of <elem>`);
// for constrained arrays IndexRanges holds the index ranges.
type ArrayType struct {
	Base
	Kind        ArrayIndexKind
	IndexMarks  []Name      // set when Kind == ArrayIndexUnconstrained
	IndexRanges []RangeExpr // set when Kind == ArrayIndexConstrained
	Element     *SubtypeIndication
}

func (*ArrayType) typeDefinitionNode() {}

// RecordType is `record <element>... end record;`.
type RecordType struct {
	Base
	Elements []RecordElement
}

func (*RecordType) typeDefinitionNode() {}

// RecordElement is `<id>, ... : <subtype_indication>;`, one node per
// identifier, matching ObjectDecl's per-identifier fan-out.
type RecordElement struct {
	Base
	Identifier *Ident
	Indication *SubtypeIndication
}

// AccessType is `access <subtype_indication>`.
type AccessType struct {
	Base
	Designated *SubtypeIndication
}

func (*AccessType) typeDefinitionNode() {}

// FileType is `file of <type_mark>`.
type FileType struct {
	Base
	TypeMark Name
}

func (*FileType) typeDefinitionNode() {}
