package ast

// Name is implemented by every name-denoting construct: simple, selected,
// slice, index-or-call (ambiguous until the binder disambiguates it against
// the denoted entity's kind), attribute, qualified, and signature names.
// Every Name accumulates zero or more denotations as the binder resolves
// it; zero means unresolved (and, post-binding, produces a diagnostic),
// more than one means the name is still ambiguous among overloaded
// subprograms or enumeration literals.
type Name interface {
	Node
	nameNode()
	Denotes() []Entity
	SetDenotes([]Entity)
}

// NameBase factors the denotation slot shared by every Name variant.
type NameBase struct {
	Base
	denotes []Entity
}

func (n *NameBase) Denotes() []Entity       { return n.denotes }
func (n *NameBase) SetDenotes(es []Entity)  { n.denotes = es }

// SimpleName is a bare identifier used in a name context (as opposed to
// Ident, which is a declaration's own identifier and never resolved).
type SimpleName struct {
	NameBase
	Identifier *Ident
}

func (*SimpleName) nameNode() {}

// SelectedName is `<prefix>.<suffix>`, where suffix is a simple name,
// character literal, operator symbol, or the reserved word `all`.
type SelectedName struct {
	NameBase
	Prefix     Name
	All        bool   // true for `prefix.all`
	Suffix     *Ident // nil when All is true
}

func (*SelectedName) nameNode() {}

// SliceName is `<prefix>(<range>)` once the binder has determined the
// prefix denotes an array object rather than a function; until then the
// parser produces an IndexOrCallName (see below).
type SliceName struct {
	NameBase
	Prefix Name
	Range  RangeExpr
}

func (*SliceName) nameNode() {}

// IndexOrCallName is `<prefix>(<associations>)`: a parenthesized suffix
// that is syntactically ambiguous between an indexed name, a type
// conversion, and a function call until the binder resolves the prefix,
// mirroring the grammar's own deferral of this decision to semantic
// analysis.
type IndexOrCallName struct {
	NameBase
	Prefix       Name
	Associations []Association
}

func (*IndexOrCallName) nameNode() {}

// Association is one (possibly named) actual in an association list:
// `[formal =>] actual`.
type Association struct {
	Base
	Formal Name // nil for positional association
	Actual Expr
}

// AttributeName is `<prefix>'<designator>[(<expr>)]`.
type AttributeName struct {
	NameBase
	Prefix     Name
	Designator *Ident
	Argument   Expr // nil if no parenthesized expression
}

func (*AttributeName) nameNode() {}

// QualifiedName is `<type_mark>'(<expr>)` or `<type_mark>'<aggregate>`.
type QualifiedName struct {
	NameBase
	TypeMark Name
	Value    Expr
}

func (*QualifiedName) nameNode() {}

// SignatureName decorates a name with an explicit overload signature,
// `<name>[<params> return <type>]`, used to disambiguate aliases and
// attributes of overloaded subprograms.
type SignatureName struct {
	NameBase
	Prefix      Name
	Parameters  []Name
	ReturnType  Name // nil if the signature has no return part
}

func (*SignatureName) nameNode() {}
