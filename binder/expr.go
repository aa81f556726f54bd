package binder

import "github.com/dj1mm/vhdlstuff-sub000/ast"

func (b *Binder) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}
	switch expr := e.(type) {
	case *ast.BinaryExpr:
		b.resolveExpr(expr.Left)
		b.resolveExpr(expr.Right)
	case *ast.UnaryExpr:
		b.resolveExpr(expr.Operand)
	case *ast.ParenExpr:
		b.resolveExpr(expr.Inner)
	case *ast.Literal:
		// leaf
	case *ast.PhysicalLiteral:
		// the unit name is not resolved as a name occurrence; it is fixed
		// by the physical type's own units clause, recorded only by text
	case *ast.UnresolvedName:
		b.resolveName(expr.Name)
	case *ast.Aggregate:
		b.resolveAssociations(expr.Elements)
	case *ast.Allocator:
		if expr.Indication != nil {
			b.resolveSubtypeIndication(expr.Indication)
		}
		if expr.Qualified != nil {
			b.resolveName(expr.Qualified)
		}
	}
}

func (b *Binder) resolveRange(r ast.RangeExpr) {
	if r == nil {
		return
	}
	switch rng := r.(type) {
	case *ast.ExplicitRange:
		b.resolveExpr(rng.Left)
		b.resolveExpr(rng.Right)
	case *ast.AttributeRange:
		b.resolveName(rng.Attr)
	case *ast.SubtypeRange:
		b.resolveSubtypeIndication(rng.Indication)
	}
}

func (b *Binder) resolveSubtypeIndication(si *ast.SubtypeIndication) {
	if si == nil {
		return
	}
	if si.ResolutionFunction != nil {
		b.resolveName(si.ResolutionFunction)
	}
	b.resolveName(si.TypeMark)
	// Constraint is an opaque token range (see ast.SubtypeIndication); this
	// front end does not evaluate index/range constraints.
}
