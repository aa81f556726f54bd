package ast

import "fmt"

// Walk traverses an AST in depth-first order: it calls before(node) first;
// if before returns true (or is nil), Walk recurses into node's non-nil
// children, then calls after(node). Both callbacks may be nil.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if node == nil {
		return
	}
	if before != nil && !before(node) {
		return
	}
	switch n := node.(type) {
	case *DesignFile:
		for _, u := range n.Units {
			Walk(u, before, after)
		}
		walkContext(n.DanglingContext, before, after)

	case *EntityDecl:
		walkContext(n.ContextItems, before, after)
		walkDecls(n.GenericClause, before, after)
		walkDecls(n.PortClause, before, after)
		walkDecls(n.Decls, before, after)
		walkConcurrent(n.Statements, before, after)
	case *ArchitectureDecl:
		walkContext(n.ContextItems, before, after)
		walkDecls(n.Decls, before, after)
		walkConcurrent(n.Statements, before, after)
	case *PackageDecl:
		walkContext(n.ContextItems, before, after)
		walkDecls(n.Decls, before, after)
	case *PackageBodyDecl:
		walkContext(n.ContextItems, before, after)
		walkDecls(n.Decls, before, after)
	case *ConfigurationDecl:
		walkContext(n.ContextItems, before, after)

	case *LibraryClause:
		for _, id := range n.Names {
			Walk(id, before, after)
		}
	case *UseClause:
		for _, nm := range n.Names {
			Walk(nm, before, after)
		}

	case *TypeDecl:
		Walk(n.Identifier, before, after)
		if n.Definition != nil {
			Walk(n.Definition, before, after)
		}
	case *SubtypeDecl:
		Walk(n.Identifier, before, after)
		Walk(n.Indication, before, after)
	case *SubtypeIndication:
		if n.ResolutionFunction != nil {
			Walk(n.ResolutionFunction, before, after)
		}
		Walk(n.TypeMark, before, after)
	case *ObjectDecl:
		Walk(n.Identifier, before, after)
		Walk(n.Indication, before, after)
		if n.Init != nil {
			Walk(n.Init, before, after)
		}
	case *InterfaceDecl:
		Walk(n.Identifier, before, after)
		Walk(n.Indication, before, after)
		if n.Init != nil {
			Walk(n.Init, before, after)
		}
	case *AliasDecl:
		Walk(n.Designator, before, after)
		if n.Indication != nil {
			Walk(n.Indication, before, after)
		}
		Walk(n.Target, before, after)
	case *SubprogramSpec:
		Walk(n.Designator, before, after)
		for _, p := range n.Parameters {
			Walk(p, before, after)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, before, after)
		}
	case *SubprogramBody:
		Walk(n.Spec, before, after)
		walkDecls(n.Decls, before, after)
		walkSequential(n.Statements, before, after)
	case *ComponentDecl:
		Walk(n.Identifier, before, after)
		for _, g := range n.GenericClause {
			Walk(g, before, after)
		}
		for _, p := range n.PortClause {
			Walk(p, before, after)
		}
	case *AttributeDecl:
		Walk(n.Identifier, before, after)
		Walk(n.TypeMark, before, after)
	case *AttrSpec:
		Walk(n.Attribute, before, after)
		for _, d := range n.Designators {
			Walk(d, before, after)
		}
		if n.Value != nil {
			Walk(n.Value, before, after)
		}
	case *ConfigSpec:
		Walk(n.ComponentName, before, after)
	case *UseDecl:
		for _, nm := range n.Names {
			Walk(nm, before, after)
		}

	case *SimpleName:
		Walk(n.Identifier, before, after)
	case *SelectedName:
		Walk(n.Prefix, before, after)
		if n.Suffix != nil {
			Walk(n.Suffix, before, after)
		}
	case *SliceName:
		Walk(n.Prefix, before, after)
		Walk(n.Range, before, after)
	case *IndexOrCallName:
		Walk(n.Prefix, before, after)
		for _, a := range n.Associations {
			walkAssociation(a, before, after)
		}
	case *AttributeName:
		Walk(n.Prefix, before, after)
		Walk(n.Designator, before, after)
		if n.Argument != nil {
			Walk(n.Argument, before, after)
		}
	case *QualifiedName:
		Walk(n.TypeMark, before, after)
		Walk(n.Value, before, after)
	case *SignatureName:
		Walk(n.Prefix, before, after)
		for _, p := range n.Parameters {
			Walk(p, before, after)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, before, after)
		}

	case *BinaryExpr:
		Walk(n.Left, before, after)
		Walk(n.Right, before, after)
	case *UnaryExpr:
		Walk(n.Operand, before, after)
	case *ParenExpr:
		Walk(n.Inner, before, after)
	case *Literal:
		// leaf
	case *PhysicalLiteral:
		Walk(n.Magnitude, before, after)
		Walk(n.Unit, before, after)
	case *UnresolvedName:
		Walk(n.Name, before, after)
	case *Aggregate:
		for _, e := range n.Elements {
			walkAssociation(e, before, after)
		}
	case *Allocator:
		if n.Indication != nil {
			Walk(n.Indication, before, after)
		}
		if n.Qualified != nil {
			Walk(n.Qualified, before, after)
		}
	case *ExplicitRange:
		Walk(n.Left, before, after)
		Walk(n.Right, before, after)
	case *AttributeRange:
		Walk(n.Attr, before, after)
	case *SubtypeRange:
		Walk(n.Indication, before, after)

	case *SignalAssignStmt:
		Walk(n.Target, before, after)
		for _, w := range n.Waveforms {
			walkWaveform(w, before, after)
		}
	case *VariableAssignStmt:
		Walk(n.Target, before, after)
		Walk(n.Value, before, after)
	case *IfStmt:
		if n.Cond != nil {
			Walk(n.Cond, before, after)
		}
		walkSequential(n.Then, before, after)
		if n.Else != nil {
			Walk(n.Else, before, after)
		}
	case *CaseStmt:
		Walk(n.Selector, before, after)
		for _, alt := range n.Alternatives {
			for _, c := range alt.Choices {
				walkChoice(c, before, after)
			}
			walkSequential(alt.Statements, before, after)
		}
	case *LoopStmt:
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
		if n.Iterator != nil {
			Walk(n.Iterator, before, after)
		}
		if n.Range != nil {
			Walk(n.Range, before, after)
		}
		walkSequential(n.Statements, before, after)
	case *ExitStmt:
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
	case *NextStmt:
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, before, after)
		}
	case *NullStmt:
		// leaf
	case *WaitStmt:
		for _, nm := range n.SensitivityList {
			Walk(nm, before, after)
		}
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
		if n.Timeout != nil {
			Walk(n.Timeout, before, after)
		}
	case *AssertStmt:
		Walk(n.Condition, before, after)
		if n.Report != nil {
			Walk(n.Report, before, after)
		}
		if n.Severity != nil {
			Walk(n.Severity, before, after)
		}
	case *ProcedureCallStmt:
		Walk(n.Name, before, after)

	case *ConcurrentSignalAssignStmt:
		Walk(n.Target, before, after)
		if n.Selector != nil {
			Walk(n.Selector, before, after)
		}
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
		for _, w := range n.Waveforms {
			walkWaveform(w, before, after)
		}
	case *ConcurrentAssertStmt:
		Walk(n.Assert, before, after)
	case *ConcurrentProcedureCallStmt:
		Walk(n.Call, before, after)
	case *ProcessStmt:
		for _, nm := range n.SensitivityList {
			Walk(nm, before, after)
		}
		walkDecls(n.Decls, before, after)
		walkSequential(n.Statements, before, after)
	case *ComponentInstStmt:
		Walk(n.Unit, before, after)
		for _, a := range n.GenericMap {
			walkAssociation(a, before, after)
		}
		for _, a := range n.PortMap {
			walkAssociation(a, before, after)
		}
	case *GenerateStmt:
		if n.Iterator != nil {
			Walk(n.Iterator, before, after)
		}
		if n.Range != nil {
			Walk(n.Range, before, after)
		}
		if n.Condition != nil {
			Walk(n.Condition, before, after)
		}
		walkDecls(n.Decls, before, after)
		walkConcurrent(n.Statements, before, after)
	case *BlockStmt:
		if n.Guard != nil {
			Walk(n.Guard, before, after)
		}
		for _, g := range n.GenericClause {
			Walk(g, before, after)
		}
		for _, p := range n.PortClause {
			Walk(p, before, after)
		}
		walkDecls(n.Decls, before, after)
		walkConcurrent(n.Statements, before, after)

	case *EnumerationType:
		for _, l := range n.Literals {
			Walk(l, before, after)
		}
	case *IntegerType:
		Walk(n.Range, before, after)
	case *FloatingType:
		Walk(n.Range, before, after)
	case *PhysicalType:
		Walk(n.Range, before, after)
		Walk(n.PrimaryUnit, before, after)
		for _, u := range n.SecondaryUnits {
			Walk(u.Identifier, before, after)
			Walk(u.Value, before, after)
		}
	case *ArrayType:
		for _, m := range n.IndexMarks {
			Walk(m, before, after)
		}
		for _, r := range n.IndexRanges {
			Walk(r, before, after)
		}
		Walk(n.Element, before, after)
	case *RecordType:
		for _, e := range n.Elements {
			Walk(e.Identifier, before, after)
			Walk(e.Indication, before, after)
		}
	case *AccessType:
		Walk(n.Designated, before, after)
	case *FileType:
		Walk(n.TypeMark, before, after)

	case *Ident:
		// leaf

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
	if after != nil {
		after(node)
	}
}

func walkContext(items []ContextItem, before func(Node) bool, after func(Node)) {
	for _, it := range items {
		Walk(it, before, after)
	}
}

func walkDecls[T DeclarativeItem](items []T, before func(Node) bool, after func(Node)) {
	for _, it := range items {
		Walk(it, before, after)
	}
}

func walkSequential(items []SequentialStatement, before func(Node) bool, after func(Node)) {
	for _, it := range items {
		Walk(it, before, after)
	}
}

func walkConcurrent(items []ConcurrentStatement, before func(Node) bool, after func(Node)) {
	for _, it := range items {
		Walk(it, before, after)
	}
}

func walkAssociation(a Association, before func(Node) bool, after func(Node)) {
	if a.Formal != nil {
		Walk(a.Formal, before, after)
	}
	Walk(a.Actual, before, after)
}

func walkWaveform(w WaveformElement, before func(Node) bool, after func(Node)) {
	if w.Value != nil {
		Walk(w.Value, before, after)
	}
	if w.After != nil {
		Walk(w.After, before, after)
	}
}

func walkChoice(c Choice, before func(Node) bool, after func(Node)) {
	if c.Expr != nil {
		Walk(c.Expr, before, after)
	}
	if c.Range != nil {
		Walk(c.Range, before, after)
	}
}
