package binder

import "github.com/dj1mm/vhdlstuff-sub000/ast"

func (b *Binder) declareLabel(lbl *ast.Ident, node ast.Node) {
	if lbl == nil {
		return
	}
	b.current.Declare(lbl.Text, &NamedEntity{Identifier: lbl.Text, Kind: KindLabel, Node: node})
}

func (b *Binder) resolveSequential(stmts []ast.SequentialStatement) {
	for _, s := range stmts {
		b.resolveSequentialStmt(s)
	}
}

func (b *Binder) resolveSequentialStmt(s ast.SequentialStatement) {
	switch st := s.(type) {
	case *ast.SignalAssignStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Target)
		b.resolveWaveforms(st.Waveforms)
	case *ast.VariableAssignStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Target)
		b.resolveExpr(st.Value)
	case *ast.IfStmt:
		b.declareLabel(st.Label(), st)
		for cur := st; cur != nil; cur = cur.Else {
			if cur.Cond != nil {
				b.resolveExpr(cur.Cond)
			}
			b.resolveSequential(cur.Then)
			if cur.Else == nil {
				break
			}
		}
	case *ast.CaseStmt:
		b.declareLabel(st.Label(), st)
		b.resolveExpr(st.Selector)
		for _, alt := range st.Alternatives {
			b.resolveChoices(alt.Choices)
			b.resolveSequential(alt.Statements)
		}
	case *ast.LoopStmt:
		b.declareLabel(st.Label(), st)
		outer := b.current
		r := b.open()
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
		if st.Iterator != nil {
			r.Declare(st.Iterator.Text, &NamedEntity{Identifier: st.Iterator.Text, Kind: KindConstant, Node: st.Iterator})
		}
		if st.Range != nil {
			b.resolveRange(st.Range)
		}
		b.resolveSequential(st.Statements)
		b.close(outer)
	case *ast.ExitStmt:
		b.declareLabel(st.Label(), st)
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
	case *ast.NextStmt:
		b.declareLabel(st.Label(), st)
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
	case *ast.ReturnStmt:
		b.declareLabel(st.Label(), st)
		if st.Value != nil {
			b.resolveExpr(st.Value)
		}
	case *ast.NullStmt:
		b.declareLabel(st.Label(), st)
	case *ast.WaitStmt:
		b.declareLabel(st.Label(), st)
		for _, n := range st.SensitivityList {
			b.resolveName(n)
		}
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
		if st.Timeout != nil {
			b.resolveExpr(st.Timeout)
		}
	case *ast.AssertStmt:
		b.declareLabel(st.Label(), st)
		b.resolveAssertBody(st)
	case *ast.ProcedureCallStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Name)
	}
}

func (b *Binder) resolveAssertBody(st *ast.AssertStmt) {
	if st.Condition != nil {
		b.resolveExpr(st.Condition)
	}
	if st.Report != nil {
		b.resolveExpr(st.Report)
	}
	if st.Severity != nil {
		b.resolveExpr(st.Severity)
	}
}

func (b *Binder) resolveConcurrent(stmts []ast.ConcurrentStatement) {
	for _, s := range stmts {
		b.resolveConcurrentStmt(s)
	}
}

func (b *Binder) resolveConcurrentStmt(s ast.ConcurrentStatement) {
	switch st := s.(type) {
	case *ast.ConcurrentSignalAssignStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Target)
		if st.Selector != nil {
			b.resolveExpr(st.Selector)
		}
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
		b.resolveWaveforms(st.Waveforms)
	case *ast.ConcurrentAssertStmt:
		b.declareLabel(st.Label(), st)
		b.resolveAssertBody(st.Assert)
	case *ast.ConcurrentProcedureCallStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Call.Name)
	case *ast.ProcessStmt:
		b.declareLabel(st.Label(), st)
		outer := b.current
		r := b.open()
		for _, n := range st.SensitivityList {
			b.resolveName(n)
		}
		b.processDecls(st.Decls)
		b.resolveSequential(st.Statements)
		b.close(outer)
		if st.Label() != nil {
			outer.Entities[st.Label().Text] = []ast.Entity{&NamedEntity{Identifier: st.Label().Text, Kind: KindLabel, Node: st, Region: r}}
		}
	case *ast.ComponentInstStmt:
		b.declareLabel(st.Label(), st)
		b.resolveName(st.Unit)
		b.resolveAssociations(st.GenericMap)
		b.resolveAssociations(st.PortMap)
	case *ast.GenerateStmt:
		outer := b.current
		r := b.open()
		if st.Iterator != nil {
			r.Declare(st.Iterator.Text, &NamedEntity{Identifier: st.Iterator.Text, Kind: KindConstant, Node: st.Iterator})
		}
		if st.Range != nil {
			b.resolveRange(st.Range)
		}
		if st.Condition != nil {
			b.resolveExpr(st.Condition)
		}
		b.processDecls(st.Decls)
		b.resolveConcurrent(st.Statements)
		b.close(outer)
		if st.Label() != nil {
			outer.Entities[st.Label().Text] = []ast.Entity{&NamedEntity{Identifier: st.Label().Text, Kind: KindLabel, Node: st, Region: r}}
		}
	case *ast.BlockStmt:
		outer := b.current
		r := b.open()
		if st.Guard != nil {
			b.resolveExpr(st.Guard)
		}
		for _, g := range st.GenericClause {
			b.resolveSubtypeIndication(g.Indication)
			r.Declare(g.Identifier.Text, &NamedEntity{Identifier: g.Identifier.Text, Kind: classKind(g.Class), Node: g, Type: markType(g.Indication)})
		}
		for _, p := range st.PortClause {
			b.resolveSubtypeIndication(p.Indication)
			r.Declare(p.Identifier.Text, &NamedEntity{Identifier: p.Identifier.Text, Kind: classKind(p.Class), Node: p, Type: markType(p.Indication)})
		}
		b.processDecls(st.Decls)
		b.resolveConcurrent(st.Statements)
		b.close(outer)
		if st.Label() != nil {
			outer.Entities[st.Label().Text] = []ast.Entity{&NamedEntity{Identifier: st.Label().Text, Kind: KindLabel, Node: st, Region: r}}
		}
	}
}

func (b *Binder) resolveWaveforms(waveforms []ast.WaveformElement) {
	for _, w := range waveforms {
		if w.Value != nil {
			b.resolveExpr(w.Value)
		}
		if w.After != nil {
			b.resolveExpr(w.After)
		}
	}
}

func (b *Binder) resolveChoices(choices []ast.Choice) {
	for _, c := range choices {
		if c.Expr != nil {
			b.resolveExpr(c.Expr)
		}
		if c.Range != nil {
			b.resolveRange(c.Range)
		}
	}
}

func (b *Binder) resolveAssociations(assocs []ast.Association) {
	for _, a := range assocs {
		if a.Formal != nil {
			b.resolveName(a.Formal)
		}
		if a.Actual != nil {
			b.resolveExpr(a.Actual)
		}
	}
}
