package parser

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// parseSequentialStatements drives the parse_many loop over a sequential
// statement list, stopping at any of the keywords the caller's enclosing
// construct (if/case/loop/subprogram body) recognizes as its own
// terminator - stateSequentialStatements' end-token table already covers
// end/else/elsif/when uniformly, so every call site shares one state.
func (p *Parser) parseSequentialStatements(s state) []ast.SequentialStatement {
	return parseMany(p, s, isSequentialStatementStart, stateEndTokens[s], p.parseSequentialStatement)
}

func (p *Parser) parseConcurrentStatements(s state) []ast.ConcurrentStatement {
	return parseMany(p, s, isConcurrentStatementStart, stateEndTokens[s], p.parseConcurrentStatement)
}

// optionalLabel peeks past a leading `<ident> :` label, present on any
// statement, without disturbing the token stream when it is absent. The
// single token of lookahead this parser keeps is not enough by itself, so
// it uses the scanner's own peek buffer.
func (p *Parser) optionalLabel() *ast.Ident {
	if p.tok.Kind != token.IDENT && p.tok.Kind != token.EXTIDENT {
		return nil
	}
	if p.scanner.Peek(0).Kind != token.COLON {
		return nil
	}
	id := p.ident()
	p.next() // :
	return id
}

func (p *Parser) parseSequentialStatement() ast.SequentialStatement {
	label := p.optionalLabel()
	begin := p.tok.Range.Begin
	if label != nil {
		begin = label.Pos()
	}
	switch p.tok.Kind {
	case token.IF:
		return p.parseIfStmt(label, begin)
	case token.CASE:
		return p.parseCaseStmt(label, begin)
	case token.FOR, token.WHILE, token.LOOP:
		return p.parseLoopStmt(label, begin)
	case token.EXIT:
		return p.parseExitOrNext(label, begin, true)
	case token.NEXT:
		return p.parseExitOrNext(label, begin, false)
	case token.RETURN:
		p.next()
		var value ast.Expr
		if !p.at(token.SEMICOLON) {
			value = p.parseExpression()
		}
		p.expect(token.SEMICOLON)
		return &ast.ReturnStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(p.rangeFrom(begin)), Lbl: label}, Value: value}
	case token.NULL:
		p.next()
		p.expect(token.SEMICOLON)
		return &ast.NullStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(p.rangeFrom(begin)), Lbl: label}}
	case token.WAIT:
		return p.parseWaitStmt(label, begin)
	case token.ASSERT:
		stmt := p.parseAssertBody(label, begin)
		return stmt
	case token.REPORT:
		return p.parseReportAsAssert(label, begin)
	case token.IDENT, token.EXTIDENT:
		return p.parseNameLedStatement(label, begin)
	default:
		p.skip()
		return nil
	}
}

func (p *Parser) parseIfStmt(label *ast.Ident, begin token.Position) *ast.IfStmt {
	p.next() // if
	cond := p.parseExpression()
	p.expect(token.THEN)
	then := p.parseSequentialStatements(stateSequentialStatements)
	stmt := &ast.IfStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(p.rangeFrom(begin)), Lbl: label}, Cond: cond, Then: then}

	tail := stmt
	for p.at(token.ELSIF) {
		ebegin := p.tok.Range.Begin
		p.next()
		econd := p.parseExpression()
		p.expect(token.THEN)
		ethen := p.parseSequentialStatements(stateSequentialStatements)
		arm := &ast.IfStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(p.rangeFrom(ebegin))}, Cond: econd, Then: ethen}
		tail.Else = arm
		tail = arm
	}
	if p.at(token.ELSE) {
		ebegin := p.tok.Range.Begin
		p.next()
		ethen := p.parseSequentialStatements(stateSequentialStatements)
		tail.Else = &ast.IfStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(p.rangeFrom(ebegin))}, Then: ethen}
	}
	p.expect(token.END)
	p.accept(token.IF)
	end, _ := p.expect(token.SEMICOLON)
	stmt.Base = ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End})
	return stmt
}

func (p *Parser) parseCaseStmt(label *ast.Ident, begin token.Position) *ast.CaseStmt {
	p.next() // case
	selector := p.parseExpression()
	p.expect(token.IS)
	var alts []ast.CaseAlternative
	for p.at(token.WHEN) {
		abegin := p.tok.Range.Begin
		p.next()
		choices := p.parseChoices()
		p.expect(token.ARROW)
		stmts := p.parseSequentialStatements(stateSequentialStatements)
		alts = append(alts, ast.CaseAlternative{Base: ast.NewBase(p.rangeFrom(abegin)), Choices: choices, Statements: stmts})
	}
	p.expect(token.END)
	p.expect(token.CASE)
	end, _ := p.expect(token.SEMICOLON)
	return &ast.CaseStmt{
		StmtBase:     ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Selector:     selector,
		Alternatives: alts,
	}
}

func (p *Parser) parseChoices() []ast.Choice {
	var out []ast.Choice
	for {
		begin := p.tok.Range.Begin
		if _, ok := p.accept(token.OTHERS); ok {
			out = append(out, ast.Choice{Base: ast.NewBase(p.rangeFrom(begin)), Others: true})
		} else {
			r := p.parseRange()
			if expr, ok := asBareExpression(r); ok {
				out = append(out, ast.Choice{Base: ast.NewBase(p.rangeFrom(begin)), Expr: expr})
			} else {
				out = append(out, ast.Choice{Base: ast.NewBase(p.rangeFrom(begin)), Range: r})
			}
		}
		if _, ok := p.accept(token.BAR); !ok {
			break
		}
	}
	return out
}

// asBareExpression recovers a plain expression choice (`when 3 =>`,
// `when IDLE =>`) from parseRange's result: parseRange always succeeds in
// producing a RangeExpr, but a choice list's elements are far more often
// single values than explicit ranges, so a SubtypeRange wrapping a name
// with no constraint and no to/downto is unwrapped back into its
// underlying name expression here instead of being treated as a range.
func asBareExpression(r ast.RangeExpr) (ast.Expr, bool) {
	sr, ok := r.(*ast.SubtypeRange)
	if !ok || sr.Indication.Constraint != nil || sr.Indication.ResolutionFunction != nil {
		return nil, false
	}
	return &ast.UnresolvedName{Base: ast.NewBase(sr.Indication.TypeMark.Range()), Name: sr.Indication.TypeMark}, true
}

func (p *Parser) parseLoopStmt(label *ast.Ident, begin token.Position) *ast.LoopStmt {
	kind := ast.LoopBare
	var cond ast.Expr
	var iterator *ast.Ident
	var rng ast.RangeExpr
	switch p.tok.Kind {
	case token.WHILE:
		kind = ast.LoopWhile
		p.next()
		cond = p.parseExpression()
	case token.FOR:
		kind = ast.LoopFor
		p.next()
		iterator = p.ident()
		p.expect(token.IN)
		rng = p.parseRange()
	}
	p.expect(token.LOOP)
	body := p.parseSequentialStatements(stateSequentialStatements)
	p.expect(token.END)
	p.expect(token.LOOP)
	p.optionalEndLabel() // not modeled separately from the statement's own label
	end, _ := p.expect(token.SEMICOLON)
	return &ast.LoopStmt{
		StmtBase:   ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Kind:       kind,
		Condition:  cond,
		Iterator:   iterator,
		Range:      rng,
		Statements: body,
	}
}

func (p *Parser) parseExitOrNext(label *ast.Ident, begin token.Position, isExit bool) ast.SequentialStatement {
	p.next() // exit|next
	var loopLabel *ast.Ident
	if p.tok.Kind == token.IDENT || p.tok.Kind == token.EXTIDENT {
		loopLabel = p.ident()
	}
	var cond ast.Expr
	if _, ok := p.accept(token.WHEN); ok {
		cond = p.parseExpression()
	}
	end, _ := p.expect(token.SEMICOLON)
	base := ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label}
	if isExit {
		return &ast.ExitStmt{StmtBase: base, LoopLabel: loopLabel, Condition: cond}
	}
	return &ast.NextStmt{StmtBase: base, LoopLabel: loopLabel, Condition: cond}
}

func (p *Parser) parseWaitStmt(label *ast.Ident, begin token.Position) *ast.WaitStmt {
	p.next() // wait
	var sensitivity []ast.Name
	if _, ok := p.accept(token.ON); ok {
		for {
			sensitivity = append(sensitivity, p.parseName())
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
	}
	var cond, timeout ast.Expr
	if _, ok := p.accept(token.UNTIL); ok {
		cond = p.parseExpression()
	}
	if _, ok := p.accept(token.FOR); ok {
		timeout = p.parseExpression()
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.WaitStmt{
		StmtBase:        ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		SensitivityList: sensitivity,
		Condition:       cond,
		Timeout:         timeout,
	}
}

// parseAssertBody parses the common `assert <cond> [report <expr>]
// [severity <expr>]` body shared by the sequential and concurrent forms,
// stopping before the terminating `;` so callers can wrap it.
func (p *Parser) parseAssertBody(label *ast.Ident, begin token.Position) *ast.AssertStmt {
	p.next() // assert
	cond := p.parseExpression()
	var report, severity ast.Expr
	if _, ok := p.accept(token.REPORT); ok {
		report = p.parseExpression()
	}
	if _, ok := p.accept(token.SEVERITY); ok {
		severity = p.parseExpression()
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.AssertStmt{
		StmtBase:  ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Condition: cond,
		Report:    report,
		Severity:  severity,
	}
}

// parseReportAsAssert handles a bare `report <expr> [severity <expr>];`
// statement (assert with an always-false implicit condition), which VHDL
// allows as a lighter-weight alternative to a full assert statement.
func (p *Parser) parseReportAsAssert(label *ast.Ident, begin token.Position) *ast.AssertStmt {
	p.next() // report
	report := p.parseExpression()
	var severity ast.Expr
	if _, ok := p.accept(token.SEVERITY); ok {
		severity = p.parseExpression()
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.AssertStmt{
		StmtBase: ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Report:   report,
		Severity: severity,
	}
}

// parseNameLedStatement parses whichever sequential statement begins with
// a name: a signal assignment (`<=`), a variable assignment (`:=`), or a
// procedure call (bare name, optionally applied).
func (p *Parser) parseNameLedStatement(label *ast.Ident, begin token.Position) ast.SequentialStatement {
	target := p.parseName()
	base := func() ast.StmtBase {
		return ast.StmtBase{Base: ast.NewBase(p.rangeFrom(begin)), Lbl: label}
	}
	switch p.tok.Kind {
	case token.LE:
		p.next()
		waveforms := p.parseWaveform()
		p.expect(token.SEMICOLON)
		return &ast.SignalAssignStmt{StmtBase: base(), Target: target, Waveforms: waveforms}
	case token.ASSIGN:
		p.next()
		value := p.parseExpression()
		p.expect(token.SEMICOLON)
		return &ast.VariableAssignStmt{StmtBase: base(), Target: target, Value: value}
	default:
		p.expect(token.SEMICOLON)
		return &ast.ProcedureCallStmt{StmtBase: base(), Name: target}
	}
}

// parseWaveform parses `<waveform_element> {, <waveform_element>}`, where
// each element is `<expr> [after <expr>]` or the bare reserved word
// `unaffected`.
func (p *Parser) parseWaveform() []ast.WaveformElement {
	var out []ast.WaveformElement
	for {
		begin := p.tok.Range.Begin
		if _, ok := p.accept(token.UNAFFECTED); ok {
			out = append(out, ast.WaveformElement{Base: ast.NewBase(p.rangeFrom(begin))})
		} else {
			value := p.parseExpression()
			var after ast.Expr
			if _, ok := p.accept(token.AFTER); ok {
				after = p.parseExpression()
			}
			out = append(out, ast.WaveformElement{Base: ast.NewBase(p.rangeFrom(begin)), Value: value, After: after})
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	return out
}

// --- concurrent statements ---

func (p *Parser) parseConcurrentStatement() ast.ConcurrentStatement {
	label := p.optionalLabel()
	begin := p.tok.Range.Begin
	if label != nil {
		begin = label.Pos()
	}
	postponed := false
	if _, ok := p.accept(token.POSTPONED); ok {
		postponed = true
	}
	switch p.tok.Kind {
	case token.PROCESS:
		return p.parseProcessStmt(label, begin, postponed)
	case token.BLOCK:
		return p.parseBlockStmt(label, begin)
	case token.FOR:
		return p.parseGenerateStmt(label, begin, ast.GenerateFor)
	case token.IF:
		return p.parseGenerateStmt(label, begin, ast.GenerateIf)
	case token.WITH:
		return p.parseSelectedSignalAssign(label, begin, postponed)
	case token.ASSERT:
		assert := p.parseAssertBody(label, begin)
		return &ast.ConcurrentAssertStmt{StmtBase: assert.StmtBase, Postponed: postponed, Assert: assert}
	case token.IDENT, token.EXTIDENT:
		return p.parseConcurrentNameLedStatement(label, begin, postponed)
	default:
		p.skip()
		return nil
	}
}

func (p *Parser) parseProcessStmt(label *ast.Ident, begin token.Position, postponed bool) *ast.ProcessStmt {
	p.next() // process
	var sensitivity []ast.Name
	if _, ok := p.accept(token.LPAREN); ok {
		if !p.at(token.RPAREN) {
			for {
				sensitivity = append(sensitivity, p.parseName())
				if _, ok := p.accept(token.COMMA); !ok {
					break
				}
			}
		}
		p.expect(token.RPAREN)
	}
	p.accept(token.IS)
	decls := p.parseDeclarativePart(stateDeclarativePartBegin)
	p.expect(token.BEGIN)
	stmts := p.parseSequentialStatements(stateSequentialStatements)
	p.expect(token.END)
	p.accept(token.POSTPONED)
	p.expect(token.PROCESS)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)
	return &ast.ProcessStmt{
		StmtBase:        ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Postponed:       postponed,
		SensitivityList: sensitivity,
		Decls:           decls,
		Statements:      stmts,
		EndLabel:        endLabel,
	}
}

func (p *Parser) parseBlockStmt(label *ast.Ident, begin token.Position) *ast.BlockStmt {
	p.next() // block
	var guard ast.Expr
	if _, ok := p.accept(token.LPAREN); ok {
		guard = p.parseExpression()
		p.expect(token.RPAREN)
	}
	p.accept(token.IS)
	var generics, ports []*ast.InterfaceDecl
	if p.at(token.GENERIC) {
		generics = asInterfaceDecls(p.parseInterfaceClause(token.GENERIC))
	}
	if p.at(token.PORT) {
		ports = asInterfaceDecls(p.parseInterfaceClause(token.PORT))
	}
	decls := p.parseDeclarativePart(stateDeclarativePartBegin)
	p.expect(token.BEGIN)
	stmts := p.parseConcurrentStatements(stateConcurrentStatements)
	p.expect(token.END)
	p.accept(token.BLOCK)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)
	return &ast.BlockStmt{
		StmtBase:      ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Guard:         guard,
		GenericClause: generics,
		PortClause:    ports,
		Decls:         decls,
		Statements:    stmts,
		EndLabel:      endLabel,
	}
}

func (p *Parser) parseGenerateStmt(label *ast.Ident, begin token.Position, kind ast.GenerateKind) *ast.GenerateStmt {
	var iterator *ast.Ident
	var rng ast.RangeExpr
	var cond ast.Expr
	if kind == ast.GenerateFor {
		p.next() // for
		iterator = p.ident()
		p.expect(token.IN)
		rng = p.parseRange()
		p.expect(token.GENERATE)
	} else {
		p.next() // if
		cond = p.parseExpression()
		p.expect(token.GENERATE)
	}
	decls := p.parseDeclarativePart(stateDeclarativePartFor)
	var stmts []ast.ConcurrentStatement
	if _, ok := p.accept(token.BEGIN); ok {
		stmts = p.parseConcurrentStatements(stateConcurrentStatements)
	}
	p.expect(token.END)
	p.expect(token.GENERATE)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)
	return &ast.GenerateStmt{
		StmtBase:   ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Kind:       kind,
		Iterator:   iterator,
		Range:      rng,
		Condition:  cond,
		Decls:      decls,
		Statements: stmts,
		EndLabel:   endLabel,
	}
}

// parseSelectedSignalAssign parses `with <expr> select <target> <= <waveform> when <choices> {, ...};`.
func (p *Parser) parseSelectedSignalAssign(label *ast.Ident, begin token.Position, postponed bool) *ast.ConcurrentSignalAssignStmt {
	p.next() // with
	selector := p.parseExpression()
	p.expect(token.SELECT)
	target := p.parseName()
	p.expect(token.LE)
	p.accept(token.FORCE)
	// each selected waveform's own "when <choices>" tail is recorded only by
	// extent on the shared Waveforms slice; per-alternative choices are a
	// finer grain than this front end's read-only consumers need.
	var waveforms []ast.WaveformElement
	for {
		w := p.parseWaveform()
		waveforms = append(waveforms, w...)
		p.expect(token.WHEN)
		p.parseChoices()
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.ConcurrentSignalAssignStmt{
		StmtBase:  ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Postponed: postponed,
		Target:    target,
		Selector:  selector,
		Waveforms: waveforms,
	}
}

// parseConcurrentNameLedStatement parses a plain or conditional concurrent
// signal assignment, or a component instantiation / procedure call -
// disambiguated by what follows the leading name.
func (p *Parser) parseConcurrentNameLedStatement(label *ast.Ident, begin token.Position, postponed bool) ast.ConcurrentStatement {
	if p.tok.Kind == token.COMPONENT || p.tok.Kind == token.ENTITY || p.tok.Kind == token.CONFIGURATION {
		return p.parseComponentInstStmt(label, begin)
	}
	target := p.parseName()
	// A labeled bare name directly followed by a generic/port map is the
	// keyword-less instantiation form (`lbl: adder port map (...);`). A
	// bare name with neither a map nor `<=`/`:=` following (just `;`) is
	// genuinely ambiguous between a parameterless procedure call and a
	// keyword-less instantiation with no maps; this front end resolves
	// that case as a procedure call and leaves the reclassification, if
	// any, to the binder, matching how IndexOrCallName defers a similar
	// ambiguity.
	if label != nil && (p.tok.Kind == token.GENERIC || p.tok.Kind == token.PORT) {
		return p.finishComponentInstStmt(label, begin, ast.InstComponent, target)
	}
	if p.tok.Kind == token.LE {
		p.next()
		p.accept(token.FORCE)
		waveforms := p.parseWaveform()
		var cond ast.Expr
		if _, ok := p.accept(token.WHEN); ok {
			cond = p.parseExpression()
			for p.at(token.ELSE) {
				p.next()
				waveforms = append(waveforms, p.parseWaveform()...)
				if _, ok := p.accept(token.WHEN); ok {
					p.parseExpression()
				}
			}
		}
		end, _ := p.expect(token.SEMICOLON)
		return &ast.ConcurrentSignalAssignStmt{
			StmtBase:  ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
			Postponed: postponed,
			Target:    target,
			Waveforms: waveforms,
			Condition: cond,
		}
	}
	end, _ := p.expect(token.SEMICOLON)
	call := &ast.ProcedureCallStmt{StmtBase: ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End})}, Name: target}
	return &ast.ConcurrentProcedureCallStmt{
		StmtBase:  ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Postponed: postponed,
		Call:      call,
	}
}

func (p *Parser) parseComponentInstStmt(label *ast.Ident, begin token.Position) *ast.ComponentInstStmt {
	kind := ast.InstComponent
	switch p.tok.Kind {
	case token.ENTITY:
		kind = ast.InstEntity
		p.next()
	case token.CONFIGURATION:
		kind = ast.InstConfiguration
		p.next()
	case token.COMPONENT:
		p.next()
	}
	unit := p.parseName()
	return p.finishComponentInstStmt(label, begin, kind, unit)
}

// finishComponentInstStmt parses the `[generic map (...)] [port map
// (...)] ;` tail shared by every instantiation form, given a unit name
// already parsed by the caller (the explicit-keyword and keyword-less
// forms each discover that name differently).
func (p *Parser) finishComponentInstStmt(label *ast.Ident, begin token.Position, kind ast.ComponentInstKind, unit ast.Name) *ast.ComponentInstStmt {
	var generics, ports []ast.Association
	if p.at(token.GENERIC) {
		p.next()
		p.expect(token.MAP)
		p.expect(token.LPAREN)
		generics = p.parseAssociationList()
		p.expect(token.RPAREN)
	}
	if p.at(token.PORT) {
		p.next()
		p.expect(token.MAP)
		p.expect(token.LPAREN)
		ports = p.parseAssociationList()
		p.expect(token.RPAREN)
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.ComponentInstStmt{
		StmtBase:   ast.StmtBase{Base: ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}), Lbl: label},
		Kind:       kind,
		Unit:       unit,
		GenericMap: generics,
		PortMap:    ports,
	}
}
