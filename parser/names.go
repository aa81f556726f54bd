package parser

import (
	"strings"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/scanner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// isNameStart reports whether k can open a name occurrence (as opposed to a
// literal or another kind of primary).
func isNameStart(k token.Kind) bool {
	return k == token.IDENT || k == token.EXTIDENT
}

func nameBase(rng token.Range) ast.NameBase {
	return ast.NameBase{Base: ast.NewBase(rng)}
}

// parseName parses a name occurrence: a simple identifier extended, via a
// tail loop, with selected (`.`), sliced/indexed/called (`(...)`),
// attribute or qualified (`'`), and signature (`[...]`) suffixes, exactly
// the ambiguity §4.3 "Ambiguity resolution by look-ahead" describes.
func (p *Parser) parseName() ast.Name {
	begin := p.tok.Range.Begin
	var n ast.Name
	switch p.tok.Kind {
	case token.IDENT, token.EXTIDENT:
		id := p.ident()
		if id == nil {
			return nil
		}
		n = &ast.SimpleName{NameBase: nameBase(id.Range()), Identifier: id}
	case token.CHAR:
		tok := p.tok
		p.next()
		id := &ast.Ident{Base: ast.NewBase(tok.Range), Text: tok.Text()}
		n = &ast.SimpleName{NameBase: nameBase(tok.Range), Identifier: id}
	default:
		p.errorf(p.tok.Range, "expecting name, found %s", p.tok.Kind)
		return nil
	}
	return p.parseNameTail(n, begin)
}

func (p *Parser) parseNameTail(n ast.Name, begin token.Position) ast.Name {
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			if _, ok := p.accept(token.ALL); ok {
				n = &ast.SelectedName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: n, All: true}
				continue
			}
			suffix := p.aliasDesignator()
			n = &ast.SelectedName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: n, Suffix: suffix}

		case token.LPAREN:
			isSlice := p.aheadAtDepthZero([]token.Kind{token.TO, token.DOWNTO}, []token.Kind{token.COMMA, token.ARROW, token.RPAREN})
			p.next() // (
			if isSlice {
				r := p.parseRange()
				p.expect(token.RPAREN)
				n = &ast.SliceName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: n, Range: r}
			} else {
				assocs := p.parseAssociationList()
				p.expect(token.RPAREN)
				n = &ast.IndexOrCallName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: n, Associations: assocs}
			}

		case token.TICK:
			p.next()
			if p.at(token.LPAREN) {
				value := p.parseParenOrAggregateExpr()
				n = &ast.QualifiedName{NameBase: nameBase(p.rangeFrom(begin)), TypeMark: n, Value: value}
				continue
			}
			var designator *ast.Ident
			if p.tok.Kind == token.RANGE {
				designator = &ast.Ident{Base: ast.NewBase(p.tok.Range), Text: "range"}
				p.next()
			} else {
				designator = p.ident()
			}
			var arg ast.Expr
			if _, ok := p.accept(token.LPAREN); ok {
				arg = p.parseExpression()
				p.expect(token.RPAREN)
			}
			n = &ast.AttributeName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: n, Designator: designator, Argument: arg}

		case token.LBRACKET:
			n = p.parseSignature(n)

		default:
			return n
		}
	}
}

// parseSignature parses `[<params> return <type>]` (or just `[<params>]`
// for a procedure), decorating prefix to disambiguate an aliased or
// attributed overloaded subprogram.
func (p *Parser) parseSignature(prefix ast.Name) ast.Name {
	begin := prefix.Pos()
	p.next() // [
	var params []ast.Name
	if !p.at(token.RBRACKET) && !p.at(token.RETURN) {
		for {
			params = append(params, p.parseName())
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
	}
	var ret ast.Name
	if _, ok := p.accept(token.RETURN); ok {
		ret = p.parseName()
	}
	p.expect(token.RBRACKET)
	return &ast.SignatureName{NameBase: nameBase(p.rangeFrom(begin)), Prefix: prefix, Parameters: params, ReturnType: ret}
}

// aheadAtDepthZero reports whether one of look's kinds appears before one
// of boundary's kinds appears at the current nesting depth - used to
// disambiguate a slice from an indexed name/function call/type conversion
// (§4.3) and a named from a positional association element, without
// committing to either parse. p.tok may itself be an unconsumed '(' (the
// opening paren of the construct under test); scanner.LookFor starts at the
// token after p.tok, so its depth 0 is then already inside that paren.
func (p *Parser) aheadAtDepthZero(look, boundary []token.Kind) bool {
	if kindIn(p.tok.Kind, look) {
		return true
	}
	if kindIn(p.tok.Kind, boundary) {
		return false
	}
	return p.scanner.LookFor(scanner.LookParams{
		Look:    look,
		Stop:    boundary,
		Abort:   token.SEMICOLON,
		NestIn:  token.LPAREN,
		NestOut: token.RPAREN,
		Depth:   0,
	})
}

func kindIn(k token.Kind, set []token.Kind) bool {
	for _, s := range set {
		if k == s {
			return true
		}
	}
	return false
}

// parseAssociationList parses a comma-separated, possibly empty list of
// association elements up to (but not consuming) the closing ')'. Shared
// by index-or-call suffixes, generic maps and port maps.
func (p *Parser) parseAssociationList() []ast.Association {
	var out []ast.Association
	if p.at(token.RPAREN) {
		return out
	}
	for {
		out = append(out, p.parseAssociationElement())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	return out
}

// parseAssociationElement parses one `[formal =>] actual`, recognizing
// `others => actual` as a synthetic "others" formal. A discrete-range
// choice ahead of `=>` (as in an aggregate's `x to y => value`) is
// recognized and skipped by extent: this front end resolves choices only
// when they are themselves names (the common case for association lists),
// matching the binder's name-resolution-only scope.
func (p *Parser) parseAssociationElement() ast.Association {
	begin := p.tok.Range.Begin
	if _, ok := p.accept(token.OTHERS); ok {
		p.expect(token.ARROW)
		actual := p.parseExpression()
		return ast.Association{Base: ast.NewBase(p.rangeFrom(begin)), Formal: othersMarker(p.rangeFrom(begin)), Actual: actual}
	}
	if p.aheadAtDepthZero([]token.Kind{token.ARROW}, []token.Kind{token.COMMA, token.RPAREN}) {
		var formal ast.Name
		if isNameStart(p.tok.Kind) {
			formal = p.parseName()
		}
		for !p.at(token.ARROW) && p.tok.Kind != token.EOF && p.tok.Kind != token.COMMA && p.tok.Kind != token.RPAREN {
			p.next() // discrete-range choice extension; kept unresolved
		}
		p.expect(token.ARROW)
		actual := p.parseExpression()
		return ast.Association{Base: ast.NewBase(p.rangeFrom(begin)), Formal: formal, Actual: actual}
	}
	actual := p.parseExpression()
	return ast.Association{Base: ast.NewBase(p.rangeFrom(begin)), Actual: actual}
}

func othersMarker(rng token.Range) ast.Name {
	return &ast.SimpleName{NameBase: nameBase(rng), Identifier: &ast.Ident{Base: ast.NewBase(rng), Text: "others"}}
}

// --- expressions, by precedence (§4.3 "Operator precedence") ---

// parseExpression is the logical_expression entry point, the loosest
// precedence level. and/or/xor/xnor chain (repeated occurrences of the
// same operator); nand/nor are non-associative and the parser accepts only
// one occurrence before stopping, per §4.3.
func (p *Parser) parseExpression() ast.Expr {
	begin := p.tok.Range.Begin
	left := p.parseRelation()
	op, ok := logicalOp(p.tok.Kind)
	if !ok {
		return left
	}
	p.next()
	right := p.parseRelation()
	left = &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
	if op == ast.OpNand || op == ast.OpNor {
		return left
	}
	for {
		next, ok := logicalOp(p.tok.Kind)
		if !ok || next != op {
			return left
		}
		p.next()
		right := p.parseRelation()
		left = &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
	}
}

func logicalOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.AND:
		return ast.OpAnd, true
	case token.OR:
		return ast.OpOr, true
	case token.XOR:
		return ast.OpXor, true
	case token.NAND:
		return ast.OpNand, true
	case token.NOR:
		return ast.OpNor, true
	case token.XNOR:
		return ast.OpXnor, true
	}
	return 0, false
}

// parseRelation is the relational level; relational operators are
// non-associative (at most one occurrence).
func (p *Parser) parseRelation() ast.Expr {
	begin := p.tok.Range.Begin
	left := p.parseShiftExpression()
	op, ok := relationalOp(p.tok.Kind)
	if !ok {
		return left
	}
	p.next()
	right := p.parseShiftExpression()
	return &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
}

func relationalOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.EQ:
		return ast.OpEq, true
	case token.NE:
		return ast.OpNeq, true
	case token.LT:
		return ast.OpLt, true
	case token.LE:
		return ast.OpLe, true
	case token.GT:
		return ast.OpGt, true
	case token.GE:
		return ast.OpGe, true
	}
	return 0, false
}

// parseShiftExpression is the shift level; like relational operators, the
// six shift operators are non-associative.
func (p *Parser) parseShiftExpression() ast.Expr {
	begin := p.tok.Range.Begin
	left := p.parseSimpleExpression()
	op, ok := shiftOp(p.tok.Kind)
	if !ok {
		return left
	}
	p.next()
	right := p.parseSimpleExpression()
	return &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
}

func shiftOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.SLL:
		return ast.OpSll, true
	case token.SRL:
		return ast.OpSrl, true
	case token.SLA:
		return ast.OpSla, true
	case token.SRA:
		return ast.OpSra, true
	case token.ROL:
		return ast.OpRol, true
	case token.ROR:
		return ast.OpRor, true
	}
	return 0, false
}

// parseSimpleExpression is `[sign] term {adding_operator term}`; the
// optional leading sign applies once, to the whole chain's first term.
func (p *Parser) parseSimpleExpression() ast.Expr {
	begin := p.tok.Range.Begin
	var sign ast.UnaryOp
	hasSign := false
	switch p.tok.Kind {
	case token.PLUS:
		sign, hasSign = ast.OpPlus, true
		p.next()
	case token.MINUS:
		sign, hasSign = ast.OpMinus, true
		p.next()
	}
	left := p.parseTerm()
	if hasSign {
		left = &ast.UnaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: sign, Operand: left}
	}
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.PLUS:
			op = ast.OpAdd
		case token.MINUS:
			op = ast.OpSub
		case token.AMPERSAND:
			op = ast.OpConcat
		default:
			return left
		}
		p.next()
		right := p.parseTerm()
		left = &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
	}
}

// parseTerm is `factor {multiplying_operator factor}`.
func (p *Parser) parseTerm() ast.Expr {
	begin := p.tok.Range.Begin
	left := p.parseFactor()
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.MOD:
			op = ast.OpMod
		case token.REM:
			op = ast.OpRem
		default:
			return left
		}
		p.next()
		right := p.parseFactor()
		left = &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: op, Left: left, Right: right}
	}
}

// parseFactor is `primary [** primary] | abs primary | not primary`.
func (p *Parser) parseFactor() ast.Expr {
	begin := p.tok.Range.Begin
	switch p.tok.Kind {
	case token.ABS:
		p.next()
		operand := p.parsePrimary()
		return &ast.UnaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: ast.OpAbs, Operand: operand}
	case token.NOT:
		p.next()
		operand := p.parsePrimary()
		return &ast.UnaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: ast.OpNot, Operand: operand}
	}
	left := p.parsePrimary()
	if _, ok := p.accept(token.DOUBLESTAR); ok {
		right := p.parsePrimary()
		return &ast.BinaryExpr{Base: ast.NewBase(p.rangeFrom(begin)), Op: ast.OpPow, Left: left, Right: right}
	}
	return left
}

// parsePrimary parses a literal, name, aggregate/parenthesized expression
// or allocator.
func (p *Parser) parsePrimary() ast.Expr {
	begin := p.tok.Range.Begin
	switch p.tok.Kind {
	case token.INT, token.FLOAT:
		tok := p.tok
		p.next()
		kind := ast.LiteralInt
		if tok.Kind == token.FLOAT {
			kind = ast.LiteralFloat
		}
		lit := &ast.Literal{Base: ast.NewBase(tok.Range), Kind: kind, Text: tok.Text()}
		if p.tok.Kind == token.IDENT {
			unitTok := p.tok
			p.next()
			unit := &ast.Ident{Base: ast.NewBase(unitTok.Range), Text: unitTok.Text()}
			return &ast.PhysicalLiteral{Base: ast.NewBase(p.rangeFrom(begin)), Magnitude: lit, Unit: unit}
		}
		return lit
	case token.CHAR:
		tok := p.tok
		p.next()
		return &ast.Literal{Base: ast.NewBase(tok.Range), Kind: ast.LiteralChar, Text: tok.Text()}
	case token.STRING:
		tok := p.tok
		p.next()
		return &ast.Literal{Base: ast.NewBase(tok.Range), Kind: ast.LiteralString, Text: tok.Text()}
	case token.BITSTRING:
		tok := p.tok
		p.next()
		return &ast.Literal{Base: ast.NewBase(tok.Range), Kind: ast.LiteralBitString, Text: tok.Text()}
	case token.NULL:
		tok := p.tok
		p.next()
		return &ast.Literal{Base: ast.NewBase(tok.Range), Kind: ast.LiteralNull, Text: "null"}
	case token.NEW:
		return p.parseAllocator()
	case token.LPAREN:
		return p.parseParenOrAggregateExpr()
	case token.IDENT, token.EXTIDENT:
		n := p.parseName()
		if n == nil {
			return nil
		}
		return &ast.UnresolvedName{Base: ast.NewBase(n.Range()), Name: n}
	default:
		p.errorf(p.tok.Range, "expecting expression, found %s", p.tok.Kind)
		return nil
	}
}

// parseParenOrAggregateExpr parses a parenthesized expression or an
// aggregate: a single unnamed, unchoiced element collapses to ParenExpr
// (preserving its exact parenthesized span for folding/hover); anything
// else (more than one element, or a named/others choice) is an Aggregate.
func (p *Parser) parseParenOrAggregateExpr() ast.Expr {
	begin := p.tok.Range.Begin
	p.next() // (
	elements := p.parseAssociationList()
	p.expect(token.RPAREN)
	if len(elements) == 1 && elements[0].Formal == nil {
		return &ast.ParenExpr{Base: ast.NewBase(p.rangeFrom(begin)), Inner: elements[0].Actual}
	}
	return &ast.Aggregate{Base: ast.NewBase(p.rangeFrom(begin)), Elements: elements}
}

// parseAllocator parses `new <subtype_indication>` or `new <qualified
// expression>`, disambiguated by whether a `'` follows the type mark -
// parseName's own tail loop already folds that into a QualifiedName, so
// the allocator only needs to check what came back.
func (p *Parser) parseAllocator() ast.Expr {
	begin := p.tok.Range.Begin
	p.next() // new
	mark := p.parseName()
	if q, ok := mark.(*ast.QualifiedName); ok {
		return &ast.Allocator{Base: ast.NewBase(p.rangeFrom(begin)), Qualified: q}
	}
	ind := p.finishSubtypeIndication(begin, nil, mark)
	return &ast.Allocator{Base: ast.NewBase(p.rangeFrom(begin)), Indication: ind}
}

// parseRange parses a discrete range: `<expr> to|downto <expr>`, an
// attribute-driven range (`X'range`/`X'reverse_range`), or a bare subtype
// indication used in range position. The attribute-vs-simple-range
// ambiguity is resolved exactly as §4.3 describes: checkpoint, attempt an
// expression, examine the next token, backtrack if it is not to/downto.
func (p *Parser) parseRange() ast.RangeExpr {
	begin := p.tok.Range.Begin
	p.checkpoint()
	left := p.parseExpression()
	if p.tok.Kind == token.TO || p.tok.Kind == token.DOWNTO {
		p.dropCheckpoint()
		dir := ast.DirectionTo
		if p.tok.Kind == token.DOWNTO {
			dir = ast.DirectionDownto
		}
		p.next()
		right := p.parseExpression()
		return &ast.ExplicitRange{Base: ast.NewBase(p.rangeFrom(begin)), Left: left, Direction: dir, Right: right}
	}
	p.backtrack()
	ind := p.parseSubtypeIndication()
	if attr, ok := ind.TypeMark.(*ast.AttributeName); ok && ind.Constraint == nil && isRangeAttribute(attr.Designator.Text) {
		return &ast.AttributeRange{Base: ast.NewBase(p.rangeFrom(begin)), Attr: attr}
	}
	return &ast.SubtypeRange{Base: ast.NewBase(p.rangeFrom(begin)), Indication: ind}
}

func isRangeAttribute(s string) bool {
	s = strings.ToLower(s)
	return s == "range" || s == "reverse_range"
}

// finishSubtypeIndication completes a subtype indication whose type mark
// (and, when present, resolution function) has already been parsed as a
// Name - the allocator's `new <name>` needs this once it has determined,
// by the absence of a following `'`, that the name is a type mark rather
// than a qualified expression's prefix.
func (p *Parser) finishSubtypeIndication(begin token.Position, resolution, mark ast.Name) *ast.SubtypeIndication {
	var constraint *token.Range
	if p.at(token.LPAREN) {
		cbegin := p.tok.Range.Begin
		p.skipBalanced(token.LPAREN, token.RPAREN)
		cr := p.rangeFrom(cbegin)
		constraint = &cr
	} else if p.at(token.RANGE) {
		cbegin := p.tok.Range.Begin
		p.next()
		p.parseRange()
		cr := p.rangeFrom(cbegin)
		constraint = &cr
	}
	return &ast.SubtypeIndication{
		Base:               ast.NewBase(p.rangeFrom(begin)),
		ResolutionFunction: resolution,
		TypeMark:           mark,
		Constraint:         constraint,
	}
}
