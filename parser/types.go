package parser

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// parseTypeDefinition dispatches on the token that opens a type
// declaration's right-hand side to one of the seven type-definition forms.
func (p *Parser) parseTypeDefinition() ast.TypeDefinition {
	switch p.tok.Kind {
	case token.LPAREN:
		return p.parseEnumerationType()
	case token.RANGE:
		return p.parseRangeBasedType()
	case token.ARRAY:
		return p.parseArrayType()
	case token.RECORD:
		return p.parseRecordType()
	case token.ACCESS:
		return p.parseAccessType()
	case token.FILE:
		return p.parseFileType()
	default:
		p.errorf(p.tok.Range, "expecting type definition, found %s", p.tok.Kind)
		return nil
	}
}

func (p *Parser) parseEnumerationType() *ast.EnumerationType {
	begin := p.tok.Range.Begin
	p.next() // (
	var literals []*ast.Ident
	for {
		if p.tok.Kind == token.CHAR {
			tok := p.tok
			p.next()
			literals = append(literals, &ast.Ident{Base: ast.NewBase(tok.Range), Text: tok.Text()})
		} else if id := p.ident(); id != nil {
			literals = append(literals, id)
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.EnumerationType{Base: ast.NewBase(p.rangeFrom(begin)), Literals: literals}
}

// parseRangeBasedType parses `range <range> [units ... end units]`,
// producing a PhysicalType when a `units` clause follows and an IntegerType
// otherwise. An integer range and a floating one are syntactically alike
// (both are `range <simple expr> to|downto <simple expr>`), and neither the
// parser nor the binder tells them apart, so a floating-point type declared
// this way is represented as an IntegerType.
func (p *Parser) parseRangeBasedType() ast.TypeDefinition {
	begin := p.tok.Range.Begin
	p.next() // range
	rng := p.parseRange()
	if _, ok := p.accept(token.UNITS); !ok {
		return &ast.IntegerType{Base: ast.NewBase(p.rangeFrom(begin)), Range: rng}
	}
	primary := p.ident()
	p.expect(token.SEMICOLON)
	var secondary []ast.PhysicalUnit
	for p.tok.Kind == token.IDENT || p.tok.Kind == token.EXTIDENT {
		ubegin := p.tok.Range.Begin
		id := p.ident()
		p.expect(token.EQ)
		value := p.parsePhysicalLiteral()
		p.expect(token.SEMICOLON)
		secondary = append(secondary, ast.PhysicalUnit{Base: ast.NewBase(p.rangeFrom(ubegin)), Identifier: id, Value: value})
	}
	p.expect(token.END)
	p.expect(token.UNITS)
	p.optionalEndLabel()
	return &ast.PhysicalType{
		Base:           ast.NewBase(p.rangeFrom(begin)),
		Range:          rng,
		PrimaryUnit:    primary,
		SecondaryUnits: secondary,
	}
}

func (p *Parser) parsePhysicalLiteral() *ast.PhysicalLiteral {
	begin := p.tok.Range.Begin
	var mag *ast.Literal
	if p.tok.Kind == token.INT || p.tok.Kind == token.FLOAT {
		tok := p.tok
		p.next()
		kind := ast.LiteralInt
		if tok.Kind == token.FLOAT {
			kind = ast.LiteralFloat
		}
		mag = &ast.Literal{Base: ast.NewBase(tok.Range), Kind: kind, Text: tok.Text()}
	}
	unit := p.ident()
	return &ast.PhysicalLiteral{Base: ast.NewBase(p.rangeFrom(begin)), Magnitude: mag, Unit: unit}
}

// parseArrayType parses `array (<index>, ...) of <element>`, disambiguating
// a constrained from an unconstrained array by whether `<>` follows each
// index type mark at nesting depth 1, per §4.3's box-token look-ahead.
func (p *Parser) parseArrayType() *ast.ArrayType {
	begin := p.tok.Range.Begin
	p.next() // array
	p.expect(token.LPAREN)

	unconstrained := p.aheadAtDepthZero([]token.Kind{token.BOX}, []token.Kind{token.COMMA, token.RPAREN})
	var marks []ast.Name
	var ranges []ast.RangeExpr
	for {
		if unconstrained {
			mark := p.parseName()
			p.expect(token.RANGE)
			p.expect(token.BOX)
			marks = append(marks, mark)
		} else {
			ranges = append(ranges, p.parseRange())
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.OF)
	elem := p.parseSubtypeIndication()

	kind := ast.ArrayIndexConstrained
	if unconstrained {
		kind = ast.ArrayIndexUnconstrained
	}
	return &ast.ArrayType{
		Base:        ast.NewBase(p.rangeFrom(begin)),
		Kind:        kind,
		IndexMarks:  marks,
		IndexRanges: ranges,
		Element:     elem,
	}
}

func (p *Parser) parseRecordType() *ast.RecordType {
	begin := p.tok.Range.Begin
	p.next() // record
	var elements []ast.RecordElement
	for p.tok.Kind == token.IDENT || p.tok.Kind == token.EXTIDENT {
		ebegin := p.tok.Range.Begin
		ids := p.identList()
		p.expect(token.COLON)
		ind := p.parseSubtypeIndication()
		p.expect(token.SEMICOLON)
		for _, id := range ids {
			elements = append(elements, ast.RecordElement{Base: ast.NewBase(p.rangeFrom(ebegin)), Identifier: id, Indication: ind})
		}
	}
	p.expect(token.END)
	p.expect(token.RECORD)
	p.optionalEndLabel()
	return &ast.RecordType{Base: ast.NewBase(p.rangeFrom(begin)), Elements: elements}
}

func (p *Parser) parseAccessType() *ast.AccessType {
	begin := p.tok.Range.Begin
	p.next() // access
	ind := p.parseSubtypeIndication()
	return &ast.AccessType{Base: ast.NewBase(p.rangeFrom(begin)), Designated: ind}
}

func (p *Parser) parseFileType() *ast.FileType {
	begin := p.tok.Range.Begin
	p.next() // file
	p.expect(token.OF)
	mark := p.parseName()
	return &ast.FileType{Base: ast.NewBase(p.rangeFrom(begin)), TypeMark: mark}
}
