package parser

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// parseInterfaceClause parses `generic ( <interface list> ) ;` or
// `port ( <interface list> ) ;`, shared between entities, components and
// blocks (all of which reuse interface_declaration verbatim). Each element
// of the list may declare several identifiers sharing one subtype
// indication; parseInterfaceDeclGroup fans those out, so the list itself is
// built from flattened groups.
func (p *Parser) parseInterfaceClause(kw token.Kind) []ast.DeclarativeItem {
	p.next() // generic|port
	p.expect(token.LPAREN)
	class := classForClause(kw)
	groups := parseManySep(p, stateInterfaceList, token.SEMICOLON,
		isInterfaceItemStart, func(k token.Kind) bool { return k == token.RPAREN },
		func() []ast.DeclarativeItem { return p.parseInterfaceDeclGroup(class) })
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return flattenDecls(groups)
}

// classForClause returns the default object class for a generic or port
// clause's interface declarations (constant for generics, signal for
// ports), overridden per-item when an explicit class keyword is present.
func classForClause(kw token.Kind) ast.ObjectClass {
	if kw == token.PORT {
		return ast.ClassSignal
	}
	return ast.ClassConstant
}

func flattenDecls(groups [][]ast.DeclarativeItem) []ast.DeclarativeItem {
	var out []ast.DeclarativeItem
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// parseInterfaceDeclGroup parses one `<ids> : [class] [mode] <subtype
// indication> [:= <expr>]` element of an interface list, fanning multiple
// comma-separated identifiers out to one InterfaceDecl each (they share one
// SubtypeIndication/Init, matching ObjectDecl's per-identifier model).
func (p *Parser) parseInterfaceDeclGroup(class ast.ObjectClass) []ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	switch p.tok.Kind {
	case token.CONSTANT:
		class = ast.ClassConstant
		p.next()
	case token.SIGNAL:
		class = ast.ClassSignal
		p.next()
	case token.VARIABLE:
		class = ast.ClassVariable
		p.next()
	case token.FILE:
		class = ast.ClassFile
		p.next()
	}

	ids := p.identList()
	p.expect(token.COLON)

	mode := ast.ModeNone
	switch p.tok.Kind {
	case token.IN:
		mode = ast.ModeIn
		p.next()
	case token.OUT:
		mode = ast.ModeOut
		p.next()
	case token.INOUT:
		mode = ast.ModeInout
		p.next()
	case token.BUFFER:
		mode = ast.ModeBuffer
		p.next()
	case token.LINKAGE:
		mode = ast.ModeLinkage
		p.next()
	}

	indication := p.parseSubtypeIndication()
	p.accept(token.BUS) // signal kind, recorded nowhere (elaboration non-goal)

	var init ast.Expr
	if _, ok := p.accept(token.ASSIGN); ok {
		init = p.parseExpression()
	}

	rng := p.rangeFrom(begin)
	out := make([]ast.DeclarativeItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, &ast.InterfaceDecl{
			Base: ast.NewBase(rng), Class: class,
			Identifier: id, Mode: mode, Indication: indication, Init: init,
		})
	}
	return out
}

// identList parses one or more comma-separated identifiers, as used by
// multi-declarator object/interface declarations.
func (p *Parser) identList() []*ast.Ident {
	var ids []*ast.Ident
	for {
		if id := p.ident(); id != nil {
			ids = append(ids, id)
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	return ids
}

// parseSubtypeIndication parses `[<resolution function>] <type mark>
// [<constraint>]`. Index/range constraints are recorded only by extent
// (Constraint), matching §3's "Declarative region" note that full
// constraint evaluation is outside name-resolution scope.
func (p *Parser) parseSubtypeIndication() *ast.SubtypeIndication {
	begin := p.tok.Range.Begin
	var resolution ast.Name
	mark := p.parseName()

	// A leading name immediately followed by another name is a resolution
	// function ahead of the real type mark (`resolved integer`).
	if isNameStart(p.tok.Kind) && mark != nil {
		resolution = mark
		mark = p.parseName()
	}

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

// skipBalanced consumes a balanced open/close token pair (and everything
// between), recording only its extent - used for constraint index ranges,
// whose internal structure this front end does not need beyond folding.
func (p *Parser) skipBalanced(open, closeKind token.Kind) {
	if _, ok := p.accept(open); !ok {
		return
	}
	depth := 1
	for depth > 0 && p.tok.Kind != token.EOF {
		switch p.tok.Kind {
		case open:
			depth++
		case closeKind:
			depth--
		}
		p.next()
	}
}

// parseDeclarativePart parses zero or more declarative items, terminated
// by whatever token s's end-predicate recognizes (begin/end/for, per the
// calling context).
func (p *Parser) parseDeclarativePart(s state) []ast.DeclarativeItem {
	groups := parseMany(p, s, isDeclarativeItemStart, stateEndTokens[s], p.parseDeclarativeItemGroup)
	return flattenDecls(groups)
}

// parseDeclarativeItemGroup dispatches on the current token and returns the
// (possibly multi-element, for object declarations) group of items it
// produced.
func (p *Parser) parseDeclarativeItemGroup() []ast.DeclarativeItem {
	switch p.tok.Kind {
	case token.TYPE:
		return one(p.parseTypeDecl())
	case token.SUBTYPE:
		return one(p.parseSubtypeDecl())
	case token.CONSTANT:
		return p.parseObjectDeclGroup(ast.ClassConstant)
	case token.SIGNAL:
		return p.parseObjectDeclGroup(ast.ClassSignal)
	case token.VARIABLE, token.SHARED:
		return p.parseObjectDeclGroup(ast.ClassVariable)
	case token.FILE:
		return p.parseObjectDeclGroup(ast.ClassFile)
	case token.ALIAS:
		return one(p.parseAliasDecl())
	case token.ATTRIBUTE:
		return one(p.parseAttributeDeclOrSpec())
	case token.COMPONENT:
		return one(p.parseComponentDecl())
	case token.FUNCTION, token.PURE, token.IMPURE:
		return one(p.parseSubprogram(ast.SubprogramFunction))
	case token.PROCEDURE:
		return one(p.parseSubprogram(ast.SubprogramProcedure))
	case token.FOR:
		return one(p.parseConfigSpec())
	case token.USE:
		return one(p.parseUseDecl())
	case token.GROUP, token.DISCONNECT:
		// Group declarations/templates and disconnection specifications are
		// recorded nowhere (no name-resolution consumer needs them); skip
		// to the terminating semicolon so the declarative part keeps going.
		for p.tok.Kind != token.SEMICOLON && p.tok.Kind != token.EOF {
			p.next()
		}
		p.accept(token.SEMICOLON)
		return nil
	default:
		p.skip()
		return nil
	}
}

func one(item ast.DeclarativeItem) []ast.DeclarativeItem {
	if item == nil {
		return nil
	}
	return []ast.DeclarativeItem{item}
}

// parseTypeDecl parses `type <id> is <type_definition>;` or the incomplete
// form `type <id>;`.
func (p *Parser) parseTypeDecl() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // type
	id := p.ident()
	var def ast.TypeDefinition
	if _, ok := p.accept(token.IS); ok {
		def = p.parseTypeDefinition()
	}
	p.expect(token.SEMICOLON)
	return &ast.TypeDecl{Base: ast.NewBase(p.rangeFrom(begin)), Identifier: id, Definition: def}
}

func (p *Parser) parseSubtypeDecl() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // subtype
	id := p.ident()
	p.expect(token.IS)
	ind := p.parseSubtypeIndication()
	p.expect(token.SEMICOLON)
	return &ast.SubtypeDecl{Base: ast.NewBase(p.rangeFrom(begin)), Identifier: id, Indication: ind}
}

// parseObjectDeclGroup parses a constant/signal/variable/file declaration,
// fanning multiple comma-separated identifiers out to one ObjectDecl each.
func (p *Parser) parseObjectDeclGroup(class ast.ObjectClass) []ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.accept(token.SHARED)
	p.next() // constant|signal|variable|file

	ids := p.identList()
	p.expect(token.COLON)
	ind := p.parseSubtypeIndication()

	var init ast.Expr
	if class == ast.ClassFile {
		if _, ok := p.accept(token.OPEN); ok {
			p.parseExpression() // file open kind expression, extent only
		}
		if _, ok := p.accept(token.IS); ok {
			init = p.parseExpression() // logical name string expression
		}
	} else if _, ok := p.accept(token.ASSIGN); ok {
		init = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	rng := p.rangeFrom(begin)
	out := make([]ast.DeclarativeItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, &ast.ObjectDecl{Base: ast.NewBase(rng), Class: class, Identifier: id, Indication: ind, Init: init})
	}
	return out
}

func (p *Parser) parseAliasDecl() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // alias
	designator := p.aliasDesignator()
	var ind *ast.SubtypeIndication
	if _, ok := p.accept(token.COLON); ok {
		ind = p.parseSubtypeIndication()
	}
	p.expect(token.IS)
	target := p.parseName()
	if p.at(token.LBRACKET) {
		target = p.parseSignature(target)
	}
	p.expect(token.SEMICOLON)
	return &ast.AliasDecl{Base: ast.NewBase(p.rangeFrom(begin)), Designator: designator, Indication: ind, Target: target}
}

// aliasDesignator accepts an identifier, character literal, or operator
// symbol (a string literal spelling an operator) as an alias's declared
// name.
func (p *Parser) aliasDesignator() *ast.Ident {
	tok := p.tok
	if tok.Kind == token.CHAR || tok.Kind == token.STRING {
		p.next()
		return &ast.Ident{Base: ast.NewBase(tok.Range), Text: tok.Text()}
	}
	return p.ident()
}

func (p *Parser) parseAttributeDeclOrSpec() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // attribute
	id := p.ident()
	if _, ok := p.accept(token.COLON); ok {
		mark := p.parseName()
		p.expect(token.SEMICOLON)
		return &ast.AttributeDecl{Base: ast.NewBase(p.rangeFrom(begin)), Identifier: id, TypeMark: mark}
	}
	p.expect(token.OF)
	var designators []ast.Name
	for {
		if p.at(token.OTHERS) || p.at(token.ALL) {
			p.next()
			break
		}
		n := p.parseName()
		if p.at(token.LBRACKET) {
			n = p.parseSignature(n)
		}
		designators = append(designators, n)
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.COLON)
	class := p.parseEntityClass()
	p.expect(token.IS)
	value := p.parseExpression()
	p.expect(token.SEMICOLON)
	return &ast.AttrSpec{
		Base: ast.NewBase(p.rangeFrom(begin)), Attribute: id,
		Designators: designators, Class: class, Value: value,
	}
}

var entityClassKeywords = map[token.Kind]ast.EntityClass{
	token.ENTITY:        ast.EntityClassEntity,
	token.ARCHITECTURE:  ast.EntityClassArchitecture,
	token.CONFIGURATION: ast.EntityClassConfiguration,
	token.PROCEDURE:     ast.EntityClassProcedure,
	token.FUNCTION:      ast.EntityClassFunction,
	token.PACKAGE:       ast.EntityClassPackage,
	token.TYPE:          ast.EntityClassType,
	token.SUBTYPE:       ast.EntityClassSubtype,
	token.CONSTANT:      ast.EntityClassConstant,
	token.SIGNAL:        ast.EntityClassSignal,
	token.VARIABLE:      ast.EntityClassVariable,
	token.COMPONENT:     ast.EntityClassComponent,
	token.LABEL:         ast.EntityClassLabel,
	token.LITERAL:       ast.EntityClassLiteral,
	token.UNITS:         ast.EntityClassUnits,
	token.GROUP:         ast.EntityClassGroup,
	token.FILE:          ast.EntityClassFile,
}

func (p *Parser) parseEntityClass() ast.EntityClass {
	if c, ok := entityClassKeywords[p.tok.Kind]; ok {
		p.next()
		return c
	}
	p.errorf(p.tok.Range, "expecting entity class, found %s", p.tok.Kind)
	return ast.EntityClassUnknown
}

func (p *Parser) parseComponentDecl() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // component
	id := p.ident()
	p.accept(token.IS)

	var generics, ports []*ast.InterfaceDecl
	if p.at(token.GENERIC) {
		generics = asInterfaceDecls(p.parseInterfaceClause(token.GENERIC))
	}
	if p.at(token.PORT) {
		ports = asInterfaceDecls(p.parseInterfaceClause(token.PORT))
	}
	p.expect(token.END)
	p.accept(token.COMPONENT)
	endLabel := p.optionalEndLabel()
	p.expect(token.SEMICOLON)
	return &ast.ComponentDecl{
		Base: ast.NewBase(p.rangeFrom(begin)), Identifier: id,
		GenericClause: generics, PortClause: ports, EndLabel: endLabel,
	}
}

func asInterfaceDecls(items []ast.DeclarativeItem) []*ast.InterfaceDecl {
	out := make([]*ast.InterfaceDecl, 0, len(items))
	for _, it := range items {
		if id, ok := it.(*ast.InterfaceDecl); ok {
			out = append(out, id)
		}
	}
	return out
}

// parseSubprogram parses either a bare specification (`function|procedure
// ... ;`) or a body (`function|procedure ... is ... end;`), returning the
// appropriate node. kind names the default subprogram kind; an actual
// `function` keyword always wins over a leading pure/impure qualifier.
func (p *Parser) parseSubprogram(kind ast.SubprogramKind) ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	isPure := false
	if p.at(token.PURE) {
		isPure = true
		p.next()
	} else if p.at(token.IMPURE) {
		p.next()
	}
	if p.at(token.FUNCTION) {
		kind = ast.SubprogramFunction
	}
	p.next() // function|procedure

	designator := p.aliasDesignator()
	var params []*ast.InterfaceDecl
	if p.at(token.LPAREN) {
		p.next()
		defaultClass := ast.ClassConstant
		if kind == ast.SubprogramProcedure {
			defaultClass = ast.ClassVariable
		}
		groups := parseManySep(p, stateInterfaceList, token.SEMICOLON,
			isInterfaceItemStart, func(k token.Kind) bool { return k == token.RPAREN },
			func() []ast.DeclarativeItem { return p.parseInterfaceDeclGroup(defaultClass) })
		params = asInterfaceDecls(flattenDecls(groups))
		p.expect(token.RPAREN)
	}
	var ret ast.Name
	if kind == ast.SubprogramFunction {
		p.expect(token.RETURN)
		ret = p.parseName()
	}

	spec := &ast.SubprogramSpec{
		Base: ast.NewBase(p.rangeFrom(begin)), Kind: kind,
		Designator: designator, Parameters: params, ReturnType: ret, IsPure: isPure,
	}

	if _, ok := p.accept(token.SEMICOLON); ok {
		return spec
	}
	p.expect(token.IS)
	decls := p.parseDeclarativePart(stateDeclarativePartBegin)
	beginTok, _ := p.expect(token.BEGIN)
	stmts := p.parseSequentialStatements(stateSequentialStatements)
	p.expect(token.END)
	if p.at(token.FUNCTION) || p.at(token.PROCEDURE) {
		p.next()
	}
	endLabel := p.optionalEndLabel()
	p.expect(token.SEMICOLON)
	return &ast.SubprogramBody{
		Base: ast.NewBase(p.rangeFrom(begin)), Spec: spec, Decls: decls,
		BeginRange: beginTok.Range, Statements: stmts, EndLabel: endLabel,
	}
}

// parseConfigSpec parses `for <component spec> : <component name> use
// <binding indication>;`, recording only the component name (binding
// indication resolution is out of scope, matching ConfigurationDecl).
func (p *Parser) parseConfigSpec() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // for
	// component specification: instantiation label(s)/others/all, skip to ':'
	for p.tok.Kind != token.COLON && p.tok.Kind != token.SEMICOLON && p.tok.Kind != token.EOF {
		p.next()
	}
	p.expect(token.COLON)
	name := p.parseName()
	if _, ok := p.accept(token.USE); ok {
		// binding indication: skip to the terminating semicolon.
		for p.tok.Kind != token.SEMICOLON && p.tok.Kind != token.EOF {
			p.next()
		}
	}
	p.expect(token.SEMICOLON)
	return &ast.ConfigSpec{Base: ast.NewBase(p.rangeFrom(begin)), ComponentName: name}
}

func (p *Parser) parseUseDecl() ast.DeclarativeItem {
	begin := p.tok.Range.Begin
	p.next() // use
	var names []ast.Name
	for {
		names = append(names, p.parseName())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.SEMICOLON)
	return &ast.UseDecl{Base: ast.NewBase(p.rangeFrom(begin)), Names: names}
}
