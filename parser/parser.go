// Package parser implements a recursive-descent parser over the token
// stream produced by package scanner, building the tagged AST declared in
// package ast. Error recovery is state-driven: the parser tracks which
// grammar productions are currently "active" on the call stack and lets an
// enclosing production claim an unexpected token before resorting to
// skipping it, the way the original hand-written front end's parse_many
// driver does.
package parser

import (
	"reflect"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/scanner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// isNil reports whether v is nil, whether T is an interface holding a nil
// concrete pointer or a bare nil pointer itself - the parse_many drivers
// below are generic over both "returns a concrete *ast.Foo" and "returns an
// ast.Bar interface" production functions, and a naive `any(v) == nil`
// check is fooled by the former (a nil *ast.Foo boxed into any is not the
// nil interface).
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// state identifies one of the grammar productions that drives a
// parse_many/parse_many_sep loop; these are exactly the states an
// enclosing production can "claim" a token away from a nested one during
// error recovery.
type state int

const (
	stateDesignUnitInFile state = iota
	stateContextClause
	stateInterfaceList
	stateDeclarativePartBeginEnd
	stateDeclarativePartBegin
	stateDeclarativePartEnd
	stateDeclarativePartFor
	stateEntityStatementPart
	stateConcurrentStatements
	stateSequentialStatements
	numStates
)

// Parser holds all mutable state for one parse of one design file.
type Parser struct {
	scanner *scanner.Scanner
	diags   *errors.List
	version token.Version

	tok token.Token // one token of lookahead, already scanned

	active [numStates]bool // which parse_many loops are currently on the call stack

	// runaway guard: parse_many must make scanning progress or terminate;
	// this tracks the position of the last forced skip to detect a stall.
	lastSkipPos token.Position
	skipStreak  int

	// dangling collects context items parsed at the top level that turned
	// out not to precede a design unit, so ParseFile can still surface them
	// on the returned ast.DesignFile instead of dropping them.
	dangling []ast.ContextItem
}

// New creates a Parser over src. filename is used for diagnostics and
// ranges; in is the interner used for identifiers and literals; diags
// receives every diagnostic emitted by both the scanner and the parser.
func New(filename string, src []byte, in *interner.Interner, diags *errors.List, version token.Version) *Parser {
	p := &Parser{
		scanner: scanner.New(filename, src, in, diags, version),
		diags:   diags,
		version: version,
	}
	p.next()
	return p
}

func (p *Parser) next() {
	p.tok = p.scanner.Scan()
}

func (p *Parser) at(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) errorf(rng token.Range, format string, args ...any) {
	p.diags.Addf(rng, format, args...)
}

// expect consumes the current token if it matches kind, emitting a
// diagnostic and leaving the token stream untouched otherwise. It returns
// the consumed (or current, on mismatch) token either way, matching the
// original's permissive closing-keyword handling: callers that need strict
// failure check the returned bool.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	tok := p.tok
	if tok.Kind == kind {
		p.next()
		return tok, true
	}
	p.errorf(tok.Range, "expecting %s, found %s", kind, tok.Kind)
	return tok, false
}

// accept consumes the current token if it matches kind, without emitting a
// diagnostic on mismatch.
func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.tok.Kind == kind {
		tok := p.tok
		p.next()
		return tok, true
	}
	return token.Token{}, false
}

func (p *Parser) ident() *ast.Ident {
	tok := p.tok
	if tok.Kind != token.IDENT && tok.Kind != token.EXTIDENT {
		p.errorf(tok.Range, "expecting identifier, found %s", tok.Kind)
		return nil
	}
	p.next()
	return &ast.Ident{Base: ast.NewBase(tok.Range), Text: tok.Text()}
}

// skip consumes exactly one token as part of error recovery, emitting a
// diagnostic and guarding against a stalled parse_many loop that would
// otherwise spin forever on a token no state wants.
func (p *Parser) skip() {
	if p.tok.Range.Begin == p.lastSkipPos {
		p.skipStreak++
	} else {
		p.skipStreak = 0
	}
	p.lastSkipPos = p.tok.Range.Begin
	if p.skipStreak > 2 {
		// Scanning is not advancing (e.g. repeated ILLEGAL at EOF); force
		// progress by treating this as end of input for every loop.
		p.tok = token.New(token.EOF, p.tok.Value, p.tok.Range)
		return
	}
	p.errorf(p.tok.Range, "skipping unexpected %s", p.tok.Kind)
	if p.tok.Kind != token.EOF {
		p.next()
	}
}

// claimedByOtherState reports whether some state other than cur considers
// the current token the start of one of its own elements or its own
// terminator - if so, a parse_many loop for cur should return and let that
// enclosing state recover, rather than skip the token itself.
func (p *Parser) claimedByOtherState(cur state) bool {
	for s := state(0); s < numStates; s++ {
		if s == cur || !p.active[s] {
			continue
		}
		if stateBeginTokens[s](p.tok.Kind) || stateEndTokens[s](p.tok.Kind) {
			return true
		}
	}
	return false
}

// parseMany implements the generic parse_many(state, f) driver: while the
// current token does not end the state, either call f if it begins a new
// element (pushing the result if non-nil), or return early if some other
// active state claims the token, or else skip one token and continue.
func parseMany[T any](p *Parser, s state, isBegin func(token.Kind) bool, isEnd func(token.Kind) bool, f func() T) []T {
	var out []T
	p.active[s] = true
	defer func() { p.active[s] = false }()
	for {
		if isEnd(p.tok.Kind) || p.tok.Kind == token.EOF {
			return out
		}
		if isBegin(p.tok.Kind) {
			v := f()
			if !isNil(v) {
				out = append(out, v)
			}
			continue
		}
		if p.claimedByOtherState(s) {
			return out
		}
		p.skip()
	}
}

// parseManySep implements parse_many_sep(state, sep, f): as parseMany, but
// consumes sep between elements, diagnosing a missing separator and
// tolerating one trailing separator before the state's end token.
func parseManySep[T any](p *Parser, s state, sep token.Kind, isBegin func(token.Kind) bool, isEnd func(token.Kind) bool, f func() T) []T {
	var out []T
	p.active[s] = true
	defer func() { p.active[s] = false }()
	first := true
	for {
		if isEnd(p.tok.Kind) || p.tok.Kind == token.EOF {
			return out
		}
		if !first {
			if _, ok := p.accept(sep); !ok && isBegin(p.tok.Kind) {
				p.errorf(p.tok.Range, "expecting %s", sep)
			}
			if isEnd(p.tok.Kind) || p.tok.Kind == token.EOF {
				return out // tolerate trailing separator
			}
		}
		if isBegin(p.tok.Kind) {
			v := f()
			if !isNil(v) {
				out = append(out, v)
			}
			first = false
			continue
		}
		if p.claimedByOtherState(s) {
			return out
		}
		p.skip()
	}
}

// ParseFile parses a complete design file: zero or more design units, each
// preceded by its own context clause.
func ParseFile(filename string, src []byte, in *interner.Interner, diags *errors.List, version token.Version) *ast.DesignFile {
	p := New(filename, src, in, diags, version)
	begin := p.tok.Range.Begin

	if p.tok.Kind == token.EOF {
		p.errorf(p.tok.Range, "design file is empty")
		return &ast.DesignFile{
			Base:   ast.NewBase(token.Range{Filename: filename, Begin: begin, End: p.tok.Range.End}),
			Source: src,
		}
	}

	units := parseMany(p, stateDesignUnitInFile,
		isDesignUnitStart, func(token.Kind) bool { return false },
		p.parseDesignUnit)
	end := p.tok.Range.End
	return &ast.DesignFile{
		Base:            ast.NewBase(token.Range{Filename: filename, Begin: begin, End: end}),
		Units:           units,
		Source:          src,
		DanglingContext: p.dangling,
	}
}

func isDesignUnitStart(k token.Kind) bool {
	switch k {
	case token.ENTITY, token.ARCHITECTURE, token.PACKAGE, token.CONFIGURATION, token.LIBRARY, token.USE, token.CONTEXT:
		return true
	}
	return false
}

func (p *Parser) parseDesignUnit() ast.DesignUnit {
	context := p.parseContextClause()
	switch p.tok.Kind {
	case token.ENTITY:
		return p.parseEntity(context)
	case token.ARCHITECTURE:
		return p.parseArchitecture(context)
	case token.PACKAGE:
		return p.parsePackage(context)
	case token.CONFIGURATION:
		return p.parseConfiguration(context)
	default:
		// The context clause was parsed, but nothing that could carry it -
		// no entity/architecture/package/configuration keyword followed,
		// most commonly a library or use clause running straight into
		// end-of-file. It belongs to no unit, so stash it on the file
		// itself rather than discard it along with this nil unit.
		p.dangling = append(p.dangling, context...)
		p.skip()
		return nil
	}
}

func (p *Parser) parseContextClause() []ast.ContextItem {
	return parseMany(p, stateContextClause,
		func(k token.Kind) bool { return k == token.LIBRARY || k == token.USE },
		func(k token.Kind) bool { return isDesignUnitStart(k) && k != token.LIBRARY && k != token.USE },
		p.parseContextItem)
}

func (p *Parser) parseContextItem() ast.ContextItem {
	switch p.tok.Kind {
	case token.LIBRARY:
		return p.parseLibraryClause()
	case token.USE:
		return p.parseUseClause()
	default:
		p.skip()
		return nil
	}
}

func (p *Parser) parseLibraryClause() ast.ContextItem {
	begin := p.tok.Range.Begin
	p.next() // library
	var names []*ast.Ident
	for {
		if id := p.ident(); id != nil {
			names = append(names, id)
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.LibraryClause{
		Base:  ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
		Names: names,
	}
}

func (p *Parser) parseUseClause() ast.ContextItem {
	begin := p.tok.Range.Begin
	p.next() // use
	var names []ast.Name
	for {
		names = append(names, p.parseName())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end, _ := p.expect(token.SEMICOLON)
	return &ast.UseClause{
		Base:  ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
		Names: names,
	}
}

func (p *Parser) filename() string { return p.tok.Range.Filename }

// checkpoint/backtrack wrap the scanner's own checkpoint stack, additionally
// resyncing the parser's one-token lookahead cache, which the scanner
// itself knows nothing about.
func (p *Parser) checkpoint()     { p.scanner.AddCheckpoint() }
func (p *Parser) dropCheckpoint() { p.scanner.DropCheckpoint() }
func (p *Parser) backtrack() {
	p.scanner.Backtrack()
	p.tok = p.scanner.CurrentToken()
}

func (p *Parser) rangeFrom(begin token.Position) token.Range {
	return token.Range{Filename: p.filename(), Begin: begin, End: p.scanner.PreviousToken().Range.End}
}

// --- design units ---

func (p *Parser) parseEntity(context []ast.ContextItem) *ast.EntityDecl {
	begin := p.tok.Range.Begin
	p.next() // entity
	id := p.ident()
	p.expect(token.IS)

	var generics, ports []ast.DeclarativeItem
	if p.at(token.GENERIC) {
		generics = p.parseInterfaceClause(token.GENERIC)
	}
	if p.at(token.PORT) {
		ports = p.parseInterfaceClause(token.PORT)
	}
	decls := p.parseDeclarativePart(stateDeclarativePartBeginEnd)

	var beginRange token.Range
	var stmts []ast.ConcurrentStatement
	if tok, ok := p.accept(token.BEGIN); ok {
		beginRange = tok.Range
		stmts = p.parseConcurrentStatements(stateEntityStatementPart)
	}
	p.expect(token.END)
	p.accept(token.ENTITY)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)

	return &ast.EntityDecl{
		CommonUnit: ast.CommonUnit{
			Base:         ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
			Identifier:   id,
			ContextItems: context,
		},
		GenericClause: generics,
		PortClause:    ports,
		Decls:         decls,
		BeginRange:    beginRange,
		Statements:    stmts,
		EndLabel:      endLabel,
	}
}

func (p *Parser) parseArchitecture(context []ast.ContextItem) *ast.ArchitectureDecl {
	begin := p.tok.Range.Begin
	p.next() // architecture
	id := p.ident()
	p.expect(token.OF)
	entityName := p.ident()
	isTok, _ := p.expect(token.IS)
	decls := p.parseDeclarativePart(stateDeclarativePartBeginEnd)
	beginTok, _ := p.expect(token.BEGIN)
	stmts := p.parseConcurrentStatements(stateConcurrentStatements)
	endTok, _ := p.expect(token.END)
	p.accept(token.ARCHITECTURE)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)

	return &ast.ArchitectureDecl{
		CommonUnit: ast.CommonUnit{
			Base:         ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
			Identifier:   id,
			ContextItems: context,
		},
		EntityName: entityName,
		IsRange:    isTok.Range,
		Decls:      decls,
		BeginRange: beginTok.Range,
		Statements: stmts,
		EndRange:   endTok.Range,
		EndLabel:   endLabel,
	}
}

func (p *Parser) parsePackage(context []ast.ContextItem) ast.DesignUnit {
	begin := p.tok.Range.Begin
	p.next() // package
	if p.at(token.BODY) {
		p.next()
		id := p.ident()
		p.expect(token.IS)
		decls := p.parseDeclarativePart(stateDeclarativePartEnd)
		p.expect(token.END)
		p.accept(token.PACKAGE)
		p.accept(token.BODY)
		endLabel := p.optionalEndLabel()
		end, _ := p.expect(token.SEMICOLON)
		return &ast.PackageBodyDecl{
			CommonUnit: ast.CommonUnit{
				Base:         ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
				Identifier:   id,
				ContextItems: context,
			},
			Decls:    decls,
			EndLabel: endLabel,
		}
	}

	id := p.ident()
	p.expect(token.IS)
	decls := p.parseDeclarativePart(stateDeclarativePartEnd)
	p.expect(token.END)
	p.accept(token.PACKAGE)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)
	return &ast.PackageDecl{
		CommonUnit: ast.CommonUnit{
			Base:         ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
			Identifier:   id,
			ContextItems: context,
		},
		Decls:    decls,
		EndLabel: endLabel,
	}
}

func (p *Parser) parseConfiguration(context []ast.ContextItem) *ast.ConfigurationDecl {
	begin := p.tok.Range.Begin
	p.next() // configuration
	id := p.ident()
	p.expect(token.OF)
	entityName := p.ident()
	p.expect(token.IS)
	bodyBegin := p.tok.Range.Begin
	// Block/component configuration internals are not modeled; skip to the
	// matching `end`, tracking for/end nesting so a nested block
	// configuration's own `end for;` does not terminate the outer one.
	depth := 0
	for {
		if p.tok.Kind == token.EOF {
			break
		}
		if p.tok.Kind == token.FOR {
			depth++
		}
		if p.tok.Kind == token.END {
			if depth == 0 {
				break
			}
			depth--
		}
		p.next()
	}
	bodyEnd := p.tok.Range.Begin
	p.expect(token.END)
	p.accept(token.CONFIGURATION)
	endLabel := p.optionalEndLabel()
	end, _ := p.expect(token.SEMICOLON)
	return &ast.ConfigurationDecl{
		CommonUnit: ast.CommonUnit{
			Base:         ast.NewBase(token.Range{Filename: p.filename(), Begin: begin, End: end.Range.End}),
			Identifier:   id,
			ContextItems: context,
		},
		EntityName: entityName,
		Body:       token.Range{Filename: p.filename(), Begin: bodyBegin, End: bodyEnd},
		EndLabel:   endLabel,
	}
}

// optionalEndLabel parses the optional repeated identifier/label that may
// follow a closing `end ...` keyword sequence. Per the permissive
// end-keyword policy, a mismatched label only produces a diagnostic
// elsewhere (name resolution), never a parse failure.
func (p *Parser) optionalEndLabel() *ast.Ident {
	if p.tok.Kind == token.IDENT || p.tok.Kind == token.EXTIDENT {
		return p.ident()
	}
	return nil
}
