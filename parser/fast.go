package parser

import (
	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/scanner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// DesignUnitKind identifies which of the five design unit kinds a FastRow
// names, matching the LIBRARY_UNITS.DESIGNUNIT encoding (1-5).
type DesignUnitKind int

const (
	UnitEntity DesignUnitKind = iota + 1
	UnitArchitecture
	UnitPackage
	UnitPackageBody
	UnitConfiguration
)

// FastRow is one unit header as the fast parser records it: enough to
// populate a library index row without ever building an AST.
type FastRow struct {
	Kind        DesignUnitKind
	Line        int
	Column      int
	Filename    string
	Identifier  string
	Identifier2 string // secondary unit's primary name; empty when not applicable
}

// ScanUnits performs the fast parse (§4.4): a linear, AST-free token skim
// that records one FastRow per unit-starting keyword and resyncs to the
// next by skipping tokens until another unit-starting keyword is seen
// outside of an `end` context. It produces no diagnostics - a malformed
// file simply yields fewer or less complete rows, never an error.
func ScanUnits(filename string, src []byte, in *interner.Interner, version token.Version) []FastRow {
	var discard errors.List
	s := scanner.New(filename, src, in, &discard, version)

	var rows []FastRow
	tok := s.Scan()
	for tok.Kind != token.EOF {
		switch tok.Kind {
		case token.ENTITY:
			rows = appendRow(rows, s, tok, UnitEntity, false)
		case token.ARCHITECTURE:
			rows = appendRow(rows, s, tok, UnitArchitecture, true)
		case token.PACKAGE:
			next := s.Scan()
			if next.Kind == token.BODY {
				rows = appendSecondaryAfterBody(rows, s, tok, UnitPackageBody)
				tok = s.Scan()
				continue
			}
			rows = appendPrimaryFrom(rows, s, tok, UnitPackage, next)
			tok = s.Scan()
			continue
		case token.CONFIGURATION:
			rows = appendRow(rows, s, tok, UnitConfiguration, true)
		case token.END:
			// a unit keyword right after `end` closes that unit rather than opening one
			tok = s.Scan()
			switch tok.Kind {
			case token.ENTITY, token.ARCHITECTURE, token.PACKAGE, token.CONFIGURATION:
				tok = s.Scan()
			}
			continue
		}
		tok = s.Scan()
	}
	return rows
}

// appendRow records an entity (withSecondary false) or a unit whose
// identifier is immediately followed by `of <identifier2>` (architecture,
// configuration; withSecondary true).
func appendRow(rows []FastRow, s *scanner.Scanner, kw token.Token, kind DesignUnitKind, withSecondary bool) []FastRow {
	idTok := s.Scan()
	if idTok.Kind != token.IDENT && idTok.Kind != token.EXTIDENT {
		return rows
	}
	row := FastRow{Kind: kind, Line: kw.Range.Begin.Line, Column: kw.Range.Begin.Column, Filename: kw.Range.Filename, Identifier: idTok.Text()}
	if withSecondary {
		if ofTok := s.Scan(); ofTok.Kind == token.OF {
			if secTok := s.Scan(); secTok.Kind == token.IDENT || secTok.Kind == token.EXTIDENT {
				row.Identifier2 = secTok.Text()
			}
		}
	}
	return append(rows, row)
}

// appendPrimaryFrom records a package declaration whose identifier token
// has already been scanned (to distinguish it from `package body`).
func appendPrimaryFrom(rows []FastRow, s *scanner.Scanner, kw token.Token, kind DesignUnitKind, idTok token.Token) []FastRow {
	if idTok.Kind != token.IDENT && idTok.Kind != token.EXTIDENT {
		return rows
	}
	return append(rows, FastRow{Kind: kind, Line: kw.Range.Begin.Line, Column: kw.Range.Begin.Column, Filename: kw.Range.Filename, Identifier: idTok.Text()})
}

func appendSecondaryAfterBody(rows []FastRow, s *scanner.Scanner, kw token.Token, kind DesignUnitKind) []FastRow {
	idTok := s.Scan()
	if idTok.Kind != token.IDENT && idTok.Kind != token.EXTIDENT {
		return rows
	}
	return append(rows, FastRow{
		Kind: kind, Line: kw.Range.Begin.Line, Column: kw.Range.Begin.Column, Filename: kw.Range.Filename,
		Identifier: idTok.Text(), Identifier2: idTok.Text(),
	})
}
