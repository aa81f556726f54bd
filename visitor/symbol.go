package visitor

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// SymbolKind is drawn from the closed LSP symbol-kind set named in §6.
type SymbolKind int

const (
	SymbolFile          SymbolKind = 1
	SymbolModule        SymbolKind = 2
	SymbolNamespace     SymbolKind = 3
	SymbolPackage       SymbolKind = 4
	SymbolClass         SymbolKind = 5
	SymbolMethod        SymbolKind = 6
	SymbolProperty      SymbolKind = 7
	SymbolField         SymbolKind = 8
	SymbolConstructor   SymbolKind = 9
	SymbolEnum          SymbolKind = 10
	SymbolInterface     SymbolKind = 11
	SymbolFunction      SymbolKind = 12
	SymbolVariable      SymbolKind = 13
	SymbolConstant      SymbolKind = 14
	SymbolStruct        SymbolKind = 23
	SymbolEvent         SymbolKind = 24
	SymbolEnumMember    SymbolKind = 22
	SymbolTypeParameter SymbolKind = 26
)

// DocumentSymbol is one node of the nested outline tree §6 names for
// documentSymbols.
type DocumentSymbol struct {
	Name           string
	Kind           SymbolKind
	Range          token.Range
	SelectionRange token.Range
	Children       []DocumentSymbol
}

// SymbolProvider is the read-only traversal of §4.10 that emits a nested
// symbol tree rooted at design units: each container (unit, subprogram,
// component, record, process/block/generate) opens child emission, each
// leaf (object, type, label) closes immediately.
type SymbolProvider struct{}

// Symbols walks file and returns one root symbol per design unit.
func (SymbolProvider) Symbols(file *ast.DesignFile) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(file.Units))
	for _, u := range file.Units {
		out = append(out, symbolUnit(u))
	}
	return out
}

func symbolUnit(u ast.DesignUnit) DocumentSymbol {
	switch n := u.(type) {
	case *ast.EntityDecl:
		s := leaf(n.Identifier, n, SymbolInterface)
		s.Children = append(s.Children, symbolInterfaceList(n.GenericClause, SymbolConstant)...)
		s.Children = append(s.Children, symbolInterfaceList(n.PortClause, SymbolProperty)...)
		s.Children = append(s.Children, symbolDecls(n.Decls)...)
		s.Children = append(s.Children, symbolConcurrent(n.Statements)...)
		return s
	case *ast.ArchitectureDecl:
		s := leaf(n.Identifier, n, SymbolClass)
		s.Children = append(s.Children, symbolDecls(n.Decls)...)
		s.Children = append(s.Children, symbolConcurrent(n.Statements)...)
		return s
	case *ast.PackageDecl:
		s := leaf(n.Identifier, n, SymbolModule)
		s.Children = symbolDecls(n.Decls)
		return s
	case *ast.PackageBodyDecl:
		s := leaf(n.Identifier, n, SymbolModule)
		s.Children = symbolDecls(n.Decls)
		return s
	case *ast.ConfigurationDecl:
		return leaf(n.Identifier, n, SymbolNamespace)
	}
	return DocumentSymbol{}
}

func leaf(id *ast.Ident, n ast.Node, kind SymbolKind) DocumentSymbol {
	return DocumentSymbol{Name: id.Text, Kind: kind, Range: n.Range(), SelectionRange: id.Range()}
}

func symbolInterfaceList(items []ast.DeclarativeItem, kind SymbolKind) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(items))
	for _, it := range items {
		if d, ok := it.(*ast.InterfaceDecl); ok {
			out = append(out, leaf(d.Identifier, d, kind))
		}
	}
	return out
}

func symbolDecls(items []ast.DeclarativeItem) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(items))
	for _, d := range items {
		switch n := d.(type) {
		case *ast.TypeDecl:
			out = append(out, symbolTypeDecl(n))
		case *ast.SubtypeDecl:
			out = append(out, leaf(n.Identifier, n, SymbolTypeParameter))
		case *ast.ObjectDecl:
			out = append(out, leaf(n.Identifier, n, objectSymbolKind(n.Class)))
		case *ast.InterfaceDecl:
			out = append(out, leaf(n.Identifier, n, objectSymbolKind(n.Class)))
		case *ast.AliasDecl:
			out = append(out, leaf(n.Designator, n, SymbolVariable))
		case *ast.SubprogramSpec:
			out = append(out, leaf(n.Designator, n, subprogramSymbolKind(n.Kind)))
		case *ast.SubprogramBody:
			s := leaf(n.Spec.Designator, n, subprogramSymbolKind(n.Spec.Kind))
			s.Children = symbolDecls(n.Decls)
			out = append(out, s)
		case *ast.ComponentDecl:
			s := leaf(n.Identifier, n, SymbolClass)
			for _, g := range n.GenericClause {
				s.Children = append(s.Children, leaf(g.Identifier, g, SymbolConstant))
			}
			for _, p := range n.PortClause {
				s.Children = append(s.Children, leaf(p.Identifier, p, SymbolProperty))
			}
			out = append(out, s)
		case *ast.AttributeDecl:
			out = append(out, leaf(n.Identifier, n, SymbolProperty))
		}
	}
	return out
}

func symbolTypeDecl(n *ast.TypeDecl) DocumentSymbol {
	kind := SymbolTypeParameter
	var children []DocumentSymbol
	switch def := n.Definition.(type) {
	case *ast.EnumerationType:
		kind = SymbolEnum
		for _, lit := range def.Literals {
			children = append(children, leaf(lit, lit, SymbolEnumMember))
		}
	case *ast.RecordType:
		kind = SymbolStruct
		for _, el := range def.Elements {
			children = append(children, leaf(el.Identifier, el.Identifier, SymbolField))
		}
	}
	s := leaf(n.Identifier, n, kind)
	s.Children = children
	return s
}

func objectSymbolKind(c ast.ObjectClass) SymbolKind {
	if c == ast.ClassConstant {
		return SymbolConstant
	}
	return SymbolVariable
}

func subprogramSymbolKind(k ast.SubprogramKind) SymbolKind {
	if k == ast.SubprogramFunction {
		return SymbolFunction
	}
	return SymbolMethod
}

func symbolSequential(items []ast.SequentialStatement) []DocumentSymbol {
	var out []DocumentSymbol
	for _, s := range items {
		if lbl := s.Label(); lbl != nil {
			out = append(out, leaf(lbl, s, SymbolEvent))
		}
	}
	return out
}

func symbolConcurrent(items []ast.ConcurrentStatement) []DocumentSymbol {
	var out []DocumentSymbol
	for _, s := range items {
		switch n := s.(type) {
		case *ast.ProcessStmt:
			if n.Lbl == nil {
				continue
			}
			sym := leaf(n.Lbl, n, SymbolEvent)
			sym.Children = append(symbolDecls(n.Decls), symbolSequential(n.Statements)...)
			out = append(out, sym)
		case *ast.BlockStmt:
			if n.Lbl == nil {
				continue
			}
			sym := leaf(n.Lbl, n, SymbolNamespace)
			sym.Children = append(symbolDecls(n.Decls), symbolConcurrent(n.Statements)...)
			out = append(out, sym)
		case *ast.GenerateStmt:
			if n.Lbl == nil {
				continue
			}
			sym := leaf(n.Lbl, n, SymbolNamespace)
			sym.Children = append(symbolDecls(n.Decls), symbolConcurrent(n.Statements)...)
			out = append(out, sym)
		case *ast.ComponentInstStmt:
			if n.Lbl == nil {
				continue
			}
			out = append(out, leaf(n.Lbl, n, SymbolConstructor))
		}
	}
	return out
}
