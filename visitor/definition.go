package visitor

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/binder"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// DefinitionTarget is the wire shape §6 names for the definition request,
// one entry per denotation.
type DefinitionTarget struct {
	TargetURI            string
	TargetRange          token.Range
	TargetSelectionRange token.Range
}

// DefinitionProvider is the read-only traversal of §4.10 sharing
// nameAt's guided descent with HoverProvider but emitting one target per
// denotation instead of a rendered summary.
type DefinitionProvider struct{}

// Definition returns one target per denotation of the name at pos, or nil
// if pos is not inside any resolved name.
func (DefinitionProvider) Definition(file *ast.DesignFile, pos token.Position) []DefinitionTarget {
	nm := nameAt(file, pos)
	if nm == nil {
		return nil
	}
	denotes := nm.Denotes()
	if len(denotes) == 0 {
		return nil
	}
	out := make([]DefinitionTarget, 0, len(denotes))
	for _, e := range denotes {
		full, selection, uri := declarationLocation(e)
		if !full.IsValid() {
			continue
		}
		out = append(out, DefinitionTarget{TargetURI: uri, TargetRange: full, TargetSelectionRange: selection})
	}
	return out
}

// declarationLocation recovers the declaring node's range (and, where
// recognisable, its identifier's narrower selection range) from an
// ast.Entity. Only *binder.NamedEntity values carry a declaring node in
// this implementation; any other ast.Entity yields an invalid range and is
// skipped by the caller.
func declarationLocation(e ast.Entity) (full, selection token.Range, uri string) {
	ne, ok := e.(*binder.NamedEntity)
	if !ok || ne.Node == nil {
		return token.NoRange, token.NoRange, ""
	}
	full = ne.Node.Range()
	uri = full.Filename
	selection = identifierRange(ne.Node)
	if !selection.IsValid() {
		selection = full
	}
	return full, selection, uri
}

func identifierRange(n ast.Node) token.Range {
	switch node := n.(type) {
	case *ast.EntityDecl:
		return node.Identifier.Range()
	case *ast.ArchitectureDecl:
		return node.Identifier.Range()
	case *ast.PackageDecl:
		return node.Identifier.Range()
	case *ast.PackageBodyDecl:
		return node.Identifier.Range()
	case *ast.ConfigurationDecl:
		return node.Identifier.Range()
	case *ast.TypeDecl:
		return node.Identifier.Range()
	case *ast.SubtypeDecl:
		return node.Identifier.Range()
	case *ast.ObjectDecl:
		return node.Identifier.Range()
	case *ast.InterfaceDecl:
		return node.Identifier.Range()
	case *ast.AliasDecl:
		return node.Designator.Range()
	case *ast.SubprogramSpec:
		return node.Designator.Range()
	case *ast.SubprogramBody:
		return node.Spec.Designator.Range()
	case *ast.ComponentDecl:
		return node.Identifier.Range()
	case *ast.AttributeDecl:
		return node.Identifier.Range()
	case *ast.Ident:
		return node.Range()
	default:
		return token.NoRange
	}
}
