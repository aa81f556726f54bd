package binder

import "github.com/dj1mm/vhdlstuff-sub000/ast"

// resolveName dispatches on a Name's concrete shape, recursing into
// whatever sub-names/expressions it carries before setting its own
// denotes list.
func (b *Binder) resolveName(n ast.Name) {
	if n == nil {
		return
	}
	switch name := n.(type) {
	case *ast.SimpleName:
		b.resolveSimple(name)
	case *ast.SelectedName:
		b.resolveSelected(name)
	case *ast.SliceName:
		b.resolveName(name.Prefix)
		b.resolveRange(name.Range)
	case *ast.IndexOrCallName:
		b.resolveName(name.Prefix)
		b.resolveAssociations(name.Associations)
	case *ast.AttributeName:
		b.resolveName(name.Prefix)
		if name.Argument != nil {
			b.resolveExpr(name.Argument)
		}
	case *ast.QualifiedName:
		b.resolveName(name.TypeMark)
		if name.Value != nil {
			b.resolveExpr(name.Value)
		}
	case *ast.SignatureName:
		b.resolveName(name.Prefix)
		for _, p := range name.Parameters {
			b.resolveName(p)
		}
		if name.ReturnType != nil {
			b.resolveName(name.ReturnType)
		}
	}
}

// resolveSimple implements the walk of §4.7 exactly: collect matches at
// every region in the chain (following Extends in preference to Outer),
// without stopping at the first hit, then - only if nothing at all was
// found - retry against every potentially-visible shape reachable from the
// chain. A still-unresolved `work` denotes the work library.
func (b *Binder) resolveSimple(n *ast.SimpleName) {
	name := n.Identifier.Text
	var denotes []ast.Entity
	var chain []*Region
	for r := b.current; r != nil; {
		denotes = append(denotes, r.local(name)...)
		chain = append(chain, r)
		if r.Extends != nil {
			r = r.Extends
		} else {
			r = r.Outer
		}
	}
	if len(denotes) == 0 {
		for _, r := range chain {
			for _, shape := range r.PotentiallyVisible {
				denotes = append(denotes, shape.local(name)...)
			}
		}
	}
	if len(denotes) == 0 && name == "work" {
		// the work library is visible in every unit without a library clause
		denotes = append(denotes, &NamedEntity{Identifier: "work", Kind: KindLibrary})
	}
	if len(denotes) == 0 {
		b.errorf(n, "undefined identifier %q", name)
	}
	n.SetDenotes(denotes)
}

// resolveSelected implements the dispatch table of §4.7's "Selected name":
// resolve the prefix, then for each of its denotations decide how to find
// the suffix, based on that denotation's kind.
func (b *Binder) resolveSelected(n *ast.SelectedName) {
	b.resolveName(n.Prefix)
	if n.All {
		// A bare `prefix.all` outside of a use clause denotes nothing
		// further by itself; use clauses consume the prefix directly (see
		// processUse) rather than calling resolveSelected.
		return
	}
	if n.Suffix == nil {
		return
	}
	var denotes []ast.Entity
	for _, d := range n.Prefix.Denotes() {
		switch Kind(d.EntityKind()) {
		case KindLibrary:
			if b.Loader != nil {
				denotes = append(denotes, b.Loader.DemandLoad(d.EntityIdentifier(), n.Suffix.Text)...)
			}
		case KindEntity, KindArchitecture, KindConfiguration, KindPackage, KindPackageBody, KindFunction, KindProcedure:
			ne, ok := d.(*NamedEntity)
			if !ok || ne.Region == nil {
				continue
			}
			denotes = append(denotes, ne.Region.local(n.Suffix.Text)...)
		case KindConstant, KindSignal, KindVariable, KindElement:
			ne, ok := d.(*NamedEntity)
			if !ok || ne.Type == nil || ne.Type.Region == nil {
				continue
			}
			denotes = append(denotes, ne.Type.Region.local(n.Suffix.Text)...)
		case KindType, KindSubtype, KindAlias, KindComponent, KindFile:
			b.errorf(n, "selection not allowed on %s %q", d.EntityKind(), d.EntityIdentifier())
		}
	}
	n.SetDenotes(denotes)
}
