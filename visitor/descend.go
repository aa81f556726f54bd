package visitor

import (
	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// nameAt performs the guided descent §4.10 describes for hover and
// definition: prune any subtree whose range does not contain pos, and
// return the innermost ast.Name whose range does. Walk visits a parent
// before its children, so the last matching Name found as the descent
// narrows is the most specific one.
func nameAt(file *ast.DesignFile, pos token.Position) ast.Name {
	var found ast.Name
	ast.Walk(file, func(n ast.Node) bool {
		if !n.Range().Contains(pos) {
			return false
		}
		if nm, ok := n.(ast.Name); ok {
			found = nm
		}
		return true
	}, nil)
	return found
}
