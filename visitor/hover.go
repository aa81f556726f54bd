package visitor

import (
	"fmt"
	"strings"

	"github.com/dj1mm/vhdlstuff-sub000/ast"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// Hover is the wire shape §6 names for the hover request.
type Hover struct {
	Kind     string // always "markdown"
	Contents string
}

// HoverProvider is the read-only traversal of §4.10 producing a one-line
// markdown summary for the name at a cursor position: single denotation
// -> declaration summary, multiple -> overload count, none -> "not found".
type HoverProvider struct{}

// Hover returns the hover payload for pos in file, or nil if pos is not
// inside any name.
func (HoverProvider) Hover(file *ast.DesignFile, pos token.Position) *Hover {
	nm := nameAt(file, pos)
	if nm == nil {
		return nil
	}
	denotes := nm.Denotes()
	switch len(denotes) {
	case 0:
		return &Hover{Kind: "markdown", Contents: "not found"}
	case 1:
		return &Hover{Kind: "markdown", Contents: declarationSummary(denotes[0])}
	default:
		kinds := make([]string, 0, len(denotes))
		for _, e := range denotes {
			kinds = append(kinds, e.EntityKind())
		}
		return &Hover{
			Kind:     "markdown",
			Contents: fmt.Sprintf("%d overloads (%s)", len(denotes), strings.Join(kinds, ", ")),
		}
	}
}

// declarationSummary renders a single denotation as a one-line markdown
// declaration of its kind and identifier, e.g. "`signal clk`"; the
// declared type is not included.
func declarationSummary(e ast.Entity) string {
	return fmt.Sprintf("`%s %s`", e.EntityKind(), e.EntityIdentifier())
}
