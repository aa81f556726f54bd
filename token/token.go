package token

import "github.com/dj1mm/vhdlstuff-sub000/interner"

// Token is one lexeme produced by the scanner: its classification, its
// interned text, its source range, and the small set of boolean
// classification flags callers consult most often without a Kind switch.
type Token struct {
	Kind  Kind
	Value interner.View
	Range Range

	IsDelimiter  bool
	IsIdentifier bool
	IsLiteral    bool
	IsKeyword    bool
}

// New builds a Token and derives its classification flags from kind.
func New(kind Kind, value interner.View, rng Range) Token {
	return Token{
		Kind:         kind,
		Value:        value,
		Range:        rng,
		IsDelimiter:  kind.IsDelimiter(),
		IsIdentifier: kind.IsIdentifier(),
		IsLiteral:    kind.IsLiteral(),
		IsKeyword:    kind.IsKeyword(),
	}
}

// Text returns the token's interned text, or its canonical printable form
// (e.g. "=>" for ARROW, "end" for END) for tokens that carry no payload.
func (t Token) Text() string {
	if !t.Value.IsZero() {
		return t.Value.String()
	}
	return t.Kind.String()
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Text() + " @ " + t.Range.String()
}
