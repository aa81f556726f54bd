package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

func newTestScanner(t *testing.T, src string) (*Scanner, *errors.List) {
	t.Helper()
	var diags errors.List
	in := interner.New()
	return New("test.vhd", []byte(src), in, &diags, token.VHDL08), &diags
}

func TestCheckpointBacktrackReplaysIdenticalTokens(t *testing.T) {
	s, _ := newTestScanner(t, "id1 id2 ; id3")

	s.AddCheckpoint()
	first := s.Scan()
	second := s.Scan()
	require.Equal(t, token.IDENT, first.Kind)
	require.Equal(t, "id1", first.Text())
	require.Equal(t, token.IDENT, second.Kind)
	require.Equal(t, "id2", second.Text())

	s.Backtrack()

	replay1 := s.Scan()
	replay2 := s.Scan()
	assert.Equal(t, first, replay1)
	assert.Equal(t, second, replay2)
	assert.NotEqual(t, token.SEMICOLON, replay1.Kind)
}

func TestScanTracksCurrentAndPreviousToken(t *testing.T) {
	s, _ := newTestScanner(t, "signal a : bit;")
	tok := s.Scan()
	assert.Equal(t, tok, s.current)
	prevBefore := s.current
	next := s.Scan()
	assert.Equal(t, prevBefore, s.PreviousToken())
	_ = next
}

func TestNestedCheckpointDropAppendsToParent(t *testing.T) {
	s, _ := newTestScanner(t, "a b c d")

	s.AddCheckpoint()
	s.Scan() // a
	s.AddCheckpoint()
	s.Scan() // b
	s.DropCheckpoint()
	s.Scan() // c

	s.Backtrack() // back to first checkpoint: should replay a, b, c

	toks := []string{s.Scan().Text(), s.Scan().Text(), s.Scan().Text()}
	assert.Equal(t, []string{"a", "b", "c"}, toks)
}

func TestLookForRespectsNestingDepth(t *testing.T) {
	s, _ := newTestScanner(t, "( a , b ) to")
	ok := s.LookFor(LookParams{
		Look:    []token.Kind{token.TO},
		Stop:    []token.Kind{token.COMMA},
		NestIn:  token.LPAREN,
		NestOut: token.RPAREN,
		Depth:   0,
	})
	assert.True(t, ok)
}

func TestLookForStopsAtDepthZeroComma(t *testing.T) {
	s, _ := newTestScanner(t, "a , b")
	ok := s.LookFor(LookParams{
		Look:  []token.Kind{token.TO},
		Stop:  []token.Kind{token.COMMA},
		Depth: 0,
	})
	assert.False(t, ok)
}

func TestLookForReturnsFalseAtEOFWithoutOverreading(t *testing.T) {
	s, _ := newTestScanner(t, "a b")
	ok := s.LookFor(LookParams{Look: []token.Kind{token.TO}, Depth: 0})
	assert.False(t, ok)
	// the buffer must not have advanced current/previous
	assert.False(t, s.started)
}

func TestDoubledQuoteStringLiteral(t *testing.T) {
	s, _ := newTestScanner(t, `"a""b"`)
	tok := s.Scan()
	require.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, `a"b`, tok.Text())
}

func TestExtendedIdentifierIsCaseSensitive(t *testing.T) {
	s, diags := newTestScanner(t, `\Foo\ \foo\`)
	a := s.Scan()
	b := s.Scan()
	require.Equal(t, token.EXTIDENT, a.Kind)
	require.Equal(t, token.EXTIDENT, b.Kind)
	assert.NotEqual(t, a.Value, b.Value)
	assert.Equal(t, 0, diags.Len())
}

func TestBasicIdentifiersFoldCase(t *testing.T) {
	s, _ := newTestScanner(t, "CLK clk")
	a := s.Scan()
	b := s.Scan()
	assert.True(t, a.Value.Equal(b.Value))
}

func TestBitStringLiteral(t *testing.T) {
	s, _ := newTestScanner(t, `X"FF"`)
	tok := s.Scan()
	require.Equal(t, token.BITSTRING, tok.Kind)
	assert.Equal(t, `x"FF"`, tok.Text())
}

func TestBasedLiteral(t *testing.T) {
	s, _ := newTestScanner(t, "16#FF#")
	tok := s.Scan()
	require.Equal(t, token.INT, tok.Kind)
}

func TestCharacterLiteralDisambiguation(t *testing.T) {
	s, _ := newTestScanner(t, "a'b' (c)'d'")
	idA := s.Scan()
	require.Equal(t, token.IDENT, idA.Kind)
	tick := s.Scan()
	require.Equal(t, token.TICK, tick.Kind) // after identifier, ' is a tick
	_ = s.Scan()                            // b
	_ = s.Scan()                            // '

	_ = s.Scan() // (
	_ = s.Scan() // c
	_ = s.Scan() // )
	afterParen := s.Scan()
	require.Equal(t, token.TICK, afterParen.Kind) // after ), ' is also a tick
}

func TestRangeInvariantHoldsForEveryToken(t *testing.T) {
	s, _ := newTestScanner(t, "entity foo is end entity foo;")
	for {
		tok := s.Scan()
		assert.True(t, tok.Range.Begin.LessEq(tok.Range.End))
		if tok.Kind == token.EOF {
			break
		}
	}
}
