// Package scanner implements the hand-written VHDL tokenizer: classification
// of source bytes into tokens, an unbounded lookahead deque, and a
// checkpoint/backtrack stack so the parser can try a production and undo it.
package scanner

import (
	"strings"

	"github.com/dj1mm/vhdlstuff-sub000/errors"
	"github.com/dj1mm/vhdlstuff-sub000/interner"
	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// checkpointFrame records every token scanned (via Scan, not Peek) since it
// was pushed, so Backtrack can replay them.
type checkpointFrame struct {
	current  token.Token
	previous token.Token
	recorded []token.Token
}

// Scanner classifies a source buffer into a stream of tokens ending with
// EOF. It owns no bytes; src is referenced, not copied.
type Scanner struct {
	stream   *Stream
	filename string
	interner *interner.Interner
	diags    *errors.List
	version  token.Version

	buffer []token.Token // lookahead FIFO; buffer[0] is the next token Scan() will return

	current  token.Token
	previous token.Token
	started  bool

	checkpoints []*checkpointFrame

	// disambiguates 'x' (character literal) vs ' (tick) per §4.2: certain
	// preceding token kinds preclude the character-literal reading. Tracked
	// at raw-scan granularity (including tokens sitting unconsumed in the
	// peek buffer) because the disambiguation depends on stream order, not
	// on what the parser has actually consumed via Scan yet.
	streamLastKind token.Kind
}

// New creates a Scanner over src. filename is used to stamp every token's
// range; diags receives lexical diagnostics (nil is permitted: diagnostics
// are silently dropped).
func New(filename string, src []byte, in *interner.Interner, diags *errors.List, version token.Version) *Scanner {
	if diags == nil {
		diags = &errors.List{}
	}
	s := &Scanner{
		stream:   NewStream(src),
		filename: filename,
		interner: in,
		diags:    diags,
		version:  version,
	}
	return s
}

func (s *Scanner) error(rng token.Range, format string, args ...any) {
	s.diags.Addf(rng, format, args...)
}

func (s *Scanner) here() token.Position { return s.stream.Position() }

func (s *Scanner) rangeFrom(begin token.Position) token.Range {
	return token.Range{Filename: s.filename, Begin: begin, End: s.here()}
}

// CurrentToken returns the most recently scanned token (the one Scan last
// returned). Before the first Scan it is the zero Token.
func (s *Scanner) CurrentToken() token.Token { return s.current }

// PreviousToken returns the token scanned immediately before CurrentToken -
// the "last discarded token", always retrievable per §4.2 "Lookback".
func (s *Scanner) PreviousToken() token.Token { return s.previous }

// Diagnostics returns the accumulated lexical diagnostics.
func (s *Scanner) Diagnostics() errors.List { return *s.diags }

// Scan advances one token and returns it: taking the first token on the
// lookahead buffer if Peek has already filled it, else classifying directly
// from the stream.
func (s *Scanner) Scan() token.Token {
	var tok token.Token
	if len(s.buffer) > 0 {
		tok = s.buffer[0]
		s.buffer = s.buffer[1:]
	} else {
		tok = s.rawScan()
	}

	s.previous = s.current
	s.current = tok
	s.started = true

	for _, f := range s.checkpoints {
		f.recorded = append(f.recorded, tok)
	}
	return tok
}

// Peek returns the token n positions ahead without advancing: Peek(0) is
// equivalent to CurrentToken's successor context and returns the same value
// Scan would return next; values beyond EOF saturate at EOF.
func (s *Scanner) Peek(n int) token.Token {
	for len(s.buffer) <= n {
		if len(s.buffer) > 0 && s.buffer[len(s.buffer)-1].Kind == token.EOF {
			break
		}
		s.buffer = append(s.buffer, s.rawScan())
	}
	if n >= len(s.buffer) {
		return s.buffer[len(s.buffer)-1]
	}
	return s.buffer[n]
}

// AddCheckpoint snapshots the current/previous token and begins recording
// every subsequent Scan so Backtrack can undo them.
func (s *Scanner) AddCheckpoint() {
	s.checkpoints = append(s.checkpoints, &checkpointFrame{
		current:  s.current,
		previous: s.previous,
	})
}

// HasCheckpoint reports whether an active checkpoint exists.
func (s *Scanner) HasCheckpoint() bool { return len(s.checkpoints) > 0 }

// Backtrack restores current/previous to the last checkpoint and replays
// every token recorded since, prepending them to the lookahead buffer so
// subsequent Scan calls reproduce them exactly. Does nothing without an
// active checkpoint.
func (s *Scanner) Backtrack() {
	if len(s.checkpoints) == 0 {
		return
	}
	last := len(s.checkpoints) - 1
	f := s.checkpoints[last]
	s.checkpoints = s.checkpoints[:last]

	s.current = f.current
	s.previous = f.previous
	s.buffer = append(append([]token.Token{}, f.recorded...), s.buffer...)
}

// DropCheckpoint discards the top checkpoint. If an enclosing checkpoint
// exists, its recording absorbs the dropped frame's tokens so a later
// backtrack to the parent still replays everything since the parent began.
func (s *Scanner) DropCheckpoint() {
	if len(s.checkpoints) == 0 {
		return
	}
	last := len(s.checkpoints) - 1
	f := s.checkpoints[last]
	s.checkpoints = s.checkpoints[:last]
	if len(s.checkpoints) > 0 {
		parent := s.checkpoints[len(s.checkpoints)-1]
		parent.recorded = append(parent.recorded, f.recorded...)
	}
}

// LookParams configures LookFor's scan of the peek buffer.
type LookParams struct {
	Look  []token.Kind // success: one of these kinds was found
	Stop  []token.Kind // failure: one of these kinds was found at Depth
	Abort token.Kind   // failure: this kind was found at any depth
	NestIn  token.Kind // increments tracked nesting
	NestOut token.Kind // decrements tracked nesting
	Depth   int        // the nesting level at which Stop is active
}

// LookFor scans forward through the peek buffer (extending it as needed,
// without disturbing CurrentToken/PreviousToken) until one of params.Look is
// found at any depth (true), one of params.Stop is found while the tracked
// nesting equals params.Depth (false), params.Abort is found at any depth
// (false), or end of file is reached (false).
func (s *Scanner) LookFor(params LookParams) bool {
	depth := 0
	for i := 0; ; i++ {
		tok := s.Peek(i)
		if tok.Kind == token.EOF {
			return false
		}
		if tok.Kind == params.Abort {
			return false
		}
		for _, k := range params.Look {
			if tok.Kind == k {
				return true
			}
		}
		if depth == params.Depth {
			for _, k := range params.Stop {
				if tok.Kind == k {
					return false
				}
			}
		}
		switch {
		case params.NestIn != token.ILLEGAL && tok.Kind == params.NestIn:
			depth++
		case params.NestOut != token.ILLEGAL && tok.Kind == params.NestOut:
			depth--
		}
	}
}

// rawScan classifies exactly one token directly from the stream, skipping
// whitespace and comments first. It never panics: non-conforming lexemes
// emit a diagnostic and resolve to a substituted canonical token or ILLEGAL.
func (s *Scanner) rawScan() token.Token {
	tok := s.rawScanOne()
	s.streamLastKind = tok.Kind
	return tok
}

func (s *Scanner) rawScanOne() token.Token {
	s.skipTrivia()

	begin := s.here()
	if s.stream.AtEnd() {
		return token.New(token.EOF, interner.View{}, s.rangeFrom(begin))
	}

	c := s.stream.Current()
	switch {
	case IsLetter(c):
		return s.scanIdentifierOrKeyword(begin)
	case c == '\\':
		return s.scanExtendedIdentifier(begin)
	case IsDigit(c):
		return s.scanNumberOrBitString(begin)
	case c == '"':
		return s.scanString(begin, '"')
	case c == '\'':
		return s.scanTickOrCharacter(begin)
	default:
		return s.scanDelimiter(begin, c)
	}
}

func (s *Scanner) skipTrivia() {
	for !s.stream.AtEnd() {
		c := s.stream.Current()
		switch {
		case IsSpaceCharacter(c):
			s.stream.Advance(1)
		case c == '-' && s.stream.LookAhead(1) == '-':
			s.stream.SkipToEOL()
		case c == '/' && s.stream.LookAhead(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a VHDL-2008 block comment /* ... */. An
// unterminated block comment emits a diagnostic and consumes to EOF.
func (s *Scanner) skipBlockComment() {
	begin := s.here()
	s.stream.Advance(2)
	for {
		if s.stream.AtEnd() {
			s.error(s.rangeFrom(begin), "unterminated block comment")
			return
		}
		if s.stream.Current() == '*' && s.stream.LookAhead(1) == '/' {
			s.stream.Advance(2)
			return
		}
		s.stream.Advance(1)
	}
}

// bitStringBases is the set of base specifiers recognized before a string
// delimiter, LRM §13.7 (extended with VHDL-2008's signed forms).
var bitStringBases = map[string]bool{
	"b": true, "o": true, "x": true, "d": true,
	"ub": true, "uo": true, "ux": true,
	"sb": true, "so": true, "sx": true,
}

func (s *Scanner) scanIdentifierOrKeyword(begin token.Position) token.Token {
	start := s.stream.Offset()
	for !s.stream.AtEnd() {
		c := s.stream.Current()
		if IsLetterOrDigit(c) || c == '_' {
			s.stream.Advance(1)
			continue
		}
		break
	}
	lit := s.rawSlice(start, s.stream.Offset())
	if bitStringBases[strings.ToLower(lit)] && s.stream.Current() == '"' {
		return s.scanBitString(begin, lit)
	}
	kind := token.Lookup(lit)
	view := interner.View{}
	if kind == token.IDENT {
		view = s.interner.InternFold(lit)
	}
	if kind.IsKeyword() {
		if v, gated := token.IntroducedIn(kind); gated {
			_ = v // compared against s.version just below
			if s.versionBefore(v) {
				s.error(s.rangeFrom(begin), "%q is a reserved word only from VHDL-%s onward", lit, versionName(v))
			}
		}
	}
	return token.New(kind, view, s.rangeFrom(begin))
}

func (s *Scanner) versionBefore(v token.Version) bool { return s.version < v }

func versionName(v token.Version) string {
	switch v {
	case token.VHDL87:
		return "87"
	case token.VHDL93:
		return "93"
	case token.VHDL02:
		return "02"
	case token.VHDL08:
		return "08"
	}
	return "?"
}

// scanBitString scans the string-literal body of a bit string literal whose
// base specifier (b/o/x/d, or a sign-extended form) was already consumed.
func (s *Scanner) scanBitString(begin token.Position, base string) token.Token {
	s.stream.Advance(1) // opening quote
	contentStart := s.stream.Offset()
	for {
		if s.stream.AtEnd() || s.stream.Current() == '\n' {
			s.error(s.rangeFrom(begin), "unterminated bit string literal")
			break
		}
		if s.stream.Current() == '"' {
			break
		}
		c := s.stream.Current()
		if !IsBasedLetter(c) && c != '_' {
			s.error(s.rangeFrom(begin), "invalid character %q in bit string literal", c)
		}
		s.stream.Advance(1)
	}
	content := s.rawSlice(contentStart, s.stream.Offset())
	if !s.stream.AtEnd() {
		s.stream.Advance(1) // closing quote
	}
	lit := strings.ToLower(base) + `"` + content + `"`
	return token.New(token.BITSTRING, s.interner.InternString(lit), s.rangeFrom(begin))
}

// scanExtendedIdentifier scans \ ... \ with doubled-backslash escaping, per
// LRM §13.3. Extended identifiers are case-sensitive and never folded.
func (s *Scanner) scanExtendedIdentifier(begin token.Position) token.Token {
	s.stream.Advance(1) // opening backslash
	var b strings.Builder
	for {
		if s.stream.AtEnd() || s.stream.Current() == '\n' {
			s.error(s.rangeFrom(begin), "unterminated extended identifier")
			break
		}
		c := s.stream.Current()
		if c == '\\' {
			if s.stream.LookAhead(1) == '\\' {
				b.WriteByte('\\')
				s.stream.Advance(2)
				continue
			}
			s.stream.Advance(1)
			break
		}
		if !IsGraphicCharacter(c) {
			s.error(s.rangeFrom(begin), "invalid graphic character in extended identifier")
		}
		b.WriteByte(c)
		s.stream.Advance(1)
	}
	if b.Len() == 0 {
		s.error(s.rangeFrom(begin), "extended identifier must not be empty")
	}
	view := s.interner.InternString(b.String())
	return token.New(token.EXTIDENT, view, s.rangeFrom(begin))
}

// scanNumberOrBitString scans integer, based and real literals (LRM §13.4).
// Bit string literals (LRM §13.7) start with a base letter, not a digit, and
// are recognised by scanIdentifierOrKeyword instead.
func (s *Scanner) scanNumberOrBitString(begin token.Position) token.Token {
	start := s.stream.Offset()
	s.consumeDigitsAndUnderscores()

	if s.stream.Current() == '#' {
		return s.scanBasedLiteral(begin, start)
	}

	isFloat := false
	if s.stream.Current() == '.' && IsDigit(s.stream.LookAhead(1)) {
		isFloat = true
		s.stream.Advance(1)
		s.consumeDigitsAndUnderscores()
	}
	if c := s.stream.Current(); c == 'e' || c == 'E' {
		s.scanExponent()
		isFloat = true
	}

	lit := s.rawSlice(start, s.stream.Offset())
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	view := s.interner.InternString(lit)
	return token.New(kind, view, s.rangeFrom(begin))
}

func (s *Scanner) consumeDigitsAndUnderscores() {
	for {
		c := s.stream.Current()
		if IsDigit(c) || (c == '_' && IsDigit(s.stream.LookAhead(1))) {
			s.stream.Advance(1)
			continue
		}
		break
	}
}

func (s *Scanner) scanExponent() {
	s.stream.Advance(1) // e/E
	if c := s.stream.Current(); c == '+' || c == '-' {
		s.stream.Advance(1)
	}
	s.consumeDigitsAndUnderscores()
}

// scanBasedLiteral handles `base # based-integer [ . based-integer ] #
// [ exponent ]` (LRM §13.4.2), entered once the leading base digits have
// been consumed and the current character is '#'.
func (s *Scanner) scanBasedLiteral(begin token.Position, start int) token.Token {
	s.stream.Advance(1) // '#'
	for IsBasedLetter(s.stream.Current()) || s.stream.Current() == '_' {
		s.stream.Advance(1)
	}
	isFloat := false
	if s.stream.Current() == '.' {
		isFloat = true
		s.stream.Advance(1)
		for IsBasedLetter(s.stream.Current()) || s.stream.Current() == '_' {
			s.stream.Advance(1)
		}
	}
	if s.stream.Current() == '#' {
		s.stream.Advance(1)
	} else {
		s.error(s.rangeFrom(begin), "based literal missing closing '#'")
	}
	if c := s.stream.Current(); c == 'e' || c == 'E' {
		s.scanExponent()
		isFloat = true
	}
	lit := s.rawSlice(start, s.stream.Offset())
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.New(kind, s.interner.InternString(lit), s.rangeFrom(begin))
}

// scanString scans a string literal, LRM §13.6: a doubled quote delimiter
// inside the literal is an escaped quote character, not a terminator.
func (s *Scanner) scanString(begin token.Position, quote byte) token.Token {
	s.stream.Advance(1)
	var b strings.Builder
	for {
		if s.stream.AtEnd() || s.stream.Current() == '\n' {
			s.error(s.rangeFrom(begin), "unterminated string literal")
			break
		}
		c := s.stream.Current()
		if c == quote {
			if s.stream.LookAhead(1) == quote {
				b.WriteByte(quote)
				s.stream.Advance(2)
				continue
			}
			s.stream.Advance(1)
			break
		}
		if !IsGraphicCharacter(c) {
			s.error(s.rangeFrom(begin), "invalid graphic character in string literal")
		}
		b.WriteByte(c)
		s.stream.Advance(1)
	}
	return token.New(token.STRING, s.interner.InternString(b.String()), s.rangeFrom(begin))
}

// scanTickOrCharacter disambiguates a character literal 'x' from a tick
// used in an attribute name or qualified expression, per §4.2: certain
// previously-returned token kinds (a closing paren/bracket, `all`, or an
// identifier) preclude the character-literal reading because a character
// literal can never immediately follow one of those.
func (s *Scanner) scanTickOrCharacter(begin token.Position) token.Token {
	if s.precludesCharacterLiteral() || !s.looksLikeCharacterLiteral() {
		s.stream.Advance(1)
		return token.New(token.TICK, interner.View{}, s.rangeFrom(begin))
	}

	s.stream.Advance(1) // opening '
	c := s.stream.Current()
	if !IsGraphicCharacter(c) {
		s.error(s.rangeFrom(begin), "invalid graphic character in character literal")
	}
	s.stream.Advance(1)
	s.stream.Advance(1) // closing '
	return token.New(token.CHAR, s.interner.InternString(string(c)), s.rangeFrom(begin))
}

func (s *Scanner) precludesCharacterLiteral() bool {
	switch s.streamLastKind {
	case token.RPAREN, token.RBRACKET, token.ALL, token.IDENT, token.EXTIDENT,
		token.INT, token.FLOAT, token.STRING, token.CHAR, token.BITSTRING, token.TICK:
		return true
	}
	return false
}

// looksLikeCharacterLiteral peeks at the raw bytes (not yet consumed) to
// confirm the `'x'` shape without disturbing the stream.
func (s *Scanner) looksLikeCharacterLiteral() bool {
	return s.stream.LookAhead(1) != 0 && IsGraphicCharacter(s.stream.LookAhead(1)) && s.stream.LookAhead(2) == '\''
}

func (s *Scanner) scanDelimiter(begin token.Position, c byte) token.Token {
	single := func(k token.Kind) token.Token {
		s.stream.Advance(1)
		return token.New(k, interner.View{}, s.rangeFrom(begin))
	}
	double := func(k token.Kind) token.Token {
		s.stream.Advance(2)
		return token.New(k, interner.View{}, s.rangeFrom(begin))
	}

	switch c {
	case '&':
		return single(token.AMPERSAND)
	case '(':
		return single(token.LPAREN)
	case ')':
		return single(token.RPAREN)
	case '+':
		return single(token.PLUS)
	case ',':
		return single(token.COMMA)
	case '.':
		return single(token.DOT)
	case ';':
		return single(token.SEMICOLON)
	case '[':
		return single(token.LBRACKET)
	case ']':
		return single(token.RBRACKET)
	case '|':
		return single(token.BAR)
	case '*':
		if s.stream.LookAhead(1) == '*' {
			return double(token.DOUBLESTAR)
		}
		return single(token.STAR)
	case '-':
		return single(token.MINUS)
	case '/':
		if s.stream.LookAhead(1) == '=' {
			return double(token.NE)
		}
		return single(token.SLASH)
	case ':':
		if s.stream.LookAhead(1) == '=' {
			return double(token.ASSIGN)
		}
		return single(token.COLON)
	case '<':
		switch s.stream.LookAhead(1) {
		case '=':
			return double(token.LE)
		case '>':
			return double(token.BOX)
		}
		return single(token.LT)
	case '=':
		if s.stream.LookAhead(1) == '>' {
			return double(token.ARROW)
		}
		return single(token.EQ)
	case '>':
		if s.stream.LookAhead(1) == '=' {
			return double(token.GE)
		}
		return single(token.GT)
	default:
		s.error(s.rangeFrom(begin), "invalid character %q", c)
		s.stream.Advance(1)
		return token.New(token.ILLEGAL, interner.View{}, s.rangeFrom(begin))
	}
}

func (s *Scanner) rawSlice(start, end int) string {
	return s.stream.Slice(start, end)
}
