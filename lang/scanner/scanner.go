// Package scanner implements a hand-written lexer for the surface syntax
// consumed by lang/parser. Template literals are lexed cooperatively: the
// scanner reports the opening backtick and the parser drives the
// template-mode methods from there.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aiscript-lang/aiscript-go/lang/token"
)

// Error is a single scanning error with its source position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Token pairs a token kind with its literal text, numeric value (for NUM)
// and source position.
type Token struct {
	Kind token.Kind
	Lit  string
	Num  float64
	Pos  token.Pos
}

// Scanner tokenizes a single source chunk.
type Scanner struct {
	src  []byte
	errs []error

	off, roff int
	line, col int
	cur       rune
}

// New creates a Scanner over src.
func New(src []byte) *Scanner {
	s := &Scanner{src: src, line: 1, col: 0}
	s.advance()
	return s
}

// Errors returns all errors encountered so far.
func (s *Scanner) Errors() []error { return s.errs }

func (s *Scanner) errorf(pos token.Pos, format string, args ...any) {
	s.errs = append(s.errs, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) pos() token.Pos { return token.Pos{Line: s.line, Col: s.col} }

func (s *Scanner) peekByte() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advanceIf(r rune) bool {
	if s.cur == r {
		s.advance()
		return true
	}
	return false
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for s.cur == ' ' || s.cur == '\t' || s.cur == '\n' || s.cur == '\r' {
			s.advance()
		}
		if s.cur == '/' && s.peekByte() == '/' {
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
			continue
		}
		if s.cur == '/' && s.peekByte() == '*' {
			s.advance()
			s.advance()
			for !(s.cur == '*' && s.peekByte() == '/') && s.cur != -1 {
				s.advance()
			}
			if s.cur != -1 {
				s.advance()
				s.advance()
			}
			continue
		}
		break
	}
}

// Scan returns the next token in the source. At end of input it returns a
// token.EOF token forever.
func (s *Scanner) Scan() Token {
	s.skipWhitespaceAndComments()
	pos := s.pos()

	switch {
	case s.cur == -1:
		return Token{Kind: token.EOF, Pos: pos}
	case isLetter(s.cur):
		lit := s.scanIdent()
		return Token{Kind: token.Lookup(lit), Lit: lit, Pos: pos}
	case isDigit(s.cur):
		lit, val := s.scanNumber()
		return Token{Kind: token.NUM, Lit: lit, Num: val, Pos: pos}
	case s.cur == '"':
		lit := s.scanString('"')
		return Token{Kind: token.STR, Lit: lit, Pos: pos}
	}

	cur := s.cur
	s.advance()
	switch cur {
	case '+':
		if s.advanceIf('=') {
			return Token{Kind: token.PLUS_EQ, Pos: pos}
		}
		return Token{Kind: token.PLUS, Pos: pos}
	case '-':
		if s.advanceIf('=') {
			return Token{Kind: token.MINUS_EQ, Pos: pos}
		}
		return Token{Kind: token.MINUS, Pos: pos}
	case '*':
		if s.advanceIf('*') {
			return Token{Kind: token.STARSTAR, Pos: pos}
		}
		return Token{Kind: token.STAR, Pos: pos}
	case '/':
		return Token{Kind: token.SLASH, Pos: pos}
	case '%':
		return Token{Kind: token.PERCENT, Pos: pos}
	case '.':
		return Token{Kind: token.DOT, Pos: pos}
	case ',':
		return Token{Kind: token.COMMA, Pos: pos}
	case ':':
		if s.advanceIf(':') {
			return Token{Kind: token.COLONCOLON, Pos: pos}
		}
		return Token{Kind: token.COLON, Pos: pos}
	case ';':
		return Token{Kind: token.SEMI, Pos: pos}
	case '(':
		return Token{Kind: token.LPAREN, Pos: pos}
	case ')':
		return Token{Kind: token.RPAREN, Pos: pos}
	case '[':
		return Token{Kind: token.LBRACK, Pos: pos}
	case ']':
		return Token{Kind: token.RBRACK, Pos: pos}
	case '{':
		return Token{Kind: token.LBRACE, Pos: pos}
	case '}':
		return Token{Kind: token.RBRACE, Pos: pos}
	case '@':
		return Token{Kind: token.AT, Pos: pos}
	case '#':
		return Token{Kind: token.HASH, Pos: pos}
	case '?':
		return Token{Kind: token.QUESTION, Pos: pos}
	case '`':
		// template start; the parser scans the rest with ScanTemplateText.
		return Token{Kind: token.ILLEGAL, Lit: "`", Pos: pos}
	case '=':
		if s.advanceIf('=') {
			return Token{Kind: token.EQEQ, Pos: pos}
		}
		if s.advanceIf('>') {
			return Token{Kind: token.ARROW, Pos: pos}
		}
		return Token{Kind: token.EQ, Pos: pos}
	case '!':
		if s.advanceIf('=') {
			return Token{Kind: token.NEQ, Pos: pos}
		}
		return Token{Kind: token.BANG, Pos: pos}
	case '<':
		if s.advanceIf('=') {
			return Token{Kind: token.LE, Pos: pos}
		}
		if s.advanceIf(':') {
			// `<:` debug-print statement prefix.
			return Token{Kind: token.ILLEGAL, Lit: "<:", Pos: pos}
		}
		return Token{Kind: token.LT, Pos: pos}
	case '>':
		if s.advanceIf('=') {
			return Token{Kind: token.GE, Pos: pos}
		}
		return Token{Kind: token.GT, Pos: pos}
	case '&':
		if s.advanceIf('&') {
			return Token{Kind: token.AND, Pos: pos}
		}
	case '|':
		if s.advanceIf('|') {
			return Token{Kind: token.OR, Pos: pos}
		}
		return Token{Kind: token.PIPE, Pos: pos}
	}

	s.errorf(pos, "illegal character %q", cur)
	return Token{Kind: token.ILLEGAL, Lit: string(cur), Pos: pos}
}

func (s *Scanner) scanIdent() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) scanNumber() (string, float64) {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peekByte())) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	if s.cur == 'e' || s.cur == 'E' {
		save := s.off
		s.advance()
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		if isDigit(s.cur) {
			for isDigit(s.cur) {
				s.advance()
			}
		} else {
			// not actually an exponent, back off is not possible with this
			// single-pass scanner design, so just stop the number here; the `e`
			// will be scanned as a new identifier token.
			_ = save
		}
	}
	lit := string(s.src[start:s.off])
	val, _ := strconv.ParseFloat(lit, 64)
	return lit, val
}

// scanString scans a simple double-quoted string literal with \n \r \t \\
// \" and \uXXXX escapes, returning the decoded value.
func (s *Scanner) scanString(quote rune) string {
	s.advance() // opening quote
	var b strings.Builder
	for s.cur != quote && s.cur != -1 {
		if s.cur == '\\' {
			s.advance()
			switch s.cur {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '{':
				b.WriteByte('{')
			case '}':
				b.WriteByte('}')
			case 'u':
				s.advance()
				start := s.off
				for i := 0; i < 4 && isHex(s.cur); i++ {
					s.advance()
				}
				if n, err := strconv.ParseUint(string(s.src[start:s.off]), 16, 32); err == nil {
					b.WriteRune(rune(n))
				}
				continue
			default:
				b.WriteRune(s.cur)
			}
			s.advance()
			continue
		}
		b.WriteRune(s.cur)
		s.advance()
	}
	s.advanceIf(quote)
	return b.String()
}

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ScanTemplateText scans literal template text starting right after the
// opening backtick or a preceding `}`, until an unescaped `{` (interpolation
// start) or the closing backtick. It returns the decoded text, whether an
// interpolation follows, and advances the scanner past the `{` or the
// closing backtick accordingly. The parser drives template scanning: it
// calls this method directly instead of Scan() while inside a template.
func (s *Scanner) ScanTemplateText() (text string, hasInterp bool) {
	var b strings.Builder
	for {
		switch s.cur {
		case -1:
			return b.String(), false
		case '`':
			s.advance()
			return b.String(), false
		case '{':
			s.advance()
			return b.String(), true
		case '\\':
			s.advance()
			switch s.cur {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '`':
				b.WriteByte('`')
			case '{':
				b.WriteByte('{')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune(s.cur)
			}
			s.advance()
		default:
			b.WriteRune(s.cur)
			s.advance()
		}
	}
}

// AtBacktick reports whether the current character is the template
// delimiter, without consuming it.
func (s *Scanner) AtBacktick() bool { return s.cur == '`' }

// AdvancePastBacktick consumes the current backtick delimiter.
func (s *Scanner) AdvancePastBacktick() { s.advance() }

// Pos returns the scanner's current position, useful for the parser to
// report errors at the right place when switching lexing modes.
func (s *Scanner) Pos() token.Pos { return s.pos() }

// State is an opaque snapshot of the scanner's cursor, used by the parser to
// backtrack when a bounded lookahead needs to speculatively scan ahead (e.g.
// to tell a loop label apart from an attribute).
type State struct {
	off, roff, line, col int
	cur                  rune
}

// Save captures the current cursor position.
func (s *Scanner) Save() State {
	return State{off: s.off, roff: s.roff, line: s.line, col: s.col, cur: s.cur}
}

// Restore resets the cursor to a previously captured State. It does not
// un-report errors recorded since the snapshot; callers that backtrack past
// an illegal character should be prepared for a harmless stale error.
func (s *Scanner) Restore(st State) {
	s.off, s.roff, s.line, s.col, s.cur = st.off, st.roff, st.line, st.col, st.cur
}
