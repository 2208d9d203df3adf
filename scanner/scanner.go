package scanner

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/whitten/less4j/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Scanner breaks LESS selector text into lexical tokens.
//
// Every returned token, including whitespace, is assigned the next stream
// index. Comments are dropped and do not take up an index.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	rd    io.RuneReader
	pos   token.Pos // position of the next rune read from rd
	index int       // index of the next token

	buf    [4]rune      // circular buffer for runes
	bufpos [4]token.Pos // circular buffer for position
	bufi   int          // circular buffer index
	bufn   int          // number of buffered characters
}

// New returns a new instance of Scanner.
func New(r io.Reader) *Scanner {
	return &Scanner{
		rd: bufio.NewReader(r),
	}
}

// Scan returns the next token from the stream. Once the end of the stream is
// reached it keeps returning EOF tokens.
func (s *Scanner) Scan() token.Token {
	tok := s.scan()
	tok.Index = s.index
	s.index++
	return tok
}

func (s *Scanner) scan() token.Token {
	for {
		// Read next code point.
		ch := s.read()
		pos := s.Pos()

		switch {
		case ch == eof:
			return token.Token{Kind: token.EOF, Pos: pos}
		case isWhitespace(ch):
			return s.scanWhitespace()
		case ch == '"' || ch == '\'':
			return s.scanString()
		case ch == '#':
			return s.scanHash()
		case ch == '/':
			// Comments are ignored by the scanner so restart the loop from
			// the end of the comment and get the next token.
			if ch1 := s.read(); ch1 == '*' {
				s.scanComment()
				continue
			}
			s.unread(1)
			return token.Token{Kind: token.Slash, Value: "/", Pos: pos}
		case ch == '$':
			return s.scanMatch(token.SuffixMatch, token.Delim, pos)
		case ch == '*':
			return s.scanMatch(token.SubstringMatch, token.Star, pos)
		case ch == '^':
			return s.scanMatch(token.PrefixMatch, token.Caret, pos)
		case ch == '~':
			return s.scanMatch(token.IncludeMatch, token.Tilde, pos)
		case ch == '|':
			return s.scanMatch(token.DashMatch, token.Pipe, pos)
		case ch == '-':
			// A hyphen starts an identifier or a number, otherwise it is a delim.
			ch1 := s.read()
			s.unread(2)
			if isDigit(ch1) {
				s.read()
				return s.scanNumber(pos)
			}
			s.read()
			if s.peekIdent() {
				return s.scanIdent()
			}
			return token.Token{Kind: token.Delim, Value: "-", Pos: pos}
		case isDigit(ch):
			return s.scanNumber(pos)
		case ch == '\\':
			// Return a valid escape, if possible.
			if s.peekEscape() {
				return s.scanIdent()
			}
			// Otherwise this is a parse error but continue on as a DELIM.
			s.Errors = append(s.Errors, &Error{Message: "unescaped \\", Pos: pos})
			return token.Token{Kind: token.Delim, Value: "\\", Pos: pos}
		case isNameStart(ch):
			return s.scanIdent()
		}

		if kind, ok := punctuation[ch]; ok {
			return token.Token{Kind: kind, Value: string(ch), Pos: pos}
		}
		return token.Token{Kind: token.Delim, Value: string(ch), Pos: pos}
	}
}

// punctuation maps single code points to their token kinds.
var punctuation = map[rune]token.Kind{
	',': token.Comma,
	':': token.Colon,
	'.': token.Dot,
	'&': token.Ampersand,
	'>': token.Greater,
	'+': token.Plus,
	'=': token.Equals,
	'[': token.LBrack,
	']': token.RBrack,
	'(': token.LParen,
	')': token.RParen,
}

// scanMatch returns a match token if the current code point is followed by
// an equals sign. Otherwise it returns a token of the fallback kind.
func (s *Scanner) scanMatch(match, fallback token.Kind, pos token.Pos) token.Token {
	ch := s.curr()
	if next := s.read(); next == '=' {
		return token.Token{Kind: match, Value: string(ch) + "=", Pos: pos}
	}
	s.unread(1)
	return token.Token{Kind: fallback, Value: string(ch), Pos: pos}
}

// scanWhitespace consumes the current code point and all subsequent whitespace.
func (s *Scanner) scanWhitespace() token.Token {
	pos := s.Pos()
	var buf bytes.Buffer
	_, _ = buf.WriteRune(s.curr())
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if !isWhitespace(ch) {
			s.unread(1)
			break
		}
		_, _ = buf.WriteRune(ch)
	}
	return token.Token{Kind: token.Whitespace, Value: buf.String(), Pos: pos}
}

// scanString consumes a quoted string.
//
// This assumes that the current code point is a single or double quote.
// An EOF closes out a string but does not return an error.
// An unescaped newline closes the string and records an error.
func (s *Scanner) scanString() token.Token {
	pos, ending := s.Pos(), s.curr()
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof || ch == ending {
			return token.Token{Kind: token.String, Value: buf.String(), Ending: ending, Pos: pos}
		} else if ch == '\n' {
			s.unread(1)
			s.Errors = append(s.Errors, &Error{Message: "unterminated string", Pos: pos})
			return token.Token{Kind: token.String, Value: buf.String(), Ending: ending, Pos: pos}
		} else if ch == '\\' {
			if s.peekEscape() {
				_, _ = buf.WriteRune(s.scanEscape())
				continue
			}
			if next := s.read(); next == eof {
				continue
			} else if next == '\n' {
				_, _ = buf.WriteRune(next)
			}
		} else {
			_, _ = buf.WriteRune(ch)
		}
	}
}

// scanNumber consumes digits, an optional fraction and any trailing name code
// points, so "2n" and "10px" come back as a single number token.
//
// This assumes that the current code point is a hyphen or a digit.
func (s *Scanner) scanNumber(pos token.Pos) token.Token {
	var buf bytes.Buffer
	_, _ = buf.WriteRune(s.curr())
	_, _ = buf.WriteString(s.scanDigits())

	if ch0 := s.read(); ch0 == '.' {
		if ch1 := s.read(); isDigit(ch1) {
			_, _ = buf.WriteRune(ch0)
			_, _ = buf.WriteRune(ch1)
			_, _ = buf.WriteString(s.scanDigits())
		} else {
			s.unread(2)
		}
	} else {
		s.unread(1)
	}

	for {
		if ch := s.read(); isName(ch) || ch == '%' {
			_, _ = buf.WriteRune(ch)
		} else {
			s.unread(1)
			break
		}
	}
	return token.Token{Kind: token.Number, Value: buf.String(), Pos: pos}
}

// scanDigits consume a contiguous series of digits.
func (s *Scanner) scanDigits() string {
	var buf bytes.Buffer
	for {
		if ch := s.read(); isDigit(ch) {
			_, _ = buf.WriteRune(ch)
		} else {
			s.unread(1)
			break
		}
	}
	return buf.String()
}

// scanComment consumes all characters up to "*/", inclusive.
// This function assumes that the initial "/*" have just been consumed.
func (s *Scanner) scanComment() {
	for {
		ch0 := s.read()
		if ch0 == eof {
			break
		} else if ch0 == '*' {
			if ch1 := s.read(); ch1 == '/' {
				break
			} else {
				s.unread(1)
			}
		}
	}
}

// scanHash consumes a hash token.
//
// This assumes the current code point is a '#'. Without a name following the
// hash it returns a delim token.
func (s *Scanner) scanHash() token.Token {
	pos := s.Pos()

	if ch := s.read(); isName(ch) || s.peekEscape() {
		return token.Token{Kind: token.Hash, Value: s.scanName(), Pos: pos}
	}
	s.unread(1)

	return token.Token{Kind: token.Delim, Value: "#", Pos: pos}
}

// scanName consumes a name.
// Consumes contiguous name code points and escaped code points.
func (s *Scanner) scanName() string {
	var buf bytes.Buffer
	s.unread(1)
	for {
		if ch := s.read(); isName(ch) {
			_, _ = buf.WriteRune(ch)
		} else if s.peekEscape() {
			_, _ = buf.WriteRune(s.scanEscape())
		} else {
			s.unread(1)
			return buf.String()
		}
	}
}

// scanIdent consumes an identifier.
func (s *Scanner) scanIdent() token.Token {
	pos := s.Pos()
	return token.Token{Kind: token.Ident, Value: s.scanName(), Pos: pos}
}

// scanEscape consumes an escaped code point.
func (s *Scanner) scanEscape() rune {
	var buf bytes.Buffer
	ch := s.read()
	if isHexDigit(ch) {
		_, _ = buf.WriteRune(ch)
		for i := 0; i < 5; i++ {
			if next := s.read(); next == eof || isWhitespace(next) {
				break
			} else if !isHexDigit(next) {
				s.unread(1)
				break
			} else {
				_, _ = buf.WriteRune(next)
			}
		}
		v, _ := strconv.ParseInt(buf.String(), 16, 0)
		return rune(v)
	} else if ch == eof {
		return '\uFFFD'
	}
	return ch
}

// peekEscape checks if the next code points are a valid escape.
func (s *Scanner) peekEscape() bool {
	if s.curr() != '\\' {
		return false
	}

	// If the next code point is a newline then this is not an escape.
	next := s.read()
	s.unread(1)
	return next != '\n' && next != eof
}

// peekIdent checks if the next code points are a valid identifier.
func (s *Scanner) peekIdent() bool {
	if s.curr() == '-' {
		ch := s.read()
		s.unread(1)
		return isNameStart(ch) || ch == '-' || ch == '\\'
	} else if isNameStart(s.curr()) {
		return true
	} else if s.curr() == '\\' && s.peekEscape() {
		return true
	}
	return false
}

// read reads the next rune from the reader.
// This function will initially check for any characters that have been pushed
// back onto the lookahead buffer and return those. Otherwise it will read from
// the reader and convert newline characters and NULL.
func (s *Scanner) read() rune {
	// If we have runes on our internal lookahead buffer then return those.
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	// Otherwise read from the reader.
	ch, _, err := s.rd.ReadRune()
	pos := s.pos
	if err != nil {
		ch = eof
	} else {
		// Replace FF with LF.
		if ch == '\f' {
			ch = '\n'
		}

		// Replace CR and CRLF with LF.
		if ch == '\r' {
			if next, _, err := s.rd.ReadRune(); err == nil && next != '\n' {
				_ = s.rd.(io.RuneScanner).UnreadRune()
			}
			ch = '\n'
		}

		// Replace NULL with Unicode replacement character.
		if ch == '\000' {
			ch = '\uFFFD'
		}

		if ch == '\n' {
			s.pos.Line++
			s.pos.Char = 0
		} else {
			s.pos.Char++
		}
	}

	// Add to circular buffer.
	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread adds the previous n code points back onto the buffer.
func (s *Scanner) unread(n int) {
	for i := 0; i < n; i++ {
		s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
		s.bufn++
	}
}

// curr reads the current code point.
func (s *Scanner) curr() rune {
	return s.buf[s.bufi]
}

// Pos reads the position of the current code point.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

// isLetter returns true if the rune is a letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9')
}

// isHexDigit returns true if the rune is a hex digit.
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNonASCII returns true if the rune is greater than U+0080.
func isNonASCII(ch rune) bool {
	return ch >= '\u0080'
}

// isNameStart returns true if the rune can start a name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || isNonASCII(ch) || ch == '_'
}

// isName returns true if the character is a name code point.
func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

// Error represents a scan error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}
