package token

import "fmt"

// Kind represents the category of a lexical token.
type Kind int

const (
	// Special tokens
	Illegal Kind = iota
	EOF
	Whitespace

	// Literals
	Ident
	Hash
	String
	Number

	// Punctuation
	Comma
	Colon
	Dot
	Star
	Ampersand
	Greater
	Plus
	Tilde
	Caret
	Slash
	Pipe
	Equals
	LBrack
	RBrack
	LParen
	RParen

	// Attribute matchers
	IncludeMatch   // ~=
	DashMatch      // |=
	PrefixMatch    // ^=
	SuffixMatch    // $=
	SubstringMatch // *=

	// Delim is any other single code point.
	Delim
)

var kinds = [...]string{
	Illegal:        "ILLEGAL",
	EOF:            "EOF",
	Whitespace:     "WHITESPACE",
	Ident:          "IDENT",
	Hash:           "HASH",
	String:         "STRING",
	Number:         "NUMBER",
	Comma:          ",",
	Colon:          ":",
	Dot:            ".",
	Star:           "*",
	Ampersand:      "&",
	Greater:        ">",
	Plus:           "+",
	Tilde:          "~",
	Caret:          "^",
	Slash:          "/",
	Pipe:           "|",
	Equals:         "=",
	LBrack:         "[",
	RBrack:         "]",
	LParen:         "(",
	RParen:         ")",
	IncludeMatch:   "~=",
	DashMatch:      "|=",
	PrefixMatch:    "^=",
	SuffixMatch:    "$=",
	SubstringMatch: "*=",
	Delim:          "DELIM",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k >= 0 && k < Kind(len(kinds)) {
		return kinds[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsAttribOperator returns true if the kind can separate an attribute name
// from its value.
func (k Kind) IsAttribOperator() bool {
	switch k {
	case Equals, IncludeMatch, DashMatch, PrefixMatch, SuffixMatch, SubstringMatch:
		return true
	}
	return false
}

// Token represents a lexical token.
//
// Index is the zero-based position of the token in the stream. Whitespace
// tokens take up an index so two tokens separated by whitespace never have
// consecutive indexes.
type Token struct {
	Kind  Kind
	Value string
	Pos   Pos
	Index int

	// Ending is the quote rune that closed a string token.
	Ending rune
}

// String returns a human readable representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Whitespace:
		return " "
	case String:
		return string(t.Ending) + t.Value + string(t.Ending)
	case Hash:
		return "#" + t.Value
	case Ident, Number, Delim:
		return t.Value
	}
	return t.Kind.String()
}

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// String returns the position formatted as "line:char", one-based.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Char+1)
}
