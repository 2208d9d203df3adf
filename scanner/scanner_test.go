package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitten/less4j/scanner"
	"github.com/whitten/less4j/token"
)

// Ensure than the scanner returns appropriate tokens and literals.
func TestScanner_Scan(t *testing.T) {
	var tests = []struct {
		s    string
		kind token.Kind
		v    string
		err  string
	}{
		{s: ``, kind: token.EOF},
		{s: `   `, kind: token.Whitespace, v: `   `},
		{s: "\t\r\n", kind: token.Whitespace, v: "\t\n"},

		{s: `""`, kind: token.String, v: ``},
		{s: `"foo`, kind: token.String, v: `foo`},
		{s: `'hello world'`, kind: token.String, v: `hello world`},
		{s: `'foo\ bar'`, kind: token.String, v: `foo bar`},
		{s: `'frosty the \2603'`, kind: token.String, v: `frosty the ☃`},
		{s: "'foo\nbar'", kind: token.String, v: `foo`, err: `unterminated string`},

		{s: `div`, kind: token.Ident, v: `div`},
		{s: `-moz-selection`, kind: token.Ident, v: `-moz-selection`},
		{s: `--custom`, kind: token.Ident, v: `--custom`},
		{s: `my\2603`, kind: token.Ident, v: `my☃`},
		{s: `\31 0`, kind: token.Ident, v: `10`},

		{s: `#main`, kind: token.Hash, v: `main`},
		{s: `#`, kind: token.Delim, v: `#`},

		{s: `2n`, kind: token.Number, v: `2n`},
		{s: `-1`, kind: token.Number, v: `-1`},
		{s: `1.5em`, kind: token.Number, v: `1.5em`},
		{s: `50%`, kind: token.Number, v: `50%`},
		{s: `-`, kind: token.Delim, v: `-`},

		{s: `.`, kind: token.Dot, v: `.`},
		{s: `,`, kind: token.Comma, v: `,`},
		{s: `:`, kind: token.Colon, v: `:`},
		{s: `&`, kind: token.Ampersand, v: `&`},
		{s: `>`, kind: token.Greater, v: `>`},
		{s: `+`, kind: token.Plus, v: `+`},
		{s: `~`, kind: token.Tilde, v: `~`},
		{s: `^`, kind: token.Caret, v: `^`},
		{s: `*`, kind: token.Star, v: `*`},
		{s: `/`, kind: token.Slash, v: `/`},
		{s: `|`, kind: token.Pipe, v: `|`},
		{s: `=`, kind: token.Equals, v: `=`},
		{s: `[`, kind: token.LBrack, v: `[`},
		{s: `)`, kind: token.RParen, v: `)`},

		{s: `~=`, kind: token.IncludeMatch, v: `~=`},
		{s: `|=`, kind: token.DashMatch, v: `|=`},
		{s: `^=`, kind: token.PrefixMatch, v: `^=`},
		{s: `$=`, kind: token.SuffixMatch, v: `$=`},
		{s: `*=`, kind: token.SubstringMatch, v: `*=`},
		{s: `$`, kind: token.Delim, v: `$`},

		{s: `/* comment */div`, kind: token.Ident, v: `div`},
		{s: `\`, kind: token.Delim, v: `\`, err: `unescaped \`},
	}

	for i, tt := range tests {
		s := scanner.New(strings.NewReader(tt.s))
		tok := s.Scan()
		assert.Equal(t, tt.kind, tok.Kind, "%d. %q kind", i, tt.s)
		assert.Equal(t, tt.v, tok.Value, "%d. %q value", i, tt.s)

		if tt.err == "" {
			assert.Empty(t, s.Errors, "%d. %q errors", i, tt.s)
		} else if assert.Len(t, s.Errors, 1, "%d. %q errors", i, tt.s) {
			assert.Equal(t, tt.err, s.Errors[0].Error(), "%d. %q error", i, tt.s)
		}
	}
}

// Ensure that whitespace takes up a stream index so gaps are visible.
func TestScanner_Scan_Index(t *testing.T) {
	s := scanner.New(strings.NewReader("div .cls>a"))

	var got []token.Token
	for {
		tok := s.Scan()
		got = append(got, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	kinds := []token.Kind{token.Ident, token.Whitespace, token.Dot, token.Ident, token.Greater, token.Ident, token.EOF}
	require.Len(t, got, len(kinds))
	for i, tok := range got {
		assert.Equal(t, kinds[i], tok.Kind, "%d", i)
		assert.Equal(t, i, tok.Index, "%d", i)
	}
}

// Ensure that token positions track lines and characters.
func TestScanner_Scan_Pos(t *testing.T) {
	s := scanner.New(strings.NewReader("a\n  .b"))
	assert.Equal(t, token.Pos{Char: 0, Line: 0}, s.Scan().Pos)
	assert.Equal(t, token.Pos{Char: 1, Line: 0}, s.Scan().Pos)
	assert.Equal(t, token.Pos{Char: 2, Line: 1}, s.Scan().Pos)
	assert.Equal(t, token.Pos{Char: 3, Line: 1}, s.Scan().Pos)
}

// Ensure that the scanner keeps returning EOF at the end of input.
func TestScanner_Scan_EOF(t *testing.T) {
	s := scanner.New(strings.NewReader("a"))
	s.Scan()
	assert.Equal(t, token.EOF, s.Scan().Kind)
	assert.Equal(t, token.EOF, s.Scan().Kind)
}
