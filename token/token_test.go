package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitten/less4j/token"
)

// Ensure that kinds and tokens have readable string representations.
func TestToken_String(t *testing.T) {
	var tests = []struct {
		tok token.Token
		s   string
	}{
		{tok: token.Token{Kind: token.EOF}, s: `EOF`},
		{tok: token.Token{Kind: token.Whitespace, Value: "\n  "}, s: ` `},
		{tok: token.Token{Kind: token.Ident, Value: "div"}, s: `div`},
		{tok: token.Token{Kind: token.Hash, Value: "main"}, s: `#main`},
		{tok: token.Token{Kind: token.String, Value: "x", Ending: '\''}, s: `'x'`},
		{tok: token.Token{Kind: token.Greater}, s: `>`},
		{tok: token.Token{Kind: token.SubstringMatch}, s: `*=`},
		{tok: token.Token{Kind: token.Kind(999)}, s: `Kind(999)`},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.s, tt.tok.String(), "%d", i)
	}
}

func TestKind_IsAttribOperator(t *testing.T) {
	assert.True(t, token.Equals.IsAttribOperator())
	assert.True(t, token.DashMatch.IsAttribOperator())
	assert.False(t, token.Tilde.IsAttribOperator())
	assert.False(t, token.Ident.IsAttribOperator())
}

func TestPos_String(t *testing.T) {
	assert.Equal(t, "1:1", token.Pos{}.String())
	assert.Equal(t, "3:5", token.Pos{Char: 4, Line: 2}.String())
}
