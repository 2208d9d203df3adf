package parser

import (
	"bytes"
	"fmt"

	"github.com/whitten/less4j/token"
	"github.com/whitten/less4j/tree"
)

// parser represents a LESS selector parser.
type parser struct {
	s      *TokenScanner
	errors ErrorList
}

// ParseSelectorGroups parses a comma separated list of selectors into one
// tree per selector. Groups that fail to parse are reported in the returned
// ErrorList and left out of the result.
func ParseSelectorGroups(src Source) ([]*tree.Node, error) {
	p := parser{s: NewTokenScanner(readAll(src))}

	var a []*tree.Node
	for {
		if g := p.parseGroup(); g != nil {
			a = append(a, g)
		}

		// Groups end at a comma or EOF.
		if tok := p.s.Scan(); tok.Kind == token.EOF {
			return a, p.error()
		}
	}
}

// ParseSelectorGroup parses exactly one selector.
func ParseSelectorGroup(src Source) (*tree.Node, error) {
	p := parser{s: NewTokenScanner(readAll(src))}

	g := p.parseGroup()
	if tok := p.s.Scan(); tok.Kind != token.EOF {
		p.errorf(tok.Pos, "expected EOF, got %q", tok.String())
	}
	if err := p.error(); err != nil {
		return nil, err
	}
	return g, nil
}

// readAll collects tokens from src up to and including EOF.
func readAll(src Source) []token.Token {
	var a []token.Token
	for {
		tok := src.Scan()
		a = append(a, tok)
		if tok.Kind == token.EOF {
			return a
		}
	}
}

// error returns the error list or nil if there are no errors.
func (p *parser) error() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// parseGroup consumes a single selector up to the next comma or EOF. On a
// syntax error the rest of the group is skipped and nil is returned.
func (p *parser) parseGroup() *tree.Node {
	p.skipWhitespace()

	first := p.s.Peek()
	if first.Kind == token.Comma || first.Kind == token.EOF {
		p.errorf(first.Pos, "expected selector, got %s", first.String())
		return nil
	}

	g := tree.Open(tree.Selector, first)
	hasContent := false
	var glue *tree.Node
	for {
		tok := p.s.Scan()

		var n *tree.Node
		var err error
		switch tok.Kind {
		case token.Whitespace:
			continue
		case token.Comma, token.EOF:
			p.s.Unscan()
			return g
		case token.Ident, token.Star, token.Number:
			kind := tree.Ident
			if tok.Kind == token.Star {
				kind = tree.Star
			}
			n = tree.Open(tree.ElementName, tok).Add(tree.New(kind, tok))
		case token.Dot, token.Hash, token.Colon, token.LBrack:
			n, err = p.parseSubsequent(tok)
		case token.Ampersand:
			n = p.parseAppender(tok, hasContent)
		case token.Greater, token.Plus, token.Tilde, token.Caret, token.Slash:
			n, err = p.parseCombinator(tok)
		default:
			err = &Error{Message: fmt.Sprintf("unexpected %q in selector", tok.String()), Pos: tok.Pos}
		}

		if err != nil {
			p.errors = append(p.errors, err)
			p.skipGroup()
			return nil
		}
		// A qualifier glued to a direct appender inside a simple selector,
		// as in "a&.x", starts at the appender so that it stays adjacent
		// to the element before it.
		if glue != nil && n.Kind == tree.ElementSubsequent {
			n.Start = glue.Start
		}
		glue = nil
		if n.Kind == tree.DirectAppender && hasContent && p.s.Peek().Kind != token.Whitespace {
			glue = n
		}

		if n.Kind == tree.ElementName || n.Kind == tree.ElementSubsequent {
			hasContent = true
		}
		g.Add(n)
	}
}

// parseSubsequent consumes a class, id, pseudo or attribute qualifier
// starting at tok and wraps it in an ELEMENT_SUBSEQUENT node.
func (p *parser) parseSubsequent(tok token.Token) (*tree.Node, error) {
	var inner *tree.Node
	switch tok.Kind {
	case token.Dot:
		ident, err := p.expect(token.Ident, "class name")
		if err != nil {
			return nil, err
		}
		inner = tree.Open(tree.CssClass, tok).Add(tree.New(tree.Ident, ident))

	case token.Hash:
		inner = tree.New(tree.IDSelector, tok)

	case token.Colon:
		kind := tree.Pseudo
		if p.s.Peek().Kind == token.Colon {
			kind = tree.PseudoElement
			p.s.Scan()
		}
		ident, err := p.expect(token.Ident, "pseudo name")
		if err != nil {
			return nil, err
		}
		inner = tree.Open(kind, tok).Add(tree.New(tree.Ident, ident))
		if p.s.Peek().Kind == token.LParen {
			args, err := p.parseArguments(p.s.Scan())
			if err != nil {
				return nil, err
			}
			inner.Add(args)
		}

	case token.LBrack:
		var err error
		if inner, err = p.parseAttribute(tok); err != nil {
			return nil, err
		}
	}
	return tree.Open(tree.ElementSubsequent, tok).Add(inner), nil
}

// parseArguments consumes everything up to the matching right parenthesis
// and keeps it as raw text. Runs of whitespace are collapsed to one space.
func (p *parser) parseArguments(lparen token.Token) (*tree.Node, error) {
	n := tree.New(tree.Arguments, lparen)

	var buf bytes.Buffer
	depth := 1
	for {
		tok := p.s.Scan()
		switch tok.Kind {
		case token.EOF:
			return nil, &Error{Message: "unclosed pseudo arguments", Pos: lparen.Pos}
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		if depth == 0 {
			n.Text = buf.String()
			n.Cover(tok)
			return n, nil
		}
		buf.WriteString(tok.String())
	}
}

// parseAttribute consumes "[name]" or "[name op value]".
func (p *parser) parseAttribute(lbrack token.Token) (*tree.Node, error) {
	n := tree.Open(tree.AttribSelector, lbrack)

	p.skipWhitespace()
	name, err := p.expect(token.Ident, "attribute name")
	if err != nil {
		return nil, err
	}
	n.Add(tree.New(tree.Ident, name))

	p.skipWhitespace()
	if op := p.s.Peek(); op.Kind.IsAttribOperator() {
		p.s.Scan()
		n.Add(tree.New(tree.AttribOperator, op))

		p.skipWhitespace()
		switch value := p.s.Scan(); value.Kind {
		case token.Ident, token.Number:
			n.Add(tree.New(tree.Ident, value))
		case token.String:
			v := tree.New(tree.StringLit, value)
			v.Text = value.String()
			n.Add(v)
		default:
			return nil, &Error{Message: fmt.Sprintf("expected attribute value, got %q", value.String()), Pos: value.Pos}
		}
		p.skipWhitespace()
	}

	rbrack, err := p.expect(token.RBrack, "]")
	if err != nil {
		return nil, err
	}
	return n.Cover(rbrack), nil
}

// parseAppender consumes a "&". It is direct when glued to the selector
// content next to it: the following token while no content has been seen,
// the preceding one afterwards.
func (p *parser) parseAppender(tok token.Token, hasContent bool) *tree.Node {
	var direct bool
	if hasContent {
		direct = p.s.Prev().Kind != token.Whitespace
	} else {
		switch p.s.Peek().Kind {
		case token.Whitespace, token.Comma, token.EOF:
		default:
			direct = true
		}
	}

	kind := tree.IndirectAppender
	if direct {
		kind = tree.DirectAppender
	}
	return tree.Open(kind, tok).Add(tree.New(tree.Appender, tok))
}

// parseCombinator consumes ">", "+", "~", "^", "^^" or "/name/".
func (p *parser) parseCombinator(tok token.Token) (*tree.Node, error) {
	switch tok.Kind {
	case token.Greater:
		return tree.New(tree.Gt, tok), nil
	case token.Plus:
		return tree.New(tree.Plus, tok), nil
	case token.Tilde:
		return tree.New(tree.Tilde, tok), nil
	case token.Caret:
		if p.s.Peek().Kind == token.Caret {
			n := tree.New(tree.Cat, tok)
			n.Text = "^^"
			return n.Cover(p.s.Scan()), nil
		}
		return tree.New(tree.Hat, tok), nil
	}

	// Named combinator, e.g. "/deep/".
	ident, err := p.expect(token.Ident, "combinator name")
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.Slash, "/")
	if err != nil {
		return nil, err
	}
	n := tree.Open(tree.NamedCombinator, tok).Add(tree.New(tree.Ident, ident))
	return n.Cover(end), nil
}

// expect consumes the next token and returns an error if it is not of kind.
func (p *parser) expect(kind token.Kind, what string) (token.Token, error) {
	tok := p.s.Scan()
	if tok.Kind != kind {
		p.s.Unscan()
		return tok, &Error{Message: fmt.Sprintf("expected %s, got %q", what, tok.String()), Pos: tok.Pos}
	}
	return tok, nil
}

// skipWhitespace skips over all contiguous whitespace tokens.
func (p *parser) skipWhitespace() {
	for p.s.Peek().Kind == token.Whitespace {
		p.s.Scan()
	}
}

// skipGroup skips tokens up to the next comma or EOF.
func (p *parser) skipGroup() {
	for {
		switch p.s.Scan().Kind {
		case token.Comma, token.EOF:
			p.s.Unscan()
			return
		}
	}
}

// Source represents a type that can retrieve the next token.
type Source interface {
	Scan() token.Token
}

// TokenScanner represents a scanner for a fixed list of tokens.
type TokenScanner struct {
	i      int
	tokens []token.Token
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{i: -1, tokens: tokens}
}

// Current returns the current token.
func (s *TokenScanner) Current() token.Token {
	return s.at(s.i)
}

// Scan returns the next token.
func (s *TokenScanner) Scan() token.Token {
	if s.i < len(s.tokens) {
		s.i++
	}
	return s.Current()
}

// Unscan moves back one token.
func (s *TokenScanner) Unscan() {
	if s.i > -1 {
		s.i--
	}
}

// Peek returns the next token without consuming it.
func (s *TokenScanner) Peek() token.Token {
	return s.at(s.i + 1)
}

// Prev returns the token before the current one.
func (s *TokenScanner) Prev() token.Token {
	return s.at(s.i - 1)
}

// at returns the token at i. Out of range indexes return EOF.
func (s *TokenScanner) at(i int) token.Token {
	if i < 0 || i >= len(s.tokens) {
		return token.Token{Kind: token.EOF, Index: i}
	}
	return s.tokens[i]
}

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// ErrorList represents a list of syntax errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
