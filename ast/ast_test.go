package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitten/less4j/token"
)

// Ensure that all nodes implement the Node interface.
func TestNode(t *testing.T) {
	var a []Node
	a = append(a, &Selector{}, &SimpleSelector{}, &SelectorCombinator{}, &NestedSelectorAppender{})
	a = append(a, &NestingSelector{}, &CssClass{}, &IDSelector{}, &Pseudo{}, &AttributeSelector{})
	for _, n := range a {
		n.node()
	}
}

// Ensure that all qualifiers implement the ElementSubsequent interface.
func TestElementSubsequent(t *testing.T) {
	a := []ElementSubsequent{&CssClass{}, &IDSelector{}, &Pseudo{}, &AttributeSelector{}}
	for _, v := range a {
		v.elementSubsequent()
	}
}

// Ensure that node positions can be retrieved.
func TestPosition(t *testing.T) {
	var tests = []struct {
		in  Node
		pos token.Pos
	}{
		{in: &Selector{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &SimpleSelector{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &SelectorCombinator{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &NestedSelectorAppender{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &NestingSelector{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &CssClass{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &IDSelector{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &Pseudo{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: &AttributeSelector{Pos: token.Pos{Char: 1, Line: 2}}, pos: token.Pos{Char: 1, Line: 2}},
		{in: nil, pos: token.Pos{}},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.pos, Position(tt.in), "%d", i)
	}
}

// Ensure that subsequents print as written in CSS.
func TestElementSubsequent_String(t *testing.T) {
	var tests = []struct {
		in ElementSubsequent
		s  string
	}{
		{in: &CssClass{Name: "nav"}, s: `.nav`},
		{in: &IDSelector{Name: "main"}, s: `#main`},
		{in: &Pseudo{Name: "hover"}, s: `:hover`},
		{in: &Pseudo{Name: "before", Element: true}, s: `::before`},
		{in: &Pseudo{Name: "nth-child", Args: "2n+1", HasArgs: true}, s: `:nth-child(2n+1)`},
		{in: &Pseudo{Name: "x", HasArgs: true}, s: `:x()`},
		{in: &AttributeSelector{Name: "href"}, s: `[href]`},
		{in: &AttributeSelector{Name: "lang", Operator: AttributeDash, Value: "en"}, s: `[lang|=en]`},
		{in: &AttributeSelector{Name: "type", Operator: AttributeEquals, Value: "text", Quote: '"'}, s: `[type="text"]`},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.s, tt.in.String(), "%d", i)
	}
}

func TestSelectorCombinator_String(t *testing.T) {
	assert.Equal(t, ">", (&SelectorCombinator{Kind: Child}).String())
	assert.Equal(t, "^^", (&SelectorCombinator{Kind: Cat}).String())
	assert.Equal(t, "/deep/", (&SelectorCombinator{Kind: Named, Name: "deep"}).String())
	assert.Equal(t, "general-sibling", GeneralSibling.String())
	assert.Equal(t, "unknown", CombinatorKind(42).String())
}

// chain links parts together the way the builder does.
func chain(parts ...*Selector) *Selector {
	for i := 0; i < len(parts)-1; i++ {
		parts[i].Right = parts[i+1]
	}
	return parts[0]
}

func TestSelector_Parts(t *testing.T) {
	div := &Selector{Head: &SimpleSelector{ElementName: "div"}}
	span := &Selector{Head: &SimpleSelector{ElementName: "span"}, LeadingCombinator: &SelectorCombinator{Kind: Child}}
	a := &Selector{Head: &SimpleSelector{ElementName: "a"}}
	s := chain(div, span, a)

	assert.Equal(t, []*Selector{div, span, a}, s.Parts())
	assert.Equal(t, 3, s.Len())
	assert.Same(t, a, s.Last())
	assert.True(t, s.IsCombined())
	assert.False(t, a.IsCombined())
	assert.Equal(t, Child, span.Relation())
	assert.Equal(t, Descendant, a.Relation())

	var empty *Selector
	assert.Nil(t, empty.Parts())
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Last())
}
