package ast

import (
	"bytes"

	"github.com/whitten/less4j/token"
)

// Node represents a node in the selector abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *Selector) node()               {}
func (_ *SimpleSelector) node()         {}
func (_ *SelectorCombinator) node()     {}
func (_ *NestedSelectorAppender) node() {}
func (_ *NestingSelector) node()        {}
func (_ *CssClass) node()               {}
func (_ *IDSelector) node()             {}
func (_ *Pseudo) node()                 {}
func (_ *AttributeSelector) node()      {}

// Selector represents one part of a selector chain.
//
// The first part is the head of the chain. Every following part is reached
// through Right and relates to the part before it by its LeadingCombinator.
// A nil LeadingCombinator on a part other than the head means descendant.
type Selector struct {
	LeadingCombinator *SelectorCombinator
	Head              *SimpleSelector
	Right             *Selector

	// Set on the first part only. BeforeAppender records a parent reference
	// seen before any selector content, AfterAppender one seen after it.
	BeforeAppender *NestedSelectorAppender
	AfterAppender  *NestedSelectorAppender

	Pos token.Pos
}

func (s *Selector) String() string {
	var buf bytes.Buffer
	_ = (&Printer{}).Print(&buf, s)
	return buf.String()
}

// Parts returns the chain starting at s in traversal order.
func (s *Selector) Parts() []*Selector {
	var a []*Selector
	for p := s; p != nil; p = p.Right {
		a = append(a, p)
	}
	return a
}

// Len returns the number of parts in the chain starting at s.
func (s *Selector) Len() int {
	n := 0
	for p := s; p != nil; p = p.Right {
		n++
	}
	return n
}

// Last returns the last part of the chain.
func (s *Selector) Last() *Selector {
	if s == nil {
		return nil
	}
	p := s
	for p.Right != nil {
		p = p.Right
	}
	return p
}

// IsCombined returns true if the chain has more than one part.
func (s *Selector) IsCombined() bool {
	return s != nil && s.Right != nil
}

// Relation returns the combinator relating the part to the previous one.
// Parts without an explicit combinator are descendants.
func (s *Selector) Relation() CombinatorKind {
	if s.LeadingCombinator == nil {
		return Descendant
	}
	return s.LeadingCombinator.Kind
}

// SimpleSelector represents an element name, the universal selector or an
// implicit selector, followed by its subsequent qualifiers.
//
// An implicit selector has Star and EmptyForm set: it matches like "*" but
// prints nothing, so ".cls" round-trips as ".cls".
type SimpleSelector struct {
	ElementName string
	Star        bool
	EmptyForm   bool
	Subsequent  []ElementSubsequent
	Pos         token.Pos
}

func (s *SimpleSelector) String() string {
	var buf bytes.Buffer
	_ = (&Printer{}).Print(&buf, s)
	return buf.String()
}

// AddSubsequent appends a qualifier to the simple selector.
func (s *SimpleSelector) AddSubsequent(v ElementSubsequent) {
	s.Subsequent = append(s.Subsequent, v)
}

// CombinatorKind represents the relation between two simple selectors.
type CombinatorKind int

const (
	Descendant      CombinatorKind = iota // whitespace
	Child                                 // >
	AdjacentSibling                       // +
	GeneralSibling                        // ~
	Hat                                   // ^
	Cat                                   // ^^
	Named                                 // /name/
)

var combinatorSymbols = [...]string{
	Descendant:      " ",
	Child:           ">",
	AdjacentSibling: "+",
	GeneralSibling:  "~",
	Hat:             "^",
	Cat:             "^^",
	Named:           "/",
}

var combinatorNames = [...]string{
	Descendant:      "descendant",
	Child:           "child",
	AdjacentSibling: "adjacent-sibling",
	GeneralSibling:  "general-sibling",
	Hat:             "hat",
	Cat:             "cat",
	Named:           "named",
}

// String returns the name of the combinator kind.
func (k CombinatorKind) String() string {
	if k >= 0 && k < CombinatorKind(len(combinatorNames)) {
		return combinatorNames[k]
	}
	return "unknown"
}

// SelectorCombinator represents a combinator token.
type SelectorCombinator struct {
	Kind CombinatorKind
	Name string // named combinators only, e.g. "deep"
	Pos  token.Pos
}

// String returns the combinator as written in CSS.
func (c *SelectorCombinator) String() string {
	if c.Kind == Named {
		return "/" + c.Name + "/"
	}
	if c.Kind >= 0 && c.Kind < CombinatorKind(len(combinatorSymbols)) {
		return combinatorSymbols[c.Kind]
	}
	return ""
}

// NestedSelectorAppender marks where a parent selector reference ("&")
// attaches to a selector. Direct appenders are glued to the selector
// content, e.g. "&.active", while indirect ones are separated by whitespace.
type NestedSelectorAppender struct {
	Direct bool
	Node   Node
	Pos    token.Pos
}

func (a *NestedSelectorAppender) String() string {
	if a.Node == nil {
		return "&"
	}
	return a.Node.String()
}

// NestingSelector represents the "&" parent selector reference.
type NestingSelector struct {
	Pos token.Pos
}

func (n *NestingSelector) String() string { return "&" }

// ElementSubsequent represents a qualifier attached to a simple selector.
type ElementSubsequent interface {
	Node
	elementSubsequent()
}

func (_ *CssClass) elementSubsequent()          {}
func (_ *IDSelector) elementSubsequent()        {}
func (_ *Pseudo) elementSubsequent()            {}
func (_ *AttributeSelector) elementSubsequent() {}

// CssClass represents a class qualifier such as ".nav".
type CssClass struct {
	Name string
	Pos  token.Pos
}

func (c *CssClass) String() string { return "." + c.Name }

// IDSelector represents an id qualifier such as "#main".
type IDSelector struct {
	Name string
	Pos  token.Pos
}

func (i *IDSelector) String() string { return "#" + i.Name }

// Pseudo represents a pseudo-class (":hover") or, when Element is set, a
// pseudo-element ("::before"). Args holds the raw argument text of
// functional forms such as ":nth-child(2n+1)".
type Pseudo struct {
	Name    string
	Element bool
	Args    string
	HasArgs bool
	Pos     token.Pos
}

func (p *Pseudo) String() string {
	var buf bytes.Buffer
	buf.WriteString(":")
	if p.Element {
		buf.WriteString(":")
	}
	buf.WriteString(p.Name)
	if p.HasArgs {
		buf.WriteString("(" + p.Args + ")")
	}
	return buf.String()
}

// AttributeOperator represents the matcher of an attribute selector.
type AttributeOperator string

const (
	AttributeExists    AttributeOperator = ""
	AttributeEquals    AttributeOperator = "="
	AttributeIncludes  AttributeOperator = "~="
	AttributeDash      AttributeOperator = "|="
	AttributePrefix    AttributeOperator = "^="
	AttributeSuffix    AttributeOperator = "$="
	AttributeSubstring AttributeOperator = "*="
)

// AttributeSelector represents an attribute matcher such as `[type="text"]`.
// Quote is the quote rune the value was written with, or zero.
type AttributeSelector struct {
	Name     string
	Operator AttributeOperator
	Value    string
	Quote    rune
	Pos      token.Pos
}

func (a *AttributeSelector) String() string {
	var buf bytes.Buffer
	buf.WriteString("[" + a.Name)
	if a.Operator != AttributeExists {
		buf.WriteString(string(a.Operator))
		if a.Quote != 0 {
			buf.WriteRune(a.Quote)
			buf.WriteString(a.Value)
			buf.WriteRune(a.Quote)
		} else {
			buf.WriteString(a.Value)
		}
	}
	buf.WriteString("]")
	return buf.String()
}

// Position returns the position of the first token of a node.
func Position(n Node) token.Pos {
	switch n := n.(type) {
	case *Selector:
		return n.Pos
	case *SimpleSelector:
		return n.Pos
	case *SelectorCombinator:
		return n.Pos
	case *NestedSelectorAppender:
		return n.Pos
	case *NestingSelector:
		return n.Pos
	case *CssClass:
		return n.Pos
	case *IDSelector:
		return n.Pos
	case *Pseudo:
		return n.Pos
	case *AttributeSelector:
		return n.Pos
	}
	return token.Pos{}
}
