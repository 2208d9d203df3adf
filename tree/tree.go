// Package tree defines the parse tree produced by the selector grammar.
//
// A Node only carries what the grammar knew: its kind, the source text of
// leaf tokens, its children and the range of lexical tokens it covers. The
// builder package turns selector trees into the ast representation.
package tree

import (
	"bytes"
	"fmt"

	"github.com/whitten/less4j/token"
)

// Kind identifies the grammar production or terminal of a node.
type Kind int

const (
	Invalid Kind = iota

	// Selector is the root of one selector group.
	Selector

	// Children of a selector group.
	ElementName
	ElementSubsequent
	IndirectAppender
	DirectAppender

	// Combinators.
	EmptyCombinator
	Gt
	Plus
	Tilde
	Hat
	Cat
	NamedCombinator

	// Leaves and inner nodes of element names, subsequents and appenders.
	Ident
	Star
	CssClass
	IDSelector
	Pseudo
	PseudoElement
	AttribSelector
	AttribOperator
	Arguments
	StringLit
	Appender
)

var kinds = [...]string{
	Invalid:           "INVALID",
	Selector:          "SELECTOR",
	ElementName:       "ELEMENT_NAME",
	ElementSubsequent: "ELEMENT_SUBSEQUENT",
	IndirectAppender:  "INDIRECT_APPENDER",
	DirectAppender:    "DIRECT_APPENDER",
	EmptyCombinator:   "EMPTY_COMBINATOR",
	Gt:                "GREATER",
	Plus:              "PLUS",
	Tilde:             "TILDE",
	Hat:               "HAT",
	Cat:               "CAT",
	NamedCombinator:   "NAMED_COMBINATOR",
	Ident:             "IDENT",
	Star:              "STAR",
	CssClass:          "CSS_CLASS",
	IDSelector:        "ID_SELECTOR",
	Pseudo:            "PSEUDO",
	PseudoElement:     "PSEUDO_ELEMENT",
	AttribSelector:    "ATTRIBUTE_SELECTOR",
	AttribOperator:    "ATTRIBUTE_OPERATOR",
	Arguments:         "ARGUMENTS",
	StringLit:         "STRING",
	Appender:          "APPENDER",
}

// String returns the grammar name of the kind.
func (k Kind) String() string {
	if k >= 0 && k < Kind(len(kinds)) {
		return kinds[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsCombinator returns true for the combinator kinds.
func (k Kind) IsCombinator() bool {
	return k >= EmptyCombinator && k <= NamedCombinator
}

// Node represents a node in the parse tree.
//
// Start and Stop are the inclusive stream indexes of the first and last
// lexical tokens covered by the node. Whitespace tokens take up indexes, so
// nodes separated by whitespace never have Stop+1 == Start.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Start    int
	Stop     int
	Pos      token.Pos
}

// New returns a leaf node covering a single lexical token.
func New(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Text: tok.Value, Start: tok.Index, Stop: tok.Index, Pos: tok.Pos}
}

// Open returns an inner node starting at tok. Children and further tokens
// widen its range through Add and Cover.
func Open(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Start: tok.Index, Stop: tok.Index, Pos: tok.Pos}
}

// Child returns the i-th child or nil if the node has no such child.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Add appends children and widens the node's token range to cover them.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		n.cover(c.Start, c.Stop, c.Pos)
		n.Children = append(n.Children, c)
	}
	return n
}

// Cover widens the node's token range to include tok.
func (n *Node) Cover(tok token.Token) *Node {
	n.cover(tok.Index, tok.Index, tok.Pos)
	return n
}

func (n *Node) cover(start, stop int, pos token.Pos) {
	if start < n.Start {
		n.Start, n.Pos = start, pos
	}
	if stop > n.Stop {
		n.Stop = stop
	}
}

// String returns the node as an s-expression, e.g. "(SELECTOR (ELEMENT_NAME div))".
func (n *Node) String() string {
	var buf bytes.Buffer
	n.write(&buf)
	return buf.String()
}

func (n *Node) write(buf *bytes.Buffer) {
	if n == nil {
		buf.WriteString("<nil>")
		return
	}
	if len(n.Children) == 0 {
		if n.Text != "" {
			buf.WriteString(n.Text)
		} else {
			buf.WriteString(n.Kind.String())
		}
		return
	}

	buf.WriteString("(")
	buf.WriteString(n.Kind.String())
	for _, c := range n.Children {
		buf.WriteString(" ")
		c.write(buf)
	}
	buf.WriteString(")")
}
