package builder

import (
	"fmt"

	"github.com/whitten/less4j/ast"
	"github.com/whitten/less4j/tree"
)

// TermDispatcher converts the qualifier and parent reference nodes produced
// by the parser package into ast nodes.
type TermDispatcher struct{}

// Dispatch converts n into an ast node.
func (TermDispatcher) Dispatch(n *tree.Node) (ast.Node, error) {
	switch n.Kind {
	case tree.CssClass:
		name, err := childText(n, 0)
		if err != nil {
			return nil, err
		}
		return &ast.CssClass{Name: name, Pos: n.Pos}, nil

	case tree.IDSelector:
		return &ast.IDSelector{Name: n.Text, Pos: n.Pos}, nil

	case tree.Pseudo, tree.PseudoElement:
		name, err := childText(n, 0)
		if err != nil {
			return nil, err
		}
		p := &ast.Pseudo{Name: name, Element: n.Kind == tree.PseudoElement, Pos: n.Pos}
		if args := n.Child(1); args != nil {
			p.Args, p.HasArgs = args.Text, true
		}
		return p, nil

	case tree.AttribSelector:
		return attribute(n)

	case tree.Appender:
		return &ast.NestingSelector{Pos: n.Pos}, nil
	}
	return nil, &Error{Message: fmt.Sprintf("unexpected %s", n.Kind), Pos: n.Pos}
}

// attribute converts "[name]" and "[name op value]" nodes.
func attribute(n *tree.Node) (*ast.AttributeSelector, error) {
	name, err := childText(n, 0)
	if err != nil {
		return nil, err
	}
	a := &ast.AttributeSelector{Name: name, Pos: n.Pos}

	op := n.Child(1)
	if op == nil {
		return a, nil
	}
	switch o := ast.AttributeOperator(op.Text); o {
	case ast.AttributeEquals, ast.AttributeIncludes, ast.AttributeDash,
		ast.AttributePrefix, ast.AttributeSuffix, ast.AttributeSubstring:
		a.Operator = o
	default:
		return nil, &Error{Message: fmt.Sprintf("unknown attribute operator %q", op.Text), Pos: op.Pos}
	}

	value := n.Child(2)
	if value == nil {
		return nil, &Error{Message: "attribute operator without a value", Pos: op.Pos}
	}
	a.Value = value.Text
	if value.Kind == tree.StringLit && len(value.Text) >= 2 {
		a.Quote = rune(value.Text[0])
		a.Value = value.Text[1 : len(value.Text)-1]
	}
	return a, nil
}

func childText(n *tree.Node, i int) (string, error) {
	c := n.Child(i)
	if c == nil {
		return "", &Error{Message: fmt.Sprintf("%s without a name", n.Kind), Pos: n.Pos}
	}
	return c.Text, nil
}

// NewCombinator converts a combinator node into its typed form.
func NewCombinator(n *tree.Node) (*ast.SelectorCombinator, error) {
	c := &ast.SelectorCombinator{Pos: n.Pos}
	switch n.Kind {
	case tree.EmptyCombinator:
		c.Kind = ast.Descendant
	case tree.Gt:
		c.Kind = ast.Child
	case tree.Plus:
		c.Kind = ast.AdjacentSibling
	case tree.Tilde:
		c.Kind = ast.GeneralSibling
	case tree.Hat:
		c.Kind = ast.Hat
	case tree.Cat:
		c.Kind = ast.Cat
	case tree.NamedCombinator:
		c.Kind = ast.Named
		c.Name = n.Text
		if name := n.Child(0); name != nil {
			c.Name = name.Text
		}
	default:
		return nil, &Error{Message: fmt.Sprintf("unexpected combinator %s", n.Kind), Pos: n.Pos}
	}
	return c, nil
}
