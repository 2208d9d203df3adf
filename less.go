package less4j

import (
	"fmt"
	"io"
	"strings"

	"github.com/whitten/less4j/ast"
	"github.com/whitten/less4j/builder"
	"github.com/whitten/less4j/parser"
	"github.com/whitten/less4j/scanner"
	"github.com/whitten/less4j/tree"
)

// Parser scans, parses and builds selectors.
// The zero value uses the default builder.
type Parser struct {
	Builder *builder.Builder
}

var defaultBuilder = builder.New(nil, nil)

// ParseSelector parses a single selector.
func ParseSelector(s string) (*ast.Selector, error) {
	var p Parser
	return p.ParseSelector(strings.NewReader(s))
}

// ParseSelectors parses a comma separated list of selectors.
func ParseSelectors(s string) ([]*ast.Selector, error) {
	var p Parser
	return p.ParseSelectors(strings.NewReader(s))
}

// ParseSelector parses a single selector from r.
func (p *Parser) ParseSelector(r io.Reader) (*ast.Selector, error) {
	sc := scanner.New(r)
	n, err := parser.ParseSelectorGroup(sc)
	if err := scanErrors(sc, err); err != nil {
		return nil, err
	}
	return p.build(n)
}

// ParseSelectors parses a comma separated list of selectors from r. Syntax
// errors in one selector do not stop the others from being returned.
func (p *Parser) ParseSelectors(r io.Reader) ([]*ast.Selector, error) {
	sc := scanner.New(r)
	groups, err := parser.ParseSelectorGroups(sc)
	err = scanErrors(sc, err)

	a := make([]*ast.Selector, 0, len(groups))
	for _, n := range groups {
		s, berr := p.build(n)
		if berr != nil {
			return nil, berr
		}
		a = append(a, s)
	}
	return a, err
}

func (p *Parser) build(n *tree.Node) (*ast.Selector, error) {
	b := p.Builder
	if b == nil {
		b = defaultBuilder
	}
	s, err := b.BuildSelector(n)
	if err != nil {
		return nil, fmt.Errorf("build selector: %w", err)
	}
	return s, nil
}

// scanErrors puts scanner errors in front of the parser errors.
func scanErrors(sc *scanner.Scanner, err error) error {
	if len(sc.Errors) == 0 {
		return err
	}
	var list parser.ErrorList
	for _, e := range sc.Errors {
		list = append(list, e)
	}
	if l, ok := err.(parser.ErrorList); ok {
		list = append(list, l...)
	} else if err != nil {
		list = append(list, err)
	}
	return list
}
