// Package builder turns selector parse trees into ast.Selector chains.
//
// The parse tree of a selector group is flat: element names, subsequents,
// appenders and combinators appear side by side in source order. The grammar
// does not say where one simple selector ends and the next begins, so the
// builder reconstructs it:
//
//   - A combinator belongs to the selector that follows it. A combinator with
//     no selector after it is dropped.
//   - A subsequent (".cls", "#id", ":hover", "[href]") glued to the previous
//     element name or subsequent qualifies the current simple selector. One
//     separated from it by whitespace, or with nothing before it, starts an
//     implicit "*" simple selector in descendant position.
//   - A parent reference ("&") seen before any selector content becomes the
//     chain's before appender, any later one its after appender.
package builder

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/whitten/less4j/ast"
	"github.com/whitten/less4j/token"
	"github.com/whitten/less4j/tree"
)

// Dispatcher converts the inner node of a subsequent or appender into its
// ast representation.
type Dispatcher interface {
	Dispatch(n *tree.Node) (ast.Node, error)
}

// DispatcherFunc is an adapter to allow ordinary functions as dispatchers.
type DispatcherFunc func(n *tree.Node) (ast.Node, error)

// Dispatch calls f(n).
func (f DispatcherFunc) Dispatch(n *tree.Node) (ast.Node, error) {
	return f(n)
}

// CombinatorFunc converts a combinator node into its typed form.
type CombinatorFunc func(n *tree.Node) (*ast.SelectorCombinator, error)

// Builder builds selector chains. A Builder holds no per-build state and is
// safe for concurrent use as long as its dispatcher and combinator function are.
type Builder struct {
	dispatcher Dispatcher
	combinator CombinatorFunc
	logger     logrus.FieldLogger
}

// New returns a Builder using d and c. A nil d defaults to TermDispatcher and
// a nil c to NewCombinator.
func New(d Dispatcher, c CombinatorFunc) *Builder {
	if d == nil {
		d = TermDispatcher{}
	}
	if c == nil {
		c = NewCombinator
	}
	return &Builder{dispatcher: d, combinator: c, logger: discardLogger()}
}

// WithLogger returns a copy of the builder that reports dropped combinators
// and overwritten appenders to logger at debug level.
func (b *Builder) WithLogger(logger logrus.FieldLogger) *Builder {
	other := *b
	other.logger = logger
	return &other
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// BuildSelector converts the selector group n into a selector chain and
// returns its first part. It never returns a nil selector without an error.
//
// Errors from the dispatcher and the combinator function are returned as is.
func (b *Builder) BuildSelector(n *tree.Node) (*ast.Selector, error) {
	st := &state{Builder: b, group: n}

	for _, kid := range n.Children {
		var err error
		switch kid.Kind {
		case tree.IndirectAppender:
			err = st.addAppender(kid, false)
		case tree.DirectAppender:
			err = st.addAppender(kid, true)
		case tree.ElementName:
			err = st.addElementName(kid)
			st.previous = kid
		case tree.ElementSubsequent:
			err = st.addElementSubsequent(kid)
			st.previous = kid
		default:
			if st.lastCombinator != nil {
				b.logger.WithField("pos", st.lastCombinator.Pos).Debugf("combinator %s replaced by %s", st.lastCombinator.Kind, kid.Kind)
			}
			st.lastCombinator = kid
		}
		if err != nil {
			return nil, err
		}
	}

	// A group without element content still yields a selector so that
	// its appenders have a place to live.
	if st.result == nil {
		if err := st.startSelector(&ast.SimpleSelector{Star: true, EmptyForm: true, Pos: n.Pos}, n.Pos); err != nil {
			return nil, err
		}
	}
	if st.lastCombinator != nil {
		b.logger.WithField("pos", st.lastCombinator.Pos).Debugf("dropping trailing combinator %s", st.lastCombinator.Kind)
	}

	st.result.BeforeAppender = st.before
	st.result.AfterAppender = st.after
	return st.result, nil
}

// state carries one BuildSelector pass.
type state struct {
	*Builder
	group *tree.Node

	previous       *tree.Node // last element name or subsequent
	lastCombinator *tree.Node // not yet attached to a selector

	currentSimple   *ast.SimpleSelector
	currentSelector *ast.Selector
	result          *ast.Selector

	before *ast.NestedSelectorAppender
	after  *ast.NestedSelectorAppender
}

func (st *state) addAppender(kid *tree.Node, direct bool) error {
	inner := kid.Child(0)
	if inner == nil {
		return &Error{Message: fmt.Sprintf("%s without a reference", kid.Kind), Pos: kid.Pos}
	}
	node, err := st.dispatcher.Dispatch(inner)
	if err != nil {
		return err
	}

	appender := &ast.NestedSelectorAppender{Direct: direct, Node: node, Pos: kid.Pos}
	if st.result == nil {
		if st.before != nil {
			st.logger.WithField("pos", kid.Pos).Debug("overwriting before appender")
		}
		st.before = appender
	} else {
		if st.after != nil {
			st.logger.WithField("pos", kid.Pos).Debug("overwriting after appender")
		}
		st.after = appender
	}
	return nil
}

func (st *state) addElementName(kid *tree.Node) error {
	name := kid.Child(0)
	if name == nil {
		return &Error{Message: "element name without a name", Pos: kid.Pos}
	}
	return st.startSelector(&ast.SimpleSelector{
		ElementName: name.Text,
		Star:        name.Kind == tree.Star,
		Pos:         kid.Pos,
	}, kid.Pos)
}

func (st *state) addElementSubsequent(kid *tree.Node) error {
	// Whitespace between the previous element and this subsequent is a
	// descendant combinator, so the subsequent qualifies a new implicit "*".
	if st.previous == nil || st.previous.Stop+1 < kid.Start {
		return st.addWithImplicitStar(kid)
	}
	sub, err := st.subsequent(kid)
	if err != nil {
		return err
	}
	st.currentSimple.AddSubsequent(sub)
	return nil
}

func (st *state) addWithImplicitStar(kid *tree.Node) error {
	sub, err := st.subsequent(kid)
	if err != nil {
		return err
	}
	simple := &ast.SimpleSelector{Star: true, EmptyForm: true, Pos: kid.Pos}
	simple.AddSubsequent(sub)
	return st.startSelector(simple, kid.Pos)
}

func (st *state) subsequent(kid *tree.Node) (ast.ElementSubsequent, error) {
	inner := kid.Child(0)
	if inner == nil {
		return nil, &Error{Message: "element subsequent without a qualifier", Pos: kid.Pos}
	}
	node, err := st.dispatcher.Dispatch(inner)
	if err != nil {
		return nil, err
	}
	sub, ok := node.(ast.ElementSubsequent)
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("%s is not an element subsequent", inner.Kind), Pos: inner.Pos}
	}
	return sub, nil
}

// startSelector opens a new part headed by head, attaches the pending
// combinator to it and links it after the current part.
func (st *state) startSelector(head *ast.SimpleSelector, pos token.Pos) error {
	combinator, err := st.consumeLastCombinator()
	if err != nil {
		return err
	}

	sel := &ast.Selector{LeadingCombinator: combinator, Head: head, Pos: pos}
	if st.currentSelector != nil {
		st.currentSelector.Right = sel
	}
	st.currentSelector = sel
	st.currentSimple = head

	if st.result == nil {
		st.result = sel
	}
	return nil
}

func (st *state) consumeLastCombinator() (*ast.SelectorCombinator, error) {
	if st.lastCombinator == nil {
		return nil, nil
	}
	kid := st.lastCombinator
	st.lastCombinator = nil
	return st.combinator(kid)
}

// Error represents a malformed selector tree.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}
