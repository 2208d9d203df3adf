package ast

import (
	"fmt"
	"io"
)

// Printer writes selector nodes back out as CSS text.
type Printer struct {
	// Compact drops the spaces around explicit combinators ("a>b").
	Compact bool
}

// Print writes n to w.
func (p *Printer) Print(w io.Writer, n Node) error {
	ew := &errWriter{w: w}
	p.print(ew, n)
	return ew.err
}

func (p *Printer) print(w *errWriter, n Node) {
	switch n := n.(type) {
	case *Selector:
		if n == nil {
			return
		}
		blank := n.isBlank()
		if a := n.BeforeAppender; a != nil {
			p.print(w, a)
			if !a.Direct && !blank {
				w.WriteString(" ")
			}
		}
		for i, part := range n.Parts() {
			if i > 0 || part.LeadingCombinator != nil {
				p.printCombinator(w, part.LeadingCombinator, i == 0)
			}
			p.print(w, part.Head)
		}
		if a := n.AfterAppender; a != nil {
			if !a.Direct && !blank {
				w.WriteString(" ")
			}
			p.print(w, a)
		}

	case *SimpleSelector:
		if n == nil {
			return
		}
		if !n.EmptyForm {
			if n.Star {
				w.WriteString("*")
			} else {
				w.WriteString(n.ElementName)
			}
		}
		for _, s := range n.Subsequent {
			p.print(w, s)
		}

	case *SelectorCombinator:
		if n == nil {
			return
		}
		w.WriteString(n.String())

	case nil:
		// nop

	default:
		w.WriteString(n.String())
	}
}

// isBlank reports whether the chain prints as nothing: a single implicit
// part with no qualifiers and no visible combinator.
func (s *Selector) isBlank() bool {
	if s.Right != nil || !s.Head.isBlank() {
		return false
	}
	return s.LeadingCombinator == nil || s.LeadingCombinator.Kind == Descendant
}

func (s *SimpleSelector) isBlank() bool {
	return s == nil || (s.EmptyForm && len(s.Subsequent) == 0)
}

// printCombinator writes the combinator in front of a part. A nil
// combinator is a descendant relation.
func (p *Printer) printCombinator(w *errWriter, c *SelectorCombinator, first bool) {
	if c == nil || c.Kind == Descendant {
		if !first {
			w.WriteString(" ")
		}
		return
	}

	switch {
	case p.Compact:
		w.WriteString(c.String())
	case first:
		w.WriteString(c.String() + " ")
	default:
		w.WriteString(" " + c.String() + " ")
	}
}

// errWriter stops writing after the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Dump returns a one-line description of every part of the chain, used for
// debugging output, e.g. "[div] child:[span.x]".
func Dump(s *Selector) string {
	var out string
	for i, part := range s.Parts() {
		if i > 0 {
			out += " "
		}
		if part.LeadingCombinator != nil {
			out += part.LeadingCombinator.Kind.String() + ":"
		}
		out += fmt.Sprintf("[%s]", part.Head)
	}
	return out
}
