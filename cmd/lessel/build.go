package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/whitten/less4j"
	"github.com/whitten/less4j/ast"
	"github.com/whitten/less4j/builder"
)

func newBuildCommand(gs *globalState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [selectors...]",
		Short: "Build selector chains and print them",
		Long: `Build parses each argument as a comma separated selector list and prints
the resulting selector chains. Without arguments one input is read per line
from standard input.`,
		Example: `  lessel build '.a > .b' 'div:hover, &-x'
  lessel build --format yaml < selectors.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				if gs.stdinIsTTY {
					return errors.New("no selectors given and stdin is a terminal")
				}
				var err error
				if inputs, err = readLines(gs.stdin); err != nil {
					return err
				}
			}

			results, err := gs.buildAll(cmd, inputs)
			if err != nil {
				return err
			}
			if err := gs.writeResults(results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(results))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("format", "text", "output format (text|yaml|json)")
	flags.Int("jobs", 0, "number of inputs built in parallel (0 means GOMAXPROCS)")
	flags.Bool("compact", false, "print selectors without spaces around combinators")
	return cmd
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

type buildResult struct {
	input     string
	selectors []*ast.Selector
	err       error
}

// buildAll builds every input, keeping the results in input order.
func (gs *globalState) buildAll(cmd *cobra.Command, inputs []string) ([]buildResult, error) {
	jobs := gs.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]buildResult, len(inputs))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, min(jobs, len(inputs))))

	for i, input := range inputs {
		g.Go(func(i int, input string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				logger := gs.logger.WithField("input", input)
				p := less4j.Parser{Builder: builder.New(nil, nil).WithLogger(logger)}
				sels, err := p.ParseSelectors(strings.NewReader(input))
				results[i] = buildResult{input: input, selectors: sels, err: err}
				if err != nil {
					logger.WithError(err).Debug("build failed")
				} else {
					logger.WithField("selectors", len(sels)).Debug("built")
				}
				return nil
			}
		}(i, input))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (gs *globalState) writeResults(results []buildResult) error {
	switch gs.cfg.Format {
	case "yaml":
		enc := yaml.NewEncoder(gs.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(gs.views(results)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(gs.stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(gs.views(results))
	default:
		return gs.writeText(results)
	}
}

type inputView struct {
	Input     string         `yaml:"input" json:"input"`
	Selectors []selectorView `yaml:"selectors,omitempty" json:"selectors,omitempty"`
	Error     string         `yaml:"error,omitempty" json:"error,omitempty"`
}

type selectorView struct {
	CSS      string        `yaml:"css" json:"css"`
	Subject  string        `yaml:"subject,omitempty" json:"subject,omitempty"`
	Combined bool          `yaml:"combined,omitempty" json:"combined,omitempty"`
	Before   *appenderView `yaml:"before,omitempty" json:"before,omitempty"`
	After    *appenderView `yaml:"after,omitempty" json:"after,omitempty"`
	Parts    []partView    `yaml:"parts" json:"parts"`
}

type partView struct {
	Pos        string   `yaml:"pos" json:"pos"`
	Combinator string   `yaml:"combinator,omitempty" json:"combinator,omitempty"`
	Element    string   `yaml:"element,omitempty" json:"element,omitempty"`
	Implicit   bool     `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Subsequent []string `yaml:"subsequent,omitempty" json:"subsequent,omitempty"`
}

type appenderView struct {
	Direct bool `yaml:"direct" json:"direct"`
}

func (gs *globalState) views(results []buildResult) []inputView {
	views := make([]inputView, 0, len(results))
	for _, r := range results {
		v := inputView{Input: r.input}
		if r.err != nil {
			v.Error = r.err.Error()
		}
		for _, s := range r.selectors {
			v.Selectors = append(v.Selectors, gs.selectorView(s))
		}
		views = append(views, v)
	}
	return views
}

func (gs *globalState) selectorView(s *ast.Selector) selectorView {
	v := selectorView{
		CSS:      gs.css(s),
		Subject:  s.Last().Head.String(),
		Combined: s.IsCombined(),
		Before:   newAppenderView(s.BeforeAppender),
		After:    newAppenderView(s.AfterAppender),
	}
	for i, part := range s.Parts() {
		pv := partView{
			Pos:      ast.Position(part.Head).String(),
			Element:  elementName(part.Head),
			Implicit: part.Head.EmptyForm,
		}
		if i > 0 {
			pv.Combinator = relation(part)
		}
		for _, sub := range part.Head.Subsequent {
			pv.Subsequent = append(pv.Subsequent, sub.String())
		}
		v.Parts = append(v.Parts, pv)
	}
	return v
}

func newAppenderView(a *ast.NestedSelectorAppender) *appenderView {
	if a == nil {
		return nil
	}
	return &appenderView{Direct: a.Direct}
}

func elementName(h *ast.SimpleSelector) string {
	switch {
	case h.EmptyForm:
		return ""
	case h.Star:
		return "*"
	}
	return h.ElementName
}

func (gs *globalState) css(s *ast.Selector) string {
	var buf bytes.Buffer
	_ = (&ast.Printer{Compact: gs.cfg.Compact}).Print(&buf, s)
	return buf.String()
}

// relWidth pads the relation column of text output.
const relWidth = 18

// writeText prints each selector followed by one line per part:
//
//	div > .x
//	  head              div
//	  child             * .x
func (gs *globalState) writeText(results []buildResult) error {
	w := bufio.NewWriter(gs.stdout)
	for _, r := range results {
		for _, s := range r.selectors {
			gs.palette.selector.Fprintln(w, gs.css(s))
			if a := s.BeforeAppender; a != nil {
				fmt.Fprintf(w, "  %s%s\n", gs.palette.combinator.Sprintf("%-*s", relWidth, "before"), appenderText(a))
			}
			for i, part := range s.Parts() {
				rel := "head"
				if i > 0 {
					rel = relation(part)
				}
				fmt.Fprintf(w, "  %s%s\n", gs.palette.combinator.Sprintf("%-*s", relWidth, rel), gs.headText(part.Head))
			}
			if a := s.AfterAppender; a != nil {
				fmt.Fprintf(w, "  %s%s\n", gs.palette.combinator.Sprintf("%-*s", relWidth, "after"), appenderText(a))
			}
		}
		if r.err != nil {
			gs.palette.err.Fprintf(w, "%s: %s\n", r.input, r.err)
		}
	}
	return w.Flush()
}

func (gs *globalState) headText(h *ast.SimpleSelector) string {
	name := elementName(h)
	if h.EmptyForm {
		name = "*"
	}
	parts := []string{name}
	for _, sub := range h.Subsequent {
		parts = append(parts, gs.palette.subsequent.Sprint(sub.String()))
	}
	return strings.Join(parts, " ")
}

// relation names the combinator leading to part.
func relation(part *ast.Selector) string {
	if c := part.LeadingCombinator; c != nil && c.Kind == ast.Named {
		return c.Kind.String() + ":" + c.Name
	}
	return part.Relation().String()
}

func appenderText(a *ast.NestedSelectorAppender) string {
	if a.Direct {
		return "& (direct)"
	}
	return "&"
}
