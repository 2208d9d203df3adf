package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/whitten/less4j/scanner"
	"github.com/whitten/less4j/token"
)

func newTokensCommand(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <selector>",
		Short: "Print the token stream of a selector",
		Example: `  lessel tokens 'div > .cls'
  lessel tokens '&:hover'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := scanner.New(strings.NewReader(args[0]))
			w := tabwriter.NewWriter(gs.stdout, 0, 4, 2, ' ', 0)
			for {
				tok := sc.Scan()
				fmt.Fprintf(w, "%d\t%s\t%s\t%q\n", tok.Index, tok.Pos, tok.Kind, tok.String())
				if tok.Kind == token.EOF {
					break
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, e := range sc.Errors {
				gs.logger.WithField("pos", e.Pos).Warn(e.Message)
			}
			if len(sc.Errors) > 0 {
				return sc.Errors[0]
			}
			return nil
		},
	}
}
