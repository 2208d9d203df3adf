package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whitten/less4j/parser"
	"github.com/whitten/less4j/scanner"
)

func newTreeCommand(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:     "tree <selectors>",
		Short:   "Print the parse tree of each selector in a group list",
		Example: `  lessel tree 'div > .cls, &-suffix'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := scanner.New(strings.NewReader(args[0]))
			groups, err := parser.ParseSelectorGroups(sc)
			for _, n := range groups {
				if _, werr := fmt.Fprintln(gs.stdout, n); werr != nil {
					return werr
				}
			}
			if len(sc.Errors) > 0 {
				return sc.Errors[0]
			}
			return err
		},
	}
}
