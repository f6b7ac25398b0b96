// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/cfo/ast"
	"github.com/creachadair/cfo/partial"
	"github.com/creachadair/cfo/syntax"
	"github.com/spf13/cobra"
)

func closeCmd() *cobra.Command {
	var parse bool
	var selectExpr string
	cmd := &cobra.Command{
		Use:   "close [text]",
		Short: "Close a truncated JSON text",
		Long: `Close a truncated JSON text by appending the closing quotes, braces, and
brackets it needs, and print the result. The text is read from the arguments,
or from standard input if there are none.

With --parse, print the compact JSON of the closed text instead, or fail if
it does not parse.

With --select, parse the closed text and print each value matched by the
given JSONPath expression, one per line. For example:

  cfo close --select '$.actions[*]._type' < reply.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) != 0 {
				text = strings.Join(args, " ")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			var sel *ast.Selector
			if selectExpr != "" {
				var err error
				sel, err = ast.Compile(selectExpr)
				if err != nil {
					return fmt.Errorf("invalid --select: %w", err)
				}
			} else if !parse {
				fmt.Fprintln(cmd.OutOrStdout(), syntax.Close(text))
				return nil
			}
			v := partial.Parse(text)
			if v == nil {
				return errors.New("input cannot be closed into valid JSON")
			}
			if sel == nil {
				fmt.Fprintln(cmd.OutOrStdout(), v.JSON())
				return nil
			}
			for _, elt := range sel.Select(v) {
				fmt.Fprintln(cmd.OutOrStdout(), elt.JSON())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&parse, "parse", false, "Parse the closed text and print it as compact JSON")
	cmd.Flags().StringVar(&selectExpr, "select", "", "Print the values matching this JSONPath expression")
	return cmd
}
