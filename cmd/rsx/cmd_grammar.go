package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/rsx/markup/parser"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the markup grammar in EBNF",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !check {
				fmt.Fprint(cmd.OutOrStdout(), parser.GrammarSource())
				return nil
			}

			grammar, err := parser.Grammar()
			if err != nil {
				printErrors(cmd, err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions reachable from %s\n", len(grammar), parser.GrammarStart)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "parse and verify the grammar instead of printing it")

	return cmd
}

// printErrors prints one line per error. ebnf reports an error list, which
// may be wrapped.
func printErrors(cmd *cobra.Command, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(cmd.ErrOrStderr(), v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
}
