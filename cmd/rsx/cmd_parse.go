package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/rsx/config"
	"github.com/dhamidi/rsx/format"
	"github.com/dhamidi/rsx/markup/lexer"
	"github.com/dhamidi/rsx/markup/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var flatten bool
	var expressions string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse markup and dump the node tree",
		Long: `Parse markup from a file, or stdin when no file is given, and write
the resulting nodes to stdout.

Output formats: ` + strings.Join(format.Names(), ", ") + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(sourceDir(args))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			opts := cfg.ParserOptions()
			if cmd.Flags().Changed("flatten") {
				opts = append(opts, parser.WithFlatten(flatten))
			}
			if cmd.Flags().Changed("expressions") {
				cfg.Expressions = expressions
				if err := cfg.Validate(); err != nil {
					return err
				}
				opts = append(opts, parser.WithExprParser(cfg.ExprParser()))
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Format
			}

			encoder, err := format.NewEncoder(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(source, name)
			if err != nil {
				return err
			}
			nodes, err := parser.ParseTokens(tokens, opts...)
			if err != nil {
				return err
			}

			if err := encoder.Encode(nodes); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "emit nodes in document order instead of as a tree")
	cmd.Flags().StringVar(&expressions, "expressions", config.ExpressionsOpaque, "embedded expression checking (opaque, go)")

	return cmd
}
