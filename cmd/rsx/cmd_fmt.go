package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/rsx/format"
	"github.com/dhamidi/rsx/markup/parser"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print markup in canonical form",
		Long: `Pretty-print markup to stdout.

If no file is provided, reads markup from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}

			cfg, err := loadConfig(sourceDir(args))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrintMarkup(source, name,
				format.WithIndent(cfg.Indent),
				format.WithParserOptions(parser.WithExprParser(cfg.ExprParser())))
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(name, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
