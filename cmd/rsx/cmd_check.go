package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/rsx/codebase"
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [dir|file...]",
		Short: "Report syntax errors in markup files",
		Long: `Parse every .rsx file below the given directories (default: the
current directory) and print one line per syntax error.

Exits non-zero when any file fails to parse.

With --watch, keeps running and rechecks files in a single directory as
they change.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			cfg, err := loadConfig(args[0])
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				return watchDir(cmd, codebase.New(args[0], cfg.ParserOptions()...))
			}

			var failed int
			var checked int
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}

				var cb *codebase.Codebase
				if info.IsDir() {
					cb = codebase.New(arg, cfg.ParserOptions()...)
					if err := cb.ScanAll(); err != nil {
						return fmt.Errorf("scan %s: %w", arg, err)
					}
				} else {
					cb = codebase.New(".", cfg.ParserOptions()...)
					if err := cb.ScanFile(arg); err != nil && cb.GetFile(arg) == nil {
						return err
					}
				}

				for _, file := range cb.Files() {
					checked++
					if file.Err != nil {
						failed++
						fmt.Fprintln(cmd.OutOrStdout(), file.Err)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files have syntax errors", failed, checked)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "recheck files as they change")

	return cmd
}

func watchDir(cmd *cobra.Command, cb *codebase.Codebase) error {
	w, err := codebase.NewFileWatcher(cb)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := func(file *codebase.FileInfo) {
		if file.Err != nil {
			fmt.Fprintln(out, file.Err)
			return
		}
		fmt.Fprintf(out, "%s: ok\n", file.Path)
	}
	for _, file := range cb.Files() {
		if file.Err != nil {
			report(file)
		}
	}
	w.OnChange(report)
	w.OnRemove(func(path string) {
		fmt.Fprintf(out, "%s: removed\n", path)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return w.Run(ctx)
}
