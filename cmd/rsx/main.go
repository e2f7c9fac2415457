package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/rsx/config"
)

const version = "0.1.0"

var (
	configPath string
	verbosity  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rsx",
		Short:   "Parse, check and format rsx markup",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: nearest rsx.toml, rsx.yaml or rsx.yml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the --config file, or discovers one above dir.
func loadConfig(dir string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Discover(dir)
}
