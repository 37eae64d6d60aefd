package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "hunt",
		Short:   "Parser combinators with back-references, driven by EBNF",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbosity)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newMarkupCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configureLogging sends log output to the file named by HUNT_LOG, or to
// stderr when it is unset.
func configureLogging(verbosity int) {
	var path *string
	if logFile := os.Getenv("HUNT_LOG"); logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
}
