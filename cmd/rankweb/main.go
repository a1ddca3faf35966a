// Command rankweb serves and exports the weekly episode and most anticipated
// anime rankings.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dataSource string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "rankweb",
		Short:         "Render anime rankings as web pages",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&flags.dataSource, "data", "", "payload directory or http(s) base URL")

	root.AddCommand(newServeCmd(&flags), newBuildCmd(&flags))
	return root
}
