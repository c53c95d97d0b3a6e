package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "perfcart",
		Short: "perfcart is a tool to grow performance regression trees",
		Long:  `A tool to grow regression trees that explain the performance of configurations from their binary features, and use them to make predictions`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of the commands, including every node branched out")
	rootCmd.AddCommand(versionCmd(), growCmd(config), treeCmd(config))
	return rootCmd
}
