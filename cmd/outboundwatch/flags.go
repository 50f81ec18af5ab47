package main

import (
	"github.com/spf13/cobra"
)

// AppFlags holds the command-line options of the monitor.
type AppFlags struct {
	ConfigFile string
	Once       bool
}

func (f *AppFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ConfigFile, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	cmd.Flags().BoolVar(&f.Once, "once", false, "Run a single monitoring cycle and exit")
}

// configPath prefers the positional argument over --config.
func (f AppFlags) configPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return f.ConfigFile
}
