package main

import (
	"fmt"
	"os"

	"github.com/automoto/tiledmap/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tmxinfo",
		Short:         "Inspect Tiled TMX maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newTilesCmd())
	root.AddCommand(newGIDCmd())
	root.AddCommand(newCollideCmd())
	root.AddCommand(newVerifyCmd())
	return root
}

// loadSceneConfig returns the defaults when path is empty.
func loadSceneConfig(path string) (config.Scene, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
