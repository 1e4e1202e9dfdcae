// Package cli provides the Cobra command structure for plugmod.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/plugmod/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root plugmod command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "plugmod",
		Short: "Apply config plugins to the native projects of a React Native app",
		Long: `plugmod applies config plugins to the android/ and ios/ projects of an
Expo or React Native app.

Each native file is read once, passed through the mods of every enabled
plugin and written back atomically. Generated blocks are tagged so that
running plugmod again leaves an up-to-date project untouched.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newModsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
