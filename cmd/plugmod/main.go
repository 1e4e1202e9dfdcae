// Package main is the entry point for the plugmod CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/plugmod/internal/cli"
	"github.com/yaklabco/plugmod/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrChangesPending):
		// apply --check already printed what would change.
		logging.Default().Warn(err.Error())
	default:
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
