package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/plugmod/internal/configloader"
	"github.com/yaklabco/plugmod/pkg/plugins"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [project-root]",
		Short: "Print the resolved configuration",
		Long: `Print the configuration apply would use after merging the system, user,
project and explicit config files with PLUGMOD_* environment variables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if len(args) == 1 {
		workDir = args[0]
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		KnownPlugins: plugins.Names(),
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	header := "# project root: " + loadResult.Config.ProjectRoot
	for _, path := range loadResult.LoadedFrom {
		header += "\n# loaded from: " + path
	}
	for _, warning := range loadResult.Warnings {
		header += "\n# warning: " + strings.ReplaceAll(warning, "\n", " ")
	}

	out, err := loadResult.Config.ToYAMLWithHeader(header)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
