package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/plugmod/internal/configloader"
	"github.com/yaklabco/plugmod/internal/ui/pretty"
	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/mods"
	"github.com/yaklabco/plugmod/pkg/plugins"
)

func newModsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "mods",
		Short: "List the mods of the enabled plugins",
		Long: `List the mods that apply would run, in execution order.

Plugins are filtered by the plugins and disabled_plugins settings of the
resolved configuration. Use --all to list every built-in plugin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMods(cmd, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every built-in plugin, ignoring the configuration")

	return cmd
}

func runMods(cmd *cobra.Command, all bool) error {
	project := config.NewConfig()
	if !all {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return fmt.Errorf("get config flag: %w", err)
		}
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
			WorkingDir:   workDir,
			ExplicitPath: configPath,
			KnownPlugins: plugins.Names(),
		})
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		project = loadResult.Config
	}

	reg, err := plugins.NewRegistry(project)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	var entries []mods.Entry
	for _, entry := range reg.Entries() {
		if slices.Contains(project.Platforms, string(entry.Platform)) {
			entries = append(entries, entry)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	if _, err := io.WriteString(out, styles.FormatModsTable(pretty.ModRows(entries))); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
