package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/plugmod/internal/configloader"
	"github.com/yaklabco/plugmod/internal/logging"
	"github.com/yaklabco/plugmod/internal/ui/pretty"
	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/mods"
	"github.com/yaklabco/plugmod/pkg/plugins"
)

type applyFlags struct {
	platforms []string
	commit    string
	format    string
	check     bool
}

func newApplyCommand() *cobra.Command {
	var cfg config.Config
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [project-root]",
		Short: "Apply the enabled plugins to the native projects",
		Long:  applyLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.platforms, "platform", nil, "platforms to modify: android, ios")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing them")
	cmd.Flags().BoolVar(&flags.check, "check", false, "dry run that fails when any file would change")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.commit, "commit", "", "when to write files: file or platform")
	cmd.Flags().BoolVar(&cfg.Concurrent, "concurrent", false, "run platforms in parallel")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text or diff")

	return cmd
}

const applyLongDescription = `Run every enabled plugin against the android/ and ios/ projects.

The project root defaults to the directory holding plugmod.yml, or the
current directory. Files are written when their mods finish; use
--commit platform to hold every write until the whole platform succeeded.

Examples:
  plugmod apply                      # Apply to the current project
  plugmod apply ./my-app             # Apply to another project
  plugmod apply --platform ios       # Only modify ios/
  plugmod apply --dry-run --format diff
  plugmod apply --check              # Fail when native files are out of date`

func runApply(cmd *cobra.Command, args []string, cfg *config.Config, flags *applyFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Only values given on the command line override the config layers.
	if cmd.Flags().Changed("platform") {
		cfg.Platforms = flags.platforms
	}
	cfg.Commit = config.CommitMode(flags.commit)
	cfg.Format = config.OutputFormat(flags.format)
	if flags.check {
		cfg.DryRun = true
	}

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
		cfg.ProjectRoot = args[0]
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		KnownPlugins: plugins.Names(),
		CLIConfig:    cfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	project := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPath, project.ProjectRoot,
		logging.FieldPlatforms, project.Platforms,
		logging.FieldCommit, project.Commit,
		logging.FieldDryRun, project.DryRun,
	)

	reg, err := plugins.NewRegistry(project)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	result, runErr := mods.Compile(ctx, reg, project, mods.OptionsFromConfig(project))

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}
	out := cmd.OutOrStdout()
	if err := printResult(out, pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)), result, project); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("apply: %w", runErr)
	}
	if flags.check && result.HasChanges() {
		return ErrChangesPending
	}
	return nil
}

func printResult(out io.Writer, styles *pretty.Styles, result *mods.Result, project *config.Config) error {
	if result == nil {
		return nil
	}

	var text string
	switch project.Format {
	case config.FormatDiff:
		text = styles.FormatDiffs(result) + styles.FormatWarnings(result.Warnings)
	default:
		text = styles.FormatResult(result, project.ProjectRoot, project.DryRun)
	}

	if _, err := io.WriteString(out, text); err != nil {
		return errors.Join(errors.New("write output"), err)
	}
	return nil
}
