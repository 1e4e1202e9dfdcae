package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/plugmod/internal/configloader"
	"github.com/yaklabco/plugmod/internal/logging"
	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/plugins"
)

type initFlags struct {
	force  bool
	full   bool
	name   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a plugmod.yml configuration file",
		Long: `Create a plugmod.yml configuration file in the current directory.

When the file already exists and stdin is a terminal, plugmod asks before
overwriting it. Otherwise --force is required.

Examples:
  plugmod init                      Create a minimal plugmod.yml
  plugmod init --name "My App"      Set the app name
  plugmod init --full               Document every option and plugin
  plugmod init --output app.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every option and list the built-in plugins")
	cmd.Flags().StringVar(&flags.name, "name", "", "app display name")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	force := flags.force
	if _, err := os.Stat(absPath); err == nil && !force {
		if !isInteractive(cmd.InOrStdin()) {
			return fmt.Errorf("file %q already exists; use --force to overwrite: %w", flags.output, fs.ErrExist)
		}
		ok, err := confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("Overwrite %s? [y/N] ", flags.output))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("kept existing file", logging.FieldPath, flags.output)
			return nil
		}
		force = true
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Name:    flags.name,
		Full:    flags.full,
		Plugins: plugins.Infos(),
	})
	if err := configloader.WriteConfig(absPath, content, force); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite: %w", flags.output, err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'plugmod mods' to see what apply will change")

	return nil
}

// isInteractive reports whether in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm writes prompt and reads a yes/no answer; anything but y or yes is no.
func confirm(out io.Writer, in io.Reader, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
