package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jiphy/internal/configloader"
	"github.com/yaklabco/jiphy/internal/logging"
	"github.com/yaklabco/jiphy/pkg/config"
	"github.com/yaklabco/jiphy/pkg/fsutil"
)

// ErrConfigExists is returned when init would replace a config file
// without --force.
var ErrConfigExists = errors.New("configuration file already exists")

type initFlags struct {
	force  bool
	full   bool
	stdout bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .jiphy.yml",
		Long: `Write a project configuration file holding jiphy's defaults. The
file is found automatically by later runs in this directory or below it.`,
		Example: `  jiphy init                       Commented minimal .jiphy.yml
  jiphy init --full                Every setting with its default
  jiphy init --output custom.yml   Write somewhere else
  jiphy init --print               Show the file without writing it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&flags.force, "force", "f", false, "replace an existing configuration file")
	fs.BoolVar(&flags.full, "full", false, "include every setting, not just the common ones")
	fs.BoolVar(&flags.stdout, "print", false, "write the configuration to stdout instead of a file")
	fs.StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "file to create")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if flags.stdout {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	path, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", flags.output, err)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.LevelInfo)

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !flags.force {
		return fmt.Errorf("%w: %s; use --force to overwrite", ErrConfigExists, flags.output)
	}
	if exists {
		logger.Warn("overwriting existing file", logging.FieldFile, flags.output)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("created configuration file", logging.FieldFile, flags.output)
	return nil
}
