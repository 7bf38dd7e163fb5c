package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/jiphy/internal/configloader"
	"github.com/yaklabco/jiphy/internal/logging"
	"github.com/yaklabco/jiphy/pkg/config"
	"github.com/yaklabco/jiphy/pkg/convert"
	"github.com/yaklabco/jiphy/pkg/reporter"
	"github.com/yaklabco/jiphy/pkg/runner"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// stdinName labels standard input in diffs and diagnostics.
const stdinName = "stdin"

type convertFlags struct {
	cfg       config.Config
	format    string
	noContext bool
	compact   bool
}

func newConvertCommand(globals *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert files between Python and JavaScript syntax",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, globals, flags)
		},
	}

	addConvertFlags(cmd, flags)

	return cmd
}

const convertLongDescription = `Convert files between Python and JavaScript syntax.

Files named on the command line are always converted. Directories are
scanned for files with the input extension (.jiphy by default), recursively
with --recursive. Each output is written next to its source (or under
--out-dir) with the target's extension. With "-", or with no arguments and
piped input, standard input is converted to standard output.

Examples:
  jiphy convert app.jiphy             # Write app.js
  jiphy convert --to py app.jiphy     # Write app.py
  jiphy convert --to auto legacy.py   # Detect the source syntax, write legacy.js
  jiphy convert -r src/               # Convert every .jiphy file under src/
  jiphy convert --diff app.jiphy      # Show what would change
  cat app.jiphy | jiphy convert -     # Convert stdin to stdout`

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cfg := &flags.cfg
	cmd.Flags().StringVarP(&cfg.Target, "to", "o", "", "target syntax: py, js or auto (default js)")
	cmd.Flags().StringVarP(&cfg.OutExt, "out-ext", "e", "", "output file extension (default: the target's)")
	cmd.Flags().StringVarP(&cfg.InExt, "in-ext", "i", "", "source extension picked up in directories (default jiphy)")
	cmd.Flags().BoolVarP(&cfg.Recursive, "recursive", "r", false, "walk directories recursively")
	cmd.Flags().StringVar(&cfg.OutDir, "out-dir", "", "directory for converted files (default: next to each source)")
	cmd.Flags().BoolVarP(&cfg.Diff, "diff", "d", false, "print a unified diff instead of writing files")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.KeepTrailingWhitespace, "keep-trailing-whitespace", false,
		"keep trailing whitespace on output lines")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "convert without writing files")
	cmd.Flags().BoolVar(&cfg.Backups.Enabled, "backup", false,
		"copy an existing output file to <file>.jiphy.bak before replacing it")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, diff, json, summary (default text)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in warnings")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

// commandContext returns the command's context, or a background context
// when the command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runConvert(cmd *cobra.Command, args []string, globals *globalFlags, flags *convertFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cliCfg := flags.cfg
	cliCfg.Format = config.OutputFormat(flags.format)
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(globals.color)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLIConfig:           &cliCfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldTarget, cfg.Target,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	conv, err := convert.NewDefault()
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}
	conversionRunner := runner.New(conv)

	if readsStdin(cmd.InOrStdin(), args) {
		return convertStdin(ctx, cmd, conversionRunner.Pipeline, cfg)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting conversion run",
		logging.FieldFiles, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := conversionRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("conversion run: %w", err)
	}

	format := cfg.Format
	if cfg.Diff && format == reporter.FormatText {
		format = reporter.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		DryRun:      cfg.DryRun || cfg.Diff,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}

// readsStdin reports whether the command converts standard input: either
// "-" is the only argument, or there are no arguments and input is piped.
func readsStdin(in io.Reader, args []string) bool {
	switch {
	case len(args) == 1 && args[0] == stdinArg:
		return true
	case len(args) == 0:
		return !isInteractive(in)
	default:
		return false
	}
}

// isInteractive reports whether in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// convertStdin converts standard input to standard output, or prints its
// diff with --diff.
func convertStdin(ctx context.Context, cmd *cobra.Command, pipeline *runner.Pipeline, cfg *config.Config) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	outcome := pipeline.ProcessContent(ctx, stdinName, content, runner.PipelineOptionsFromConfig(cfg))
	if outcome.Error != nil {
		logging.FromContext(ctx).Error("conversion failed", logging.FieldError, outcome.Error)
		return errors.Join(ErrConversionFailed, outcome.Error)
	}

	for _, d := range outcome.Result.Diagnostics {
		logging.FromContext(ctx).Warn(d.Message(),
			logging.FieldFile, stdinName,
			logging.FieldLine, d.Line,
			logging.FieldColumn, d.Column,
		)
	}

	out := cmd.OutOrStdout()
	if cfg.Diff {
		_, err = io.WriteString(out, outcome.Diff.String())
	} else {
		_, err = out.Write(outcome.Output())
	}
	if err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
