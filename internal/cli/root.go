// Package cli provides the Cobra command structure for jiphy.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jiphy/internal/logging"
	"github.com/yaklabco/jiphy/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root jiphy command with all subcommands.
// Run without a subcommand, it converts like "jiphy convert".
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	flags := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:   "jiphy [files...]",
		Short: "Convert source between Python and JavaScript syntax",
		Long: `jiphy rewrites source text between Python and JavaScript syntax.

It recognizes the constructs the two languages spell differently (blocks,
comments, strings, literals, keywords and operators) and renders each in the
requested syntax, leaving everything else untouched. Conversion is purely
textual: there is no type or semantic analysis.

Run without a subcommand, jiphy behaves like "jiphy convert".`,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{annotationTargets: ""},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globals.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, globals, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	addConvertFlags(rootCmd, flags)

	rootCmd.AddCommand(newConvertCommand(globals))
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newPatternsCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, string(config.ColorAuto), os.Stdout)

	return rootCmd
}
