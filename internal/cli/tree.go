package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jiphy/pkg/construct"
	"github.com/yaklabco/jiphy/pkg/convert"
)

func newTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Print the construct tree of a source file",
		Long: `Parse a source file (or standard input) and print its construct tree,
one node per line with its opening and closing text and position.

Examples:
  jiphy tree app.jiphy
  echo 'x = None' | jiphy tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTree,
	}

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error
	if len(args) == 0 || args[0] == stdinArg {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	conv, err := convert.NewDefault()
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}

	tree, err := conv.Parse(string(content))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	if err := construct.Dump(cmd.OutOrStdout(), tree); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
