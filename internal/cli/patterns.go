package cli

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jiphy/internal/ui/pretty"
	"github.com/yaklabco/jiphy/pkg/construct"
)

func newPatternsCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the recognized triggers in precedence order",
		Long: `List every trigger of the global pattern table in the order it is tried,
with the construct kind it opens, the syntax it is spelled in and what it
becomes in the other syntax.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := construct.NewCatalogue()
			if err != nil {
				return fmt.Errorf("build catalogue: %w", err)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, cmd.OutOrStdout()))
			if _, err := fmt.Fprint(cmd.OutOrStdout(), patternTable(styles, cat).String()); err != nil {
				return fmt.Errorf("write patterns: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// patternTable lays out the global table's bindings, one row per trigger.
func patternTable(styles *pretty.Styles, cat *construct.Catalogue) *pretty.Table {
	table := pretty.NewTable(styles, "#", "TRIGGER", "KIND", "SYNTAX", "BECOMES")

	bindings := cat.Table(construct.ScopeGlobal).Bindings()
	rows := make([][]string, 0, len(bindings))
	for i, binding := range bindings {
		syntax, foreign := "", ""
		if kind := cat.Kind(binding.Kind); kind != nil {
			if opener, ok := lo.Find(kind.Openers, func(o construct.Opener) bool {
				return o.Trigger == binding.Trigger
			}); ok {
				syntax = syntaxName(opener.Target)
				switch {
				case opener.Target == construct.Both:
				case opener.Foreign == "" && kind.Render[opener.Target.Other()] != nil:
					foreign = "(shape)"
				default:
					foreign = strconv.Quote(opener.Foreign)
				}
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Quote(binding.Trigger),
			binding.Kind.String(),
			syntax,
			foreign,
		})
	}
	table.AddGroup(rows...)

	return table
}

func syntaxName(target construct.Target) string {
	if target == construct.Both {
		return "both"
	}
	return target.Name()
}
