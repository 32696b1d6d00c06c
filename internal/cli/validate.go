package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	flowio "github.com/matzehuels/sankey/pkg/io"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [flows]",
		Short: "Check a flow file for structural problems",
		Long: `Check a flow file for structural problems.

Reports cycles, flows that skip levels (they are not drawn), nodes without
flow, and intermediate nodes whose inflow differs from their outflow. None
of these stop a render; with --strict any finding makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			g, err := flowio.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			issues := flow.Check(g)
			c.Logger.Debug("checked flows", "issues", len(issues), "duration", time.Since(start))

			printKeyValue("File", args[0])
			printKeyValue("Nodes", fmt.Sprint(g.NodeCount()))
			printKeyValue("Flows", fmt.Sprint(g.EdgeCount()))
			printKeyValue("Levels", fmt.Sprint(len(g.Levels())))
			printKeyValue("Sources", fmt.Sprint(len(g.Sources())))
			printKeyValue("Sinks", fmt.Sprint(len(g.Sinks())))
			printNewline()

			if len(issues) == 0 {
				printSuccess("No issues found")
				return nil
			}
			printIssues(issues)
			if strict {
				return errors.New(errors.ErrCodeInvalidInput, "%d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any issue is found")
	return cmd
}
