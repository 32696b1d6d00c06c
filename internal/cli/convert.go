package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	flowio "github.com/matzehuels/sankey/pkg/io"
)

// convertCommand creates the convert command, which rewrites a flow file
// in another encoding chosen by the output extension.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a flow file between JSON, YAML, TOML and SQLite",
		Example: `  sankey convert energy.json energy.yml
  sankey convert budget.toml budget.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if _, err := flowio.DetectFormat(out); err != nil {
				return err
			}
			p := newProgress(c.Logger)
			g, err := flowio.Import(cmd.Context(), in)
			if err != nil {
				return err
			}
			if err := flowio.Export(cmd.Context(), g, out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			p.done(fmt.Sprintf("Converted %d nodes, %d flows", g.NodeCount(), g.EdgeCount()))
			printSuccess("Converted %s", in)
			printFile(out)
			return nil
		},
	}
}
