package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/flow"
	flowio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// inspectCommand creates the inspect command, an interactive browser of
// levels and nodes.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [flows]",
		Short: "Browse the levels and nodes of a flow file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flowio.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			levels := summarize(g)
			if len(levels) == 0 {
				printInfo("%s has no nodes", args[0])
				return nil
			}

			title := args[0]
			if t, ok := g.Meta()["title"].(string); ok && t != "" {
				title = t
			}
			p := tea.NewProgram(NewInspectModel(title, levels), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			return nil
		},
	}
}

// levelSummary is one column as shown by inspect.
type levelSummary struct {
	Level int
	Nodes []nodeSummary
}

// nodeSummary is one node with its flow totals.
type nodeSummary struct {
	ID    flow.NodeID
	Name  string
	In    float64
	Out   float64
	Color string
}

// summarize groups nodes by level in drawing order, bottom node first.
// Gap levels are kept so the level numbers stay contiguous.
func summarize(g *flow.Graph) []levelSummary {
	p := layout.PartitionLevels(g.Nodes())
	out := make([]levelSummary, 0, p.Levels())
	for lvl := p.MinLevel; lvl <= p.MaxLevel && !p.Empty(); lvl++ {
		ls := levelSummary{Level: lvl}
		for _, n := range p.Bucket(lvl) {
			color := "-"
			if n.Color.A > 0 {
				color = render.Hex(n.Color)
			}
			ls.Nodes = append(ls.Nodes, nodeSummary{
				ID:    n.ID,
				Name:  n.Name,
				In:    g.InSum(n.ID),
				Out:   g.OutSum(n.ID),
				Color: color,
			})
		}
		out = append(out, ls)
	}
	return out
}
