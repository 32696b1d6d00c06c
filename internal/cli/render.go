package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/httputil"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/watch"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      renderFlags
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
		watchFile  bool
	)

	cmd := &cobra.Command{
		Use:   "render [flows]",
		Short: "Render a flow file to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a flow file to one or more output formats.

The flow file may be JSON, YAML, TOML or SQLite (.json, .yaml/.yml, .toml,
.db/.sqlite). Text formats may also be fetched from an http(s) URL.
Options come from sankey.yml (or --config), SANKEY_*
environment variables and flags, in increasing precedence.

With --watch the diagram is re-rendered whenever the flow file changes.`,
		Example: `  sankey render energy.json
  sankey render energy.yml -f svg,png --fill gradient --values
  sankey render budget.toml -o out/budget.svg --width 1200 --height 800
  sankey render energy.json -t nodelink -f dot
  sankey render https://example.com/energy.json -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			opts.Source = args[0]
			opts.Refresh = refresh
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if err := c.runRender(cmd.Context(), runner, opts, output); err != nil {
				return err
			}
			if watchFile {
				return c.watchRender(cmd.Context(), runner, opts, output)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-render when the flow file changes")

	return cmd
}

// runRender executes the pipeline once and writes every artifact.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Source, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Source)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	printIssues(result.Issues)
	printDiagnostics(result.Layout.Diagnostics)
	return nil
}

// writeArtifacts writes one file per format. A single artifact goes to
// output verbatim; several share the base path with their format as
// extension.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	var paths []string
	for _, f := range formats {
		path := basePath(output, input) + "." + f
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// watchRender re-renders on every change until the context is cancelled.
func (c *CLI) watchRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	if httputil.IsURL(opts.Source) {
		return errors.New(errors.ErrCodeUnsupported, "--watch needs a local flow file, got %s", opts.Source)
	}
	w, err := watch.New(opts.Source, watch.WithOnError(func(err error) {
		c.Logger.Warn("watch", "error", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	printNewline()
	printInfo("Watching %s (ctrl+c to stop)", w.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			if err := c.runRender(ctx, runner, opts, output); err != nil {
				printError("%v", err)
			}
		}
	}
}
